package cli

import (
	"strings"
	"time"

	"geomag-cli/internal/geoformat"
	"geomag-cli/internal/validate"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var validateKinds = []string{"degrees", "minutes", "seconds", "time", "absolute-time"}

type validateResult struct {
	Field string `json:"field"`
	Text  string `json:"text"`
	validate.Result
	// Resolved is set for absolute-time input that parsed.
	Resolved *time.Time `json:"resolved,omitempty"`
}

func newValidateCmd(app *App) *cobra.Command {
	var begin, now string

	cmd := &cobra.Command{
		Use:   "validate <" + strings.Join(validateKinds, "|") + "> <text>",
		Short: "Check one input with the editor's rules",
		Example: strings.TrimSpace(`
  geomag validate degrees 361
  geomag validate time 25:00:00
  geomag validate absolute-time 23:30:00 --begin 2024-03-01T22:00 --now 2024-03-01T23:00
`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := strings.ToLower(strings.TrimSpace(args[0]))
			text := args[1]

			if kind != "absolute-time" {
				r, ok := validate.Check(kind, text)
				if !ok {
					return writeErr(cmd, errors.Errorf("unknown kind: %q (expected %s)", args[0], strings.Join(validateKinds, "|")))
				}
				return writeOut(cmd, app, validateResult{Field: kind, Text: text, Result: r})
			}

			res, err := checkAbsoluteTime(app, text, begin, now)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, res)
		},
	}

	cmd.Flags().StringVar(&begin, "begin", "", "Observation begin the time is resolved against (default now)")
	cmd.Flags().StringVar(&now, "now", "", "Override the current time")

	return cmd
}

// checkAbsoluteTime applies the time field rules in editor order: syntax,
// then the future check against the resolved instant.
func checkAbsoluteTime(app *App, text, begin, now string) (validateResult, error) {
	out := validateResult{Field: "absolute-time", Text: text}

	clockNow := app.Clock.Now()
	if now != "" {
		n, err := parseInstant(now, clockNow)
		if err != nil {
			return out, errors.Wrap(err, "--now")
		}
		clockNow = n
	}
	ref, err := parseInstant(begin, clockNow)
	if err != nil {
		return out, errors.Wrap(err, "--begin")
	}

	if !validate.ValidTime(text) {
		out.Result = validate.Result{Kind: validate.KindSyntax, Message: validate.MsgTime}
		return out, nil
	}
	resolved, err := geoformat.ParseRelativeTime(text, ref)
	if err != nil {
		out.Result = validate.Result{Kind: validate.KindSyntax, Message: validate.MsgTime}
		return out, nil
	}
	out.Resolved = &resolved
	if !validate.ValidAbsoluteTime(resolved, clockNow) {
		out.Result = validate.Result{Kind: validate.KindFuture, Message: validate.MsgFutureTime}
		return out, nil
	}
	out.Result = validate.Result{Valid: true}
	return out, nil
}
