package cli

import (
	"geomag-cli/internal/config"
	"geomag-cli/internal/model"
	"geomag-cli/internal/rowview"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type commitOptions struct {
	typ   string
	begin string
	file  string
	now   string
	// Field texts, keyed by the flag that set them.
	texts map[rowview.Field]*string
}

type commitResult struct {
	Measurement *model.Measurement            `json:"measurement"`
	Valid       bool                          `json:"valid"`
	Decorations map[string]rowview.Decoration `json:"decorations"`
}

func newCommitCmd(app *App) *cobra.Command {
	opts := commitOptions{texts: map[rowview.Field]*string{}}
	flagFor := map[rowview.Field]string{
		rowview.FieldTime:    "time",
		rowview.FieldDegrees: "deg",
		rowview.FieldMinutes: "min",
		rowview.FieldSeconds: "sec",
	}

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Type values into one row and leave each field, as the editor would",
		Long: `Commit feeds each given field through the row editor: the text is set on
the input and the input is left, in time, degrees, minutes, seconds order.
The resulting measurement and the per-field error decorations are printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			given := map[rowview.Field]string{}
			for f, name := range flagFor {
				if cmd.Flags().Changed(name) {
					given[f] = *opts.texts[f]
				}
			}
			res, err := runCommit(app, opts, given)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, res)
		},
	}

	cmd.Flags().StringVar(&opts.typ, "type", "", "Reading type (see `geomag types`)")
	cmd.Flags().StringVar(&opts.begin, "begin", "", "Observation begin (default now)")
	cmd.Flags().StringVar(&opts.file, "file", "", "Observation JSON file to take the row from")
	cmd.Flags().StringVar(&opts.now, "now", "", "Override the current time for the future check")
	for _, f := range rowview.Fields() {
		opts.texts[f] = new(string)
		cmd.Flags().StringVar(opts.texts[f], flagFor[f], "", f.String()+" text")
	}
	_ = cmd.MarkFlagRequired("type")
	cmd.MarkFlagsMutuallyExclusive("begin", "file")

	return cmd
}

func runCommit(app *App, opts commitOptions, given map[rowview.Field]string) (commitResult, error) {
	typ, err := model.ParseReadingType(opts.typ)
	if err != nil {
		return commitResult{}, errUsage("reading type", opts.typ, "geomag types")
	}

	cfg, err := config.Load()
	if err != nil {
		return commitResult{}, err
	}
	log, closeLog, err := config.NewLogger(cfg, nil)
	if err != nil {
		return commitResult{}, err
	}
	defer closeLog()

	clock := app.Clock
	if opts.now != "" {
		now, err := parseInstant(opts.now, app.Clock.Now())
		if err != nil {
			return commitResult{}, errors.Wrap(err, "--now")
		}
		clock = clockwork.NewFakeClockAt(now)
	}

	obs, err := loadObservation(app, opts.file, opts.begin)
	if err != nil {
		return commitResult{}, err
	}
	meas, err := findMeasurement(obs, typ)
	if err != nil {
		return commitResult{}, err
	}

	row, err := rowview.New(rowview.Config{
		Measurement: meas,
		Observation: obs,
		Clock:       clock,
		Logger:      log,
	})
	if err != nil {
		return commitResult{}, err
	}
	defer row.Destroy()

	for _, f := range rowview.Fields() {
		text, ok := given[f]
		if !ok {
			continue
		}
		row.Input(f).SetValue(text)
		row.Blur(f)
	}

	res := commitResult{
		Measurement: meas,
		Valid:       true,
		Decorations: map[string]rowview.Decoration{},
	}
	for _, f := range rowview.Fields() {
		d := row.Decoration(f)
		res.Decorations[f.String()] = d
		if d.Error {
			res.Valid = false
		}
	}
	return res, nil
}
