package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"geomag-cli/internal/format"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type App struct {
	ConfigDir  string
	PrettyJSON bool
	Format     string

	// Clock supplies "now" for future-time checks and the default begin.
	Clock clockwork.Clock
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{Clock: clockwork.NewRealClock()})
}

func newRootCmd(app *App) *cobra.Command {
	if app.Clock == nil {
		app.Clock = clockwork.NewRealClock()
	}

	cmd := &cobra.Command{
		Use:          "geomag",
		Short:        "Absolute observation row editor (TUI + scriptable commands)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Edit a new standard observation starting now
  geomag

  # Edit an observation file; the result is printed on exit
  geomag edit --file obs.json > edited.json

  # Check one input the way the editor does
  geomag validate degrees 361

  # Commit a row without the TUI
  geomag commit --type west-down --begin 2024-03-01T09:00 --time 09:10:00 --deg 45 --min 30 --sec 0
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive editor.
			if len(args) == 0 {
				return runEdit(cmd, app, editOptions{})
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if !slices.Contains(format.Formats, strings.ToLower(strings.TrimSpace(app.Format))) {
			return writeErr(cmd, errors.Errorf("unknown format: %s (expected %s)", app.Format, strings.Join(format.Formats, "|")))
		}
		if app.ConfigDir != "" {
			// config.Dir resolves through the environment.
			if err := os.Setenv("GEOMAG_CONFIG_DIR", app.ConfigDir); err != nil {
				return writeErr(cmd, err)
			}
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.ConfigDir, "config", envOr("GEOMAG_CONFIG_DIR", ""), "Config directory (default ~/.geomag)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("GEOMAG_FORMAT", "json"), "Output format (json|edn)")

	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newCommitCmd(app))
	cmd.AddCommand(newValidateCmd(app))
	cmd.AddCommand(newConvertCmd(app))
	cmd.AddCommand(newTypesCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any, hints ...string) error {
	return format.Write(cmd.OutOrStdout(), format.Envelope{Data: v, Hints: hints}, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
