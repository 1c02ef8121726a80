package cli

import (
	"strings"

	"geomag-cli/internal/components"
	"geomag-cli/internal/config"
	"geomag-cli/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

type editOptions struct {
	begin      string
	file       string
	observer   string
	totalField float64
	hasTotal   bool
}

func newEditCmd(app *App) *cobra.Command {
	var opts editOptions

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit observation rows in the terminal; prints the result on exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.hasTotal = cmd.Flags().Changed("total-field")
			return runEdit(cmd, app, opts)
		},
	}

	cmd.Flags().StringVar(&opts.begin, "begin", "", "Observation begin (YYYY-MM-DD HH:MM or RFC3339, UTC; default now)")
	cmd.Flags().StringVar(&opts.file, "file", "", "Observation JSON file to edit")
	cmd.Flags().StringVar(&opts.observer, "observer", "", "Observer name (default from config)")
	cmd.Flags().Float64Var(&opts.totalField, "total-field", 0, "Reference total field (nT) for the h/e/z/f preview")
	cmd.MarkFlagsMutuallyExclusive("begin", "file")

	return cmd
}

func runEdit(cmd *cobra.Command, app *App, opts editOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return writeErr(cmd, err)
	}
	// The editor owns the terminal; logs only go to the configured file.
	log, closeLog, err := config.NewLogger(cfg, nil)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer closeLog()

	obs, err := loadObservation(app, opts.file, opts.begin)
	if err != nil {
		return writeErr(cmd, err)
	}
	if v := strings.TrimSpace(opts.observer); v != "" {
		obs.Observer = v
	} else if obs.Observer == "" {
		obs.Observer = cfg.Observer
	}
	if opts.hasTotal {
		total := opts.totalField
		obs.TotalField = &total
	}

	log.Info("editor opened", "begin", obs.Begin(), "rows", len(obs.Measurements), "file", opts.file)
	err = tui.Run(tui.Options{
		Observation: obs,
		Config:      cfg,
		Clock:       app.Clock,
		Logger:      log,
		// Keep stdout for the edited observation.
		ProgramOptions: []tea.ProgramOption{tea.WithOutput(cmd.ErrOrStderr())},
	})
	if err != nil {
		return writeErr(cmd, err)
	}
	components.Apply(components.Compute(obs))

	return writeOut(cmd, app, obs)
}
