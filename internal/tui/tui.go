package tui

import (
	"log/slog"

	"geomag-cli/internal/config"
	"geomag-cli/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
)

type Options struct {
	// Observation is edited in place.
	Observation *model.Observation
	Config      *config.Config
	Clock       clockwork.Clock
	Logger      *slog.Logger

	// ProgramOptions are appended after the defaults (alt screen).
	ProgramOptions []tea.ProgramOption
}

// Run opens the editor and blocks until the user quits. Every row is torn
// down before Run returns.
func Run(opts Options) error {
	if opts.Observation == nil {
		return errors.New("tui: observation is required")
	}
	applyColorProfilePreference()
	applyThemePreference()
	applyAppearancePreference(opts.Config)
	applyGlyphPreference(opts.Config.TUIGlyphs())

	m, err := newAppModel(opts.Observation, opts.Clock, opts.Logger)
	if err != nil {
		return err
	}
	defer m.destroy()

	popts := append([]tea.ProgramOption{tea.WithAltScreen()}, opts.ProgramOptions...)
	_, err = tea.NewProgram(m, popts...).Run()
	return errors.Wrap(err, "run editor")
}
