package tui

import (
	"log/slog"

	"geomag-cli/internal/model"
	"geomag-cli/internal/rowview"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
)

// Column widths (cells, excluding the separator).
const (
	colLabel     = 12
	colTime      = 10
	colDegrees   = 5
	colMinutes   = 8
	colSeconds   = 8
	colComponent = 12
)

var fieldWidths = map[rowview.Field]int{
	rowview.FieldTime:    colTime,
	rowview.FieldDegrees: colDegrees,
	rowview.FieldMinutes: colMinutes,
	rowview.FieldSeconds: colSeconds,
}

var fieldPlaceholders = map[rowview.Field]string{
	rowview.FieldTime:    "HH:MM:SS",
	rowview.FieldDegrees: "deg",
	rowview.FieldMinutes: "min",
	rowview.FieldSeconds: "sec",
}

// rowEditor pairs a rowview.Row with the text inputs it edits. Inputs live
// on the heap so copies of the app model share them.
type rowEditor struct {
	row    *rowview.Row
	inputs map[rowview.Field]*textinput.Model
}

func newRowEditor(m *model.Measurement, o *model.Observation, clock clockwork.Clock, log *slog.Logger) (*rowEditor, error) {
	e := &rowEditor{inputs: map[rowview.Field]*textinput.Model{}}
	for _, f := range rowview.Fields() {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 16
		ti.Width = fieldWidths[f]
		ti.Placeholder = fieldPlaceholders[f]
		e.inputs[f] = &ti
	}

	row, err := rowview.New(rowview.Config{
		Measurement: m,
		Observation: o,
		Inputs: rowview.Inputs{
			Time:    e.inputs[rowview.FieldTime],
			Degrees: e.inputs[rowview.FieldDegrees],
			Minutes: e.inputs[rowview.FieldMinutes],
			Seconds: e.inputs[rowview.FieldSeconds],
		},
		Clock:       clock,
		Logger:      log,
		Placeholder: glyphPlaceholder(),
	})
	if err != nil {
		return nil, err
	}
	e.row = row
	return e, nil
}

func (e *rowEditor) focus(f rowview.Field) tea.Cmd {
	ti := e.inputs[f]
	ti.CursorEnd()
	return ti.Focus()
}

// blur leaves f and commits it.
func (e *rowEditor) blur(f rowview.Field) {
	e.inputs[f].Blur()
	e.row.Blur(f)
}

func (e *rowEditor) update(f rowview.Field, msg tea.Msg) tea.Cmd {
	ti := e.inputs[f]
	next, cmd := ti.Update(msg)
	*ti = next
	return cmd
}

func (e *rowEditor) destroy() {
	e.row.Destroy()
}
