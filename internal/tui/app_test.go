package tui

import (
	"strings"
	"testing"
	"time"

	"geomag-cli/internal/components"
	"geomag-cli/internal/model"
	"geomag-cli/internal/rowview"
	"geomag-cli/internal/validate"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
)

var testBegin = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T, obs *model.Observation) appModel {
	t.Helper()
	clock := clockwork.NewFakeClockAt(testBegin.Add(3 * time.Hour))
	m, err := newAppModel(obs, clock, nil)
	if err != nil {
		t.Fatalf("newAppModel: %v", err)
	}
	t.Cleanup(m.destroy)
	return m
}

func send(t *testing.T, m appModel, msgs ...tea.Msg) appModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(appModel)
		if !ok {
			t.Fatalf("unexpected model type %T", next)
		}
	}
	return m
}

func typeText(s string) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var tab = tea.KeyMsg{Type: tea.KeyTab}

func TestEditor_CommitsTimeOnTab(t *testing.T) {
	obs := model.StandardObservation(testBegin)
	m := newTestApp(t, obs)

	m = send(t, m, typeText("9:10:00"), tab)

	got, ok := obs.Measurements[0].Time().Value()
	if !ok {
		t.Fatalf("expected time to be committed, got state %v", obs.Measurements[0].Time().State())
	}
	if want := testBegin.Add(10 * time.Minute); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if m.focusField != rowview.FieldDegrees || m.focusRow != 0 {
		t.Fatalf("expected focus on degrees of row 0, got %v row %d", m.focusField, m.focusRow)
	}
	if v := m.rows[0].inputs[rowview.FieldTime].Value(); v != "09:10:00" {
		t.Fatalf("expected normalized time text, got %q", v)
	}
}

func TestEditor_CommitsAngleAcrossFields(t *testing.T) {
	obs := model.StandardObservation(testBegin)
	m := newTestApp(t, obs)

	m = send(t, m, tab, typeText("45"), tab, typeText("30"), tab, typeText("0"), tab)

	a, ok := obs.Measurements[0].Angle().Value()
	if !ok || a != 45.5 {
		t.Fatalf("expected angle 45.5, got %v (ok=%v)", a, ok)
	}
	// Wrapped to the next row.
	if m.focusRow != 1 || m.focusField != rowview.FieldTime {
		t.Fatalf("expected focus on time of row 1, got %v row %d", m.focusField, m.focusRow)
	}
}

func TestEditor_ShowsErrorForInvalidDegrees(t *testing.T) {
	obs := model.StandardObservation(testBegin)
	m := newTestApp(t, obs)

	m = send(t, m, tab, typeText("400"), tab)

	if !m.rows[0].row.Decoration(rowview.FieldDegrees).Error {
		t.Fatalf("expected degrees decoration")
	}
	view := m.View()
	// Focus is on the blank minutes input, which is decorated too.
	if !strings.Contains(view, validate.MsgMinutes) {
		t.Fatalf("expected minutes message in view, got:\n%s", view)
	}
	if !strings.Contains(view, glyphError()+"400") {
		t.Fatalf("expected rejected text to stay visible, got:\n%s", view)
	}

	// Back onto the field: the decoration title is the status line.
	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if !strings.Contains(m.viewStatus(), validate.MsgDegrees) {
		t.Fatalf("expected status to show degrees message, got %q", m.viewStatus())
	}
}

func TestEditor_UpDownKeepsField(t *testing.T) {
	obs := model.StandardObservation(testBegin)
	m := newTestApp(t, obs)

	m = send(t, m, tab, tea.KeyMsg{Type: tea.KeyDown})
	if m.focusRow != 1 || m.focusField != rowview.FieldDegrees {
		t.Fatalf("expected degrees of row 1, got %v row %d", m.focusField, m.focusRow)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp})
	if m.focusRow != len(obs.Measurements)-1 {
		t.Fatalf("expected wrap to last row, got %d", m.focusRow)
	}
}

func TestEditor_ComponentsMessageRerendersRows(t *testing.T) {
	total := 50000.0
	obs := model.StandardObservation(testBegin)
	obs.TotalField = &total
	m := newTestApp(t, obs)

	var sd *rowEditor
	for _, r := range m.rows {
		if r.row.Measurement().Type() == model.SouthDown {
			sd = r
		}
	}
	sd.row.Measurement().Set(model.Patch{Angle: model.Assign(model.ValueOf(60.0))})

	m = send(t, m, componentsMsg{updates: components.Compute(obs)})

	if got := sd.row.Cell(rowview.ComponentH); got != "25000.00 nT" {
		t.Fatalf("expected H cell to be rendered, got %q", got)
	}
	if !strings.Contains(m.View(), "50000.00 nT") {
		t.Fatalf("expected F in view")
	}
}

func TestEditor_QuitCommitsFocusedField(t *testing.T) {
	obs := model.StandardObservation(testBegin)
	m := newTestApp(t, obs)

	m = send(t, m, typeText("nope"))
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	_ = next
	if msg, ok := obs.Measurements[0].Time().Message(); !ok || msg != validate.MsgTime {
		t.Fatalf("expected time syntax error, got %q (ok=%v)", msg, ok)
	}
}

func TestEditor_HelpToggle(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	obs := model.StandardObservation(testBegin)
	m := newTestApp(t, obs)

	m = send(t, m, typeText("?"))
	if !m.showHelp {
		t.Fatalf("expected help to open")
	}
	if !strings.Contains(m.View(), "Measurement editor") {
		t.Fatalf("expected help body in view")
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showHelp {
		t.Fatalf("expected esc to close help")
	}
	if v := m.rows[0].inputs[rowview.FieldTime].Value(); v != "" {
		t.Fatalf("help key must not reach the input, got %q", v)
	}
}

func TestEditor_DestroyReleasesSubscriptions(t *testing.T) {
	obs := model.StandardObservation(testBegin)
	m, err := newAppModel(obs, clockwork.NewFakeClockAt(testBegin), nil)
	if err != nil {
		t.Fatalf("newAppModel: %v", err)
	}
	for _, meas := range obs.Measurements {
		if meas.Subscribers() != 1 {
			t.Fatalf("expected one subscriber per measurement")
		}
	}
	m.destroy()
	for _, meas := range obs.Measurements {
		if meas.Subscribers() != 0 {
			t.Fatalf("expected subscriptions to be released")
		}
	}
}

func TestEditor_ASCIIGlyphs(t *testing.T) {
	setGlyphs(glyphSetASCII)
	t.Cleanup(func() { setGlyphs(glyphSetUnicode) })

	obs := model.StandardObservation(testBegin)
	m := newTestApp(t, obs)

	if got := m.rows[0].row.Cell(rowview.ComponentE); got != "-" {
		t.Fatalf("expected ascii placeholder, got %q", got)
	}
}
