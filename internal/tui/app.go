package tui

import (
	"log/slog"
	"strings"

	"geomag-cli/internal/components"
	"geomag-cli/internal/docs"
	"geomag-cli/internal/geoformat"
	"geomag-cli/internal/model"
	"geomag-cli/internal/rowview"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
)

// componentsMsg carries component writes computed from the observation.
// They are applied on the update loop like any other external change.
type componentsMsg struct {
	updates []components.Update
}

type appModel struct {
	obs  *model.Observation
	rows []*rowEditor

	focusRow   int
	focusField rowview.Field

	width  int
	height int

	showHelp bool
	keys     keyMap
	help     help.Model

	log *slog.Logger
}

func newAppModel(obs *model.Observation, clock clockwork.Clock, log *slog.Logger) (appModel, error) {
	if log == nil {
		log = slog.Default()
	}
	m := appModel{
		obs:        obs,
		focusField: rowview.FieldTime,
		keys:       newKeyMap(),
		help:       help.New(),
		log:        log,
	}
	for _, meas := range obs.Measurements {
		e, err := newRowEditor(meas, obs, clock, log)
		if err != nil {
			m.destroy()
			return appModel{}, err
		}
		m.rows = append(m.rows, e)
	}
	if len(m.rows) > 0 {
		m.rows[0].focus(m.focusField)
	}
	return m, nil
}

func (m appModel) Init() tea.Cmd {
	return m.computeComponents()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case componentsMsg:
		components.Apply(msg.updates)
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			switch {
			case key.Matches(msg, m.keys.Help), msg.Type == tea.KeyEsc:
				m.showHelp = false
			case msg.Type == tea.KeyCtrlC:
				return m.quit()
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, m.keys.Next):
			return m, m.moveFocus(1, 0)
		case key.Matches(msg, m.keys.Prev):
			return m, m.moveFocus(-1, 0)
		case key.Matches(msg, m.keys.Up):
			return m, m.moveFocus(0, -1)
		case key.Matches(msg, m.keys.Down):
			return m, m.moveFocus(0, 1)
		}
	}

	if r := m.current(); r != nil {
		return m, r.update(m.focusField, msg)
	}
	return m, nil
}

func (m appModel) current() *rowEditor {
	if m.focusRow < 0 || m.focusRow >= len(m.rows) {
		return nil
	}
	return m.rows[m.focusRow]
}

// moveFocus commits the focused field and focuses the next one: dField
// steps through fields (wrapping into the next/previous row), dRow keeps
// the field and changes row.
func (m *appModel) moveFocus(dField, dRow int) tea.Cmd {
	cur := m.current()
	if cur == nil {
		return nil
	}
	cur.blur(m.focusField)

	fields := rowview.Fields()
	n := len(fields)
	idx := int(m.focusField) + dField
	row := m.focusRow + dRow
	for idx >= n {
		idx -= n
		row++
	}
	for idx < 0 {
		idx += n
		row--
	}
	if row >= len(m.rows) {
		row = 0
	}
	if row < 0 {
		row = len(m.rows) - 1
	}
	m.focusRow = row
	m.focusField = fields[idx]

	return tea.Batch(m.rows[m.focusRow].focus(m.focusField), m.computeComponents())
}

func (m appModel) computeComponents() tea.Cmd {
	updates := components.Compute(m.obs)
	if len(updates) == 0 {
		return nil
	}
	return func() tea.Msg { return componentsMsg{updates: updates} }
}

func (m appModel) quit() (tea.Model, tea.Cmd) {
	if cur := m.current(); cur != nil {
		cur.blur(m.focusField)
	}
	components.Apply(components.Compute(m.obs))
	m.log.Debug("editor closed", "rows", len(m.rows))
	return m, tea.Quit
}

func (m appModel) destroy() {
	for _, r := range m.rows {
		r.destroy()
	}
}

func (m appModel) View() string {
	if m.showHelp {
		body, _ := docs.Get("editor")
		w := m.width
		if w <= 0 {
			w = 80
		}
		return RenderMarkdown(body, w) + "\n\n" + styleMuted().Render("press ? or esc to close")
	}

	var b strings.Builder
	b.WriteString(m.viewTitle())
	b.WriteString("\n\n")
	b.WriteString(m.viewHeader())
	b.WriteString("\n")
	b.WriteString(styleMuted().Render(strings.Repeat(glyphHRule(), tableWidth())))
	b.WriteString("\n")
	for i, r := range m.rows {
		b.WriteString(m.viewRow(i, r))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.viewStatus())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m appModel) viewTitle() string {
	title := "Observation " + m.obs.Begin().Format("2006-01-02") + " from " + geoformat.Time(m.obs.Begin()) + " UTC"
	if m.obs.Observer != "" {
		title += " · " + m.obs.Observer
	}
	return accentStyle().Render(title)
}

func tableWidth() int {
	return colLabel + colTime + colDegrees + colMinutes + colSeconds + 4*colComponent + 8
}

func (m appModel) viewHeader() string {
	st := styleHeader()
	cells := []string{
		renderCell(colLabel, "Type", st),
		renderCell(colTime, "Time", st),
		renderCell(colDegrees, "Deg", st),
		renderCell(colMinutes, "Min", st),
		renderCell(colSeconds, "Sec", st),
	}
	for _, c := range rowview.Components() {
		cells = append(cells, renderCell(colComponent, strings.ToUpper(c.String()), st))
	}
	return strings.Join(cells, " ")
}

func (m appModel) viewRow(i int, r *rowEditor) string {
	marker := " "
	if i == m.focusRow {
		marker = glyphFocus()
		if appearanceProfile() == appearanceNeon {
			marker = accentStyle().Render(marker)
		}
	}
	label := renderCell(colLabel-1, r.row.Label(), styleHeader())
	cells := []string{marker + label}

	for _, f := range rowview.Fields() {
		ti := r.inputs[f]
		focused := i == m.focusRow && f == m.focusField
		dec := r.row.Decoration(f)
		text := ti.Value()
		if focused {
			text = ti.View()
		}
		if dec.Error && !focused {
			text = glyphError() + text
		}
		cells = append(cells, renderCell(fieldWidths[f], text, styleInput(focused, dec.Error)))
	}
	for _, c := range rowview.Components() {
		cells = append(cells, renderCell(colComponent, r.row.Cell(c), styleMuted()))
	}
	return strings.Join(cells, " ")
}

// viewStatus shows the error for the focused field, or the stored message of
// the focused row.
func (m appModel) viewStatus() string {
	r := m.current()
	if r == nil {
		return ""
	}
	if dec := r.row.Decoration(m.focusField); dec.Error {
		return styleError().Render(glyphError() + " " + dec.Title)
	}
	meas := r.row.Measurement()
	var msgs []string
	if msg, ok := meas.Time().Message(); ok {
		msgs = append(msgs, msg)
	}
	if msg, ok := meas.Angle().Message(); ok {
		msgs = append(msgs, msg)
	}
	if len(msgs) == 0 {
		if a, ok := meas.Angle().Value(); ok {
			return styleMuted().Render(r.row.Label() + ": " + geoformat.Degrees(a))
		}
		return ""
	}
	return styleError().Render(strings.Join(msgs, "  "))
}
