// Package rowview keeps one measurement row in sync with its model.
//
// A Row owns four text inputs (time, degrees, minutes, seconds). Committing an
// input (Blur) validates the text and writes either the converted value or an
// error message to the measurement. Every change notification from the
// measurement, whatever its origin, re-renders the whole row from model
// state. Inputs whose group currently holds an error are left alone so the
// user can correct what they typed.
package rowview

import (
	"log/slog"
	"strings"
	"time"

	"geomag-cli/internal/geoformat"
	"geomag-cli/internal/model"
	"geomag-cli/internal/validate"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
)

var (
	ErrMissingMeasurement = errors.New("rowview: measurement is required")
	ErrMissingObservation = errors.New("rowview: observation is required")
)

// Input is an editable text control. *textinput.Model satisfies it.
type Input interface {
	Value() string
	SetValue(string)
}

// TextInput is a bare Input for headless use.
type TextInput struct {
	value string
}

func (t *TextInput) Value() string     { return t.value }
func (t *TextInput) SetValue(s string) { t.value = s }

// Field identifies one editable input of the row.
type Field int

const (
	FieldTime Field = iota
	FieldDegrees
	FieldMinutes
	FieldSeconds

	fieldCount
)

var fieldNames = [fieldCount]string{"time", "degrees", "minutes", "seconds"}

func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return "unknown"
	}
	return fieldNames[f]
}

// Fields lists the editable inputs in display order.
func Fields() []Field {
	return []Field{FieldTime, FieldDegrees, FieldMinutes, FieldSeconds}
}

func (f Field) isAngle() bool {
	return f == FieldDegrees || f == FieldMinutes || f == FieldSeconds
}

// Component identifies one read-only computed cell.
type Component int

const (
	ComponentH Component = iota
	ComponentE
	ComponentZ
	ComponentF

	componentCount
)

var componentNames = [componentCount]string{"h", "e", "z", "f"}

func (c Component) String() string {
	if c < 0 || c >= componentCount {
		return "unknown"
	}
	return componentNames[c]
}

func Components() []Component {
	return []Component{ComponentH, ComponentE, ComponentZ, ComponentF}
}

// Decoration is the error state shown on one input.
type Decoration struct {
	Error bool `json:"error"`
	// Title is the explanatory text (tooltip) while Error is set.
	Title string `json:"title,omitempty"`
}

type Inputs struct {
	Time    Input
	Degrees Input
	Minutes Input
	Seconds Input
}

type Config struct {
	// Measurement and Observation are required and are not owned by the row.
	Measurement *model.Measurement
	Observation *model.Observation

	// Inputs left nil are replaced with a TextInput.
	Inputs Inputs

	// Clock supplies "now" for the future-time check. Defaults to the real clock.
	Clock clockwork.Clock
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// Placeholder is shown for missing components. Defaults to geoformat.Placeholder.
	Placeholder string
}

// Row is the edit/render controller for one measurement.
type Row struct {
	measurement *model.Measurement
	observation *model.Observation

	inputs [fieldCount]Input
	decor  [fieldCount]Decoration
	cells  [componentCount]string

	clock       clockwork.Clock
	log         *slog.Logger
	placeholder string

	sub       *model.Subscription
	destroyed bool
}

// New binds a row to its measurement and renders it once.
func New(cfg Config) (*Row, error) {
	if cfg.Measurement == nil {
		return nil, ErrMissingMeasurement
	}
	if cfg.Observation == nil {
		return nil, ErrMissingObservation
	}

	r := &Row{
		measurement: cfg.Measurement,
		observation: cfg.Observation,
		clock:       cfg.Clock,
		log:         cfg.Logger,
		placeholder: cfg.Placeholder,
	}
	if r.clock == nil {
		r.clock = clockwork.NewRealClock()
	}
	if r.log == nil {
		r.log = slog.Default()
	}
	r.log = r.log.With("reading", cfg.Measurement.Type().String())
	if r.placeholder == "" {
		r.placeholder = geoformat.Placeholder
	}

	in := [fieldCount]Input{
		FieldTime:    cfg.Inputs.Time,
		FieldDegrees: cfg.Inputs.Degrees,
		FieldMinutes: cfg.Inputs.Minutes,
		FieldSeconds: cfg.Inputs.Seconds,
	}
	for i := range in {
		if in[i] == nil {
			in[i] = &TextInput{}
		}
	}
	r.inputs = in

	r.sub = r.measurement.Subscribe(func(model.Change) { r.Render() })
	r.Render()
	r.decorateStored()
	return r, nil
}

// decorateStored shows errors the measurement already carried when the row
// was bound, such as rejected values read from a file.
func (r *Row) decorateStored() {
	if msg, ok := r.measurement.Time().Message(); ok {
		r.updateErrorState(FieldTime, false, msg)
	}
	msg, ok := r.measurement.Angle().Message()
	if !ok {
		return
	}
	switch msg {
	case validate.MsgDegrees:
		r.updateErrorState(FieldDegrees, false, msg)
	case validate.MsgMinutes:
		r.updateErrorState(FieldMinutes, false, msg)
	case validate.MsgSeconds:
		r.updateErrorState(FieldSeconds, false, msg)
	default:
		// Not one of ours: the whole group is suspect.
		for _, f := range []Field{FieldDegrees, FieldMinutes, FieldSeconds} {
			r.updateErrorState(f, false, msg)
		}
	}
}

// Label is the row header for the measurement's reading type.
func (r *Row) Label() string {
	return r.measurement.Type().Label()
}

func (r *Row) Measurement() *model.Measurement { return r.measurement }

// Input returns the control bound to f, or nil after Destroy.
func (r *Row) Input(f Field) Input {
	if r.destroyed || f < 0 || f >= fieldCount {
		return nil
	}
	return r.inputs[f]
}

func (r *Row) Decoration(f Field) Decoration {
	if f < 0 || f >= fieldCount {
		return Decoration{}
	}
	return r.decor[f]
}

// Cell returns the rendered text of a computed component.
func (r *Row) Cell(c Component) string {
	if c < 0 || c >= componentCount {
		return ""
	}
	return r.cells[c]
}

// Blur commits the input f after the user leaves it. Ignored after Destroy.
func (r *Row) Blur(f Field) {
	if r.destroyed {
		return
	}
	switch {
	case f == FieldTime:
		r.onTimeChange()
	case f.isAngle():
		r.onAngleChange(f)
	}
}

// Destroy releases the model subscription and the inputs. Safe to call twice.
func (r *Row) Destroy() {
	if r.destroyed {
		return
	}
	r.destroyed = true
	r.sub.Cancel()
	r.sub = nil
	for i := range r.inputs {
		r.inputs[i] = nil
	}
}

func (r *Row) onAngleChange(origin Field) {
	degrees := r.inputs[FieldDegrees].Value()
	minutes := r.inputs[FieldMinutes].Value()
	seconds := r.inputs[FieldSeconds].Value()

	// Decimal minutes replace seconds.
	if origin == FieldMinutes && strings.Contains(minutes, ".") {
		seconds = "0"
		r.inputs[FieldSeconds].SetValue("0")
	}

	if msg := r.validateAngle(degrees, minutes, seconds); msg != "" {
		r.log.Debug("angle rejected", "origin", origin.String(), "error", msg)
		r.measurement.Set(model.Patch{Angle: model.Assign(model.Invalid[float64](msg))})
		return
	}

	angle := geoformat.DMSToDecimal(
		validate.Number(degrees),
		validate.Number(minutes),
		validate.Number(seconds),
	)
	r.log.Debug("angle committed", "origin", origin.String(), "angle", angle)
	r.measurement.Set(model.Patch{Angle: model.Assign(model.ValueOf(angle))})
}

// validateAngle decorates each angle input independently and returns the
// message of the first failing one (degrees, minutes, seconds order).
func (r *Row) validateAngle(degrees, minutes, seconds string) string {
	checks := []struct {
		field Field
		valid bool
		msg   string
	}{
		{FieldDegrees, validate.ValidDegrees(degrees), validate.MsgDegrees},
		{FieldMinutes, validate.ValidMinutes(minutes), validate.MsgMinutes},
		{FieldSeconds, validate.ValidSeconds(seconds), validate.MsgSeconds},
	}

	first := ""
	for _, c := range checks {
		r.updateErrorState(c.field, c.valid, c.msg)
		if !c.valid && first == "" {
			first = c.msg
		}
	}
	return first
}

func (r *Row) onTimeChange() {
	text := r.inputs[FieldTime].Value()

	if !validate.ValidTime(text) {
		r.timeRejected(validate.MsgTime)
		return
	}

	resolved, err := geoformat.ParseRelativeTime(text, r.observation.Begin())
	if err != nil {
		// ValidTime and ParseClock agree on the accepted syntax.
		r.timeRejected(validate.MsgTime)
		return
	}

	if !validate.ValidAbsoluteTime(resolved, r.clock.Now()) {
		r.timeRejected(validate.MsgFutureTime)
		return
	}

	r.updateErrorState(FieldTime, true, "")
	r.log.Debug("time committed", "time", resolved)
	r.measurement.Set(model.Patch{Time: model.Assign(model.ValueOf(resolved))})
}

func (r *Row) timeRejected(msg string) {
	r.updateErrorState(FieldTime, false, msg)
	r.log.Debug("time rejected", "error", msg)
	r.measurement.Set(model.Patch{Time: model.Assign(model.Invalid[time.Time](msg))})
}

// updateErrorState sets or clears the decoration on one input.
func (r *Row) updateErrorState(f Field, valid bool, msg string) {
	if valid {
		r.decor[f] = Decoration{}
		return
	}
	r.decor[f] = Decoration{Error: true, Title: msg}
}

// Render rewrites every display field from the measurement. Decorations of
// a group that is no longer invalid are cleared with it.
func (r *Row) Render() {
	if r.destroyed {
		return
	}
	m := r.measurement

	if tf := m.Time(); tf.State() != model.FieldInvalid {
		text := ""
		if t, ok := tf.Value(); ok {
			text = geoformat.Time(t)
		}
		r.inputs[FieldTime].SetValue(text)
		r.updateErrorState(FieldTime, true, "")
	}

	if af := m.Angle(); af.State() != model.FieldInvalid {
		dms := [3]string{"", "", ""}
		if a, ok := af.Value(); ok {
			dms = geoformat.DecimalToDMS(a).Strings()
		}
		r.inputs[FieldDegrees].SetValue(dms[0])
		r.inputs[FieldMinutes].SetValue(dms[1])
		r.inputs[FieldSeconds].SetValue(dms[2])
		for _, f := range []Field{FieldDegrees, FieldMinutes, FieldSeconds} {
			r.updateErrorState(f, true, "")
		}
	}

	comps := [componentCount]model.Field[float64]{
		ComponentH: m.H(),
		ComponentE: m.E(),
		ComponentZ: m.Z(),
		ComponentF: m.F(),
	}
	for i, c := range comps {
		if v, ok := c.Value(); ok {
			r.cells[i] = geoformat.Nanoteslas(v)
		} else {
			r.cells[i] = r.placeholder
		}
	}
}
