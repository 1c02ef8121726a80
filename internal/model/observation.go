package model

import (
	"encoding/json"
	"io"
	"time"

	"github.com/pkg/errors"
)

// Observation is one absolute observation session. Rows only read Begin.
type Observation struct {
	ID       string
	Observer string

	// TotalField is the reference total field intensity (nT) used when
	// computing field components, if known.
	TotalField *float64

	Measurements []*Measurement

	begin time.Time
}

func NewObservation(begin time.Time) *Observation {
	return &Observation{begin: begin.UTC()}
}

// StandardObservation creates an observation with one measurement per
// reading type, in observation order.
func StandardObservation(begin time.Time) *Observation {
	o := NewObservation(begin)
	for _, t := range ReadingTypes() {
		o.Measurements = append(o.Measurements, NewMeasurement(t))
	}
	return o
}

// Begin is the reference epoch relative clock times are resolved against.
func (o *Observation) Begin() time.Time { return o.begin }

type observationJSON struct {
	ID           string         `json:"id,omitempty"`
	Observer     string         `json:"observer,omitempty"`
	Begin        time.Time      `json:"begin"`
	TotalField   *float64       `json:"totalField,omitempty"`
	Measurements []*Measurement `json:"measurements"`
}

func (o *Observation) MarshalJSON() ([]byte, error) {
	ms := o.Measurements
	if ms == nil {
		ms = []*Measurement{}
	}
	return json.Marshal(observationJSON{
		ID:           o.ID,
		Observer:     o.Observer,
		Begin:        o.begin,
		TotalField:   o.TotalField,
		Measurements: ms,
	})
}

func (o *Observation) UnmarshalJSON(b []byte) error {
	var raw observationJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.Begin.IsZero() {
		return errors.New("observation: missing begin")
	}
	for _, m := range raw.Measurements {
		if m == nil {
			return errors.New("observation: null measurement")
		}
	}
	o.ID = raw.ID
	o.Observer = raw.Observer
	o.TotalField = raw.TotalField
	o.begin = raw.Begin.UTC()
	o.Measurements = raw.Measurements
	if len(o.Measurements) == 0 {
		o.Measurements = StandardObservation(o.begin).Measurements
	}
	return nil
}

// DecodeObservation reads one observation document.
func DecodeObservation(r io.Reader) (*Observation, error) {
	var o Observation
	if err := json.NewDecoder(r).Decode(&o); err != nil {
		return nil, errors.Wrap(err, "decode observation")
	}
	return &o, nil
}

type measurementJSON struct {
	Type       ReadingType `json:"type"`
	Label      string      `json:"label,omitempty"`
	Angle      *float64    `json:"angle"`
	AngleError *string     `json:"angle_error"`
	AngleLast  *float64    `json:"angle_last,omitempty"`
	Time       *time.Time  `json:"time"`
	TimeError  *string     `json:"time_error"`
	TimeLast   *time.Time  `json:"time_last,omitempty"`
	H          *float64    `json:"h"`
	E          *float64    `json:"e"`
	Z          *float64    `json:"z"`
	F          *float64    `json:"f"`
}

// MarshalJSON writes the flat record shape. At most one of a value and its
// error is set; an invalid field carries its last committed value under the
// *_last key.
func (m *Measurement) MarshalJSON() ([]byte, error) {
	out := measurementJSON{Type: m.typ, Label: m.typ.Label()}
	out.Angle, out.AngleError, out.AngleLast = encodeField(m.angle)
	out.Time, out.TimeError, out.TimeLast = encodeField(m.time)
	out.H = componentPtr(m.h)
	out.E = componentPtr(m.e)
	out.Z = componentPtr(m.z)
	out.F = componentPtr(m.f)
	return json.Marshal(out)
}

func (m *Measurement) UnmarshalJSON(b []byte) error {
	var raw measurementJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	m.typ = raw.Type
	m.angle = decodeField(raw.Angle, raw.AngleError, raw.AngleLast)
	for _, t := range []**time.Time{&raw.Time, &raw.TimeLast} {
		if *t != nil {
			u := (*t).UTC()
			*t = &u
		}
	}
	m.time = decodeField(raw.Time, raw.TimeError, raw.TimeLast)
	m.h = decodeField(raw.H, nil, nil)
	m.e = decodeField(raw.E, nil, nil)
	m.z = decodeField(raw.Z, nil, nil)
	m.f = decodeField(raw.F, nil, nil)
	return nil
}

func encodeField[T any](f Field[T]) (value *T, msg *string, last *T) {
	if v, ok := f.Value(); ok {
		return &v, nil, nil
	}
	m, ok := f.Message()
	if !ok {
		return nil, nil, nil
	}
	if v, ok := f.Last(); ok {
		last = &v
	}
	return nil, &m, last
}

// decodeField rebuilds a field. With an error, the value is taken as the
// last committed one; last wins when both are given.
func decodeField[T any](v *T, msg *string, last *T) Field[T] {
	if msg == nil {
		if v != nil {
			return ValueOf(*v)
		}
		return Field[T]{}
	}
	var prev Field[T]
	if last != nil {
		prev = ValueOf(*last)
	} else if v != nil {
		prev = ValueOf(*v)
	}
	return Invalid[T](*msg).withLast(prev)
}

func componentPtr(f Field[float64]) *float64 {
	if v, ok := f.Value(); ok {
		return &v
	}
	return nil
}
