package model

import "time"

// Field names reported in Change notifications.
const (
	FieldNameAngle = "angle"
	FieldNameTime  = "time"
	FieldNameH     = "h"
	FieldNameE     = "e"
	FieldNameZ     = "z"
	FieldNameF     = "f"
)

// Patch is a partial update for Measurement.Set. Nil members are left alone.
type Patch struct {
	Angle *Field[float64]
	Time  *Field[time.Time]

	// Computed field components (nT). Only Unset and ValueOf are meaningful.
	H *Field[float64]
	E *Field[float64]
	Z *Field[float64]
	F *Field[float64]
}

// Change describes one Set that modified at least one field.
type Change struct {
	Fields []string
}

func (c Change) Has(name string) bool {
	for _, f := range c.Fields {
		if f == name {
			return true
		}
	}
	return false
}

// Measurement is a single reading of an absolute observation. It is not
// safe for concurrent use; callers serialize access on one event loop.
type Measurement struct {
	typ ReadingType

	angle Field[float64]
	time  Field[time.Time]

	h, e, z, f Field[float64]

	nextSubID int
	subs      []*Subscription
}

func NewMeasurement(t ReadingType) *Measurement {
	return &Measurement{typ: t}
}

func (m *Measurement) Type() ReadingType { return m.typ }

func (m *Measurement) Angle() Field[float64] { return m.angle }

func (m *Measurement) Time() Field[time.Time] { return m.time }

func (m *Measurement) H() Field[float64] { return m.h }
func (m *Measurement) E() Field[float64] { return m.e }
func (m *Measurement) Z() Field[float64] { return m.z }
func (m *Measurement) F() Field[float64] { return m.f }

// Set applies p and, when anything actually changed, notifies subscribers
// synchronously before returning.
func (m *Measurement) Set(p Patch) {
	var changed []string

	if p.Angle != nil {
		next := p.Angle.withLast(m.angle)
		if !sameField(m.angle, next, floatEqual) {
			m.angle = next
			changed = append(changed, FieldNameAngle)
		}
	}
	if p.Time != nil {
		next := p.Time.withLast(m.time)
		if !sameField(m.time, next, timeEqual) {
			m.time = next
			changed = append(changed, FieldNameTime)
		}
	}
	setComponent := func(dst *Field[float64], src *Field[float64], name string) {
		if src == nil {
			return
		}
		if !sameField(*dst, *src, floatEqual) {
			*dst = *src
			changed = append(changed, name)
		}
	}
	setComponent(&m.h, p.H, FieldNameH)
	setComponent(&m.e, p.E, FieldNameE)
	setComponent(&m.z, p.Z, FieldNameZ)
	setComponent(&m.f, p.F, FieldNameF)

	if len(changed) == 0 {
		return
	}
	m.notify(Change{Fields: changed})
}

func (m *Measurement) notify(c Change) {
	// Snapshot so handlers may cancel (or subscribe) while being dispatched.
	subs := append([]*Subscription(nil), m.subs...)
	for _, s := range subs {
		if s.active() {
			s.handler(c)
		}
	}
}

// Subscribe registers handler for change notifications. The returned
// subscription must be cancelled by the owner when it is done.
func (m *Measurement) Subscribe(handler func(Change)) *Subscription {
	m.nextSubID++
	s := &Subscription{m: m, id: m.nextSubID, handler: handler}
	m.subs = append(m.subs, s)
	return s
}

// Subscribers returns the number of live subscriptions.
func (m *Measurement) Subscribers() int {
	return len(m.subs)
}

func (m *Measurement) remove(id int) {
	for i, s := range m.subs {
		if s.id == id {
			m.subs = append(m.subs[:i], m.subs[i+1:]...)
			return
		}
	}
}

// Subscription is a handle to one registered change handler.
type Subscription struct {
	m       *Measurement
	id      int
	handler func(Change)
}

func (s *Subscription) active() bool {
	return s != nil && s.m != nil
}

// Cancel detaches the handler. It is safe to call more than once.
func (s *Subscription) Cancel() {
	if !s.active() {
		return
	}
	s.m.remove(s.id)
	s.m = nil
	s.handler = nil
}

func floatEqual(a, b float64) bool { return a == b }

func timeEqual(a, b time.Time) bool { return a.Equal(b) }
