package model

// FieldState is the state of one editable measurement field.
type FieldState int

const (
	FieldUnset FieldState = iota
	FieldValid
	FieldInvalid
)

func (s FieldState) String() string {
	switch s {
	case FieldValid:
		return "valid"
	case FieldInvalid:
		return "invalid"
	default:
		return "unset"
	}
}

// Field is a value that is either unset, a committed value, or invalid with a
// message. An invalid field still remembers the last committed value (if
// any) so a failed edit leaves the stored value untouched, but Value reports
// nothing while the error stands.
type Field[T any] struct {
	state   FieldState
	value   T
	hasLast bool
	message string
}

func Unset[T any]() Field[T] {
	return Field[T]{}
}

func ValueOf[T any](v T) Field[T] {
	return Field[T]{state: FieldValid, value: v, hasLast: true}
}

// Invalid returns an invalid field with no remembered value. Measurement.Set
// carries the previous value over when it stores one.
func Invalid[T any](message string) Field[T] {
	return Field[T]{state: FieldInvalid, message: message}
}

// Assign wraps f for use in a Patch.
func Assign[T any](f Field[T]) *Field[T] {
	return &f
}

func (f Field[T]) State() FieldState { return f.state }

func (f Field[T]) IsUnset() bool { return f.state == FieldUnset }

// Value returns the committed value when the field is valid.
func (f Field[T]) Value() (T, bool) {
	if f.state != FieldValid {
		var zero T
		return zero, false
	}
	return f.value, true
}

// Last returns the most recently committed value, including while invalid.
func (f Field[T]) Last() (T, bool) {
	if !f.hasLast {
		var zero T
		return zero, false
	}
	return f.value, true
}

// Message returns the validation message when the field is invalid.
func (f Field[T]) Message() (string, bool) {
	if f.state != FieldInvalid {
		return "", false
	}
	return f.message, true
}

func (f Field[T]) withLast(prev Field[T]) Field[T] {
	if f.state != FieldInvalid || f.hasLast {
		return f
	}
	if v, ok := prev.Last(); ok {
		f.value = v
		f.hasLast = true
	}
	return f
}

func sameField[T any](a, b Field[T], eq func(x, y T) bool) bool {
	if a.state != b.state || a.hasLast != b.hasLast || a.message != b.message {
		return false
	}
	if !a.hasLast {
		return true
	}
	return eq(a.value, b.value)
}
