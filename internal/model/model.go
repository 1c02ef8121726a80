package model

import (
	"fmt"
	"strings"
)

// ReadingType tags one reading of an absolute observation sequence.
// The set is closed; the zero value is ReadingUnknown.
type ReadingType int

const (
	ReadingUnknown ReadingType = iota

	FirstMarkUp
	FirstMarkDown

	WestDown
	EastDown
	WestUp
	EastUp

	SecondMarkUp
	SecondMarkDown

	SouthDown
	NorthUp
	SouthUp
	NorthDown
)

type readingTypeInfo struct {
	key   string
	label string
}

var readingTypeTable = [...]readingTypeInfo{
	ReadingUnknown: {key: "unknown", label: "Type"},

	FirstMarkUp:   {key: "first-mark-up", label: "Mark Up"},
	FirstMarkDown: {key: "first-mark-down", label: "Mark Down"},

	WestDown: {key: "west-down", label: "West Down"},
	EastDown: {key: "east-down", label: "East Down"},
	WestUp:   {key: "west-up", label: "West Up"},
	EastUp:   {key: "east-up", label: "East Up"},

	SecondMarkUp:   {key: "second-mark-up", label: "Mark Up"},
	SecondMarkDown: {key: "second-mark-down", label: "Mark Down"},

	SouthDown: {key: "south-down", label: "South Down"},
	NorthUp:   {key: "north-up", label: "North Up"},
	SouthUp:   {key: "south-up", label: "South Up"},
	NorthDown: {key: "north-down", label: "North Down"},
}

// ReadingTypes returns every known reading type in observation order.
func ReadingTypes() []ReadingType {
	out := make([]ReadingType, 0, len(readingTypeTable)-1)
	for t := FirstMarkUp; int(t) < len(readingTypeTable); t++ {
		out = append(out, t)
	}
	return out
}

func (t ReadingType) valid() bool {
	return t > ReadingUnknown && int(t) < len(readingTypeTable)
}

// Label is the row header shown for the reading. Unknown values render "Type".
func (t ReadingType) Label() string {
	if !t.valid() {
		return readingTypeTable[ReadingUnknown].label
	}
	return readingTypeTable[t].label
}

func (t ReadingType) String() string {
	if !t.valid() {
		return readingTypeTable[ReadingUnknown].key
	}
	return readingTypeTable[t].key
}

// IsInclination reports whether the reading belongs to the inclination
// (north/south) half of the sequence.
func (t ReadingType) IsInclination() bool {
	switch t {
	case SouthDown, NorthUp, SouthUp, NorthDown:
		return true
	default:
		return false
	}
}

func ParseReadingType(s string) (ReadingType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, " ", "-")
	for _, t := range ReadingTypes() {
		if readingTypeTable[t].key == s {
			return t, nil
		}
	}
	return ReadingUnknown, fmt.Errorf("unknown reading type: %q", s)
}

func (t ReadingType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *ReadingType) UnmarshalText(b []byte) error {
	v, err := ParseReadingType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
