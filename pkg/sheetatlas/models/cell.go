// Package models defines the value types shared by the sheetatlas services.
package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ValueKind identifies which variant a CellValue holds.
type ValueKind uint8

const (
	// KindEmpty is a cell with no content.
	KindEmpty ValueKind = iota
	// KindText is a string cell.
	KindText
	// KindInteger is a signed 64-bit integer cell.
	KindInteger
	// KindNumber is a finite floating point cell.
	KindNumber
	// KindDateTime is a date-time without timezone.
	KindDateTime
	// KindBoolean is a boolean cell.
	KindBoolean
)

func (k ValueKind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindNumber:
		return "number"
	case KindDateTime:
		return "datetime"
	case KindBoolean:
		return "boolean"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// CellValue is a typed cell value holding exactly one variant.
// The zero value is Empty.
type CellValue struct {
	kind ValueKind
	text string
	i    int64
	f    float64
	t    time.Time
	b    bool
}

// Empty returns the empty cell value.
func Empty() CellValue { return CellValue{} }

// Text returns a text cell value.
func Text(s string) CellValue { return CellValue{kind: KindText, text: s} }

// Integer returns an integer cell value.
func Integer(i int64) CellValue { return CellValue{kind: KindInteger, i: i} }

// Number returns a floating point cell value.
// It panics on NaN or infinity; callers must map those to Empty first.
func Number(f float64) CellValue {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		panic(fmt.Sprintf("models: Number called with non-finite value %v", f))
	}
	return CellValue{kind: KindNumber, f: f}
}

// DateTime returns a date-time cell value. The location of t is dropped and
// its wall clock is kept.
func DateTime(t time.Time) CellValue {
	wall := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	return CellValue{kind: KindDateTime, t: wall}
}

// Boolean returns a boolean cell value.
func Boolean(b bool) CellValue { return CellValue{kind: KindBoolean, b: b} }

// Kind returns the variant held by v.
func (v CellValue) Kind() ValueKind { return v.kind }

// IsEmpty reports whether v is Empty.
func (v CellValue) IsEmpty() bool { return v.kind == KindEmpty }

// AsText returns the string of a Text value.
func (v CellValue) AsText() (string, bool) { return v.text, v.kind == KindText }

// AsInteger returns the integer of an Integer value.
func (v CellValue) AsInteger() (int64, bool) { return v.i, v.kind == KindInteger }

// AsNumber returns the float of a Number value.
func (v CellValue) AsNumber() (float64, bool) { return v.f, v.kind == KindNumber }

// AsDateTime returns the time of a DateTime value.
func (v CellValue) AsDateTime() (time.Time, bool) { return v.t, v.kind == KindDateTime }

// AsBoolean returns the bool of a Boolean value.
func (v CellValue) AsBoolean() (bool, bool) { return v.b, v.kind == KindBoolean }

// Equal reports whether v and o hold the same variant and value.
func (v CellValue) Equal(o CellValue) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindEmpty:
		return true
	case KindText:
		return v.text == o.text
	case KindInteger:
		return v.i == o.i
	case KindNumber:
		return v.f == o.f
	case KindDateTime:
		return v.t.Equal(o.t)
	case KindBoolean:
		return v.b == o.b
	}
	return false
}

// String returns the canonical text form of v. Feeding the canonical form
// back through normalization yields the same value.
func (v CellValue) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindNumber:
		s := strconv.FormatFloat(v.f, 'f', -1, 64)
		_, frac, ok := strings.Cut(s, ".")
		switch {
		case !ok:
			s += ".0"
		case len(frac) == 3:
			// "1.234" would read back as a thousands group.
			s += "0"
		}
		return s
	case KindDateTime:
		return formatDateTime(v.t)
	case KindBoolean:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Native returns the Go value an export writer should emit for v:
// nil, string, int64, float64, time.Time or bool.
func (v CellValue) Native() any {
	switch v.kind {
	case KindText:
		return v.text
	case KindInteger:
		return v.i
	case KindNumber:
		return v.f
	case KindDateTime:
		return v.t
	case KindBoolean:
		return v.b
	default:
		return nil
	}
}

// MarshalJSON encodes v as null, a string, a number, an ISO date string or a bool.
func (v CellValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindDateTime:
		return json.Marshal(formatDateTime(v.t))
	default:
		return json.Marshal(v.Native())
	}
}

func formatDateTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	if t.Nanosecond() != 0 {
		return t.Format("2006-01-02T15:04:05.999999999")
	}
	return t.Format("2006-01-02T15:04:05")
}
