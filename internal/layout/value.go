// Package layout describes the size a widget asks its parent for.
// A container that switches between variants adopts the active variant's Size so
// the surrounding layout does not shift when the variant changes.
package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// Unit says how a Value is interpreted.
type Unit uint8

const (
	UnitFill    Unit = iota // Take all available space
	UnitFit                 // Size to content
	UnitFixed               // Absolute terminal cells
	UnitPercent             // Percentage of available space
)

// Value is one dimension of a size request.
type Value struct {
	Amount float64
	Unit   Unit
}

// Fill requests all available space.
func Fill() Value { return Value{Unit: UnitFill} }

// Fit requests exactly the content size.
func Fit() Value { return Value{Unit: UnitFit} }

// Fixed requests n terminal cells.
func Fixed(n int) Value { return Value{Amount: float64(n), Unit: UnitFixed} }

// Percent requests p percent of the available space.
func Percent(p float64) Value { return Value{Amount: p, Unit: UnitPercent} }

// Resolve turns v into cells given the available space and the content size.
// The result never exceeds available.
func (v Value) Resolve(available, content int) int {
	var n int
	switch v.Unit {
	case UnitFixed:
		n = int(v.Amount)
	case UnitPercent:
		n = int(float64(available) * v.Amount / 100.0)
	case UnitFit:
		n = content
	default:
		n = available
	}
	return max(0, min(n, available))
}

func (v Value) String() string {
	switch v.Unit {
	case UnitFixed:
		return strconv.Itoa(int(v.Amount))
	case UnitPercent:
		return strconv.FormatFloat(v.Amount, 'f', -1, 64) + "%"
	case UnitFit:
		return "fit"
	default:
		return "fill"
	}
}

// ParseValue reads the configuration spelling of a Value:
// "fill", "fit", "<cells>" or "<n>%". The empty string is Fill.
func ParseValue(s string) (Value, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "", "fill":
		return Fill(), nil
	case "fit":
		return Fit(), nil
	}
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		p, err := strconv.ParseFloat(pct, 64)
		if err != nil || p < 0 || p > 100 {
			return Value{}, fmt.Errorf("invalid percentage %q", s)
		}
		return Percent(p), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return Value{}, fmt.Errorf("invalid size %q: want fill, fit, cells or percent", s)
	}
	return Fixed(n), nil
}

// Size is a two-dimensional size request.
type Size struct {
	Width  Value
	Height Value
}

// FillBoth is the size request of a container with no active child.
func FillBoth() Size {
	return Size{Width: Fill(), Height: Fill()}
}

// Dim is a resolved size in cells or layout units.
type Dim struct {
	Width  int
	Height int
}

// IsZero reports whether d is the unknown/neutral size.
func (d Dim) IsZero() bool {
	return d.Width == 0 && d.Height == 0
}
