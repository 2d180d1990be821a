package value

import (
	"math"
	"strconv"
)

// Number is a 64-bit float with an optional unit. The unit is part of
// the number's identity: 5kWh and 5kW are different values.
// NaN and the infinities are legal.
type Number struct {
	// Val is the numeric value.
	Val float64

	// Unit is the unit symbol, or "" for a unitless number.
	Unit string
}

// Num creates a unitless Number.
func Num(val float64) Number {
	return Number{Val: val}
}

// NumUnit creates a Number with a unit.
func NumUnit(val float64, unit string) Number {
	return Number{Val: val, Unit: unit}
}

// Kind returns KindNumber.
func (Number) Kind() Kind { return KindNumber }

func (Number) sealed() {}

// String formats the number the way Zinc does, for diagnostics.
func (n Number) String() string {
	var s string
	switch {
	case math.IsNaN(n.Val):
		return "NaN"
	case math.IsInf(n.Val, 1):
		return "INF"
	case math.IsInf(n.Val, -1):
		return "-INF"
	default:
		s = strconv.FormatFloat(n.Val, 'g', -1, 64)
	}
	return s + n.Unit
}

// numberEqual compares value and unit. NaN compares equal to NaN so
// that codec round-trips preserve equality.
func numberEqual(a, b Number) bool {
	if a.Unit != b.Unit {
		return false
	}
	if math.IsNaN(a.Val) && math.IsNaN(b.Val) {
		return true
	}
	return a.Val == b.Val
}
