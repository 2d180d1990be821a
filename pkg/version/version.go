// Package version provides grid version parsing and comparison.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Current is the grid version this library emits.
const Current = "3.0"

// MinSupported is the oldest grid version this library accepts.
const MinSupported = "2.0"

// GridVersion represents a parsed "major.minor" grid version.
type GridVersion struct {
	Major uint16
	Minor uint16
}

// Parse parses a "major.minor" version string.
func Parse(s string) (GridVersion, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return GridVersion{}, fmt.Errorf("invalid version %q: expected major.minor", s)
	}

	major, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil || parts[0] == "" {
		return GridVersion{}, fmt.Errorf("invalid version %q: bad major component", s)
	}

	minor, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil || parts[1] == "" {
		return GridVersion{}, fmt.Errorf("invalid version %q: bad minor component", s)
	}

	return GridVersion{Major: uint16(major), Minor: uint16(minor)}, nil
}

// String returns the version as "major.minor".
func (v GridVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// AtLeast returns true if v is the same as or newer than other.
func (v GridVersion) AtLeast(other GridVersion) bool {
	if v.Major != other.Major {
		return v.Major > other.Major
	}
	return v.Minor >= other.Minor
}

// IsSupported reports whether a version string names a grid version
// this library can decode.
func IsSupported(s string) bool {
	v, err := Parse(s)
	if err != nil {
		return false
	}
	min, _ := Parse(MinSupported)
	max, _ := Parse(Current)
	return v.AtLeast(min) && max.AtLeast(v)
}
