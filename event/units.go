package event

import (
	"fmt"
	"strings"
)

// MomentumUnit is the unit of particle momenta.
type MomentumUnit uint8

const (
	GeV MomentumUnit = iota
	MeV
)

func (u MomentumUnit) String() string {
	if u == MeV {
		return "MEV"
	}
	return "GEV"
}

// LengthUnit is the unit of vertex positions.
type LengthUnit uint8

const (
	MM LengthUnit = iota
	CM
)

func (u LengthUnit) String() string {
	if u == CM {
		return "CM"
	}
	return "MM"
}

// ParseMomentumUnit parses "GEV" or "MEV", case-insensitively.
func ParseMomentumUnit(s string) (MomentumUnit, error) {
	switch strings.ToUpper(s) {
	case "GEV":
		return GeV, nil
	case "MEV":
		return MeV, nil
	default:
		return GeV, fmt.Errorf("%w: momentum unit %q", ErrInvalidArgument, s)
	}
}

// ParseLengthUnit parses "MM" or "CM", case-insensitively.
func ParseLengthUnit(s string) (LengthUnit, error) {
	switch strings.ToUpper(s) {
	case "MM":
		return MM, nil
	case "CM":
		return CM, nil
	default:
		return MM, fmt.Errorf("%w: length unit %q", ErrInvalidArgument, s)
	}
}

func momentumScale(from, to MomentumUnit) float64 {
	switch {
	case from == to:
		return 1
	case from == GeV:
		return 1000
	default:
		return 0.001
	}
}

func lengthScale(from, to LengthUnit) float64 {
	switch {
	case from == to:
		return 1
	case from == CM:
		return 10
	default:
		return 0.1
	}
}
