// internal/domain/unit/unit.go
package unit

import (
	"errors"
	"fmt"
)

// Dimension represents a physical measurement category. Quantities convert
// only within the same dimension.
type Dimension string

const (
	DimensionMass   Dimension = "mass"
	DimensionVolume Dimension = "volume"
	DimensionCount  Dimension = "count"
)

// Unit represents a measurement unit for raw-item quantities
type Unit string

const (
	UnitKilogram   Unit = "kg"
	UnitGram       Unit = "g"
	UnitLiter      Unit = "liter"
	UnitMilliliter Unit = "ml"
	UnitPiece      Unit = "piece"
	UnitBox        Unit = "box"
	UnitBag        Unit = "bag"
)

var (
	// ErrIncompatibleUnits is returned when converting across dimensions
	ErrIncompatibleUnits = errors.New("incompatible units")

	// ErrUnknownUnit is returned for values outside the closed unit set
	ErrUnknownUnit = errors.New("unknown unit")
)

// All returns every supported unit
func All() []Unit {
	return []Unit{UnitKilogram, UnitGram, UnitLiter, UnitMilliliter, UnitPiece, UnitBox, UnitBag}
}

// Dimension returns the physical dimension the unit belongs to
func (u Unit) Dimension() (Dimension, error) {
	switch u {
	case UnitKilogram, UnitGram:
		return DimensionMass, nil
	case UnitLiter, UnitMilliliter:
		return DimensionVolume, nil
	case UnitPiece, UnitBox, UnitBag:
		return DimensionCount, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, string(u))
	}
}

// Factor returns the multiplier relative to the smallest unit of the
// dimension. Count units all carry factor 1: packaging multipliers such as
// "1 box = 24 pieces" are not modeled.
func (u Unit) Factor() (float64, error) {
	switch u {
	case UnitKilogram, UnitLiter:
		return 1000, nil
	case UnitGram, UnitMilliliter, UnitPiece, UnitBox, UnitBag:
		return 1, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, string(u))
	}
}

// Valid reports whether u is part of the closed unit set
func (u Unit) Valid() bool {
	_, err := u.Dimension()
	return err == nil
}

// Parse converts a wire string into a Unit
func Parse(s string) (Unit, error) {
	u := Unit(s)
	if !u.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
	return u, nil
}

// Normalize converts a quantity from one unit to another. Both units must
// share a dimension; a cross-dimension conversion is a hard stop for callers.
func Normalize(quantity float64, from, to Unit) (float64, error) {
	fromDim, err := from.Dimension()
	if err != nil {
		return 0, err
	}
	toDim, err := to.Dimension()
	if err != nil {
		return 0, err
	}
	if fromDim != toDim {
		return 0, fmt.Errorf("%w: cannot convert %s (%s) to %s (%s)", ErrIncompatibleUnits, from, fromDim, to, toDim)
	}

	fromFactor, _ := from.Factor()
	toFactor, _ := to.Factor()
	return quantity * fromFactor / toFactor, nil
}

// Compatible reports whether two units share a dimension
func Compatible(a, b Unit) bool {
	ad, err := a.Dimension()
	if err != nil {
		return false
	}
	bd, err := b.Dimension()
	if err != nil {
		return false
	}
	return ad == bd
}

// CompatibleUnits lists all units sharing u's dimension, for input
// validation and choice lists
func CompatibleUnits(u Unit) ([]Unit, error) {
	dim, err := u.Dimension()
	if err != nil {
		return nil, err
	}

	var units []Unit
	for _, candidate := range All() {
		if d, _ := candidate.Dimension(); d == dim {
			units = append(units, candidate)
		}
	}
	return units, nil
}
