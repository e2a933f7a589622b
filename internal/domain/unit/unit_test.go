package unit

import (
	"errors"
	"math"
	"testing"
)

func TestNormalizeRoundTrip(t *testing.T) {
	for _, from := range All() {
		compatible, err := CompatibleUnits(from)
		if err != nil {
			t.Fatalf("compatible units for %s: %v", from, err)
		}
		for _, to := range compatible {
			converted, err := Normalize(2.5, from, to)
			if err != nil {
				t.Fatalf("normalize %s -> %s: %v", from, to, err)
			}
			back, err := Normalize(converted, to, from)
			if err != nil {
				t.Fatalf("normalize %s -> %s: %v", to, from, err)
			}
			if math.Abs(back-2.5) > 1e-9 {
				t.Fatalf("round trip %s -> %s -> %s: got %v, want 2.5", from, to, from, back)
			}
		}
	}
}

func TestNormalizeCrossDimensionFails(t *testing.T) {
	for _, from := range All() {
		fromDim, _ := from.Dimension()
		for _, to := range All() {
			toDim, _ := to.Dimension()
			if fromDim == toDim {
				continue
			}
			if _, err := Normalize(1, from, to); !errors.Is(err, ErrIncompatibleUnits) {
				t.Fatalf("normalize %s -> %s: expected ErrIncompatibleUnits, got %v", from, to, err)
			}
		}
	}
}

func TestNormalizeFactors(t *testing.T) {
	cases := []struct {
		qty      float64
		from, to Unit
		want     float64
	}{
		{1, UnitKilogram, UnitGram, 1000},
		{500, UnitGram, UnitKilogram, 0.5},
		{2, UnitLiter, UnitMilliliter, 2000},
		{250, UnitMilliliter, UnitLiter, 0.25},
		{3, UnitBox, UnitPiece, 3}, // count units carry no packaging multiplier
		{7, UnitPiece, UnitBag, 7},
	}
	for _, tc := range cases {
		got, err := Normalize(tc.qty, tc.from, tc.to)
		if err != nil {
			t.Fatalf("normalize %v %s -> %s: %v", tc.qty, tc.from, tc.to, err)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("normalize %v %s -> %s: got %v, want %v", tc.qty, tc.from, tc.to, got, tc.want)
		}
	}
}

func TestNormalizeUnknownUnit(t *testing.T) {
	if _, err := Normalize(1, Unit("stone"), UnitGram); !errors.Is(err, ErrUnknownUnit) {
		t.Fatalf("expected ErrUnknownUnit, got %v", err)
	}
	if _, err := Normalize(1, UnitGram, Unit("")); !errors.Is(err, ErrUnknownUnit) {
		t.Fatalf("expected ErrUnknownUnit, got %v", err)
	}
}

func TestCompatibleUnits(t *testing.T) {
	mass, err := CompatibleUnits(UnitKilogram)
	if err != nil {
		t.Fatalf("compatible units: %v", err)
	}
	if len(mass) != 2 {
		t.Fatalf("expected 2 mass units, got %v", mass)
	}

	count, err := CompatibleUnits(UnitBag)
	if err != nil {
		t.Fatalf("compatible units: %v", err)
	}
	if len(count) != 3 {
		t.Fatalf("expected 3 count units, got %v", count)
	}

	if _, err := CompatibleUnits(Unit("dozen")); !errors.Is(err, ErrUnknownUnit) {
		t.Fatalf("expected ErrUnknownUnit, got %v", err)
	}
}

func TestParse(t *testing.T) {
	u, err := Parse("ml")
	if err != nil {
		t.Fatalf("parse ml: %v", err)
	}
	if u != UnitMilliliter {
		t.Fatalf("parse ml: got %s", u)
	}
	if _, err := Parse("gallon"); !errors.Is(err, ErrUnknownUnit) {
		t.Fatalf("expected ErrUnknownUnit, got %v", err)
	}
}
