package service

import (
	"fmt"
	"math"

	"github.com/msomdec/knitshape/internal/domain"
)

// Unit is a length unit used for gauge swatches and measurements.
type Unit string

const (
	UnitCentimetre Unit = "cm"
	UnitInch       Unit = "in"
)

const cmPerInch = 2.54

// ParseUnit converts a form or flag value into a Unit. An empty string
// selects centimetres.
func ParseUnit(s string) (Unit, error) {
	switch Unit(s) {
	case "", UnitCentimetre:
		return UnitCentimetre, nil
	case UnitInch, "inch":
		return UnitInch, nil
	}
	return "", fmt.Errorf("%w: unknown unit %q", domain.ErrInvalidInput, s)
}

// Gauge describes a measured swatch: Stitches and Rows counted over Per units
// (typically 10 cm or 4 in).
type Gauge struct {
	Stitches float64
	Rows     float64
	Per      float64
	Unit     Unit
}

// Validate reports whether the gauge can be used for conversion.
func (g Gauge) Validate() error {
	if g.Stitches <= 0 || g.Rows <= 0 || g.Per <= 0 {
		return fmt.Errorf("%w: gauge stitches, rows and swatch size must be positive", domain.ErrInvalidInput)
	}
	if _, err := ParseUnit(string(g.Unit)); err != nil {
		return err
	}
	return nil
}

// StitchesFor converts a width, given in unit, into a whole stitch count.
func (g Gauge) StitchesFor(length float64, unit Unit) (int, error) {
	return g.convert(length, unit, g.Stitches)
}

// RowsFor converts a height, given in unit, into a whole row count.
func (g Gauge) RowsFor(length float64, unit Unit) (int, error) {
	return g.convert(length, unit, g.Rows)
}

func (g Gauge) convert(length float64, unit Unit, count float64) (int, error) {
	if err := g.Validate(); err != nil {
		return 0, err
	}
	if length < 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return 0, fmt.Errorf("%w: length must be a non-negative number", domain.ErrInvalidInput)
	}
	if _, err := ParseUnit(string(unit)); err != nil {
		return 0, err
	}
	perUnit := count / toCentimetres(g.Per, g.Unit)
	v := math.Round(toCentimetres(length, unit) * perUnit)
	if math.IsNaN(v) || math.IsInf(v, 0) || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: measurement too large for this gauge", domain.ErrInvalidInput)
	}
	return int(v), nil
}

func toCentimetres(v float64, u Unit) float64 {
	if u == UnitInch {
		return v * cmPerInch
	}
	return v
}
