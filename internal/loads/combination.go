package loads

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidComponent is returned for negative or non-numeric load components
var ErrInvalidComponent = errors.New("invalid load component")

// Factors holds partial safety factors applied to service loads to obtain
// design loads
type Factors struct {
	Dead float64 // γf for self weight of timber structures
	Live float64 // γf for occupancy loads
	Snow float64 // γf for snow
	Wind float64 // γf for wind
}

// TimberFactors are the usual load factors for timber floors and roofs
var TimberFactors = Factors{
	Dead: 1.1,
	Live: 1.2,
	Snow: 1.4,
	Wind: 1.4,
}

// Components holds service (normative) area loads by type (kgf/m²)
type Components struct {
	Dead float64 // self weight and finishes
	Live float64 // occupancy
	Snow float64
	Wind float64
}

// Line holds the distributed line loads acting on one beam (kgf/cm)
type Line struct {
	Normal float64 // q_n - service load, used for deflection
	Rated  float64 // q_r - design load, used for strength
}

// Combine sums the area loads, applies the factors and converts them to line
// loads for beams placed spacing metres apart.
//
//	q (kgf/cm) = p (kgf/m²) · s (m) / 100
func (f Factors) Combine(c Components, spacing float64) (Line, error) {
	checks := []struct {
		name  string
		value float64
	}{
		{"dead", c.Dead},
		{"live", c.Live},
		{"snow", c.Snow},
		{"wind", c.Wind},
	}
	for _, ck := range checks {
		if ck.value < 0 || math.IsNaN(ck.value) || math.IsInf(ck.value, 0) {
			return Line{}, fmt.Errorf("%w: %s=%v", ErrInvalidComponent, ck.name, ck.value)
		}
	}
	if !(spacing > 0) || math.IsInf(spacing, 0) {
		return Line{}, fmt.Errorf("beam spacing must be > 0, got %v", spacing)
	}

	normal := c.Dead + c.Live + c.Snow + c.Wind
	rated := f.Dead*c.Dead + f.Live*c.Live + f.Snow*c.Snow + f.Wind*c.Wind

	return Line{
		Normal: normal * spacing / 100,
		Rated:  rated * spacing / 100,
	}, nil
}

// OverallFactor returns q_r/q_n, or 0 when there is no load
func (l Line) OverallFactor() float64 {
	if l.Normal == 0 {
		return 0
	}
	return l.Rated / l.Normal
}
