package beam

import (
	"fmt"

	"github.com/alexiusacademia/gotb/internal/timber"
)

// Diagram holds internal force and elastic line values sampled along the span
type Diagram struct {
	X          []float64 // distance from the left support (cm)
	Moment     []float64 // M(x) under q_r (kgf·cm)
	Deflection []float64 // y(x) under q_n (cm), positive downward
}

// Diagram samples the bending moment and deflection at the given number of
// evenly spaced stations from support to support (points >= 2).
//
//	M(x) = q_r·x·(l - x)/2
//	y(x) = q_n·x·(l³ - 2·l·x² + x³)/(24·E·J)
//
// At midspan these reduce to Mmax and (f/l)·l.
func (b *SingleSpan) Diagram(sec Geometry, mat timber.Material, points int) (*Diagram, error) {
	if points < 2 {
		return nil, fmt.Errorf("diagram needs at least 2 points, got %d", points)
	}

	e := mat.ElasticModulus
	j := sec.MomentOfInertia()
	if e == 0 || j == 0 {
		return nil, fmt.Errorf("%w: E=%v, J=%v", ErrDivisionByZero, e, j)
	}

	l := b.span / 10
	ej := e * j
	if !finite(24 * ej) {
		return nil, fmt.Errorf("%w: E=%v, J=%v", ErrOverflow, e, j)
	}

	d := &Diagram{
		X:          make([]float64, points),
		Moment:     make([]float64, points),
		Deflection: make([]float64, points),
	}

	for i := 0; i < points; i++ {
		x := l * float64(i) / float64(points-1)
		d.X[i] = x
		d.Moment[i] = b.ratedLoad * x * (l - x) / 2
		d.Deflection[i] = b.normalLoad * x * (l*l*l - 2*l*x*x + x*x*x) / (24 * ej)

		if !finite(d.Moment[i]) || !finite(d.Deflection[i]) {
			return nil, fmt.Errorf("%w: at x=%.2f cm", ErrOverflow, x)
		}
	}

	return d, nil
}

// MaxDeflection returns the largest sampled deflection (cm)
func (d *Diagram) MaxDeflection() float64 {
	var max float64
	for _, y := range d.Deflection {
		if y > max {
			max = y
		}
	}
	return max
}
