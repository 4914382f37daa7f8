package beam

import (
	"errors"
	"fmt"
	"math"

	"github.com/alexiusacademia/gotb/internal/timber"
)

// Default loading of a new beam
const (
	DefaultNormalLoad = 2.0    // q_n (kgf/cm)
	DefaultRatedLoad  = 2.2    // q_r (kgf/cm)
	DefaultSpan       = 4000.0 // l (mm)
)

var (
	// ErrInvalidSpan is returned when the span length is not a positive number
	ErrInvalidSpan = errors.New("invalid span")

	// ErrInvalidLoad is returned when a distributed load is negative or not a number
	ErrInvalidLoad = errors.New("invalid load")

	// ErrDivisionByZero is returned when R, E or J is zero
	ErrDivisionByZero = errors.New("division by zero")

	// ErrOverflow is returned when a result does not fit in a float64
	ErrOverflow = errors.New("numeric overflow")
)

// Geometry is the part of a cross-section the beam formulas depend on
type Geometry interface {
	MomentOfInertia() float64 // J (cm⁴)
}

// SingleSpan represents a simply supported single-span beam under a uniformly
// distributed load. Loads are in kgf/cm, the span in mm.
type SingleSpan struct {
	normalLoad float64 // q_n - service (normative) load, used for deflection
	ratedLoad  float64 // q_r - design (rated) load, used for strength
	span       float64 // l - span length (mm)

	listeners []func()
}

// NewSingleSpan creates a beam with the default loading and a 4 m span
func NewSingleSpan() *SingleSpan {
	return &SingleSpan{
		normalLoad: DefaultNormalLoad,
		ratedLoad:  DefaultRatedLoad,
		span:       DefaultSpan,
	}
}

// NormalLoad returns the service load q_n (kgf/cm)
func (b *SingleSpan) NormalLoad() float64 { return b.normalLoad }

// RatedLoad returns the design load q_r (kgf/cm)
func (b *SingleSpan) RatedLoad() float64 { return b.ratedLoad }

// Span returns the span length (mm)
func (b *SingleSpan) Span() float64 { return b.span }

// SetLoads replaces both distributed loads. Negative values are rejected and
// the previous loads are kept.
func (b *SingleSpan) SetLoads(normal, rated float64) error {
	if !nonNegative(normal) || !nonNegative(rated) {
		return fmt.Errorf("%w: q_n=%v, q_r=%v (both must be >= 0)", ErrInvalidLoad, normal, rated)
	}

	b.normalLoad = normal
	b.ratedLoad = rated
	b.notify()
	return nil
}

// SetSpan replaces the span length. Non-positive values are rejected and the
// previous span is kept.
func (b *SingleSpan) SetSpan(length float64) error {
	if !nonNegative(length) || length == 0 {
		return fmt.Errorf("%w: l=%v (must be > 0)", ErrInvalidSpan, length)
	}

	b.span = length
	b.notify()
	return nil
}

// OnChange registers fn to be called after every successful SetLoads or SetSpan
func (b *SingleSpan) OnChange(fn func()) {
	b.listeners = append(b.listeners, fn)
}

func (b *SingleSpan) notify() {
	for _, fn := range b.listeners {
		fn()
	}
}

// Result holds the strength and stiffness check of a single-span beam
type Result struct {
	MaxBendingMoment       float64 // Mmax = q_r·l²/8 (kgf·cm)
	RequiredSectionModulus float64 // Wreq = Mmax/R (cm³)
	DeflectionRatio        float64 // f/l = 5·q_n·l³/(384·E·J)
}

// Recompute derives the beam results from the current loads and span, the
// section's moment of inertia and the material constants. It does not modify
// the beam, so repeated calls with unchanged inputs give identical results.
func (b *SingleSpan) Recompute(sec Geometry, mat timber.Material) (Result, error) {
	r := mat.BendingResistance
	e := mat.ElasticModulus
	j := sec.MomentOfInertia()

	if r == 0 {
		return Result{}, fmt.Errorf("%w: bending resistance R of %q is zero", ErrDivisionByZero, mat.ID)
	}
	if e == 0 {
		return Result{}, fmt.Errorf("%w: elastic modulus E of %q is zero", ErrDivisionByZero, mat.ID)
	}
	if j == 0 {
		return Result{}, fmt.Errorf("%w: moment of inertia J is zero", ErrDivisionByZero)
	}
	if !finite(r) || !finite(j) || !finite(384*e*j) {
		return Result{}, fmt.Errorf("%w: R=%v, E=%v, J=%v", ErrOverflow, r, e, j)
	}

	// Span in cm
	l := b.span / 10

	result := Result{}
	result.MaxBendingMoment = b.ratedLoad * math.Pow(l, 2) / 8
	result.RequiredSectionModulus = result.MaxBendingMoment / r
	result.DeflectionRatio = 5 * b.normalLoad * math.Pow(l, 3) / (384 * e * j)

	if !finite(result.MaxBendingMoment) || !finite(result.RequiredSectionModulus) || !finite(result.DeflectionRatio) {
		return Result{}, fmt.Errorf("%w: Mmax=%v, Wreq=%v, f/l=%v", ErrOverflow,
			result.MaxBendingMoment, result.RequiredSectionModulus, result.DeflectionRatio)
	}

	return result, nil
}

func nonNegative(v float64) bool {
	return v >= 0 && finite(v)
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
