package section

import (
	"errors"
	"fmt"
	"math"
)

// Default dimensions of a new profile (mm)
const (
	DefaultWidth  = 50.0
	DefaultHeight = 200.0
)

// ErrInvalidDimension is returned when a width or height is not a positive number
var ErrInvalidDimension = errors.New("invalid dimension")

// Rectangular represents a rectangular timber cross-section.
// Dimensions are stored in millimetres, derived properties are reported in
// centimetre units (cm², cm³, cm⁴).
type Rectangular struct {
	width  float64 // b - section width (mm)
	height float64 // h - section height (mm)

	listeners []func()
}

// NewRectangular creates a profile with the default 50x200 mm dimensions
func NewRectangular() *Rectangular {
	return &Rectangular{
		width:  DefaultWidth,
		height: DefaultHeight,
	}
}

// Width returns the section width (mm)
func (r *Rectangular) Width() float64 { return r.width }

// Height returns the section height (mm)
func (r *Rectangular) Height() float64 { return r.height }

// SetDimensions replaces width and height together. Dimensions so large that
// W or J no longer fit in a float64 are rejected as well.
// If either value is rejected the profile keeps its previous dimensions.
func (r *Rectangular) SetDimensions(width, height float64) error {
	if !positive(width) || !positive(height) {
		return fmt.Errorf("%w: width=%v, height=%v (both must be > 0)", ErrInvalidDimension, width, height)
	}
	if w, j := sectionModulus(width, height), momentOfInertia(width, height); !finite(w) || !finite(j) {
		return fmt.Errorf("%w: width=%v, height=%v give W=%v, J=%v", ErrInvalidDimension, width, height, w, j)
	}

	r.width = width
	r.height = height

	for _, fn := range r.listeners {
		fn()
	}
	return nil
}

// OnChange registers fn to be called after every successful SetDimensions
func (r *Rectangular) OnChange(fn func()) {
	r.listeners = append(r.listeners, fn)
}

// Area calculates the gross area (cm²)
func (r *Rectangular) Area() float64 {
	return (r.width / 10) * (r.height / 10)
}

// SectionModulus calculates the elastic section modulus W = b·h²/6 (cm³)
func (r *Rectangular) SectionModulus() float64 {
	return sectionModulus(r.width, r.height)
}

// MomentOfInertia calculates the moment of inertia J = b·h³/12 (cm⁴)
func (r *Rectangular) MomentOfInertia() float64 {
	return momentOfInertia(r.width, r.height)
}

func sectionModulus(width, height float64) float64 {
	return (width / 10) * math.Pow(height/10, 2) / 6
}

func momentOfInertia(width, height float64) float64 {
	return (width / 10) * math.Pow(height/10, 3) / 12
}

func positive(v float64) bool {
	return v > 0 && finite(v)
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
