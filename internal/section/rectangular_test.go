package section

import (
	"errors"
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestRectangularDefaults(tst *testing.T) {

	chk.PrintTitle("RectangularDefaults")

	r := NewRectangular()
	chk.Float64(tst, "width", 1e-15, r.Width(), 50)
	chk.Float64(tst, "height", 1e-15, r.Height(), 200)
	chk.Float64(tst, "W", 1e-9, r.SectionModulus(), 5.0*20.0*20.0/6.0)
	chk.Float64(tst, "J", 1e-9, r.MomentOfInertia(), 5.0*20.0*20.0*20.0/12.0)
	chk.Float64(tst, "A", 1e-12, r.Area(), 100)
}

func TestRectangularFormulas(tst *testing.T) {

	chk.PrintTitle("RectangularFormulas")

	dims := [][2]float64{
		{50, 200},
		{100, 300},
		{0.5, 0.5},
		{75.5, 225.25},
		{1200, 40},
	}
	r := NewRectangular()
	for _, d := range dims {
		if err := r.SetDimensions(d[0], d[1]); err != nil {
			tst.Fatalf("SetDimensions(%v, %v): %v", d[0], d[1], err)
		}
		b, h := d[0]/10, d[1]/10
		chk.Float64(tst, "W", 1e-9, r.SectionModulus(), b*h*h/6)
		chk.Float64(tst, "J", 1e-9, r.MomentOfInertia(), b*h*h*h/12)
	}
}

func TestRectangularRejectsInvalidDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
	}{
		{"zero width", 0, 200},
		{"zero height", 50, 0},
		{"negative width", -10, 200},
		{"negative height", 50, -1},
		{"both negative", -1, -1},
		{"NaN width", math.NaN(), 200},
		{"infinite height", 50, math.Inf(1)},
		{"height overflows J", 50, 1e110},
		{"width overflows W", 1e308, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRectangular()
			if err := r.SetDimensions(80, 240); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			calls := 0
			r.OnChange(func() { calls++ })

			err := r.SetDimensions(tt.width, tt.height)
			if !errors.Is(err, ErrInvalidDimension) {
				t.Fatalf("expected ErrInvalidDimension, got %v", err)
			}
			if r.Width() != 80 || r.Height() != 240 {
				t.Errorf("dimensions changed to %vx%v", r.Width(), r.Height())
			}
			if calls != 0 {
				t.Errorf("listener called %d times on rejected input", calls)
			}
		})
	}
}

func TestRectangularNotifiesListeners(t *testing.T) {
	r := NewRectangular()

	var seen []float64
	r.OnChange(func() { seen = append(seen, r.MomentOfInertia()) })

	if err := r.SetDimensions(50, 300); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(seen))
	}
	// listeners observe the new geometry, not the old one
	if seen[0] != r.MomentOfInertia() {
		t.Errorf("listener saw J=%v, want %v", seen[0], r.MomentOfInertia())
	}
}
