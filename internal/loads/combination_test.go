package loads

import (
	"errors"
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestCombineTimberFloor(tst *testing.T) {

	chk.PrintTitle("CombineTimberFloor")

	// 50 kgf/m² dead + 150 kgf/m² live on joists at 1 m
	line, err := TimberFactors.Combine(Components{Dead: 50, Live: 150}, 1.0)
	if err != nil {
		tst.Fatal(err)
	}

	chk.Float64(tst, "q_n", 1e-12, line.Normal, 2.0)
	chk.Float64(tst, "q_r", 1e-12, line.Rated, (1.1*50+1.2*150)/100)
	chk.Float64(tst, "factor", 1e-12, line.OverallFactor(), line.Rated/line.Normal)
}

func TestCombineSpacing(tst *testing.T) {

	chk.PrintTitle("CombineSpacing")

	c := Components{Dead: 40, Snow: 180}
	a, err := TimberFactors.Combine(c, 0.6)
	if err != nil {
		tst.Fatal(err)
	}
	b, err := TimberFactors.Combine(c, 1.2)
	if err != nil {
		tst.Fatal(err)
	}

	chk.Float64(tst, "q_n doubles", 1e-12, b.Normal, 2*a.Normal)
	chk.Float64(tst, "q_r doubles", 1e-12, b.Rated, 2*a.Rated)
}

func TestCombineRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		c       Components
		spacing float64
		wantErr error
	}{
		{"negative dead", Components{Dead: -1}, 1, ErrInvalidComponent},
		{"NaN wind", Components{Wind: math.NaN()}, 1, ErrInvalidComponent},
		{"zero spacing", Components{Dead: 10}, 0, nil},
		{"negative spacing", Components{Dead: 10}, -0.5, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TimberFactors.Combine(tt.c, tt.spacing)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestOverallFactorWithoutLoad(t *testing.T) {
	if f := (Line{}).OverallFactor(); f != 0 {
		t.Errorf("expected 0, got %v", f)
	}
}
