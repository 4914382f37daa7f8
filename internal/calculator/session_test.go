package calculator

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexiusacademia/gotb/internal/beam"
	"github.com/alexiusacademia/gotb/internal/logger"
	"github.com/alexiusacademia/gotb/internal/section"
	"github.com/alexiusacademia/gotb/internal/timber"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// recorder is a Display that keeps every update it receives
type recorder struct {
	outs []Outputs
	errs []error
}

func (r *recorder) Show(out Outputs, err error) {
	r.outs = append(r.outs, out)
	r.errs = append(r.errs, err)
}

func (r *recorder) last() (Outputs, error) {
	return r.outs[len(r.outs)-1], r.errs[len(r.errs)-1]
}

func newSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	s, err := New(timber.Defaults(), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestSessionDefaults(t *testing.T) {
	s := newSession(t)

	got, err := s.Outputs()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	j := 5.0 * 20 * 20 * 20 / 12
	want := Outputs{
		SectionModulus:         5.0 * 20 * 20 / 6,
		MomentOfInertia:        j,
		MaxBendingMoment:       44000,
		RequiredSectionModulus: 44000.0 / 130,
		DeflectionRatio:        5 * 2.0 * 400 * 400 * 400 / (384 * 100000 * j),
	}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("outputs mismatch (-want +got):\n%s", diff)
	}
}

func TestSessionMaterialSwitch(t *testing.T) {
	s := newSession(t)
	before, _ := s.Outputs()

	rec := &recorder{}
	s.AddDisplay(rec)

	if err := s.SelectMaterial("ultralam_r"); err != nil {
		t.Fatal(err)
	}
	after, err := rec.last()
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(before.RequiredSectionModulus/2, after.RequiredSectionModulus, approx); diff != "" {
		t.Errorf("Wreq did not halve:\n%s", diff)
	}
	if diff := cmp.Diff(before.DeflectionRatio*100000/140000, after.DeflectionRatio, approx); diff != "" {
		t.Errorf("f/l did not scale with E:\n%s", diff)
	}
	if after.MomentOfInertia != before.MomentOfInertia || after.MaxBendingMoment != before.MaxBendingMoment {
		t.Errorf("material change altered geometry or moment")
	}
}

func TestSessionGeometryPropagation(t *testing.T) {
	s := newSession(t)
	before, _ := s.Outputs()

	rec := &recorder{}
	s.AddDisplay(rec)
	shown := len(rec.outs)

	if err := s.SetDimensions(50, 300); err != nil {
		t.Fatal(err)
	}

	if len(rec.outs) != shown+1 {
		t.Fatalf("expected exactly one recomputation, got %d", len(rec.outs)-shown)
	}
	after, err := rec.last()
	if err != nil {
		t.Fatal(err)
	}

	if after.MomentOfInertia == before.MomentOfInertia ||
		after.SectionModulus == before.SectionModulus ||
		after.DeflectionRatio == before.DeflectionRatio {
		t.Errorf("geometry change did not propagate: before=%+v after=%+v", before, after)
	}

	j := 5.0 * 30 * 30 * 30 / 12
	if diff := cmp.Diff(5*2.0*400*400*400/(384*100000*j), after.DeflectionRatio, approx); diff != "" {
		t.Errorf("f/l computed against a stale section:\n%s", diff)
	}
	if after.MaxBendingMoment != before.MaxBendingMoment {
		t.Errorf("Mmax changed on geometry change")
	}
}

func TestSessionRejectedInputsKeepState(t *testing.T) {
	s := newSession(t)
	before := s.Snapshot()

	rec := &recorder{}
	s.AddDisplay(rec)
	shown := len(rec.outs)

	tests := []struct {
		name    string
		apply   func() error
		wantErr error
	}{
		{"zero span", func() error { return s.SetSpan(0) }, beam.ErrInvalidSpan},
		{"negative load", func() error { return s.SetLoads(-1, 2) }, beam.ErrInvalidLoad},
		{"zero height", func() error { return s.SetDimensions(50, 0) }, section.ErrInvalidDimension},
		{"unknown material", func() error { return s.SelectMaterial("oak") }, timber.ErrUnknownMaterial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.apply(); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	if diff := cmp.Diff(before, s.Snapshot()); diff != "" {
		t.Errorf("state changed after rejected inputs (-before +after):\n%s", diff)
	}
	if len(rec.outs) != shown {
		t.Errorf("displays were updated for rejected inputs")
	}
	if s.Catalog().CurrentIndex() != 0 {
		t.Errorf("catalog index moved to %d", s.Catalog().CurrentIndex())
	}
}

func TestSessionRecomputeIsIdempotent(t *testing.T) {
	s := newSession(t)

	if err := s.SetSpan(4000); err != nil {
		t.Fatal(err)
	}
	first, _ := s.Outputs()
	if err := s.SetSpan(4000); err != nil {
		t.Fatal(err)
	}
	second, _ := s.Outputs()

	// bit-identical, no tolerance
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("outputs differ (-first +second):\n%s", diff)
	}
}

func TestSessionDivisionByZero(t *testing.T) {
	materials := append(timber.Defaults(), timber.Material{ID: "placeholder", Name: "Not configured"})
	s, err := New(materials)
	if err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	s.AddDisplay(rec)

	if err := s.SelectMaterial("placeholder"); err != nil {
		t.Fatalf("selection itself must succeed: %v", err)
	}

	out, err := rec.last()
	if !errors.Is(err, beam.ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
	if out.MomentOfInertia == 0 || out.SectionModulus == 0 {
		t.Errorf("section values must stay valid: %+v", out)
	}
	if out.RequiredSectionModulus != 0 || out.DeflectionRatio != 0 {
		t.Errorf("beam values must not be reported: %+v", out)
	}
	if snap := s.Snapshot(); !strings.Contains(snap.Error, "division by zero") {
		t.Errorf("snapshot error = %q", snap.Error)
	}

	// selecting a valid material clears the error
	if err := s.SelectMaterial("pine"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Outputs(); err != nil {
		t.Errorf("error not cleared: %v", err)
	}
}

func TestSessionOverflow(t *testing.T) {
	t.Run("huge height is rejected", func(t *testing.T) {
		s := newSession(t)
		before := s.Snapshot()

		if err := s.SetDimensions(50, 1e110); !errors.Is(err, section.ErrInvalidDimension) {
			t.Fatalf("expected ErrInvalidDimension, got %v", err)
		}
		if diff := cmp.Diff(before, s.Snapshot()); diff != "" {
			t.Errorf("state changed (-want +got):\n%s", diff)
		}
	})

	t.Run("huge elastic modulus", func(t *testing.T) {
		materials := append(timber.Defaults(), timber.Material{ID: "stiff", Name: "Stiff", BendingResistance: 130, ElasticModulus: 1e307})
		s, err := New(materials)
		if err != nil {
			t.Fatal(err)
		}
		if err := s.SelectMaterial("stiff"); err != nil {
			t.Fatal(err)
		}

		out, err := s.Outputs()
		if !errors.Is(err, beam.ErrOverflow) {
			t.Fatalf("expected ErrOverflow, got %v (outputs %+v)", err, out)
		}
		if out.DeflectionRatio != 0 || out.RequiredSectionModulus != 0 {
			t.Errorf("beam values must not be reported: %+v", out)
		}
		if out.MomentOfInertia == 0 {
			t.Errorf("section values must stay valid: %+v", out)
		}
	})
}

func TestSessionInstancesAreIndependent(t *testing.T) {
	a := newSession(t)
	b := newSession(t)

	if err := a.SelectMaterial("ultralam_r"); err != nil {
		t.Fatal(err)
	}
	if err := a.SetDimensions(100, 250); err != nil {
		t.Fatal(err)
	}

	if b.Catalog().Current().ID != "pine" || b.Section().Width() != 50 {
		t.Errorf("sessions share state: %+v", b.Inputs())
	}
}

func TestNewRejectsEmptyCatalog(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, timber.ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}
}

func TestSessionApplyAndLoadInputs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beam.json")
	content := `{"name": "Floor joist", "width": 75, "height": 225, "material": "ultralam_r", "rated_load": 3.1}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	in, err := LoadInputs(path)
	if err != nil {
		t.Fatalf("LoadInputs: %v", err)
	}
	want := Inputs{Name: "Floor joist", Width: 75, Height: 225, Material: "ultralam_r", NormalLoad: 2.0, RatedLoad: 3.1, Span: 4000}
	if diff := cmp.Diff(want, in); diff != "" {
		t.Errorf("inputs mismatch (-want +got):\n%s", diff)
	}

	var buf bytes.Buffer
	s := newSession(t, WithLogger(logger.New(&buf, logger.LevelDebug, "session")))
	if err := s.Apply(in); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	want.Name = ""
	if diff := cmp.Diff(want, s.Inputs()); diff != "" {
		t.Errorf("session inputs mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(buf.String(), "recompute (section)") {
		t.Errorf("expected recompute trace, got:\n%s", buf.String())
	}

	in.Span = -1
	if err := s.Apply(in); !errors.Is(err, beam.ErrInvalidSpan) {
		t.Errorf("expected ErrInvalidSpan, got %v", err)
	}
	if s.Beam().Span() != 4000 {
		t.Errorf("span changed to %v", s.Beam().Span())
	}
}

func TestSessionDiagram(t *testing.T) {
	s := newSession(t, WithDisplay(DisplayFunc(func(Outputs, error) {})))

	d, err := s.Diagram(21)
	if err != nil {
		t.Fatal(err)
	}
	out, _ := s.Outputs()
	if diff := cmp.Diff(out.MaxBendingMoment, d.Moment[10], approx); diff != "" {
		t.Errorf("midspan moment mismatch:\n%s", diff)
	}
}
