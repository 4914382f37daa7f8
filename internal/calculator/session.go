package calculator

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gotb/internal/beam"
	"github.com/alexiusacademia/gotb/internal/logger"
	"github.com/alexiusacademia/gotb/internal/section"
	"github.com/alexiusacademia/gotb/internal/timber"
)

// Outputs holds every read-only value the calculator displays
type Outputs struct {
	SectionModulus         float64 `json:"section_modulus"`          // W (cm³)
	MomentOfInertia        float64 `json:"moment_of_inertia"`        // J (cm⁴)
	MaxBendingMoment       float64 `json:"max_bending_moment"`       // Mmax (kgf·cm)
	RequiredSectionModulus float64 `json:"required_section_modulus"` // Wreq (cm³)
	DeflectionRatio        float64 `json:"deflection_ratio"`         // f/l
}

// Display receives fresh outputs after each recomputation. err is non-nil
// when the beam results could not be derived; the section values are valid.
type Display interface {
	Show(out Outputs, err error)
}

// DisplayFunc adapts an ordinary function to the Display interface
type DisplayFunc func(out Outputs, err error)

// Show calls f(out, err)
func (f DisplayFunc) Show(out Outputs, err error) { f(out, err) }

// Session owns one section, one material catalog and one beam, and keeps the
// outputs in step with them. Every accepted input change recomputes the beam
// against the latest section and material before the setter returns.
//
// A Session is not safe for concurrent use.
type Session struct {
	section *section.Rectangular
	catalog *timber.Catalog
	span    *beam.SingleSpan

	displays []Display
	log      *logger.Logger

	out Outputs
	err error
}

// Option configures a Session
type Option func(*Session)

// WithLogger sets the logger used for recomputation traces
func WithLogger(l *logger.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithDisplay registers a display at construction time
func WithDisplay(d Display) Option {
	return func(s *Session) { s.displays = append(s.displays, d) }
}

// New creates a session with default dimensions and loading and its own
// catalog built from materials. An empty material list is an error.
func New(materials []timber.Material, opts ...Option) (*Session, error) {
	catalog, err := timber.NewCatalog(materials)
	if err != nil {
		return nil, err
	}

	s := &Session{
		section: section.NewRectangular(),
		catalog: catalog,
		span:    beam.NewSingleSpan(),
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.section.OnChange(func() { s.recompute("section") })
	s.catalog.OnChange(func() { s.recompute("material") })
	s.span.OnChange(func() { s.recompute("beam") })

	s.recompute("init")
	return s, nil
}

// AddDisplay registers d and immediately shows the current outputs on it
func (s *Session) AddDisplay(d Display) {
	s.displays = append(s.displays, d)
	d.Show(s.out, s.err)
}

// SetDimensions changes the section width and height (mm)
func (s *Session) SetDimensions(width, height float64) error {
	return s.section.SetDimensions(width, height)
}

// SelectMaterial makes the material with the given identifier current
func (s *Session) SelectMaterial(id string) error {
	return s.catalog.Select(id)
}

// SetLoads changes the service and design distributed loads (kgf/cm)
func (s *Session) SetLoads(normal, rated float64) error {
	return s.span.SetLoads(normal, rated)
}

// SetSpan changes the span length (mm)
func (s *Session) SetSpan(length float64) error {
	return s.span.SetSpan(length)
}

// Outputs returns the latest outputs and the recomputation error, if any
func (s *Session) Outputs() (Outputs, error) {
	return s.out, s.err
}

// Section returns the session's cross-section
func (s *Session) Section() *section.Rectangular { return s.section }

// Catalog returns the session's material catalog
func (s *Session) Catalog() *timber.Catalog { return s.catalog }

// Beam returns the session's single-span beam
func (s *Session) Beam() *beam.SingleSpan { return s.span }

// Diagram samples moment and deflection along the span for the current state
func (s *Session) Diagram(points int) (*beam.Diagram, error) {
	return s.span.Diagram(s.section, s.catalog.Current(), points)
}

func (s *Session) recompute(cause string) {
	mat := s.catalog.Current()

	out := Outputs{
		SectionModulus:  s.section.SectionModulus(),
		MomentOfInertia: s.section.MomentOfInertia(),
	}

	res, err := s.span.Recompute(s.section, mat)
	if err == nil && !(finite(out.SectionModulus) && finite(out.MomentOfInertia)) {
		err = fmt.Errorf("%w: W=%v, J=%v", beam.ErrOverflow, out.SectionModulus, out.MomentOfInertia)
		out = Outputs{}
	}
	if err == nil {
		out.MaxBendingMoment = res.MaxBendingMoment
		out.RequiredSectionModulus = res.RequiredSectionModulus
		out.DeflectionRatio = res.DeflectionRatio
		s.log.Debug("recompute (%s): material=%s W=%.3f J=%.3f Mmax=%.3f Wreq=%.3f f/l=%.6f",
			cause, mat.ID, out.SectionModulus, out.MomentOfInertia,
			out.MaxBendingMoment, out.RequiredSectionModulus, out.DeflectionRatio)
	} else {
		s.log.Warn("recompute (%s): %v", cause, err)
	}

	s.out, s.err = out, err
	for _, d := range s.displays {
		d.Show(out, err)
	}
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
