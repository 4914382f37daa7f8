package calculator

import (
	"encoding/json"
	"fmt"
	"os"
)

// Inputs is the full set of user-editable values of a session
type Inputs struct {
	Name       string  `json:"name,omitempty"`
	Width      float64 `json:"width"`       // mm
	Height     float64 `json:"height"`      // mm
	Material   string  `json:"material"`    // catalog identifier
	NormalLoad float64 `json:"normal_load"` // q_n (kgf/cm)
	RatedLoad  float64 `json:"rated_load"`  // q_r (kgf/cm)
	Span       float64 `json:"span"`        // mm
}

// Snapshot is a consistent view of a session's inputs and outputs
type Snapshot struct {
	Inputs  Inputs  `json:"inputs"`
	Outputs Outputs `json:"outputs"`
	Error   string  `json:"error,omitempty"`
}

// LoadInputs reads a JSON inputs file. Missing fields keep the defaults of a
// new session.
func LoadInputs(path string) (Inputs, error) {
	in := DefaultInputs()

	data, err := os.ReadFile(path)
	if err != nil {
		return in, err
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return in, fmt.Errorf("parse %s: %w", path, err)
	}
	return in, nil
}

// DefaultInputs returns the inputs of a fresh session. Material is left
// empty so Apply keeps the catalog's current selection.
func DefaultInputs() Inputs {
	return Inputs{
		Width:      50,
		Height:     200,
		NormalLoad: 2.0,
		RatedLoad:  2.2,
		Span:       4000,
	}
}

// Apply sets all inputs in dependency order: section, material, loads, span.
// It stops at the first rejected value; earlier values stay applied.
func (s *Session) Apply(in Inputs) error {
	if err := s.SetDimensions(in.Width, in.Height); err != nil {
		return err
	}
	if in.Material != "" {
		if err := s.SelectMaterial(in.Material); err != nil {
			return err
		}
	}
	if err := s.SetLoads(in.NormalLoad, in.RatedLoad); err != nil {
		return err
	}
	return s.SetSpan(in.Span)
}

// Inputs returns the current inputs
func (s *Session) Inputs() Inputs {
	return Inputs{
		Width:      s.section.Width(),
		Height:     s.section.Height(),
		Material:   s.catalog.Current().ID,
		NormalLoad: s.span.NormalLoad(),
		RatedLoad:  s.span.RatedLoad(),
		Span:       s.span.Span(),
	}
}

// Snapshot returns the current inputs and outputs
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Inputs:  s.Inputs(),
		Outputs: s.out,
	}
	if s.err != nil {
		snap.Error = s.err.Error()
	}
	return snap
}
