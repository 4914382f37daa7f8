package timber

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

var (
	// ErrUnknownMaterial is returned when selecting an identifier that is not in the catalog
	ErrUnknownMaterial = errors.New("unknown material")

	// ErrEmptyCatalog is returned when a catalog is built without any material
	ErrEmptyCatalog = errors.New("material catalog is empty")

	// ErrInvalidMaterial is returned for catalog entries with bad identifiers or constants
	ErrInvalidMaterial = errors.New("invalid material")
)

// Material holds the strength and stiffness constants of a structural timber product.
// R and E share the kgf/cm² unit family used by the beam formulas.
type Material struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	BendingResistance float64 `json:"bending_resistance"` // R - design bending resistance
	ElasticModulus    float64 `json:"elastic_modulus"`    // E - modulus of elasticity
}

// Built-in catalog
var defaultMaterials = []Material{
	{
		ID:                "pine",
		Name:              "Pine",
		BendingResistance: 130,
		ElasticModulus:    100000,
	},
	{
		ID:                "ultralam_r",
		Name:              "LVL Ultralam R",
		BendingResistance: 260,
		ElasticModulus:    140000,
	},
}

// Defaults returns a copy of the built-in material list
func Defaults() []Material {
	out := make([]Material, len(defaultMaterials))
	copy(out, defaultMaterials)
	return out
}

// Validate checks a list of materials for use in a catalog
func Validate(materials []Material) error {
	if len(materials) == 0 {
		return ErrEmptyCatalog
	}

	seen := make(map[string]bool, len(materials))
	for i, m := range materials {
		if m.ID == "" {
			return fmt.Errorf("%w: entry %d has no id", ErrInvalidMaterial, i+1)
		}
		if seen[m.ID] {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidMaterial, m.ID)
		}
		seen[m.ID] = true

		if !nonNegative(m.BendingResistance) {
			return fmt.Errorf("%w: %q has R=%v", ErrInvalidMaterial, m.ID, m.BendingResistance)
		}
		if !nonNegative(m.ElasticModulus) {
			return fmt.Errorf("%w: %q has E=%v", ErrInvalidMaterial, m.ID, m.ElasticModulus)
		}
	}
	return nil
}

type catalogFile struct {
	Materials []Material `json:"materials"`
}

// LoadFile reads a material list from a JSON file of the form
//
//	{"materials": [{"id": "pine", "name": "Pine", "bending_resistance": 130, "elastic_modulus": 100000}]}
func LoadFile(path string) ([]Material, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f catalogFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := Validate(f.Materials); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f.Materials, nil
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
