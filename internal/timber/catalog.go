package timber

import "fmt"

// Catalog is an ordered, fixed list of materials with one current selection.
// The current index always points at a valid entry.
type Catalog struct {
	materials []Material
	current   int

	listeners []func()
}

// NewCatalog builds a catalog from materials. The first entry is selected.
func NewCatalog(materials []Material) (*Catalog, error) {
	if err := Validate(materials); err != nil {
		return nil, err
	}

	c := &Catalog{materials: make([]Material, len(materials))}
	copy(c.materials, materials)
	return c, nil
}

// MustCatalog is like NewCatalog but panics on an invalid list.
// It is meant for the built-in defaults at program start.
func MustCatalog(materials []Material) *Catalog {
	c, err := NewCatalog(materials)
	if err != nil {
		panic(err)
	}
	return c
}

// List returns a copy of the materials in catalog order
func (c *Catalog) List() []Material {
	out := make([]Material, len(c.materials))
	copy(out, c.materials)
	return out
}

// Len returns the number of materials
func (c *Catalog) Len() int { return len(c.materials) }

// Lookup finds a material by identifier
func (c *Catalog) Lookup(id string) (Material, bool) {
	i := c.indexOf(id)
	if i < 0 {
		return Material{}, false
	}
	return c.materials[i], true
}

// Select makes the material with the given identifier current
func (c *Catalog) Select(id string) error {
	i := c.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownMaterial, id)
	}

	c.current = i
	for _, fn := range c.listeners {
		fn()
	}
	return nil
}

// Current returns the selected material
func (c *Catalog) Current() Material {
	return c.materials[c.current]
}

// CurrentIndex returns the 0-based position of the selected material
func (c *Catalog) CurrentIndex() int { return c.current }

// OnChange registers fn to be called after every successful Select
func (c *Catalog) OnChange(fn func()) {
	c.listeners = append(c.listeners, fn)
}

func (c *Catalog) indexOf(id string) int {
	for i, m := range c.materials {
		if m.ID == id {
			return i
		}
	}
	return -1
}
