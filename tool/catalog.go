package tool

import (
	"fmt"

	"github.com/fermi-lat/tooldesc/util"
)

// Catalog holds descriptors by name, in the order they were added.
type Catalog struct {
	descriptors util.OrderedMap[string, Descriptor]
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{descriptors: util.NewOrderedMap[string, Descriptor]()}
}

// Builtin returns a catalog with the descriptors shipped with this tool.
func Builtin() *Catalog {
	catalog := NewCatalog()
	if err := catalog.Add(ObservationSim); err != nil {
		panic(err)
	}
	return catalog
}

// Add validates `d` and adds it to the catalog. Names must be unique.
func (c *Catalog) Add(d Descriptor) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := c.descriptors.Insert(d.Name, d.Clone()); err != nil {
		return fmt.Errorf("duplicate descriptor %q", d.Name)
	}
	return nil
}

// Lookup returns a copy of the descriptor called `name`.
func (c *Catalog) Lookup(name string) (Descriptor, bool) {
	d, ok := c.descriptors.Lookup(name)
	return d.Clone(), ok
}

// Names returns the descriptor names in catalog order.
func (c *Catalog) Names() []string {
	return c.descriptors.Keys()
}

// Descriptors returns copies of all descriptors in catalog order.
func (c *Catalog) Descriptors() []Descriptor {
	return util.MappedSlice(c.descriptors.Values(), Descriptor.Clone)
}

// Len returns the number of descriptors.
func (c *Catalog) Len() int {
	return c.descriptors.Len()
}
