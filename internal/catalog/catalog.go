// Package catalog holds the fixed set of drug products the pipeline tracks
// and the reverse lookup from normalized NDC to product.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gyeh/rxaccess/internal/ndc"
)

// Product is one tracked drug product with the NDCs of its packaging
// variants and strengths.
type Product struct {
	Name         string   `yaml:"name"`
	Molecule     string   `yaml:"molecule"`
	Indication   string   `yaml:"indication"`
	Manufacturer string   `yaml:"manufacturer"`
	NDCs         []string `yaml:"ndcs"`
}

// Catalog maps normalized NDCs to product names. Built once at startup,
// read-only afterwards.
type Catalog struct {
	byName map[string]*Product
	byNDC  map[string]string // normalized NDC → product name
	names  []string          // insertion order
}

// New builds a catalog from product definitions. Every NDC is normalized on
// the way in. Two products claiming the same normalized NDC is a
// data-integrity error and is rejected rather than silently overwritten.
func New(products []Product) (*Catalog, error) {
	c := &Catalog{
		byName: make(map[string]*Product, len(products)),
		byNDC:  make(map[string]string),
	}
	for i := range products {
		p := &products[i]
		if p.Name == "" {
			return nil, fmt.Errorf("catalog product %d: name is required", i)
		}
		if _, ok := c.byName[p.Name]; ok {
			return nil, fmt.Errorf("catalog product %q: duplicate name", p.Name)
		}
		for _, raw := range p.NDCs {
			norm := ndc.Normalize(raw)
			if owner, ok := c.byNDC[norm]; ok && owner != p.Name {
				return nil, fmt.Errorf("NDC %s claimed by both %q and %q", norm, owner, p.Name)
			}
			c.byNDC[norm] = p.Name
		}
		c.byName[p.Name] = p
		c.names = append(c.names, p.Name)
	}
	return c, nil
}

// Load reads product definitions from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var doc struct {
		Products []Product `yaml:"products"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(doc.Products) == 0 {
		return nil, fmt.Errorf("catalog %s: no products defined", path)
	}
	return New(doc.Products)
}

// LookupNDC resolves a normalized NDC to its product name.
func (c *Catalog) LookupNDC(normalized string) (string, bool) {
	name, ok := c.byNDC[normalized]
	return name, ok
}

// Product returns the product definition for a name.
func (c *Catalog) Product(name string) (*Product, bool) {
	p, ok := c.byName[name]
	return p, ok
}

// Names returns product names in definition order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.byName)
}
