// Package catalog holds the static attribute catalog that practices are
// scored against: attributes, their display groups, and the practice
// categories the analysis service may assign.
package catalog

import (
	"fmt"
	"strings"
)

const (
	// ScoreMin is the strongest negative impact a practice can have on an attribute.
	ScoreMin = -5
	// ScoreMax is the strongest positive impact a practice can have on an attribute.
	ScoreMax = 5

	// FallbackCategory replaces any category outside the catalog's list.
	FallbackCategory = "Other"
)

// Attribute is a named dimension of agile team health.
type Attribute struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// AttributeGroup groups attributes for display.
type AttributeGroup struct {
	Title        string   `json:"title" yaml:"title"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty"`
	AttributeIDs []string `json:"attribute_ids" yaml:"attribute_ids"`
}

// Catalog is an immutable set of attributes, groups and categories.
// All accessors return copies so callers can never mutate it.
type Catalog struct {
	attributes []Attribute
	byID       map[string]int
	groups     []AttributeGroup
	categories []string
}

// New validates and builds a catalog.
func New(attributes []Attribute, groups []AttributeGroup, categories []string) (*Catalog, error) {
	if len(attributes) == 0 {
		return nil, fmt.Errorf("catalog requires at least one attribute")
	}

	byID := make(map[string]int, len(attributes))
	for i, attr := range attributes {
		if strings.TrimSpace(attr.ID) == "" {
			return nil, fmt.Errorf("attribute %d has an empty id", i)
		}
		if _, dup := byID[attr.ID]; dup {
			return nil, fmt.Errorf("duplicate attribute id %q", attr.ID)
		}
		byID[attr.ID] = i
	}

	for _, g := range groups {
		for _, id := range g.AttributeIDs {
			if _, ok := byID[id]; !ok {
				return nil, fmt.Errorf("group %q references unknown attribute %q", g.Title, id)
			}
		}
	}

	hasFallback := false
	for _, c := range categories {
		if c == FallbackCategory {
			hasFallback = true
			break
		}
	}
	if !hasFallback {
		return nil, fmt.Errorf("categories must include the fallback category %q", FallbackCategory)
	}

	c := &Catalog{
		attributes: append([]Attribute(nil), attributes...),
		byID:       byID,
		groups:     make([]AttributeGroup, len(groups)),
		categories: append([]string(nil), categories...),
	}
	for i, g := range groups {
		g.AttributeIDs = append([]string(nil), g.AttributeIDs...)
		c.groups[i] = g
	}
	return c, nil
}

// MustNew is New for package-level catalogs; it panics on invalid input.
func MustNew(attributes []Attribute, groups []AttributeGroup, categories []string) *Catalog {
	c, err := New(attributes, groups, categories)
	if err != nil {
		panic(err)
	}
	return c
}

// Attributes returns every attribute in catalog order.
func (c *Catalog) Attributes() []Attribute {
	return append([]Attribute(nil), c.attributes...)
}

// IDs returns every attribute id in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.attributes))
	for i, attr := range c.attributes {
		ids[i] = attr.ID
	}
	return ids
}

// Attribute looks up an attribute by id.
func (c *Catalog) Attribute(id string) (Attribute, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Attribute{}, false
	}
	return c.attributes[i], true
}

// Has reports whether id names a catalog attribute.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Len returns the number of attributes.
func (c *Catalog) Len() int {
	return len(c.attributes)
}

// Groups returns the display groups in catalog order.
func (c *Catalog) Groups() []AttributeGroup {
	out := make([]AttributeGroup, len(c.groups))
	for i, g := range c.groups {
		g.AttributeIDs = append([]string(nil), g.AttributeIDs...)
		out[i] = g
	}
	return out
}

// Categories returns the practice categories, fallback included.
func (c *Catalog) Categories() []string {
	return append([]string(nil), c.categories...)
}

// IsCategory reports whether category is one of the catalog's categories.
func (c *Catalog) IsCategory(category string) bool {
	for _, known := range c.categories {
		if known == category {
			return true
		}
	}
	return false
}

// Context renders the attribute list the way prompts embed it:
// one "Name (id): description" line per attribute.
func (c *Catalog) Context() string {
	lines := make([]string, len(c.attributes))
	for i, attr := range c.attributes {
		lines[i] = fmt.Sprintf("%s (%s): %s", attr.Name, attr.ID, attr.Description)
	}
	return strings.Join(lines, "\n")
}
