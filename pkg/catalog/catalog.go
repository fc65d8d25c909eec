// Package catalog provides the registry of block kinds.
//
// A Catalog is built once and is read-only afterwards, so it may be shared
// by every workspace in the process. Default returns the builtin catalog
// offered by the toolbar.
package catalog

import (
	"fmt"

	"github.com/leapstack-labs/leapblocks/pkg/core"
)

// Catalog is an ordered, read-only set of block kinds.
type Catalog struct {
	kinds map[core.KindTag]*Kind
	order []core.KindTag
}

// New builds a catalog. Kinds keep the given order. Every kind must have a
// unique tag and a rule for FallbackDialect so that generation never fails.
func New(kinds ...*Kind) (*Catalog, error) {
	c := &Catalog{
		kinds: make(map[core.KindTag]*Kind, len(kinds)),
		order: make([]core.KindTag, 0, len(kinds)),
	}
	for _, k := range kinds {
		if k == nil || k.Tag == "" {
			return nil, fmt.Errorf("catalog: kind without tag")
		}
		if _, dup := c.kinds[k.Tag]; dup {
			return nil, fmt.Errorf("catalog: duplicate kind %q", k.Tag)
		}
		if !k.HasRule(FallbackDialect) {
			return nil, fmt.Errorf("catalog: kind %q has no %s rule", k.Tag, FallbackDialect)
		}
		c.kinds[k.Tag] = k
		c.order = append(c.order, k.Tag)
	}
	return c, nil
}

// MustNew is like New but panics on error. Intended for package-level catalogs.
func MustNew(kinds ...*Kind) *Catalog {
	c, err := New(kinds...)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the kind registered under tag.
func (c *Catalog) Lookup(tag core.KindTag) (*Kind, error) {
	if k, ok := c.kinds[tag]; ok {
		return k, nil
	}
	return nil, &core.UnknownKindError{Kind: tag}
}

// Has reports whether tag is registered.
func (c *Catalog) Has(tag core.KindTag) bool {
	_, ok := c.kinds[tag]
	return ok
}

// Kinds returns all kinds in catalog order.
func (c *Catalog) Kinds() []*Kind {
	out := make([]*Kind, 0, len(c.order))
	for _, tag := range c.order {
		out = append(out, c.kinds[tag])
	}
	return out
}

// Tags returns all tags in catalog order.
func (c *Catalog) Tags() []core.KindTag {
	out := make([]core.KindTag, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of kinds.
func (c *Catalog) Len() int {
	return len(c.order)
}
