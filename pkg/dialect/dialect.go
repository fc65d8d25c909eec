// Package dialect provides output dialect definitions and their registry.
//
// A dialect names one textual style the code generator can target. The
// per-kind templates live with the block catalog; this package only carries
// what hosts need to present a dialect and resolve its fallback. Concrete
// dialects are registered from pkg/dialects/*/ packages.
package dialect

import "strings"

// Dialect describes one output dialect.
type Dialect struct {
	Name      string   `json:"name" yaml:"name"`
	Label     string   `json:"label" yaml:"label"`
	Extension string   `json:"extension" yaml:"extension"`
	Aliases   []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	// FallsBackTo names the dialect whose rules are used for kinds this
	// dialect has no explicit rule for. Empty for the fallback dialect itself.
	FallsBackTo string `json:"falls_back_to,omitempty" yaml:"falls_back_to,omitempty"`
}

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	d *Dialect
}

// NewDialect starts building a dialect with the given name.
func NewDialect(name string) *Builder {
	return &Builder{d: &Dialect{Name: strings.ToLower(name), Label: name}}
}

// Label sets the human readable name.
func (b *Builder) Label(label string) *Builder {
	b.d.Label = label
	return b
}

// Extension sets the conventional file extension, including the dot.
func (b *Builder) Extension(ext string) *Builder {
	b.d.Extension = ext
	return b
}

// Aliases adds alternative lookup names.
func (b *Builder) Aliases(aliases ...string) *Builder {
	for _, a := range aliases {
		b.d.Aliases = append(b.d.Aliases, strings.ToLower(a))
	}
	return b
}

// FallsBackTo records the dialect used for kinds without an explicit rule.
func (b *Builder) FallsBackTo(name string) *Builder {
	b.d.FallsBackTo = strings.ToLower(name)
	return b
}

// Build returns the constructed dialect.
func (b *Builder) Build() *Dialect {
	return b.d
}
