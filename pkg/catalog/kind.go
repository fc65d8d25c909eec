package catalog

import (
	"sort"

	"github.com/leapstack-labs/leapblocks/pkg/core"
	"github.com/leapstack-labs/leapblocks/pkg/dialect"
	"github.com/leapstack-labs/leapblocks/pkg/dialects/javascript"
)

// FallbackDialect is the dialect whose rule is used when neither the
// requested dialect nor its FallsBackTo chain has a rule for a kind.
const FallbackDialect = javascript.Name

// Kind is the immutable, catalog-defined template of a block.
type Kind struct {
	Tag   core.KindTag
	Label string // toolbar text, e.g. "IF/ELSE"
	Color string // CSS color of placed blocks

	// Fields is the ordered configuration schema. A kind is configurable
	// if and only if it has at least one field.
	Fields []core.Field

	// Rules maps a dialect name to its code production rule.
	Rules map[string]core.Rule
}

// Configurable reports whether instances of the kind carry configuration.
func (k *Kind) Configurable() bool {
	return len(k.Fields) > 0
}

// Field returns the schema entry for name.
func (k *Kind) Field(name string) (core.Field, bool) {
	for _, f := range k.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return core.Field{}, false
}

// Defaults returns fresh configuration values seeded from field defaults.
// It returns nil for non-configurable kinds.
func (k *Kind) Defaults() core.Values {
	if !k.Configurable() {
		return nil
	}
	v := make(core.Values, len(k.Fields))
	for _, f := range k.Fields {
		v[f.Name] = f.Default
	}
	return v
}

// Rule returns the rule for the named dialect. A dialect without one
// follows the FallsBackTo chain of the dialect registry, then
// FallbackDialect.
func (k *Kind) Rule(name string) core.Rule {
	seen := make(map[string]bool)
	for name != "" && !seen[name] {
		seen[name] = true
		if r, ok := k.Rules[name]; ok {
			return r
		}
		d, ok := dialect.Get(name)
		if !ok {
			break
		}
		if r, ok := k.Rules[d.Name]; ok {
			return r
		}
		name = d.FallsBackTo
	}
	return k.Rules[FallbackDialect]
}

// HasRule reports whether the kind has an explicit rule for the named
// dialect or one of its aliases.
func (k *Kind) HasRule(name string) bool {
	if _, ok := k.Rules[name]; ok {
		return true
	}
	if d, ok := dialect.Get(name); ok {
		_, ok = k.Rules[d.Name]
		return ok
	}
	return false
}

// Dialects returns the dialects with explicit rules (sorted).
func (k *Kind) Dialects() []string {
	names := make([]string, 0, len(k.Rules))
	for name := range k.Rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render applies the kind's rule for the named dialect to values.
func (k *Kind) Render(name string, values core.Values) string {
	return k.Rule(name).Apply(values)
}
