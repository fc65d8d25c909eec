// Package codegen turns an ordered collection of blocks into source text.
//
// Generation is purely positional: blocks are emitted top to bottom by their
// vertical coordinate. Connections between blocks are never consulted.
package codegen

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/leapstack-labs/leapblocks/pkg/catalog"
	"github.com/leapstack-labs/leapblocks/pkg/core"
)

// Snippet is the rendered text of one block.
type Snippet struct {
	Block core.BlockID
	Kind  core.KindTag
	Text  string
	// Fallback is true when the dialect had no explicit rule for the kind.
	Fallback bool
}

// Order returns a copy of blocks sorted by ascending Y.
// Ties keep identifier order, which is insertion order. A NaN Y sorts
// after every number.
func Order(blocks []core.Block) []core.Block {
	out := make([]core.Block, len(blocks))
	copy(out, blocks)
	sort.SliceStable(out, func(i, j int) bool {
		yi, yj := orderKey(out[i].Position.Y), orderKey(out[j].Position.Y)
		if yi != yj {
			return yi < yj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func orderKey(y float64) float64 {
	if math.IsNaN(y) {
		return math.Inf(1)
	}
	return y
}

// Render produces one snippet per block in generation order.
// It fails only if a block's kind is missing from the catalog.
func Render(cat *catalog.Catalog, blocks []core.Block, dialect string) ([]Snippet, error) {
	ordered := Order(blocks)
	snippets := make([]Snippet, 0, len(ordered))
	for _, b := range ordered {
		kind, err := cat.Lookup(b.Kind)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", b.ID, err)
		}
		snippets = append(snippets, Snippet{
			Block:    b.ID,
			Kind:     b.Kind,
			Text:     apply(kind.Rule(dialect), b),
			Fallback: !kind.HasRule(dialect),
		})
	}
	return snippets, nil
}

// apply dispatches on the rule variant.
func apply(rule core.Rule, b core.Block) string {
	switch rule.Kind() {
	case core.RuleConst:
		return rule.Text()
	case core.RuleTemplate:
		return rule.Apply(b.Config)
	default:
		return ""
	}
}

// Generate renders blocks and joins the snippets, each followed by a newline.
// Zero blocks produce the empty string.
func Generate(cat *catalog.Catalog, blocks []core.Block, dialect string) (string, error) {
	snippets, err := Render(cat, blocks, dialect)
	if err != nil {
		return "", err
	}
	return Join(snippets), nil
}

// Join concatenates snippet texts, each followed by a newline.
func Join(snippets []Snippet) string {
	var sb strings.Builder
	for _, s := range snippets {
		sb.WriteString(s.Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}
