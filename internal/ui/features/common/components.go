package common

import (
	"encoding/json"

	"github.com/a-h/templ"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/leapblocks/internal/session"
	"github.com/leapstack-labs/leapblocks/pkg/catalog"
	"github.com/leapstack-labs/leapblocks/pkg/core"
	"github.com/leapstack-labs/leapblocks/pkg/gesture"
	"github.com/leapstack-labs/leapblocks/pkg/workspace"
)

// Helpers for the templ components in *.templ.

// fallbackColor paints blocks whose kind is missing from the catalog.
const fallbackColor = "#7f8c8d"

var titleCase = cases.Title(language.English)

func kinds(cat *catalog.Catalog) []*catalog.Kind {
	if cat == nil {
		return nil
	}
	return cat.Kinds()
}

func kindTitle(tag core.KindTag) string {
	return titleCase.String(string(tag))
}

func background(color string) templ.SafeCSS {
	return templ.SafeCSS("background:" + color)
}

func workspaceStyle(geo gesture.Geometry) templ.SafeCSS {
	return templ.SafeCSS("width:" + Px(geo.Width) + ";height:" + Px(geo.Height))
}

// blockKind is the display metadata of a placed block.
type blockKind struct {
	Label        string
	Color        string
	Configurable bool
}

func blockKindOf(v session.View, b core.Block) blockKind {
	if v.Catalog != nil {
		if k, err := v.Catalog.Lookup(b.Kind); err == nil {
			return blockKind{Label: k.Label, Color: k.Color, Configurable: k.Configurable()}
		}
	}
	return blockKind{Label: string(b.Kind), Color: fallbackColor}
}

func blockClass(v session.View, b core.Block) string {
	class := "lb-block " + string(b.Kind)
	if v.HasSelected && v.Selected == b.ID {
		class += " selected"
		if v.State == gesture.DraggingBlock {
			class += " dragging"
		}
	}
	return class
}

func blockStyle(v session.View, b core.Block, color string) templ.SafeCSS {
	return templ.SafeCSS("left:" + Px(b.Position.X) + ";top:" + Px(b.Position.Y) +
		";width:" + Px(v.Geometry.BlockWidth) + ";height:" + Px(v.Geometry.BlockHeight) +
		";background:" + color)
}

// link is one connection line in SVG coordinates.
type link struct {
	Start, End     string
	X1, Y1, X2, Y2 string
}

// linkLines runs each connection from the bottom centre of its start block to
// the top centre of its end block. Connections to missing blocks are skipped.
func linkLines(blocks []core.Block, conns []core.Connection, geo gesture.Geometry) []link {
	pos := make(map[core.BlockID]core.Position, len(blocks))
	for _, b := range blocks {
		pos[b.ID] = b.Position
	}
	lines := make([]link, 0, len(conns))
	for _, c := range conns {
		from, ok1 := pos[c.Start]
		to, ok2 := pos[c.End]
		if !ok1 || !ok2 {
			continue
		}
		lines = append(lines, link{
			Start: c.Start.String(),
			End:   c.End.String(),
			X1:    Num(from.X + geo.BlockWidth/2),
			Y1:    Num(from.Y + geo.BlockHeight),
			X2:    Num(to.X + geo.BlockWidth/2),
			Y2:    Num(to.Y),
		})
	}
	return lines
}

func configAction(verb string, id core.BlockID) string {
	return "@" + verb + "('/api/blocks/" + id.String() + "/config')"
}

func deleteAction(id core.BlockID) string {
	return "@delete('/api/blocks/" + id.String() + "')"
}

func signals(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func dialectSignals(selected string) string {
	return signals(map[string]string{"dialect": selected})
}

func configSignals(form *workspace.Form) string {
	return signals(map[string]core.Values{"config": form.Values()})
}

func fieldID(f workspace.FormField) string {
	return "cfg-" + f.Name
}

func fieldBind(f workspace.FormField) string {
	return "config." + f.Name
}
