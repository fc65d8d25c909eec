package common_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/leapstack-labs/leapblocks/internal/session"
	"github.com/leapstack-labs/leapblocks/internal/ui/features"
	"github.com/leapstack-labs/leapblocks/internal/ui/features/common"
	"github.com/leapstack-labs/leapblocks/pkg/catalog"
	"github.com/leapstack-labs/leapblocks/pkg/core"
	"github.com/leapstack-labs/leapblocks/pkg/gesture"
	"github.com/leapstack-labs/leapblocks/pkg/workspace"
)

func render(t *testing.T, c templ.Component) (string, *html.Node) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String(), features.ParseHTML(t, buf.String())
}

func testView() session.View {
	return session.View{
		Catalog:  catalog.Default(),
		Geometry: gesture.DefaultGeometry(800, 600),
	}
}

// =============================================================================
// Page
// =============================================================================

func TestPage(t *testing.T) {
	tests := []struct {
		name       string
		isDev      bool
		wantReload bool
	}{
		{name: "production", isDev: false, wantReload: false},
		{name: "development", isDev: true, wantReload: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			markup, doc := render(t, common.Page("Canvas", tt.isDev, testView()))

			assert.Contains(t, markup, "<!doctype html>")
			assert.Contains(t, markup, "<title>Canvas - LeapBlocks</title>")
			assert.NotNil(t, features.FindByID(doc, "app"))
			assert.Equal(t, tt.wantReload, features.FindByID(doc, "reload") != nil)
		})
	}
}

func TestApp_HidesCodePanelAndForm(t *testing.T) {
	_, doc := render(t, common.App(testView()))

	assert.NotNil(t, features.FindByID(doc, "toolbar"))
	assert.NotNil(t, features.FindByID(doc, "workspace"))
	assert.Nil(t, features.FindByID(doc, "code-panel"))
	assert.Nil(t, features.FindByID(doc, "config-modal"))
}

func TestToolbar_OneTemplatePerKind(t *testing.T) {
	cat := catalog.Default()
	_, doc := render(t, common.Toolbar(cat))

	templates := features.FindAllByClass(doc, "lb-template")
	require.Len(t, templates, len(cat.Kinds()))

	kind, _ := features.Attr(templates[0], "data-kind")
	assert.Equal(t, string(cat.Kinds()[0].Tag), kind)
}

// =============================================================================
// Workspace
// =============================================================================

func TestBlock_Classes(t *testing.T) {
	b := core.Block{ID: 3, Kind: core.KindVariable, Position: core.Position{X: 10, Y: 20}}

	tests := []struct {
		name     string
		selected bool
		state    gesture.State
		want     []string
		notWant  []string
	}{
		{name: "idle", want: []string{"lb-block", "variable"}, notWant: []string{"selected", "dragging"}},
		{name: "selected", selected: true, want: []string{"selected"}, notWant: []string{"dragging"}},
		{name: "dragging", selected: true, state: gesture.DraggingBlock, want: []string{"selected", "dragging"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := testView()
			v.Selected, v.HasSelected, v.State = b.ID, tt.selected, tt.state

			_, doc := render(t, common.Block(v, b))
			for _, class := range tt.want {
				assert.Len(t, features.FindAllByClass(doc, class), 1, class)
			}
			for _, class := range tt.notWant {
				assert.Empty(t, features.FindAllByClass(doc, class), class)
			}
		})
	}
}

func TestBlock_StyleAndButtons(t *testing.T) {
	v := testView()

	_, doc := render(t, common.Block(v, core.Block{ID: 1, Kind: core.KindVariable, Position: core.Position{X: 10, Y: 20}}))
	el := features.FindByID(doc, "block-1")
	require.NotNil(t, el)
	style, _ := features.Attr(el, "style")
	assert.Contains(t, style, "left:10px;top:20px;width:90px;height:50px")
	assert.Len(t, features.FindAllByClass(doc, "lb-config"), 1)
	assert.Len(t, features.FindAllByClass(doc, "lb-delete"), 1)

	_, doc = render(t, common.Block(v, core.Block{ID: 2, Kind: core.KindStart}))
	assert.Empty(t, features.FindAllByClass(doc, "lb-config"), "start has no fields")
}

func TestBlock_UnknownKindUsesFallback(t *testing.T) {
	_, doc := render(t, common.Block(testView(), core.Block{ID: 0, Kind: "mystery"}))

	el := features.FindByID(doc, "block-0")
	require.NotNil(t, el)
	style, _ := features.Attr(el, "style")
	assert.Contains(t, style, "background:#7f8c8d")
	assert.Equal(t, "mystery", features.Text(features.FindAllByClass(doc, "lb-label")[0]))
}

func TestLinks(t *testing.T) {
	geo := gesture.DefaultGeometry(800, 600)
	blocks := []core.Block{
		{ID: 0, Kind: core.KindStart, Position: core.Position{X: 100, Y: 100}},
		{ID: 1, Kind: core.KindEnd, Position: core.Position{X: 100, Y: 300}},
	}
	conns := []core.Connection{
		{Start: 0, End: 1},
		{Start: 1, End: 7},
	}

	_, doc := render(t, common.Links(blocks, conns, geo))

	var lines []*html.Node
	var find func(*html.Node)
	find = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "line" {
			lines = append(lines, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(doc)

	require.Len(t, lines, 1, "connection to a missing block is skipped")
	for attr, want := range map[string]string{
		"data-start": "block-0",
		"data-end":   "block-1",
		"x1":         "145",
		"y1":         "150",
		"x2":         "145",
		"y2":         "300",
	} {
		got, _ := features.Attr(lines[0], attr)
		assert.Equal(t, want, got, attr)
	}
}

// =============================================================================
// Panels
// =============================================================================

func TestCodePanel(t *testing.T) {
	markup, doc := render(t, common.CodePanel("py", `print("<hi>")`))

	code := features.FindByID(doc, "code")
	require.NotNil(t, code)
	assert.Equal(t, `print("<hi>")`, features.Text(code))
	assert.Contains(t, markup, "&lt;hi&gt;")

	var selected []string
	for _, opt := range options(features.FindByID(doc, "dialect")) {
		if _, ok := features.Attr(opt, "selected"); ok {
			v, _ := features.Attr(opt, "value")
			selected = append(selected, v)
		}
	}
	assert.Equal(t, []string{"py"}, selected)
}

func TestConfigModal(t *testing.T) {
	cat := catalog.Default()
	kind, err := cat.Lookup(core.KindVariable)
	require.NoError(t, err)

	form := &workspace.Form{Block: 4, Kind: kind}
	for _, f := range kind.Fields {
		form.Fields = append(form.Fields, workspace.FormField{Field: f, Value: f.Default})
	}

	_, doc := render(t, common.ConfigModal(form))

	modal := features.FindByID(doc, "config-modal")
	require.NotNil(t, modal)
	assert.Contains(t, features.Text(modal), "Configure "+kind.Label)
	for _, f := range kind.Fields {
		assert.NotNil(t, features.FindByID(doc, "cfg-"+f.Name), f.Name)
	}
}

func TestFieldInput(t *testing.T) {
	tests := []struct {
		name      string
		field     workspace.FormField
		wantTag   string
		wantValue string
	}{
		{
			name:      "text escapes value",
			field:     workspace.FormField{Field: core.Field{Name: "name", Label: "Name", Kind: core.FieldText}, Value: `a<b "c"`},
			wantTag:   "input",
			wantValue: `a<b "c"`,
		},
		{
			name:      "multiline",
			field:     workspace.FormField{Field: core.Field{Name: "body", Label: "Body", Kind: core.FieldMultiline}, Value: "x = 1\ny = 2"},
			wantTag:   "textarea",
			wantValue: "x = 1\ny = 2",
		},
		{
			name: "select marks current option",
			field: workspace.FormField{
				Field: core.Field{Name: "op", Label: "Op", Kind: core.FieldSelect, Options: []string{"<", "==", ">"}},
				Value: "==",
			},
			wantTag:   "select",
			wantValue: "==",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			markup, doc := render(t, common.FieldInput(tt.field))
			assert.NotContains(t, markup, `"c"`, "quotes are escaped")

			el := features.FindByID(doc, "cfg-"+tt.field.Name)
			require.NotNil(t, el)
			assert.Equal(t, tt.wantTag, el.Data)

			bind, _ := features.Attr(el, "data-bind")
			assert.Equal(t, "config."+tt.field.Name, bind)

			switch tt.wantTag {
			case "input":
				v, _ := features.Attr(el, "value")
				assert.Equal(t, tt.wantValue, v)
			case "textarea":
				assert.Equal(t, tt.wantValue, features.Text(el))
			case "select":
				var selected []string
				for _, opt := range options(el) {
					if _, ok := features.Attr(opt, "selected"); ok {
						selected = append(selected, features.Text(opt))
					}
				}
				assert.Equal(t, []string{tt.wantValue}, selected)
			}
		})
	}
}

func options(sel *html.Node) []*html.Node {
	if sel == nil {
		return nil
	}
	var out []*html.Node
	for c := sel.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "option" {
			out = append(out, c)
		}
	}
	return out
}
