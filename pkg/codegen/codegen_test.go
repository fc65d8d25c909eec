package codegen

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapblocks/pkg/catalog"
	"github.com/leapstack-labs/leapblocks/pkg/core"
)

func block(id int, kind core.KindTag, y float64, cfg core.Values) core.Block {
	return core.Block{ID: core.BlockID(id), Kind: kind, Position: core.Position{X: 10, Y: y}, Config: cfg}
}

func TestOrder(t *testing.T) {
	blocks := []core.Block{
		block(2, core.KindEnd, 300, nil),
		block(0, core.KindStart, 100, nil),
		block(3, core.KindProcess, 200, nil),
		block(1, core.KindOutput, 200, nil),
	}

	ordered := Order(blocks)

	var ids []core.BlockID
	for _, b := range ordered {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []core.BlockID{0, 1, 3, 2}, ids)
	assert.Equal(t, core.BlockID(2), blocks[0].ID, "input must not be reordered")
}

func TestOrder_NaNSortsLast(t *testing.T) {
	tests := []struct {
		name   string
		blocks []core.Block
		want   []core.BlockID
	}{
		{
			name: "NaN between numbers",
			blocks: []core.Block{
				block(0, core.KindEnd, 300, nil),
				block(1, core.KindStart, math.NaN(), nil),
				block(2, core.KindStart, 10, nil),
			},
			want: []core.BlockID{2, 0, 1},
		},
		{
			name: "NaN first in input",
			blocks: []core.Block{
				block(1, core.KindStart, math.NaN(), nil),
				block(0, core.KindEnd, 300, nil),
				block(2, core.KindStart, 10, nil),
			},
			want: []core.BlockID{2, 0, 1},
		},
		{
			name: "NaN ties keep identifier order",
			blocks: []core.Block{
				block(3, core.KindEnd, math.NaN(), nil),
				block(1, core.KindStart, math.NaN(), nil),
				block(2, core.KindProcess, math.Inf(1), nil),
			},
			want: []core.BlockID{1, 2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids []core.BlockID
			for _, b := range Order(tt.blocks) {
				ids = append(ids, b.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestGenerate_NaNPositionIsDeterministic(t *testing.T) {
	blocks := []core.Block{
		block(0, core.KindEnd, 300, nil),
		block(1, core.KindStart, math.NaN(), nil),
		block(2, core.KindStart, 10, nil),
	}

	out, err := Generate(catalog.Default(), blocks, "js")
	require.NoError(t, err)
	assert.Equal(t, "// Program Start\n// Program End\n// Program Start\n", out)
}

func TestGenerate_Empty(t *testing.T) {
	out, err := Generate(catalog.Default(), nil, "js")
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestGenerate_EndToEnd(t *testing.T) {
	blocks := []core.Block{
		block(1, core.KindOutput, 120, core.Values{"message": "x"}),
		block(0, core.KindVariable, 40, core.Values{"name": "x", "value": "5", "type": "number"}),
	}

	tests := []struct {
		dialect string
		want    string
	}{
		{"js", "let x = 5;\nconsole.log(\"x\", x);\n"},
		{"py", "x = 5\nprint(\"x\", x)\n"},
		{"pseudo", "DECLARE x AS NUMBER = 5\nOUTPUT: Display x\n"},
		{"ts", "let x: number = 5;\nconsole.log(\"x\", x);\n"},
	}
	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			out, err := Generate(catalog.Default(), blocks, tt.dialect)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestGenerate_OneLinePerBlock(t *testing.T) {
	blocks := []core.Block{
		block(0, core.KindStart, 0, nil),
		block(1, core.KindProcess, 50, core.Values{"operation": "a()"}),
		block(2, core.KindOutput, 100, core.Values{"message": "m"}),
		block(3, core.KindEnd, 150, nil),
	}
	out, err := Generate(catalog.Default(), blocks, "js")
	require.NoError(t, err)
	assert.Equal(t, len(blocks), strings.Count(out, "\n"))
}

func TestGenerate_SwapPositions(t *testing.T) {
	a := block(0, core.KindStart, 10, nil)
	b := block(1, core.KindEnd, 20, nil)

	out, err := Generate(catalog.Default(), []core.Block{a, b}, "py")
	require.NoError(t, err)
	assert.Equal(t, "# Program Start\n# Program End\n", out)

	a.Position.Y, b.Position.Y = b.Position.Y, a.Position.Y
	out, err = Generate(catalog.Default(), []core.Block{a, b}, "py")
	require.NoError(t, err)
	assert.Equal(t, "# Program End\n# Program Start\n", out)
}

func TestRender_Fallback(t *testing.T) {
	blocks := []core.Block{
		block(0, core.KindVariable, 0, core.Values{"name": "n", "value": "1", "type": "number"}),
		block(1, core.KindProcess, 10, core.Values{"operation": "run()"}),
	}

	snippets, err := Render(catalog.Default(), blocks, "ts")
	require.NoError(t, err)
	require.Len(t, snippets, 2)
	assert.False(t, snippets[0].Fallback)
	assert.True(t, snippets[1].Fallback)

	js, err := Render(catalog.Default(), blocks, "js")
	require.NoError(t, err)
	assert.Equal(t, js[1].Text, snippets[1].Text)

	unknown, err := Generate(catalog.Default(), blocks, "cobol")
	require.NoError(t, err)
	assert.Equal(t, Join(js), unknown)
}

func TestRender_UnknownKind(t *testing.T) {
	_, err := Render(catalog.Default(), []core.Block{block(4, "teleport", 0, nil)}, "js")
	require.Error(t, err)

	var unknown *core.UnknownKindError
	assert.True(t, errors.As(err, &unknown))
	assert.Contains(t, err.Error(), "block-4")
}

func TestRender_DefaultConfig(t *testing.T) {
	kind, err := catalog.Default().Lookup(core.KindVariable)
	require.NoError(t, err)

	blocks := []core.Block{block(0, core.KindVariable, 0, kind.Defaults())}
	for dialect, want := range map[string]string{
		"js":     "let myVar = 0;\n",
		"py":     "myVar = 0\n",
		"pseudo": "DECLARE myVar AS NUMBER = 0\n",
	} {
		out, err := Generate(catalog.Default(), blocks, dialect)
		require.NoError(t, err)
		assert.Equal(t, want, out, dialect)
	}

	stringBlock := block(0, core.KindVariable, 0, core.Values{"name": "myVar", "value": "0", "type": "string"})
	out, err := Generate(catalog.Default(), []core.Block{stringBlock}, "js")
	require.NoError(t, err)
	assert.Equal(t, "let myVar = \"0\";\n", out)
}
