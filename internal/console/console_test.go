package console

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapblocks/internal/cli/output"
	"github.com/leapstack-labs/leapblocks/internal/testutil"
	"github.com/leapstack-labs/leapblocks/pkg/core"
	"github.com/leapstack-labs/leapblocks/pkg/workspace"
)

func newConsole(t *testing.T) (*Console, *workspace.Workspace, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	ws := workspace.New(workspace.WithLogger(testutil.NewTestLogger(t)))
	r := output.NewRendererWithTTY(out, out, false, output.ModeText)
	c, err := New(ws, r, "", testutil.NewTestLogger(t))
	require.NoError(t, err)
	return c, ws, out
}

func run(t *testing.T, c *Console, lines ...string) {
	t.Helper()
	for _, line := range lines {
		require.NoError(t, c.Exec(line), line)
	}
}

func TestConsole_EndToEnd(t *testing.T) {
	c, ws, out := newConsole(t)

	run(t, c,
		"add variable",
		"add output",
		"set 0 name x",
		"set 0 value 5",
		"set block-1 message x",
		"connect 0 1",
	)
	require.Len(t, ws.Connections(), 1)

	out.Reset()
	run(t, c, "code")
	assert.Equal(t, "let x = 5;\nconsole.log(\"x\", x);\n", out.String())

	out.Reset()
	run(t, c, "dialect pseudocode", "code")
	assert.Contains(t, out.String(), "DECLARE x AS NUMBER = 5\nOUTPUT: Display x\n")
	assert.Equal(t, "pseudo", c.Dialect())
	assert.Equal(t, "leapblocks[pseudo]> ", c.Prompt())
}

func TestConsole_AddStacksBlocks(t *testing.T) {
	c, ws, _ := newConsole(t)
	run(t, c, "add start", "add end", "add process 300 5")

	blocks := ws.Blocks()
	require.Len(t, blocks, 3)
	assert.Equal(t, core.Position{X: 20, Y: 20}, blocks[0].Position)
	assert.Equal(t, core.Position{X: 20, Y: 90}, blocks[1].Position)
	assert.Equal(t, core.Position{X: 300, Y: 5}, blocks[2].Position)

	out, err := ws.Generate("js")
	require.NoError(t, err)
	assert.Equal(t, "processStep()\n// Program Start\n// Program End\n", out)
}

func TestConsole_SetKeepsSpacesAndNewlines(t *testing.T) {
	c, ws, _ := newConsole(t)
	run(t, c, "add function", `set 0 body  a = 1;\nreturn a;`, "set 0 parameters")

	b, _ := ws.Block(0)
	assert.Equal(t, "a = 1;\nreturn a;", b.Config["body"])
	assert.Equal(t, "", b.Config["parameters"])
}

func TestConsole_Errors(t *testing.T) {
	c, _, _ := newConsole(t)
	run(t, c, "add start")

	tests := []struct {
		line    string
		wantErr string
		check   func(t *testing.T, err error)
	}{
		{line: "frobnicate", wantErr: "unknown command"},
		{line: "add", wantErr: "usage: add"},
		{line: "add start 10", wantErr: "usage: add"},
		{line: "move 0 a 1", wantErr: "invalid x"},
		{line: "move x 1 1", wantErr: "invalid block id"},
		{line: "add teleport", check: func(t *testing.T, err error) {
			var unknown *core.UnknownKindError
			assert.True(t, errors.As(err, &unknown))
		}},
		{line: "set 0 a b", check: func(t *testing.T, err error) {
			var uc *core.UnconfigurableBlockError
			assert.True(t, errors.As(err, &uc))
		}},
		{line: "connect 0 8", check: func(t *testing.T, err error) {
			assert.ErrorIs(t, err, core.ErrBlockNotFound)
		}},
		{line: "add start 0 NaN", check: func(t *testing.T, err error) {
			assert.ErrorIs(t, err, core.ErrInvalidPosition)
		}},
		{line: "add end +Inf 5", check: func(t *testing.T, err error) {
			assert.ErrorIs(t, err, core.ErrInvalidPosition)
		}},
		{line: "move 0 0 -inf", check: func(t *testing.T, err error) {
			assert.ErrorIs(t, err, core.ErrInvalidPosition)
		}},
		{line: "dialect cobol", wantErr: "cobol"},
		{line: "quit", check: func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrQuit) }},
		{line: "exit", check: func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrQuit) }},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			err := c.Exec(tt.line)
			require.Error(t, err)
			if tt.wantErr != "" {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, err)
			}
		})
	}
}

func TestConsole_NonFiniteLeavesWorkspaceUntouched(t *testing.T) {
	c, ws, _ := newConsole(t)
	run(t, c, "add start 10 20")

	for _, line := range []string{"add end NaN 1", "move 0 Inf 0", "move 0 1 NaN"} {
		require.ErrorIs(t, c.Exec(line), core.ErrInvalidPosition, line)
	}

	blocks := ws.Blocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, core.Position{X: 10, Y: 20}, blocks[0].Position)
}

func TestConsole_DeleteAndClear(t *testing.T) {
	c, ws, out := newConsole(t)
	run(t, c, "add start", "add end", "connect 0 1", "delete 0", "delete 0")

	assert.Equal(t, 1, ws.Len())
	assert.Empty(t, ws.Connections())

	out.Reset()
	run(t, c, "links")
	assert.Contains(t, out.String(), "no connections")

	run(t, c, "clear", "add loop")
	_, ok := ws.Block(0)
	assert.True(t, ok, "numbering restarts after clear")
}

func TestConsole_Listings(t *testing.T) {
	c, _, out := newConsole(t)
	run(t, c, "add loop", "add start", "connect 1 0")

	tests := []struct {
		line string
		want []string
	}{
		{"blocks", []string{"block-0", "loop", `condition="i=0;i<10;i++"`, "block-1", "start"}},
		{"links", []string{"block-1", "block-0"}},
		{"kinds", []string{"IF/ELSE", "prompt, variable", "function"}},
		{"dialects", []string{"js", "JavaScript", "pseudocode", "ts"}},
		{"form 0", []string{"Loop Type", "select", "for|while"}},
		{"dialect", []string{"Dialect", "js"}},
		{"help", []string{"connect <from> <to>", "block-3"}},
		{"", nil},
		{"# comment", nil},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			out.Reset()
			run(t, c, tt.line)
			for _, want := range tt.want {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestConsole_Completer(t *testing.T) {
	c, _, _ := newConsole(t)
	line := []rune("add va")
	matches, offset := c.Completer().Do(line, len(line))
	require.NotEmpty(t, matches)
	assert.Equal(t, 2, offset)
	assert.Equal(t, "riable ", string(matches[0]))
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want []string
	}{
		{"", 2, nil},
		{"0 name", 2, []string{"0", "name"}},
		{"0 name  two words ", 2, []string{"0", "name", "two words"}},
		{"a b c", 0, []string{"a b c"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, splitArgs(tt.in, tt.n), tt.in)
	}
}
