package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapblocks/internal/testutil"
	"github.com/leapstack-labs/leapblocks/pkg/core"
	"github.com/leapstack-labs/leapblocks/pkg/dialect"
	"github.com/leapstack-labs/leapblocks/pkg/gesture"
)

func newManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(Config{Logger: testutil.NewTestLogger(t), ShowCode: true})
}

func drop(t *testing.T, s *Session, kind core.KindTag, x, y float64) core.BlockID {
	t.Helper()
	eff, err := s.Pointer(gesture.Drop(kind, core.Position{X: x, Y: y}))
	require.NoError(t, err)
	require.Equal(t, gesture.ActionAdd, eff.Action)
	return eff.Block
}

func TestSession_DropAndGenerate(t *testing.T) {
	s := newManager(t).Create()

	v := drop(t, s, core.KindVariable, 100, 60)
	o := drop(t, s, core.KindOutput, 100, 160)
	require.NoError(t, s.SaveConfig(v, core.Values{"name": "x", "value": "5", "type": "number"}))
	require.NoError(t, s.SaveConfig(o, core.Values{"message": "x"}))

	code, err := s.Code()
	require.NoError(t, err)
	assert.Equal(t, "let x = 5;\nconsole.log(\"x\", x);\n", code)

	require.NoError(t, s.SetDialect("pseudocode"))
	assert.Equal(t, "pseudo", s.Dialect())
	code, err = s.Code()
	require.NoError(t, err)
	assert.Equal(t, "DECLARE x AS NUMBER = 5\nOUTPUT: Display x\n", code)
}

func TestSession_HiddenPanelSkipsGeneration(t *testing.T) {
	s := newManager(t).Create()
	drop(t, s, core.KindStart, 100, 100)

	assert.False(t, s.ToggleCode())
	code, err := s.Code()
	require.NoError(t, err)
	assert.Empty(t, code)

	view, err := s.View()
	require.NoError(t, err)
	assert.False(t, view.ShowCode)
	assert.Empty(t, view.Code)
	assert.Len(t, view.Blocks, 1)

	assert.True(t, s.ToggleCode())
	code, err = s.Code()
	require.NoError(t, err)
	assert.Equal(t, "// Program Start\n", code)
}

func TestSession_ExportIgnoresPanel(t *testing.T) {
	s := newManager(t).Create()
	drop(t, s, core.KindEnd, 100, 100)
	s.ToggleCode()

	name, code, err := s.Export()
	require.NoError(t, err)
	assert.Equal(t, "js", name)
	assert.Equal(t, "// Program End\n", code)
}

func TestSession_SetDialectUnknown(t *testing.T) {
	s := newManager(t).Create()

	err := s.SetDialect("cobol")
	var unknown *dialect.UnknownDialectError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "js", s.Dialect())
}

func TestSession_ConfigForm(t *testing.T) {
	s := newManager(t).Create()
	id := drop(t, s, core.KindProcess, 100, 100)
	start := drop(t, s, core.KindStart, 100, 300)

	form, err := s.OpenConfig(id)
	require.NoError(t, err)
	assert.Equal(t, "processStep()", form.Fields[0].Value)

	view, err := s.View()
	require.NoError(t, err)
	require.NotNil(t, view.Form)
	assert.Equal(t, id, view.Form.Block)

	s.CloseConfig()
	view, err = s.View()
	require.NoError(t, err)
	assert.Nil(t, view.Form)

	_, err = s.OpenConfig(start)
	var uc *core.UnconfigurableBlockError
	assert.True(t, errors.As(err, &uc))

	_, err = s.OpenConfig(id)
	require.NoError(t, err)
	require.NoError(t, s.SaveConfig(id, core.Values{"operation": "run()"}))
	view, err = s.View()
	require.NoError(t, err)
	assert.Nil(t, view.Form, "saving closes the form")
	assert.Equal(t, "run()\n// Program Start\n", view.Code)
}

func TestSession_DeleteClosesForm(t *testing.T) {
	s := newManager(t).Create()
	id := drop(t, s, core.KindProcess, 100, 100)
	_, err := s.OpenConfig(id)
	require.NoError(t, err)

	s.DeleteBlock(id)
	view, err := s.View()
	require.NoError(t, err)
	assert.Nil(t, view.Form)
	assert.Empty(t, view.Blocks)
}

func TestSession_ConnectGesture(t *testing.T) {
	s := newManager(t).Create()
	a := drop(t, s, core.KindStart, 100, 100)
	b := drop(t, s, core.KindEnd, 100, 300)

	_, err := s.Pointer(gesture.Down(core.Position{}, gesture.OnPort(b, core.PortInput)))
	require.NoError(t, err)
	eff, err := s.Pointer(gesture.Up(core.Position{}, gesture.OnPort(a, core.PortOutput)))
	require.NoError(t, err)
	assert.Equal(t, gesture.ActionConnect, eff.Action)

	view, err := s.View()
	require.NoError(t, err)
	assert.Equal(t, []core.Connection{{Start: a, End: b}}, view.Connections)

	s.Clear()
	view, err = s.View()
	require.NoError(t, err)
	assert.Empty(t, view.Blocks)
	assert.Empty(t, view.Connections)
	assert.Equal(t, gesture.Idle, view.State)
}

func TestSession_DeleteDuringConnectGesture(t *testing.T) {
	tests := []struct {
		name      string
		from      core.PortKind
		to        core.PortKind
		deleteEnd bool
		wantState gesture.State
		wantConns []core.Connection
	}{
		{name: "delete start of link", from: core.PortOutput, to: core.PortInput, wantState: gesture.Idle},
		{name: "delete start of reversed link", from: core.PortInput, to: core.PortOutput, wantState: gesture.Idle},
		{
			name:      "delete unrelated block",
			from:      core.PortOutput,
			to:        core.PortInput,
			deleteEnd: true,
			wantState: gesture.DrawingConnection,
			wantConns: []core.Connection{{Start: 0, End: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newManager(t).Create()
			a := drop(t, s, core.KindStart, 100, 100)
			b := drop(t, s, core.KindEnd, 100, 300)
			c := drop(t, s, core.KindOutput, 300, 300)

			eff, err := s.Pointer(gesture.Down(core.Position{}, gesture.OnPort(a, tt.from)))
			require.NoError(t, err)
			require.Equal(t, gesture.ActionStartConnection, eff.Action)

			if tt.deleteEnd {
				s.DeleteBlock(c)
			} else {
				s.DeleteBlock(a)
			}
			view, err := s.View()
			require.NoError(t, err)
			assert.Equal(t, tt.wantState, view.State)

			_, err = s.Pointer(gesture.Up(core.Position{}, gesture.OnPort(b, tt.to)))
			require.NoError(t, err)

			view, err = s.View()
			require.NoError(t, err)
			assert.Equal(t, gesture.Idle, view.State)
			if tt.wantConns == nil {
				assert.Empty(t, view.Connections)
			} else {
				assert.Equal(t, tt.wantConns, view.Connections)
			}
		})
	}
}

func TestSession_Broadcasts(t *testing.T) {
	s := newManager(t).Create()
	ch := s.Subscribe()
	defer s.Unsubscribe(ch)

	drop(t, s, core.KindStart, 100, 100)

	select {
	case rev := <-ch:
		assert.Equal(t, uint64(1), rev)
	case <-time.After(time.Second):
		t.Fatal("no broadcast after drop")
	}

	_, err := s.Pointer(gesture.Move(core.Position{}))
	require.NoError(t, err)
	select {
	case rev := <-ch:
		t.Fatalf("unexpected broadcast %d for a no-op event", rev)
	default:
	}
}

func TestSession_ConcurrentPointers(t *testing.T) {
	s := newManager(t).Create()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = s.Pointer(gesture.Drop(core.KindProcess, core.Position{X: 100, Y: float64(50 + i)}))
		}(i)
	}
	wg.Wait()

	view, err := s.View()
	require.NoError(t, err)
	require.Len(t, view.Blocks, 20)
	for i, b := range view.Blocks {
		assert.Equal(t, core.BlockID(i), b.ID)
	}
}

func TestManager_GetOrCreate(t *testing.T) {
	m := newManager(t)
	s := m.Create()

	got, ok := m.Get(s.ID())
	require.True(t, ok)
	assert.Same(t, s, got)
	assert.Same(t, s, m.GetOrCreate(s.ID()))

	other := m.GetOrCreate("missing")
	assert.NotEqual(t, s.ID(), other.ID())
	assert.Equal(t, 2, m.Len())
}

func TestManager_Evict(t *testing.T) {
	m := NewManager(Config{TTL: time.Minute})
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	old := m.Create()
	ch := old.Subscribe()

	now = now.Add(30 * time.Second)
	fresh := m.Create()

	now = now.Add(45 * time.Second)
	assert.Equal(t, 1, m.Evict())

	_, ok := m.Get(old.ID())
	assert.False(t, ok)
	_, ok = m.Get(fresh.ID())
	assert.True(t, ok)

	_, open := <-ch
	assert.False(t, open, "evicted session closes its subscribers")
}

func TestManager_RunStopsOnCancel(t *testing.T) {
	m := NewManager(Config{TTL: time.Minute})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
}
