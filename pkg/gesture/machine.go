// Package gesture implements the pointer interaction state machine of the
// canvas: dragging blocks, drawing connections and dropping toolbar kinds.
//
// The machine knows nothing about a windowing toolkit. Hosts translate their
// pointer events into Events in workspace coordinates and apply them with
// Handle; model changes go through the Host interface.
package gesture

import (
	"fmt"

	"github.com/leapstack-labs/leapblocks/pkg/core"
)

// State is the interaction state.
type State int

const (
	// Idle waits for a press.
	Idle State = iota
	// DraggingBlock moves the selected block with the pointer.
	DraggingBlock
	// DrawingConnection waits for a release over a port.
	DrawingConnection
)

// String returns the string representation of State.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case DraggingBlock:
		return "dragging-block"
	case DrawingConnection:
		return "drawing-connection"
	default:
		return "unknown"
	}
}

// Host is the model the machine mutates. *workspace.Workspace implements it.
type Host interface {
	Block(id core.BlockID) (core.Block, bool)
	AddBlock(kind core.KindTag, pos core.Position) (core.BlockID, error)
	MoveBlock(id core.BlockID, pos core.Position) error
	Connect(start, end core.BlockID) error
}

// Geometry is the workspace and block size used for clamping and drops.
type Geometry struct {
	Width       float64
	Height      float64
	BlockWidth  float64
	BlockHeight float64
	// DropAnchor is subtracted from a toolbar drop point.
	DropAnchor core.Position
}

// DefaultGeometry returns the geometry of a width x height workspace with
// the standard 90x50 block.
func DefaultGeometry(width, height float64) Geometry {
	return Geometry{
		Width:       width,
		Height:      height,
		BlockWidth:  90,
		BlockHeight: 50,
		DropAnchor:  core.Position{X: 45, Y: 20},
	}
}

// Clamp keeps a block's top-left corner inside the workspace.
func (g Geometry) Clamp(p core.Position) core.Position {
	return core.Position{
		X: clamp(p.X, 0, g.Width-g.BlockWidth),
		Y: clamp(p.Y, 0, g.Height-g.BlockHeight),
	}
}

// Inside reports whether p lies strictly inside the workspace.
func (g Geometry) Inside(p core.Position) bool {
	return p.X > 0 && p.Y > 0 && p.X < g.Width && p.Y < g.Height
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}

// Action describes what an event did.
type Action int

const (
	ActionNone Action = iota
	ActionSelect
	ActionDeselect
	ActionMove
	ActionStartConnection
	ActionConnect
	ActionAbandon
	ActionAdd
)

// String returns the string representation of Action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionSelect:
		return "select"
	case ActionDeselect:
		return "deselect"
	case ActionMove:
		return "move"
	case ActionStartConnection:
		return "start-connection"
	case ActionConnect:
		return "connect"
	case ActionAbandon:
		return "abandon"
	case ActionAdd:
		return "add"
	default:
		return "unknown"
	}
}

// Effect is the outcome of one event.
type Effect struct {
	Action Action
	// Changed is true when the model was mutated.
	Changed bool
	// Block is the block added, moved or selected.
	Block core.BlockID
	// Connection is set for ActionConnect.
	Connection core.Connection
}

type port struct {
	block core.BlockID
	kind  core.PortKind
}

// Machine is the gesture state machine of one editor. Not safe for concurrent use.
type Machine struct {
	host  Host
	geo   Geometry
	state State

	selected    core.BlockID
	hasSelected bool
	offset      core.Position
	start       port
}

// NewMachine returns an idle machine driving host.
func NewMachine(host Host, geo Geometry) *Machine {
	return &Machine{host: host, geo: geo}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Geometry returns the workspace geometry.
func (m *Machine) Geometry() Geometry {
	return m.geo
}

// Selected returns the selected block, if any.
func (m *Machine) Selected() (core.BlockID, bool) {
	return m.selected, m.hasSelected
}

// Linking returns the block a connection is being drawn from, if any.
func (m *Machine) Linking() (core.BlockID, bool) {
	if m.state != DrawingConnection {
		return 0, false
	}
	return m.start.block, true
}

// Reset returns to Idle with no selection. Hosts call it after clearing the workspace.
func (m *Machine) Reset() {
	m.state = Idle
	m.hasSelected = false
	m.offset = core.Position{}
	m.start = port{}
}

// Handle applies ev. A returned error comes from the host and leaves the
// machine in the state it would have reached anyway.
func (m *Machine) Handle(ev Event) (Effect, error) {
	switch ev.Type {
	case EventCancel:
		return m.cancel(), nil
	case EventDrop:
		return m.drop(ev)
	}

	switch m.state {
	case Idle:
		return m.idle(ev)
	case DraggingBlock:
		return m.dragging(ev)
	case DrawingConnection:
		return m.drawing(ev)
	default:
		return Effect{}, fmt.Errorf("gesture: invalid state %d", m.state)
	}
}

func (m *Machine) idle(ev Event) (Effect, error) {
	if ev.Type != EventDown {
		return Effect{}, nil
	}
	switch ev.Target.Kind {
	case TargetBlock:
		b, ok := m.host.Block(ev.Target.Block)
		if !ok {
			return Effect{}, nil
		}
		m.selected, m.hasSelected = b.ID, true
		m.offset = core.Position{X: ev.Point.X - b.Position.X, Y: ev.Point.Y - b.Position.Y}
		m.state = DraggingBlock
		return Effect{Action: ActionSelect, Block: b.ID}, nil
	case TargetPort:
		if _, ok := m.host.Block(ev.Target.Block); !ok {
			return Effect{}, nil
		}
		m.start = port{block: ev.Target.Block, kind: ev.Target.Port}
		m.state = DrawingConnection
		return Effect{Action: ActionStartConnection, Block: ev.Target.Block}, nil
	case TargetWorkspace:
		if !m.hasSelected {
			return Effect{}, nil
		}
		m.hasSelected = false
		return Effect{Action: ActionDeselect}, nil
	default:
		return Effect{}, nil
	}
}

func (m *Machine) dragging(ev Event) (Effect, error) {
	switch ev.Type {
	case EventMove:
		pos := m.geo.Clamp(core.Position{X: ev.Point.X - m.offset.X, Y: ev.Point.Y - m.offset.Y})
		if err := m.host.MoveBlock(m.selected, pos); err != nil {
			m.state = Idle
			m.hasSelected = false
			return Effect{}, err
		}
		return Effect{Action: ActionMove, Changed: true, Block: m.selected}, nil
	case EventUp:
		m.state = Idle
		m.hasSelected = false
		return Effect{Action: ActionDeselect, Block: m.selected}, nil
	default:
		return Effect{}, nil
	}
}

func (m *Machine) drawing(ev Event) (Effect, error) {
	if ev.Type != EventUp {
		return Effect{}, nil
	}
	m.state = Idle
	start := m.start
	m.start = port{}

	t := ev.Target
	if t.Kind != TargetPort || t.Block == start.block || t.Port == start.kind {
		return Effect{Action: ActionAbandon}, nil
	}
	if _, ok := m.host.Block(t.Block); !ok {
		return Effect{Action: ActionAbandon}, nil
	}
	// The start block may have been deleted mid-gesture.
	if _, ok := m.host.Block(start.block); !ok {
		return Effect{Action: ActionAbandon}, nil
	}

	conn := core.Connection{Start: start.block, End: t.Block}
	if start.kind == core.PortInput {
		conn = core.Connection{Start: t.Block, End: start.block}
	}
	if err := m.host.Connect(conn.Start, conn.End); err != nil {
		return Effect{}, err
	}
	return Effect{Action: ActionConnect, Changed: true, Connection: conn}, nil
}

func (m *Machine) drop(ev Event) (Effect, error) {
	if m.state != Idle {
		return Effect{}, nil
	}
	p := core.Position{X: ev.Point.X - m.geo.DropAnchor.X, Y: ev.Point.Y - m.geo.DropAnchor.Y}
	if !m.geo.Inside(p) {
		return Effect{}, nil
	}
	id, err := m.host.AddBlock(ev.Kind, p)
	if err != nil {
		return Effect{}, err
	}
	return Effect{Action: ActionAdd, Changed: true, Block: id}, nil
}

func (m *Machine) cancel() Effect {
	if m.state == Idle {
		return Effect{}
	}
	m.state = Idle
	m.hasSelected = false
	m.start = port{}
	return Effect{Action: ActionAbandon}
}
