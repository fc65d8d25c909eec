package gesture

import (
	"fmt"

	"github.com/leapstack-labs/leapblocks/pkg/core"
)

// EventType is the kind of an abstract pointer event.
type EventType int

const (
	// EventDown is a pointer press.
	EventDown EventType = iota
	// EventMove is a pointer move.
	EventMove
	// EventUp is a pointer release.
	EventUp
	// EventDrop is a toolbar kind released over the workspace.
	EventDrop
	// EventCancel abandons the current gesture.
	EventCancel
)

// String returns the string representation of EventType.
func (t EventType) String() string {
	switch t {
	case EventDown:
		return "down"
	case EventMove:
		return "move"
	case EventUp:
		return "up"
	case EventDrop:
		return "drop"
	case EventCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// ParseEventType converts the textual form used by hosts.
func ParseEventType(s string) (EventType, error) {
	for t := EventDown; t <= EventCancel; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown pointer event %q", s)
}

// TargetKind is what the pointer is over.
type TargetKind int

const (
	// TargetNone is outside any element the editor knows about.
	TargetNone TargetKind = iota
	// TargetWorkspace is the empty workspace background.
	TargetWorkspace
	// TargetBlock is the body of a block.
	TargetBlock
	// TargetPort is a connection point of a block.
	TargetPort
)

// Target identifies the element under the pointer.
type Target struct {
	Kind  TargetKind
	Block core.BlockID
	Port  core.PortKind
}

// Nowhere returns a target outside every known element.
func Nowhere() Target { return Target{Kind: TargetNone} }

// OnWorkspace returns the workspace background target.
func OnWorkspace() Target { return Target{Kind: TargetWorkspace} }

// OnBlock returns the body target of id.
func OnBlock(id core.BlockID) Target { return Target{Kind: TargetBlock, Block: id} }

// OnPort returns the port target of id.
func OnPort(id core.BlockID, port core.PortKind) Target {
	return Target{Kind: TargetPort, Block: id, Port: port}
}

// Event is one abstract pointer event in workspace coordinates.
type Event struct {
	Type   EventType
	Point  core.Position
	Target Target
	// Kind is the toolbar kind carried by EventDrop.
	Kind core.KindTag
}

// Down builds a press event.
func Down(p core.Position, t Target) Event { return Event{Type: EventDown, Point: p, Target: t} }

// Move builds a move event.
func Move(p core.Position) Event { return Event{Type: EventMove, Point: p} }

// Up builds a release event.
func Up(p core.Position, t Target) Event { return Event{Type: EventUp, Point: p, Target: t} }

// Drop builds a toolbar drop event.
func Drop(kind core.KindTag, p core.Position) Event {
	return Event{Type: EventDrop, Point: p, Kind: kind}
}

// Cancel builds a cancel event.
func Cancel() Event { return Event{Type: EventCancel} }
