package canvas

import (
	"fmt"

	"github.com/leapstack-labs/leapblocks/pkg/core"
	"github.com/leapstack-labs/leapblocks/pkg/gesture"
)

// PointerSignals is the body posted by the canvas script for one pointer event.
type PointerSignals struct {
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Target string  `json:"target"`
	Block  string  `json:"block"`
	Port   string  `json:"port"`
}

// Event converts the signals into a gesture event.
func (p PointerSignals) Event() (gesture.Event, error) {
	typ, err := gesture.ParseEventType(p.Type)
	if err != nil {
		return gesture.Event{}, err
	}
	if typ == gesture.EventDrop {
		return gesture.Event{}, fmt.Errorf("drop events go to /api/drop")
	}
	target, err := p.target()
	if err != nil {
		return gesture.Event{}, err
	}
	return gesture.Event{
		Type:   typ,
		Point:  core.Position{X: p.X, Y: p.Y},
		Target: target,
	}, nil
}

func (p PointerSignals) target() (gesture.Target, error) {
	switch p.Target {
	case "":
		return gesture.Nowhere(), nil
	case "workspace":
		return gesture.OnWorkspace(), nil
	case "block", "port":
		id, err := core.ParseBlockID(p.Block)
		if err != nil {
			return gesture.Target{}, err
		}
		if p.Target == "block" {
			return gesture.OnBlock(id), nil
		}
		port, ok := core.ParsePortKind(p.Port)
		if !ok {
			return gesture.Target{}, fmt.Errorf("invalid port %q", p.Port)
		}
		return gesture.OnPort(id, port), nil
	default:
		return gesture.Target{}, fmt.Errorf("invalid target %q", p.Target)
	}
}

// DropSignals is the body posted when a toolbar template is released.
type DropSignals struct {
	Kind string  `json:"kind"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Event converts the signals into a drop event.
func (d DropSignals) Event() gesture.Event {
	return gesture.Drop(core.KindTag(d.Kind), core.Position{X: d.X, Y: d.Y})
}

// Result reports the outcome of a pointer or drop event.
type Result struct {
	Action  string `json:"action"`
	Changed bool   `json:"changed"`
	Block   string `json:"block,omitempty"`
	State   string `json:"state"`
}
