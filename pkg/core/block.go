package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// KindTag identifies a block kind in the catalog (e.g. "process").
type KindTag string

// Builtin block kinds, in toolbar order.
const (
	KindStart     KindTag = "start"
	KindProcess   KindTag = "process"
	KindCondition KindTag = "condition"
	KindEnd       KindTag = "end"
	KindInput     KindTag = "input"
	KindOutput    KindTag = "output"
	KindLoop      KindTag = "loop"
	KindVariable  KindTag = "variable"
	KindFunction  KindTag = "function"
)

// BlockID identifies a block instance within one workspace.
// IDs are assigned sequentially from 0 and never reused until the workspace is cleared.
type BlockID int

// blockIDPrefix is the prefix used by the textual form of a BlockID.
const blockIDPrefix = "block-"

// String returns the textual form used by hosts, e.g. "block-3".
func (id BlockID) String() string {
	return blockIDPrefix + strconv.Itoa(int(id))
}

// ParseBlockID accepts both "block-3" and "3".
func ParseBlockID(s string) (BlockID, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(s), blockIDPrefix))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid block id %q", s)
	}
	return BlockID(n), nil
}

// Position is a point in workspace coordinates.
// Only Y has semantic weight: it decides generation order.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Finite reports whether both coordinates are finite numbers.
func (p Position) Finite() bool {
	return finite(p.X) && finite(p.Y)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Block is one placed instance of a block kind.
type Block struct {
	ID       BlockID  `json:"id" yaml:"id"`
	Kind     KindTag  `json:"kind" yaml:"kind"`
	Position Position `json:"position" yaml:"position"`
	// Config is non-nil if and only if the kind is configurable.
	Config Values `json:"config,omitempty" yaml:"config,omitempty"`
}

// Configurable reports whether the block carries configuration values.
func (b Block) Configurable() bool {
	return b.Config != nil
}

// Clone returns a copy of the block that shares no mutable state.
func (b Block) Clone() Block {
	b.Config = b.Config.Clone()
	return b
}

// Connection is a directed edge: the output of Start feeds the input of End.
type Connection struct {
	Start BlockID `json:"start" yaml:"start"`
	End   BlockID `json:"end" yaml:"end"`
}

// Touches reports whether the connection references id at either end.
func (c Connection) Touches(id BlockID) bool {
	return c.Start == id || c.End == id
}

// PortKind distinguishes the two connection points of a block.
type PortKind int

const (
	// PortInput is the connection point that receives flow.
	PortInput PortKind = iota
	// PortOutput is the connection point that emits flow.
	PortOutput
)

// String returns the string representation of PortKind.
func (p PortKind) String() string {
	switch p {
	case PortInput:
		return "input"
	case PortOutput:
		return "output"
	default:
		return "unknown"
	}
}

// ParsePortKind converts "input"/"output" to a PortKind.
func ParsePortKind(s string) (PortKind, bool) {
	switch strings.ToLower(s) {
	case "input", "in":
		return PortInput, true
	case "output", "out":
		return PortOutput, true
	default:
		return PortInput, false
	}
}
