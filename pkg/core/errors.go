package core

import (
	"errors"
	"fmt"
)

// ErrBlockNotFound is returned when an operation targets an absent block.
var ErrBlockNotFound = errors.New("block not found")

// ErrInvalidPosition is returned when a coordinate is NaN or infinite.
var ErrInvalidPosition = errors.New("coordinates must be finite")

// UnknownKindError is returned when a kind tag is not registered in the catalog.
type UnknownKindError struct {
	Kind KindTag
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown block kind %q", string(e.Kind))
}

// UnconfigurableBlockError is returned when a configuration write targets a
// block whose kind has no configuration schema.
type UnconfigurableBlockError struct {
	ID   BlockID
	Kind KindTag
}

func (e *UnconfigurableBlockError) Error() string {
	return fmt.Sprintf("block %s of kind %q is not configurable", e.ID, string(e.Kind))
}
