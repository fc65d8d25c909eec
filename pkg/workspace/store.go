package workspace

import (
	"fmt"
	"sort"

	"github.com/leapstack-labs/leapblocks/pkg/catalog"
	"github.com/leapstack-labs/leapblocks/pkg/core"
)

// Store holds block instances keyed by identifier.
// Identifiers are assigned sequentially and never reused until Reset.
type Store struct {
	cat    *catalog.Catalog
	blocks map[core.BlockID]*core.Block
	next   core.BlockID
}

// NewStore creates an empty store backed by cat.
func NewStore(cat *catalog.Catalog) *Store {
	return &Store{
		cat:    cat,
		blocks: make(map[core.BlockID]*core.Block),
	}
}

// Create places a new block of kind at pos and returns its identifier.
// Configurable kinds are seeded with their field defaults.
func (s *Store) Create(kind core.KindTag, pos core.Position) (core.BlockID, error) {
	k, err := s.cat.Lookup(kind)
	if err != nil {
		return 0, err
	}
	if !pos.Finite() {
		return 0, fmt.Errorf("place %s at (%v, %v): %w", kind, pos.X, pos.Y, core.ErrInvalidPosition)
	}
	id := s.next
	s.next++
	s.blocks[id] = &core.Block{
		ID:       id,
		Kind:     kind,
		Position: pos,
		Config:   k.Defaults(),
	}
	return id, nil
}

// UpdatePosition overwrites the position of id.
func (s *Store) UpdatePosition(id core.BlockID, pos core.Position) error {
	b, ok := s.blocks[id]
	if !ok {
		return fmt.Errorf("move %s: %w", id, core.ErrBlockNotFound)
	}
	if !pos.Finite() {
		return fmt.Errorf("move %s to (%v, %v): %w", id, pos.X, pos.Y, core.ErrInvalidPosition)
	}
	b.Position = pos
	return nil
}

// UpdateConfig sets one configuration field. Field names outside the kind's
// schema are stored as given.
func (s *Store) UpdateConfig(id core.BlockID, field, value string) error {
	return s.SaveConfig(id, core.Values{field: value})
}

// SaveConfig writes every entry of values or none of them.
func (s *Store) SaveConfig(id core.BlockID, values core.Values) error {
	b, ok := s.blocks[id]
	if !ok {
		return fmt.Errorf("configure %s: %w", id, core.ErrBlockNotFound)
	}
	if !b.Configurable() {
		return &core.UnconfigurableBlockError{ID: id, Kind: b.Kind}
	}
	for field, value := range values {
		b.Config[field] = value
	}
	return nil
}

// Delete removes id and its configuration. Absent identifiers are ignored.
// It reports whether a block was removed.
func (s *Store) Delete(id core.BlockID) bool {
	if _, ok := s.blocks[id]; !ok {
		return false
	}
	delete(s.blocks, id)
	return true
}

// Get returns a copy of the block.
func (s *Store) Get(id core.BlockID) (core.Block, bool) {
	b, ok := s.blocks[id]
	if !ok {
		return core.Block{}, false
	}
	return b.Clone(), true
}

// List returns copies of all blocks in identifier order.
func (s *Store) List() []core.Block {
	out := make([]core.Block, 0, len(s.blocks))
	for _, b := range s.blocks {
		out = append(out, b.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of blocks.
func (s *Store) Len() int {
	return len(s.blocks)
}

// NextID returns the identifier the next Create will assign.
func (s *Store) NextID() core.BlockID {
	return s.next
}

// Reset removes every block and restarts numbering.
func (s *Store) Reset() {
	s.blocks = make(map[core.BlockID]*core.Block)
	s.next = 0
}
