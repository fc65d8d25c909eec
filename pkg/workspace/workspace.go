// Package workspace provides the editor state of one canvas.
//
// A Workspace owns the block instance store, the connection set and the
// catalog they are validated against. It is not safe for concurrent use;
// hosts serialise access per editor session.
package workspace

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leapblocks/pkg/catalog"
	"github.com/leapstack-labs/leapblocks/pkg/codegen"
	"github.com/leapstack-labs/leapblocks/pkg/core"
)

// Workspace is one editor session's model.
type Workspace struct {
	cat      *catalog.Catalog
	store    *Store
	links    ConnectionSet
	logger   *slog.Logger
	revision uint64
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithCatalog replaces the builtin catalog.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(w *Workspace) {
		w.cat = cat
	}
}

// WithLogger sets the logger. Defaults to a discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workspace) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New creates an empty workspace.
func New(opts ...Option) *Workspace {
	w := &Workspace{
		cat:    catalog.Default(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.store = NewStore(w.cat)
	return w
}

// Catalog returns the catalog blocks are validated against.
func (w *Workspace) Catalog() *catalog.Catalog {
	return w.cat
}

// Revision increases on every successful mutation.
func (w *Workspace) Revision() uint64 {
	return w.revision
}

func (w *Workspace) touch() {
	w.revision++
}

// AddBlock places a block of kind at pos.
func (w *Workspace) AddBlock(kind core.KindTag, pos core.Position) (core.BlockID, error) {
	id, err := w.store.Create(kind, pos)
	if err != nil {
		return 0, fmt.Errorf("add block: %w", err)
	}
	w.touch()
	w.logger.Debug("block added", "id", id, "kind", kind, "x", pos.X, "y", pos.Y)
	return id, nil
}

// MoveBlock updates the position of id.
func (w *Workspace) MoveBlock(id core.BlockID, pos core.Position) error {
	if err := w.store.UpdatePosition(id, pos); err != nil {
		return err
	}
	w.touch()
	w.logger.Debug("block moved", "id", id, "x", pos.X, "y", pos.Y)
	return nil
}

// Configure sets a single configuration field of id.
func (w *Workspace) Configure(id core.BlockID, field, value string) error {
	if err := w.store.UpdateConfig(id, field, value); err != nil {
		return err
	}
	w.touch()
	w.logger.Debug("block configured", "id", id, "field", field)
	return nil
}

// SaveConfig applies a submitted configuration form.
func (w *Workspace) SaveConfig(id core.BlockID, values core.Values) error {
	if err := w.store.SaveConfig(id, values); err != nil {
		return err
	}
	w.touch()
	w.logger.Debug("block config saved", "id", id, "fields", len(values))
	return nil
}

// DeleteBlock removes id together with every connection touching it.
// Deleting an absent block is a no-op.
func (w *Workspace) DeleteBlock(id core.BlockID) {
	removed := w.store.Delete(id)
	links := w.links.DisconnectAll(id)
	if !removed && links == 0 {
		return
	}
	w.touch()
	w.logger.Debug("block deleted", "id", id, "connections", links)
}

// Connect links the output of start to the input of end. Both blocks must
// exist; self-loops and duplicate edges are accepted.
func (w *Workspace) Connect(start, end core.BlockID) error {
	for _, id := range []core.BlockID{start, end} {
		if _, ok := w.store.Get(id); !ok {
			return fmt.Errorf("connect %s: %w", id, core.ErrBlockNotFound)
		}
	}
	w.links.Connect(start, end)
	w.touch()
	w.logger.Debug("blocks connected", "start", start, "end", end)
	return nil
}

// Clear empties the workspace and restarts block numbering.
func (w *Workspace) Clear() {
	w.store.Reset()
	w.links.Clear()
	w.touch()
	w.logger.Debug("workspace cleared")
}

// Block returns a copy of block id.
func (w *Workspace) Block(id core.BlockID) (core.Block, bool) {
	return w.store.Get(id)
}

// Blocks returns copies of all blocks in identifier order.
func (w *Workspace) Blocks() []core.Block {
	return w.store.List()
}

// Connections returns all edges in creation order.
func (w *Workspace) Connections() []core.Connection {
	return w.links.List()
}

// Len returns the number of blocks.
func (w *Workspace) Len() int {
	return w.store.Len()
}

// Generate renders the workspace in dialect.
func (w *Workspace) Generate(dialect string) (string, error) {
	return codegen.Generate(w.cat, w.store.List(), dialect)
}

// Render returns per-block snippets in generation order.
func (w *Workspace) Render(dialect string) ([]codegen.Snippet, error) {
	return codegen.Render(w.cat, w.store.List(), dialect)
}
