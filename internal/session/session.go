// Package session holds the editor sessions served to UI hosts.
//
// Each Session owns one workspace and one gesture machine. A mutex makes
// every request run to completion before the next one observes state.
package session

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/leapstack-labs/leapblocks/internal/ui/notifier"
	"github.com/leapstack-labs/leapblocks/pkg/catalog"
	"github.com/leapstack-labs/leapblocks/pkg/core"
	"github.com/leapstack-labs/leapblocks/pkg/dialect"
	"github.com/leapstack-labs/leapblocks/pkg/gesture"
	"github.com/leapstack-labs/leapblocks/pkg/workspace"
)

// Session is one browser's editor.
type Session struct {
	id       string
	logger   *slog.Logger
	notifier *notifier.Notifier

	mu       sync.Mutex
	ws       *workspace.Workspace
	machine  *gesture.Machine
	dialect  string
	showCode bool
	editing  core.BlockID
	isEdit   bool
	lastSeen time.Time
}

// View is a consistent snapshot of a session for rendering.
type View struct {
	ID          string
	Catalog     *catalog.Catalog
	Revision    uint64
	Blocks      []core.Block
	Connections []core.Connection
	Selected    core.BlockID
	HasSelected bool
	State       gesture.State
	Geometry    gesture.Geometry
	Dialect     string
	ShowCode    bool
	// Code is empty while the code panel is hidden.
	Code string
	// Form is the open configuration form, if any.
	Form *workspace.Form
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Subscribe returns a channel of workspace revisions.
func (s *Session) Subscribe() chan uint64 {
	return s.notifier.Subscribe()
}

// Unsubscribe releases a channel returned by Subscribe.
func (s *Session) Unsubscribe(ch chan uint64) {
	s.notifier.Unsubscribe(ch)
}

// publish notifies listeners. Called with s.mu held.
func (s *Session) publish() {
	s.notifier.Broadcast(s.ws.Revision())
}

// Pointer applies one gesture event.
func (s *Session) Pointer(ev gesture.Event) (gesture.Effect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	eff, err := s.machine.Handle(ev)
	if err != nil {
		return eff, fmt.Errorf("pointer %s: %w", ev.Type, err)
	}
	if eff.Action != gesture.ActionNone {
		s.logger.Debug("gesture", "session", s.id, "event", ev.Type, "action", eff.Action, "state", s.machine.State())
		s.publish()
	}
	return eff, nil
}

// DeleteBlock removes id and its connections.
func (s *Session) DeleteBlock(id core.BlockID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isEdit && s.editing == id {
		s.isEdit = false
	}
	if sel, ok := s.machine.Selected(); ok && sel == id {
		s.machine.Reset()
	}
	if from, ok := s.machine.Linking(); ok && from == id {
		s.machine.Reset()
	}
	s.ws.DeleteBlock(id)
	s.publish()
}

// Clear empties the workspace.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ws.Clear()
	s.machine.Reset()
	s.isEdit = false
	s.publish()
}

// OpenConfig opens the configuration form of id.
func (s *Session) OpenConfig(id core.BlockID) (*workspace.Form, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	form, err := s.ws.ConfigForm(id)
	if err != nil {
		return nil, err
	}
	s.editing, s.isEdit = id, true
	s.publish()
	return form, nil
}

// SaveConfig stores the submitted values of the open form and closes it.
func (s *Session) SaveConfig(id core.BlockID, values core.Values) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ws.SaveConfig(id, values); err != nil {
		return err
	}
	if s.isEdit && s.editing == id {
		s.isEdit = false
	}
	s.publish()
	return nil
}

// CloseConfig closes the open form without saving.
func (s *Session) CloseConfig() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isEdit {
		return
	}
	s.isEdit = false
	s.publish()
}

// ToggleCode flips code panel visibility and returns the new value.
func (s *Session) ToggleCode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.showCode = !s.showCode
	s.publish()
	return s.showCode
}

// SetDialect selects the output dialect by name or alias.
func (s *Session) SetDialect(name string) error {
	d, err := dialect.Resolve(name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.dialect = d.Name
	s.publish()
	return nil
}

// Dialect returns the selected dialect name.
func (s *Session) Dialect() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dialect
}

// Code generates the workspace in the selected dialect. It returns "" without
// generating while the code panel is hidden.
func (s *Session) Code() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.code()
}

func (s *Session) code() (string, error) {
	if !s.showCode {
		return "", nil
	}
	return s.ws.Generate(s.dialect)
}

// Export generates the workspace in the selected dialect regardless of
// panel visibility. It also returns the dialect name.
func (s *Session) Export() (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code, err := s.ws.Generate(s.dialect)
	return s.dialect, code, err
}

// View returns a snapshot for rendering.
func (s *Session) View() (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code, err := s.code()
	if err != nil {
		return View{}, err
	}
	sel, hasSel := s.machine.Selected()
	v := View{
		ID:          s.id,
		Catalog:     s.ws.Catalog(),
		Revision:    s.ws.Revision(),
		Blocks:      s.ws.Blocks(),
		Connections: s.ws.Connections(),
		Selected:    sel,
		HasSelected: hasSel,
		State:       s.machine.State(),
		Geometry:    s.machine.Geometry(),
		Dialect:     s.dialect,
		ShowCode:    s.showCode,
		Code:        code,
	}
	if s.isEdit {
		form, err := s.ws.ConfigForm(s.editing)
		if err != nil {
			return View{}, err
		}
		v.Form = form
	}
	return v, nil
}

// close releases subscribers. Called by the Manager on eviction.
func (s *Session) close() {
	s.notifier.Close()
}
