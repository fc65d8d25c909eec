package canvas

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/leapblocks/internal/session"
	"github.com/leapstack-labs/leapblocks/internal/ui/features/common"
	"github.com/leapstack-labs/leapblocks/pkg/core"
	"github.com/leapstack-labs/leapblocks/pkg/gesture"
)

// Handlers provides HTTP handlers for the canvas feature.
type Handlers struct {
	isDev bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(isDev bool) *Handlers {
	return &Handlers{isDev: isDev}
}

// CanvasPage renders the editor page with its current content.
func (h *Handlers) CanvasPage(w http.ResponseWriter, r *http.Request) {
	s, ok := common.MustSession(w, r)
	if !ok {
		return
	}
	view, err := s.View()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := common.Page(common.TitleCanvas, h.isDev, view).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// CanvasUpdates is the long-lived SSE endpoint of the editor page. It pushes
// the editor whenever the session changes. The initial state is rendered by
// CanvasPage.
func (h *Handlers) CanvasUpdates(w http.ResponseWriter, r *http.Request) {
	s, ok := common.MustSession(w, r)
	if !ok {
		return
	}
	sse := datastar.NewSSE(w, r)

	updates := s.Subscribe()
	defer s.Unsubscribe(updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case _, open := <-updates:
			if !open {
				return
			}
			if err := common.SendApp(sse, s); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

// Pointer applies one pointer event posted by the canvas script.
func (h *Handlers) Pointer(w http.ResponseWriter, r *http.Request) {
	s, ok := common.MustSession(w, r)
	if !ok {
		return
	}
	var signals PointerSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, "failed to read pointer event: "+err.Error(), http.StatusBadRequest)
		return
	}
	ev, err := signals.Event()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.apply(w, s, ev)
}

// Drop adds a block released from the toolbar.
func (h *Handlers) Drop(w http.ResponseWriter, r *http.Request) {
	s, ok := common.MustSession(w, r)
	if !ok {
		return
	}
	var signals DropSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, "failed to read drop: "+err.Error(), http.StatusBadRequest)
		return
	}
	h.apply(w, s, signals.Event())
}

func (h *Handlers) apply(w http.ResponseWriter, s *session.Session, ev gesture.Event) {
	eff, err := s.Pointer(ev)
	if err != nil {
		status := http.StatusInternalServerError
		var unknown *core.UnknownKindError
		if errors.As(err, &unknown) || errors.Is(err, core.ErrBlockNotFound) || errors.Is(err, core.ErrInvalidPosition) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, err.Error(), status)
		return
	}

	view, err := s.View()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	res := Result{
		Action:  eff.Action.String(),
		Changed: eff.Changed,
		State:   view.State.String(),
	}
	if eff.Action == gesture.ActionAdd || eff.Action == gesture.ActionMove || eff.Action == gesture.ActionSelect {
		res.Block = eff.Block.String()
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(res)
}

// DeleteBlock removes a block and its connections.
func (h *Handlers) DeleteBlock(w http.ResponseWriter, r *http.Request) {
	s, ok := common.MustSession(w, r)
	if !ok {
		return
	}
	id, err := core.ParseBlockID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.DeleteBlock(id)

	sse := datastar.NewSSE(w, r)
	if err := common.SendApp(sse, s); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// Clear empties the workspace.
func (h *Handlers) Clear(w http.ResponseWriter, r *http.Request) {
	s, ok := common.MustSession(w, r)
	if !ok {
		return
	}

	s.Clear()

	sse := datastar.NewSSE(w, r)
	if err := common.SendApp(sse, s); err != nil {
		_ = sse.ConsoleError(err)
	}
}
