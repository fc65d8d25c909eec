package configure

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/leapblocks/internal/ui/features/common"
	"github.com/leapstack-labs/leapblocks/pkg/core"
)

// Handlers provides HTTP handlers for the configure feature.
type Handlers struct{}

// NewHandlers creates a new Handlers instance.
func NewHandlers() *Handlers {
	return &Handlers{}
}

func statusOf(err error) int {
	var unconfigurable *core.UnconfigurableBlockError
	switch {
	case errors.Is(err, core.ErrBlockNotFound):
		return http.StatusNotFound
	case errors.As(err, &unconfigurable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func blockID(w http.ResponseWriter, r *http.Request) (core.BlockID, bool) {
	id, err := core.ParseBlockID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// OpenForm opens the configuration form of a block.
func (h *Handlers) OpenForm(w http.ResponseWriter, r *http.Request) {
	s, ok := common.MustSession(w, r)
	if !ok {
		return
	}
	id, ok := blockID(w, r)
	if !ok {
		return
	}

	if _, err := s.OpenConfig(id); err != nil {
		http.Error(w, err.Error(), statusOf(err))
		return
	}

	sse := datastar.NewSSE(w, r)
	if err := common.SendApp(sse, s); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// SaveForm stores the posted values and closes the form.
func (h *Handlers) SaveForm(w http.ResponseWriter, r *http.Request) {
	s, ok := common.MustSession(w, r)
	if !ok {
		return
	}
	id, ok := blockID(w, r)
	if !ok {
		return
	}

	// Read signals before creating the SSE; it consumes the request body.
	var signals FormSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, "failed to read signals: "+err.Error(), http.StatusBadRequest)
		return
	}

	view, err := s.View()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	form := view.Form
	if form == nil || form.Block != id {
		if form, err = s.OpenConfig(id); err != nil {
			http.Error(w, err.Error(), statusOf(err))
			return
		}
	}

	values, err := signals.Values(form)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid config: %v", err), http.StatusBadRequest)
		return
	}
	if err := s.SaveConfig(id, values); err != nil {
		http.Error(w, err.Error(), statusOf(err))
		return
	}

	sse := datastar.NewSSE(w, r)
	if err := common.SendApp(sse, s); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// CancelForm closes the form without saving.
func (h *Handlers) CancelForm(w http.ResponseWriter, r *http.Request) {
	s, ok := common.MustSession(w, r)
	if !ok {
		return
	}
	if _, ok := blockID(w, r); !ok {
		return
	}

	s.CloseConfig()

	sse := datastar.NewSSE(w, r)
	if err := common.SendApp(sse, s); err != nil {
		_ = sse.ConsoleError(err)
	}
}
