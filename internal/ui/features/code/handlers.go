package code

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/leapblocks/internal/ui/features/common"
	"github.com/leapstack-labs/leapblocks/pkg/dialect"
)

// DialectSignals carries the selected dialect.
type DialectSignals struct {
	Dialect string `json:"dialect"`
}

// Handlers provides HTTP handlers for the code feature.
type Handlers struct{}

// NewHandlers creates a new Handlers instance.
func NewHandlers() *Handlers {
	return &Handlers{}
}

// TogglePanel shows or hides the code panel.
func (h *Handlers) TogglePanel(w http.ResponseWriter, r *http.Request) {
	s, ok := common.MustSession(w, r)
	if !ok {
		return
	}

	s.ToggleCode()

	sse := datastar.NewSSE(w, r)
	if err := common.SendApp(sse, s); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// SetDialect switches the dialect code is generated in.
func (h *Handlers) SetDialect(w http.ResponseWriter, r *http.Request) {
	s, ok := common.MustSession(w, r)
	if !ok {
		return
	}

	var signals DialectSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, "failed to read signals: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.SetDialect(signals.Dialect); err != nil {
		status := http.StatusInternalServerError
		var unknown *dialect.UnknownDialectError
		if errors.As(err, &unknown) || errors.Is(err, dialect.ErrDialectRequired) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	sse := datastar.NewSSE(w, r)
	if err := common.SendApp(sse, s); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// Download returns the generated code as a file named after the dialect's extension.
func (h *Handlers) Download(w http.ResponseWriter, r *http.Request) {
	s, ok := common.MustSession(w, r)
	if !ok {
		return
	}

	name, code, err := s.Export()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	filename := "workspace.txt"
	if d, ok := dialect.Get(name); ok && d.Extension != "" {
		filename = "workspace" + d.Extension
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write([]byte(code))
}
