package monitoringhttp

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zainulsyai/eko-hajj/internal/monitoring"
	"github.com/zainulsyai/eko-hajj/internal/platform/httpx"
)

// MountRoutes registers form, collection API and settings endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	r.Route("/forms/{collection}", func(fr chi.Router) {
		fr.Get("/", h.handleForm)
		fr.Post("/records", h.handleAdd)
		fr.Post("/records/{id}", h.handleUpdate)
		fr.Post("/records/{id}/delete", h.handleDelete)
		fr.Post("/identity", h.handleIdentity)
		fr.Post("/reset", h.handleReset)
		fr.Post("/draft", h.handleDraft)
		fr.Post("/submit", h.handleSubmit)
	})
	r.Route("/api/collections/{collection}", func(ar chi.Router) {
		ar.Get("/", h.handleListAPI)
		ar.Post("/records", h.handleAddAPI)
		ar.Patch("/records/{id}", h.handleUpdateAPI)
		ar.Delete("/records/{id}", h.handleDeleteAPI)
		ar.Put("/identity", h.handleIdentityAPI)
		ar.Post("/reset", h.handleResetAPI)
		ar.Post("/submit", h.handleSubmitAPI)
	})
	r.Get("/settings", h.handleSettings)
	r.Post("/settings/reset", h.handleResetAll)
	r.Get("/settings/export", h.handleExportSettings)
	r.Post("/api/settings/reset", h.handleResetAllAPI)
}

// userMessage returns the flash text for store errors the operator can fix.
func userMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, monitoring.ErrConfirmRequired):
		return msgConfirmReset, true
	case errors.Is(err, monitoring.ErrNotReady):
		return msgNotReady, true
	default:
		return "", false
	}
}

func decodeOptional(r *http.Request, target any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	return httpx.DecodeJSON(r, target)
}
