package monitoringhttp

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/zainulsyai/eko-hajj/internal/monitoring"
	"github.com/zainulsyai/eko-hajj/internal/platform/httpx"
)

type fieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type confirmRequest struct {
	Confirm bool `json:"confirm"`
}

type collectionResponse struct {
	Collection monitoring.Collection `json:"collection"`
	Loading    bool                  `json:"loading"`
	Identity   map[string]string     `json:"identity"`
	Records    []monitoring.Record   `json:"records"`
}

// apiError wraps store errors with the httpx sentinel that picks the status.
func apiError(err error) error {
	switch {
	case errors.Is(err, monitoring.ErrUnknownCollection):
		return fmt.Errorf("%w: %v", httpx.ErrNotFound, err)
	case errors.Is(err, monitoring.ErrConfirmRequired):
		return fmt.Errorf("%w: %v", httpx.ErrConflict, err)
	case errors.Is(err, monitoring.ErrNotReady):
		return fmt.Errorf("%w: %v", httpx.ErrUnavailable, err)
	default:
		return err
	}
}

func (h *Handler) respondError(w http.ResponseWriter, context string, err error) {
	err = apiError(err)
	if !errors.Is(err, httpx.ErrNotFound) && !errors.Is(err, httpx.ErrValidation) {
		h.logError(context, err)
	}
	httpx.RespondError(w, err)
}

func apiCollection(r *http.Request) (monitoring.Collection, error) {
	return monitoring.ParseCollection(chi.URLParam(r, "collection"))
}

func apiID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, fmt.Errorf("%w: invalid record id", httpx.ErrValidation)
	}
	return id, nil
}

func (h *Handler) handleListAPI(w http.ResponseWriter, r *http.Request) {
	c, err := apiCollection(r)
	if err != nil {
		h.respondError(w, "list collection", err)
		return
	}
	records, err := h.store.All(r.Context(), c)
	if err != nil {
		h.respondError(w, "list collection", err)
		return
	}
	httpx.JSON(w, http.StatusOK, collectionResponse{
		Collection: c,
		Loading:    !h.store.Ready(),
		Identity:   h.store.Identity(c),
		Records:    records,
	})
}

func (h *Handler) handleAddAPI(w http.ResponseWriter, r *http.Request) {
	c, err := apiCollection(r)
	if err != nil {
		h.respondError(w, "add record", err)
		return
	}
	fields := map[string]string{}
	if err := decodeOptional(r, &fields); err != nil {
		h.respondError(w, "add record", err)
		return
	}
	d := monitoring.DescribeCollection(c)
	for field, value := range fields {
		fields[field] = normalizeInput(d, field, value)
	}
	rec, err := h.store.AddRecord(r.Context(), c, fields)
	if err != nil {
		h.respondError(w, "add record", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, rec)
}

func (h *Handler) handleDeleteAPI(w http.ResponseWriter, r *http.Request) {
	c, err := apiCollection(r)
	if err != nil {
		h.respondError(w, "remove record", err)
		return
	}
	id, err := apiID(r)
	if err != nil {
		h.respondError(w, "remove record", err)
		return
	}
	removed, err := h.store.RemoveRecord(r.Context(), c, id)
	if err != nil {
		h.respondError(w, "remove record", err)
		return
	}
	if !removed {
		httpx.RespondError(w, fmt.Errorf("%w: record %d", httpx.ErrNotFound, id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleUpdateAPI(w http.ResponseWriter, r *http.Request) {
	c, err := apiCollection(r)
	if err != nil {
		h.respondError(w, "update field", err)
		return
	}
	id, err := apiID(r)
	if err != nil {
		h.respondError(w, "update field", err)
		return
	}
	var req fieldRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		h.respondError(w, "update field", err)
		return
	}
	value := normalizeInput(monitoring.DescribeCollection(c), req.Field, req.Value)
	changed, err := h.store.UpdateField(r.Context(), c, id, req.Field, value)
	if err != nil {
		h.respondError(w, "update field", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"changed": changed})
}

func (h *Handler) handleIdentityAPI(w http.ResponseWriter, r *http.Request) {
	c, err := apiCollection(r)
	if err != nil {
		h.respondError(w, "broadcast identity", err)
		return
	}
	var req fieldRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		h.respondError(w, "broadcast identity", err)
		return
	}
	if err := h.broadcastIdentity(r.Context(), c, req.Field, req.Value); err != nil {
		h.respondError(w, "broadcast identity", err)
		return
	}
	httpx.JSON(w, http.StatusOK, h.store.Identity(c))
}

func (h *Handler) handleResetAPI(w http.ResponseWriter, r *http.Request) {
	c, err := apiCollection(r)
	if err != nil {
		h.respondError(w, "reset identity", err)
		return
	}
	var req confirmRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		h.respondError(w, "reset identity", err)
		return
	}
	if err := h.store.ResetIdentity(c, req.Confirm); err != nil {
		h.respondError(w, "reset identity", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSubmitAPI(w http.ResponseWriter, r *http.Request) {
	c, err := apiCollection(r)
	if err != nil {
		h.respondError(w, "submit form", err)
		return
	}
	if err := h.checkSubmit(c); err != nil {
		h.respondError(w, "submit form", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": msgSubmitted})
}
