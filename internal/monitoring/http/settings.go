package monitoringhttp

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/zainulsyai/eko-hajj/internal/monitoring"
	"github.com/zainulsyai/eko-hajj/internal/shared"
	"github.com/zainulsyai/eko-hajj/internal/view"
)

const (
	msgResetDone   = "Semua data aplikasi telah dikembalikan ke kondisi awal."
	msgExportSoon  = "Fitur Export Data akan segera tersedia dalam format .CSV dan .PDF"
	appVersionInfo = "Version 1.0.2 (Build 2026.02.21)"
)

// CollectionStat is one row of the data summary on the settings page.
type CollectionStat struct {
	Collection monitoring.Collection
	Label      string
	Count      int
}

// SettingsViewModel feeds pages/settings.html.
type SettingsViewModel struct {
	Stats   []CollectionStat
	Version int64
	Ready   bool
	Build   string
}

func (h *Handler) handleSettings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	snap, err := h.store.Snapshot(ctx)
	if err != nil {
		h.handleServerError(w, "snapshot", err)
		return
	}
	stats := make([]CollectionStat, 0, len(monitoring.Collections()))
	for _, c := range monitoring.Collections() {
		label := monitoring.DescribeCollection(c).Label
		if loc := c.Location(); loc != "" {
			label += " (" + string(loc) + ")"
		}
		stats = append(stats, CollectionStat{Collection: c, Label: label, Count: snap.Count(c)})
	}
	vm := SettingsViewModel{
		Stats:   stats,
		Version: h.store.Version(),
		Ready:   h.store.Ready(),
		Build:   appVersionInfo,
	}
	data := view.Page(r, h.csrf, "Pengaturan", vm)
	if err := h.templates.Render(w, "pages/settings.html", data); err != nil {
		h.handleServerError(w, "render template", err)
	}
}

func (h *Handler) handleResetAll(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Parameter tidak valid", http.StatusBadRequest)
		return
	}
	if err := h.store.Reset(r.Context(), monitoring.ParseBool(r.PostFormValue("confirm"))); err != nil {
		if msg, ok := userMessage(err); ok {
			h.flash(r, shared.FlashError, msg)
			http.Redirect(w, r, "/settings", http.StatusSeeOther)
			return
		}
		h.handleServerError(w, "reset store", err)
		return
	}
	h.enqueueWarmup(r.Context())
	h.flash(r, shared.FlashSuccess, msgResetDone)
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}

func (h *Handler) handleResetAllAPI(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := decodeOptional(r, &req); err != nil {
		h.respondError(w, "reset store", err)
		return
	}
	if err := h.store.Reset(r.Context(), req.Confirm); err != nil {
		h.respondError(w, "reset store", err)
		return
	}
	h.enqueueWarmup(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleExportSettings(w http.ResponseWriter, r *http.Request) {
	h.flash(r, shared.FlashInfo, msgExportSoon)
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}

func (h *Handler) enqueueWarmup(ctx context.Context) {
	if h.warmer == nil {
		return
	}
	if err := h.warmer.EnqueueWarmup(ctx); err != nil {
		h.logger.Warn("enqueue warmup", slog.Any("error", err))
	}
}
