package analytichttp

import (
	"github.com/go-chi/chi/v5"

	"github.com/zainulsyai/eko-hajj/internal/shared"
)

const exportsPerMinute = 10

// MountRoutes registers dashboard and visualization endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	r.Get("/", h.handleDashboard)
	r.Get("/visualization", h.handleVisualization)
	r.Get("/api/dashboard", h.handleDashboardAPI)
	r.Get("/api/visualization", h.handleVisualizationAPI)
	r.Group(func(gr chi.Router) {
		gr.Use(shared.ExportLimiter(exportsPerMinute))
		gr.Get("/visualization/pdf", h.handlePDF)
	})
}
