package analytichttp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zainulsyai/eko-hajj/internal/analytics"
	"github.com/zainulsyai/eko-hajj/internal/analytics/export"
	"github.com/zainulsyai/eko-hajj/internal/platform/httpx"
	"github.com/zainulsyai/eko-hajj/internal/shared"
	"github.com/zainulsyai/eko-hajj/internal/view"
)

const requestTimeout = 2 * time.Second

// AnalyticsService defines the aggregation contract used by the handler.
type AnalyticsService interface {
	Dashboard(ctx context.Context, f analytics.TimeFilter) (analytics.Dashboard, error)
	Visualization(ctx context.Context, f analytics.TimeFilter) (analytics.Visualization, error)
}

// PDFService renders the visualization page to PDF bytes.
type PDFService interface {
	RenderVisualization(ctx context.Context, payload export.VisualizationPayload) ([]byte, error)
}

// Handler serves the dashboard and visualization pages and their JSON mirrors.
type Handler struct {
	logger    *slog.Logger
	service   AnalyticsService
	templates *view.Engine
	csrf      *shared.CSRFManager
	pdf       PDFService
	now       func() time.Time
}

// NewHandler constructs the analytics HTTP handler.
func NewHandler(logger *slog.Logger, service AnalyticsService, templates *view.Engine, csrf *shared.CSRFManager, pdf PDFService) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:    logger,
		service:   service,
		templates: templates,
		csrf:      csrf,
		pdf:       pdf,
		now:       time.Now,
	}
}

// WithNow overrides the handler clock for testing.
func (h *Handler) WithNow(fn func() time.Time) {
	if fn != nil {
		h.now = fn
	}
}

// FilterOption is one entry of the time-range selector.
type FilterOption struct {
	Value  analytics.TimeFilter
	Label  string
	Active bool
}

// DashboardViewModel feeds pages/dashboard.html.
type DashboardViewModel struct {
	Filter    analytics.TimeFilter
	Filters   []FilterOption
	Dashboard analytics.Dashboard
	// Highlights from the visualization figures shown on the summary strip.
	MostExpensive analytics.PriceLeader
	AvgRicePrice  float64
	Charts        DashboardCharts
}

// VisualizationViewModel feeds pages/visualization.html.
type VisualizationViewModel struct {
	Filter  analytics.TimeFilter
	Filters []FilterOption
	Data    analytics.Visualization
	Charts  VisualizationCharts
}

func filterOptions(active analytics.TimeFilter) []FilterOption {
	out := make([]FilterOption, 0, len(analytics.Filters()))
	for _, f := range analytics.Filters() {
		out = append(out, FilterOption{Value: f, Label: f.Label(), Active: f == active})
	}
	return out
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		h.handleFilterError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var (
		dash analytics.Dashboard
		viz  analytics.Visualization
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		dash, err = h.service.Dashboard(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		viz, err = h.service.Visualization(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		h.handleServerError(w, "load dashboard", err)
		return
	}

	vm := DashboardViewModel{
		Filter:        filter,
		Filters:       filterOptions(filter),
		Dashboard:     dash,
		MostExpensive: viz.MostExpensive,
		AvgRicePrice:  viz.AvgRicePrice,
		Charts:        h.dashboardCharts(dash),
	}
	data := view.Page(r, h.csrf, "Dashboard Eksekutif", vm)
	if err := h.templates.Render(w, "pages/dashboard.html", data); err != nil {
		h.handleServerError(w, "render template", err)
	}
}

func (h *Handler) handleVisualization(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		h.handleFilterError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	viz, err := h.service.Visualization(ctx, filter)
	if err != nil {
		h.handleServerError(w, "load visualization", err)
		return
	}
	vm := VisualizationViewModel{
		Filter:  filter,
		Filters: filterOptions(filter),
		Data:    viz,
		Charts:  h.visualizationCharts(viz),
	}
	data := view.Page(r, h.csrf, "Grafik & Visualisasi", vm)
	if err := h.templates.Render(w, "pages/visualization.html", data); err != nil {
		h.handleServerError(w, "render template", err)
	}
}

func (h *Handler) handlePDF(w http.ResponseWriter, r *http.Request) {
	if h.pdf == nil {
		h.handleServerError(w, "pdf exporter", errors.New("pdf exporter not configured"))
		return
	}
	filter, err := parseFilter(r)
	if err != nil {
		h.handleFilterError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	viz, err := h.service.Visualization(ctx, filter)
	if err != nil {
		h.handleServerError(w, "load visualization", err)
		return
	}
	now := h.now()
	payload := export.VisualizationPayload{
		Batch:  export.NewBatch(now),
		Data:   viz,
		Charts: h.visualizationCharts(viz).exportCharts(),
	}
	// Gotenberg gets the full request budget rather than the aggregation timeout.
	pdfBytes, err := h.pdf.RenderVisualization(r.Context(), payload)
	if err != nil {
		h.handleServerError(w, "render pdf", err)
		return
	}

	filename := fmt.Sprintf("visualisasi-%s-%s.pdf", filter, now.Format("20060102"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Header().Set("X-Export-Batch", payload.Batch.ID.String())
	if _, err := w.Write(pdfBytes); err != nil {
		h.logError("stream pdf", err)
	}
}

func (h *Handler) handleDashboardAPI(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: filter", httpx.ErrValidation))
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	dash, err := h.service.Dashboard(ctx, filter)
	if err != nil {
		h.logError("load dashboard", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, dash)
}

func (h *Handler) handleVisualizationAPI(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: filter", httpx.ErrValidation))
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	viz, err := h.service.Visualization(ctx, filter)
	if err != nil {
		h.logError("load visualization", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, viz)
}

func parseFilter(r *http.Request) (analytics.TimeFilter, error) {
	f, err := analytics.ParseTimeFilterStrict(r.URL.Query().Get("filter"))
	if err != nil {
		return "", validationError{field: "filter"}
	}
	return f, nil
}

func (h *Handler) handleFilterError(w http.ResponseWriter, err error) {
	var vErr validationError
	if errors.As(err, &vErr) {
		http.Error(w, "Parameter tidak valid", http.StatusBadRequest)
		return
	}
	h.handleServerError(w, "parse filters", err)
}

func (h *Handler) handleServerError(w http.ResponseWriter, context string, err error) {
	h.logError(context, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (h *Handler) logError(context string, err error) {
	if h.logger != nil {
		h.logger.Error(context, slog.Any("error", err))
	}
}

type validationError struct {
	field string
}

func (v validationError) Error() string {
	return fmt.Sprintf("invalid %s", v.field)
}

// HandleDashboardForTest exposes the dashboard handler for tests.
func (h *Handler) HandleDashboardForTest(w http.ResponseWriter, r *http.Request) {
	h.handleDashboard(w, r)
}

// HandlePDFForTest exposes the PDF handler for tests.
func (h *Handler) HandlePDFForTest(w http.ResponseWriter, r *http.Request) { h.handlePDF(w, r) }
