package queryhttp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zainulsyai/eko-hajj/internal/analytics/export"
	"github.com/zainulsyai/eko-hajj/internal/monitoring"
	"github.com/zainulsyai/eko-hajj/internal/platform/httpx"
	"github.com/zainulsyai/eko-hajj/internal/query"
	"github.com/zainulsyai/eko-hajj/internal/shared"
	"github.com/zainulsyai/eko-hajj/internal/view"
)

const (
	requestTimeout   = 2 * time.Second
	exportsPerMinute = 10
)

// SnapshotSource exposes the store view the queries run on.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (monitoring.Snapshot, error)
}

// PDFService renders a report table to PDF bytes.
type PDFService interface {
	RenderReport(ctx context.Context, report query.Report, batch export.Batch) ([]byte, error)
}

// Handler serves the reports table, the portal and the quick search.
type Handler struct {
	logger    *slog.Logger
	source    SnapshotSource
	templates *view.Engine
	csrf      *shared.CSRFManager
	pdf       PDFService
	csvPool   sync.Pool
	now       func() time.Time
}

// NewHandler constructs the query HTTP handler.
func NewHandler(logger *slog.Logger, source SnapshotSource, templates *view.Engine, csrf *shared.CSRFManager, pdf PDFService) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		logger:    logger,
		source:    source,
		templates: templates,
		csrf:      csrf,
		pdf:       pdf,
		now:       time.Now,
	}
	h.csvPool.New = func() interface{} { return new(bytes.Buffer) }
	return h
}

// WithNow overrides the handler clock for testing.
func (h *Handler) WithNow(fn func() time.Time) {
	if fn != nil {
		h.now = fn
	}
}

// MountRoutes registers report, portal and search endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	r.Get("/reports", h.handleReports)
	r.Get("/api/reports", h.handleReportsAPI)
	r.Get("/portal", h.handlePortal)
	r.Get("/api/search", h.handleSearchAPI)
	r.Group(func(gr chi.Router) {
		gr.Use(shared.ExportLimiter(exportsPerMinute))
		gr.Get("/reports/export.csv", h.handleCSV)
		gr.Get("/reports/pdf", h.handlePDF)
	})
}

// ReportsViewModel feeds pages/reports.html.
type ReportsViewModel struct {
	Report    query.Report
	Tabs      []query.Option
	Sorts     []query.Option
	Empty     string
	EmptyHint string
}

// PortalViewModel feeds pages/portal.html.
type PortalViewModel struct {
	Items   []query.PortalItem
	Term    string
	Results []query.SearchResult
	Loading bool
}

func reportQuery(r *http.Request) query.ReportQuery {
	q := r.URL.Query()
	return query.ReportQuery{Tab: q.Get("tab"), Term: q.Get("q"), Sort: q.Get("sort")}
}

func (h *Handler) loadReport(ctx context.Context, r *http.Request) (query.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	snap, err := h.source.Snapshot(ctx)
	if err != nil {
		return query.Report{}, fmt.Errorf("snapshot: %w", err)
	}
	return query.BuildReport(snap, reportQuery(r)), nil
}

func (h *Handler) handleReports(w http.ResponseWriter, r *http.Request) {
	report, err := h.loadReport(r.Context(), r)
	if err != nil {
		h.handleServerError(w, "load report", err)
		return
	}
	vm := ReportsViewModel{
		Report:    report,
		Tabs:      query.TabOptions(),
		Sorts:     query.SortOptions(),
		Empty:     query.EmptyMessage,
		EmptyHint: query.EmptyHint,
	}
	data := view.Page(r, h.csrf, "Laporan Otomatis", vm)
	if err := h.templates.Render(w, "pages/reports.html", data); err != nil {
		h.handleServerError(w, "render template", err)
	}
}

func (h *Handler) handleReportsAPI(w http.ResponseWriter, r *http.Request) {
	report, err := h.loadReport(r.Context(), r)
	if err != nil {
		h.logError("load report", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) handleCSV(w http.ResponseWriter, r *http.Request) {
	report, err := h.loadReport(r.Context(), r)
	if err != nil {
		h.handleServerError(w, "load report", err)
		return
	}

	buf := h.csvPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer func() {
		buf.Reset()
		h.csvPool.Put(buf)
	}()

	batch := export.NewBatch(h.now())
	if err := export.WriteReportCSV(buf, report, batch); err != nil {
		h.handleServerError(w, "write report csv", err)
		return
	}
	h.logger.Info("report exported",
		slog.String("format", "csv"),
		slog.String("tab", string(report.Tab)),
		slog.Int("rows", len(report.Rows)),
		slog.String("batch", batch.ID.String()))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", export.Filename(report, batch, "csv")))
	w.Header().Set("X-Export-Batch", batch.ID.String())
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logError("stream csv", err)
	}
}

func (h *Handler) handlePDF(w http.ResponseWriter, r *http.Request) {
	if h.pdf == nil {
		h.handleServerError(w, "pdf exporter", errors.New("pdf exporter not configured"))
		return
	}
	report, err := h.loadReport(r.Context(), r)
	if err != nil {
		h.handleServerError(w, "load report", err)
		return
	}
	batch := export.NewBatch(h.now())
	pdfBytes, err := h.pdf.RenderReport(r.Context(), report, batch)
	if err != nil {
		h.handleServerError(w, "render pdf", err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", export.Filename(report, batch, "pdf")))
	w.Header().Set("X-Export-Batch", batch.ID.String())
	if _, err := w.Write(pdfBytes); err != nil {
		h.logError("stream pdf", err)
	}
}

func (h *Handler) handlePortal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	snap, err := h.source.Snapshot(ctx)
	if err != nil {
		h.handleServerError(w, "snapshot", err)
		return
	}
	term := r.URL.Query().Get("q")
	vm := PortalViewModel{
		Items:   query.PortalItems(),
		Term:    term,
		Results: query.QuickSearch(snap, term),
		Loading: snap.Loading,
	}
	data := view.Page(r, h.csrf, "Data Pengisian", vm)
	if err := h.templates.Render(w, "pages/portal.html", data); err != nil {
		h.handleServerError(w, "render template", err)
	}
}

func (h *Handler) handleSearchAPI(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	snap, err := h.source.Snapshot(ctx)
	if err != nil {
		h.logError("snapshot", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"term":    r.URL.Query().Get("q"),
		"results": query.QuickSearch(snap, r.URL.Query().Get("q")),
		"loading": snap.Loading,
	})
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
