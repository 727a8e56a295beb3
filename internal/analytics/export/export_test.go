package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/zainulsyai/eko-hajj/internal/analytics"
	"github.com/zainulsyai/eko-hajj/internal/monitoring"
	"github.com/zainulsyai/eko-hajj/internal/query"
)

func sampleReport() query.Report {
	created := time.Date(2026, 6, 20, 8, 0, 0, 0, time.UTC)
	snap := monitoring.NewSnapshot(map[monitoring.Collection][]monitoring.Record{
		monitoring.CollectionSpiceMakkah: {
			&monitoring.SpiceRecord{Meta: monitoring.Meta{ID: 1, CreatedAt: created}, Name: "Bumbu Gulai", IsUsed: true,
				Volume: "2.5", Price: "18000", KitchenName: "Dapur 1"},
			&monitoring.SpiceRecord{Meta: monitoring.Meta{ID: 2}, Name: "Bumbu Opor"},
		},
	})
	return query.BuildReport(snap, query.ReportQuery{Tab: "bumbu"})
}

func TestWriteReportCSV(t *testing.T) {
	batch := NewBatch(time.Date(2026, 6, 22, 9, 0, 0, 0, time.UTC))
	buf := &bytes.Buffer{}
	if err := WriteReportCSV(buf, sampleReport(), batch); err != nil {
		t.Fatalf("report csv error: %v", err)
	}
	reader := csv.NewReader(bytes.NewReader(buf.Bytes()))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("csv read error: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("expected preamble, header and one row, got %d", len(records))
	}
	if records[0][1] != batch.ID.String() {
		t.Fatalf("expected batch id, got %q", records[0][1])
	}
	header := records[3]
	if header[0] != "ID" || header[1] != "Lokasi" || header[len(header)-1] != "Dibuat Pada" {
		t.Fatalf("unexpected header %v", header)
	}
	row := records[4]
	if row[0] != "1" || row[1] != "Makkah" {
		t.Fatalf("unexpected row %v", row)
	}
	if row[2] != "Bumbu Gulai" {
		t.Fatalf("expected spice name cell, got %q", row[2])
	}
	if row[len(row)-1] != "2026-06-20T08:00:00Z" {
		t.Fatalf("expected created timestamp, got %q", row[len(row)-1])
	}
	if name := Filename(sampleReport(), batch, "csv"); name != "laporan-bumbu-20260622.csv" {
		t.Fatalf("unexpected filename %s", name)
	}
}

func TestPDFExporterRenderReport(t *testing.T) {
	var document string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/forms/chromium/convert/html" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(64 << 10); err != nil {
			t.Errorf("unexpected parse error: %v", err)
			return
		}
		file, _, err := r.FormFile("files")
		if err != nil {
			t.Errorf("missing html file: %v", err)
			return
		}
		data, _ := io.ReadAll(file)
		document = string(data)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("PDF"))
	}))
	defer srv.Close()

	exporter := &PDFExporter{Endpoint: srv.URL + "/"}
	data, err := exporter.RenderReport(context.Background(), sampleReport(), NewBatch(time.Now()))
	if err != nil {
		t.Fatalf("pdf render error: %v", err)
	}
	if string(data) != "PDF" {
		t.Fatalf("unexpected payload %q", string(data))
	}
	if !strings.Contains(document, "Laporan Konsumsi Bumbu") || !strings.Contains(document, "Bumbu Gulai") {
		t.Fatalf("expected report content in document")
	}
}

func TestPDFExporterRenderVisualization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("PDF"))
	}))
	defer srv.Close()

	payload := VisualizationPayload{
		Batch:  NewBatch(time.Now()),
		Data:   analytics.Visualization{FilterLabel: "Semua Waktu", MostExpensive: analytics.PriceLeader{Name: "-"}},
		Charts: []Chart{{Title: "Harga", SVG: "<svg></svg>"}},
	}
	exporter := &PDFExporter{Endpoint: srv.URL}
	if _, err := exporter.RenderVisualization(context.Background(), payload); err != nil {
		t.Fatalf("visualization pdf error: %v", err)
	}
	if doc := buildVisualizationHTML(payload); !strings.Contains(doc, "<svg></svg>") {
		t.Fatalf("expected chart markup to be embedded")
	}
}

func TestPDFExporterErrors(t *testing.T) {
	var nilExporter *PDFExporter
	if _, err := nilExporter.RenderReport(context.Background(), query.Report{}, Batch{}); err == nil {
		t.Fatalf("expected error for nil exporter")
	}
	if _, err := (&PDFExporter{}).RenderReport(context.Background(), query.Report{}, Batch{}); err == nil {
		t.Fatalf("expected error for missing endpoint")
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()
	if _, err := (&PDFExporter{Endpoint: srv.URL}).RenderReport(context.Background(), query.Report{}, Batch{}); err == nil {
		t.Fatalf("expected error for upstream failure")
	}
}

func TestPDFExporterPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"status":"up"}`))
	}))
	defer srv.Close()

	if err := (&PDFExporter{Endpoint: srv.URL + "/"}).Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
	srv.Close()
	if err := (&PDFExporter{Endpoint: srv.URL}).Ping(context.Background()); err == nil {
		t.Fatalf("expected ping error for closed server")
	}
	if err := (&PDFExporter{}).Ping(context.Background()); err == nil {
		t.Fatalf("expected error for missing endpoint")
	}
}
