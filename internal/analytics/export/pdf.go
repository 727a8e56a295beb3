package export

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/zainulsyai/eko-hajj/internal/analytics"
	"github.com/zainulsyai/eko-hajj/internal/query"
	"github.com/zainulsyai/eko-hajj/internal/shared"
)

// Chart is a pre-rendered SVG block placed in a PDF document.
type Chart struct {
	Title string
	SVG   template.HTML
}

// VisualizationPayload aggregates the visualization page for PDF rendering.
type VisualizationPayload struct {
	Batch  Batch
	Data   analytics.Visualization
	Charts []Chart
}

// PDFExporter wraps Gotenberg interactions for report and chart exports.
type PDFExporter struct {
	Endpoint string
	Client   *http.Client
}

// RenderReport converts a report table to PDF.
func (p *PDFExporter) RenderReport(ctx context.Context, report query.Report, batch Batch) ([]byte, error) {
	return p.convert(ctx, "laporan.html", buildReportHTML(report, batch))
}

// RenderVisualization converts the visualization summary and charts to PDF.
func (p *PDFExporter) RenderVisualization(ctx context.Context, payload VisualizationPayload) ([]byte, error) {
	return p.convert(ctx, "visualisasi.html", buildVisualizationHTML(payload))
}

// Ping checks that the Gotenberg service answers its health endpoint.
func (p *PDFExporter) Ping(ctx context.Context) error {
	if p == nil || strings.TrimRight(p.Endpoint, "/") == "" {
		return fmt.Errorf("gotenberg endpoint required")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(p.Endpoint, "/")+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := p.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("gotenberg ping: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("gotenberg returned status %d", resp.StatusCode)
	}
	return nil
}

func (p *PDFExporter) httpClient() *http.Client {
	if p.Client != nil {
		return p.Client
	}
	return http.DefaultClient
}

func (p *PDFExporter) convert(ctx context.Context, filename, document string) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("pdf exporter not initialised")
	}
	endpoint := strings.TrimRight(p.Endpoint, "/")
	if endpoint == "" {
		return nil, fmt.Errorf("gotenberg endpoint required")
	}
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(part, document); err != nil {
		return nil, err
	}
	if err := writer.WriteField("waitDelay", "500"); err != nil {
		return nil, err
	}
	if err := writer.WriteField("landscape", "true"); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"/forms/chromium/convert/html", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Gotenberg-Output-Filename", strings.TrimSuffix(filename, ".html"))

	resp, err := p.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("gotenberg request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("gotenberg response %d: %s", resp.StatusCode, string(data))
	}
	return io.ReadAll(resp.Body)
}

const documentStyle = "body{font-family:sans-serif;margin:24px;color:#1f2937;}h1{font-size:20px;color:#064E3B;}" +
	"h2{font-size:15px;margin-top:24px;}table{width:100%;border-collapse:collapse;margin-bottom:16px;font-size:11px;}" +
	"th,td{border:1px solid #ddd;padding:6px;text-align:left;vertical-align:top;}th{background:#f5f5f5;}" +
	".meta{color:#6b7280;font-size:11px;}.num{text-align:right;}.chart{page-break-inside:avoid;margin-bottom:16px;}"

func openDocument(b *strings.Builder, title string, batch Batch) {
	b.WriteString("<html><head><meta charset=\"utf-8\"><style>")
	b.WriteString(documentStyle)
	b.WriteString("</style></head><body>")
	fmt.Fprintf(b, "<h1>%s</h1>", html.EscapeString(title))
	fmt.Fprintf(b, "<p class=\"meta\">%s &middot; Batch %s</p>",
		html.EscapeString(shared.FormatLongDate(batch.GeneratedAt)), html.EscapeString(batch.ID.String()))
}

func buildReportHTML(report query.Report, batch Batch) string {
	var b strings.Builder
	openDocument(&b, "Laporan "+report.Label, batch)
	if report.Term != "" {
		fmt.Fprintf(&b, "<p class=\"meta\">Pencarian: %s</p>", html.EscapeString(report.Term))
	}
	fmt.Fprintf(&b, "<p class=\"meta\">Urutan: %s</p>", html.EscapeString(report.SortLabel))

	b.WriteString("<table><thead><tr>")
	for _, h := range report.Headers {
		fmt.Fprintf(&b, "<th>%s</th>", html.EscapeString(h))
	}
	b.WriteString("</tr></thead><tbody>")
	if report.Empty() {
		fmt.Fprintf(&b, "<tr><td colspan=\"%d\">%s</td></tr>", max(len(report.Headers), 1), query.EmptyMessage)
	}
	for _, row := range report.Rows {
		b.WriteString("<tr>")
		for _, lines := range row.Cells {
			b.WriteString("<td>")
			for i, line := range lines {
				if i > 0 {
					b.WriteString("<br>")
				}
				b.WriteString(html.EscapeString(line.Text))
			}
			b.WriteString("</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table></body></html>")
	return b.String()
}

func buildVisualizationHTML(payload VisualizationPayload) string {
	v := payload.Data
	var b strings.Builder
	openDocument(&b, "Visualisasi Data - "+v.FilterLabel, payload.Batch)

	b.WriteString("<h2>Ringkasan</h2><table><tbody>")
	writeMetricRow(&b, "Bumbu Termahal", v.MostExpensive.Name+" ("+shared.FormatSAR(v.MostExpensive.Price)+")")
	writeMetricRow(&b, "Rata-rata Harga Bumbu", shared.FormatSAR(v.GlobalAvgPrice))
	writeMetricRow(&b, "Rata-rata Harga Beras", shared.FormatSAR(v.AvgRicePrice))
	b.WriteString("</tbody></table>")

	if len(v.PriceComparison) > 0 {
		b.WriteString("<h2>Perbandingan Harga Bumbu</h2><table><thead><tr><th>Bumbu</th><th>Makkah</th><th>Madinah</th><th>Rata-rata</th></tr></thead><tbody>")
		for _, p := range v.PriceComparison {
			fmt.Fprintf(&b, "<tr><td>%s</td><td class=\"num\">%s</td><td class=\"num\">%s</td><td class=\"num\">%s</td></tr>",
				html.EscapeString(p.Name), shared.FormatNumber(p.Makkah, 0), shared.FormatNumber(p.Madinah, 0), shared.FormatNumber(p.Avg, 0))
		}
		b.WriteString("</tbody></table>")
	}

	if len(v.RicePrices) > 0 {
		b.WriteString("<h2>Harga Beras</h2><table><thead><tr><th>Perusahaan</th><th>Harga</th><th>Harga Asal</th></tr></thead><tbody>")
		for _, r := range v.RicePrices {
			fmt.Fprintf(&b, "<tr><td>%s</td><td class=\"num\">%s</td><td class=\"num\">%s</td></tr>",
				html.EscapeString(r.Name), shared.FormatNumber(r.Price, 0), shared.FormatNumber(r.Origin, 0))
		}
		b.WriteString("</tbody></table>")
	}

	for _, chart := range payload.Charts {
		fmt.Fprintf(&b, "<div class=\"chart\"><h2>%s</h2>%s</div>", html.EscapeString(chart.Title), string(chart.SVG))
	}
	b.WriteString("</body></html>")
	return b.String()
}

func writeMetricRow(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "<tr><th>%s</th><td>%s</td></tr>", html.EscapeString(label), html.EscapeString(value))
}
