// Package svg renders the dashboard charts as inline SVG markup so pages
// and PDF exports work without client-side JavaScript.
package svg

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

// Series is one named data series.
type Series struct {
	Name   string
	Values []float64
	Color  string
	// Dashed draws the series as a dashed reference line.
	Dashed bool
}

// LineOpts customises the line chart renderer.
type LineOpts struct {
	Title       string
	Description string
	AxisColor   string
	GridColor   string
	Padding     float64
	ShowDots    bool
	// FillFirst shades the area under the first series.
	FillFirst bool
	TickCount int
}

// BarOpts customises the bar chart renderer.
type BarOpts struct {
	Title       string
	Description string
	AxisColor   string
	GridColor   string
	Padding     float64
	TickCount   int
}

// Slice is one segment of a donut chart.
type Slice struct {
	Label string
	Value float64
	Color string
}

// DonutOpts customises the donut renderer.
type DonutOpts struct {
	Title       string
	Description string
	// CenterLabel is printed inside the hole.
	CenterLabel string
	Thickness   float64
	// LegendTotal, when positive, is the denominator of the legend shares
	// instead of the sum of the slices.
	LegendTotal float64
}

// Defaults for the dashboard charts.
const (
	DefaultWidth   = 720
	DefaultHeight  = 240
	DefaultPadding = 32.0
	DefaultTicks   = 5
)

var palette = []string{"#064E3B", "#D4AF37", "#0F766E", "#B45309", "#1E40AF", "#B91C1C"}

func seriesColor(s Series, i int) string {
	return fallback(s.Color, palette[i%len(palette)])
}

// plot is the drawable area shared by the axis charts.
type plot struct {
	width, height int
	pad           float64
	w, h          float64
	minVal        float64
	maxVal        float64
	axisColor     string
	gridColor     string
	ticks         int
}

func newPlot(width, height int, pad float64, ticks int, axisColor, gridColor string, values ...[]float64) (plot, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if pad <= 0 {
		pad = DefaultPadding
	}
	if ticks <= 0 {
		ticks = DefaultTicks
	}
	p := plot{
		width: width, height: height, pad: pad, ticks: ticks,
		w:         float64(width) - 2*pad,
		h:         float64(height) - 2*pad,
		axisColor: fallback(axisColor, "#6B7280"),
		gridColor: fallback(gridColor, "#E5E7EB"),
	}
	if p.w <= 0 || p.h <= 0 {
		return plot{}, fmt.Errorf("svg: viewport too small")
	}
	first := true
	for _, vs := range values {
		for _, v := range vs {
			if first || v < p.minVal {
				p.minVal = v
			}
			if first || v > p.maxVal {
				p.maxVal = v
			}
			first = false
		}
	}
	if p.minVal > 0 {
		p.minVal = 0
	}
	if p.maxVal < 0 {
		p.maxVal = 0
	}
	if almostEqual(p.maxVal, p.minVal) {
		p.maxVal = p.minVal + 1
	}
	return p, nil
}

func (p plot) y(v float64) float64 {
	return p.pad + p.h - (v-p.minVal)*p.h/(p.maxVal-p.minVal)
}

func (p plot) bottom() float64 { return p.pad + p.h }

func (p plot) open(b *strings.Builder, title, desc, kind string) {
	titleID := makeID(title, kind+"-title")
	descID := makeID(title, kind+"-desc")
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" role="img" aria-labelledby="%s %s">`, p.width, p.height, titleID, descID)
	fmt.Fprintf(b, `<title id="%s">%s</title>`, titleID, esc(fallback(title, "Grafik")))
	fmt.Fprintf(b, `<desc id="%s">%s</desc>`, descID, esc(fallback(desc, "Data grafik")))
}

func (p plot) grid(b *strings.Builder) {
	for i := 0; i <= p.ticks; i++ {
		ratio := float64(i) / float64(p.ticks)
		value := p.minVal + (p.maxVal-p.minVal)*ratio
		y := p.y(value)
		fmt.Fprintf(b, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="0.5" stroke-dasharray="3,3" aria-hidden="true"></line>`, p.pad, y, p.pad+p.w, y, p.gridColor)
		fmt.Fprintf(b, `<text x="%.2f" y="%.2f" fill="%s" font-size="10" text-anchor="end">%s</text>`, p.pad-6, y+4, p.axisColor, esc(formatTick(value)))
	}
	fmt.Fprintf(b, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1"></line>`, p.pad, p.y(0), p.pad+p.w, p.y(0), p.axisColor)
}

func (p plot) label(b *strings.Builder, x float64, text string) {
	fmt.Fprintf(b, `<text x="%.2f" y="%.2f" fill="%s" font-size="10" text-anchor="middle">%s</text>`, x, p.bottom()+14, p.axisColor, esc(text))
}

func (p plot) legend(b *strings.Builder, series []Series) {
	x := p.pad
	for i, s := range series {
		if s.Name == "" {
			continue
		}
		fmt.Fprintf(b, `<rect x="%.2f" y="4" width="10" height="10" rx="2" fill="%s"></rect>`, x, seriesColor(s, i))
		fmt.Fprintf(b, `<text x="%.2f" y="13" fill="%s" font-size="10">%s</text>`, x+14, p.axisColor, esc(s.Name))
		x += 24 + float64(len(s.Name))*6
	}
}

func validate(series []Series, labels []string) error {
	if len(series) == 0 {
		return fmt.Errorf("svg: series required")
	}
	if len(labels) == 0 {
		return fmt.Errorf("svg: labels required")
	}
	for _, s := range series {
		if len(s.Values) != len(labels) {
			return fmt.Errorf("svg: series %q length must match labels", s.Name)
		}
	}
	return nil
}

func esc(s string) string {
	return template.HTMLEscapeString(s)
}

func fallback(value, defaultValue string) string {
	if strings.TrimSpace(value) == "" {
		return defaultValue
	}
	return value
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func makeID(base, suffix string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, strings.ToLower(strings.TrimSpace(base)))
	cleaned = strings.Trim(cleaned, "-")
	if cleaned == "" {
		cleaned = "chart"
	}
	return cleaned + "-" + suffix
}

// formatTick abbreviates axis values with Indonesian magnitude suffixes.
func formatTick(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fjt", v/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1frb", v/1_000)
	case almostEqual(v, math.Round(v)):
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.1f", v)
	}
}
