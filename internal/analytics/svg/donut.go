package svg

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

// Donut renders a donut chart with a legend on the right. Slices with a
// non-positive value are skipped.
func Donut(width, height int, slices []Slice, opts DonutOpts) (template.HTML, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	var total float64
	for _, s := range slices {
		if s.Value > 0 {
			total += s.Value
		}
	}
	if total <= 0 {
		return "", fmt.Errorf("svg: donut requires a positive total")
	}

	radius := float64(height)/2 - 12
	thickness := opts.Thickness
	if thickness <= 0 || thickness >= radius {
		thickness = radius * 0.35
	}
	cx := radius + 12
	cy := float64(height) / 2
	r := radius - thickness/2
	circumference := 2 * math.Pi * r

	p := plot{width: width, height: height}
	var b strings.Builder
	p.open(&b, opts.Title, opts.Description, "donut")
	fmt.Fprintf(&b, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="#F3F4F6" stroke-width="%.2f"></circle>`, cx, cy, r, thickness)

	legendTotal := total
	if opts.LegendTotal > 0 {
		legendTotal = opts.LegendTotal
	}

	offset := 0.0
	legendY := 24.0
	for i, s := range slices {
		if s.Value <= 0 {
			continue
		}
		color := fallback(s.Color, palette[i%len(palette)])
		length := s.Value / total * circumference
		share := s.Value / legendTotal * 100
		fmt.Fprintf(&b, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="%s" stroke-width="%.2f" stroke-dasharray="%.2f %.2f" stroke-dashoffset="%.2f" transform="rotate(-90 %.2f %.2f)"><title>%s: %.1f%%</title></circle>`,
			cx, cy, r, color, thickness, length, circumference-length, -offset, cx, cy, esc(s.Label), share)
		offset += length

		lx := cx + radius + 28
		fmt.Fprintf(&b, `<rect x="%.2f" y="%.2f" width="10" height="10" rx="5" fill="%s"></rect>`, lx, legendY-9, color)
		fmt.Fprintf(&b, `<text x="%.2f" y="%.2f" fill="#374151" font-size="11">%s <tspan fill="#9CA3AF">%.1f%%</tspan></text>`, lx+16, legendY, esc(s.Label), share)
		legendY += 20
	}
	if opts.CenterLabel != "" {
		fmt.Fprintf(&b, `<text x="%.2f" y="%.2f" fill="#064E3B" font-size="16" font-weight="700" text-anchor="middle">%s</text>`, cx, cy+5, esc(opts.CenterLabel))
	}
	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}
