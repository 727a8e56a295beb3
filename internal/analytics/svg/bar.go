package svg

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

// Bars renders a grouped bar chart with one bar per series in every group.
func Bars(width, height int, series []Series, labels []string, opts BarOpts) (template.HTML, error) {
	if err := validate(series, labels); err != nil {
		return "", err
	}
	values := make([][]float64, 0, len(series))
	for _, s := range series {
		values = append(values, s.Values)
	}
	p, err := newPlot(width, height, opts.Padding, opts.TickCount, opts.AxisColor, opts.GridColor, values...)
	if err != nil {
		return "", err
	}

	groupWidth := p.w / float64(len(labels))
	barWidth := groupWidth * 0.7 / float64(len(series))
	zeroY := p.y(0)

	var b strings.Builder
	p.open(&b, opts.Title, opts.Description, "bar")
	p.grid(&b)

	for i, label := range labels {
		groupX := p.pad + float64(i)*groupWidth + groupWidth*0.15
		for si, s := range series {
			top, h := barExtent(p.y(s.Values[i]), zeroY, p.pad, p.bottom())
			fmt.Fprintf(&b, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="3" fill="%s"><title>%s %s: %s</title></rect>`,
				groupX+float64(si)*barWidth, top, barWidth*0.9, h, seriesColor(s, si),
				esc(s.Name), esc(label), esc(formatTick(s.Values[i])))
		}
		p.label(&b, p.pad+float64(i)*groupWidth+groupWidth/2, label)
	}
	if len(series) > 1 {
		p.legend(&b, series)
	}
	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

// barExtent clamps a bar between valueY and the zero line to the plot area.
func barExtent(valueY, zeroY, top, bottom float64) (float64, float64) {
	y := math.Min(valueY, zeroY)
	h := math.Abs(zeroY - valueY)
	if y < top {
		h -= top - y
		y = top
	}
	if y+h > bottom {
		h = bottom - y
	}
	if h < 0 {
		h = 0
	}
	return y, h
}
