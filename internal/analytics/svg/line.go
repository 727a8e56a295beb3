package svg

import (
	"fmt"
	"html/template"
	"strings"
)

// Line renders a multi-series line chart over shared labels.
func Line(width, height int, series []Series, labels []string, opts LineOpts) (template.HTML, error) {
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

	x := func(i int) float64 {
		if len(labels) == 1 {
			return p.pad + p.w/2
		}
		return p.pad + float64(i)*p.w/float64(len(labels)-1)
	}

	var b strings.Builder
	p.open(&b, opts.Title, opts.Description, "line")
	p.grid(&b)

	for si, s := range series {
		color := seriesColor(s, si)
		var path strings.Builder
		for i, v := range s.Values {
			cmd := "L"
			if i == 0 {
				cmd = "M"
			}
			fmt.Fprintf(&path, "%s%.2f %.2f ", cmd, x(i), p.y(v))
		}
		d := strings.TrimSpace(path.String())
		if si == 0 && opts.FillFirst {
			fmt.Fprintf(&b, `<path d="%s L%.2f %.2f L%.2f %.2f Z" fill="%s" fill-opacity="0.12" stroke="none" aria-hidden="true"></path>`,
				d, x(len(s.Values)-1), p.y(0), x(0), p.y(0), color)
		}
		dash := ""
		if s.Dashed {
			dash = ` stroke-dasharray="6,4"`
		}
		fmt.Fprintf(&b, `<path d="%s" fill="none" stroke="%s" stroke-width="2.5" stroke-linejoin="round" stroke-linecap="round"%s><title>%s</title></path>`,
			d, color, dash, esc(s.Name))
		if opts.ShowDots && !s.Dashed {
			for i, v := range s.Values {
				fmt.Fprintf(&b, `<circle cx="%.2f" cy="%.2f" r="3" fill="#fff" stroke="%s" stroke-width="2"></circle>`, x(i), p.y(v), color)
			}
		}
	}

	for i, label := range labels {
		p.label(&b, x(i), label)
	}
	p.legend(&b, series)
	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}
