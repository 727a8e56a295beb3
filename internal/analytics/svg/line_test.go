package svg

import (
	"strings"
	"testing"
)

func TestLineProducesSVG(t *testing.T) {
	html, err := Line(400, 200, []Series{
		{Name: "Makkah", Values: []float64{100, 200, 150}},
		{Name: "Madinah", Values: []float64{80, 90, 110}, Color: "#D4AF37"},
	}, []string{"Jan", "Feb", "Mar"}, LineOpts{
		Title:       "Tren Konsumsi Bumbu",
		Description: "Makkah vs Madinah",
		ShowDots:    true,
		FillFirst:   true,
	})
	if err != nil {
		t.Fatalf("line renderer error: %v", err)
	}
	output := string(html)
	if !strings.HasPrefix(output, "<svg") || !strings.HasSuffix(output, "</svg>") {
		t.Fatalf("expected svg output, got %s", output)
	}
	if strings.Count(output, "<circle") != 6 {
		t.Fatalf("expected a dot per point")
	}
	if !strings.Contains(output, `stroke="#D4AF37"`) {
		t.Fatalf("expected explicit series color")
	}
	if !strings.Contains(output, "aria-labelledby=\"tren-konsumsi-bumbu-line-title") {
		t.Fatalf("expected accessibility attributes")
	}
}

func TestLineDashedTarget(t *testing.T) {
	html, err := Line(0, 0, []Series{
		{Name: "IPEHU", Values: []float64{60, 65}},
		{Name: "Target", Values: []float64{85, 85}, Dashed: true},
	}, []string{"Jan", "Feb"}, LineOpts{ShowDots: true})
	if err != nil {
		t.Fatalf("line renderer error: %v", err)
	}
	if !strings.Contains(string(html), "stroke-dasharray=\"6,4\"") {
		t.Fatalf("expected dashed target line")
	}
	if strings.Count(string(html), "<circle") != 2 {
		t.Fatalf("expected dots only on the solid series")
	}
}

func TestLineRejectsMismatchedLabels(t *testing.T) {
	if _, err := Line(400, 200, []Series{{Values: []float64{1, 2}}}, []string{"a"}, LineOpts{}); err == nil {
		t.Fatalf("expected length mismatch error")
	}
	if _, err := Line(400, 200, nil, []string{"a"}, LineOpts{}); err == nil {
		t.Fatalf("expected missing series error")
	}
}
