package svg

import (
	"strings"
	"testing"
)

func TestDonutProducesSVG(t *testing.T) {
	html, err := Donut(360, 200, []Slice{
		{Label: "Telkomsel", Value: 30, Color: "#064E3B"},
		{Label: "Mobily", Value: 70},
		{Label: "Kosong", Value: 0},
	}, DonutOpts{Title: "Provider", CenterLabel: "2"})
	if err != nil {
		t.Fatalf("donut renderer error: %v", err)
	}
	output := string(html)
	// Track ring plus two segments.
	if strings.Count(output, "<circle") != 3 {
		t.Fatalf("expected 3 circles, got %d", strings.Count(output, "<circle"))
	}
	if !strings.Contains(output, "30.0%") || !strings.Contains(output, "70.0%") {
		t.Fatalf("expected shares in legend: %s", output)
	}
	if strings.Contains(output, "Kosong") {
		t.Fatalf("expected zero slice to be skipped")
	}
}

func TestDonutRequiresPositiveTotal(t *testing.T) {
	if _, err := Donut(0, 0, []Slice{{Label: "a", Value: 0}}, DonutOpts{}); err == nil {
		t.Fatalf("expected error for empty donut")
	}
}

func TestDonutLegendTotal(t *testing.T) {
	html, err := Donut(360, 200, []Slice{
		{Label: "HTI", Value: 1000},
		{Label: "Family", Value: 3000},
	}, DonutOpts{LegendTotal: 4500})
	if err != nil {
		t.Fatalf("donut renderer error: %v", err)
	}
	output := string(html)
	if !strings.Contains(output, "22.2%") || !strings.Contains(output, "66.7%") {
		t.Fatalf("expected shares of the legend total: %s", output)
	}
	if !strings.Contains(output, `stroke-dasharray="`) {
		t.Fatalf("expected arc segments")
	}
}
