package svg

import (
	"strings"
	"testing"
)

func TestBarsProducesSVG(t *testing.T) {
	html, err := Bars(420, 220, []Series{
		{Name: "Makkah", Values: []float64{18000, 16000}},
		{Name: "Madinah", Values: []float64{17500, 0}},
	}, []string{"Gulai", "Opor"}, BarOpts{
		Title:       "Perbandingan Harga",
		Description: "Harga bumbu per kota",
	})
	if err != nil {
		t.Fatalf("bars renderer error: %v", err)
	}
	output := string(html)
	if !strings.HasPrefix(output, "<svg") {
		t.Fatalf("expected svg output, got %s", output)
	}
	// Four bars plus two legend swatches.
	if strings.Count(output, "<rect") != 6 {
		t.Fatalf("expected 6 rect elements, got %d", strings.Count(output, "<rect"))
	}
	if !strings.Contains(output, "Madinah") {
		t.Fatalf("expected legend label")
	}
}

func TestBarsSingleSeriesHasNoLegend(t *testing.T) {
	html, err := Bars(0, 0, []Series{{Name: "Berat", Values: []float64{2500, 1200, 800}}}, []string{"Nusantara", "Pos", "TIKI"}, BarOpts{})
	if err != nil {
		t.Fatalf("bars renderer error: %v", err)
	}
	if strings.Count(string(html), "<rect") != 3 {
		t.Fatalf("expected one rect per bar")
	}
}

func TestBarExtentClamps(t *testing.T) {
	y, h := barExtent(10, 100, 20, 120)
	if y != 20 || h != 80 {
		t.Fatalf("expected clamp to top, got %v %v", y, h)
	}
	y, h = barExtent(150, 100, 20, 120)
	if y != 100 || h != 20 {
		t.Fatalf("expected clamp to bottom, got %v %v", y, h)
	}
}
