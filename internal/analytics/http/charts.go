package analytichttp

import (
	"html/template"
	"log/slog"
	"strconv"

	"github.com/zainulsyai/eko-hajj/internal/analytics"
	"github.com/zainulsyai/eko-hajj/internal/analytics/export"
	"github.com/zainulsyai/eko-hajj/internal/analytics/svg"
)

const (
	colorMakkah  = "#064E3B"
	colorMadinah = "#D4AF37"
	colorTarget  = "#9CA3AF"
)

// DashboardCharts holds the rendered dashboard SVGs.
type DashboardCharts struct {
	Trend      template.HTML
	IPEHU      template.HTML
	RTEShare   template.HTML
	Expedition template.HTML
}

// VisualizationCharts holds the rendered visualization SVGs.
type VisualizationCharts struct {
	Prices     template.HTML
	Telco      template.HTML
	Expedition template.HTML
	Hotel      template.HTML
	Rice       template.HTML
}

type chartFunc func() (template.HTML, error)

// render swallows renderer errors so an empty series leaves a blank chart
// instead of failing the page.
func (h *Handler) render(name string, fn chartFunc) template.HTML {
	out, err := fn()
	if err != nil {
		if h.logger != nil {
			h.logger.Debug("chart skipped", slog.String("chart", name), slog.Any("error", err))
		}
		return ""
	}
	return out
}

func (h *Handler) dashboardCharts(d analytics.Dashboard) DashboardCharts {
	var c DashboardCharts

	labels := make([]string, 0, len(d.BumbuTrend))
	makkah := make([]float64, 0, len(d.BumbuTrend))
	madinah := make([]float64, 0, len(d.BumbuTrend))
	for _, p := range d.BumbuTrend {
		labels = append(labels, p.Label)
		makkah = append(makkah, p.Makkah)
		madinah = append(madinah, p.Madinah)
	}
	c.Trend = h.render("bumbu-trend", func() (template.HTML, error) {
		return svg.Line(svg.DefaultWidth, svg.DefaultHeight, []svg.Series{
			{Name: "Makkah", Values: makkah, Color: colorMakkah},
			{Name: "Madinah", Values: madinah, Color: colorMadinah},
		}, labels, svg.LineOpts{
			Title:       "Tren Konsumsi Bumbu",
			Description: "Konsumsi bumbu Makkah dan Madinah",
			ShowDots:    true,
			FillFirst:   true,
		})
	})

	ipLabels := make([]string, 0, len(d.IPEHU))
	values := make([]float64, 0, len(d.IPEHU))
	targets := make([]float64, 0, len(d.IPEHU))
	for _, p := range d.IPEHU {
		ipLabels = append(ipLabels, p.Label)
		values = append(values, p.Value)
		targets = append(targets, p.Target)
	}
	c.IPEHU = h.render("ipehu", func() (template.HTML, error) {
		return svg.Line(svg.DefaultWidth, svg.DefaultHeight, []svg.Series{
			{Name: "IPEHU", Values: values, Color: colorMakkah},
			{Name: "Target", Values: targets, Color: colorTarget, Dashed: true},
		}, ipLabels, svg.LineOpts{
			Title:       "Indeks Pemanfaatan Ekonomi Haji dan Umrah",
			Description: "Capaian IPEHU terhadap target",
			ShowDots:    true,
		})
	})

	c.RTEShare = h.render("rte-share", func() (template.HTML, error) {
		return svg.Donut(360, svg.DefaultHeight, shareSlices(d.RTEShare), svg.DonutOpts{
			Title:       "Distribusi RTE",
			Description: "Porsi makanan siap saji per perusahaan",
			CenterLabel: strconv.Itoa(len(d.RTEShare)),
			LegendTotal: d.TotalRTE,
		})
	})

	expLabels := make([]string, 0, len(d.Expedition))
	weights := make([]float64, 0, len(d.Expedition))
	for _, e := range d.Expedition {
		expLabels = append(expLabels, e.Kloter)
		weights = append(weights, e.Berat)
	}
	c.Expedition = h.render("expedition", func() (template.HTML, error) {
		return svg.Bars(svg.DefaultWidth, svg.DefaultHeight, []svg.Series{
			{Name: "Berat (Kg)", Values: weights, Color: "#B45309"},
		}, expLabels, svg.BarOpts{
			Title:       "Volume Ekspedisi",
			Description: "Berat kargo per perusahaan",
		})
	})
	return c
}

func (h *Handler) visualizationCharts(v analytics.Visualization) VisualizationCharts {
	var c VisualizationCharts

	names := make([]string, 0, len(v.PriceComparison))
	makkah := make([]float64, 0, len(v.PriceComparison))
	madinah := make([]float64, 0, len(v.PriceComparison))
	for _, p := range v.PriceComparison {
		names = append(names, p.Name)
		makkah = append(makkah, p.Makkah)
		madinah = append(madinah, p.Madinah)
	}
	c.Prices = h.render("price-comparison", func() (template.HTML, error) {
		return svg.Bars(svg.DefaultWidth, 280, []svg.Series{
			{Name: "Makkah", Values: makkah, Color: colorMakkah},
			{Name: "Madinah", Values: madinah, Color: colorMadinah},
		}, names, svg.BarOpts{
			Title:       "Perbandingan Harga Bumbu",
			Description: "Harga bumbu Makkah dan Madinah (SAR)",
		})
	})

	c.Telco = h.render("telco-share", func() (template.HTML, error) {
		return svg.Donut(360, svg.DefaultHeight, shareSlices(v.TelcoShare), svg.DonutOpts{
			Title:       "Pangsa Provider",
			Description: "Pangsa pasar provider telekomunikasi",
		})
	})

	expNames := make([]string, 0, len(v.ExpeditionTrend))
	weights := make([]float64, 0, len(v.ExpeditionTrend))
	costs := make([]float64, 0, len(v.ExpeditionTrend))
	for _, e := range v.ExpeditionTrend {
		expNames = append(expNames, e.Name)
		weights = append(weights, e.Berat)
		costs = append(costs, e.Biaya)
	}
	c.Expedition = h.render("expedition-trend", func() (template.HTML, error) {
		return svg.Line(svg.DefaultWidth, svg.DefaultHeight, []svg.Series{
			{Name: "Berat (Kg)", Values: weights, Color: "#B45309"},
			{Name: "Biaya / Kg", Values: costs, Color: colorMakkah},
		}, expNames, svg.LineOpts{
			Title:       "Tren Ekspedisi",
			Description: "Berat dan biaya kargo per perusahaan",
			ShowDots:    true,
		})
	})

	subjects := make([]string, 0, len(v.HotelRevenue))
	revenue := make([]float64, 0, len(v.HotelRevenue))
	target := make([]float64, 0, len(v.HotelRevenue))
	for _, p := range v.HotelRevenue {
		subjects = append(subjects, p.Subject)
		revenue = append(revenue, p.Revenue)
		target = append(target, p.Target)
	}
	c.Hotel = h.render("hotel-revenue", func() (template.HTML, error) {
		return svg.Bars(svg.DefaultWidth, svg.DefaultHeight, []svg.Series{
			{Name: "Pendapatan", Values: revenue, Color: colorMakkah},
			{Name: "Target", Values: target, Color: colorTarget},
		}, subjects, svg.BarOpts{
			Title:       "Pendapatan Hotel",
			Description: "Pendapatan per kategori terhadap target",
		})
	})

	riceNames := make([]string, 0, len(v.RicePrices))
	prices := make([]float64, 0, len(v.RicePrices))
	origins := make([]float64, 0, len(v.RicePrices))
	for _, r := range v.RicePrices {
		riceNames = append(riceNames, r.Name)
		prices = append(prices, r.Price)
		origins = append(origins, r.Origin)
	}
	c.Rice = h.render("rice-prices", func() (template.HTML, error) {
		return svg.Bars(svg.DefaultWidth, svg.DefaultHeight, []svg.Series{
			{Name: "Harga", Values: prices, Color: "#059669"},
			{Name: "Harga Asal", Values: origins, Color: colorMadinah},
		}, riceNames, svg.BarOpts{
			Title:       "Harga Beras",
			Description: "Harga beras terhadap harga produk asal",
		})
	})
	return c
}

func (c VisualizationCharts) exportCharts() []export.Chart {
	charts := []export.Chart{
		{Title: "Perbandingan Harga Bumbu", SVG: c.Prices},
		{Title: "Pangsa Provider", SVG: c.Telco},
		{Title: "Tren Ekspedisi", SVG: c.Expedition},
		{Title: "Pendapatan Hotel", SVG: c.Hotel},
		{Title: "Harga Beras", SVG: c.Rice},
	}
	out := charts[:0]
	for _, chart := range charts {
		if chart.SVG != "" {
			out = append(out, chart)
		}
	}
	return out
}

func shareSlices(in []analytics.ShareSlice) []svg.Slice {
	out := make([]svg.Slice, 0, len(in))
	for _, s := range in {
		out = append(out, svg.Slice{Label: s.Name, Value: s.Value, Color: s.Color})
	}
	return out
}
