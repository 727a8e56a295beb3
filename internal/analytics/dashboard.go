package analytics

import (
	"math"
	"strings"

	"github.com/zainulsyai/eko-hajj/internal/monitoring"
)

// rteColors cycle over the RTE share slices.
var rteColors = []string{"#D4AF37", "#064E3B", "#0F766E", "#B45309"}

// IPEHUTarget is the target line of the pilgrim economy index.
const IPEHUTarget = 85

// ShareSlice is one segment of a donut chart.
type ShareSlice struct {
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Color   string  `json:"color"`
	Percent float64 `json:"percent"`
}

// ExpeditionBar is the cargo weight of one company.
type ExpeditionBar struct {
	Kloter string  `json:"kloter"`
	Berat  float64 `json:"berat"`
}

// TrendPoint compares Makkah and Madinah spice consumption.
type TrendPoint struct {
	Label   string  `json:"label"`
	Makkah  float64 `json:"makkah"`
	Madinah float64 `json:"madinah"`
}

// IndexPoint is one IPEHU reading against its target.
type IndexPoint struct {
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
	Target float64 `json:"target"`
}

// Activity is an entry of the recent activity feed.
type Activity struct {
	Type   string `json:"type"`
	Text   string `json:"text"`
	Detail string `json:"detail"`
	Time   string `json:"time"`
}

// Dashboard carries the KPI cards and chart series of the executive summary.
type Dashboard struct {
	Filter      TimeFilter `json:"filter"`
	FilterLabel string     `json:"filterLabel"`
	TrendBadge  string     `json:"trendBadge"`
	Loading     bool       `json:"loading"`

	TotalBumbu   float64 `json:"totalBumbu"`
	TotalRice    float64 `json:"totalRice"`
	TotalRTE     float64 `json:"totalRte"`
	TotalCargo   float64 `json:"totalCargo"`
	TotalRevenue float64 `json:"totalRevenue"`
	TotalTelecom int     `json:"totalTelecom"`

	RTEShare   []ShareSlice    `json:"rteShare"`
	Expedition []ExpeditionBar `json:"expedition"`
	BumbuTrend []TrendPoint    `json:"bumbuTrend"`
	IPEHU      []IndexPoint    `json:"ipehu"`
	Activity   []Activity      `json:"activity"`
}

// ComputeDashboard derives the executive summary from snap.
func ComputeDashboard(snap monitoring.Snapshot, f TimeFilter) Dashboard {
	m := f.Multiplier()
	d := Dashboard{
		Filter:      f,
		FilterLabel: f.Label(),
		TrendBadge:  f.TrendBadge(),
		Loading:     snap.Loading,
		BumbuTrend:  bumbuTrend(f),
		IPEHU:       ipehuSeries(f),
	}

	spice := UsedSpiceVolume(snap.Spices(monitoring.CollectionSpiceMakkah)) +
		UsedSpiceVolume(snap.Spices(monitoring.CollectionSpiceMadinah))
	d.TotalBumbu = roundTo(spice*m, 1)

	var rice float64
	for _, r := range snap.Rice() {
		if r.IsUsed {
			rice += monitoring.ParseNumber(r.Volume)
		}
	}
	d.TotalRice = math.Floor(rice * m)

	var rte float64
	for _, r := range snap.RTE() {
		if r.IsUsed {
			rte += monitoring.ParseNumber(r.Volume)
		}
	}
	d.TotalRTE = math.Floor(rte * m)

	var cargo float64
	for _, e := range snap.Expeditions() {
		cargo += monitoring.ParseNumber(e.Weight)
	}
	d.TotalCargo = math.Floor(cargo * m)

	var revenue float64
	for _, t := range snap.Tenants() {
		revenue += monitoring.ParseNumber(t.RentCost)
	}
	d.TotalRevenue = math.Floor(revenue * m)

	d.TotalTelecom = len(snap.Telecom())
	d.RTEShare = rteShare(snap.RTE(), m, d.TotalRTE)
	d.Expedition = expeditionBars(snap.Expeditions(), m)
	d.Activity = activityFeed(snap)
	return d
}

// UsedSpiceVolume sums the volume of used spice records.
func UsedSpiceVolume(records []*monitoring.SpiceRecord) float64 {
	var total float64
	for _, r := range records {
		if r.IsUsed {
			total += monitoring.ParseNumber(r.Volume)
		}
	}
	return total
}

// rteShare lists used, named RTE suppliers. Percentages are shares of
// total, which also counts used records without a company name.
func rteShare(records []*monitoring.RTERecord, m, total float64) []ShareSlice {
	out := make([]ShareSlice, 0, len(records))
	for _, r := range records {
		if !r.IsUsed || r.CompanyName == "" {
			continue
		}
		out = append(out, ShareSlice{
			Name:  r.CompanyName,
			Value: math.Floor(monitoring.ParseNumber(r.Volume) * m),
			Color: rteColors[len(out)%len(rteColors)],
		})
	}
	for i := range out {
		out[i].Percent = Percentage(out[i].Value, total)
	}
	return out
}

func withPercent(slices []ShareSlice) {
	var total float64
	for _, s := range slices {
		total += s.Value
	}
	for i := range slices {
		slices[i].Percent = Percentage(slices[i].Value, total)
	}
}

func expeditionBars(records []*monitoring.ExpeditionRecord, m float64) []ExpeditionBar {
	out := make([]ExpeditionBar, 0, len(records))
	for _, e := range records {
		out = append(out, ExpeditionBar{
			Kloter: firstWord(e.CompanyName),
			Berat:  math.Floor(monitoring.ParseNumber(e.Weight) * m),
		})
	}
	return out
}

func firstWord(s string) string {
	word, _, _ := strings.Cut(s, " ")
	return word
}

func activityFeed(snap monitoring.Snapshot) []Activity {
	var out []Activity
	rte := snap.RTE()
	for i := 0; i < len(rte) && i < 2; i++ {
		out = append(out, Activity{
			Type:   "rte",
			Text:   "Input RTE: " + rte[i].CompanyName,
			Detail: rte[i].Menu,
			Time:   "Baru saja",
		})
	}
	if rice := snap.Rice(); len(rice) > 0 {
		out = append(out, Activity{
			Type:   "rice",
			Text:   "Stok Beras: " + rice[0].CompanyName,
			Detail: rice[0].Volume + " Ton",
			Time:   "5 menit lalu",
		})
	}
	return out
}

func bumbuTrend(f TimeFilter) []TrendPoint {
	switch f {
	case FilterToday:
		return []TrendPoint{
			{"08:00", 5, 3}, {"10:00", 12, 8}, {"12:00", 25, 20},
			{"14:00", 18, 15}, {"16:00", 30, 22}, {"18:00", 45, 35},
		}
	case FilterWeek:
		return []TrendPoint{
			{"Senin", 45, 30}, {"Selasa", 50, 35}, {"Rabu", 48, 38}, {"Kamis", 60, 45},
			{"Jumat", 55, 50}, {"Sabtu", 65, 55}, {"Minggu", 70, 60},
		}
	case FilterMonth:
		return []TrendPoint{
			{"Minggu 1", 200, 150}, {"Minggu 2", 240, 180}, {"Minggu 3", 300, 250}, {"Minggu 4", 280, 220},
		}
	default:
		return []TrendPoint{
			{"Jan", 100, 80}, {"Feb", 120, 90}, {"Mar", 150, 110}, {"Apr", 180, 140},
			{"Mei", 220, 180}, {"Jun", 300, 250}, {"Jul", 250, 200},
		}
	}
}

func ipehuSeries(f TimeFilter) []IndexPoint {
	var labels []string
	var values []float64
	switch f {
	case FilterToday:
		labels = []string{"08:00", "10:00", "12:00", "14:00", "16:00", "18:00"}
		values = []float64{65, 68, 75, 72, 80, 85}
	case FilterWeek:
		labels = []string{"Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu", "Minggu"}
		values = []float64{70, 72, 75, 78, 82, 85, 88}
	case FilterMonth:
		labels = []string{"Minggu 1", "Minggu 2", "Minggu 3", "Minggu 4"}
		values = []float64{75, 78, 82, 85}
	default:
		labels = []string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul"}
		values = []float64{60, 65, 70, 75, 80, 85, 82}
	}
	out := make([]IndexPoint, len(labels))
	for i := range labels {
		out[i] = IndexPoint{Label: labels[i], Value: values[i], Target: IPEHUTarget}
	}
	return out
}
