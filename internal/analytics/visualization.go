package analytics

import (
	"math"
	"sort"
	"strings"

	"github.com/zainulsyai/eko-hajj/internal/monitoring"
)

const (
	priceComparisonLimit = 8
	expeditionCategory   = "Ekspedisi & Kargo"
	otherCategory        = "Lainnya"
)

// pieColors cycle over the telecom share slices.
var pieColors = []string{"#064E3B", "#D4AF37", "#0F766E", "#1E40AF", "#B91C1C"}

// PriceComparison pairs the Makkah and Madinah price of one spice.
type PriceComparison struct {
	Name    string  `json:"name"`
	Makkah  float64 `json:"makkah"`
	Madinah float64 `json:"madinah"`
	Avg     float64 `json:"avg"`
}

// PriceLeader is the single most expensive price in the comparison.
type PriceLeader struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ExpeditionPoint is one company on the expedition area chart.
type ExpeditionPoint struct {
	Name  string  `json:"name"`
	Berat float64 `json:"berat"`
	Biaya float64 `json:"biaya"`
}

// RadarPoint is one revenue category of the hotel economy radar.
type RadarPoint struct {
	Subject  string  `json:"subject"`
	Revenue  float64 `json:"revenue"`
	Target   float64 `json:"target"`
	FullMark float64 `json:"fullMark"`
}

// RicePrice is the local and origin price of one rice supplier.
type RicePrice struct {
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Origin float64 `json:"origin"`
}

// Visualization carries the chart series of the analysis page.
type Visualization struct {
	Filter      TimeFilter `json:"filter"`
	FilterLabel string     `json:"filterLabel"`
	Loading     bool       `json:"loading"`

	PriceComparison []PriceComparison `json:"priceComparison"`
	MostExpensive   PriceLeader       `json:"mostExpensive"`
	GlobalAvgPrice  float64           `json:"globalAvgPrice"`
	TelcoShare      []ShareSlice      `json:"telcoShare"`
	ExpeditionTrend []ExpeditionPoint `json:"expeditionTrend"`
	HotelRevenue    []RadarPoint      `json:"hotelRevenue"`
	RicePrices      []RicePrice       `json:"ricePrices"`
	AvgRicePrice    float64           `json:"avgRicePrice"`
}

// ComputeVisualization derives the analysis charts from snap. Mock values
// are drawn from j.
func ComputeVisualization(snap monitoring.Snapshot, f TimeFilter, j Jitter) Visualization {
	if j == nil {
		j = MidpointJitter
	}
	m := f.Multiplier()
	v := Visualization{
		Filter:      f,
		FilterLabel: f.Label(),
		Loading:     snap.Loading,
	}
	v.PriceComparison = ComparePrices(snap.Spices(monitoring.CollectionSpiceMakkah), snap.Spices(monitoring.CollectionSpiceMadinah), f.Fluctuation())
	v.MostExpensive = MostExpensive(v.PriceComparison)
	v.GlobalAvgPrice = GlobalAverage(v.PriceComparison)
	v.TelcoShare = telcoShare(snap.Telecom(), m, j)
	v.ExpeditionTrend = expeditionTrend(snap.Expeditions(), m)
	v.HotelRevenue = HotelRevenue(snap.Tenants(), snap.Expeditions(), m, j)
	v.RicePrices = RicePrices(snap.Rice())
	for _, r := range v.RicePrices {
		v.AvgRicePrice += r.Price
	}
	if len(v.RicePrices) > 0 {
		v.AvgRicePrice /= float64(len(v.RicePrices))
	}
	return v
}

// ComparePrices pairs the first used Makkah spices with the Madinah record of
// the same name and sorts them by average price, highest first.
func ComparePrices(makkah, madinah []*monitoring.SpiceRecord, fluctuation float64) []PriceComparison {
	out := make([]PriceComparison, 0, priceComparisonLimit)
	for _, mk := range makkah {
		if !mk.IsUsed {
			continue
		}
		if len(out) == priceComparisonLimit {
			break
		}
		makkahPrice := monitoring.ParseNumber(mk.Price) * fluctuation
		madinahPrice := 0.0
		for _, md := range madinah {
			if md.Name == mk.Name {
				madinahPrice = monitoring.ParseNumber(md.Price) * fluctuation
				break
			}
		}
		out = append(out, PriceComparison{
			Name:    strings.Replace(mk.Name, "Bumbu ", "", 1),
			Makkah:  makkahPrice,
			Madinah: madinahPrice,
			Avg:     (makkahPrice + madinahPrice) / 2,
		})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Avg > out[b].Avg })
	return out
}

// MostExpensive returns the highest single price of the comparison. The
// first item reaching the maximum wins.
func MostExpensive(items []PriceComparison) PriceLeader {
	if len(items) == 0 {
		return PriceLeader{Name: "-"}
	}
	var leader PriceLeader
	for _, it := range items {
		if it.Makkah > leader.Price {
			leader = PriceLeader{Name: it.Name, Price: it.Makkah}
		}
		if it.Madinah > leader.Price {
			leader = PriceLeader{Name: it.Name, Price: it.Madinah}
		}
	}
	return leader
}

// GlobalAverage is the mean of the per-item averages.
func GlobalAverage(items []PriceComparison) float64 {
	if len(items) == 0 {
		return 0
	}
	var total float64
	for _, it := range items {
		total += it.Avg
	}
	return total / float64(len(items))
}

func telcoShare(records []*monitoring.TelecomRecord, m float64, j Jitter) []ShareSlice {
	out := make([]ShareSlice, 0, len(records))
	for i, t := range records {
		value := j.Float64() * 100 * m
		if value <= 0 {
			continue
		}
		out = append(out, ShareSlice{
			Name:  t.ProviderName,
			Value: value,
			Color: pieColors[i%len(pieColors)],
		})
	}
	withPercent(out)
	return out
}

func expeditionTrend(records []*monitoring.ExpeditionRecord, m float64) []ExpeditionPoint {
	out := make([]ExpeditionPoint, 0, len(records))
	for _, e := range records {
		out = append(out, ExpeditionPoint{
			Name:  firstWord(e.CompanyName),
			Berat: math.Floor(monitoring.ParseNumber(e.Weight) * m),
			Biaya: monitoring.ParseNumber(e.PricePerKg),
		})
	}
	return out
}

// HotelRevenue groups tenant rent by product type and adds the expedition
// revenue as its own category when positive. Categories keep first-seen order.
func HotelRevenue(tenants []*monitoring.TenantRecord, expeditions []*monitoring.ExpeditionRecord, m float64, j Jitter) []RadarPoint {
	var order []string
	totals := make(map[string]float64)
	add := func(cat string, v float64) {
		if _, ok := totals[cat]; !ok {
			order = append(order, cat)
		}
		totals[cat] += v
	}
	for _, t := range tenants {
		cat := t.ProductType
		if cat == "" {
			cat = otherCategory
		}
		add(cat, monitoring.ParseNumber(t.RentCost)*m)
	}
	var cargo float64
	for _, e := range expeditions {
		cargo += monitoring.ParseNumber(e.Weight) * monitoring.ParseNumber(e.PricePerKg) * m
	}
	if cargo > 0 {
		if _, ok := totals[expeditionCategory]; !ok {
			order = append(order, expeditionCategory)
		}
		totals[expeditionCategory] = cargo
	}

	var maxRevenue float64
	for i, cat := range order {
		if i == 0 || totals[cat] > maxRevenue {
			maxRevenue = totals[cat]
		}
	}
	out := make([]RadarPoint, 0, len(order))
	for _, cat := range order {
		revenue := totals[cat]
		out = append(out, RadarPoint{
			Subject:  cat,
			Revenue:  revenue,
			Target:   revenue * (0.9 + j.Float64()*0.3),
			FullMark: maxRevenue * 1.1,
		})
	}
	return out
}

// RicePrices lists used, named rice suppliers by price, highest first.
func RicePrices(records []*monitoring.RiceRecord) []RicePrice {
	out := make([]RicePrice, 0, len(records))
	for _, r := range records {
		if !r.IsUsed || r.CompanyName == "" {
			continue
		}
		out = append(out, RicePrice{
			Name:   r.CompanyName,
			Price:  monitoring.ParseNumber(r.Price),
			Origin: monitoring.ParseNumber(r.ProductPrice),
		})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Price > out[b].Price })
	return out
}
