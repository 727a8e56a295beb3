package analytics

import (
	"errors"
	"strings"
)

// ErrInvalidFilter marks a time filter outside the supported set.
var ErrInvalidFilter = errors.New("analytics: invalid time filter")

// TimeFilter scopes dashboard figures to a time window.
type TimeFilter string

const (
	FilterAll   TimeFilter = "all"
	FilterToday TimeFilter = "today"
	FilterWeek  TimeFilter = "week"
	FilterMonth TimeFilter = "month"
)

// Filters lists the selectable filters in menu order.
func Filters() []TimeFilter {
	return []TimeFilter{FilterAll, FilterToday, FilterWeek, FilterMonth}
}

// ParseTimeFilter resolves raw leniently; unknown values fall back to all.
func ParseTimeFilter(raw string) TimeFilter {
	f, err := ParseTimeFilterStrict(raw)
	if err != nil {
		return FilterAll
	}
	return f
}

// ParseTimeFilterStrict resolves raw and rejects unknown values. Empty input is all.
func ParseTimeFilterStrict(raw string) (TimeFilter, error) {
	switch f := TimeFilter(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterToday, FilterWeek, FilterMonth:
		return f, nil
	default:
		return FilterAll, ErrInvalidFilter
	}
}

// Multiplier scales totals to approximate the share of the window.
func (f TimeFilter) Multiplier() float64 {
	switch f {
	case FilterToday:
		return 0.05
	case FilterWeek:
		return 0.25
	case FilterMonth:
		return 0.8
	default:
		return 1
	}
}

// Fluctuation is the price factor applied to the spice price comparison.
func (f TimeFilter) Fluctuation() float64 {
	switch f {
	case FilterToday:
		return 0.95
	case FilterWeek:
		return 1.02
	default:
		return 1
	}
}

// Label is the Indonesian menu label of the filter.
func (f TimeFilter) Label() string {
	switch f {
	case FilterToday:
		return "Hari Ini"
	case FilterWeek:
		return "1 Minggu"
	case FilterMonth:
		return "1 Bulan"
	default:
		return "Semua Data"
	}
}

// TrendBadge is the growth badge shown on the KPI cards.
func (f TimeFilter) TrendBadge() string {
	if f == FilterToday {
		return "+2%"
	}
	return "+12%"
}
