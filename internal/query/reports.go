package query

import (
	"sort"
	"strings"
	"time"

	"github.com/zainulsyai/eko-hajj/internal/monitoring"
)

// SortMode orders report rows.
type SortMode string

const (
	SortNewest        SortMode = "newest"
	SortOldest        SortMode = "oldest"
	SortHighestVolume SortMode = "highest_vol"
	SortHighestPrice  SortMode = "highest_price"
)

// Option is a selectable tab or sort entry.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// EmptyMessage and EmptyHint are shown when a report has no rows.
const (
	EmptyMessage = "Data tidak ditemukan."
	EmptyHint    = "Coba kata kunci pencarian lain."
)

var sortLabels = map[SortMode]string{
	SortNewest:        "Terbaru Ditambahkan",
	SortOldest:        "Terlama Ditambahkan",
	SortHighestVolume: "Volume Tertinggi",
	SortHighestPrice:  "Harga Tertinggi",
}

// SortOptions lists the sort modes in menu order.
func SortOptions() []Option {
	modes := []SortMode{SortNewest, SortOldest, SortHighestVolume, SortHighestPrice}
	out := make([]Option, 0, len(modes))
	for _, m := range modes {
		out = append(out, Option{ID: string(m), Label: sortLabels[m]})
	}
	return out
}

// TabOptions lists the report tabs in display order.
func TabOptions() []Option {
	out := make([]Option, 0, len(monitoring.Kinds()))
	for _, k := range monitoring.Kinds() {
		out = append(out, Option{ID: string(k), Label: monitoring.Describe(k).Label})
	}
	return out
}

// ParseSort resolves a sort mode, falling back to newest.
func ParseSort(raw string) SortMode {
	m := SortMode(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := sortLabels[m]; ok {
		return m
	}
	return SortNewest
}

// ParseTab resolves a report tab, falling back to the spice tab.
func ParseTab(raw string) monitoring.Kind {
	k := monitoring.Kind(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range monitoring.Kinds() {
		if k == known {
			return k
		}
	}
	return monitoring.KindSpice
}

// ReportQuery selects and orders the rows of one report tab.
type ReportQuery struct {
	Tab  string
	Term string
	Sort string
}

// CellValue is one rendered line of a report cell.
type CellValue struct {
	Text string `json:"text"`
	// Badge marks a status line; Filled tells which state it shows.
	Badge  bool `json:"badge,omitempty"`
	Filled bool `json:"filled,omitempty"`
}

// Row is one report table row.
type Row struct {
	Collection monitoring.Collection `json:"collection"`
	ID         int                   `json:"id"`
	Location   string                `json:"location,omitempty"`
	CreatedAt  time.Time             `json:"createdAt"`
	Cells      [][]CellValue         `json:"cells"`
}

// Report is the filtered and sorted table of one tab.
type Report struct {
	Tab         monitoring.Kind `json:"tab"`
	Label       string          `json:"label"`
	Term        string          `json:"term"`
	Sort        SortMode        `json:"sort"`
	SortLabel   string          `json:"sortLabel"`
	Placeholder string          `json:"placeholder"`
	Headers     []string        `json:"headers"`
	Rows        []Row           `json:"rows"`
	Loading     bool            `json:"loading"`
}

// Empty reports whether the table has nothing to show.
func (r Report) Empty() bool {
	return len(r.Rows) == 0
}

type item struct {
	collection monitoring.Collection
	record     monitoring.Record
}

func (it item) get(field string) string {
	if field == "loc" {
		return string(it.collection.Location())
	}
	return monitoring.Field(it.record, field)
}

func (it item) number(fields []string) float64 {
	for _, f := range fields {
		if v := it.get(f); v != "" {
			return monitoring.ParseNumber(v)
		}
	}
	return 0
}

// BuildReport runs q against snap. The spice tab merges the used records of
// both locations, Makkah first.
func BuildReport(snap monitoring.Snapshot, q ReportQuery) Report {
	tab := ParseTab(q.Tab)
	mode := ParseSort(q.Sort)
	d := monitoring.Describe(tab)

	var items []item
	for _, c := range monitoring.CollectionsOf(tab) {
		for _, r := range snap.Records(c) {
			if tab == monitoring.KindSpice && !monitoring.ParseBool(monitoring.Field(r, "isUsed")) {
				continue
			}
			items = append(items, item{collection: c, record: r})
		}
	}

	if q.Term != "" {
		needle := strings.ToLower(q.Term)
		filtered := items[:0]
		for _, it := range items {
			if matches(it, d.FilterFields, needle) {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}

	sortItems(items, mode, d)

	headers := make([]string, 0, len(d.Columns))
	for _, col := range d.Columns {
		headers = append(headers, col.Header)
	}
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, buildRow(it, d.Columns))
	}
	return Report{
		Tab:         tab,
		Label:       d.Label,
		Term:        q.Term,
		Sort:        mode,
		SortLabel:   sortLabels[mode],
		Placeholder: d.Placeholder,
		Headers:     headers,
		Rows:        rows,
		Loading:     snap.Loading,
	}
}

func matches(it item, fields []string, needle string) bool {
	for _, f := range fields {
		v := it.get(f)
		if v != "" && strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

func sortItems(items []item, mode SortMode, d monitoring.Descriptor) {
	switch mode {
	case SortOldest:
		sort.SliceStable(items, func(i, j int) bool { return items[i].record.RecordID() < items[j].record.RecordID() })
	case SortHighestVolume:
		sort.SliceStable(items, func(i, j int) bool { return items[i].number(d.VolumeFields) > items[j].number(d.VolumeFields) })
	case SortHighestPrice:
		sort.SliceStable(items, func(i, j int) bool { return items[i].number(d.PriceFields) > items[j].number(d.PriceFields) })
	default:
		sort.SliceStable(items, func(i, j int) bool { return items[i].record.RecordID() > items[j].record.RecordID() })
	}
}

func buildRow(it item, columns []monitoring.Column) Row {
	row := Row{
		Collection: it.collection,
		ID:         it.record.RecordID(),
		Location:   string(it.collection.Location()),
		Cells:      make([][]CellValue, 0, len(columns)),
	}
	if created, err := time.Parse(time.RFC3339, it.get("createdAt")); err == nil {
		row.CreatedAt = created
	}
	for _, col := range columns {
		lines := make([]CellValue, 0, len(col.Cells))
		for _, cell := range col.Cells {
			lines = append(lines, renderCell(it.get(cell.Field), cell))
		}
		row.Cells = append(row.Cells, lines)
	}
	return row
}

func renderCell(value string, cell monitoring.Cell) CellValue {
	if cell.Present != "" || cell.Absent != "" {
		if value != "" {
			return CellValue{Text: cell.Present, Badge: true, Filled: true}
		}
		return CellValue{Text: cell.Absent, Badge: true}
	}
	if value == "" && cell.Dash {
		value = "-"
	}
	return CellValue{Text: cell.Prefix + value + cell.Suffix}
}

// Flatten joins the lines of each cell for plain-text exports.
func (r Row) Flatten(sep string) []string {
	out := make([]string, 0, len(r.Cells))
	for _, lines := range r.Cells {
		parts := make([]string, 0, len(lines))
		for _, l := range lines {
			if strings.TrimSpace(l.Text) != "" {
				parts = append(parts, l.Text)
			}
		}
		out = append(out, strings.Join(parts, sep))
	}
	return out
}
