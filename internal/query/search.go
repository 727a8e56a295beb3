// Package query implements the read side over a store snapshot: the portal
// quick search, the reports filter and sort, and the portal tiles.
package query

import (
	"strings"

	"github.com/zainulsyai/eko-hajj/internal/monitoring"
)

// SearchResult is one quick-search hit.
type SearchResult struct {
	Type       string                `json:"type"`
	Title      string                `json:"title"`
	Subtitle   string                `json:"subtitle"`
	Icon       string                `json:"icon"`
	TargetPage string                `json:"targetPage"`
	Color      string                `json:"color"`
	Collection monitoring.Collection `json:"collection"`
	ID         int                   `json:"id"`
}

// QuickSearch scans every collection in fixed order and returns the records
// whose search fields contain term, case-insensitively. A blank term returns
// no results.
func QuickSearch(snap monitoring.Snapshot, term string) []SearchResult {
	if strings.TrimSpace(term) == "" {
		return []SearchResult{}
	}
	needle := strings.ToLower(term)
	results := []SearchResult{}
	for _, c := range monitoring.Collections() {
		d := monitoring.DescribeCollection(c)
		for _, r := range snap.Records(c) {
			if !containsAny(r, d.SearchFields, needle) {
				continue
			}
			results = append(results, SearchResult{
				Type:       searchType(d, c),
				Title:      monitoring.Field(r, d.TitleField),
				Subtitle:   subtitle(d, r),
				Icon:       d.Icon,
				TargetPage: FormPath(c),
				Color:      d.Color,
				Collection: c,
				ID:         r.RecordID(),
			})
		}
	}
	return results
}

// FormPath is the data-entry page of a collection.
func FormPath(c monitoring.Collection) string {
	return "/forms/" + string(c)
}

func searchType(d monitoring.Descriptor, c monitoring.Collection) string {
	if loc := c.Location(); loc != "" {
		return d.SearchType + " (" + string(loc) + ")"
	}
	return d.SearchType
}

func subtitle(d monitoring.Descriptor, r monitoring.Record) string {
	v := monitoring.Field(r, d.SubtitleField)
	if v == "" && d.SubtitleFallback != "" {
		return d.SubtitleFallback
	}
	return v + d.SubtitleSuffix
}

func containsAny(r monitoring.Record, fields []string, needle string) bool {
	for _, f := range fields {
		v := monitoring.Field(r, f)
		if v != "" && strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}
