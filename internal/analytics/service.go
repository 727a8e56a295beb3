package analytics

import (
	"context"
	"strconv"
	"strings"

	"github.com/zainulsyai/eko-hajj/internal/monitoring"
)

// SnapshotSource exposes the store view aggregation runs on.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (monitoring.Snapshot, error)
}

// Service coordinates aggregation over the record store with the cache layer.
type Service struct {
	source SnapshotSource
	cache  *Cache
	jitter Jitter
}

// NewService wires a snapshot source with a Cache helper. A nil jitter uses
// MidpointJitter.
func NewService(source SnapshotSource, cache *Cache, jitter Jitter) *Service {
	if jitter == nil {
		jitter = MidpointJitter
	}
	return &Service{source: source, cache: cache, jitter: jitter}
}

// Dashboard resolves the executive summary for the filter.
func (s *Service) Dashboard(ctx context.Context, f TimeFilter) (Dashboard, error) {
	snap, err := s.source.Snapshot(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	loader := func(ctx context.Context) (interface{}, error) {
		return ComputeDashboard(snap, f), nil
	}
	if s.cache == nil || snap.Loading {
		return ComputeDashboard(snap, f), nil
	}

	key, err := s.cache.BuildKey(ctx, keyDashboard(f, snap.Version))
	if err != nil {
		return Dashboard{}, err
	}
	var out Dashboard
	if err := s.cache.FetchJSON(ctx, key, &out, loader); err != nil {
		return Dashboard{}, err
	}
	return out, nil
}

// Visualization resolves the analysis charts for the filter.
func (s *Service) Visualization(ctx context.Context, f TimeFilter) (Visualization, error) {
	snap, err := s.source.Snapshot(ctx)
	if err != nil {
		return Visualization{}, err
	}
	loader := func(ctx context.Context) (interface{}, error) {
		return ComputeVisualization(snap, f, s.jitter), nil
	}
	if s.cache == nil || snap.Loading {
		return ComputeVisualization(snap, f, s.jitter), nil
	}

	key, err := s.cache.BuildKey(ctx, keyVisualization(f, snap.Version))
	if err != nil {
		return Visualization{}, err
	}
	var out Visualization
	if err := s.cache.FetchJSON(ctx, key, &out, loader); err != nil {
		return Visualization{}, err
	}
	return out, nil
}

// Warm computes and caches every filter of both pages.
func (s *Service) Warm(ctx context.Context) (int, error) {
	warmed := 0
	for _, f := range Filters() {
		if _, err := s.Dashboard(ctx, f); err != nil {
			return warmed, err
		}
		if _, err := s.Visualization(ctx, f); err != nil {
			return warmed, err
		}
		warmed += 2
	}
	return warmed, nil
}

func keyDashboard(f TimeFilter, version int64) string {
	return strings.Join([]string{"ekohajj", "analytics", "dashboard", string(f), formatInt(version)}, ":")
}

func keyVisualization(f TimeFilter, version int64) string {
	return strings.Join([]string{"ekohajj", "analytics", "visualization", string(f), formatInt(version)}, ":")
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
