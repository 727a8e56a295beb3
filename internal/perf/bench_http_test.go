package perf

import (
	"sort"
	"testing"
	"time"

	"github.com/zainulsyai/eko-hajj/internal/analytics"
	"github.com/zainulsyai/eko-hajj/internal/monitoring"
	"github.com/zainulsyai/eko-hajj/internal/query"
)

var seededAt = time.Date(2026, 6, 20, 8, 0, 0, 0, time.UTC)

func seededSnapshot() monitoring.Snapshot {
	return monitoring.NewSnapshot(monitoring.DefaultSeed(7)(seededAt))
}

func TestAggregationLatencyTargets(t *testing.T) {
	snap := seededSnapshot()
	scenarios := []struct {
		name      string
		run       func()
		threshold time.Duration
	}{
		{
			name:      "dashboard",
			run:       func() { analytics.ComputeDashboard(snap, analytics.FilterMonth) },
			threshold: 50 * time.Millisecond,
		},
		{
			name:      "visualization",
			run:       func() { analytics.ComputeVisualization(snap, analytics.FilterAll, analytics.MidpointJitter) },
			threshold: 50 * time.Millisecond,
		},
		{
			name:      "quick search",
			run:       func() { query.QuickSearch(snap, "a") },
			threshold: 50 * time.Millisecond,
		},
	}

	for _, scenario := range scenarios {
		samples := make([]time.Duration, 0, 20)
		for i := 0; i < 20; i++ {
			start := time.Now()
			scenario.run()
			samples = append(samples, time.Since(start))
		}
		p95 := percentile95(samples)
		if p95 > scenario.threshold {
			t.Fatalf("%s latency regression: p95=%s threshold=%s", scenario.name, p95, scenario.threshold)
		}
	}
}

func BenchmarkComputeDashboard(b *testing.B) {
	snap := seededSnapshot()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		analytics.ComputeDashboard(snap, analytics.FilterAll)
	}
}

func BenchmarkComputeVisualization(b *testing.B) {
	snap := seededSnapshot()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		analytics.ComputeVisualization(snap, analytics.FilterWeek, analytics.MidpointJitter)
	}
}

func percentile95(samples []time.Duration) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), samples...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	index := int(float64(len(sorted)-1) * 0.95)
	if index < 0 {
		index = 0
	}
	if index >= len(sorted) {
		index = len(sorted) - 1
	}
	return sorted[index]
}
