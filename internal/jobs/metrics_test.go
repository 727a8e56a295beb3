package jobmetrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestTrackerRecordsOutcome(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	if err := metrics.Track("warmup").End(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	boom := errors.New("boom")
	if err := metrics.Track("warmup").End(boom); !errors.Is(err, boom) {
		t.Fatalf("expected error to pass through, got %v", err)
	}

	if got := testutil.ToFloat64(metrics.runs.WithLabelValues("warmup", "success")); got != 1 {
		t.Fatalf("expected 1 success, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.failures.WithLabelValues("warmup")); got != 1 {
		t.Fatalf("expected 1 failure, got %v", got)
	}
}

func TestTrackerStampsLastSuccess(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())
	at := time.Date(2026, 6, 20, 8, 30, 0, 0, time.UTC)

	tracker := metrics.Track("reseed")
	tracker.now = func() time.Time { return at }
	_ = tracker.End(nil)
	if got := testutil.ToFloat64(metrics.lastSuccess.WithLabelValues("reseed")); got != float64(at.Unix()) {
		t.Fatalf("expected last success %d, got %v", at.Unix(), got)
	}

	failed := metrics.Track("reseed")
	failed.now = func() time.Time { return at.Add(time.Hour) }
	_ = failed.End(errors.New("boom"))
	if got := testutil.ToFloat64(metrics.lastSuccess.WithLabelValues("reseed")); got != float64(at.Unix()) {
		t.Fatalf("failure must not move last success, got %v", got)
	}
}

func TestAddWarmed(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())
	metrics.AddWarmed(3)
	metrics.AddWarmed(0)
	if got := testutil.ToFloat64(metrics.warmed); got != 3 {
		t.Fatalf("expected 3 warmed entries, got %v", got)
	}

	var nilMetrics *Metrics
	nilMetrics.AddWarmed(1)
	if err := nilMetrics.Track("x").End(nil); err != nil {
		t.Fatalf("nil tracker should be a no-op")
	}
}
