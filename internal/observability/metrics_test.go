package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func scrape(t *testing.T, metrics *Metrics) string {
	t.Helper()
	rr := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	return rr.Body.String()
}

func TestMetricsHandlerExposesPrometheusMetrics(t *testing.T) {
	body := scrape(t, NewMetrics())
	if !strings.Contains(body, "ekohajj_store_version 0") {
		t.Fatalf("expected store version gauge, got: %s", body)
	}
}

func TestMetricsMiddlewareRecordsRequest(t *testing.T) {
	metrics := NewMetrics()

	handler := metrics.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	routeCtx := chi.NewRouteContext()
	routeCtx.RoutePatterns = append(routeCtx.RoutePatterns, "/test")

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	req = req.WithContext(ctx)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected status %d, got %d", http.StatusTeapot, rr.Code)
	}

	metricsBody := scrape(t, metrics)
	if !strings.Contains(metricsBody, "ekohajj_http_requests_total{code=\"418\",route=\"/test\"} 1") {
		t.Fatalf("expected metrics to record request, got: %s", metricsBody)
	}
	if !strings.Contains(metricsBody, "ekohajj_http_request_duration_seconds_bucket{route=\"/test\"") {
		t.Fatalf("expected duration histogram to be present, got: %s", metricsBody)
	}
}

func TestRecordMutation(t *testing.T) {
	metrics := NewMetrics()
	metrics.RecordMutation("rice", "add", 2)
	metrics.RecordMutation("", "reset", 3)

	body := scrape(t, metrics)
	if !strings.Contains(body, `ekohajj_store_mutations_total{collection="rice",op="add"} 1`) {
		t.Fatalf("expected rice mutation, got: %s", body)
	}
	if !strings.Contains(body, `ekohajj_store_mutations_total{collection="all",op="reset"} 1`) {
		t.Fatalf("expected reset mutation, got: %s", body)
	}
	if !strings.Contains(body, "ekohajj_store_version 3") {
		t.Fatalf("expected version gauge 3, got: %s", body)
	}

	var nilMetrics *Metrics
	nilMetrics.RecordMutation("rice", "add", 1)
}

func TestRecordCacheLookup(t *testing.T) {
	metrics := NewMetrics()
	metrics.RecordCacheLookup(true)
	metrics.RecordCacheLookup(false)
	metrics.RecordCacheLookup(false)

	body := scrape(t, metrics)
	if !strings.Contains(body, `ekohajj_analytics_cache_lookups_total{result="hit"} 1`) {
		t.Fatalf("expected one hit, got: %s", body)
	}
	if !strings.Contains(body, `ekohajj_analytics_cache_lookups_total{result="miss"} 2`) {
		t.Fatalf("expected two misses, got: %s", body)
	}
}

func TestMiddlewareDefaultsToOK(t *testing.T) {
	metrics := NewMetrics()
	handler := metrics.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	body := scrape(t, metrics)
	if !strings.Contains(body, `ekohajj_http_requests_total{code="200",route="unknown"} 1`) {
		t.Fatalf("expected unknown route with 200, got: %s", body)
	}
}
