package app

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zainulsyai/eko-hajj/internal/analytics"
	analytichttp "github.com/zainulsyai/eko-hajj/internal/analytics/http"
	"github.com/zainulsyai/eko-hajj/internal/auth"
	"github.com/zainulsyai/eko-hajj/internal/monitoring"
	monitoringhttp "github.com/zainulsyai/eko-hajj/internal/monitoring/http"
	"github.com/zainulsyai/eko-hajj/internal/observability"
	queryhttp "github.com/zainulsyai/eko-hajj/internal/query/http"
	"github.com/zainulsyai/eko-hajj/internal/shared"
	"github.com/zainulsyai/eko-hajj/internal/view"
	"github.com/zainulsyai/eko-hajj/jobs"
	_ "github.com/zainulsyai/eko-hajj/testing"
)

var csrfField = regexp.MustCompile(`name="csrf_token" value="([^"]+)"`)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	logger := newLogger(&Config{LogFormat: "json"}, io.Discard)

	store, err := monitoring.Open(ctx, monitoring.Options{Seed: monitoring.DefaultSeed(7), Logger: logger})
	require.NoError(t, err)
	templates, err := view.NewEngine()
	require.NoError(t, err)

	sessions := shared.NewSessionManager(shared.NewMemorySessionStore(), "ekohajj_session", time.Hour, false)
	csrf := shared.NewCSRFManager("test-secret")
	service := analytics.NewService(store, nil, analytics.MidpointJitter)

	handler := NewRouter(RouterParams{
		Logger:            logger,
		Config:            &Config{AppEnv: "test", AppRequestTimeout: 5 * time.Second},
		SessionManager:    sessions,
		CSRFManager:       csrf,
		Store:             store,
		AuthHandler:       auth.NewHandler(logger, auth.NewService(), templates, sessions, csrf),
		AnalyticsHandler:  analytichttp.NewHandler(logger, service, templates, csrf, nil),
		QueryHandler:      queryhttp.NewHandler(logger, store, templates, csrf, nil),
		MonitoringHandler: monitoringhttp.NewHandler(logger, store, templates, csrf, nil),
		JobHandler:        jobs.NewHandler(nil, logger),
		Metrics:           observability.NewMetrics(),
	})
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func readBody(t *testing.T, res *http.Response) string {
	t.Helper()
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return string(body)
}

func TestRuntimeInTestMode(t *testing.T) {
	RefreshTestMode()
	assert.True(t, InTestMode())
}

func TestHealthAndJobsArePublic(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	res, err := client.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, readBody(t, res), `"store":"ready"`)

	res, err = client.Get(srv.URL + "/jobs/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, readBody(t, res), `"queue":"default"`)

	res, err = client.Get(srv.URL + "/healthz/pdf")
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
	assert.Contains(t, readBody(t, res), `"disabled"`)

	res, err = client.Get(srv.URL + "/static/css/app.css")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "public, max-age=3600", res.Header.Get("Cache-Control"))
	readBody(t, res)
}

func TestPagesRequireLogin(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	res, err := client.Get(srv.URL + "/")
	require.NoError(t, err)
	readBody(t, res)
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, auth.LoginPath, res.Header.Get("Location"))

	res, err = client.Get(srv.URL + "/api/dashboard")
	require.NoError(t, err)
	readBody(t, res)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestLoginFlowWithCSRF(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	res, err := client.PostForm(srv.URL+auth.LoginPath, url.Values{"username": {"siti"}, "password": {"x"}})
	require.NoError(t, err)
	readBody(t, res)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, err = client.Get(srv.URL + auth.LoginPath)
	require.NoError(t, err)
	page := readBody(t, res)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotEmpty(t, res.Header.Get("X-Frame-Options"))
	match := csrfField.FindStringSubmatch(page)
	require.Len(t, match, 2)

	res, err = client.PostForm(srv.URL+auth.LoginPath, url.Values{
		"username":   {"siti"},
		"password":   {"rahasia"},
		"csrf_token": {match[1]},
	})
	require.NoError(t, err)
	readBody(t, res)
	require.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/", res.Header.Get("Location"))

	res, err = client.Get(srv.URL + "/")
	require.NoError(t, err)
	body := readBody(t, res)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, strings.Contains(body, "Selamat datang, siti"))

	res, err = client.Get(srv.URL + "/api/dashboard?filter=bulan")
	require.NoError(t, err)
	readBody(t, res)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, err = client.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	assert.Contains(t, readBody(t, res), "ekohajj_http_requests_total")
}
