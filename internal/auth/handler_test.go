package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zainulsyai/eko-hajj/internal/auth"
	"github.com/zainulsyai/eko-hajj/internal/shared"
	"github.com/zainulsyai/eko-hajj/internal/view"
	_ "github.com/zainulsyai/eko-hajj/testing"
)

func newAuthHandler(t *testing.T) (*auth.Handler, *shared.SessionManager) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	sessions := shared.NewSessionManager(shared.NewRedisSessionStore(client), "test_session", time.Hour, false)
	templates, err := view.NewEngine()
	require.NoError(t, err)
	return auth.NewHandler(nil, auth.NewService(), templates, sessions, shared.NewCSRFManager("csrfsecret")), sessions
}

func withSession(t *testing.T, sessions *shared.SessionManager, req *http.Request) (*http.Request, *shared.Session) {
	t.Helper()
	sess, err := sessions.Load(context.Background(), req)
	require.NoError(t, err)
	return req.WithContext(shared.ContextWithSession(req.Context(), sess)), sess
}

func postLogin(username, password string) *http.Request {
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestLoginPage(t *testing.T) {
	handler, sessions := newAuthHandler(t)
	req, sess := withSession(t, sessions, httptest.NewRequest(http.MethodGet, "/auth/login", nil))

	res := httptest.NewRecorder()
	handler.ShowLoginForTest(res, req)
	require.NoError(t, sessions.Commit(req.Context(), res, sess))

	assert.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "<form")
	assert.NotEmpty(t, sess.Get(shared.CSRFSessionKey))
}

func TestLoginRequiresBothFields(t *testing.T) {
	handler, sessions := newAuthHandler(t)
	req, sess := withSession(t, sessions, postLogin("petugas", ""))

	res := httptest.NewRecorder()
	handler.HandleLoginForTest(res, req)

	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, res.Body.String(), "Wajib diisi")
	assert.Empty(t, sess.User())
}

func TestLoginAcceptsAnyCredentials(t *testing.T) {
	handler, sessions := newAuthHandler(t)
	req, sess := withSession(t, sessions, postLogin("  petugas  ", "rahasia"))

	res := httptest.NewRecorder()
	handler.HandleLoginForTest(res, req)

	assert.Equal(t, http.StatusSeeOther, res.Code)
	assert.Equal(t, "/", res.Header().Get("Location"))
	assert.Equal(t, "petugas", sess.User())
	flash := sess.PopFlash()
	require.NotNil(t, flash)
	assert.Equal(t, shared.FlashSuccess, flash.Kind)
}

func TestLogoutDestroysSession(t *testing.T) {
	handler, sessions := newAuthHandler(t)
	req, sess := withSession(t, sessions, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	sess.SetUser("petugas")

	res := httptest.NewRecorder()
	handler.HandleLogoutForTest(res, req)
	require.NoError(t, sessions.Commit(req.Context(), res, sess))

	assert.Equal(t, auth.LoginPath, res.Header().Get("Location"))
	cookies := res.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestRequireLogin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	guarded := auth.RequireLogin(next)

	res := httptest.NewRecorder()
	guarded.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/reports", nil))
	assert.Equal(t, http.StatusSeeOther, res.Code)
	assert.Equal(t, auth.LoginPath, res.Header().Get("Location"))

	res = httptest.NewRecorder()
	guarded.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/api/reports", nil))
	assert.Equal(t, http.StatusUnauthorized, res.Code)

	sess := shared.NewSession()
	sess.SetUser("petugas")
	req := httptest.NewRequest(http.MethodGet, "/reports", nil)
	req = req.WithContext(shared.ContextWithSession(req.Context(), sess))
	res = httptest.NewRecorder()
	guarded.ServeHTTP(res, req)
	assert.Equal(t, http.StatusNoContent, res.Code)
}

func TestLoginRenewsSessionID(t *testing.T) {
	handler, sessions := newAuthHandler(t)
	req, sess := withSession(t, sessions, postLogin("petugas", "rahasia"))
	sess.Set(shared.CSRFSessionKey, "stale")
	before := sess.ID

	handler.HandleLoginForTest(httptest.NewRecorder(), req)

	assert.NotEqual(t, before, sess.ID)
	assert.Empty(t, sess.Get(shared.CSRFSessionKey))
}
