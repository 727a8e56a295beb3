package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, sm *SessionManager) {
	t.Helper()
	ctx := context.Background()

	sess, err := sm.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	sess.SetUser("surveyor")
	sess.AddFlash(FlashMessage{Kind: FlashSuccess, Message: "Data tersimpan"})

	rr := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rr, sess))
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sess.ID, cookies[0].Value)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	loaded, err := sm.Load(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "surveyor", loaded.User())
	flash := loaded.PopFlash()
	require.NotNil(t, flash)
	assert.Equal(t, "Data tersimpan", flash.Message)
	assert.Nil(t, loaded.PopFlash())

	sm.Destroy(loaded)
	rr = httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rr, loaded))
	gone, err := sm.Load(ctx, req)
	require.NoError(t, err)
	assert.Empty(t, gone.User())
	assert.NotEqual(t, loaded.ID, gone.ID)
}

func TestSessionManagerRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	roundTrip(t, NewSessionManager(NewRedisSessionStore(client), "ekohajj_session", time.Hour, false))
}

func TestSessionManagerMemory(t *testing.T) {
	roundTrip(t, NewSessionManager(nil, "ekohajj_session", time.Hour, false))
}

func TestMemorySessionStoreExpiry(t *testing.T) {
	store := NewMemorySessionStore()
	now := time.Date(2026, 6, 20, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	require.NoError(t, store.Set(context.Background(), "a", []byte("x"), time.Minute))

	now = now.Add(2 * time.Minute)
	_, err := store.Get(context.Background(), "a")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCSRFManager(t *testing.T) {
	m := NewCSRFManager("secret")
	sess := NewSession()
	token, err := m.EnsureToken(sess)
	require.NoError(t, err)
	again, err := m.EnsureToken(sess)
	require.NoError(t, err)
	assert.Equal(t, token, again)

	assert.NoError(t, m.VerifyToken(sess, token))
	assert.ErrorIs(t, m.VerifyToken(sess, "other"), ErrCSRFTokenMismatch)
	assert.ErrorIs(t, m.VerifyToken(sess, ""), ErrCSRFTokenMissing)
	assert.ErrorIs(t, m.VerifyToken(nil, token), ErrCSRFTokenMissing)

	_, err = m.EnsureToken(nil)
	assert.ErrorIs(t, err, ErrSessionMissing)
}

func TestSignedInUser(t *testing.T) {
	_, ok := SignedInUser(context.Background())
	assert.False(t, ok)

	sess := NewSession()
	ctx := ContextWithSession(context.Background(), sess)
	_, ok = SignedInUser(ctx)
	assert.False(t, ok)

	sess.SetUser(" siti ")
	user, ok := SignedInUser(ctx)
	assert.True(t, ok)
	assert.Equal(t, "siti", user)
}

func TestCSRFTokenBoundToSession(t *testing.T) {
	m := NewCSRFManager("secret")
	first := NewSession()
	token, err := m.EnsureToken(first)
	require.NoError(t, err)

	other := NewSession()
	other.Set(CSRFSessionKey, token)
	assert.ErrorIs(t, m.VerifyToken(other, token), ErrCSRFTokenMismatch)

	forged := NewCSRFManager("another")
	assert.ErrorIs(t, forged.VerifyToken(first, token), ErrCSRFTokenMismatch)
}

func TestSessionRenewDropsOldID(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore()
	sm := NewSessionManager(store, "ekohajj_session", time.Hour, false)

	sess := NewSession()
	sess.SetUser("siti")
	require.NoError(t, sm.Commit(ctx, httptest.NewRecorder(), sess))
	oldID := sess.ID

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "ekohajj_session", Value: oldID})
	loaded, err := sm.Load(ctx, req)
	require.NoError(t, err)
	sm.Renew(loaded)
	rr := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rr, loaded))

	_, err = store.Get(ctx, oldID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	raw, err := store.Get(ctx, loaded.ID)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"user":"siti"`)
	assert.Equal(t, loaded.ID, rr.Result().Cookies()[0].Value)
}
