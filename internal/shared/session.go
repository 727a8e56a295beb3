package shared

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// FlashMessage represents a one-time notification stored in session.
type FlashMessage struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Flash kinds understood by the layout.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// ErrSessionNotFound is returned by a SessionStore for unknown ids.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists encoded session payloads.
type SessionStore interface {
	Get(ctx context.Context, id string) ([]byte, error)
	Set(ctx context.Context, id string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

// RedisSessionStore keeps sessions in Redis with a TTL.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore wraps a Redis client.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) key(id string) string {
	return "ekohajj:session:" + id
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	return data, err
}

func (s *RedisSessionStore) Set(ctx context.Context, id string, data []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(id), data, ttl).Err()
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

// MemorySessionStore keeps sessions in process memory. Used when Redis is disabled.
type MemorySessionStore struct {
	mu      sync.Mutex
	entries map[string]memorySession
	now     func() time.Time
}

type memorySession struct {
	data    []byte
	expires time.Time
}

// NewMemorySessionStore returns an empty in-process store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{entries: make(map[string]memorySession), now: time.Now}
}

func (s *MemorySessionStore) Get(_ context.Context, id string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !entry.expires.IsZero() && s.now().After(entry.expires) {
		delete(s.entries, id)
		return nil, ErrSessionNotFound
	}
	return entry.data, nil
}

func (s *MemorySessionStore) Set(_ context.Context, id string, data []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := memorySession{data: append([]byte(nil), data...)}
	if ttl > 0 {
		entry.expires = s.now().Add(ttl)
	}
	s.entries[id] = entry
	return nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}

// SessionManager loads sessions from a cookie and persists them in a
// SessionStore.
type SessionManager struct {
	store      SessionStore
	cookieName string
	ttl        time.Duration
	secure     bool
}

// NewSessionManager builds a manager. A nil store keeps sessions in memory.
func NewSessionManager(store SessionStore, cookieName string, ttl time.Duration, secure bool) *SessionManager {
	if store == nil {
		store = NewMemorySessionStore()
	}
	return &SessionManager{store: store, cookieName: cookieName, ttl: ttl, secure: secure}
}

// Session is the per-request view of a stored session.
type Session struct {
	ID    string
	state sessionState

	previousID string
	isNew      bool
	dirty      bool
	destroyed  bool
}

// sessionState is the JSON document kept in the store.
type sessionState struct {
	Values  map[string]string `json:"values"`
	User    string            `json:"user"`
	Flashes []FlashMessage    `json:"flashes,omitempty"`
}

// Load returns the session named by the request cookie. A missing, unknown,
// expired or undecodable session yields a fresh one under a new id.
func (sm *SessionManager) Load(ctx context.Context, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(sm.cookieName)
	if errors.Is(err, http.ErrNoCookie) || (err == nil && cookie.Value == "") {
		return newSession(), nil
	}
	if err != nil {
		return nil, err
	}
	raw, err := sm.store.Get(ctx, cookie.Value)
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return newSession(), nil
	case err != nil:
		return nil, fmt.Errorf("load session: %w", err)
	}
	var state sessionState
	if err := json.Unmarshal(raw, &state); err != nil {
		return newSession(), nil
	}
	if state.Values == nil {
		state.Values = make(map[string]string)
	}
	return &Session{ID: cookie.Value, state: state}, nil
}

// Commit saves a new or modified session and refreshes the cookie. A
// destroyed session is deleted and its cookie expired.
func (sm *SessionManager) Commit(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	if sess == nil {
		return nil
	}
	if sess.previousID != "" {
		if err := sm.store.Delete(ctx, sess.previousID); err != nil {
			return fmt.Errorf("drop renewed session: %w", err)
		}
		sess.previousID = ""
	}
	if sess.destroyed {
		if err := sm.store.Delete(ctx, sess.ID); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		http.SetCookie(w, sm.cookie("", -1))
		return nil
	}
	if sess.isNew || sess.dirty {
		raw, err := json.Marshal(sess.state)
		if err != nil {
			return err
		}
		if err := sm.store.Set(ctx, sess.ID, raw, sm.ttl); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		sess.isNew, sess.dirty = false, false
	}
	http.SetCookie(w, sm.cookie(sess.ID, int(sm.ttl.Seconds())))
	return nil
}

func (sm *SessionManager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     sm.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   sm.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Destroy marks sess for deletion on the next Commit.
func (sm *SessionManager) Destroy(sess *Session) {
	if sess != nil {
		sess.destroyed = true
	}
}

// Renew moves sess to a fresh id, keeping its data. The old id is deleted
// on Commit and the anti-forgery token is dropped since it is bound to the
// id.
func (sm *SessionManager) Renew(sess *Session) {
	if sess == nil {
		return
	}
	if !sess.isNew && sess.previousID == "" {
		sess.previousID = sess.ID
	}
	sess.ID = uuid.NewString()
	delete(sess.state.Values, CSRFSessionKey)
	sess.dirty = true
}

// NewSession returns an unsaved session with a fresh id.
func NewSession() *Session {
	return newSession()
}

func newSession() *Session {
	return &Session{
		ID:    uuid.NewString(),
		state: sessionState{Values: make(map[string]string)},
		isNew: true,
	}
}

// Set stores value under key.
func (s *Session) Set(key, value string) {
	if s.state.Values == nil {
		s.state.Values = make(map[string]string)
	}
	s.state.Values[key] = value
	s.dirty = true
}

// Get returns the value under key, or "".
func (s *Session) Get(key string) string {
	return s.state.Values[key]
}

// Delete removes key.
func (s *Session) Delete(key string) {
	if _, ok := s.state.Values[key]; ok {
		delete(s.state.Values, key)
		s.dirty = true
	}
}

// SetUser records the signed-in operator.
func (s *Session) SetUser(name string) {
	s.state.User = name
	s.dirty = true
}

// User returns the signed-in operator, or "".
func (s *Session) User() string {
	return s.state.User
}

// AddFlash queues msg for the next rendered page.
func (s *Session) AddFlash(msg FlashMessage) {
	s.state.Flashes = append(s.state.Flashes, msg)
	s.dirty = true
}

// PopFlash removes and returns the oldest queued message.
func (s *Session) PopFlash() *FlashMessage {
	if s == nil || len(s.state.Flashes) == 0 {
		return nil
	}
	msg := s.state.Flashes[0]
	s.state.Flashes = s.state.Flashes[1:]
	s.dirty = true
	return &msg
}
