package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/zainulsyai/eko-hajj/internal/shared"
)

// Service wraps the sign-in rules. There is no account store: any non-empty
// username and password pair is accepted unless a shared password hash is
// configured, in which case the password must match it.
type Service struct {
	now          func() time.Time
	passwordHash []byte
}

// Option configures a Service.
type Option func(*Service)

// WithPasswordHash requires every sign-in to match the bcrypt hash.
func WithPasswordHash(hash string) Option {
	return func(s *Service) {
		if hash != "" {
			s.passwordHash = []byte(hash)
		}
	}
}

// NewService constructs a new Service.
func NewService(opts ...Option) *Service {
	s := &Service{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Authenticate validates the supplied credentials.
func (s *Service) Authenticate(_ context.Context, username, password string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, shared.ErrInvalidCredentials
	}
	if len(s.passwordHash) > 0 {
		err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, shared.ErrInvalidCredentials
		}
		if err != nil {
			return nil, fmt.Errorf("compare password: %w", err)
		}
	}
	return &User{Username: username, SignedAt: s.now()}, nil
}
