package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/zainulsyai/eko-hajj/internal/shared"
)

func TestAuthenticateTrimsUsername(t *testing.T) {
	user, err := NewService().Authenticate(context.Background(), "  siti ", "x")
	require.NoError(t, err)
	assert.Equal(t, "siti", user.Username)

	_, err = NewService().Authenticate(context.Background(), "   ", "x")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateWithPasswordHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("labbaik"), bcrypt.MinCost)
	require.NoError(t, err)
	svc := NewService(WithPasswordHash(string(hash)))

	_, err = svc.Authenticate(context.Background(), "siti", "salah")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)

	user, err := svc.Authenticate(context.Background(), "siti", "labbaik")
	require.NoError(t, err)
	assert.Equal(t, "siti", user.Username)

	_, err = NewService(WithPasswordHash("not-a-hash")).Authenticate(context.Background(), "siti", "labbaik")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, shared.ErrInvalidCredentials)
}
