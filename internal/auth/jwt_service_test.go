package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "unimarket/internal/errors"
	"unimarket/internal/model"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateAccessToken("alice", model.RoleUser, 15*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, model.RoleUser, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTService_ValidateToken_Failures(t *testing.T) {
	svc := NewJWTService("test-secret")

	valid, err := svc.GenerateAccessToken("alice", model.RoleUser, 15*time.Minute)
	require.NoError(t, err)

	expired, err := svc.GenerateAccessToken("alice", model.RoleUser, -time.Minute)
	require.NoError(t, err)

	otherKey, err := NewJWTService("another-secret").GenerateAccessToken("alice", model.RoleUser, 15*time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "expired token", token: expired},
		{name: "wrong signing key", token: otherKey},
		{name: "tampered payload", token: valid[:len(valid)-4] + "AAAA"},
		{name: "malformed token", token: "not.a.jwt"},
		{name: "empty token", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateToken(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
		})
	}
}

func TestJWTService_ExplicitTTL(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateAccessToken("bob", model.RoleAdmin, 30*time.Minute)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)

	remaining := time.Until(claims.ExpiresAt.Time)
	assert.Greater(t, remaining, 29*time.Minute)
	assert.LessOrEqual(t, remaining, 30*time.Minute)
}
