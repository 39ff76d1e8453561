package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T) *JWTValidator {
	t.Helper()
	v, err := NewJWTValidator(JWTConfig{
		SecretKey: "test-secret",
		Issuer:    "coursehub-backend",
	})
	require.NoError(t, err)
	return v
}

func TestJWTValidator_RoundTrip(t *testing.T) {
	v := newTestValidator(t)

	token, err := v.IssueToken("user-123", time.Hour)
	require.NoError(t, err)

	claims, err := v.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestJWTValidator_RejectsExpired(t *testing.T) {
	v := newTestValidator(t)

	token, err := v.IssueToken("user-123", -time.Minute)
	require.NoError(t, err)

	_, err = v.Validate(token)
	require.Error(t, err)
}

func TestJWTValidator_RejectsWrongSecret(t *testing.T) {
	v := newTestValidator(t)

	other, err := NewJWTValidator(JWTConfig{SecretKey: "other-secret", Issuer: "coursehub-backend"})
	require.NoError(t, err)

	token, err := other.IssueToken("user-123", time.Hour)
	require.NoError(t, err)

	_, err = v.Validate(token)
	require.Error(t, err)
}

func TestJWTValidator_RejectsGarbage(t *testing.T) {
	v := newTestValidator(t)

	_, err := v.Validate("not.a.token")
	require.Error(t, err)
}

func TestNewJWTValidator_RequiresSecret(t *testing.T) {
	_, err := NewJWTValidator(JWTConfig{})
	require.Error(t, err)
}
