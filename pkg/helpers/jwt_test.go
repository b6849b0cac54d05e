package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestManager() *JWTManager {
	return NewJWTManager(
		"access-secret", "refresh-secret", "register-secret", "reset-secret",
		time.Hour, 24*time.Hour, 24*time.Hour, 30*time.Minute,
	)
}

func TestSessionTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	access, exp, err := m.GenerateAccessToken("user-1", "sid-1")
	require.NoError(t, err)
	require.True(t, exp.After(time.Now()))

	claims, err := m.ParseAccessToken(access)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "sid-1", claims.SessionID)
}

func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	m := newTestManager()

	access, _, err := m.GenerateAccessToken("user-1", "sid-1")
	require.NoError(t, err)
	refresh, _, err := m.GenerateRefreshToken("user-1", "sid-1")
	require.NoError(t, err)

	_, err = m.ParseRefreshToken(access)
	require.Error(t, err, "access token must not verify as refresh token")
	_, err = m.ParseAccessToken(refresh)
	require.Error(t, err)
	_, err = m.ParseResetToken(access)
	require.Error(t, err)
}

func TestRegistrationTokenCarriesCandidate(t *testing.T) {
	m := newTestManager()

	token, _, err := m.GenerateRegistrationToken(RegistrationClaims{
		Name:        "Alice",
		Email:       "alice@example.com",
		Password:    "secret123",
		PhoneNumber: "+15550001111",
	})
	require.NoError(t, err)

	claims, err := m.ParseRegistrationToken(token)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", claims.Email)
	require.Equal(t, "secret123", claims.Password)
	require.Equal(t, "+15550001111", claims.PhoneNumber)
}

func TestExpiredTokenRejected(t *testing.T) {
	m := NewJWTManager(
		"access-secret", "refresh-secret", "register-secret", "reset-secret",
		-time.Minute, -time.Minute, -time.Minute, -time.Minute,
	)

	token, _, err := m.GenerateResetToken("alice@example.com")
	require.NoError(t, err)
	_, err = m.ParseResetToken(token)
	require.Error(t, err)
}

func TestResetTokenScopedToEmail(t *testing.T) {
	m := newTestManager()

	token, _, err := m.GenerateResetToken("alice@example.com")
	require.NoError(t, err)
	claims, err := m.ParseResetToken(token)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", claims.Email)
}
