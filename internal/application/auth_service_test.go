package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CamiloTello002/Talent-Trade/internal/domain/apperr"
	"github.com/CamiloTello002/Talent-Trade/internal/domain/entity"
	"github.com/CamiloTello002/Talent-Trade/pkg/helpers"
)

func newTestAuthService(t *testing.T) (*AuthService, *entity.User) {
	t.Helper()
	users := newMemUserRepo(newMemTradeRepo())
	hash, err := helpers.HashPassword("secret123")
	require.NoError(t, err)
	u := &entity.User{Email: "login@example.com", Password: hash, Name: "Login"}
	require.NoError(t, users.Create(context.Background(), u))
	return NewAuthService(users, testJWT(), nil, nil), u
}

func TestLogin(t *testing.T) {
	svc, u := newTestAuthService(t)
	ctx := context.Background()

	res, pair, err := svc.Login(ctx, u.Email, "secret123")
	require.NoError(t, err)
	require.Equal(t, u.ID, res.UserID)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.True(t, pair.RefreshTokenExpiry.After(pair.AccessTokenExpiry))

	claims, err := svc.JWT.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, u.ID, claims.UserID)
	require.NotEmpty(t, claims.SessionID)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, u := newTestAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Login(ctx, u.Email, "wrong-password")
	require.True(t, apperr.Is(err, apperr.KindAuthentication), "got %v", err)

	_, _, err = svc.Login(ctx, "nobody@example.com", "secret123")
	require.True(t, apperr.Is(err, apperr.KindAuthentication), "got %v", err)
}

func TestRefreshRotatesSession(t *testing.T) {
	svc, u := newTestAuthService(t)
	ctx := context.Background()

	_, pair, err := svc.Login(ctx, u.Email, "secret123")
	require.NoError(t, err)
	old, err := svc.JWT.ParseRefreshToken(pair.RefreshToken)
	require.NoError(t, err)

	rotated, userID, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, u.ID, userID)

	fresh, err := svc.JWT.ParseRefreshToken(rotated.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, old.SessionID, fresh.SessionID)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc, _ := newTestAuthService(t)
	_, _, err := svc.Refresh(context.Background(), "not-a-token")
	require.True(t, apperr.Is(err, apperr.KindAuthentication), "got %v", err)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, u := newTestAuthService(t)
	ctx := context.Background()

	_, pair, err := svc.Login(ctx, u.Email, "secret123")
	require.NoError(t, err)

	// Access and refresh tokens are signed with different secrets.
	_, _, err = svc.Refresh(ctx, pair.AccessToken)
	require.True(t, apperr.Is(err, apperr.KindAuthentication), "got %v", err)
}
