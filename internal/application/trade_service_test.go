package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CamiloTello002/Talent-Trade/internal/domain/apperr"
	"github.com/CamiloTello002/Talent-Trade/internal/domain/entity"
)

func newTestTradeService() (*TradeService, *memUserRepo, *memTradeRepo) {
	trades := newMemTradeRepo()
	users := newMemUserRepo(trades)
	return NewTradeService(trades, users, nil), users, trades
}

func TestOpenTrade(t *testing.T) {
	svc, users, _ := newTestTradeService()
	ctx := context.Background()
	a := mustCreateUser(t, users, "a@example.com", "A")
	b := mustCreateUser(t, users, "b@example.com", "B")

	tr, err := svc.Open(ctx, a.ID, b.ID)
	require.NoError(t, err)
	require.NotEmpty(t, tr.ID)
	require.Equal(t, a.ID, tr.MemberOne)
	require.Equal(t, b.ID, tr.MemberTwo)
	require.Equal(t, entity.TradeInProgress, tr.Status)
	require.False(t, tr.MemberOneRated)
	require.False(t, tr.MemberTwoRated)
}

func TestOpenTradeWithSelf(t *testing.T) {
	svc, users, _ := newTestTradeService()
	a := mustCreateUser(t, users, "a@example.com", "A")

	_, err := svc.Open(context.Background(), a.ID, a.ID)
	require.True(t, apperr.Is(err, apperr.KindBadRequest), "got %v", err)
}

func TestOpenTradeUnknownMember(t *testing.T) {
	svc, users, _ := newTestTradeService()
	a := mustCreateUser(t, users, "a@example.com", "A")

	_, err := svc.Open(context.Background(), a.ID, "ghost")
	require.True(t, apperr.Is(err, apperr.KindNotFound), "got %v", err)
}

func TestListForMember(t *testing.T) {
	svc, users, _ := newTestTradeService()
	ctx := context.Background()
	a := mustCreateUser(t, users, "a@example.com", "A")
	b := mustCreateUser(t, users, "b@example.com", "B")
	c := mustCreateUser(t, users, "c@example.com", "C")

	_, err := svc.Open(ctx, a.ID, b.ID)
	require.NoError(t, err)
	_, err = svc.Open(ctx, b.ID, c.ID)
	require.NoError(t, err)

	got, err := svc.ListForMember(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = svc.ListForMember(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestFinishTrade(t *testing.T) {
	svc, users, trades := newTestTradeService()
	ctx := context.Background()
	a := mustCreateUser(t, users, "a@example.com", "A")
	b := mustCreateUser(t, users, "b@example.com", "B")
	outsider := mustCreateUser(t, users, "x@example.com", "X")

	tr, err := svc.Open(ctx, a.ID, b.ID)
	require.NoError(t, err)

	_, err = svc.Finish(ctx, tr.ID, outsider.ID)
	require.True(t, apperr.Is(err, apperr.KindBadRequest), "non-members cannot finish, got %v", err)

	got, err := svc.Finish(ctx, tr.ID, b.ID)
	require.NoError(t, err)
	require.Equal(t, entity.TradeFinished, got.Status)

	stored, err := trades.GetByID(ctx, tr.ID)
	require.NoError(t, err)
	require.Equal(t, entity.TradeFinished, stored.Status)

	// Finished trades stay finished.
	_, err = svc.Finish(ctx, tr.ID, a.ID)
	require.True(t, apperr.Is(err, apperr.KindAuthorization), "got %v", err)
}
