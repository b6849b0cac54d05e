package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/CamiloTello002/Talent-Trade/internal/domain/apperr"
	"github.com/CamiloTello002/Talent-Trade/internal/domain/entity"
	repo "github.com/CamiloTello002/Talent-Trade/internal/domain/repository"
)

// TradeService manages the trade lifecycle between two members.
type TradeService struct {
	Trades repo.TradeRepository
	Users  repo.UserRepository
	Logger *logrus.Logger
}

func NewTradeService(trades repo.TradeRepository, users repo.UserRepository, logger *logrus.Logger) *TradeService {
	return &TradeService{Trades: trades, Users: users, Logger: logger}
}

// Open creates an IN_PROGRESS trade between the actor and another member.
func (s *TradeService) Open(ctx context.Context, actorID, otherID string) (*entity.Trade, error) {
	if actorID == otherID {
		return nil, apperr.BadRequest("cannot open a trade with yourself")
	}
	if _, err := s.Users.GetByID(ctx, otherID); err != nil {
		return nil, err
	}
	t := &entity.Trade{
		MemberOne: actorID,
		MemberTwo: otherID,
		Status:    entity.TradeInProgress,
	}
	if err := s.Trades.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ListForMember returns the trades the user participates in.
func (s *TradeService) ListForMember(ctx context.Context, userID string) ([]entity.Trade, error) {
	return s.Trades.ListForMember(ctx, userID)
}

// Finish moves an IN_PROGRESS trade to FINISHED. Only a member may finish
// the trade, and a finished trade stays finished.
func (s *TradeService) Finish(ctx context.Context, tradeID, actorID string) (*entity.Trade, error) {
	t, err := s.Trades.GetForMember(ctx, tradeID, actorID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.BadRequest("trade not found")
		}
		return nil, err
	}
	if t.Status == entity.TradeFinished {
		return nil, apperr.Authorization("trade is already finished")
	}
	if err := s.Trades.UpdateStatus(ctx, t.ID, entity.TradeFinished); err != nil {
		return nil, err
	}
	t.Status = entity.TradeFinished
	return t, nil
}
