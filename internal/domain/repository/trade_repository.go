package repository

import (
	"context"

	"github.com/CamiloTello002/Talent-Trade/internal/domain/entity"
)

// TradeRepository defines trade persistence.
type TradeRepository interface {
	Create(ctx context.Context, t *entity.Trade) error
	GetByID(ctx context.Context, id string) (*entity.Trade, error)

	// GetForMember returns the trade only when userID is one of its two
	// members; absent or foreign trades both come back as not found.
	GetForMember(ctx context.Context, id, userID string) (*entity.Trade, error)

	ListForMember(ctx context.Context, userID string) ([]entity.Trade, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
