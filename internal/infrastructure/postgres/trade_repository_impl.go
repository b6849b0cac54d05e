package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CamiloTello002/Talent-Trade/internal/domain/apperr"
	"github.com/CamiloTello002/Talent-Trade/internal/domain/entity"
	"github.com/CamiloTello002/Talent-Trade/internal/domain/repository"
)

type TradeRepository struct {
	pool *pgxpool.Pool
}

func NewTradeRepository(pool *pgxpool.Pool) *TradeRepository {
	return &TradeRepository{pool: pool}
}

const tradeColumns = `id, member_one, member_two, member_one_rated, member_two_rated, status, created_at, updated_at`

func scanTrade(row pgx.Row) (*entity.Trade, error) {
	t := &entity.Trade{}
	if err := row.Scan(&t.ID, &t.MemberOne, &t.MemberTwo, &t.MemberOneRated,
		&t.MemberTwoRated, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("trade not found")
		}
		return nil, err
	}
	return t, nil
}

func (r *TradeRepository) Create(ctx context.Context, t *entity.Trade) error {
	if t.Status == "" {
		t.Status = entity.TradeInProgress
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO trades (member_one, member_two, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, t.MemberOne, t.MemberTwo, t.Status)
	return row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TradeRepository) GetByID(ctx context.Context, id string) (*entity.Trade, error) {
	return scanTrade(r.pool.QueryRow(ctx, `SELECT `+tradeColumns+` FROM trades WHERE id = $1`, id))
}

func (r *TradeRepository) GetForMember(ctx context.Context, id, userID string) (*entity.Trade, error) {
	return scanTrade(r.pool.QueryRow(ctx, `
		SELECT `+tradeColumns+` FROM trades
		WHERE id = $1 AND (member_one = $2 OR member_two = $2)
	`, id, userID))
}

func (r *TradeRepository) ListForMember(ctx context.Context, userID string) ([]entity.Trade, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+tradeColumns+` FROM trades
		WHERE member_one = $1 OR member_two = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trades []entity.Trade
	for rows.Next() {
		t := entity.Trade{}
		if err := rows.Scan(&t.ID, &t.MemberOne, &t.MemberTwo, &t.MemberOneRated,
			&t.MemberTwoRated, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

func (r *TradeRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE trades SET status = $1, updated_at = now() WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("trade not found")
	}
	return nil
}

var _ repository.TradeRepository = (*TradeRepository)(nil)
