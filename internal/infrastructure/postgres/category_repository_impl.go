package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CamiloTello002/Talent-Trade/internal/domain/entity"
	"github.com/CamiloTello002/Talent-Trade/internal/domain/repository"
)

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func (r *CategoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []entity.Category
	for rows.Next() {
		c := entity.Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *CategoryRepository) ListSpecialties(ctx context.Context, categoryID string) ([]entity.Specialty, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, category_id, name, created_at FROM specialties
		WHERE category_id = $1 ORDER BY name
	`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var specs []entity.Specialty
	for rows.Next() {
		s := entity.Specialty{}
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name, &s.CreatedAt); err != nil {
			return nil, err
		}
		specs = append(specs, s)
	}
	return specs, rows.Err()
}

func (r *CategoryRepository) PairExists(ctx context.Context, categoryID, specialtyID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM specialties WHERE id = $1 AND category_id = $2
		)
	`, specialtyID, categoryID).Scan(&exists)
	return exists, err
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)
