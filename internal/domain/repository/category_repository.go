package repository

import (
	"context"

	"github.com/CamiloTello002/Talent-Trade/internal/domain/entity"
)

// CategoryRepository resolves the reference entities used to tag profiles.
type CategoryRepository interface {
	List(ctx context.Context) ([]entity.Category, error)
	ListSpecialties(ctx context.Context, categoryID string) ([]entity.Specialty, error)

	// PairExists reports whether the specialty exists and belongs to the
	// category. Backs the tag-verification middleware.
	PairExists(ctx context.Context, categoryID, specialtyID string) (bool, error)
}
