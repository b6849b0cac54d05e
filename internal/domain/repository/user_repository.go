package repository

import (
	"context"

	"github.com/CamiloTello002/Talent-Trade/internal/domain/entity"
)

// UserRepository defines user persistence. Profile reads return assembled
// read models: references (specialties, interests, rating authors) are
// resolved with explicit joins instead of an ORM population graph.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error
	Delete(ctx context.Context, id string) error

	// ProfileByID resolves the full read model for one user.
	ProfileByID(ctx context.Context, id string) (*entity.Profile, error)
	ProfileByEmail(ctx context.Context, email string) (*entity.Profile, error)

	// Find lists profiles page by page; categoryID, when non-empty, keeps
	// only users with a specialty in that category.
	Find(ctx context.Context, categoryID string, page, pageSize int) ([]entity.Profile, error)

	// IsContact reports whether contactID appears in ownerID's contact list.
	IsContact(ctx context.Context, ownerID, contactID string) (bool, error)

	AddSpecialties(ctx context.Context, userID string, pairs []entity.TagPair) error
	AddInterests(ctx context.Context, userID string, pairs []entity.TagPair) error

	// HasRatingForTrade reports whether the target user already holds a
	// rating for the given trade.
	HasRatingForTrade(ctx context.Context, userID, tradeID string) (bool, error)

	// AddRatingAndMarkTrade appends the rating to the target user and sets
	// the author's hasRated flag on the trade in a single transaction.
	AddRatingAndMarkTrade(ctx context.Context, targetID string, r entity.Rating) error

	// Suggestions returns users whose specialties match any of the given
	// specialty ids, excluding excludeID, capped at limit.
	Suggestions(ctx context.Context, specialtyIDs []string, excludeID string, limit int) ([]entity.Profile, error)
}
