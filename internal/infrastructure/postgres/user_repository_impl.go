package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CamiloTello002/Talent-Trade/internal/domain/apperr"
	"github.com/CamiloTello002/Talent-Trade/internal/domain/entity"
	"github.com/CamiloTello002/Talent-Trade/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name, about_me, avatar_url, phone_number)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Password, u.Name, u.AboutMe, u.AvatarURL, u.PhoneNumber)

	return row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

const userColumns = `id, email, password_hash, name, about_me, avatar_url, phone_number, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.AboutMe,
		&u.AvatarURL, &u.PhoneNumber, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $1, about_me = $2, avatar_url = $3, phone_number = $4, updated_at = $5
		WHERE id = $6
	`, u.Name, u.AboutMe, u.AvatarURL, u.PhoneNumber, u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

func (r *UserRepository) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET password_hash = $1, updated_at = now() WHERE email = $2
	`, passwordHash, email)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

func (r *UserRepository) ProfileByID(ctx context.Context, id string) (*entity.Profile, error) {
	return r.profileWhere(ctx, `u.id = $1`, id)
}

func (r *UserRepository) ProfileByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	return r.profileWhere(ctx, `u.email = $1`, email)
}

func (r *UserRepository) profileWhere(ctx context.Context, cond string, arg any) (*entity.Profile, error) {
	p := &entity.Profile{}
	row := r.pool.QueryRow(ctx, `
		SELECT u.id, u.email, u.name, u.about_me, u.avatar_url, u.phone_number, u.created_at
		FROM users u WHERE `+cond, arg)
	if err := row.Scan(&p.ID, &p.Email, &p.Name, &p.AboutMe, &p.AvatarURL, &p.PhoneNumber, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	if err := r.loadRelations(ctx, []*entity.Profile{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// loadRelations resolves specialties, interests, ratings and trade ids for a
// batch of profiles with one query per relation.
func (r *UserRepository) loadRelations(ctx context.Context, profiles []*entity.Profile) error {
	if len(profiles) == 0 {
		return nil
	}
	ids := make([]string, 0, len(profiles))
	byID := make(map[string]*entity.Profile, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
		byID[p.ID] = p
	}

	rows, err := r.pool.Query(ctx, `
		SELECT us.user_id, us.category_id, us.specialty_id, c.name, s.name
		FROM user_specialties us
		JOIN categories c ON c.id = us.category_id
		JOIN specialties s ON s.id = us.specialty_id
		WHERE us.user_id = ANY($1)
		ORDER BY c.name, s.name
	`, ids)
	if err != nil {
		return err
	}
	for rows.Next() {
		var uid string
		var tv entity.TagView
		if err := rows.Scan(&uid, &tv.CategoryID, &tv.SpecialtyID, &tv.CategoryName, &tv.SpecialtyName); err != nil {
			rows.Close()
			return err
		}
		byID[uid].Specialties = append(byID[uid].Specialties, tv)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.pool.Query(ctx, `
		SELECT ui.user_id, ui.category_id, ui.specialty_id, c.name, s.name
		FROM user_interests ui
		JOIN categories c ON c.id = ui.category_id
		JOIN specialties s ON s.id = ui.specialty_id
		WHERE ui.user_id = ANY($1)
		ORDER BY c.name, s.name
	`, ids)
	if err != nil {
		return err
	}
	for rows.Next() {
		var uid string
		var tv entity.TagView
		if err := rows.Scan(&uid, &tv.CategoryID, &tv.SpecialtyID, &tv.CategoryName, &tv.SpecialtyName); err != nil {
			rows.Close()
			return err
		}
		byID[uid].Interests = append(byID[uid].Interests, tv)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.pool.Query(ctx, `
		SELECT ur.user_id, ur.id, ur.author_id, ur.trade_id, ur.comment, ur.rating, ur.created_at,
		       a.name, a.avatar_url
		FROM user_ratings ur
		JOIN users a ON a.id = ur.author_id
		WHERE ur.user_id = ANY($1)
		ORDER BY ur.created_at DESC
	`, ids)
	if err != nil {
		return err
	}
	for rows.Next() {
		var uid string
		var rv entity.RatingView
		if err := rows.Scan(&uid, &rv.ID, &rv.AuthorID, &rv.TradeID, &rv.Comment, &rv.Score,
			&rv.CreatedAt, &rv.AuthorName, &rv.AuthorAvatar); err != nil {
			rows.Close()
			return err
		}
		byID[uid].Ratings = append(byID[uid].Ratings, rv)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.pool.Query(ctx, `
		SELECT member_one, member_two, id FROM trades
		WHERE member_one = ANY($1) OR member_two = ANY($1)
		ORDER BY created_at DESC
	`, ids)
	if err != nil {
		return err
	}
	for rows.Next() {
		var m1, m2, tid string
		if err := rows.Scan(&m1, &m2, &tid); err != nil {
			rows.Close()
			return err
		}
		if p, ok := byID[m1]; ok {
			p.TradeIDs = append(p.TradeIDs, tid)
		}
		if p, ok := byID[m2]; ok {
			p.TradeIDs = append(p.TradeIDs, tid)
		}
	}
	rows.Close()
	return rows.Err()
}

func (r *UserRepository) Find(ctx context.Context, categoryID string, page, pageSize int) ([]entity.Profile, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	var (
		rows pgx.Rows
		err  error
	)
	if categoryID != "" {
		rows, err = r.pool.Query(ctx, `
			SELECT u.id, u.email, u.name, u.about_me, u.avatar_url, u.phone_number, u.created_at
			FROM users u
			WHERE EXISTS (
				SELECT 1 FROM user_specialties us
				WHERE us.user_id = u.id AND us.category_id = $1
			)
			ORDER BY u.created_at DESC
			LIMIT $2 OFFSET $3
		`, categoryID, pageSize, offset)
	} else {
		rows, err = r.pool.Query(ctx, `
			SELECT u.id, u.email, u.name, u.about_me, u.avatar_url, u.phone_number, u.created_at
			FROM users u
			ORDER BY u.created_at DESC
			LIMIT $1 OFFSET $2
		`, pageSize, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*entity.Profile
	for rows.Next() {
		p := &entity.Profile{}
		if err := rows.Scan(&p.ID, &p.Email, &p.Name, &p.AboutMe, &p.AvatarURL, &p.PhoneNumber, &p.CreatedAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadRelations(ctx, profiles); err != nil {
		return nil, err
	}

	out := make([]entity.Profile, len(profiles))
	for i, p := range profiles {
		out[i] = *p
	}
	return out, nil
}

func (r *UserRepository) IsContact(ctx context.Context, ownerID, contactID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM user_contacts WHERE user_id = $1 AND contact_id = $2
		)
	`, ownerID, contactID).Scan(&exists)
	return exists, err
}

func (r *UserRepository) AddSpecialties(ctx context.Context, userID string, pairs []entity.TagPair) error {
	return r.addTags(ctx, `user_specialties`, userID, pairs)
}

func (r *UserRepository) AddInterests(ctx context.Context, userID string, pairs []entity.TagPair) error {
	return r.addTags(ctx, `user_interests`, userID, pairs)
}

func (r *UserRepository) addTags(ctx context.Context, table, userID string, pairs []entity.TagPair) error {
	batch := &pgx.Batch{}
	for _, p := range pairs {
		batch.Queue(`
			INSERT INTO `+table+` (user_id, category_id, specialty_id)
			VALUES ($1, $2, $3)
			ON CONFLICT DO NOTHING
		`, userID, p.CategoryID, p.SpecialtyID)
	}
	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()
	for range pairs {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func (r *UserRepository) HasRatingForTrade(ctx context.Context, userID, tradeID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM user_ratings WHERE user_id = $1 AND trade_id = $2
		)
	`, userID, tradeID).Scan(&exists)
	return exists, err
}

// AddRatingAndMarkTrade persists the rating and the author's hasRated flag in
// one transaction. The trade row is locked and the duplicate guards re-checked
// inside the transaction, so two concurrent submissions for the same
// trade/member pair cannot both pass.
func (r *UserRepository) AddRatingAndMarkTrade(ctx context.Context, targetID string, rating entity.Rating) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var memberOne, memberTwo string
	var oneRated, twoRated bool
	var status string
	err = tx.QueryRow(ctx, `
		SELECT member_one, member_two, member_one_rated, member_two_rated, status
		FROM trades WHERE id = $1
		FOR UPDATE
	`, rating.TradeID).Scan(&memberOne, &memberTwo, &oneRated, &twoRated, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.BadRequest("trade not found")
		}
		return err
	}
	if status != entity.TradeFinished {
		return apperr.Authorization("trade is not finished")
	}

	var flagColumn string
	switch rating.AuthorID {
	case memberOne:
		if oneRated {
			return apperr.BadRequest("member already rated this trade")
		}
		flagColumn = "member_one_rated"
	case memberTwo:
		if twoRated {
			return apperr.BadRequest("member already rated this trade")
		}
		flagColumn = "member_two_rated"
	default:
		return apperr.BadRequest("author is not a member of this trade")
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO user_ratings (user_id, author_id, trade_id, comment, rating)
		VALUES ($1, $2, $3, $4, $5)
	`, targetID, rating.AuthorID, rating.TradeID, rating.Comment, rating.Score)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Authorization("user already rated for this trade")
		}
		return err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE trades SET `+flagColumn+` = TRUE, updated_at = now() WHERE id = $1
	`, rating.TradeID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *UserRepository) Suggestions(ctx context.Context, specialtyIDs []string, excludeID string, limit int) ([]entity.Profile, error) {
	if len(specialtyIDs) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT u.id, u.email, u.name, u.about_me, u.avatar_url, u.phone_number, u.created_at
		FROM users u
		JOIN user_specialties us ON us.user_id = u.id
		WHERE us.specialty_id = ANY($1) AND u.id <> $2
		LIMIT $3
	`, specialtyIDs, excludeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*entity.Profile
	for rows.Next() {
		p := &entity.Profile{}
		if err := rows.Scan(&p.ID, &p.Email, &p.Name, &p.AboutMe, &p.AvatarURL, &p.PhoneNumber, &p.CreatedAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadRelations(ctx, profiles); err != nil {
		return nil, err
	}
	out := make([]entity.Profile, len(profiles))
	for i, p := range profiles {
		out[i] = *p
	}
	return out, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
