package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/CamiloTello002/Talent-Trade/config"
	"github.com/CamiloTello002/Talent-Trade/internal/domain/apperr"
	"github.com/CamiloTello002/Talent-Trade/internal/domain/entity"
	repo "github.com/CamiloTello002/Talent-Trade/internal/domain/repository"
	"github.com/CamiloTello002/Talent-Trade/pkg/helpers"
	"github.com/CamiloTello002/Talent-Trade/pkg/mailer"
	tpl "github.com/CamiloTello002/Talent-Trade/pkg/mailer/templates"
)

// PageSize is the fixed page size for user listings.
const PageSize = 10

const suggestionLimit = 10

// EmailPublisher enqueues outbound email jobs. *helpers.RabbitPublisher
// satisfies it; tests swap in a recorder.
type EmailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// UserService orchestrates registration, profile queries, ratings, avatars
// and suggestions.
type UserService struct {
	Users        repo.UserRepository
	Trades       repo.TradeRepository
	JWT          *helpers.JWTManager
	Mail         EmailPublisher
	GCS          *storage.Client
	GCSBucket    string
	Redis        *redis.Client
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESUsersIndex string
	Cfg          *config.Config
}

func NewUserService(users repo.UserRepository, trades repo.TradeRepository, jwt *helpers.JWTManager,
	mail EmailPublisher, gcs *storage.Client, gcsBucket string, rdb *redis.Client,
	logger *logrus.Logger, es *elasticsearch.Client, esUsersIndex string, cfg *config.Config) *UserService {
	return &UserService{
		Users:        users,
		Trades:       trades,
		JWT:          jwt,
		Mail:         mail,
		GCS:          gcs,
		GCSBucket:    gcsBucket,
		Redis:        rdb,
		Logger:       logger,
		ES:           es,
		ESUsersIndex: esUsersIndex,
		Cfg:          cfg,
	}
}

// RegisterInput is the candidate registration held inside the confirmation
// token until the email is verified.
type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	AboutMe     string
	PhoneNumber string
}

// RequestRegistration rejects already-registered emails, then mails a
// confirmation link embedding the candidate registration. Nothing is
// persisted until the link is followed.
func (s *UserService) RequestRegistration(ctx context.Context, in RegisterInput) error {
	if _, err := s.Users.GetByEmail(ctx, in.Email); err == nil {
		return apperr.Authorization("email is already registered")
	} else if !apperr.Is(err, apperr.KindNotFound) {
		return err
	}

	token, exp, err := s.JWT.GenerateRegistrationToken(helpers.RegistrationClaims{
		Name:        in.Name,
		Email:       in.Email,
		Password:    in.Password,
		AboutMe:     in.AboutMe,
		PhoneNumber: in.PhoneNumber,
	})
	if err != nil {
		return err
	}

	s.enqueueEmail(ctx, mailer.EmailJob{
		To:       in.Email,
		Template: tpl.ConfirmRegistration,
		Data: tpl.EmailData{
			Name:        in.Name,
			Email:       in.Email,
			CompanyName: s.Cfg.CompanyName,
			LogoURL:     s.Cfg.LogoURL,
			SupportURL:  s.Cfg.SupportURL,
			ActionURL:   s.Cfg.ConfirmEmailURL + "?token=" + token,
			ExpiresAt:   exp,
		},
	})
	return nil
}

// ConfirmRegistration decodes the registration token, re-checks email
// uniqueness (a resent or replayed token must not create a duplicate),
// hashes the password and persists the user. The assembled profile is
// returned for the session handler to wrap.
func (s *UserService) ConfirmRegistration(ctx context.Context, token string) (*entity.Profile, error) {
	claims, err := s.JWT.ParseRegistrationToken(token)
	if err != nil {
		return nil, apperr.Authentication("invalid or expired registration token")
	}

	if _, err := s.Users.GetByEmail(ctx, claims.Email); err == nil {
		return nil, apperr.Authorization("email is already registered")
	} else if !apperr.Is(err, apperr.KindNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(claims.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:       claims.Email,
		Password:    hash,
		Name:        claims.Name,
		AboutMe:     claims.AboutMe,
		PhoneNumber: claims.PhoneNumber,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.indexUser(ctx, u)

	return s.Users.ProfileByID(ctx, u.ID)
}

func resetUsedKey(email string) string { return "pwd:reset:used:" + email }

// RequestPasswordReset mails a signed reset link scoped to the email.
// Unknown emails fail so the caller learns nothing was sent.
func (s *UserService) RequestPasswordReset(ctx context.Context, email, ip, userAgent string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return apperr.Authorization("email is not registered")
		}
		return err
	}

	token, exp, err := s.JWT.GenerateResetToken(u.Email)
	if err != nil {
		return err
	}
	// A fresh request re-arms the token even if a previous one was spent.
	if s.Redis != nil {
		_ = s.Redis.Del(ctx, resetUsedKey(u.Email)).Err()
	}

	s.enqueueEmail(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: tpl.ResetPassword,
		Data: tpl.EmailData{
			Name:        u.Name,
			Email:       u.Email,
			CompanyName: s.Cfg.CompanyName,
			LogoURL:     s.Cfg.LogoURL,
			SupportURL:  s.Cfg.SupportURL,
			ActionURL:   s.Cfg.ResetPasswordURL + "?token=" + token,
			ExpiresAt:   exp,
			IP:          ip,
			UserAgent:   userAgent,
		},
	})
	return nil
}

// UpdatePassword applies a new password for the email carried by the reset
// token. The token is single-use: a Redis marker rejects replays inside the
// signing window.
func (s *UserService) UpdatePassword(ctx context.Context, token, password string) error {
	claims, err := s.JWT.ParseResetToken(token)
	if err != nil {
		return apperr.Authentication("invalid or expired reset token")
	}
	if s.Redis != nil {
		if v, _ := s.Redis.Get(ctx, resetUsedKey(claims.Email)).Result(); v == "1" {
			return apperr.Authentication("reset token already used")
		}
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.Users.UpdatePasswordByEmail(ctx, claims.Email, hash); err != nil {
		return err
	}
	if s.Redis != nil {
		_ = s.Redis.Set(ctx, resetUsedKey(claims.Email), "1", s.JWT.ResetTTL).Err()
	}
	return nil
}

// Find lists profiles page by page (fixed size 10); categoryID filters to
// users holding a specialty in that category.
func (s *UserService) Find(ctx context.Context, categoryID string, page int) ([]entity.Profile, error) {
	if page < 1 {
		page = 1
	}
	return s.Users.Find(ctx, categoryID, page, PageSize)
}

// FindByID fetches one profile and applies the visibility rule: phone number
// and trade list are only included when the viewer is the owner or one of
// the owner's contacts.
func (s *UserService) FindByID(ctx context.Context, viewerID, targetID string) (*entity.Profile, error) {
	p, err := s.Users.ProfileByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	return s.applyVisibility(ctx, viewerID, p)
}

// FindByEmail is FindByID keyed by email.
func (s *UserService) FindByEmail(ctx context.Context, viewerID, email string) (*entity.Profile, error) {
	p, err := s.Users.ProfileByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.applyVisibility(ctx, viewerID, p)
}

func (s *UserService) applyVisibility(ctx context.Context, viewerID string, p *entity.Profile) (*entity.Profile, error) {
	if viewerID == p.ID {
		return p, nil
	}
	if viewerID != "" {
		ok, err := s.Users.IsContact(ctx, p.ID, viewerID)
		if err != nil {
			return nil, err
		}
		if ok {
			return p, nil
		}
	}
	p.PhoneNumber = ""
	p.TradeIDs = nil
	return p, nil
}

type UpdateProfileInput struct {
	Name        string
	AboutMe     string
	PhoneNumber string
}

func (s *UserService) Update(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.AboutMe != "" {
		u.AboutMe = in.AboutMe
	}
	if in.PhoneNumber != "" {
		u.PhoneNumber = in.PhoneNumber
	}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	s.indexUser(ctx, u)
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, userID string) error {
	if err := s.Users.Delete(ctx, userID); err != nil {
		return err
	}
	s.deleteIndexed(ctx, userID)
	return nil
}

// AddSpecialties tags the profile; the pairs were validated against the
// category catalog by the verification middleware.
func (s *UserService) AddSpecialties(ctx context.Context, userID string, pairs []entity.TagPair) (*entity.Profile, error) {
	if err := s.Users.AddSpecialties(ctx, userID, pairs); err != nil {
		return nil, err
	}
	return s.Users.ProfileByID(ctx, userID)
}

func (s *UserService) AddInterests(ctx context.Context, userID string, pairs []entity.TagPair) (*entity.Profile, error) {
	if err := s.Users.AddInterests(ctx, userID, pairs); err != nil {
		return nil, err
	}
	return s.Users.ProfileByID(ctx, userID)
}

// RatingInput is one review submission.
type RatingInput struct {
	TradeID string
	Comment string
	Rating  int
}

// UpdateRating runs the rating workflow. Checks run in order: target exists,
// trade exists for the author, no duplicate rating on the target, trade is
// finished, author is an un-rated member. Persistence of the rating and the
// hasRated flag is one transaction in the repository.
func (s *UserService) UpdateRating(ctx context.Context, authorID, targetID string, in RatingInput) (*entity.Profile, error) {
	target, err := s.Users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	trade, err := s.Trades.GetForMember(ctx, in.TradeID, authorID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.BadRequest("trade not found")
		}
		return nil, err
	}

	already, err := s.Users.HasRatingForTrade(ctx, target.ID, trade.ID)
	if err != nil {
		return nil, err
	}
	if already {
		return nil, apperr.Authorization("user already rated for this trade")
	}

	if trade.Status != entity.TradeFinished {
		return nil, apperr.Authorization("trade is not finished")
	}

	if !trade.IsMember(authorID) || trade.HasRated(authorID) {
		return nil, apperr.BadRequest("member already rated this trade")
	}

	err = s.Users.AddRatingAndMarkTrade(ctx, target.ID, entity.Rating{
		AuthorID: authorID,
		TradeID:  trade.ID,
		Comment:  in.Comment,
		Score:    in.Rating,
	})
	if err != nil {
		return nil, err
	}

	return s.Users.ProfileByID(ctx, target.ID)
}

// UpdateAvatar streams the image to GCS under the user's stable object path
// (re-uploads overwrite) and stores the returned URL.
func (s *UserService) UpdateAvatar(ctx context.Context, userID string, r io.Reader, contentType string) (string, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, helpers.AvatarObjectPath(u.ID), contentType, r)
	if err != nil {
		return "", err
	}
	u.AvatarURL = url
	if err := s.Users.Update(ctx, u); err != nil {
		return "", err
	}
	s.indexUser(ctx, u)
	return url, nil
}

// GetSuggestions returns users whose specialties match the requester's
// interests or own specialties. Database-level match, no scoring.
func (s *UserService) GetSuggestions(ctx context.Context, userID string) ([]entity.Profile, error) {
	p, err := s.Users.ProfileByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var specialtyIDs []string
	for _, tv := range p.Interests {
		if _, ok := seen[tv.SpecialtyID]; !ok {
			seen[tv.SpecialtyID] = struct{}{}
			specialtyIDs = append(specialtyIDs, tv.SpecialtyID)
		}
	}
	for _, tv := range p.Specialties {
		if _, ok := seen[tv.SpecialtyID]; !ok {
			seen[tv.SpecialtyID] = struct{}{}
			specialtyIDs = append(specialtyIDs, tv.SpecialtyID)
		}
	}

	return s.Users.Suggestions(ctx, specialtyIDs, userID, suggestionLimit)
}

func (s *UserService) enqueueEmail(ctx context.Context, job mailer.EmailJob) {
	if s.Mail == nil || (s.Cfg != nil && !s.Cfg.MailSendEnabled) {
		return
	}
	// Fire-and-forget: delivery failures are the worker's problem, not the
	// request's.
	if err := s.Mail.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("to", job.To).Warn("failed to enqueue email job")
	}
}

func (s *UserService) indexUser(ctx context.Context, u *entity.User) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return
	}
	doc := map[string]any{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"about_me":   u.AboutMe,
		"avatar_url": u.AvatarURL,
		"updated_at": u.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
}

func (s *UserService) deleteIndexed(ctx context.Context, userID string) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESUsersIndex, DocumentID: userID}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search performs a multi_match search on name, email and about_me.
func (s *UserService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = PageSize
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "email", "about_me"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESUsersIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
