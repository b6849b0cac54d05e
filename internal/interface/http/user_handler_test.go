package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	userapp "github.com/CamiloTello002/Talent-Trade/internal/application"
	"github.com/CamiloTello002/Talent-Trade/internal/domain/apperr"
	"github.com/CamiloTello002/Talent-Trade/internal/domain/entity"
)

// profileRepo serves canned profiles. Only the read paths behind the
// details handlers are implemented; everything else is unreachable here.
type profileRepo struct {
	byID    map[string]*entity.Profile
	byEmail map[string]*entity.Profile
}

func (r *profileRepo) ProfileByID(_ context.Context, id string) (*entity.Profile, error) {
	if p, ok := r.byID[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, apperr.NotFound("user not found")
}

func (r *profileRepo) ProfileByEmail(_ context.Context, email string) (*entity.Profile, error) {
	if p, ok := r.byEmail[email]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, apperr.NotFound("user not found")
}

func (r *profileRepo) IsContact(context.Context, string, string) (bool, error) { return false, nil }

func (r *profileRepo) Create(context.Context, *entity.User) error { return nil }
func (r *profileRepo) GetByID(context.Context, string) (*entity.User, error) {
	return nil, apperr.NotFound("user not found")
}
func (r *profileRepo) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, apperr.NotFound("user not found")
}
func (r *profileRepo) Update(context.Context, *entity.User) error                  { return nil }
func (r *profileRepo) UpdatePasswordByEmail(context.Context, string, string) error { return nil }
func (r *profileRepo) Delete(context.Context, string) error                        { return nil }
func (r *profileRepo) Find(context.Context, string, int, int) ([]entity.Profile, error) {
	return nil, nil
}
func (r *profileRepo) AddSpecialties(context.Context, string, []entity.TagPair) error { return nil }
func (r *profileRepo) AddInterests(context.Context, string, []entity.TagPair) error   { return nil }
func (r *profileRepo) HasRatingForTrade(context.Context, string, string) (bool, error) {
	return false, nil
}
func (r *profileRepo) AddRatingAndMarkTrade(context.Context, string, entity.Rating) error {
	return nil
}
func (r *profileRepo) Suggestions(context.Context, []string, string, int) ([]entity.Profile, error) {
	return nil, nil
}

type profileBody struct {
	Success bool `json:"success"`
	Data    struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		PhoneNumber *string `json:"phone_number"`
		Ratings     []struct {
			ID         string `json:"id"`
			AuthorID   string `json:"author_id"`
			AuthorName string `json:"author_name"`
			TradeID    string `json:"trade_id"`
			Comment    string `json:"comment"`
			Rating     int    `json:"rating"`
		} `json:"ratings"`
		TradeIDs []string `json:"trade_ids"`
	} `json:"data"`
}

func newDetailsRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rated := &entity.Profile{
		ID:          "user-1",
		Email:       "alice@example.com",
		Name:        "Alice",
		PhoneNumber: "+15550001111",
		Ratings: []entity.RatingView{
			{
				Rating: entity.Rating{
					ID:        "rating-1",
					AuthorID:  "user-2",
					TradeID:   "trade-1",
					Comment:   "great trade",
					Score:     5,
					CreatedAt: time.Now(),
				},
				AuthorName:   "Bob",
				AuthorAvatar: "https://cdn.example.com/bob.png",
			},
		},
		TradeIDs: []string{"trade-1"},
	}
	repo := &profileRepo{
		byID:    map[string]*entity.Profile{rated.ID: rated},
		byEmail: map[string]*entity.Profile{rated.Email: rated},
	}
	svc := userapp.NewUserService(repo, nil, nil, nil, nil, "", nil, nil, nil, "", nil)
	h := NewUserHandler(svc, nil, nil, "localhost", false)

	r := gin.New()
	r.GET("/api/user/details/:userId", h.Details)
	r.GET("/api/user/email/:email", h.DetailsByEmail)
	return r
}

func TestDetailsRendersRatings(t *testing.T) {
	r := newDetailsRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/user/details/user-1", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body profileBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.Equal(t, "user-1", body.Data.ID)
	require.Len(t, body.Data.Ratings, 1)

	got := body.Data.Ratings[0]
	require.Equal(t, "rating-1", got.ID)
	require.Equal(t, "user-2", got.AuthorID)
	require.Equal(t, "Bob", got.AuthorName)
	require.Equal(t, "trade-1", got.TradeID)
	require.Equal(t, "great trade", got.Comment)
	require.Equal(t, 5, got.Rating)

	// Anonymous viewer: no phone, no trade list.
	require.Nil(t, body.Data.PhoneNumber)
	require.Empty(t, body.Data.TradeIDs)
}

func TestDetailsByEmail(t *testing.T) {
	r := newDetailsRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/user/email/alice@example.com", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body profileBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "user-1", body.Data.ID)
	require.Len(t, body.Data.Ratings, 1)
	require.Equal(t, 5, body.Data.Ratings[0].Rating)
}

func TestDetailsUnknownUser(t *testing.T) {
	r := newDetailsRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/user/details/missing", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}
