package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/CamiloTello002/Talent-Trade/internal/application"
	"github.com/CamiloTello002/Talent-Trade/internal/domain/entity"
	"github.com/CamiloTello002/Talent-Trade/internal/interface/middleware"
	"github.com/CamiloTello002/Talent-Trade/pkg/helpers"
	"github.com/CamiloTello002/Talent-Trade/pkg/response"
	"github.com/CamiloTello002/Talent-Trade/pkg/validation"
)

type UserHandler struct {
	Svc     *userapp.UserService
	Auth    *userapp.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewUserHandler(svc *userapp.UserService, auth *userapp.AuthService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *UserHandler {
	return &UserHandler{Svc: svc, Auth: auth, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type registerRequest struct {
	Name        string `json:"name" binding:"required,min=2"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,pwd"`
	AboutMe     string `json:"about_me"`
	PhoneNumber string `json:"phone_number" binding:"omitempty,phone"`
}

type resetPasswordRequest struct {
	Password string `json:"password" binding:"required,pwd"`
}

type emailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type updateProfileRequest struct {
	Name        string `json:"name" binding:"omitempty,min=2"`
	AboutMe     string `json:"about_me"`
	PhoneNumber string `json:"phone_number" binding:"omitempty,phone"`
}

type ratingRequest struct {
	TradeID string `json:"trade_id" binding:"required,uuid"`
	Comment string `json:"comment" binding:"required,max=500"`
	Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
}

type tagView struct {
	CategoryID    string `json:"category_id"`
	CategoryName  string `json:"category_name"`
	SpecialtyID   string `json:"specialty_id"`
	SpecialtyName string `json:"specialty_name"`
}

type ratingView struct {
	ID           string `json:"id"`
	AuthorID     string `json:"author_id"`
	AuthorName   string `json:"author_name"`
	AuthorAvatar string `json:"author_avatar"`
	TradeID      string `json:"trade_id"`
	Comment      string `json:"comment"`
	Rating       int    `json:"rating"`
}

type profileView struct {
	ID          string       `json:"id"`
	Email       string       `json:"email"`
	Name        string       `json:"name"`
	AboutMe     string       `json:"about_me"`
	AvatarURL   string       `json:"avatar_url"`
	PhoneNumber *string      `json:"phone_number"`
	Specialties []tagView    `json:"specialties"`
	Interests   []tagView    `json:"interests"`
	Ratings     []ratingView `json:"ratings"`
	TradeIDs    []string     `json:"trade_ids,omitempty"`
}

func toProfileView(p *entity.Profile) profileView {
	v := profileView{
		ID:          p.ID,
		Email:       p.Email,
		Name:        p.Name,
		AboutMe:     p.AboutMe,
		AvatarURL:   p.AvatarURL,
		Specialties: make([]tagView, 0, len(p.Specialties)),
		Interests:   make([]tagView, 0, len(p.Interests)),
		Ratings:     make([]ratingView, 0, len(p.Ratings)),
		TradeIDs:    p.TradeIDs,
	}
	if p.PhoneNumber != "" {
		phone := p.PhoneNumber
		v.PhoneNumber = &phone
	}
	for _, t := range p.Specialties {
		v.Specialties = append(v.Specialties, tagView{t.CategoryID, t.CategoryName, t.SpecialtyID, t.SpecialtyName})
	}
	for _, t := range p.Interests {
		v.Interests = append(v.Interests, tagView{t.CategoryID, t.CategoryName, t.SpecialtyID, t.SpecialtyName})
	}
	for _, r := range p.Ratings {
		v.Ratings = append(v.Ratings, ratingView{r.ID, r.AuthorID, r.AuthorName, r.AuthorAvatar, r.TradeID, r.Comment, r.Score})
	}
	return v
}

// Register POST /api/user: starts registration by mailing a confirmation link.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	err := h.Svc.RequestRegistration(c.Request.Context(), userapp.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		AboutMe:     req.AboutMe,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusAccepted, nil, "check your email to finish registration", nil)
}

// ConfirmRegistration GET /api/user/confirm-email/:token: completes
// registration and logs the new user in.
func (h *UserHandler) ConfirmRegistration(c *gin.Context) {
	p, err := h.Svc.ConfirmRegistration(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	pair, err := h.Auth.IssueTokens(c.Request.Context(), &entity.User{ID: p.ID, Email: p.Email, Name: p.Name, AvatarURL: p.AvatarURL})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusCreated, toProfileView(p), "registration complete", nil)
}

// RequestPasswordReset POST /api/user/reset-password
func (h *UserHandler) RequestPasswordReset(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	ip := c.GetString("real_ip")
	if ip == "" {
		ip = c.ClientIP()
	}
	if err := h.Svc.RequestPasswordReset(c.Request.Context(), req.Email, ip, c.GetHeader("User-Agent")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusAccepted, nil, "check your email to reset your password", nil)
}

// ResetPassword PUT /api/user/reset-password/:token
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.UpdatePassword(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"reset": true}, "password updated", nil)
}

// List GET /api/user and /api/user/list/:categoryId: paginated listing,
// page size fixed at 10.
func (h *UserHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	profiles, err := h.Svc.Find(c.Request.Context(), c.Param("categoryId"), page)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	views := make([]profileView, 0, len(profiles))
	for i := range profiles {
		// Listings never expose phone numbers or trade lists.
		profiles[i].PhoneNumber = ""
		profiles[i].TradeIDs = nil
		views = append(views, toProfileView(&profiles[i]))
	}
	response.Success(c, http.StatusOK, views, "users", gin.H{"page": page, "page_size": userapp.PageSize})
}

// Details GET /api/user/details/:userId: optional auth; phone and trade
// list only for the owner or an approved contact.
func (h *UserHandler) Details(c *gin.Context) {
	viewerID := c.GetString("userID")
	p, err := h.Svc.FindByID(c.Request.Context(), viewerID, c.Param("userId"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toProfileView(p), "profile", nil)
}

// DetailsByEmail GET /api/user/email/:email: Details keyed by email, same
// visibility rule.
func (h *UserHandler) DetailsByEmail(c *gin.Context) {
	viewerID := c.GetString("userID")
	p, err := h.Svc.FindByEmail(c.Request.Context(), viewerID, c.Param("email"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toProfileView(p), "profile", nil)
}

// Update PUT /api/user/:userId: owner-only profile update.
func (h *UserHandler) Update(c *gin.Context) {
	uid := c.GetString("userID")
	if uid != c.Param("userId") {
		response.Error[any](c, http.StatusForbidden, "cannot update another user's profile", nil)
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Update(c.Request.Context(), uid, userapp.UpdateProfileInput{
		Name:        req.Name,
		AboutMe:     req.AboutMe,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"about_me":   u.AboutMe,
		"avatar_url": u.AvatarURL,
		"updated_at": u.UpdatedAt,
	}, "profile updated", nil)
}

// Delete DELETE /api/user/:userId: owner-only account removal.
func (h *UserHandler) Delete(c *gin.Context) {
	uid := c.GetString("userID")
	if uid != c.Param("userId") {
		response.Error[any](c, http.StatusForbidden, "cannot delete another user's account", nil)
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), uid); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	h.Cookies.Clear(c)
	h.Auth.Logout(c.Request.Context(), uid)
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "account deleted", nil)
}

// AddSpecialties POST /api/user/add-specialties: pairs already verified by
// the tag middleware.
func (h *UserHandler) AddSpecialties(c *gin.Context) {
	h.addTags(c, h.Svc.AddSpecialties)
}

// AddInterests POST /api/user/add-interests
func (h *UserHandler) AddInterests(c *gin.Context) {
	h.addTags(c, h.Svc.AddInterests)
}

// addTags applies pairs already validated by middleware.VerifyTagPairs.
func (h *UserHandler) addTags(c *gin.Context, add func(ctx context.Context, userID string, pairs []entity.TagPair) (*entity.Profile, error)) {
	v, ok := c.Get(middleware.CtxTagPairsKey)
	if !ok {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", nil)
		return
	}
	pairs, _ := v.([]entity.TagPair)
	p, err := add(c.Request.Context(), c.GetString("userID"), pairs)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toProfileView(p), "profile tagged", nil)
}

// Rate POST /api/user/rating/:userId: submit a rating after a finished trade.
func (h *UserHandler) Rate(c *gin.Context) {
	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.UpdateRating(c.Request.Context(), c.GetString("userID"), c.Param("userId"), userapp.RatingInput{
		TradeID: req.TradeID,
		Comment: req.Comment,
		Rating:  req.Rating,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toProfileView(p), "rating submitted", nil)
}

// UploadAvatar POST /api/user/avatar: multipart form field "avatar".
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "avatar file is required", nil)
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "cannot read avatar file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UpdateAvatar(c.Request.Context(), c.GetString("userID"), f, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"avatar_url": url}, "avatar updated", nil)
}

// Suggestions GET /api/user/suggestions: users matching the requester's
// interests or specialties.
func (h *UserHandler) Suggestions(c *gin.Context) {
	profiles, err := h.Svc.GetSuggestions(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	views := make([]profileView, 0, len(profiles))
	for i := range profiles {
		profiles[i].PhoneNumber = ""
		profiles[i].TradeIDs = nil
		views = append(views, toProfileView(&profiles[i]))
	}
	response.Success(c, http.StatusOK, views, "suggestions", nil)
}

// Search GET /api/users/search?q=
func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", nil)
}
