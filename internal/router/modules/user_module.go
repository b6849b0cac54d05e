package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CamiloTello002/Talent-Trade/internal/container"
	repo "github.com/CamiloTello002/Talent-Trade/internal/domain/repository"
	handlers "github.com/CamiloTello002/Talent-Trade/internal/interface/http"
	"github.com/CamiloTello002/Talent-Trade/internal/interface/middleware"
	"github.com/CamiloTello002/Talent-Trade/pkg/helpers"
)

// UserModule wires registration, profile, rating and discovery routes.
// Public: POST /api/user, GET /api/user/confirm-email/:token,
// POST /api/user/reset-password, PUT /api/user/reset-password/:token,
// GET /api/user, GET /api/user/list/:categoryId.
// GET /api/user/details/:userId and GET /api/user/email/:email resolve the
// session when present so the visibility filter can tell owner and contacts
// apart.
// Everything else requires an authenticated session.

type UserModule struct {
	Handler    *handlers.UserHandler
	Categories repo.CategoryRepository
	JWT        *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, categories repo.CategoryRepository, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, Categories: categories, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	resetLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	listLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/user", registerLimiter, m.Handler.Register)
	rg.GET("/user/confirm-email/:token", resetLimiter, m.Handler.ConfirmRegistration)
	rg.POST("/user/reset-password", resetLimiter, m.Handler.RequestPasswordReset)
	rg.PUT("/user/reset-password/:token", resetLimiter, m.Handler.ResetPassword)

	rg.GET("/user", listLimiter, m.Handler.List)
	rg.GET("/user/list/:categoryId", listLimiter, m.Handler.List)
	rg.GET("/user/details/:userId", listLimiter, middleware.OptionalAuth(container.GetRedis(), m.JWT), m.Handler.Details)
	rg.GET("/user/email/:email", listLimiter, middleware.OptionalAuth(container.GetRedis(), m.JWT), m.Handler.DetailsByEmail)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.PUT("/user/:userId", m.Handler.Update)
		auth.DELETE("/user/:userId", m.Handler.Delete)
		auth.POST("/user/add-specialties", middleware.VerifyTagPairs(m.Categories), m.Handler.AddSpecialties)
		auth.POST("/user/add-interests", middleware.VerifyTagPairs(m.Categories), m.Handler.AddInterests)
		auth.POST("/user/rating/:userId", m.Handler.Rate)
		auth.POST("/user/avatar", m.Handler.UploadAvatar)
		auth.GET("/user/suggestions", m.Handler.Suggestions)
		auth.GET("/users/search", m.Handler.Search)
	}
}
