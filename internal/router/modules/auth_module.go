package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CamiloTello002/Talent-Trade/internal/container"
	handlers "github.com/CamiloTello002/Talent-Trade/internal/interface/http"
	"github.com/CamiloTello002/Talent-Trade/internal/interface/middleware"
	"github.com/CamiloTello002/Talent-Trade/pkg/helpers"
)

// AuthModule wires session routes: POST /api/login, POST /api/refresh,
// POST /api/logout (protected).

type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.POST("/logout", m.Handler.Logout)
}
