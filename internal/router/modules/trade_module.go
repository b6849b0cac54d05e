package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CamiloTello002/Talent-Trade/internal/container"
	handlers "github.com/CamiloTello002/Talent-Trade/internal/interface/http"
	"github.com/CamiloTello002/Talent-Trade/internal/interface/middleware"
	"github.com/CamiloTello002/Talent-Trade/pkg/helpers"
)

// TradeModule wires trade routes; every route requires a session.
// POST /api/trade, GET /api/trade, PUT /api/trade/:tradeId/finish.

type TradeModule struct {
	Handler *handlers.TradeHandler
	JWT     *helpers.JWTManager
}

func NewTradeModule(h *handlers.TradeHandler, jwt *helpers.JWTManager) *TradeModule {
	return &TradeModule{Handler: h, JWT: jwt}
}

func (m *TradeModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/trade")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))

	auth.POST("", m.Handler.Open)
	auth.GET("", m.Handler.List)
	auth.PUT("/:tradeId/finish", m.Handler.Finish)
}
