package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CamiloTello002/Talent-Trade/internal/container"
	handlers "github.com/CamiloTello002/Talent-Trade/internal/interface/http"
	"github.com/CamiloTello002/Talent-Trade/internal/interface/middleware"
)

// CategoryModule exposes the public tag catalog:
// GET /api/category, GET /api/category/:categoryId/specialties.

type CategoryModule struct {
	Handler *handlers.CategoryHandler
}

func NewCategoryModule(h *handlers.CategoryHandler) *CategoryModule {
	return &CategoryModule{Handler: h}
}

func (m *CategoryModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/category", rl, m.Handler.List)
	rg.GET("/category/:categoryId/specialties", rl, m.Handler.ListSpecialties)
}
