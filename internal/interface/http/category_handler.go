package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/CamiloTello002/Talent-Trade/internal/domain/entity"
	repo "github.com/CamiloTello002/Talent-Trade/internal/domain/repository"
	"github.com/CamiloTello002/Talent-Trade/pkg/response"
)

// CategoryHandler serves the public tag catalog the frontend uses to build
// specialty and interest pickers.
type CategoryHandler struct {
	Categories repo.CategoryRepository
	Logger     *logrus.Logger
}

func NewCategoryHandler(categories repo.CategoryRepository, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{Categories: categories, Logger: logger}
}

type categoryView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type specialtyView struct {
	ID         string `json:"id"`
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
}

// List GET /api/category
func (h *CategoryHandler) List(c *gin.Context) {
	cats, err := h.Categories.List(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	views := make([]categoryView, 0, len(cats))
	for _, cat := range cats {
		views = append(views, categoryView{ID: cat.ID, Name: cat.Name})
	}
	response.Success(c, http.StatusOK, views, "categories", nil)
}

// ListSpecialties GET /api/category/:categoryId/specialties
func (h *CategoryHandler) ListSpecialties(c *gin.Context) {
	specs, err := h.Categories.ListSpecialties(c.Request.Context(), c.Param("categoryId"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	views := make([]specialtyView, 0, len(specs))
	for _, s := range specs {
		views = append(views, toSpecialtyView(s))
	}
	response.Success(c, http.StatusOK, views, "specialties", nil)
}

func toSpecialtyView(s entity.Specialty) specialtyView {
	return specialtyView{ID: s.ID, CategoryID: s.CategoryID, Name: s.Name}
}
