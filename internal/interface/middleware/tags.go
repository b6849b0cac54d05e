package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/CamiloTello002/Talent-Trade/internal/domain/entity"
	repo "github.com/CamiloTello002/Talent-Trade/internal/domain/repository"
	"github.com/CamiloTello002/Talent-Trade/pkg/response"
	"github.com/CamiloTello002/Talent-Trade/pkg/validation"
)

// CtxTagPairsKey is where VerifyTagPairs leaves the validated pairs.
const CtxTagPairsKey = "tagPairs"

type tagPairBody struct {
	CategoryID  string `json:"category_id" binding:"required,uuid"`
	SpecialtyID string `json:"specialty_id" binding:"required,uuid"`
}

type tagsBody struct {
	Pairs []tagPairBody `json:"pairs" binding:"required,min=1,dive"`
}

// VerifyTagPairs binds the tag payload and checks every
// (category, specialty) pair against the catalog before the handler runs.
// Valid pairs are stored in the context under CtxTagPairsKey.
func VerifyTagPairs(categories repo.CategoryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req tagsBody
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
			c.Abort()
			return
		}

		pairs := make([]entity.TagPair, 0, len(req.Pairs))
		for _, p := range req.Pairs {
			ok, err := categories.PairExists(c.Request.Context(), p.CategoryID, p.SpecialtyID)
			if err != nil {
				response.Error[any](c, http.StatusInternalServerError, "could not verify categories", nil)
				c.Abort()
				return
			}
			if !ok {
				response.Error[any](c, http.StatusBadRequest, "unknown category/specialty pair", gin.H{
					"category_id":  p.CategoryID,
					"specialty_id": p.SpecialtyID,
				})
				c.Abort()
				return
			}
			pairs = append(pairs, entity.TagPair{CategoryID: p.CategoryID, SpecialtyID: p.SpecialtyID})
		}

		c.Set(CtxTagPairsKey, pairs)
		c.Next()
	}
}
