package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/CamiloTello002/Talent-Trade/internal/application"
	"github.com/CamiloTello002/Talent-Trade/internal/domain/entity"
	"github.com/CamiloTello002/Talent-Trade/pkg/response"
	"github.com/CamiloTello002/Talent-Trade/pkg/validation"
)

type TradeHandler struct {
	Svc    *userapp.TradeService
	Logger *logrus.Logger
}

func NewTradeHandler(svc *userapp.TradeService, logger *logrus.Logger) *TradeHandler {
	return &TradeHandler{Svc: svc, Logger: logger}
}

type openTradeRequest struct {
	MemberID string `json:"member_id" binding:"required,uuid"`
}

type tradeView struct {
	ID             string `json:"id"`
	MemberOne      string `json:"member_one"`
	MemberTwo      string `json:"member_two"`
	MemberOneRated bool   `json:"member_one_rated"`
	MemberTwoRated bool   `json:"member_two_rated"`
	Status         string `json:"status"`
}

func toTradeView(t *entity.Trade) tradeView {
	return tradeView{
		ID:             t.ID,
		MemberOne:      t.MemberOne,
		MemberTwo:      t.MemberTwo,
		MemberOneRated: t.MemberOneRated,
		MemberTwoRated: t.MemberTwoRated,
		Status:         t.Status,
	}
}

// Open POST /api/trade: start a trade with another member.
func (h *TradeHandler) Open(c *gin.Context) {
	var req openTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	t, err := h.Svc.Open(c.Request.Context(), c.GetString("userID"), req.MemberID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toTradeView(t), "trade opened", nil)
}

// List GET /api/trade: the caller's trades.
func (h *TradeHandler) List(c *gin.Context) {
	trades, err := h.Svc.ListForMember(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	views := make([]tradeView, 0, len(trades))
	for i := range trades {
		views = append(views, toTradeView(&trades[i]))
	}
	response.Success(c, http.StatusOK, views, "trades", nil)
}

// Finish PUT /api/trade/:tradeId/finish
func (h *TradeHandler) Finish(c *gin.Context) {
	t, err := h.Svc.Finish(c.Request.Context(), c.Param("tradeId"), c.GetString("userID"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toTradeView(t), "trade finished", nil)
}
