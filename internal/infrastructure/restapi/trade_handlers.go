package restapi

import (
	"net/http"

	"solfolio/internal/app/service"
	"solfolio/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// TradeRequest is the wire shape of a trade submission.
type TradeRequest struct {
	FromMint string  `json:"from_mint" binding:"required"`
	ToMint   string  `json:"to_mint" binding:"required"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
}

// TradeResponse carries the transaction signature of a submitted trade.
type TradeResponse struct {
	Signature     string `json:"signature"`
	StatusMessage string `json:"status_message"`
}

// TradeHandler serves trade submissions.
type TradeHandler struct {
	trades *service.TradeService
}

// NewTradeHandler creates a handler over the given trade service.
func NewTradeHandler(trades *service.TradeService) *TradeHandler {
	return &TradeHandler{trades: trades}
}

// SubmitTradeHandler submits a trade through the wallet provider.
func (h *TradeHandler) SubmitTradeHandler(c *gin.Context) {
	var req TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	signature, err := h.trades.SubmitTrade(c.Request.Context(), req.FromMint, req.ToMint, req.Amount)
	if err != nil {
		if unavailable, ok := entity.IsProviderUnavailable(err); ok {
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{
				Error:      err.Error(),
				InstallURL: unavailable.InstallURL,
			})
			return
		}
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, TradeResponse{
		Signature:     signature,
		StatusMessage: "Trade submitted.",
	})
}
