package restapi

import (
	"net/http"

	"solfolio/internal/app/port"
	"solfolio/internal/app/service"
	"solfolio/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// APIPortfolioResponse is the wire shape of a portfolio lookup.
type APIPortfolioResponse struct {
	Data struct {
		Address       string               `json:"address"`
		Native        entity.NativeBalance `json:"native"`
		Holdings      []entity.Holding     `json:"holdings"`
		TotalValueUSD float64              `json:"total_value_usd"`
	} `json:"data"`
	StatusMessage string `json:"status_message"`
}

// PortfolioHandler serves read-only portfolio lookups for arbitrary
// addresses, independent of the wallet session.
type PortfolioHandler struct {
	holdings port.HoldingsService
}

// NewPortfolioHandler creates a handler over the given aggregator.
func NewPortfolioHandler(hs port.HoldingsService) *PortfolioHandler {
	return &PortfolioHandler{holdings: hs}
}

// GetPortfolioHandler returns the full portfolio for the address in the path.
// Aggregation fails soft, so the response is always 200 with whatever data
// could be assembled.
func (h *PortfolioHandler) GetPortfolioHandler(c *gin.Context) {
	ctx := c.Request.Context()
	address := c.Param("address")

	holdings := h.holdings.ListHoldings(ctx, address)
	native := h.holdings.NativeBalance(ctx, address)

	response := APIPortfolioResponse{}
	response.Data.Address = address
	response.Data.Native = native
	response.Data.Holdings = holdings
	response.Data.TotalValueUSD = service.TotalValue(holdings)

	if len(holdings) == 0 {
		response.StatusMessage = "No portfolio data found. Check the address and ledger connectivity."
	} else {
		response.StatusMessage = "Portfolio retrieved successfully."
	}

	c.JSON(http.StatusOK, response)
}
