package restapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter configures and returns the Gin router with all API routes.
func SetupRouter(sessionHandler *SessionHandler, portfolioHandler *PortfolioHandler, tradeHandler *TradeHandler, allowOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(allowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsConfig))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/session", sessionHandler.GetSessionHandler)
		v1.POST("/session/connect", sessionHandler.ConnectHandler)
		v1.POST("/session/disconnect", sessionHandler.DisconnectHandler)
		v1.POST("/session/refresh", sessionHandler.RefreshHandler)

		v1.GET("/portfolio/:address", portfolioHandler.GetPortfolioHandler)

		v1.POST("/trade", tradeHandler.SubmitTradeHandler)
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
