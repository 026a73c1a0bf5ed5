package http

import (
	"github.com/gin-gonic/gin"

	"github.com/starkpulse/gas-backend/internal/handler"
	"github.com/starkpulse/gas-backend/internal/utils/config"
	"github.com/starkpulse/gas-backend/internal/utils/logger"
)

func loadV1Routes(r *gin.Engine, h *handler.Handler, appConfig *config.AppConfig, logger *logger.Logger) {
	v1 := r.Group("/api/v1")

	gas := v1.Group("/gas")
	{
		gas.GET("/prices", h.GasHandler.GetPrices)
		gas.GET("/badge", h.GasHandler.GetBadge)
		gas.GET("/status", h.GasHandler.GetNetworkStatus)
		gas.POST("/refresh", h.GasHandler.TriggerRefresh)
		gas.PUT("/badge-source", h.GasHandler.UpdateBadgeSource)
	}

	// health check
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "ok",
		})
	})
}
