package gas

import "github.com/gin-gonic/gin"

type IHandler interface {
	GetPrices(c *gin.Context)
	GetBadge(c *gin.Context)
	GetNetworkStatus(c *gin.Context)
	TriggerRefresh(c *gin.Context)
	UpdateBadgeSource(c *gin.Context)
}
