package worship

import (
	"github.com/gin-gonic/gin"
	"github.com/jerricksforjesus/JerricksJesus-sub000/api/types"
)

// RegisterRoutes registers worship playlist routes. The sync endpoint gets
// its own (tighter) rate limit middleware.
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies, syncMiddleware gin.HandlerFunc) {
	group.POST("/sync", syncMiddleware, PostSync(deps))
	group.GET("/videos", GetVideos(deps))
	group.GET("/status", GetStatus(deps))
}
