package captions

import (
	"github.com/gin-gonic/gin"
	"github.com/jerricksforjesus/JerricksJesus-sub000/api/types"
)

// RegisterRoutes registers caption routes on the videos group
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies) {
	group.POST("/:id/captions", PostGenerate(deps))
	group.GET("/:id/captions", GetStatus(deps))
}
