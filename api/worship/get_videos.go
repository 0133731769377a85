package worship

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jerricksforjesus/JerricksJesus-sub000/api/types"
)

// GetVideos returns the local worship playlist mirror
func GetVideos(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videos, err := deps.WorshipService.ListVideos(c.Request.Context())
		if err != nil {
			log.Printf("[ERROR] Failed to list worship videos: %v", err)
			types.SendInternalError(c, "Failed to list worship videos")
			return
		}

		c.JSON(http.StatusOK, types.WorshipVideosResponse{
			Videos: videos,
			Count:  len(videos),
		})
	}
}
