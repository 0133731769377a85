package captions

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jerricksforjesus/JerricksJesus-sub000/api/types"
	captionsService "github.com/jerricksforjesus/JerricksJesus-sub000/internal/services/captions"
)

// GetStatus reports a video's caption state
func GetStatus(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		status, err := deps.CaptionService.GetStatus(c.Request.Context(), videoID)
		if err != nil {
			if errors.Is(err, captionsService.ErrVideoNotFound) {
				types.SendNotFound(c, "Video not found")
				return
			}
			log.Printf("[ERROR] Failed to get caption status for video %d: %v", videoID, err)
			types.SendInternalError(c, "Failed to get caption status")
			return
		}

		c.JSON(http.StatusOK, types.CaptionStatusResponse{
			Status:       status.Status,
			CaptionsPath: status.CaptionsPath,
		})
	}
}
