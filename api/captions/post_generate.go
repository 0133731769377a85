package captions

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jerricksforjesus/JerricksJesus-sub000/api/types"
	"github.com/jerricksforjesus/JerricksJesus-sub000/internal/models"
	captionsService "github.com/jerricksforjesus/JerricksJesus-sub000/internal/services/captions"
)

// PostGenerate starts caption generation for a video. Returns 202 once the
// job is queued; 409 when a generation is already running for the video.
func PostGenerate(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		err := deps.CaptionService.StartJob(c.Request.Context(), videoID)
		if err != nil {
			switch {
			case errors.Is(err, captionsService.ErrVideoNotFound):
				types.SendNotFound(c, "Video not found")
			case errors.Is(err, captionsService.ErrJobInProgress):
				types.SendConflict(c, "Caption generation already in progress")
			default:
				log.Printf("[ERROR] Failed to start caption generation for video %d: %v", videoID, err)
				types.SendInternalError(c, "Failed to start caption generation")
			}
			return
		}

		c.JSON(http.StatusAccepted, types.CaptionStatusResponse{
			Status: models.CaptionStatusGenerating,
		})
	}
}
