package worship

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jerricksforjesus/JerricksJesus-sub000/api/types"
	worshipService "github.com/jerricksforjesus/JerricksJesus-sub000/internal/services/worship"
)

// PostSync triggers a playlist sync. 409 when no channel is connected, 429
// with a retry hint when a recent sync puts us inside the cooldown window.
func PostSync(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := deps.WorshipService.Sync(c.Request.Context())
		if err != nil {
			var cooldownErr *worshipService.CooldownError
			switch {
			case errors.Is(err, worshipService.ErrNotConnected):
				types.SendConflict(c, "YouTube channel not connected")
			case errors.As(err, &cooldownErr):
				c.JSON(http.StatusTooManyRequests, types.RateLimitedResponse{
					Error:             cooldownErr.Error(),
					RetryAfterSeconds: int(cooldownErr.Remaining.Seconds()),
				})
			default:
				log.Printf("[ERROR] Worship sync failed: %v", err)
				types.SendInternalError(c, "Failed to sync worship playlist")
			}
			return
		}

		c.JSON(http.StatusOK, types.SyncResponse{
			Created: result.Created,
			Updated: result.Updated,
			Deleted: result.Deleted,
		})
	}
}
