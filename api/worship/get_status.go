package worship

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jerricksforjesus/JerricksJesus-sub000/api/types"
)

// GetStatus reports whether the YouTube channel is connected. A missing
// connection is a normal answer here, never an error.
func GetStatus(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, err := deps.WorshipService.Status(c.Request.Context())
		if err != nil {
			log.Printf("[ERROR] Failed to get worship connection status: %v", err)
			types.SendInternalError(c, "Failed to get connection status")
			return
		}

		c.JSON(http.StatusOK, types.ConnectionStatusResponse{
			Connected:   status.Connected,
			ChannelName: status.ChannelName,
		})
	}
}
