package api

import (
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/jerricksforjesus/JerricksJesus-sub000/api/captions"
	"github.com/jerricksforjesus/JerricksJesus-sub000/api/health"
	"github.com/jerricksforjesus/JerricksJesus-sub000/api/types"
	"github.com/jerricksforjesus/JerricksJesus-sub000/api/worship"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Public routes, no rate limiting
	health.RegisterRoutes(engine, deps)

	engine.NoRoute(NotFoundHandler())

	v1 := engine.Group("/api/v1")

	// Caption routes: generation is CPU and API-quota heavy, keep the limit low
	videosGroup := v1.Group("/videos")
	videosGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	captions.RegisterRoutes(videosGroup, deps)

	// Worship routes: reads get the general limit, sync the tightest one
	worshipGroup := v1.Group("/worship")
	worshipGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	syncMiddleware := PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 1, 2)
	worship.RegisterRoutes(worshipGroup, deps, syncMiddleware)

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
