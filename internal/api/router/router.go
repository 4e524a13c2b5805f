package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qmdang/pitchshift-be/internal/api/handler"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		if err := deps.DBClient.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"service": "pitchshift-api",
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "pitchshift-api",
		})
	})

	videoHandler := handler.NewVideoHandler(deps)

	v1 := r.Group("/api/v1")
	v1.Use(IdentityMiddleware(deps.Resolver))
	{
		videos := v1.Group("/videos")
		{
			// POST /api/v1/videos - Submit a pitch-shift job
			videos.POST("", videoHandler.SubmitVideo)

			// GET /api/v1/videos - List the caller's recent jobs
			videos.GET("", videoHandler.ListVideos)

			// GET /api/v1/videos/preview - Best-effort source metadata
			videos.GET("/preview", videoHandler.PreviewMetadata)

			// GET /api/v1/videos/:video_id - Get job details
			videos.GET("/:video_id", videoHandler.GetVideo)
		}
	}

	return r
}
