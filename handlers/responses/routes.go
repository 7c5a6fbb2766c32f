package responses

import (
	"api/config"
	"api/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to player responses
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	cooldown := middleware.NewSubmissionCooldown(config.DefaultSubmissionCooldownConfig)

	playerResponses := r.Group("/player-responses")
	{
		playerResponses.POST("/", middleware.SubmissionCooldownMiddleware(cooldown), RecordResponse)
		playerResponses.GET("/", GetSessionResponses)
	}
}
