package sessions

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to player sessions
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	sessions := r.Group("/sessions")
	{
		sessions.POST("/", EnterExperiment)
		sessions.GET("/", GetSession)
		sessions.PUT("/", UpdateSession)
	}
}
