package conditions

import (
	"api/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to conditions and their puzzles
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	// Participants fetch their current condition's puzzles without auth
	r.GET("/conditions/:id/puzzles", GetConditionPuzzles)

	conditions := r.Group("/conditions")
	conditions.Use(middleware.AdminAuthMiddleware())
	{
		conditions.GET("/", GetExperimentConditions)
		conditions.POST("/", CreateCondition)
		conditions.PUT("/:id", UpdateCondition)
		conditions.DELETE("/:id", DeleteCondition)
		conditions.PUT("/:id/puzzles", ReplaceConditionPuzzles)
	}
}
