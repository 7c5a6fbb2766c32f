package experiments

import (
	"api/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to experiments
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	// Live response feed for experimenter dashboards
	r.GET("/experiments/:id/ws", ExperimentWebSocket)

	experiments := r.Group("/experiments")
	experiments.Use(middleware.AdminAuthMiddleware())
	{
		experiments.GET("/", GetAllExperiments)
		experiments.GET("/:id", GetExperiment)
		experiments.POST("/", CreateExperiment)
		experiments.PUT("/:id", UpdateExperiment)
		experiments.DELETE("/:id", DeleteExperiment)

		experiments.PUT("/:id/activate", ActivateExperiment)
		experiments.PUT("/:id/deactivate", DeactivateExperiment)

		experiments.GET("/:id/export", ExportExperimentDataExcel)
	}
}
