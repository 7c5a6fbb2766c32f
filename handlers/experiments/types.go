package experiments

import (
	"github.com/gin-gonic/gin"
)

// Error messages
const (
	ErrExperimentNotFound    = "Experiment not found"
	ErrExperimentActive      = "Experiment must be deactivated before deletion"
	ErrInvalidRequest        = "Invalid request data"
	ErrFailedFetchExperiment = "Failed to fetch experiments"
	ErrFailedCreate          = "Failed to create experiment"
	ErrFailedUpdate          = "Failed to update experiment"
	ErrFailedDelete          = "Failed to delete experiment"
	ErrFailedActivate        = "Failed to activate experiment"
	ErrFailedExport          = "Failed to export experiment data"
)

// CreateExperimentRequest model for creating an experiment
type CreateExperimentRequest struct {
	Name             string `json:"name" binding:"required"`
	Description      string `json:"description"`
	AdviceFormat     string `json:"advice_format"`
	TimerEnabled     bool   `json:"timer_enabled"`
	TimeLimitSeconds int    `json:"time_limit_seconds"`
}

// UpdateExperimentRequest model for updating an experiment
type UpdateExperimentRequest struct {
	Name             *string `json:"name"`
	Description      *string `json:"description"`
	AdviceFormat     *string `json:"advice_format"`
	TimerEnabled     *bool   `json:"timer_enabled"`
	TimeLimitSeconds *int    `json:"time_limit_seconds"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
