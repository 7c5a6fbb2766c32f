package conditions

import (
	"errors"
	"net/http"

	"api/database"
	"api/models"
	"api/services"
	"api/utils/response"

	"github.com/gin-gonic/gin"
)

// GetExperimentConditions retrieves all conditions of an experiment
// @Summary Get conditions for an experiment
// @Description Get all conditions of the specified experiment, ordered by position
// @Tags Conditions
// @Produce json
// @Param experiment_id query string true "Experiment ID"
// @Success 200 {array} models.Condition
// @Failure 400 {object} map[string]string
// @Router /conditions [get]
// @Security Bearer
func GetExperimentConditions(c *gin.Context) {
	experimentID := c.Query("experiment_id")
	if experimentID == "" {
		response.Error(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	var conditions []models.Condition
	if err := database.DB.Where("experiment_id = ?", experimentID).
		Order("condition_order").Find(&conditions).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetch)
		return
	}

	c.JSON(http.StatusOK, conditions)
}

// CreateCondition creates a condition with a first-gap order position
// @Summary Create a condition
// @Description Create a condition ("Set") in an experiment. Its position fills the lowest gap in the existing orders.
// @Tags Conditions
// @Accept json
// @Produce json
// @Param conditionRequest body CreateConditionRequest true "Condition request"
// @Success 201 {object} models.Condition
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /conditions [post]
// @Security Bearer
func CreateCondition(c *gin.Context) {
	var req CreateConditionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	condition, err := services.CreateCondition(models.Condition{
		ExperimentID:     req.ExperimentID,
		Name:             req.Name,
		AdviceFormat:     req.AdviceFormat,
		TimerEnabled:     req.TimerEnabled,
		TimeLimitSeconds: req.TimeLimitSeconds,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrExperimentNotFound):
			response.Error(c, http.StatusNotFound, ErrExperimentNotFound)
		case errors.Is(err, services.ErrConditionNameTaken):
			response.Error(c, http.StatusConflict, ErrConditionNameTaken)
		default:
			response.Error(c, http.StatusInternalServerError, ErrFailedCreate)
		}
		return
	}

	c.JSON(http.StatusCreated, condition)
}

// UpdateCondition updates a condition's name and overrides
// @Summary Update a condition
// @Description Partially update a condition; omitted fields keep their current values
// @Tags Conditions
// @Accept json
// @Produce json
// @Param id path string true "Condition ID"
// @Param conditionRequest body UpdateConditionRequest true "Update request"
// @Success 200 {object} models.Condition
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /conditions/{id} [put]
// @Security Bearer
func UpdateCondition(c *gin.Context) {
	var req UpdateConditionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	condition, err := services.UpdateCondition(c.Param("id"), services.ConditionUpdate{
		Name:             req.Name,
		AdviceFormat:     req.AdviceFormat,
		TimerEnabled:     req.TimerEnabled,
		TimeLimitSeconds: req.TimeLimitSeconds,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrConditionNotFound):
			response.Error(c, http.StatusNotFound, ErrConditionNotFound)
		case errors.Is(err, services.ErrConditionNameTaken):
			response.Error(c, http.StatusConflict, ErrConditionNameTaken)
		default:
			response.Error(c, http.StatusInternalServerError, ErrFailedUpdate)
		}
		return
	}

	c.JSON(http.StatusOK, condition)
}

// DeleteCondition deletes a condition and its puzzles
// @Summary Delete a condition
// @Description Delete a condition, cascading to its puzzles and advice
// @Tags Conditions
// @Produce json
// @Param id path string true "Condition ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /conditions/{id} [delete]
// @Security Bearer
func DeleteCondition(c *gin.Context) {
	if err := services.DeleteCondition(c.Param("id")); err != nil {
		if errors.Is(err, services.ErrConditionNotFound) {
			response.Error(c, http.StatusNotFound, ErrConditionNotFound)
			return
		}
		response.Error(c, http.StatusInternalServerError, ErrFailedDelete)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Condition deleted"})
}
