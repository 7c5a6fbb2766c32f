package experiments

import (
	"errors"
	"net/http"

	"api/database"
	"api/models"
	"api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetAllExperiments retrieves all experiments with their conditions
// @Summary Get all experiments
// @Description Get all experiments with their conditions
// @Tags Experiments
// @Produce json
// @Success 200 {array} models.Experiment
// @Failure 500 {object} map[string]string
// @Router /experiments [get]
// @Security Bearer
func GetAllExperiments(c *gin.Context) {
	var experiments []models.Experiment
	if err := database.DB.Preload("Conditions", func(db *gorm.DB) *gorm.DB {
		return db.Order("condition_order")
	}).Find(&experiments).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedFetchExperiment)
		return
	}

	c.JSON(http.StatusOK, experiments)
}

// GetExperiment retrieves a single experiment
// @Summary Get an experiment
// @Description Get the specified experiment with its conditions and puzzles
// @Tags Experiments
// @Produce json
// @Param id path string true "Experiment ID"
// @Success 200 {object} models.Experiment
// @Failure 404 {object} map[string]string
// @Router /experiments/{id} [get]
// @Security Bearer
func GetExperiment(c *gin.Context) {
	var experiment models.Experiment
	if err := database.DB.Preload("Conditions", func(db *gorm.DB) *gorm.DB {
		return db.Order("condition_order")
	}).Preload("Conditions.Puzzles", func(db *gorm.DB) *gorm.DB {
		return db.Order("puzzle_order")
	}).Preload("Conditions.Puzzles.Advice").
		First(&experiment, "id = ?", c.Param("id")).Error; err != nil {
		respondWithError(c, http.StatusNotFound, ErrExperimentNotFound)
		return
	}

	c.JSON(http.StatusOK, experiment)
}

// CreateExperiment creates a new experiment
// @Summary Create an experiment
// @Description Create a new inactive experiment with advice/timer defaults
// @Tags Experiments
// @Accept json
// @Produce json
// @Param experimentRequest body CreateExperimentRequest true "Experiment request"
// @Success 201 {object} models.Experiment
// @Failure 400 {object} map[string]string
// @Router /experiments [post]
// @Security Bearer
func CreateExperiment(c *gin.Context) {
	var req CreateExperimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	experiment := models.Experiment{
		Name:             req.Name,
		Description:      req.Description,
		AdviceFormat:     req.AdviceFormat,
		TimerEnabled:     req.TimerEnabled,
		TimeLimitSeconds: req.TimeLimitSeconds,
	}
	if experiment.AdviceFormat == "" {
		experiment.AdviceFormat = "text"
	}
	if experiment.TimeLimitSeconds == 0 {
		experiment.TimeLimitSeconds = 60
	}

	if err := database.DB.Create(&experiment).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedCreate)
		return
	}

	c.JSON(http.StatusCreated, experiment)
}

// UpdateExperiment updates an experiment's defaults
// @Summary Update an experiment
// @Description Update the name, description and advice/timer defaults of an experiment
// @Tags Experiments
// @Accept json
// @Produce json
// @Param id path string true "Experiment ID"
// @Param experimentRequest body UpdateExperimentRequest true "Update request"
// @Success 200 {object} models.Experiment
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /experiments/{id} [put]
// @Security Bearer
func UpdateExperiment(c *gin.Context) {
	var experiment models.Experiment
	if err := database.DB.First(&experiment, "id = ?", c.Param("id")).Error; err != nil {
		respondWithError(c, http.StatusNotFound, ErrExperimentNotFound)
		return
	}

	var req UpdateExperimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	if req.Name != nil {
		experiment.Name = *req.Name
	}
	if req.Description != nil {
		experiment.Description = *req.Description
	}
	if req.AdviceFormat != nil {
		experiment.AdviceFormat = *req.AdviceFormat
	}
	if req.TimerEnabled != nil {
		experiment.TimerEnabled = *req.TimerEnabled
	}
	if req.TimeLimitSeconds != nil {
		experiment.TimeLimitSeconds = *req.TimeLimitSeconds
	}

	if err := database.DB.Save(&experiment).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedUpdate)
		return
	}

	c.JSON(http.StatusOK, experiment)
}

// DeleteExperiment deletes an inactive experiment
// @Summary Delete an experiment
// @Description Delete an experiment and everything it owns. Active experiments cannot be deleted.
// @Tags Experiments
// @Produce json
// @Param id path string true "Experiment ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /experiments/{id} [delete]
// @Security Bearer
func DeleteExperiment(c *gin.Context) {
	err := services.DeleteExperiment(c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrExperimentNotFound):
			respondWithError(c, http.StatusNotFound, ErrExperimentNotFound)
		case errors.Is(err, services.ErrExperimentActive):
			respondWithError(c, http.StatusConflict, ErrExperimentActive)
		default:
			respondWithError(c, http.StatusInternalServerError, ErrFailedDelete)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Experiment deleted"})
}

// ActivateExperiment makes an experiment the single active one
// @Summary Activate an experiment
// @Description Activate the experiment, deactivating all others
// @Tags Experiments
// @Produce json
// @Param id path string true "Experiment ID"
// @Success 200 {object} models.Experiment
// @Failure 404 {object} map[string]string
// @Router /experiments/{id}/activate [put]
// @Security Bearer
func ActivateExperiment(c *gin.Context) {
	experiment, err := services.ActivateExperiment(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrExperimentNotFound) {
			respondWithError(c, http.StatusNotFound, ErrExperimentNotFound)
			return
		}
		respondWithError(c, http.StatusInternalServerError, ErrFailedActivate)
		return
	}

	c.JSON(http.StatusOK, experiment)
}

// DeactivateExperiment clears the active flag on an experiment
// @Summary Deactivate an experiment
// @Description Deactivate the experiment, cutting off in-progress participants
// @Tags Experiments
// @Produce json
// @Param id path string true "Experiment ID"
// @Success 200 {object} models.Experiment
// @Failure 404 {object} map[string]string
// @Router /experiments/{id}/deactivate [put]
// @Security Bearer
func DeactivateExperiment(c *gin.Context) {
	experiment, err := services.DeactivateExperiment(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrExperimentNotFound) {
			respondWithError(c, http.StatusNotFound, ErrExperimentNotFound)
			return
		}
		respondWithError(c, http.StatusInternalServerError, ErrFailedActivate)
		return
	}

	c.JSON(http.StatusOK, experiment)
}
