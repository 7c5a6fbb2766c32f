package conditions

import (
	"errors"
	"net/http"

	"api/database"
	"api/models"
	"api/services"
	"api/utils"
	"api/utils/response"

	"github.com/gin-gonic/gin"
)

// GetConditionPuzzles retrieves a condition's puzzles with advice and highlight squares
// @Summary Get puzzles for a condition
// @Description Get the ordered puzzle list with advice and the advice's parsed move
// @Tags Conditions
// @Produce json
// @Param id path string true "Condition ID"
// @Success 200 {array} PuzzleView
// @Failure 404 {object} map[string]string
// @Router /conditions/{id}/puzzles [get]
func GetConditionPuzzles(c *gin.Context) {
	conditionID := c.Param("id")

	var condition models.Condition
	if err := database.DB.First(&condition, "id = ?", conditionID).Error; err != nil {
		response.Error(c, http.StatusNotFound, ErrConditionNotFound)
		return
	}

	var puzzles []models.Puzzle
	if err := database.DB.Where("condition_id = ?", conditionID).
		Order("puzzle_order").Preload("Advice").Find(&puzzles).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFailedFetch)
		return
	}

	views := make([]PuzzleView, 0, len(puzzles))
	for _, puzzle := range puzzles {
		view := PuzzleView{
			ID:          puzzle.ID,
			ConditionID: puzzle.ConditionID,
			FEN:         puzzle.FEN,
			CorrectMove: puzzle.CorrectMove,
			Order:       puzzle.Order,
		}
		if puzzle.Advice != nil {
			view.Advice = puzzle.Advice
			parsed := utils.ParseAdviceMove(puzzle.Advice.Text)
			view.AdviceMove = &parsed
		}
		views = append(views, view)
	}

	c.JSON(http.StatusOK, views)
}

// ReplaceConditionPuzzles replaces a condition's entire puzzle set
// @Summary Replace a condition's puzzles
// @Description Delete the condition's puzzles and recreate them from the supplied list, all-or-nothing
// @Tags Conditions
// @Accept json
// @Produce json
// @Param id path string true "Condition ID"
// @Param puzzlesRequest body ReplacePuzzlesRequest true "Replacement puzzle set"
// @Success 200 {array} models.Puzzle
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /conditions/{id}/puzzles [put]
// @Security Bearer
func ReplaceConditionPuzzles(c *gin.Context) {
	var req ReplacePuzzlesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	puzzles, err := services.ReplaceConditionPuzzles(c.Param("id"), req.Puzzles)
	if err != nil {
		if errors.Is(err, services.ErrConditionNotFound) {
			response.Error(c, http.StatusNotFound, ErrConditionNotFound)
			return
		}
		response.Error(c, http.StatusInternalServerError, ErrFailedReplace)
		return
	}

	c.JSON(http.StatusOK, puzzles)
}
