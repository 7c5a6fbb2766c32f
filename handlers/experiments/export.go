package experiments

import (
	"fmt"
	"net/http"

	"api/database"
	"api/models"
	"api/services"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportExperimentDataExcel exports an experiment's recorded data as an Excel workbook
// @Summary Export experiment data
// @Description Export one row per recorded response plus a per-session summary sheet
// @Tags Experiments
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Experiment ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /experiments/{id}/export [get]
// @Security Bearer
func ExportExperimentDataExcel(c *gin.Context) {
	experimentID := c.Param("id")

	var experiment models.Experiment
	if err := database.DB.First(&experiment, "id = ?", experimentID).Error; err != nil {
		respondWithError(c, http.StatusNotFound, ErrExperimentNotFound)
		return
	}

	var sessions []models.PlayerSession
	if err := database.DB.Where("experiment_id = ?", experimentID).
		Order("started_at").Find(&sessions).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedExport)
		return
	}

	xlsx := excelize.NewFile()
	defer xlsx.Close()

	responsesSheet := "Responses"
	xlsx.SetSheetName("Sheet1", responsesSheet)
	responseHeaders := []string{
		"Player", "Session ID", "Condition", "Puzzle", "FEN", "Correct move",
		"Move before advice", "Time before advice", "Move after advice", "Time after advice",
		"Advice shown", "Advice requested", "Followed advice", "Undo used",
		"Time exceeded", "Skipped", "Completed at",
	}
	for i, header := range responseHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		xlsx.SetCellValue(responsesSheet, cell, header)
	}

	summarySheet := "Sessions"
	xlsx.NewSheet(summarySheet)
	summaryHeaders := []string{
		"Player", "Session ID", "First condition", "Started at", "Completed at",
		"Responses", "Completed", "Skipped", "Advice shown", "Advice requested",
		"Followed advice", "Undo used", "Time exceeded", "Total time (s)",
	}
	for i, header := range summaryHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		xlsx.SetCellValue(summarySheet, cell, header)
	}

	responseRow := 2
	for sessionIdx, session := range sessions {
		summary, views, err := services.SummarizeSession(session.ID, true)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, ErrFailedExport)
			return
		}

		var firstCondition models.Condition
		database.DB.First(&firstCondition, "id = ?", session.ConditionID)

		for _, view := range views {
			var puzzle models.Puzzle
			var condition models.Condition
			if err := database.DB.First(&puzzle, "id = ?", view.PuzzleID).Error; err == nil {
				database.DB.First(&condition, "id = ?", puzzle.ConditionID)
			}

			values := []interface{}{
				session.PlayerName, session.ID, condition.Name,
				fmt.Sprintf("%d", puzzle.Order), puzzle.FEN, puzzle.CorrectMove,
				derefOrEmpty(view.MoveBeforeAdvice), view.TimeBeforeAdvice,
				derefOrEmpty(view.MoveAfterAdvice), view.TimeAfterAdvice,
				view.AdviceShown, view.AdviceRequested, view.MoveMatchesAdvice,
				view.UndoUsed, view.TimeExceeded, view.Skipped, view.CompletedAt,
			}
			for col, value := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, responseRow)
				xlsx.SetCellValue(responsesSheet, cell, value)
			}
			responseRow++
		}

		summaryValues := []interface{}{
			session.PlayerName, session.ID, firstCondition.Name,
			session.StartedAt, derefOrEmpty(session.CompletedAt),
			summary.Total, summary.Completed, summary.Skipped,
			summary.AdviceShown, summary.AdviceRequested, summary.FollowedAdvice,
			summary.UndoUsed, summary.TimeExceeded, summary.TotalTimeSpent,
		}
		for col, value := range summaryValues {
			cell, _ := excelize.CoordinatesToCellName(col+1, sessionIdx+2)
			xlsx.SetCellValue(summarySheet, cell, value)
		}
	}

	filename := fmt.Sprintf("experiment-%s.xlsx", experimentID)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := xlsx.Write(c.Writer); err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedExport)
	}
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
