package responses

import (
	"errors"
	"net/http"
	"strconv"

	"api/metrics"
	"api/realtime"
	"api/services"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// RecordResponse stores a single puzzle-response event
// @Summary Record a puzzle response
// @Description Record the moves, timings and advice-interaction flags for one puzzle. A duplicate submission returns 409 with the existing response id.
// @Tags Responses
// @Accept json
// @Produce json
// @Param responseRequest body RecordResponseRequest true "Response payload"
// @Success 201 {object} services.ResponseResult
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /player-responses [post]
func RecordResponse(c *gin.Context) {
	// Bound with ShouldBindBodyWith because the cooldown middleware already
	// read the body to extract the session key
	var req RecordResponseRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		respondWithError(c, http.StatusBadRequest, ErrMissingField)
		return
	}

	moves := make([]services.MoveInput, 0, len(req.Moves))
	for _, move := range req.Moves {
		moves = append(moves, services.MoveInput{
			Move:      move.Move,
			TimeTaken: move.TimeTaken,
			WasUndone: move.WasUndone,
		})
	}

	result, err := services.RecordResponse(services.ResponseInput{
		SessionID:         req.SessionID,
		PuzzleID:          req.PuzzleID,
		MoveBeforeAdvice:  req.MoveBeforeAdvice,
		TimeBeforeAdvice:  req.TimeBeforeAdvice,
		MoveAfterAdvice:   req.MoveAfterAdvice,
		TimeAfterAdvice:   req.TimeAfterAdvice,
		AdviceShown:       req.AdviceShown,
		AdviceRequested:   req.AdviceRequested,
		MoveMatchesAdvice: req.MoveMatchesAdvice,
		UndoUsed:          req.UndoUsed,
		TimeExceeded:      req.TimeExceeded,
		Skipped:           req.Skipped,
		Moves:             moves,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingField):
			respondWithError(c, http.StatusBadRequest, ErrMissingField)
		case errors.Is(err, services.ErrSessionNotFound):
			respondWithError(c, http.StatusNotFound, ErrSessionNotFound)
		case errors.Is(err, services.ErrPuzzleNotFound):
			respondWithError(c, http.StatusNotFound, ErrPuzzleNotFound)
		case errors.Is(err, services.ErrExperimentInactive):
			respondWithError(c, http.StatusForbidden, ErrExperimentInactive)
		default:
			if conflict, ok := services.AsConflict(err); ok {
				metrics.DuplicateConflicts.WithLabelValues("response").Inc()
				c.JSON(http.StatusConflict, gin.H{
					"error":      ErrAlreadyRecorded,
					"responseId": conflict.ExistingID,
				})
				return
			}
			respondWithError(c, http.StatusInternalServerError, ErrFailedRecord)
		}
		return
	}

	metrics.ResponsesRecorded.WithLabelValues(result.ExperimentID, strconv.FormatBool(result.Skipped)).Inc()
	realtime.BroadcastResponseUpdate(realtime.ResponseUpdate{
		ExperimentID: result.ExperimentID,
		SessionID:    result.SessionID,
		PlayerName:   result.PlayerName,
		Result:       result,
	})

	c.JSON(http.StatusCreated, result)
}

// GetSessionResponses summarizes a session's recorded responses
// @Summary Get a session's responses and summary
// @Description Get the automation-bias summary and per-response detail for a session
// @Tags Responses
// @Produce json
// @Param sessionId query string true "Session ID"
// @Param includeSkipped query bool false "Include skipped responses (default true)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /player-responses [get]
func GetSessionResponses(c *gin.Context) {
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		respondWithError(c, http.StatusBadRequest, ErrMissingSessionID)
		return
	}

	includeSkipped := true
	if raw := c.Query("includeSkipped"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
			return
		}
		includeSkipped = parsed
	}

	summary, views, err := services.SummarizeSession(sessionID, includeSkipped)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingField):
			respondWithError(c, http.StatusBadRequest, ErrMissingSessionID)
		case errors.Is(err, services.ErrSessionNotFound):
			respondWithError(c, http.StatusNotFound, ErrSessionNotFound)
		default:
			respondWithError(c, http.StatusInternalServerError, ErrFailedFetchSummary)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId": sessionID,
		"summary":   summary,
		"responses": views,
	})
}
