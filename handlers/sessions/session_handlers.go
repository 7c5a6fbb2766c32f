package sessions

import (
	"errors"
	"net/http"

	"api/metrics"
	"api/services"

	"github.com/gin-gonic/gin"
)

// EnterExperiment resolves or creates the player's session in the active experiment
// @Summary Enter the active experiment
// @Description Creates a session with a counterbalanced condition order, or returns the existing one for this player name
// @Tags Sessions
// @Accept json
// @Produce json
// @Param sessionRequest body CreateSessionRequest true "Session request"
// @Success 200 {object} SessionResponse
// @Success 201 {object} SessionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /sessions [post]
func EnterExperiment(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, ErrPlayerNameRequired)
		return
	}

	assignment, err := services.GetOrCreateSession(req.PlayerName, req.ExperimentID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPlayerNameRequired):
			respondWithError(c, http.StatusBadRequest, ErrPlayerNameRequired)
		case errors.Is(err, services.ErrNoActiveExperiment), errors.Is(err, services.ErrExperimentNotFound):
			respondWithError(c, http.StatusNotFound, ErrNoActiveExperiment)
		case errors.Is(err, services.ErrConditionNotFound):
			respondWithError(c, http.StatusNotFound, "Experiment has no conditions")
		default:
			if conflict, ok := services.AsConflict(err); ok {
				metrics.DuplicateConflicts.WithLabelValues("session").Inc()
				c.JSON(http.StatusConflict, gin.H{
					"error":     "Session already exists for this player",
					"sessionId": conflict.ExistingID,
				})
				return
			}
			respondWithError(c, http.StatusInternalServerError, ErrFailedFetchSession)
		}
		return
	}

	status := http.StatusCreated
	if assignment.Existing {
		status = http.StatusOK
	} else {
		metrics.SessionsAssigned.WithLabelValues(assignment.Experiment.ID).Inc()
	}
	c.JSON(status, sessionResponseFromAssignment(assignment))
}

// GetSession retrieves a session by id or player name, with progress counts
// @Summary Get a session
// @Description Get session detail, counterbalancing order and progress counts
// @Tags Sessions
// @Produce json
// @Param sessionId query string false "Session ID"
// @Param playerName query string false "Player name (resolved against the active experiment)"
// @Success 200 {object} SessionDetailResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sessions [get]
func GetSession(c *gin.Context) {
	sessionID := c.Query("sessionId")
	playerName := c.Query("playerName")
	if sessionID == "" && playerName == "" {
		respondWithError(c, http.StatusBadRequest, ErrMissingLookupParam)
		return
	}

	var assignment services.SessionAssignment
	var err error
	if sessionID != "" {
		assignment, err = services.GetSessionByID(sessionID)
	} else {
		assignment, err = services.GetSessionByPlayerName(playerName)
	}
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSessionNotFound):
			respondWithError(c, http.StatusNotFound, ErrSessionNotFound)
		case errors.Is(err, services.ErrNoActiveExperiment):
			respondWithError(c, http.StatusNotFound, ErrNoActiveExperiment)
		default:
			respondWithError(c, http.StatusInternalServerError, ErrFailedFetchSession)
		}
		return
	}

	progress, err := services.GetSessionProgress(assignment.Session)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedFetchSession)
		return
	}

	c.JSON(http.StatusOK, SessionDetailResponse{
		SessionResponse: sessionResponseFromAssignment(assignment),
		Progress:        progress,
	})
}

// UpdateSession partially updates a session's progress fields
// @Summary Update a session
// @Description Update the completed flag and/or display level of a session
// @Tags Sessions
// @Accept json
// @Produce json
// @Param updateRequest body UpdateSessionRequest true "Update request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sessions [put]
func UpdateSession(c *gin.Context) {
	var req UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	session, err := services.UpdateSession(req.SessionID, req.Completed, req.DisplayLevel)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			respondWithError(c, http.StatusNotFound, ErrSessionNotFound)
			return
		}
		respondWithError(c, http.StatusInternalServerError, "Failed to update session")
		return
	}

	c.JSON(http.StatusOK, session)
}
