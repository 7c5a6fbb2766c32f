package responses

import (
	"github.com/gin-gonic/gin"
)

// Error messages
const (
	ErrMissingField        = "sessionId and puzzleId are required"
	ErrSessionNotFound     = "Session not found"
	ErrPuzzleNotFound      = "Puzzle not found"
	ErrExperimentInactive  = "Experiment is no longer active"
	ErrInvalidRequest      = "Invalid request data"
	ErrFailedRecord        = "Failed to record response"
	ErrFailedFetchSummary  = "Failed to fetch responses"
	ErrMissingSessionID    = "sessionId is required"
	ErrAlreadyRecorded     = "Response already recorded for this puzzle"
)

// MoveEntry is one attempted move in a response submission
type MoveEntry struct {
	Move      string  `json:"move" binding:"required"`
	TimeTaken float64 `json:"timeTaken"`
	WasUndone bool    `json:"wasUndone"`
}

// RecordResponseRequest model for submitting a puzzle response
type RecordResponseRequest struct {
	SessionID         string      `json:"sessionId" binding:"required"`
	PuzzleID          string      `json:"puzzleId" binding:"required"`
	MoveBeforeAdvice  string      `json:"moveBeforeAdvice"`
	TimeBeforeAdvice  float64     `json:"timeBeforeAdvice"`
	MoveAfterAdvice   string      `json:"moveAfterAdvice"`
	TimeAfterAdvice   float64     `json:"timeAfterAdvice"`
	AdviceShown       bool        `json:"adviceShown"`
	AdviceRequested   bool        `json:"adviceRequested"`
	MoveMatchesAdvice bool        `json:"moveMatchesAdvice"`
	UndoUsed          bool        `json:"undoUsed"`
	TimeExceeded      bool        `json:"timeExceeded"`
	Skipped           bool        `json:"skipped"`
	Moves             []MoveEntry `json:"moves"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
