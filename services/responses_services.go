package services

import (
	"errors"
	"fmt"
	"time"

	"api/database"
	"api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MoveInput is one attempted move inside a response submission. Moves are
// numbered by their position in the submitted array, in the order the caller
// supplied them.
type MoveInput struct {
	Move      string  `json:"move"`
	TimeTaken float64 `json:"time_taken"`
	WasUndone bool    `json:"was_undone"`
}

// ResponseInput is the payload for recording a single puzzle response
type ResponseInput struct {
	SessionID        string      `json:"session_id"`
	PuzzleID         string      `json:"puzzle_id"`
	MoveBeforeAdvice string      `json:"move_before_advice"`
	TimeBeforeAdvice float64     `json:"time_before_advice"`
	MoveAfterAdvice  string      `json:"move_after_advice"`
	TimeAfterAdvice  float64     `json:"time_after_advice"`
	AdviceShown      bool        `json:"advice_shown"`
	AdviceRequested  bool        `json:"advice_requested"`
	MoveMatchesAdvice bool       `json:"move_matches_advice"`
	UndoUsed         bool        `json:"undo_used"`
	TimeExceeded     bool        `json:"time_exceeded"`
	Skipped          bool        `json:"skipped"`
	Moves            []MoveInput `json:"moves"`
}

// ResponseResult summarizes a recorded response for the caller. SessionID,
// PlayerName and ExperimentID echo the session the response belongs to so
// callers do not have to load it again.
type ResponseResult struct {
	ResponseID       string  `json:"response_id"`
	SessionID        string  `json:"session_id"`
	PlayerName       string  `json:"player_name"`
	ExperimentID     string  `json:"experiment_id"`
	IsCorrect        bool    `json:"is_correct"`
	Skipped          bool    `json:"skipped"`
	TimeBeforeAdvice float64 `json:"time_before_advice"`
	TimeAfterAdvice  float64 `json:"time_after_advice"`
	TotalTime        float64 `json:"total_time"`
}

// RecordResponse validates and stores a single puzzle-response event.
//
// At most one response exists per (session, puzzle) pair: a duplicate
// submission fails with a ConflictError carrying the existing response's id
// so callers can treat it as already recorded. The response row and its move
// records are written in one transaction.
func RecordResponse(input ResponseInput) (ResponseResult, error) {
	if input.SessionID == "" || input.PuzzleID == "" {
		return ResponseResult{}, ErrMissingField
	}

	var session models.PlayerSession
	if err := database.DB.First(&session, "id = ?", input.SessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ResponseResult{}, ErrSessionNotFound
		}
		return ResponseResult{}, fmt.Errorf("failed to fetch session: %w", err)
	}

	var experiment models.Experiment
	if err := database.DB.First(&experiment, "id = ?", session.ExperimentID).Error; err != nil {
		return ResponseResult{}, fmt.Errorf("failed to fetch experiment: %w", err)
	}
	if !experiment.IsActive {
		return ResponseResult{}, ErrExperimentInactive
	}

	var puzzle models.Puzzle
	if err := database.DB.First(&puzzle, "id = ?", input.PuzzleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ResponseResult{}, ErrPuzzleNotFound
		}
		return ResponseResult{}, fmt.Errorf("failed to fetch puzzle: %w", err)
	}

	var existing models.PlayerResponse
	if err := database.DB.Where("session_id = ? AND puzzle_id = ?", input.SessionID, input.PuzzleID).
		First(&existing).Error; err == nil {
		return ResponseResult{}, &ConflictError{Resource: "response", ExistingID: existing.ID}
	}

	// Only the after-advice move is compared against ground truth, and a
	// skipped attempt is never correct
	isCorrect := !input.Skipped && input.MoveAfterAdvice == puzzle.CorrectMove

	response := models.PlayerResponse{
		ID:                uuid.NewString(),
		SessionID:         input.SessionID,
		PuzzleID:          input.PuzzleID,
		MoveBeforeAdvice:  normalizeMove(input.MoveBeforeAdvice),
		TimeBeforeAdvice:  input.TimeBeforeAdvice,
		MoveAfterAdvice:   normalizeMove(input.MoveAfterAdvice),
		TimeAfterAdvice:   input.TimeAfterAdvice,
		AdviceShown:       input.AdviceShown,
		AdviceRequested:   input.AdviceRequested,
		MoveMatchesAdvice: input.MoveMatchesAdvice,
		UndoUsed:          input.UndoUsed,
		TimeExceeded:      input.TimeExceeded,
		Skipped:           input.Skipped,
		CompletedAt:       time.Now().Format(time.RFC3339),
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&response).Error; err != nil {
			return err
		}
		for i, move := range input.Moves {
			record := models.MoveRecord{
				ID:         uuid.NewString(),
				ResponseID: response.ID,
				Move:       move.Move,
				MoveNumber: i + 1,
				TimeTaken:  move.TimeTaken,
				WasUndone:  move.WasUndone,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// Lost the race on (session_id, puzzle_id): surface the winner's id
		var winner models.PlayerResponse
		if dbErr := database.DB.Where("session_id = ? AND puzzle_id = ?", input.SessionID, input.PuzzleID).
			First(&winner).Error; dbErr == nil {
			return ResponseResult{}, &ConflictError{Resource: "response", ExistingID: winner.ID}
		}
		return ResponseResult{}, fmt.Errorf("failed to record response: %w", err)
	}

	return ResponseResult{
		ResponseID:       response.ID,
		SessionID:        session.ID,
		PlayerName:       session.PlayerName,
		ExperimentID:     session.ExperimentID,
		IsCorrect:        isCorrect,
		Skipped:          response.Skipped,
		TimeBeforeAdvice: response.TimeBeforeAdvice,
		TimeAfterAdvice:  response.TimeAfterAdvice,
		TotalTime:        response.TimeBeforeAdvice + response.TimeAfterAdvice,
	}, nil
}

// normalizeMove maps empty strings to nil so an absent move is structurally
// distinct from an empty one
func normalizeMove(move string) *string {
	if move == "" {
		return nil
	}
	return &move
}
