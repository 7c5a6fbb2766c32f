package conditions

import (
	"api/services"
	"api/utils"
)

// Error messages
const (
	ErrConditionNotFound   = "Condition not found"
	ErrExperimentNotFound  = "Experiment not found"
	ErrConditionNameTaken  = "A condition with this name already exists in the experiment"
	ErrInvalidRequest      = "Invalid request data"
	ErrFailedFetch         = "Failed to fetch conditions"
	ErrFailedCreate        = "Failed to create condition"
	ErrFailedUpdate        = "Failed to update condition"
	ErrFailedDelete        = "Failed to delete condition"
	ErrFailedReplace       = "Failed to replace puzzles"
)

// CreateConditionRequest model for creating a condition
type CreateConditionRequest struct {
	ExperimentID     string  `json:"experiment_id" binding:"required"`
	Name             string  `json:"name" binding:"required"`
	AdviceFormat     *string `json:"advice_format"`
	TimerEnabled     *bool   `json:"timer_enabled"`
	TimeLimitSeconds *int    `json:"time_limit_seconds"`
}

// UpdateConditionRequest model for updating a condition's overrides
type UpdateConditionRequest struct {
	Name             *string `json:"name"`
	AdviceFormat     *string `json:"advice_format"`
	TimerEnabled     *bool   `json:"timer_enabled"`
	TimeLimitSeconds *int    `json:"time_limit_seconds"`
}

// ReplacePuzzlesRequest model for wholesale puzzle-set replacement
type ReplacePuzzlesRequest struct {
	Puzzles []services.PuzzleInput `json:"puzzles" binding:"required"`
}

// PuzzleView decorates a puzzle with its advice's parsed move for board highlighting
type PuzzleView struct {
	ID          string            `json:"id"`
	ConditionID string            `json:"condition_id"`
	FEN         string            `json:"fen"`
	CorrectMove string            `json:"correct_move"`
	Order       int               `json:"order"`
	Advice      interface{}       `json:"advice,omitempty"`
	AdviceMove  *utils.AdviceMove `json:"advice_move,omitempty"`
}
