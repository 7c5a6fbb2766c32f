package services

import (
	"errors"
	"fmt"
)

// Classified failures shared by the service layer. Handlers map these onto
// HTTP statuses; anything not matched here is treated as a storage failure.
var (
	ErrPlayerNameRequired  = errors.New("player name is required")
	ErrMissingField        = errors.New("missing required field")
	ErrNoActiveExperiment  = errors.New("no active experiment")
	ErrExperimentNotFound  = errors.New("experiment not found")
	ErrExperimentActive    = errors.New("experiment is active")
	ErrExperimentInactive  = errors.New("experiment is no longer active")
	ErrConditionNotFound   = errors.New("condition not found")
	ErrConditionNameTaken  = errors.New("condition name already used in this experiment")
	ErrSessionNotFound     = errors.New("session not found")
	ErrPuzzleNotFound      = errors.New("puzzle not found")
)

// ConflictError reports that the resource being created already exists. The
// ID of the existing row is carried so callers can treat the conflict as a
// success with an existing resource instead of a fatal error.
type ConflictError struct {
	Resource   string
	ExistingID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists (id %s)", e.Resource, e.ExistingID)
}

// AsConflict unwraps err into a ConflictError if it is one
func AsConflict(err error) (*ConflictError, bool) {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return conflict, true
	}
	return nil, false
}
