package services

import (
	"errors"
	"fmt"

	"api/database"
	"api/models"

	"gorm.io/gorm"
)

// SessionSummary aggregates automation-bias statistics over a session's
// recorded responses. It is a pure projection over the stored rows and is
// recomputed on every request; there are no cached counters to drift.
type SessionSummary struct {
	Total           int     `json:"total"`
	Completed       int     `json:"completed"`
	Skipped         int     `json:"skipped"`
	AdviceShown     int     `json:"advice_shown"`
	AdviceRequested int     `json:"advice_requested"`
	UndoUsed        int     `json:"undo_used"`
	TimeExceeded    int     `json:"time_exceeded"`
	FollowedAdvice  int     `json:"followed_advice"`
	TotalTimeSpent  float64 `json:"total_time_spent"`
}

// ResponseView exposes a response's stored fields together with derived ones
// so presentation layers do not re-derive them
type ResponseView struct {
	ID                string  `json:"id"`
	PuzzleID          string  `json:"puzzle_id"`
	MoveBeforeAdvice  *string `json:"move_before_advice"`
	TimeBeforeAdvice  float64 `json:"time_before_advice"`
	MoveAfterAdvice   *string `json:"move_after_advice"`
	TimeAfterAdvice   float64 `json:"time_after_advice"`
	TotalTime         float64 `json:"total_time"`
	AdviceShown       bool    `json:"advice_shown"`
	AdviceRequested   bool    `json:"advice_requested"`
	MoveMatchesAdvice bool    `json:"move_matches_advice"`
	UndoUsed          bool    `json:"undo_used"`
	TimeExceeded      bool    `json:"time_exceeded"`
	Skipped           bool    `json:"skipped"`
	CompletedAt       string  `json:"completed_at"`
}

// SummarizeSession computes the automation-bias summary for a session.
// When includeSkipped is false, skipped responses are left out of both the
// summary and the response list.
func SummarizeSession(sessionID string, includeSkipped bool) (SessionSummary, []ResponseView, error) {
	if sessionID == "" {
		return SessionSummary{}, nil, ErrMissingField
	}

	var session models.PlayerSession
	if err := database.DB.First(&session, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SessionSummary{}, nil, ErrSessionNotFound
		}
		return SessionSummary{}, nil, fmt.Errorf("failed to fetch session: %w", err)
	}

	query := database.DB.Where("session_id = ?", sessionID)
	if !includeSkipped {
		query = query.Where("skipped = ?", false)
	}

	var responses []models.PlayerResponse
	if err := query.Order("completed_at").Find(&responses).Error; err != nil {
		return SessionSummary{}, nil, fmt.Errorf("failed to fetch responses: %w", err)
	}

	summary := SessionSummary{}
	views := make([]ResponseView, 0, len(responses))
	for _, r := range responses {
		summary.Total++
		if r.Skipped {
			summary.Skipped++
		} else {
			summary.Completed++
		}
		if r.AdviceShown {
			summary.AdviceShown++
		}
		if r.AdviceRequested {
			summary.AdviceRequested++
		}
		if r.UndoUsed {
			summary.UndoUsed++
		}
		if r.TimeExceeded {
			summary.TimeExceeded++
		}
		if r.MoveMatchesAdvice {
			summary.FollowedAdvice++
		}
		summary.TotalTimeSpent += r.TimeBeforeAdvice + r.TimeAfterAdvice

		views = append(views, ResponseView{
			ID:                r.ID,
			PuzzleID:          r.PuzzleID,
			MoveBeforeAdvice:  r.MoveBeforeAdvice,
			TimeBeforeAdvice:  r.TimeBeforeAdvice,
			MoveAfterAdvice:   r.MoveAfterAdvice,
			TimeAfterAdvice:   r.TimeAfterAdvice,
			TotalTime:         r.TimeBeforeAdvice + r.TimeAfterAdvice,
			AdviceShown:       r.AdviceShown,
			AdviceRequested:   r.AdviceRequested,
			MoveMatchesAdvice: r.MoveMatchesAdvice,
			UndoUsed:          r.UndoUsed,
			TimeExceeded:      r.TimeExceeded,
			Skipped:           r.Skipped,
			CompletedAt:       r.CompletedAt,
		})
	}

	return summary, views, nil
}
