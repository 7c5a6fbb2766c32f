package services

import (
	"errors"
	"testing"

	"api/models"
)

func seedResponses(t *testing.T) (SessionAssignment, []models.Puzzle) {
	t.Helper()

	_, conditions := seedExperiment(t, true, "A")
	puzzles := []models.Puzzle{
		seedPuzzle(t, conditions[0].ID, 1, "e2e4"),
		seedPuzzle(t, conditions[0].ID, 2, "d2d4"),
		seedPuzzle(t, conditions[0].ID, 3, "g1f3"),
	}

	assignment, err := GetOrCreateSession("Alice", "")
	if err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}

	inputs := []ResponseInput{
		{
			SessionID:         assignment.Session.ID,
			PuzzleID:          puzzles[0].ID,
			MoveAfterAdvice:   "e2e4",
			TimeBeforeAdvice:  2.0,
			TimeAfterAdvice:   1.0,
			AdviceShown:       true,
			AdviceRequested:   true,
			MoveMatchesAdvice: true,
		},
		{
			SessionID:        assignment.Session.ID,
			PuzzleID:         puzzles[1].ID,
			MoveAfterAdvice:  "e2e4",
			TimeBeforeAdvice: 3.0,
			TimeAfterAdvice:  2.0,
			AdviceShown:      true,
			UndoUsed:         true,
			TimeExceeded:     true,
		},
		{
			SessionID:        assignment.Session.ID,
			PuzzleID:         puzzles[2].ID,
			Skipped:          true,
			TimeBeforeAdvice: 1.5,
		},
	}
	for _, input := range inputs {
		if _, err := RecordResponse(input); err != nil {
			t.Fatalf("failed to record response: %v", err)
		}
	}

	return assignment, puzzles
}

func TestSummarizeSession(t *testing.T) {
	setupTestDB(t)
	assignment, _ := seedResponses(t)

	summary, views, err := SummarizeSession(assignment.Session.ID, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Total != 3 || len(views) != 3 {
		t.Fatalf("total = %d, views = %d, want 3 each", summary.Total, len(views))
	}
	if summary.Completed != 2 {
		t.Fatalf("completed = %d, want 2", summary.Completed)
	}
	if summary.Skipped != 1 {
		t.Fatalf("skipped = %d, want 1", summary.Skipped)
	}
	if summary.AdviceShown != 2 {
		t.Fatalf("advice shown = %d, want 2", summary.AdviceShown)
	}
	if summary.AdviceRequested != 1 {
		t.Fatalf("advice requested = %d, want 1", summary.AdviceRequested)
	}
	if summary.UndoUsed != 1 {
		t.Fatalf("undo used = %d, want 1", summary.UndoUsed)
	}
	if summary.TimeExceeded != 1 {
		t.Fatalf("time exceeded = %d, want 1", summary.TimeExceeded)
	}
	if summary.FollowedAdvice != 1 {
		t.Fatalf("followed advice = %d, want 1", summary.FollowedAdvice)
	}
	if summary.TotalTimeSpent != 9.5 {
		t.Fatalf("total time = %v, want 9.5", summary.TotalTimeSpent)
	}

	var viewTimeSum float64
	for _, view := range views {
		if view.TotalTime != view.TimeBeforeAdvice+view.TimeAfterAdvice {
			t.Fatalf("derived total time mismatch for response %s", view.ID)
		}
		viewTimeSum += view.TotalTime
	}
	if viewTimeSum != summary.TotalTimeSpent {
		t.Fatalf("summary time %v disagrees with responses %v", summary.TotalTimeSpent, viewTimeSum)
	}
}

func TestSummarizeSession_ExcludeSkipped(t *testing.T) {
	setupTestDB(t)
	assignment, _ := seedResponses(t)

	summary, views, err := SummarizeSession(assignment.Session.ID, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Total != 2 || len(views) != 2 {
		t.Fatalf("total = %d, views = %d, want 2 each", summary.Total, len(views))
	}
	if summary.Skipped != 0 {
		t.Fatalf("skipped = %d, want 0", summary.Skipped)
	}
	if summary.TotalTimeSpent != 8.0 {
		t.Fatalf("total time = %v, want 8.0", summary.TotalTimeSpent)
	}
	for _, view := range views {
		if view.Skipped {
			t.Fatal("skipped response leaked into the filtered list")
		}
	}
}

func TestSummarizeSession_Errors(t *testing.T) {
	setupTestDB(t)

	if _, _, err := SummarizeSession("", true); !errors.Is(err, ErrMissingField) {
		t.Fatalf("got %v, want ErrMissingField", err)
	}
	if _, _, err := SummarizeSession("missing", true); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("got %v, want ErrSessionNotFound", err)
	}
}

func TestSummarizeSession_EmptySession(t *testing.T) {
	setupTestDB(t)
	seedExperiment(t, true, "A")

	assignment, err := GetOrCreateSession("Alice", "")
	if err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}

	summary, views, err := SummarizeSession(assignment.Session.ID, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Total != 0 || len(views) != 0 {
		t.Fatalf("expected empty summary, got total=%d views=%d", summary.Total, len(views))
	}
}
