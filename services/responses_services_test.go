package services

import (
	"errors"
	"testing"

	"api/database"
	"api/models"
)

func seedSessionWithPuzzle(t *testing.T) (SessionAssignment, models.Puzzle) {
	t.Helper()

	_, conditions := seedExperiment(t, true, "A")
	puzzle := seedPuzzle(t, conditions[0].ID, 1, "e2e4")

	assignment, err := GetOrCreateSession("Alice", "")
	if err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	return assignment, puzzle
}

func TestRecordResponse_CorrectMove(t *testing.T) {
	setupTestDB(t)
	assignment, puzzle := seedSessionWithPuzzle(t)

	result, err := RecordResponse(ResponseInput{
		SessionID:        assignment.Session.ID,
		PuzzleID:         puzzle.ID,
		MoveAfterAdvice:  "e2e4",
		TimeBeforeAdvice: 4.5,
		TimeAfterAdvice:  2.5,
		AdviceShown:      true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsCorrect {
		t.Fatal("expected the response to be marked correct")
	}
	if result.TotalTime != 7.0 {
		t.Fatalf("total time = %v, want 7.0", result.TotalTime)
	}
	if result.SessionID != assignment.Session.ID || result.PlayerName != "Alice" {
		t.Fatalf("session identity not echoed: %+v", result)
	}
	if result.ExperimentID != assignment.Experiment.ID {
		t.Fatalf("experiment id = %s, want %s", result.ExperimentID, assignment.Experiment.ID)
	}
}

func TestRecordResponse_WrongMove(t *testing.T) {
	setupTestDB(t)
	assignment, puzzle := seedSessionWithPuzzle(t)

	result, err := RecordResponse(ResponseInput{
		SessionID:       assignment.Session.ID,
		PuzzleID:        puzzle.ID,
		MoveAfterAdvice: "d2d4",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsCorrect {
		t.Fatal("expected the response to be marked incorrect")
	}
}

func TestRecordResponse_SkippedNeverCorrect(t *testing.T) {
	setupTestDB(t)
	assignment, puzzle := seedSessionWithPuzzle(t)

	result, err := RecordResponse(ResponseInput{
		SessionID:       assignment.Session.ID,
		PuzzleID:        puzzle.ID,
		MoveAfterAdvice: "e2e4",
		Skipped:         true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsCorrect {
		t.Fatal("a skipped attempt must never be correct")
	}
	if !result.Skipped {
		t.Fatal("expected skipped=true in the result")
	}
}

func TestRecordResponse_Duplicate(t *testing.T) {
	setupTestDB(t)
	assignment, puzzle := seedSessionWithPuzzle(t)

	input := ResponseInput{
		SessionID:       assignment.Session.ID,
		PuzzleID:        puzzle.ID,
		MoveAfterAdvice: "e2e4",
	}

	first, err := RecordResponse(input)
	if err != nil {
		t.Fatalf("first submission failed: %v", err)
	}

	_, err = RecordResponse(input)
	conflict, ok := AsConflict(err)
	if !ok {
		t.Fatalf("got %v, want a ConflictError", err)
	}
	if conflict.ExistingID != first.ResponseID {
		t.Fatalf("conflict id = %s, want %s", conflict.ExistingID, first.ResponseID)
	}

	var count int64
	database.DB.Model(&models.PlayerResponse{}).
		Where("session_id = ? AND puzzle_id = ?", assignment.Session.ID, puzzle.ID).
		Count(&count)
	if count != 1 {
		t.Fatalf("response rows = %d, want exactly 1", count)
	}
}

func TestRecordResponse_InactiveExperiment(t *testing.T) {
	setupTestDB(t)
	assignment, puzzle := seedSessionWithPuzzle(t)

	if _, err := DeactivateExperiment(assignment.Experiment.ID); err != nil {
		t.Fatalf("failed to deactivate experiment: %v", err)
	}

	_, err := RecordResponse(ResponseInput{
		SessionID: assignment.Session.ID,
		PuzzleID:  puzzle.ID,
	})
	if !errors.Is(err, ErrExperimentInactive) {
		t.Fatalf("got %v, want ErrExperimentInactive", err)
	}
}

func TestRecordResponse_MissingFields(t *testing.T) {
	setupTestDB(t)

	if _, err := RecordResponse(ResponseInput{PuzzleID: "p"}); !errors.Is(err, ErrMissingField) {
		t.Fatalf("got %v, want ErrMissingField", err)
	}
	if _, err := RecordResponse(ResponseInput{SessionID: "s"}); !errors.Is(err, ErrMissingField) {
		t.Fatalf("got %v, want ErrMissingField", err)
	}
}

func TestRecordResponse_NotFound(t *testing.T) {
	setupTestDB(t)
	assignment, _ := seedSessionWithPuzzle(t)

	if _, err := RecordResponse(ResponseInput{SessionID: "missing", PuzzleID: "p"}); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("got %v, want ErrSessionNotFound", err)
	}
	if _, err := RecordResponse(ResponseInput{SessionID: assignment.Session.ID, PuzzleID: "missing"}); !errors.Is(err, ErrPuzzleNotFound) {
		t.Fatalf("got %v, want ErrPuzzleNotFound", err)
	}
}

func TestRecordResponse_NormalizesEmptyMoves(t *testing.T) {
	setupTestDB(t)
	assignment, puzzle := seedSessionWithPuzzle(t)

	result, err := RecordResponse(ResponseInput{
		SessionID:        assignment.Session.ID,
		PuzzleID:         puzzle.ID,
		MoveBeforeAdvice: "",
		MoveAfterAdvice:  "e2e4",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var stored models.PlayerResponse
	if err := database.DB.First(&stored, "id = ?", result.ResponseID).Error; err != nil {
		t.Fatalf("failed to fetch stored response: %v", err)
	}
	if stored.MoveBeforeAdvice != nil {
		t.Fatalf("move_before_advice = %v, want nil", *stored.MoveBeforeAdvice)
	}
	if stored.MoveAfterAdvice == nil || *stored.MoveAfterAdvice != "e2e4" {
		t.Fatal("move_after_advice not stored")
	}
}

func TestRecordResponse_StoresMoveRecords(t *testing.T) {
	setupTestDB(t)
	assignment, puzzle := seedSessionWithPuzzle(t)

	result, err := RecordResponse(ResponseInput{
		SessionID:       assignment.Session.ID,
		PuzzleID:        puzzle.ID,
		MoveAfterAdvice: "e2e4",
		Moves: []MoveInput{
			{Move: "d2d4", TimeTaken: 3.0, WasUndone: true},
			{Move: "e2e4", TimeTaken: 2.0},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var records []models.MoveRecord
	if err := database.DB.Where("response_id = ?", result.ResponseID).
		Order("move_number").Find(&records).Error; err != nil {
		t.Fatalf("failed to fetch move records: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("move records = %d, want 2", len(records))
	}
	if records[0].MoveNumber != 1 || records[0].Move != "d2d4" || !records[0].WasUndone {
		t.Fatalf("first record wrong: %+v", records[0])
	}
	if records[1].MoveNumber != 2 || records[1].Move != "e2e4" {
		t.Fatalf("second record wrong: %+v", records[1])
	}
}
