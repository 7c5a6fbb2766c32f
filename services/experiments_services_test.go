package services

import (
	"errors"
	"testing"

	"api/database"
	"api/models"
)

func TestResolveEffectiveConfig(t *testing.T) {
	experiment := models.Experiment{
		AdviceFormat:     "text",
		TimerEnabled:     true,
		TimeLimitSeconds: 60,
	}

	resolved := ResolveEffectiveConfig(experiment, models.Condition{})
	if resolved.AdviceFormat != "text" || !resolved.TimerEnabled || resolved.TimeLimitSeconds != 60 {
		t.Fatalf("defaults not applied: %+v", resolved)
	}

	format := "arrow"
	enabled := false
	limit := 30
	resolved = ResolveEffectiveConfig(experiment, models.Condition{
		AdviceFormat:     &format,
		TimerEnabled:     &enabled,
		TimeLimitSeconds: &limit,
	})
	if resolved.AdviceFormat != "arrow" || resolved.TimerEnabled || resolved.TimeLimitSeconds != 30 {
		t.Fatalf("overrides not applied: %+v", resolved)
	}
}

func TestActivateExperiment_Exclusivity(t *testing.T) {
	setupTestDB(t)
	first, _ := seedExperiment(t, true, "A")
	second := models.Experiment{Name: "Second study", AdviceFormat: "text", TimeLimitSeconds: 60}
	if err := database.DB.Create(&second).Error; err != nil {
		t.Fatalf("failed to seed second experiment: %v", err)
	}

	activated, err := ActivateExperiment(second.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !activated.IsActive {
		t.Fatal("expected the experiment to be active")
	}

	var count int64
	database.DB.Model(&models.Experiment{}).Where("is_active = ?", true).Count(&count)
	if count != 1 {
		t.Fatalf("active experiments = %d, want exactly 1", count)
	}

	var previous models.Experiment
	database.DB.First(&previous, "id = ?", first.ID)
	if previous.IsActive {
		t.Fatal("previously active experiment was not deactivated")
	}
}

func TestDeleteExperiment_ActiveRejected(t *testing.T) {
	setupTestDB(t)
	experiment, _ := seedExperiment(t, true, "A")

	if err := DeleteExperiment(experiment.ID); !errors.Is(err, ErrExperimentActive) {
		t.Fatalf("got %v, want ErrExperimentActive", err)
	}

	if _, err := DeactivateExperiment(experiment.ID); err != nil {
		t.Fatalf("failed to deactivate: %v", err)
	}
	if err := DeleteExperiment(experiment.ID); err != nil {
		t.Fatalf("delete after deactivation failed: %v", err)
	}

	var count int64
	database.DB.Model(&models.Condition{}).Where("experiment_id = ?", experiment.ID).Count(&count)
	if count != 0 {
		t.Fatalf("conditions left behind: %d", count)
	}
}

func TestNextConditionOrder_FirstGap(t *testing.T) {
	setupTestDB(t)
	experiment, _ := seedExperiment(t, false)

	for _, order := range []int{1, 2, 4} {
		condition := models.Condition{
			ExperimentID: experiment.ID,
			Name:         "Set " + string(rune('0'+order)),
			Order:        order,
		}
		if err := database.DB.Create(&condition).Error; err != nil {
			t.Fatalf("failed to seed condition: %v", err)
		}
	}

	next, err := NextConditionOrder(experiment.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != 3 {
		t.Fatalf("next order = %d, want 3 (first gap)", next)
	}
}

func TestNextConditionOrder_Appends(t *testing.T) {
	setupTestDB(t)
	experiment, _ := seedExperiment(t, false, "A", "B")

	next, err := NextConditionOrder(experiment.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != 3 {
		t.Fatalf("next order = %d, want 3", next)
	}
}

func TestUpdateCondition_PartialKeepsOverrides(t *testing.T) {
	setupTestDB(t)
	_, conditions := seedExperiment(t, false, "A")

	format := "arrow"
	limit := 30
	if _, err := UpdateCondition(conditions[0].ID, ConditionUpdate{
		AdviceFormat:     &format,
		TimeLimitSeconds: &limit,
	}); err != nil {
		t.Fatalf("failed to set overrides: %v", err)
	}

	name := "Renamed"
	updated, err := UpdateCondition(conditions[0].ID, ConditionUpdate{Name: &name})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Fatalf("name = %s, want Renamed", updated.Name)
	}
	if updated.AdviceFormat == nil || *updated.AdviceFormat != "arrow" {
		t.Fatal("advice format override was lost by a partial update")
	}
	if updated.TimeLimitSeconds == nil || *updated.TimeLimitSeconds != 30 {
		t.Fatal("time limit override was lost by a partial update")
	}

	var stored models.Condition
	if err := database.DB.First(&stored, "id = ?", conditions[0].ID).Error; err != nil {
		t.Fatalf("failed to fetch condition: %v", err)
	}
	if stored.AdviceFormat == nil || *stored.AdviceFormat != "arrow" {
		t.Fatal("stored advice format override was lost")
	}
}

func TestUpdateCondition_RenameClash(t *testing.T) {
	setupTestDB(t)
	_, conditions := seedExperiment(t, false, "A", "B")

	name := "B"
	if _, err := UpdateCondition(conditions[0].ID, ConditionUpdate{Name: &name}); !errors.Is(err, ErrConditionNameTaken) {
		t.Fatalf("got %v, want ErrConditionNameTaken", err)
	}
}

func TestCreateCondition_DuplicateName(t *testing.T) {
	setupTestDB(t)
	experiment, _ := seedExperiment(t, false, "A")

	if _, err := CreateCondition(models.Condition{
		ExperimentID: experiment.ID,
		Name:         "A",
	}); !errors.Is(err, ErrConditionNameTaken) {
		t.Fatalf("got %v, want ErrConditionNameTaken", err)
	}
}

func TestReplaceConditionPuzzles_Wholesale(t *testing.T) {
	setupTestDB(t)
	_, conditions := seedExperiment(t, false, "A")
	conditionID := conditions[0].ID

	adviceText := "e2e4"
	confidence := 80
	firstSet := []PuzzleInput{
		{FEN: "fen-1", CorrectMove: "e2e4", AdviceText: &adviceText, Confidence: &confidence},
		{FEN: "fen-2", CorrectMove: "d2d4"},
	}
	if _, err := ReplaceConditionPuzzles(conditionID, firstSet); err != nil {
		t.Fatalf("first replacement failed: %v", err)
	}

	secondSet := []PuzzleInput{
		{FEN: "fen-3", CorrectMove: "g1f3"},
	}
	puzzles, err := ReplaceConditionPuzzles(conditionID, secondSet)
	if err != nil {
		t.Fatalf("second replacement failed: %v", err)
	}
	if len(puzzles) != 1 {
		t.Fatalf("returned puzzles = %d, want 1", len(puzzles))
	}

	var count int64
	database.DB.Model(&models.Puzzle{}).Where("condition_id = ?", conditionID).Count(&count)
	if count != 1 {
		t.Fatalf("stored puzzles = %d, want 1 after wholesale replace", count)
	}

	var stored models.Puzzle
	if err := database.DB.Where("condition_id = ?", conditionID).First(&stored).Error; err != nil {
		t.Fatalf("failed to fetch puzzle: %v", err)
	}
	if stored.Order != 1 || stored.FEN != "fen-3" {
		t.Fatalf("stored puzzle wrong: %+v", stored)
	}

	var adviceCount int64
	database.DB.Model(&models.Advice{}).Count(&adviceCount)
	if adviceCount != 0 {
		t.Fatalf("advice rows left behind: %d", adviceCount)
	}
}
