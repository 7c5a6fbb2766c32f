package services

import (
	"fmt"
	"testing"

	"api/database"
	"api/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the global database handle at a fresh in-memory sqlite
// database for the duration of one test
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	database.DB = db
	return db
}

// seedExperiment creates an experiment with one condition per given name,
// ordered as supplied
func seedExperiment(t *testing.T, active bool, conditionNames ...string) (models.Experiment, []models.Condition) {
	t.Helper()

	experiment := models.Experiment{
		Name:             "Chess advice study",
		AdviceFormat:     "text",
		TimerEnabled:     true,
		TimeLimitSeconds: 60,
		IsActive:         active,
	}
	if err := database.DB.Create(&experiment).Error; err != nil {
		t.Fatalf("failed to seed experiment: %v", err)
	}

	conditions := make([]models.Condition, 0, len(conditionNames))
	for i, name := range conditionNames {
		condition := models.Condition{
			ExperimentID: experiment.ID,
			Name:         name,
			Order:        i + 1,
		}
		if err := database.DB.Create(&condition).Error; err != nil {
			t.Fatalf("failed to seed condition %s: %v", name, err)
		}
		conditions = append(conditions, condition)
	}

	return experiment, conditions
}

// seedPuzzle creates a puzzle in the given condition
func seedPuzzle(t *testing.T, conditionID string, order int, correctMove string) models.Puzzle {
	t.Helper()

	puzzle := models.Puzzle{
		ConditionID: conditionID,
		FEN:         "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		CorrectMove: correctMove,
		Order:       order,
	}
	if err := database.DB.Create(&puzzle).Error; err != nil {
		t.Fatalf("failed to seed puzzle: %v", err)
	}
	return puzzle
}
