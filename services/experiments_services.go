package services

import (
	"errors"
	"fmt"

	"api/database"
	"api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EffectiveConfig is the advice/timer configuration that actually applies to
// a condition once its overrides have been resolved against the experiment
// defaults. Computed once instead of repeating the fallback at every use site.
type EffectiveConfig struct {
	AdviceFormat     string `json:"advice_format"`
	TimerEnabled     bool   `json:"timer_enabled"`
	TimeLimitSeconds int    `json:"time_limit_seconds"`
}

// ResolveEffectiveConfig applies the condition's nullable overrides on top of
// the experiment defaults
func ResolveEffectiveConfig(experiment models.Experiment, condition models.Condition) EffectiveConfig {
	resolved := EffectiveConfig{
		AdviceFormat:     experiment.AdviceFormat,
		TimerEnabled:     experiment.TimerEnabled,
		TimeLimitSeconds: experiment.TimeLimitSeconds,
	}
	if condition.AdviceFormat != nil {
		resolved.AdviceFormat = *condition.AdviceFormat
	}
	if condition.TimerEnabled != nil {
		resolved.TimerEnabled = *condition.TimerEnabled
	}
	if condition.TimeLimitSeconds != nil {
		resolved.TimeLimitSeconds = *condition.TimeLimitSeconds
	}
	return resolved
}

// GetActiveExperiment returns the currently active experiment
func GetActiveExperiment() (models.Experiment, error) {
	var experiment models.Experiment
	if err := database.DB.Where("is_active = ?", true).First(&experiment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Experiment{}, ErrNoActiveExperiment
		}
		return models.Experiment{}, fmt.Errorf("failed to fetch active experiment: %w", err)
	}
	return experiment, nil
}

// ActivateExperiment makes the given experiment the single active one.
// All other experiments are deactivated first; a brief window where none is
// active is tolerated.
func ActivateExperiment(experimentID string) (models.Experiment, error) {
	var experiment models.Experiment
	if err := database.DB.First(&experiment, "id = ?", experimentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Experiment{}, ErrExperimentNotFound
		}
		return models.Experiment{}, fmt.Errorf("failed to fetch experiment: %w", err)
	}

	if err := database.DB.Model(&models.Experiment{}).
		Where("id <> ?", experimentID).
		Update("is_active", false).Error; err != nil {
		return models.Experiment{}, fmt.Errorf("failed to deactivate experiments: %w", err)
	}

	if err := database.DB.Model(&experiment).Update("is_active", true).Error; err != nil {
		return models.Experiment{}, fmt.Errorf("failed to activate experiment: %w", err)
	}

	experiment.IsActive = true
	return experiment, nil
}

// DeactivateExperiment clears the active flag on the given experiment
func DeactivateExperiment(experimentID string) (models.Experiment, error) {
	var experiment models.Experiment
	if err := database.DB.First(&experiment, "id = ?", experimentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Experiment{}, ErrExperimentNotFound
		}
		return models.Experiment{}, fmt.Errorf("failed to fetch experiment: %w", err)
	}

	if err := database.DB.Model(&experiment).Update("is_active", false).Error; err != nil {
		return models.Experiment{}, fmt.Errorf("failed to deactivate experiment: %w", err)
	}

	experiment.IsActive = false
	return experiment, nil
}

// DeleteExperiment removes an inactive experiment and everything it owns
func DeleteExperiment(experimentID string) error {
	var experiment models.Experiment
	if err := database.DB.First(&experiment, "id = ?", experimentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExperimentNotFound
		}
		return fmt.Errorf("failed to fetch experiment: %w", err)
	}

	if experiment.IsActive {
		return ErrExperimentActive
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		var conditionIDs []string
		if err := tx.Model(&models.Condition{}).
			Where("experiment_id = ?", experimentID).
			Pluck("id", &conditionIDs).Error; err != nil {
			return err
		}

		if len(conditionIDs) > 0 {
			if err := deleteConditionPuzzles(tx, conditionIDs); err != nil {
				return err
			}
			if err := tx.Where("experiment_id = ?", experimentID).Delete(&models.Condition{}).Error; err != nil {
				return err
			}
		}

		var sessionIDs []string
		if err := tx.Model(&models.PlayerSession{}).
			Where("experiment_id = ?", experimentID).
			Pluck("id", &sessionIDs).Error; err != nil {
			return err
		}
		if len(sessionIDs) > 0 {
			var responseIDs []string
			if err := tx.Model(&models.PlayerResponse{}).
				Where("session_id IN ?", sessionIDs).
				Pluck("id", &responseIDs).Error; err != nil {
				return err
			}
			if len(responseIDs) > 0 {
				if err := tx.Where("response_id IN ?", responseIDs).Delete(&models.MoveRecord{}).Error; err != nil {
					return err
				}
				if err := tx.Where("id IN ?", responseIDs).Delete(&models.PlayerResponse{}).Error; err != nil {
					return err
				}
			}
		}

		if err := tx.Where("experiment_id = ?", experimentID).Delete(&models.SessionExperimentOrder{}).Error; err != nil {
			return err
		}
		if err := tx.Where("experiment_id = ?", experimentID).Delete(&models.PlayerSession{}).Error; err != nil {
			return err
		}
		return tx.Delete(&experiment).Error
	})
}

// NextConditionOrder returns the lowest positive integer missing from the
// experiment's existing condition orders, or the next position after the
// highest when the sequence has no gap
func NextConditionOrder(experimentID string) (int, error) {
	var orders []int
	if err := database.DB.Model(&models.Condition{}).
		Where("experiment_id = ?", experimentID).
		Order("condition_order").
		Pluck("condition_order", &orders).Error; err != nil {
		return 0, fmt.Errorf("failed to fetch condition orders: %w", err)
	}

	used := make(map[int]bool, len(orders))
	for _, order := range orders {
		used[order] = true
	}
	for candidate := 1; ; candidate++ {
		if !used[candidate] {
			return candidate, nil
		}
	}
}

// CreateCondition creates a condition with a first-gap order assignment.
// Duplicate names within the experiment are rejected as a conflict.
func CreateCondition(condition models.Condition) (models.Condition, error) {
	var experiment models.Experiment
	if err := database.DB.First(&experiment, "id = ?", condition.ExperimentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Condition{}, ErrExperimentNotFound
		}
		return models.Condition{}, fmt.Errorf("failed to fetch experiment: %w", err)
	}

	var existing models.Condition
	if err := database.DB.Where("experiment_id = ? AND name = ?", condition.ExperimentID, condition.Name).
		First(&existing).Error; err == nil {
		return models.Condition{}, ErrConditionNameTaken
	}

	order, err := NextConditionOrder(condition.ExperimentID)
	if err != nil {
		return models.Condition{}, err
	}

	condition.ID = uuid.NewString()
	condition.Order = order
	if err := database.DB.Create(&condition).Error; err != nil {
		// Lost a race on the (experiment, name) unique index
		if dbErr := database.DB.Where("experiment_id = ? AND name = ?", condition.ExperimentID, condition.Name).
			First(&existing).Error; dbErr == nil {
			return models.Condition{}, ErrConditionNameTaken
		}
		return models.Condition{}, fmt.Errorf("failed to create condition: %w", err)
	}

	return condition, nil
}

// ConditionUpdate carries the optional fields of a condition update. Nil
// fields are left untouched so a partial update cannot clear an existing
// override by omission.
type ConditionUpdate struct {
	Name             *string
	AdviceFormat     *string
	TimerEnabled     *bool
	TimeLimitSeconds *int
}

// UpdateCondition applies a partial update to a condition
func UpdateCondition(conditionID string, update ConditionUpdate) (models.Condition, error) {
	var condition models.Condition
	if err := database.DB.First(&condition, "id = ?", conditionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Condition{}, ErrConditionNotFound
		}
		return models.Condition{}, fmt.Errorf("failed to fetch condition: %w", err)
	}

	if update.Name != nil && *update.Name != condition.Name {
		var clash models.Condition
		if err := database.DB.Where("experiment_id = ? AND name = ? AND id <> ?",
			condition.ExperimentID, *update.Name, conditionID).
			First(&clash).Error; err == nil {
			return models.Condition{}, ErrConditionNameTaken
		}
		condition.Name = *update.Name
	}
	if update.AdviceFormat != nil {
		condition.AdviceFormat = update.AdviceFormat
	}
	if update.TimerEnabled != nil {
		condition.TimerEnabled = update.TimerEnabled
	}
	if update.TimeLimitSeconds != nil {
		condition.TimeLimitSeconds = update.TimeLimitSeconds
	}

	if err := database.DB.Save(&condition).Error; err != nil {
		return models.Condition{}, fmt.Errorf("failed to update condition: %w", err)
	}
	return condition, nil
}

// DeleteCondition removes a condition and cascades to its puzzles
func DeleteCondition(conditionID string) error {
	var condition models.Condition
	if err := database.DB.First(&condition, "id = ?", conditionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrConditionNotFound
		}
		return fmt.Errorf("failed to fetch condition: %w", err)
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := deleteConditionPuzzles(tx, []string{conditionID}); err != nil {
			return err
		}
		return tx.Delete(&condition).Error
	})
}

// PuzzleInput describes one puzzle (with optional advice) in a wholesale
// puzzle-set replacement
type PuzzleInput struct {
	FEN         string  `json:"fen"`
	CorrectMove string  `json:"correct_move"`
	AdviceText  *string `json:"advice_text"`
	Confidence  *int    `json:"confidence"`
	Explanation *string `json:"explanation"`
	Reliability *string `json:"reliability"`
}

// ReplaceConditionPuzzles swaps a condition's entire puzzle set in one
// transaction. Replacement is all-or-nothing: the previous puzzles and their
// advice are deleted before the new set is inserted with dense 1-based orders.
func ReplaceConditionPuzzles(conditionID string, inputs []PuzzleInput) ([]models.Puzzle, error) {
	var condition models.Condition
	if err := database.DB.First(&condition, "id = ?", conditionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConditionNotFound
		}
		return nil, fmt.Errorf("failed to fetch condition: %w", err)
	}

	created := make([]models.Puzzle, 0, len(inputs))
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := deleteConditionPuzzles(tx, []string{conditionID}); err != nil {
			return err
		}

		for i, input := range inputs {
			puzzle := models.Puzzle{
				ID:          uuid.NewString(),
				ConditionID: conditionID,
				FEN:         input.FEN,
				CorrectMove: input.CorrectMove,
				Order:       i + 1,
			}
			if err := tx.Create(&puzzle).Error; err != nil {
				return err
			}

			if input.AdviceText != nil && *input.AdviceText != "" {
				reliability := models.ReliabilityModerate
				if input.Reliability != nil {
					reliability = *input.Reliability
				}
				advice := models.Advice{
					ID:          uuid.NewString(),
					PuzzleID:    puzzle.ID,
					Text:        *input.AdviceText,
					Confidence:  input.Confidence,
					Explanation: input.Explanation,
					Reliability: reliability,
				}
				if err := tx.Create(&advice).Error; err != nil {
					return err
				}
				puzzle.Advice = &advice
			}
			created = append(created, puzzle)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to replace puzzles: %w", err)
	}

	return created, nil
}

func deleteConditionPuzzles(tx *gorm.DB, conditionIDs []string) error {
	var puzzleIDs []string
	if err := tx.Model(&models.Puzzle{}).
		Where("condition_id IN ?", conditionIDs).
		Pluck("id", &puzzleIDs).Error; err != nil {
		return err
	}
	if len(puzzleIDs) == 0 {
		return nil
	}
	if err := tx.Where("puzzle_id IN ?", puzzleIDs).Delete(&models.Advice{}).Error; err != nil {
		return err
	}
	return tx.Where("condition_id IN ?", conditionIDs).Delete(&models.Puzzle{}).Error
}
