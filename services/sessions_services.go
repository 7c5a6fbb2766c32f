package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"api/database"
	"api/models"
	"api/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionAssignment bundles a player session with its experiment and the full
// rotated condition order it was assigned
type SessionAssignment struct {
	Session       models.PlayerSession
	Experiment    models.Experiment
	Condition     models.Condition
	Rotation      []models.Condition
	SessionNumber int
	Existing      bool
}

// GetOrCreateSession resolves the session for a player in an experiment,
// creating one with a counterbalanced condition order on first entry.
//
// Re-entry with the same name returns the originally stored session and
// order verbatim; the rotation is never re-randomized, even if the
// experiment's condition set changed shape in the meantime. When
// experimentID is empty the currently active experiment is used.
func GetOrCreateSession(playerName string, experimentID string) (SessionAssignment, error) {
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return SessionAssignment{}, ErrPlayerNameRequired
	}

	var experiment models.Experiment
	var err error
	if experimentID == "" {
		experiment, err = GetActiveExperiment()
		if err != nil {
			return SessionAssignment{}, err
		}
	} else {
		if err := database.DB.First(&experiment, "id = ?", experimentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return SessionAssignment{}, ErrExperimentNotFound
			}
			return SessionAssignment{}, fmt.Errorf("failed to fetch experiment: %w", err)
		}
	}

	var existing models.PlayerSession
	err = database.DB.Where("player_name = ? AND experiment_id = ?", playerName, experiment.ID).
		First(&existing).Error
	if err == nil {
		return assignmentForExistingSession(existing, experiment)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return SessionAssignment{}, fmt.Errorf("failed to look up session: %w", err)
	}

	conditions, err := experimentConditions(experiment.ID)
	if err != nil {
		return SessionAssignment{}, err
	}
	if len(conditions) == 0 {
		return SessionAssignment{}, ErrConditionNotFound
	}

	var sessionCount int64
	if err := database.DB.Model(&models.PlayerSession{}).
		Where("experiment_id = ?", experiment.ID).
		Count(&sessionCount).Error; err != nil {
		return SessionAssignment{}, fmt.Errorf("failed to count sessions: %w", err)
	}

	rotation := utils.RotateConditions(conditions, int(sessionCount))

	session := models.PlayerSession{
		ID:           uuid.NewString(),
		PlayerName:   playerName,
		ExperimentID: experiment.ID,
		ConditionID:  rotation[0].ID,
		DisplayLevel: 1,
		StartedAt:    time.Now().Format(time.RFC3339),
	}
	if err := database.DB.Create(&session).Error; err != nil {
		// Lost the race on (player_name, experiment_id): surface the winner's id
		var winner models.PlayerSession
		if dbErr := database.DB.Where("player_name = ? AND experiment_id = ?", playerName, experiment.ID).
			First(&winner).Error; dbErr == nil {
			return SessionAssignment{}, &ConflictError{Resource: "session", ExistingID: winner.ID}
		}
		return SessionAssignment{}, fmt.Errorf("failed to create session: %w", err)
	}

	// Best-effort cleanup of stale order rows from a previous incarnation
	if err := database.DB.Where("player_name = ? AND experiment_id = ?", playerName, experiment.ID).
		Delete(&models.SessionExperimentOrder{}).Error; err != nil {
		log.Printf("Failed to delete stale order rows for %s: %v", playerName, err)
	}

	for i, condition := range rotation {
		orderRow := models.SessionExperimentOrder{
			ID:           uuid.NewString(),
			PlayerName:   playerName,
			ExperimentID: experiment.ID,
			Position:     i + 1,
			ConditionID:  condition.ID,
		}
		if err := database.DB.Create(&orderRow).Error; err != nil {
			return SessionAssignment{}, fmt.Errorf("failed to persist condition order: %w", err)
		}
	}

	return SessionAssignment{
		Session:       session,
		Experiment:    experiment,
		Condition:     rotation[0],
		Rotation:      rotation,
		SessionNumber: int(sessionCount),
		Existing:      false,
	}, nil
}

// GetSessionByID fetches a session and replays its stored assignment
func GetSessionByID(sessionID string) (SessionAssignment, error) {
	var session models.PlayerSession
	if err := database.DB.First(&session, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SessionAssignment{}, ErrSessionNotFound
		}
		return SessionAssignment{}, fmt.Errorf("failed to fetch session: %w", err)
	}
	return assignmentForStoredSession(session)
}

// GetSessionByPlayerName fetches the player's session in the active experiment
func GetSessionByPlayerName(playerName string) (SessionAssignment, error) {
	experiment, err := GetActiveExperiment()
	if err != nil {
		return SessionAssignment{}, err
	}

	var session models.PlayerSession
	if err := database.DB.Where("player_name = ? AND experiment_id = ?", strings.TrimSpace(playerName), experiment.ID).
		First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SessionAssignment{}, ErrSessionNotFound
		}
		return SessionAssignment{}, fmt.Errorf("failed to fetch session: %w", err)
	}
	return assignmentForExistingSession(session, experiment)
}

// UpdateSession applies a partial update to a session's progress fields
func UpdateSession(sessionID string, completed *bool, displayLevel *int) (models.PlayerSession, error) {
	var session models.PlayerSession
	if err := database.DB.First(&session, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.PlayerSession{}, ErrSessionNotFound
		}
		return models.PlayerSession{}, fmt.Errorf("failed to fetch session: %w", err)
	}

	updates := map[string]interface{}{}
	if completed != nil {
		if *completed {
			now := time.Now().Format(time.RFC3339)
			updates["completed_at"] = now
			session.CompletedAt = &now
		} else {
			updates["completed_at"] = nil
			session.CompletedAt = nil
		}
	}
	if displayLevel != nil {
		updates["display_level"] = *displayLevel
		session.DisplayLevel = *displayLevel
	}
	if len(updates) == 0 {
		return session, nil
	}

	if err := database.DB.Model(&session).Updates(updates).Error; err != nil {
		return models.PlayerSession{}, fmt.Errorf("failed to update session: %w", err)
	}
	return session, nil
}

// SessionProgress counts a session's recorded responses against the puzzles
// in its assigned conditions
type SessionProgress struct {
	TotalPuzzles    int `json:"total_puzzles"`
	RecordedCount   int `json:"recorded_count"`
	CompletedCount  int `json:"completed_count"`
	SkippedCount    int `json:"skipped_count"`
}

// GetSessionProgress derives progress counts for a session
func GetSessionProgress(session models.PlayerSession) (SessionProgress, error) {
	var conditionIDs []string
	if err := database.DB.Model(&models.SessionExperimentOrder{}).
		Where("player_name = ? AND experiment_id = ?", session.PlayerName, session.ExperimentID).
		Pluck("condition_id", &conditionIDs).Error; err != nil {
		return SessionProgress{}, fmt.Errorf("failed to fetch order rows: %w", err)
	}

	var totalPuzzles int64
	if len(conditionIDs) > 0 {
		if err := database.DB.Model(&models.Puzzle{}).
			Where("condition_id IN ?", conditionIDs).
			Count(&totalPuzzles).Error; err != nil {
			return SessionProgress{}, fmt.Errorf("failed to count puzzles: %w", err)
		}
	}

	var recorded, skipped int64
	if err := database.DB.Model(&models.PlayerResponse{}).
		Where("session_id = ?", session.ID).
		Count(&recorded).Error; err != nil {
		return SessionProgress{}, fmt.Errorf("failed to count responses: %w", err)
	}
	if err := database.DB.Model(&models.PlayerResponse{}).
		Where("session_id = ? AND skipped = ?", session.ID, true).
		Count(&skipped).Error; err != nil {
		return SessionProgress{}, fmt.Errorf("failed to count skipped responses: %w", err)
	}

	return SessionProgress{
		TotalPuzzles:   int(totalPuzzles),
		RecordedCount:  int(recorded),
		CompletedCount: int(recorded - skipped),
		SkippedCount:   int(skipped),
	}, nil
}

func assignmentForStoredSession(session models.PlayerSession) (SessionAssignment, error) {
	var experiment models.Experiment
	if err := database.DB.First(&experiment, "id = ?", session.ExperimentID).Error; err != nil {
		return SessionAssignment{}, fmt.Errorf("failed to fetch experiment: %w", err)
	}
	return assignmentForExistingSession(session, experiment)
}

func assignmentForExistingSession(session models.PlayerSession, experiment models.Experiment) (SessionAssignment, error) {
	rotation, err := storedConditionOrder(session.PlayerName, experiment.ID)
	if err != nil {
		return SessionAssignment{}, err
	}

	var assigned models.Condition
	if err := database.DB.First(&assigned, "id = ?", session.ConditionID).Error; err != nil {
		// The assigned condition may have been deleted since assignment;
		// the session itself is still returned verbatim
		log.Printf("Assigned condition %s missing for session %s: %v", session.ConditionID, session.ID, err)
	}

	return SessionAssignment{
		Session:    session,
		Experiment: experiment,
		Condition:  assigned,
		Rotation:   rotation,
		Existing:   true,
	}, nil
}

func experimentConditions(experimentID string) ([]models.Condition, error) {
	var conditions []models.Condition
	if err := database.DB.Where("experiment_id = ?", experimentID).
		Order("condition_order").
		Find(&conditions).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch conditions: %w", err)
	}
	return conditions, nil
}

// storedConditionOrder replays the persisted rotation for a player. Order
// rows referencing conditions that no longer exist are skipped.
func storedConditionOrder(playerName string, experimentID string) ([]models.Condition, error) {
	var rows []models.SessionExperimentOrder
	if err := database.DB.Where("player_name = ? AND experiment_id = ?", playerName, experimentID).
		Order("position").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch order rows: %w", err)
	}

	rotation := make([]models.Condition, 0, len(rows))
	for _, row := range rows {
		var condition models.Condition
		if err := database.DB.First(&condition, "id = ?", row.ConditionID).Error; err != nil {
			continue
		}
		rotation = append(rotation, condition)
	}
	return rotation, nil
}
