package sessions

import (
	"api/services"

	"github.com/gin-gonic/gin"
)

// Error messages
const (
	ErrPlayerNameRequired = "Player name is required"
	ErrNoActiveExperiment = "No active experiment"
	ErrSessionNotFound    = "Session not found"
	ErrMissingLookupParam = "Either sessionId or playerName must be provided"
	ErrInvalidRequest     = "Invalid request data"
	ErrFailedFetchSession = "Failed to fetch session"
)

// CreateSessionRequest model for entering an experiment
type CreateSessionRequest struct {
	PlayerName   string `json:"playerName" binding:"required"`
	ExperimentID string `json:"experimentId"`
}

// UpdateSessionRequest model for partially updating a session
type UpdateSessionRequest struct {
	SessionID    string `json:"sessionId" binding:"required"`
	Completed    *bool  `json:"completed"`
	DisplayLevel *int   `json:"displayLevel"`
}

// ConditionOrderEntry maps a sequential set number onto a rotated condition
type ConditionOrderEntry struct {
	Set           int    `json:"set"`
	ConditionID   string `json:"conditionId"`
	ConditionName string `json:"conditionName"`
}

// Counterbalancing describes the rotated order assigned to a session
type Counterbalancing struct {
	SessionNumber  int                   `json:"sessionNumber"`
	ConditionOrder []ConditionOrderEntry `json:"conditionOrder"`
}

// SessionResponse is the payload returned for a session
type SessionResponse struct {
	SessionID        string                   `json:"sessionId"`
	PlayerName       string                   `json:"playerName"`
	ExperimentID     string                   `json:"experimentId"`
	ExperimentName   string                   `json:"experimentName"`
	ConditionID      string                   `json:"conditionId"`
	ConditionName    string                   `json:"conditionName"`
	DisplayLevel     int                      `json:"displayLevel"`
	StartedAt        string                   `json:"startedAt"`
	CompletedAt      *string                  `json:"completedAt"`
	Existing         bool                     `json:"existing"`
	EffectiveConfig  services.EffectiveConfig `json:"effectiveConfig"`
	Counterbalancing *Counterbalancing        `json:"counterbalancing,omitempty"`
}

func sessionResponseFromAssignment(assignment services.SessionAssignment) SessionResponse {
	entries := make([]ConditionOrderEntry, 0, len(assignment.Rotation))
	for i, condition := range assignment.Rotation {
		entries = append(entries, ConditionOrderEntry{
			Set:           i + 1,
			ConditionID:   condition.ID,
			ConditionName: condition.Name,
		})
	}

	return SessionResponse{
		SessionID:       assignment.Session.ID,
		PlayerName:      assignment.Session.PlayerName,
		ExperimentID:    assignment.Experiment.ID,
		ExperimentName:  assignment.Experiment.Name,
		ConditionID:     assignment.Session.ConditionID,
		ConditionName:   assignment.Condition.Name,
		DisplayLevel:    assignment.Session.DisplayLevel,
		StartedAt:       assignment.Session.StartedAt,
		CompletedAt:     assignment.Session.CompletedAt,
		Existing:        assignment.Existing,
		EffectiveConfig: services.ResolveEffectiveConfig(assignment.Experiment, assignment.Condition),
		Counterbalancing: &Counterbalancing{
			SessionNumber:  assignment.SessionNumber,
			ConditionOrder: entries,
		},
	}
}

// SessionDetailResponse adds progress counts to the session payload
type SessionDetailResponse struct {
	SessionResponse
	Progress services.SessionProgress `json:"progress"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
