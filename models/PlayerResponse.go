package models

// PlayerResponse represents a participant's recorded interaction with one
// puzzle: the moves made before and after advice, timings, and the
// automation-bias flags. At most one response exists per (session, puzzle)
// pair; rows are created once and never updated in place.
type PlayerResponse struct {
    ID                string         `gorm:"type:uuid;primary_key" json:"id"`
    SessionID         string         `gorm:"type:uuid;not null;column:session_id;uniqueIndex:idx_session_puzzle" json:"session_id"`
    PuzzleID          string         `gorm:"type:uuid;not null;column:puzzle_id;uniqueIndex:idx_session_puzzle" json:"puzzle_id"`
    MoveBeforeAdvice  *string        `gorm:"type:varchar(10);column:move_before_advice" json:"move_before_advice"`
    TimeBeforeAdvice  float64        `gorm:"type:numeric(10,3);not null;default:0;column:time_before_advice" json:"time_before_advice"`
    MoveAfterAdvice   *string        `gorm:"type:varchar(10);column:move_after_advice" json:"move_after_advice"`
    TimeAfterAdvice   float64        `gorm:"type:numeric(10,3);not null;default:0;column:time_after_advice" json:"time_after_advice"`
    AdviceShown       bool           `gorm:"not null;default:false;column:advice_shown" json:"advice_shown"`
    AdviceRequested   bool           `gorm:"not null;default:false;column:advice_requested" json:"advice_requested"`
    MoveMatchesAdvice bool           `gorm:"not null;default:false;column:move_matches_advice" json:"move_matches_advice"`
    UndoUsed          bool           `gorm:"not null;default:false;column:undo_used" json:"undo_used"`
    TimeExceeded      bool           `gorm:"not null;default:false;column:time_exceeded" json:"time_exceeded"`
    Skipped           bool           `gorm:"not null;default:false" json:"skipped"`
    CompletedAt       string         `gorm:"type:timestamp;not null;column:completed_at" json:"completed_at"`
    Session           *PlayerSession `gorm:"foreignKey:SessionID" json:"-"`
    Puzzle            *Puzzle        `gorm:"foreignKey:PuzzleID" json:"-"`
    Moves             []*MoveRecord  `gorm:"foreignKey:ResponseID;constraint:OnDelete:CASCADE" json:"moves,omitempty"`
}
