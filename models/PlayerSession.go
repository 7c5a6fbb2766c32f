package models

// PlayerSession represents one participant's run through an experiment.
// A player has at most one session per experiment: re-entry with the same
// name returns the existing session instead of creating a duplicate.
// ConditionID is the first condition in that player's rotated order.
type PlayerSession struct {
    ID           string      `gorm:"type:uuid;primary_key" json:"id"`
    PlayerName   string      `gorm:"type:varchar(100);not null;column:player_name;uniqueIndex:idx_player_experiment" json:"player_name"`
    ExperimentID string      `gorm:"type:uuid;not null;column:experiment_id;uniqueIndex:idx_player_experiment" json:"experiment_id"`
    ConditionID  string      `gorm:"type:uuid;not null;column:condition_id" json:"condition_id"`
    DisplayLevel int         `gorm:"type:integer;not null;default:1;column:display_level" json:"display_level"`
    StartedAt    string      `gorm:"type:timestamp;not null;column:started_at" json:"started_at"`
    CompletedAt  *string     `gorm:"type:timestamp;column:completed_at" json:"completed_at"`
    Experiment   *Experiment `gorm:"foreignKey:ExperimentID" json:"-"`
    Condition    *Condition  `gorm:"foreignKey:ConditionID" json:"-"`
}
