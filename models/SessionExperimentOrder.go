package models

// SessionExperimentOrder records one position of a player's rotated condition
// sequence for an experiment. The full set of rows for a (player, experiment)
// pair is replaced wholesale whenever the session is (re)created, so the
// assigned order survives repeat visits and server restarts.
type SessionExperimentOrder struct {
    ID           string     `gorm:"type:uuid;primary_key" json:"id"`
    PlayerName   string     `gorm:"type:varchar(100);not null;column:player_name;uniqueIndex:idx_player_experiment_position" json:"player_name"`
    ExperimentID string     `gorm:"type:uuid;not null;column:experiment_id;uniqueIndex:idx_player_experiment_position" json:"experiment_id"`
    Position     int        `gorm:"type:integer;not null;uniqueIndex:idx_player_experiment_position" json:"position"`
    ConditionID  string     `gorm:"type:uuid;not null;column:condition_id" json:"condition_id"`
    Condition    *Condition `gorm:"foreignKey:ConditionID" json:"-"`
}
