package models

// Condition represents one treatment arm ("Set") of an experiment: an
// advice-format/timer policy plus an ordered list of puzzles. Name is unique
// within its experiment and Order is a dense 1-based position assigned with a
// first-gap strategy. Nullable override fields fall back to the experiment
// defaults when nil.
type Condition struct {
    ID               string      `gorm:"type:uuid;primary_key" json:"id"`
    ExperimentID     string      `gorm:"type:uuid;not null;column:experiment_id;uniqueIndex:idx_experiment_condition_name" json:"experiment_id"`
    Name             string      `gorm:"type:varchar(100);not null;uniqueIndex:idx_experiment_condition_name" json:"name"`
    Order            int         `gorm:"type:integer;not null;column:condition_order" json:"order"`
    AdviceFormat     *string     `gorm:"type:varchar(50);column:advice_format" json:"advice_format"`
    TimerEnabled     *bool       `gorm:"column:timer_enabled" json:"timer_enabled"`
    TimeLimitSeconds *int        `gorm:"type:integer;column:time_limit_seconds" json:"time_limit_seconds"`
    Experiment       *Experiment `gorm:"foreignKey:ExperimentID" json:"-"`
    Puzzles          []*Puzzle   `gorm:"foreignKey:ConditionID;constraint:OnDelete:CASCADE" json:"puzzles,omitempty"`
}
