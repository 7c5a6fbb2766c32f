package models

// Experiment represents a chess puzzle study with its conditions and defaults.
// At most one experiment is active system-wide at any time.
type Experiment struct {
    ID               string       `gorm:"type:uuid;primary_key" json:"id"`
    Name             string       `gorm:"type:varchar(100);not null" json:"name"`
    Description      string       `gorm:"type:varchar(255)" json:"description"`
    IsActive         bool         `gorm:"not null;default:false;column:is_active" json:"is_active"`
    AdviceFormat     string       `gorm:"type:varchar(50);not null;default:'text';column:advice_format" json:"advice_format"`
    TimerEnabled     bool         `gorm:"not null;default:false;column:timer_enabled" json:"timer_enabled"`
    TimeLimitSeconds int          `gorm:"type:integer;not null;default:60;column:time_limit_seconds" json:"time_limit_seconds"`
    Conditions       []*Condition `gorm:"foreignKey:ExperimentID;constraint:OnDelete:CASCADE" json:"conditions,omitempty"`
}
