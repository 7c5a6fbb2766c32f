package models

// MoveRecord stores a single move attempted within a player response.
// Rows are append-only and numbered in the order the caller supplied them.
type MoveRecord struct {
    ID         string          `gorm:"type:uuid;primary_key" json:"id"`
    ResponseID string          `gorm:"type:uuid;not null;column:response_id;index" json:"response_id"`
    Move       string          `gorm:"type:varchar(10);not null" json:"move"`
    MoveNumber int             `gorm:"type:integer;not null;column:move_number" json:"move_number"`
    TimeTaken  float64         `gorm:"type:numeric(10,3);not null;default:0;column:time_taken" json:"time_taken"`
    WasUndone  bool            `gorm:"not null;default:false;column:was_undone" json:"was_undone"`
    Response   *PlayerResponse `gorm:"foreignKey:ResponseID" json:"-"`
}
