package models

// Puzzle represents a single chess position inside a condition, with the move
// considered correct and an optional piece of advice shown to the player.
type Puzzle struct {
    ID          string     `gorm:"type:uuid;primary_key" json:"id"`
    ConditionID string     `gorm:"type:uuid;not null;column:condition_id;index" json:"condition_id"`
    FEN         string     `gorm:"type:varchar(100);not null;column:fen" json:"fen"`
    CorrectMove string     `gorm:"type:varchar(10);not null;column:correct_move" json:"correct_move"`
    Order       int        `gorm:"type:integer;not null;column:puzzle_order" json:"order"`
    Condition   *Condition `gorm:"foreignKey:ConditionID" json:"-"`
    Advice      *Advice    `gorm:"foreignKey:PuzzleID;constraint:OnDelete:CASCADE" json:"advice,omitempty"`
}
