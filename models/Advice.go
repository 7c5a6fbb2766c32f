package models

// Advice reliability labels. Independent of whether the advice is actually correct.
const (
    ReliabilityPoor     = "Poor"
    ReliabilityModerate = "Moderate"
    ReliabilityHigh     = "High"
)

// Advice represents the AI suggestion attached to a puzzle.
type Advice struct {
    ID          string  `gorm:"type:uuid;primary_key" json:"id"`
    PuzzleID    string  `gorm:"type:uuid;not null;unique;column:puzzle_id" json:"puzzle_id"`
    Text        string  `gorm:"type:varchar(255);not null" json:"text"`
    Confidence  *int    `gorm:"type:integer" json:"confidence"`
    Explanation *string `gorm:"type:varchar(500)" json:"explanation"`
    Reliability string  `gorm:"type:varchar(20);not null;default:'Moderate'" json:"reliability"`
    Puzzle      *Puzzle `gorm:"foreignKey:PuzzleID" json:"-"`
}
