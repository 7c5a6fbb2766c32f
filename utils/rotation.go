package utils

import (
	"api/models"
)

// RotateConditions returns a left-rotation of the given condition list by
// sessionIndex mod len(conditions). Session index 0 returns the list as-is,
// index 1 starts at the second condition, and so on, so across consecutive
// session indices every condition takes the first position equally often.
//
// The input slice is not modified.
func RotateConditions(conditions []models.Condition, sessionIndex int) []models.Condition {
	if len(conditions) == 0 {
		return []models.Condition{}
	}

	offset := sessionIndex % len(conditions)
	rotated := make([]models.Condition, 0, len(conditions))
	rotated = append(rotated, conditions[offset:]...)
	rotated = append(rotated, conditions[:offset]...)
	return rotated
}
