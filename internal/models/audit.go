package models

import "time"

// Категории записей аудита.
const (
	AuditCategoryAuth    = "auth"
	AuditCategoryUser    = "user"
	AuditCategoryMeal    = "meal"
	AuditCategoryWorkout = "workout"
	AuditCategoryGoal    = "goal"
)

// Исходы действий.
const (
	AuditOutcomeSuccess = "success"
	AuditOutcomeFailure = "failure"
)

// AuditEntry: запись журнала действий пользователя. Журнал только пополняется.
type AuditEntry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id,omitempty"`
	Action      string    `json:"action"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Outcome     string    `json:"outcome"`
	CreatedAt   time.Time `json:"created_at"`
}
