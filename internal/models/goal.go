package models

import "time"

// Статусы цели.
const (
	GoalStatusActive    = "Active"
	GoalStatusCompleted = "Completed"
	GoalStatusPaused    = "Paused"
	GoalStatusCancelled = "Cancelled"
)

// Типы целей.
const (
	GoalTypeWeightLoss = "Weight Loss"
	GoalTypeWeightGain = "Weight Gain"
	GoalTypeMuscleGain = "Muscle Gain"
	GoalTypeStrength   = "Strength"
	GoalTypeEndurance  = "Endurance"
)

// MaxActiveGoals: сколько активных целей может быть у пользователя одновременно.
const MaxActiveGoals = 10

// Goal: цель пользователя.
type Goal struct {
	ID            int64              `json:"id"`
	UserID        string             `json:"user_id"`
	GoalType      string             `json:"goal_type"`
	Title         string             `json:"title"`
	Description   string             `json:"description,omitempty"`
	TargetValue   float64            `json:"target_value"`
	CurrentValue  float64            `json:"current_value"`
	Unit          string             `json:"unit"`
	StartDate     time.Time          `json:"start_date"`
	TargetDate    *time.Time         `json:"target_date,omitempty"`
	Status        string             `json:"status"`
	Priority      string             `json:"priority"`
	Category      string             `json:"category,omitempty"`
	CompletedDate *time.Time         `json:"completed_date,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	Progress      []ProgressTracking `json:"progress,omitempty"`
}

// ProgressTracking: неизменяемая запись истории прогресса по цели.
type ProgressTracking struct {
	ID           int64     `json:"id"`
	GoalID       int64     `json:"goal_id"`
	UserID       string    `json:"user_id"`
	Value        float64   `json:"value"`
	RecordedDate time.Time `json:"recorded_date"`
	Notes        string    `json:"notes,omitempty"`
	Source       string    `json:"source"`
	CreatedAt    time.Time `json:"created_at"`
}

// GoalFilter: параметры выборки целей.
type GoalFilter struct {
	UserID string
	Status string
	Limit  int
	Offset int
}

// CreateGoalRequest: создание цели.
type CreateGoalRequest struct {
	GoalType     string   `json:"goal_type" validate:"required,max=50"`
	Title        string   `json:"title" validate:"required,max=200"`
	Description  string   `json:"description" validate:"omitempty,max=1000"`
	TargetValue  float64  `json:"target_value" validate:"required"`
	CurrentValue *float64 `json:"current_value"`
	Unit         string   `json:"unit" validate:"required,max=20"`
	StartDate    string   `json:"start_date" validate:"omitempty"`
	TargetDate   string   `json:"target_date" validate:"omitempty"`
	Priority     string   `json:"priority" validate:"omitempty,oneof=Low Medium High"`
	Category     string   `json:"category" validate:"omitempty,max=50"`
}

// ProgressRequest: новое значение прогресса по цели.
type ProgressRequest struct {
	Value *float64 `json:"value" validate:"required"`
	Date  string   `json:"date" validate:"omitempty"`
	Notes string   `json:"notes" validate:"omitempty,max=500"`
}

// StatusRequest: явная смена статуса цели.
type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Active Completed Paused Cancelled"`
}

// Источники записей прогресса.
const ProgressSourceManual = "manual"

// ValidGoalType сообщает, поддерживается ли тип цели.
func ValidGoalType(t string) bool {
	switch t {
	case GoalTypeWeightLoss, GoalTypeWeightGain, GoalTypeMuscleGain, GoalTypeStrength, GoalTypeEndurance:
		return true
	}
	return false
}

// Reached сообщает, достигнута ли цель при текущем значении value:
// для снижения веса значение должно опуститься до целевого, для
// остальных типов подняться до него.
func (g *Goal) Reached(value float64) bool {
	if g.GoalType == GoalTypeWeightLoss {
		return value <= g.TargetValue
	}
	return ValidGoalType(g.GoalType) && value >= g.TargetValue
}
