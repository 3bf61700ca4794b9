package models

import "time"

// Интенсивность тренировки.
const (
	IntensityLow      = "Low"
	IntensityModerate = "Moderate"
	IntensityHigh     = "High"
)

// Exercise: позиция каталога упражнений.
type Exercise struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Category          string  `json:"category"`
	MuscleGroup       string  `json:"muscle_group,omitempty"`
	Equipment         string  `json:"equipment,omitempty"`
	CaloriesPerMinute float64 `json:"calories_per_minute"`
}

// Workout: тренировка с производными итогами по её упражнениям.
type Workout struct {
	ID                  int64             `json:"id"`
	UserID              string            `json:"user_id"`
	WorkoutDate         time.Time         `json:"workout_date"`
	Name                string            `json:"name"`
	Intensity           string            `json:"intensity"`
	TotalDuration       int               `json:"total_duration"`
	TotalCaloriesBurned float64           `json:"total_calories_burned"`
	AverageHeartRate    float64           `json:"average_heart_rate"`
	MaxHeartRate        int               `json:"max_heart_rate"`
	Notes               string            `json:"notes,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	Exercises           []WorkoutExercise `json:"exercises,omitempty"`
}

// WorkoutExercise: упражнение в составе тренировки.
type WorkoutExercise struct {
	ID              int64    `json:"id"`
	WorkoutID       int64    `json:"workout_id"`
	ExerciseID      int64    `json:"exercise_id"`
	ExerciseName    string   `json:"exercise_name,omitempty"`
	Sets            *int     `json:"sets,omitempty"`
	Reps            *int     `json:"reps,omitempty"`
	WeightKg        *float64 `json:"weight_kg,omitempty"`
	DurationMinutes int      `json:"duration_minutes"`
	DistanceKm      *float64 `json:"distance_km,omitempty"`
	CaloriesBurned  float64  `json:"calories_burned"`
	HeartRate       *int     `json:"heart_rate,omitempty"`
	OrderIndex      int      `json:"order_index"`
	Notes           string   `json:"notes,omitempty"`
}

// WorkoutFilter: параметры выборки тренировок.
type WorkoutFilter struct {
	UserID string
	Date   *time.Time
	Limit  int
	Offset int
}

// WorkoutExerciseRequest: упражнение во входящем запросе. Если
// calories_burned не передан, он считается по каталогу.
type WorkoutExerciseRequest struct {
	ExerciseID      int64    `json:"exercise_id" validate:"required,gt=0"`
	Sets            *int     `json:"sets" validate:"omitempty,gte=0,lte=100"`
	Reps            *int     `json:"reps" validate:"omitempty,gte=0,lte=1000"`
	WeightKg        *float64 `json:"weight_kg" validate:"omitempty,gte=0,lte=1000"`
	DurationMinutes int      `json:"duration_minutes" validate:"gte=0,lte=1440"`
	DistanceKm      *float64 `json:"distance_km" validate:"omitempty,gte=0,lte=1000"`
	CaloriesBurned  *float64 `json:"calories_burned" validate:"omitempty,gte=0"`
	HeartRate       *int     `json:"heart_rate" validate:"omitempty,gte=30,lte=250"`
	Notes           string   `json:"notes" validate:"omitempty,max=500"`
}

// CreateWorkoutRequest: создание тренировки с необязательными упражнениями.
type CreateWorkoutRequest struct {
	Name        string                   `json:"name" validate:"required,max=100"`
	WorkoutDate string                   `json:"workout_date" validate:"omitempty"`
	Intensity   string                   `json:"intensity" validate:"omitempty,oneof=Low Moderate High"`
	Notes       string                   `json:"notes" validate:"omitempty,max=1000"`
	Exercises   []WorkoutExerciseRequest `json:"exercises" validate:"omitempty,max=50,dive"`
}
