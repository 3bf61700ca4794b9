package aggregate

import (
	"math"

	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

// MealTotals: производные итоги приёма пищи.
type MealTotals struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
}

// WorkoutTotals: производные итоги тренировки.
type WorkoutTotals struct {
	Duration         int
	CaloriesBurned   float64
	AverageHeartRate float64
	MaxHeartRate     int
}

// SumMealItems складывает вклад всех позиций. Пустой список даёт нули.
func SumMealItems(items []models.MealItem) MealTotals {
	var t MealTotals
	for _, it := range items {
		t.Calories += it.Calories
		t.Protein += it.Protein
		t.Carbs += it.Carbs
		t.Fat += it.Fat
	}
	return MealTotals{
		Calories: round2(t.Calories),
		Protein:  round2(t.Protein),
		Carbs:    round2(t.Carbs),
		Fat:      round2(t.Fat),
	}
}

// ReduceWorkoutExercises сворачивает упражнения в итоги тренировки:
// длительность и калории суммируются, средний пульс считается только по
// упражнениям, где он указан, максимальный, максимум по тем же упражнениям.
func ReduceWorkoutExercises(exercises []models.WorkoutExercise) WorkoutTotals {
	var (
		t       WorkoutTotals
		hrSum   int
		hrCount int
	)
	for _, e := range exercises {
		t.Duration += e.DurationMinutes
		t.CaloriesBurned += e.CaloriesBurned
		if e.HeartRate == nil {
			continue
		}
		hrSum += *e.HeartRate
		hrCount++
		if *e.HeartRate > t.MaxHeartRate {
			t.MaxHeartRate = *e.HeartRate
		}
	}
	t.CaloriesBurned = round2(t.CaloriesBurned)
	if hrCount > 0 {
		t.AverageHeartRate = round2(float64(hrSum) / float64(hrCount))
	}
	return t
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
