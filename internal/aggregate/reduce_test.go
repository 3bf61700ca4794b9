package aggregate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/fitness-tracker/internal/aggregate"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

func intPtr(v int) *int { return &v }

func TestSumMealItems(t *testing.T) {
	tests := []struct {
		name  string
		items []models.MealItem
		want  aggregate.MealTotals
	}{
		{
			name: "no items gives zeros",
			want: aggregate.MealTotals{},
		},
		{
			name: "sums every contribution",
			items: []models.MealItem{
				{Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6},
				{Calories: 216, Protein: 5, Carbs: 45, Fat: 1.8},
			},
			want: aggregate.MealTotals{Calories: 381, Protein: 36, Carbs: 45, Fat: 5.4},
		},
		{
			name: "rounds to two decimals",
			items: []models.MealItem{
				{Calories: 0.1, Protein: 0.333},
				{Calories: 0.2, Protein: 0.333},
			},
			want: aggregate.MealTotals{Calories: 0.3, Protein: 0.67},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, aggregate.SumMealItems(tt.items))
		})
	}
}

func TestReduceWorkoutExercises(t *testing.T) {
	tests := []struct {
		name      string
		exercises []models.WorkoutExercise
		want      aggregate.WorkoutTotals
	}{
		{
			name: "no exercises gives zeros",
			want: aggregate.WorkoutTotals{},
		},
		{
			name: "heart rate absent everywhere",
			exercises: []models.WorkoutExercise{
				{DurationMinutes: 30, CaloriesBurned: 300},
				{DurationMinutes: 15, CaloriesBurned: 90.5},
			},
			want: aggregate.WorkoutTotals{Duration: 45, CaloriesBurned: 390.5},
		},
		{
			name: "missing heart rate excluded from average and max",
			exercises: []models.WorkoutExercise{
				{DurationMinutes: 20, CaloriesBurned: 200, HeartRate: intPtr(150)},
				{DurationMinutes: 10, CaloriesBurned: 50},
				{DurationMinutes: 5, CaloriesBurned: 40, HeartRate: intPtr(171)},
			},
			want: aggregate.WorkoutTotals{
				Duration:         35,
				CaloriesBurned:   290,
				AverageHeartRate: 160.5,
				MaxHeartRate:     171,
			},
		},
		{
			name: "average rounded",
			exercises: []models.WorkoutExercise{
				{HeartRate: intPtr(100)},
				{HeartRate: intPtr(100)},
				{HeartRate: intPtr(101)},
			},
			want: aggregate.WorkoutTotals{AverageHeartRate: 100.33, MaxHeartRate: 101},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, aggregate.ReduceWorkoutExercises(tt.exercises))
		})
	}
}
