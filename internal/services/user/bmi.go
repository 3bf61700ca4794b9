package user

import (
	"math"

	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

// CalculateBMI считает индекс массы тела по росту в сантиметрах и весу
// в килограммах. Для неполных или неправдоподобных данных возвращает nil.
func CalculateBMI(heightCm, weightKg *float64) *models.BMI {
	if heightCm == nil || weightKg == nil {
		return nil
	}
	h, w := *heightCm, *weightKg
	if h < 50 || h > 250 || w < 10 || w > 400 {
		return nil
	}

	m := h / 100.0
	bmi := math.Round(w/(m*m)*10) / 10
	return &models.BMI{Value: bmi, Category: BMICategory(bmi)}
}

// BMICategory возвращает категорию ВОЗ для значения индекса.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	case bmi < 35.0:
		return "Obesity class I"
	case bmi < 40.0:
		return "Obesity class II"
	default:
		return "Obesity class III"
	}
}
