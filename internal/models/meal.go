package models

import (
	"math"
	"time"
)

// Типы приёмов пищи.
const (
	MealTypeBreakfast = "Breakfast"
	MealTypeLunch     = "Lunch"
	MealTypeDinner    = "Dinner"
	MealTypeSnack     = "Snack"
)

// Food: позиция каталога продуктов; значения указаны на одну порцию.
// CreatedBy пуст для общего каталога и заполнен для продуктов пользователя.
type Food struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand,omitempty"`
	Category    string  `json:"category,omitempty"`
	ServingSize float64 `json:"serving_size"`
	ServingUnit string  `json:"serving_unit"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
	Fiber       float64 `json:"fiber"`
	CreatedBy   *string `json:"created_by,omitempty"`
}

// Meal: приём пищи с производными итогами по его позициям.
type Meal struct {
	ID            int64      `json:"id"`
	UserID        string     `json:"user_id"`
	MealType      string     `json:"meal_type"`
	MealDate      time.Time  `json:"meal_date"`
	MealTime      string     `json:"meal_time,omitempty"`
	TotalCalories float64    `json:"total_calories"`
	TotalProtein  float64    `json:"total_protein"`
	TotalCarbs    float64    `json:"total_carbs"`
	TotalFat      float64    `json:"total_fat"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	Items         []MealItem `json:"items,omitempty"`
}

// MealItem: продукт в приёме пищи и его вклад в итоги.
type MealItem struct {
	ID       int64   `json:"id"`
	MealID   int64   `json:"meal_id"`
	FoodID   int64   `json:"food_id"`
	FoodName string  `json:"food_name,omitempty"`
	Quantity float64 `json:"quantity"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Contribution считает вклад порций продукта в итоги приёма пищи
// с точностью до сотых.
func (f *Food) Contribution(quantity float64) MealItem {
	return MealItem{
		FoodID:   f.ID,
		FoodName: f.Name,
		Quantity: quantity,
		Calories: round2(f.Calories * quantity),
		Protein:  round2(f.Protein * quantity),
		Carbs:    round2(f.Carbs * quantity),
		Fat:      round2(f.Fat * quantity),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// MealFilter: параметры выборки приёмов пищи.
type MealFilter struct {
	UserID string
	Date   *time.Time
	Limit  int
	Offset int
}

// MealTypeSummary: итоги за день по одному типу приёма пищи.
type MealTypeSummary struct {
	MealType  string  `json:"meal_type"`
	MealCount int     `json:"meal_count"`
	Calories  float64 `json:"calories"`
	Protein   float64 `json:"protein"`
	Carbs     float64 `json:"carbs"`
	Fat       float64 `json:"fat"`
}

// DailyNutrition: суточная сводка питания.
type DailyNutrition struct {
	Date          string            `json:"date"`
	MealCount     int               `json:"meal_count"`
	TotalCalories float64           `json:"total_calories"`
	TotalProtein  float64           `json:"total_protein"`
	TotalCarbs    float64           `json:"total_carbs"`
	TotalFat      float64           `json:"total_fat"`
	CalorieGoal   int               `json:"calorie_goal,omitempty"`
	ByMealType    []MealTypeSummary `json:"by_meal_type"`
}

// MealItemRequest: позиция приёма пищи во входящем запросе.
type MealItemRequest struct {
	FoodID   int64   `json:"food_id" validate:"required,gt=0"`
	Quantity float64 `json:"quantity" validate:"required,gt=0,lte=100"`
}

// CreateMealRequest: создание приёма пищи с необязательными позициями.
type CreateMealRequest struct {
	MealType string            `json:"meal_type" validate:"required,oneof=Breakfast Lunch Dinner Snack"`
	MealDate string            `json:"meal_date" validate:"omitempty"`
	MealTime string            `json:"meal_time" validate:"omitempty"`
	Notes    string            `json:"notes" validate:"omitempty,max=1000"`
	Items    []MealItemRequest `json:"items" validate:"omitempty,max=50,dive"`
}

// CreateFoodRequest: добавление собственного продукта пользователя.
type CreateFoodRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Brand       string  `json:"brand" validate:"omitempty,max=100"`
	Category    string  `json:"category" validate:"omitempty,max=50"`
	ServingSize float64 `json:"serving_size" validate:"required,gt=0"`
	ServingUnit string  `json:"serving_unit" validate:"required,max=20"`
	Calories    float64 `json:"calories" validate:"gte=0"`
	Protein     float64 `json:"protein" validate:"gte=0"`
	Carbs       float64 `json:"carbs" validate:"gte=0"`
	Fat         float64 `json:"fat" validate:"gte=0"`
	Fiber       float64 `json:"fiber" validate:"gte=0"`
}
