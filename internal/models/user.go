// Package models содержит доменные структуры: пользователя и его профиль,
// приёмы пищи, тренировки, цели и записи аудита, а также входные DTO
// для JSON-запросов.
package models

import "time"

// Статусы учётной записи.
const (
	UserStatusActive    = "Active"
	UserStatusInactive  = "Inactive"
	UserStatusSuspended = "Suspended"
)

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FirstName    string     `json:"first_name,omitempty"`
	LastName     string     `json:"last_name,omitempty"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	Gender       string     `json:"gender,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Status       string     `json:"status"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsActive сообщает, разрешён ли пользователю доступ.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// Profile: физические параметры пользователя.
type Profile struct {
	UserID           string   `json:"-"`
	HeightCm         *float64 `json:"height_cm,omitempty"`
	WeightKg         *float64 `json:"weight_kg,omitempty"`
	ActivityLevel    string   `json:"activity_level"`
	TargetWeightKg   *float64 `json:"target_weight_kg,omitempty"`
	DailyCalorieGoal int      `json:"daily_calorie_goal"`
	Bio              string   `json:"bio,omitempty"`
}

// Preferences: пользовательские настройки.
type Preferences struct {
	UserID               string `json:"-"`
	MeasurementSystem    string `json:"measurement_system"`
	Timezone             string `json:"timezone"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
	PrivacyLevel         string `json:"privacy_level"`
}

// DefaultProfile возвращает профиль, создаваемый при регистрации.
func DefaultProfile(userID string) Profile {
	return Profile{
		UserID:           userID,
		ActivityLevel:    "Moderate",
		DailyCalorieGoal: 2000,
	}
}

// DefaultPreferences возвращает настройки, создаваемые при регистрации.
func DefaultPreferences(userID string) Preferences {
	return Preferences{
		UserID:               userID,
		MeasurementSystem:    "metric",
		Timezone:             "UTC",
		NotificationsEnabled: true,
		PrivacyLevel:         "private",
	}
}

// Identity: аутентифицированный пользователь, которого middleware авторизации
// кладёт в контекст запроса.
type Identity struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// BMI: индекс массы тела и его категория.
type BMI struct {
	Value    float64 `json:"value"`
	Category string  `json:"category"`
}

// UserProfile: составной ответ GET /api/users/profile.
type UserProfile struct {
	User        *User        `json:"user"`
	Profile     *Profile     `json:"profile"`
	Preferences *Preferences `json:"preferences"`
	BMI         *BMI         `json:"bmi,omitempty"`
}

// RegisterRequest: входные данные регистрации.
type RegisterRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,min=8,max=128"`
	FirstName   string `json:"first_name" validate:"omitempty,max=100"`
	LastName    string `json:"last_name" validate:"omitempty,max=100"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty"`
	Gender      string `json:"gender" validate:"omitempty,oneof=Male Female Other"`
}

// LoginRequest: вход по имени пользователя или email.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required,max=255"`
	Password   string `json:"password" validate:"required"`
}

// AuthResult: ответ на успешную регистрацию или вход.
type AuthResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}

// UpdateProfileRequest: частичное обновление; nil-поля не меняются.
type UpdateProfileRequest struct {
	FirstName        *string  `json:"first_name" validate:"omitempty,max=100"`
	LastName         *string  `json:"last_name" validate:"omitempty,max=100"`
	DateOfBirth      *string  `json:"date_of_birth"`
	Gender           *string  `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Phone            *string  `json:"phone" validate:"omitempty,max=20"`
	HeightCm         *float64 `json:"height_cm" validate:"omitempty,gt=0,lte=300"`
	WeightKg         *float64 `json:"weight_kg" validate:"omitempty,gt=0,lte=700"`
	ActivityLevel    *string  `json:"activity_level" validate:"omitempty,oneof=Sedentary Light Moderate Active Athlete"`
	TargetWeightKg   *float64 `json:"target_weight_kg" validate:"omitempty,gt=0,lte=700"`
	DailyCalorieGoal *int     `json:"daily_calorie_goal" validate:"omitempty,gte=500,lte=10000"`
	Bio              *string  `json:"bio" validate:"omitempty,max=1000"`
}

// UserUpdate: поля таблицы users после разбора UpdateProfileRequest.
type UserUpdate struct {
	FirstName   *string
	LastName    *string
	DateOfBirth *time.Time
	Gender      *string
	Phone       *string
}

// ProfileUpdate: поля таблицы user_profiles после разбора UpdateProfileRequest.
type ProfileUpdate struct {
	HeightCm         *float64
	WeightKg         *float64
	ActivityLevel    *string
	TargetWeightKg   *float64
	DailyCalorieGoal *int
	Bio              *string
}

// UpdatePreferencesRequest: частичное обновление настроек.
type UpdatePreferencesRequest struct {
	MeasurementSystem    *string `json:"measurement_system" validate:"omitempty,oneof=metric imperial"`
	Timezone             *string `json:"timezone" validate:"omitempty,max=64"`
	NotificationsEnabled *bool   `json:"notifications_enabled"`
	PrivacyLevel         *string `json:"privacy_level" validate:"omitempty,oneof=private friends public"`
}

// ChangePasswordRequest: смена пароля с подтверждением текущего.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}
