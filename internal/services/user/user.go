// Package user управляет профилем, настройками и паролем пользователя.
package user

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/fitness-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/dates"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/password"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

// Repository: операции хранилища над пользователем и его профилем.
type Repository interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	GetPreferences(ctx context.Context, userID string) (*models.Preferences, error)
	UpdateProfile(ctx context.Context, userID string, u models.UserUpdate, p models.ProfileUpdate) error
	UpdatePreferences(ctx context.Context, userID string, req models.UpdatePreferencesRequest) error
	UpdatePasswordHash(ctx context.Context, userID, hash string) error
}

// Auditor записывает действия пользователей.
type Auditor interface {
	Record(ctx context.Context, e models.AuditEntry)
}

// UserService реализует операции /api/users.
type UserService struct {
	repo  Repository
	audit Auditor
}

// NewUserService создаёт UserService.
func NewUserService(repo Repository, audit Auditor) *UserService {
	return &UserService{
		repo:  repo,
		audit: audit,
	}
}

// GetProfile собирает пользователя, профиль, настройки и BMI.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	const op = "user.GetProfile"

	u, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	prefs, err := s.repo.GetPreferences(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.UserProfile{
		User:        u,
		Profile:     profile,
		Preferences: prefs,
		BMI:         CalculateBMI(profile.HeightCm, profile.WeightKg),
	}, nil
}

// UpdateProfile частично обновляет пользователя и профиль и возвращает
// результат после обновления.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.UserProfile, error) {
	const op = "user.UpdateProfile"

	u := models.UserUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Gender:    req.Gender,
		Phone:     req.Phone,
	}
	if req.DateOfBirth != nil {
		dob, err := dates.ParseDate("date_of_birth", *req.DateOfBirth)
		if err != nil {
			return nil, err
		}
		u.DateOfBirth = &dob
	}
	p := models.ProfileUpdate{
		HeightCm:         req.HeightCm,
		WeightKg:         req.WeightKg,
		ActivityLevel:    req.ActivityLevel,
		TargetWeightKg:   req.TargetWeightKg,
		DailyCalorieGoal: req.DailyCalorieGoal,
		Bio:              req.Bio,
	}

	if err := s.repo.UpdateProfile(ctx, userID, u, p); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.audit.Record(ctx, models.AuditEntry{
		UserID:      userID,
		Action:      "user.update_profile",
		Category:    models.AuditCategoryUser,
		Description: "profile updated",
	})
	return s.GetProfile(ctx, userID)
}

// UpdatePreferences частично обновляет настройки.
func (s *UserService) UpdatePreferences(ctx context.Context, userID string, req models.UpdatePreferencesRequest) (*models.Preferences, error) {
	const op = "user.UpdatePreferences"

	if err := s.repo.UpdatePreferences(ctx, userID, req); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.audit.Record(ctx, models.AuditEntry{
		UserID:      userID,
		Action:      "user.update_preferences",
		Category:    models.AuditCategoryUser,
		Description: "preferences updated",
	})

	prefs, err := s.repo.GetPreferences(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return prefs, nil
}

// ChangePassword заменяет пароль после проверки текущего.
func (s *UserService) ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) error {
	const op = "user.ChangePassword"

	if err := password.CheckStrength(req.NewPassword); err != nil {
		return err
	}
	u, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(u.PasswordHash, req.CurrentPassword); err != nil {
		s.audit.Record(ctx, models.AuditEntry{
			UserID:      userID,
			Action:      "user.change_password",
			Category:    models.AuditCategoryUser,
			Description: "current password mismatch",
			Outcome:     models.AuditOutcomeFailure,
		})
		return apperr.Validation("current password is incorrect")
	}

	hashed, err := password.GetHash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.UpdatePasswordHash(ctx, userID, hashed); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.audit.Record(ctx, models.AuditEntry{
		UserID:      userID,
		Action:      "user.change_password",
		Category:    models.AuditCategoryUser,
		Description: "password changed",
	})
	return nil
}
