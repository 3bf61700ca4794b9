// Package auth содержит регистрацию, вход и проверку access-токенов.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/fitness-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/dates"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/password"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

// UserRepository описывает контракт для работы с учётными записями.
type UserRepository interface {
	// CreateUser сохраняет пользователя с профилем и настройками атомарно.
	CreateUser(ctx context.Context, user *models.User, profile models.Profile, prefs models.Preferences) error
	// GetUserByID возвращает пользователя или apperr.ErrNotFound.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	// GetUserByLogin ищет пользователя по имени или email.
	GetUserByLogin(ctx context.Context, identifier string) (*models.User, error)
	// UpdateLastLogin фиксирует время входа.
	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error
}

// Auditor записывает действия пользователей.
type Auditor interface {
	Record(ctx context.Context, e models.AuditEntry)
}

// AuthService отвечает за регистрацию, вход и проверку токенов.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	audit    Auditor
	log      *slog.Logger
	now      func() time.Time
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, audit Auditor, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		audit:    audit,
		log:      log,
		now:      time.Now,
	}
}

// Register создаёт учётную запись с профилем и настройками по умолчанию
// и сразу выдаёт токен. Отклонённая регистрация попадает в аудит.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (_ *models.AuthResult, err error) {
	const op = "auth.Register"

	username := strings.TrimSpace(req.Username)
	defer func() {
		if err != nil {
			s.audit.Record(ctx, models.AuditEntry{
				Action:      "auth.register",
				Category:    models.AuditCategoryAuth,
				Description: apperr.Describe(err) + ": " + username,
				Outcome:     models.AuditOutcomeFailure,
			})
		}
	}()

	if err := password.CheckStrength(req.Password); err != nil {
		return nil, err
	}
	user := &models.User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     NormalizeEmail(req.Email),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Gender:    req.Gender,
		Status:    models.UserStatusActive,
	}
	if req.DateOfBirth != "" {
		dob, err := dates.ParseDate("date_of_birth", req.DateOfBirth)
		if err != nil {
			return nil, err
		}
		user.DateOfBirth = &dob
	}
	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user.PasswordHash = hashed

	err = s.users.CreateUser(ctx, user, models.DefaultProfile(user.ID), models.DefaultPreferences(user.ID))
	if errors.Is(err, apperr.ErrConflict) {
		return nil, fmt.Errorf("%s: %w", op, apperr.Conflict("username or email already registered", err))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	token, expiresAt, err := s.jwtMaker.GenerateToken(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.audit.Record(ctx, models.AuditEntry{
		UserID:      user.ID,
		Action:      "auth.register",
		Category:    models.AuditCategoryAuth,
		Description: "account created for " + user.Username,
	})
	return &models.AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Login проверяет пароль пользователя, найденного по имени или email,
// и выдаёт токен. Неизвестный пользователь и неверный пароль неразличимы.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResult, error) {
	const op = "auth.Login"
	log := s.log.With(sl.Op(op))

	user, err := s.users.GetUserByLogin(ctx, req.Identifier)
	if errors.Is(err, apperr.ErrNotFound) {
		s.audit.Record(ctx, models.AuditEntry{
			Action:      "auth.login",
			Category:    models.AuditCategoryAuth,
			Description: "unknown login " + req.Identifier,
			Outcome:     models.AuditOutcomeFailure,
		})
		return nil, apperr.ErrBadCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := password.CompareHash(user.PasswordHash, req.Password); err != nil {
		s.audit.Record(ctx, models.AuditEntry{
			UserID:      user.ID,
			Action:      "auth.login",
			Category:    models.AuditCategoryAuth,
			Description: "wrong password",
			Outcome:     models.AuditOutcomeFailure,
		})
		return nil, apperr.ErrBadCredentials
	}
	if !user.IsActive() {
		return nil, apperr.ErrAccountInactive
	}

	token, expiresAt, err := s.jwtMaker.GenerateToken(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		log.Warn("failed to update last login", slog.String("user_id", user.ID), sl.Err(err))
	} else {
		user.LastLogin = &now
	}

	s.audit.Record(ctx, models.AuditEntry{
		UserID:      user.ID,
		Action:      "auth.login",
		Category:    models.AuditCategoryAuth,
		Description: "login succeeded",
	})
	return &models.AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Authenticate проверяет токен и заново читает учётную запись, чтобы
// удалённые и деактивированные пользователи теряли доступ сразу.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	const op = "auth.Authenticate"

	if token == "" {
		return nil, apperr.ErrTokenMissing
	}
	claims, err := s.jwtMaker.ParseToken(token)
	if errors.Is(err, jwt.ErrExpired) {
		return nil, apperr.ErrTokenExpired
	}
	if err != nil {
		return nil, apperr.ErrTokenInvalid
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !user.IsActive() {
		return nil, apperr.ErrAccountInactive
	}

	return &models.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

// Me возвращает актуальную учётную запись пользователя.
func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	const op = "auth.Me"
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// NormalizeEmail приводит email к виду, в котором он хранится:
// без пробелов по краям и в нижнем регистре.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
