package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/magabrotheeeer/fitness-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

type scanner interface {
	Scan(dest ...any) error
}

const userColumns = `id, username, email, password_hash, first_name, last_name,
	date_of_birth, gender, phone, status, last_login, created_at, updated_at`

func scanUser(row scanner) (*models.User, error) {
	u := &models.User{}
	var dob, lastLogin sql.NullTime
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName,
		&u.LastName, &dob, &u.Gender, &u.Phone, &u.Status, &lastLogin,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	if dob.Valid {
		u.DateOfBirth = &dob.Time
	}
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}
	return u, nil
}

// CreateUser сохраняет пользователя вместе с профилем и настройками
// в одной транзакции.
func (s *Storage) CreateUser(ctx context.Context, user *models.User, profile models.Profile, prefs models.Preferences) error {
	const op = "storage.CreateUser"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		query := `INSERT INTO users (id, username, email, password_hash, first_name,
				      last_name, date_of_birth, gender, status)
				  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				  RETURNING created_at, updated_at`
		if err := tx.QueryRowContext(ctx, query,
			user.ID, user.Username, user.Email, user.PasswordHash, user.FirstName,
			user.LastName, user.DateOfBirth, user.Gender, user.Status,
		).Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO user_profiles (user_id, activity_level, daily_calorie_goal)
			 VALUES ($1, $2, $3)`,
			user.ID, profile.ActivityLevel, profile.DailyCalorieGoal); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO user_preferences (user_id, measurement_system, timezone,
			     notifications_enabled, privacy_level)
			 VALUES ($1, $2, $3, $4, $5)`,
			user.ID, prefs.MeasurementSystem, prefs.Timezone,
			prefs.NotificationsEnabled, prefs.PrivacyLevel)
		return err
	})
	if err != nil {
		return wrap(op, err)
	}
	return nil
}

// GetUserByID возвращает пользователя по идентификатору.
func (s *Storage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.GetUserByID"
	return s.getUser(ctx, op, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetUserByUsername возвращает пользователя по имени.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	return s.getUser(ctx, op, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

// GetUserByEmail возвращает пользователя по email без учёта регистра.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	return s.getUser(ctx, op, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
}

// GetUserByLogin ищет пользователя по имени или email.
func (s *Storage) GetUserByLogin(ctx context.Context, identifier string) (*models.User, error) {
	const op = "storage.GetUserByLogin"
	return s.getUser(ctx, op,
		`SELECT `+userColumns+` FROM users WHERE username = $1 OR LOWER(email) = LOWER($1) LIMIT 1`,
		identifier)
}

func (s *Storage) getUser(ctx context.Context, op, query string, arg any) (*models.User, error) {
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, arg))
	if err != nil {
		return nil, wrap(op, err)
	}
	return u, nil
}

// UpdateLastLogin фиксирует время успешного входа.
func (s *Storage) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	const op = "storage.UpdateLastLogin"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx,
		`UPDATE users SET last_login = $2 WHERE id = $1`, userID, at)
	if err != nil {
		return wrap(op, err)
	}
	return checkAffected(op, res)
}

// GetProfile возвращает физический профиль пользователя.
func (s *Storage) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	const op = "storage.GetProfile"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT user_id, height_cm, weight_kg, activity_level, target_weight_kg,
			      daily_calorie_goal, bio
			  FROM user_profiles
			  WHERE user_id = $1`
	p := &models.Profile{}
	var height, weight, target sql.NullFloat64
	if err := s.DB.QueryRowContext(ctx, query, userID).Scan(&p.UserID, &height, &weight,
		&p.ActivityLevel, &target, &p.DailyCalorieGoal, &p.Bio); err != nil {
		return nil, wrap(op, err)
	}
	p.HeightCm = floatPtr(height)
	p.WeightKg = floatPtr(weight)
	p.TargetWeightKg = floatPtr(target)
	return p, nil
}

// GetPreferences возвращает настройки пользователя.
func (s *Storage) GetPreferences(ctx context.Context, userID string) (*models.Preferences, error) {
	const op = "storage.GetPreferences"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT user_id, measurement_system, timezone, notifications_enabled, privacy_level
			  FROM user_preferences
			  WHERE user_id = $1`
	p := &models.Preferences{}
	if err := s.DB.QueryRowContext(ctx, query, userID).Scan(&p.UserID, &p.MeasurementSystem,
		&p.Timezone, &p.NotificationsEnabled, &p.PrivacyLevel); err != nil {
		return nil, wrap(op, err)
	}
	return p, nil
}

// UpdateProfile частично обновляет пользователя и его профиль в одной
// транзакции. nil-поля остаются без изменений.
func (s *Storage) UpdateProfile(ctx context.Context, userID string, u models.UserUpdate, p models.ProfileUpdate) error {
	const op = "storage.UpdateProfile"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE users SET
			     first_name    = COALESCE($2, first_name),
			     last_name     = COALESCE($3, last_name),
			     date_of_birth = COALESCE($4, date_of_birth),
			     gender        = COALESCE($5, gender),
			     phone         = COALESCE($6, phone),
			     updated_at    = NOW()
			 WHERE id = $1`,
			userID, u.FirstName, u.LastName, u.DateOfBirth, u.Gender, u.Phone)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return apperr.ErrNotFound
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE user_profiles SET
			     height_cm          = COALESCE($2, height_cm),
			     weight_kg          = COALESCE($3, weight_kg),
			     activity_level     = COALESCE($4, activity_level),
			     target_weight_kg   = COALESCE($5, target_weight_kg),
			     daily_calorie_goal = COALESCE($6, daily_calorie_goal),
			     bio                = COALESCE($7, bio),
			     updated_at         = NOW()
			 WHERE user_id = $1`,
			userID, p.HeightCm, p.WeightKg, p.ActivityLevel, p.TargetWeightKg,
			p.DailyCalorieGoal, p.Bio)
		return err
	})
	if err != nil {
		return wrap(op, err)
	}
	return nil
}

// UpdatePreferences частично обновляет настройки пользователя.
func (s *Storage) UpdatePreferences(ctx context.Context, userID string, req models.UpdatePreferencesRequest) error {
	const op = "storage.UpdatePreferences"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx,
		`UPDATE user_preferences SET
		     measurement_system    = COALESCE($2, measurement_system),
		     timezone              = COALESCE($3, timezone),
		     notifications_enabled = COALESCE($4, notifications_enabled),
		     privacy_level         = COALESCE($5, privacy_level),
		     updated_at            = NOW()
		 WHERE user_id = $1`,
		userID, req.MeasurementSystem, req.Timezone, req.NotificationsEnabled, req.PrivacyLevel)
	if err != nil {
		return wrap(op, err)
	}
	return checkAffected(op, res)
}

// UpdatePasswordHash заменяет хэш пароля.
func (s *Storage) UpdatePasswordHash(ctx context.Context, userID, hash string) error {
	const op = "storage.UpdatePasswordHash"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx,
		`UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`, userID, hash)
	if err != nil {
		return wrap(op, err)
	}
	return checkAffected(op, res)
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
