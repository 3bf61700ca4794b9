// Package workout реализует журнал тренировок и поиск по каталогу
// упражнений.
package workout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/magabrotheeeer/fitness-tracker/internal/cache"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/dates"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

// Границы выдачи поиска по каталогу.
const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
)

type Repository interface {
	CreateWorkout(ctx context.Context, w *models.Workout, exercises []models.WorkoutExercise) error
	AddWorkoutExercise(ctx context.Context, e *models.WorkoutExercise) error
	ListWorkouts(ctx context.Context, f models.WorkoutFilter) ([]*models.Workout, error)
	GetWorkout(ctx context.Context, id int64, userID string) (*models.Workout, error)
	ListWorkoutExercises(ctx context.Context, workoutID int64) ([]models.WorkoutExercise, error)
	DeleteWorkout(ctx context.Context, id int64, userID string) error

	SearchExercises(ctx context.Context, query, category string, limit int) ([]*models.Exercise, error)
	GetExercise(ctx context.Context, id int64) (*models.Exercise, error)
}

// Totals пересчитывает итоги тренировки.
type Totals interface {
	Recalculate(ctx context.Context, w *models.Workout) error
}

type Auditor interface {
	Record(ctx context.Context, e models.AuditEntry)
}

// WorkoutService реализует операции /api/workouts.
type WorkoutService struct {
	repo     Repository
	totals   Totals
	cache    cache.Store
	cacheTTL time.Duration
	audit    Auditor
	log      *slog.Logger
	now      func() time.Time
}

func NewWorkoutService(repo Repository, totals Totals, c cache.Store, cacheTTL time.Duration,
	audit Auditor, log *slog.Logger) *WorkoutService {
	return &WorkoutService{
		repo:     repo,
		totals:   totals,
		cache:    c,
		cacheTTL: cacheTTL,
		audit:    audit,
		log:      log,
		now:      time.Now,
	}
}

// List возвращает страницу тренировок пользователя.
func (s *WorkoutService) List(ctx context.Context, userID, date string, page models.Page) ([]*models.Workout, error) {
	const op = "workout.List"

	f := models.WorkoutFilter{UserID: userID, Limit: page.Limit, Offset: page.Offset}
	if date != "" {
		d, err := dates.ParseDate("date", date)
		if err != nil {
			return nil, err
		}
		f.Date = &d
	}
	workouts, err := s.repo.ListWorkouts(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return workouts, nil
}

// Create сохраняет тренировку с упражнениями и возвращает её с
// пересчитанными итогами.
func (s *WorkoutService) Create(ctx context.Context, userID string, req models.CreateWorkoutRequest) (_ *models.Workout, err error) {
	const op = "workout.Create"
	defer func() { s.auditFailure(ctx, userID, "workout.create", err) }()

	day, err := dates.ParseOptionalDate("workout_date", req.WorkoutDate, s.now())
	if err != nil {
		return nil, err
	}

	exercises := make([]models.WorkoutExercise, 0, len(req.Exercises))
	for _, e := range req.Exercises {
		we, err := s.resolveExercise(ctx, e)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		exercises = append(exercises, we)
	}

	intensity := req.Intensity
	if intensity == "" {
		intensity = models.IntensityModerate
	}
	w := &models.Workout{
		UserID:      userID,
		WorkoutDate: day,
		Name:        strings.TrimSpace(req.Name),
		Intensity:   intensity,
		Notes:       req.Notes,
	}
	if err := s.repo.CreateWorkout(ctx, w, exercises); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.totals.Recalculate(ctx, w); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.audit.Record(ctx, models.AuditEntry{
		UserID:      userID,
		Action:      "workout.create",
		Category:    models.AuditCategoryWorkout,
		Description: fmt.Sprintf("workout %d created with %d exercises", w.ID, len(exercises)),
	})
	return w, nil
}

// Get возвращает тренировку владельца с упражнениями по порядку.
func (s *WorkoutService) Get(ctx context.Context, userID string, id int64) (*models.Workout, error) {
	const op = "workout.Get"

	w, err := s.repo.GetWorkout(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if w.Exercises, err = s.repo.ListWorkoutExercises(ctx, w.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return w, nil
}

// AddExercise добавляет упражнение в конец тренировки.
func (s *WorkoutService) AddExercise(ctx context.Context, userID string, workoutID int64, req models.WorkoutExerciseRequest) (_ *models.Workout, err error) {
	const op = "workout.AddExercise"
	defer func() { s.auditFailure(ctx, userID, "workout.add_exercise", err) }()

	w, err := s.repo.GetWorkout(ctx, workoutID, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	we, err := s.resolveExercise(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	we.WorkoutID = w.ID
	if err := s.repo.AddWorkoutExercise(ctx, &we); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.totals.Recalculate(ctx, w); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if w.Exercises, err = s.repo.ListWorkoutExercises(ctx, w.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.audit.Record(ctx, models.AuditEntry{
		UserID:      userID,
		Action:      "workout.add_exercise",
		Category:    models.AuditCategoryWorkout,
		Description: fmt.Sprintf("exercise %d added to workout %d", we.ExerciseID, w.ID),
	})
	return w, nil
}

func (s *WorkoutService) Delete(ctx context.Context, userID string, id int64) (err error) {
	const op = "workout.Delete"
	defer func() { s.auditFailure(ctx, userID, "workout.delete", err) }()

	if err := s.repo.DeleteWorkout(ctx, id, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.audit.Record(ctx, models.AuditEntry{
		UserID:      userID,
		Action:      "workout.delete",
		Category:    models.AuditCategoryWorkout,
		Description: fmt.Sprintf("workout %d deleted", id),
	})
	return nil
}

// SearchExercises ищет упражнения каталога. Каталог общий, поэтому
// выдача кешируется независимо от пользователя.
func (s *WorkoutService) SearchExercises(ctx context.Context, query, category string, limit int) ([]*models.Exercise, error) {
	const op = "workout.SearchExercises"

	query = strings.TrimSpace(query)
	category = strings.TrimSpace(category)
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	limit = min(limit, MaxSearchLimit)

	key := cache.SearchKey("exercise", limit, query, category)
	var cached []*models.Exercise
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("exercise search cache read failed", slog.String("key", key), sl.Err(err))
	}
	if hit {
		return cached, nil
	}

	res, err := s.repo.SearchExercises(ctx, query, category, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(ctx, key, res, s.cacheTTL); err != nil {
		s.log.Warn("exercise search cache write failed", slog.String("key", key), sl.Err(err))
	}
	return res, nil
}

// auditFailure фиксирует отклонённое изменение тренировки.
func (s *WorkoutService) auditFailure(ctx context.Context, userID, action string, err error) {
	if err == nil {
		return
	}
	s.audit.Record(ctx, models.AuditEntry{
		UserID:      userID,
		Action:      action,
		Category:    models.AuditCategoryWorkout,
		Description: apperr.Describe(err),
		Outcome:     models.AuditOutcomeFailure,
	})
}

// resolveExercise проверяет упражнение по каталогу. Если клиент не
// передал сожжённые калории, они считаются как calories_per_minute,
// умноженное на длительность.
func (s *WorkoutService) resolveExercise(ctx context.Context, req models.WorkoutExerciseRequest) (models.WorkoutExercise, error) {
	ex, err := s.repo.GetExercise(ctx, req.ExerciseID)
	if errors.Is(err, apperr.ErrNotFound) {
		return models.WorkoutExercise{}, apperr.Validation("exercise %d not found", req.ExerciseID)
	}
	if err != nil {
		return models.WorkoutExercise{}, err
	}

	calories := ex.CaloriesPerMinute * float64(req.DurationMinutes)
	if req.CaloriesBurned != nil {
		calories = *req.CaloriesBurned
	}
	return models.WorkoutExercise{
		ExerciseID:      ex.ID,
		ExerciseName:    ex.Name,
		Sets:            req.Sets,
		Reps:            req.Reps,
		WeightKg:        req.WeightKg,
		DurationMinutes: req.DurationMinutes,
		DistanceKm:      req.DistanceKm,
		CaloriesBurned:  math.Round(calories*100) / 100,
		HeartRate:       req.HeartRate,
		Notes:           req.Notes,
	}, nil
}
