// Package goal реализует цели пользователя и историю прогресса по ним.
package goal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/magabrotheeeer/fitness-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/dates"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

// Приоритеты цели.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

type Repository interface {
	CountActiveGoals(ctx context.Context, userID string) (int, error)
	CreateGoal(ctx context.Context, g *models.Goal) error
	ListGoals(ctx context.Context, f models.GoalFilter) ([]*models.Goal, error)
	GetGoal(ctx context.Context, id int64, userID string) (*models.Goal, error)
	ListProgress(ctx context.Context, goalID int64) ([]models.ProgressTracking, error)
	RecordProgress(ctx context.Context, g *models.Goal, p *models.ProgressTracking) error
	UpdateGoalStatus(ctx context.Context, id int64, userID, status string, at time.Time) (*models.Goal, error)
	DeleteGoal(ctx context.Context, id int64, userID string) error
}

type Auditor interface {
	Record(ctx context.Context, e models.AuditEntry)
}

// GoalService реализует операции /api/goals.
type GoalService struct {
	repo  Repository
	audit Auditor
	now   func() time.Time
}

func NewGoalService(repo Repository, audit Auditor) *GoalService {
	return &GoalService{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// List возвращает страницу целей пользователя, при непустом status
// только с этим статусом.
func (s *GoalService) List(ctx context.Context, userID, status string, page models.Page) ([]*models.Goal, error) {
	const op = "goal.List"

	if status != "" && !validStatus(status) {
		return nil, apperr.Validation("status must be one of Active, Completed, Paused, Cancelled")
	}
	goals, err := s.repo.ListGoals(ctx, models.GoalFilter{
		UserID: userID,
		Status: status,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return goals, nil
}

// Create создаёт активную цель. У пользователя не может быть больше
// models.MaxActiveGoals активных целей одновременно.
func (s *GoalService) Create(ctx context.Context, userID string, req models.CreateGoalRequest) (_ *models.Goal, err error) {
	const op = "goal.Create"
	defer func() { s.auditFailure(ctx, userID, "goal.create", err) }()

	if !models.ValidGoalType(req.GoalType) {
		return nil, apperr.Validation("goal_type must be one of %s, %s, %s, %s, %s",
			models.GoalTypeWeightLoss, models.GoalTypeWeightGain, models.GoalTypeMuscleGain,
			models.GoalTypeStrength, models.GoalTypeEndurance)
	}
	start, err := dates.ParseOptionalDate("start_date", req.StartDate, s.now())
	if err != nil {
		return nil, err
	}
	var target *time.Time
	if req.TargetDate != "" {
		d, err := dates.ParseDate("target_date", req.TargetDate)
		if err != nil {
			return nil, err
		}
		if d.Before(start) {
			return nil, apperr.Validation("target_date must not be before start_date")
		}
		target = &d
	}

	active, err := s.repo.CountActiveGoals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if active >= models.MaxActiveGoals {
		return nil, apperr.Validation("maximum of %d active goals reached", models.MaxActiveGoals)
	}

	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	g := &models.Goal{
		UserID:      userID,
		GoalType:    req.GoalType,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		TargetValue: req.TargetValue,
		Unit:        req.Unit,
		StartDate:   start,
		TargetDate:  target,
		Status:      models.GoalStatusActive,
		Priority:    priority,
		Category:    req.Category,
	}
	if req.CurrentValue != nil {
		g.CurrentValue = *req.CurrentValue
	}
	if err := s.repo.CreateGoal(ctx, g); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.audit.Record(ctx, models.AuditEntry{
		UserID:      userID,
		Action:      "goal.create",
		Category:    models.AuditCategoryGoal,
		Description: fmt.Sprintf("goal %d created (%s)", g.ID, g.GoalType),
	})
	return g, nil
}

// Get возвращает цель владельца вместе с историей прогресса.
func (s *GoalService) Get(ctx context.Context, userID string, id int64) (*models.Goal, error) {
	const op = "goal.Get"

	g, err := s.repo.GetGoal(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if g.Progress, err = s.repo.ListProgress(ctx, g.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return g, nil
}

// Progress записывает новое текущее значение цели. Активная цель,
// достигшая целевого значения, переходит в Completed; цели в других
// статусах статус не меняют.
func (s *GoalService) Progress(ctx context.Context, userID string, id int64, req models.ProgressRequest) (_ *models.Goal, err error) {
	const op = "goal.Progress"
	defer func() { s.auditFailure(ctx, userID, "goal.progress", err) }()

	if req.Value == nil {
		return nil, apperr.Validation("field value is required")
	}
	recorded, err := dates.ParseOptionalDate("date", req.Date, s.now())
	if err != nil {
		return nil, err
	}

	g, err := s.repo.GetGoal(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	value := *req.Value
	wasActive := g.Status == models.GoalStatusActive
	g.CurrentValue = value
	if wasActive && g.Reached(value) {
		g.Status = models.GoalStatusCompleted
	}

	p := &models.ProgressTracking{
		Value:        value,
		RecordedDate: recorded,
		Notes:        req.Notes,
		Source:       models.ProgressSourceManual,
	}
	if err := s.repo.RecordProgress(ctx, g, p); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	desc := fmt.Sprintf("progress %.2f recorded for goal %d", value, g.ID)
	if wasActive && g.Status == models.GoalStatusCompleted {
		desc += ", goal completed"
	}
	s.audit.Record(ctx, models.AuditEntry{
		UserID:      userID,
		Action:      "goal.progress",
		Category:    models.AuditCategoryGoal,
		Description: desc,
	})
	return g, nil
}

// SetStatus явно меняет статус цели.
func (s *GoalService) SetStatus(ctx context.Context, userID string, id int64, status string) (_ *models.Goal, err error) {
	const op = "goal.SetStatus"
	defer func() { s.auditFailure(ctx, userID, "goal.status", err) }()

	if !validStatus(status) {
		return nil, apperr.Validation("status must be one of Active, Completed, Paused, Cancelled")
	}
	g, err := s.repo.UpdateGoalStatus(ctx, id, userID, status, dates.Day(s.now()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.audit.Record(ctx, models.AuditEntry{
		UserID:      userID,
		Action:      "goal.status",
		Category:    models.AuditCategoryGoal,
		Description: fmt.Sprintf("goal %d status set to %s", id, status),
	})
	return g, nil
}

func (s *GoalService) Delete(ctx context.Context, userID string, id int64) (err error) {
	const op = "goal.Delete"
	defer func() { s.auditFailure(ctx, userID, "goal.delete", err) }()

	if err := s.repo.DeleteGoal(ctx, id, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.audit.Record(ctx, models.AuditEntry{
		UserID:      userID,
		Action:      "goal.delete",
		Category:    models.AuditCategoryGoal,
		Description: fmt.Sprintf("goal %d deleted", id),
	})
	return nil
}

// auditFailure фиксирует отклонённое изменение цели.
func (s *GoalService) auditFailure(ctx context.Context, userID, action string, err error) {
	if err == nil {
		return
	}
	s.audit.Record(ctx, models.AuditEntry{
		UserID:      userID,
		Action:      action,
		Category:    models.AuditCategoryGoal,
		Description: apperr.Describe(err),
		Outcome:     models.AuditOutcomeFailure,
	})
}

func validStatus(status string) bool {
	switch status {
	case models.GoalStatusActive, models.GoalStatusCompleted, models.GoalStatusPaused, models.GoalStatusCancelled:
		return true
	}
	return false
}
