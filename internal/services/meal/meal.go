// Package meal реализует дневник питания: приёмы пищи, их позиции,
// суточную сводку и каталог продуктов.
package meal

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

// Repository: операции хранилища, которые нужны дневнику питания.
type Repository interface {
	CreateMeal(ctx context.Context, meal *models.Meal, items []models.MealItem) error
	AddMealItem(ctx context.Context, item *models.MealItem) error
	ListMeals(ctx context.Context, f models.MealFilter) ([]*models.Meal, error)
	GetMeal(ctx context.Context, id int64, userID string) (*models.Meal, error)
	ListMealItems(ctx context.Context, mealID int64) ([]models.MealItem, error)
	DeleteMeal(ctx context.Context, id int64, userID string) error
	MealSummary(ctx context.Context, userID string, date time.Time) ([]models.MealTypeSummary, error)
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)

	SearchFoods(ctx context.Context, query, userID string, limit int) ([]*models.Food, error)
	GetFood(ctx context.Context, id int64, userID string) (*models.Food, error)
	CreateFood(ctx context.Context, food *models.Food) error
}

// Totals пересчитывает итоги приёма пищи.
type Totals interface {
	Recalculate(ctx context.Context, meal *models.Meal) error
}

// Auditor записывает действия пользователей.
type Auditor interface {
	Record(ctx context.Context, e models.AuditEntry)
}

// MealService реализует операции /api/meals.
type MealService struct {
	repo     Repository
	totals   Totals
	cache    cache.Store
	cacheTTL time.Duration
	audit    Auditor
	log      *slog.Logger
	now      func() time.Time
}

// NewMealService создаёт MealService. cacheTTL задаёт время жизни
// кешированной выдачи поиска по каталогу.
func NewMealService(repo Repository, totals Totals, c cache.Store, cacheTTL time.Duration,
	audit Auditor, log *slog.Logger) *MealService {
	return &MealService{
		repo:     repo,
		totals:   totals,
		cache:    c,
		cacheTTL: cacheTTL,
		audit:    audit,
		log:      log,
		now:      time.Now,
	}
}

// List возвращает страницу приёмов пищи пользователя, при непустом
// date только за этот день.
func (s *MealService) List(ctx context.Context, userID, date string, page models.Page) ([]*models.Meal, error) {
	const op = "meal.List"

	f := models.MealFilter{UserID: userID, Limit: page.Limit, Offset: page.Offset}
	if date != "" {
		d, err := dates.ParseDate("date", date)
		if err != nil {
			return nil, err
		}
		f.Date = &d
	}
	meals, err := s.repo.ListMeals(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return meals, nil
}

// Create сохраняет приём пищи вместе с позициями и возвращает его с
// пересчитанными итогами. Продукт, которого нет в каталоге или который
// принадлежит другому пользователю, отклоняется до записи.
func (s *MealService) Create(ctx context.Context, userID string, req models.CreateMealRequest) (_ *models.Meal, err error) {
	const op = "meal.Create"
	defer func() { s.auditFailure(ctx, userID, "meal.create", err) }()

	mealDate, err := dates.ParseOptionalDate("meal_date", req.MealDate, s.now())
	if err != nil {
		return nil, err
	}
	var mealTime string
	if req.MealTime != "" {
		if mealTime, err = dates.ParseClock("meal_time", req.MealTime); err != nil {
			return nil, err
		}
	}

	items := make([]models.MealItem, 0, len(req.Items))
	for _, it := range req.Items {
		item, err := s.resolveItem(ctx, userID, it)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, item)
	}

	meal := &models.Meal{
		UserID:   userID,
		MealType: req.MealType,
		MealDate: mealDate,
		MealTime: mealTime,
		Notes:    req.Notes,
	}
	if err := s.repo.CreateMeal(ctx, meal, items); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.totals.Recalculate(ctx, meal); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.audit.Record(ctx, models.AuditEntry{
		UserID:      userID,
		Action:      "meal.create",
		Category:    models.AuditCategoryMeal,
		Description: fmt.Sprintf("meal %d created with %d items", meal.ID, len(items)),
	})
	return meal, nil
}

// Get возвращает приём пищи владельца вместе с позициями.
func (s *MealService) Get(ctx context.Context, userID string, id int64) (*models.Meal, error) {
	const op = "meal.Get"

	meal, err := s.repo.GetMeal(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if meal.Items, err = s.repo.ListMealItems(ctx, meal.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return meal, nil
}

// AddItem добавляет продукт в приём пищи и возвращает приём с
// обновлёнными итогами и позициями.
func (s *MealService) AddItem(ctx context.Context, userID string, mealID int64, req models.MealItemRequest) (_ *models.Meal, err error) {
	const op = "meal.AddItem"
	defer func() { s.auditFailure(ctx, userID, "meal.add_item", err) }()

	meal, err := s.repo.GetMeal(ctx, mealID, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	item, err := s.resolveItem(ctx, userID, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	item.MealID = meal.ID
	if err := s.repo.AddMealItem(ctx, &item); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.totals.Recalculate(ctx, meal); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if meal.Items, err = s.repo.ListMealItems(ctx, meal.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.audit.Record(ctx, models.AuditEntry{
		UserID:      userID,
		Action:      "meal.add_item",
		Category:    models.AuditCategoryMeal,
		Description: fmt.Sprintf("food %d added to meal %d", item.FoodID, meal.ID),
	})
	return meal, nil
}

// Delete удаляет приём пищи владельца; позиции удаляются каскадно.
func (s *MealService) Delete(ctx context.Context, userID string, id int64) (err error) {
	const op = "meal.Delete"
	defer func() { s.auditFailure(ctx, userID, "meal.delete", err) }()

	if err := s.repo.DeleteMeal(ctx, id, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.audit.Record(ctx, models.AuditEntry{
		UserID:      userID,
		Action:      "meal.delete",
		Category:    models.AuditCategoryMeal,
		Description: fmt.Sprintf("meal %d deleted", id),
	})
	return nil
}

// Summary сворачивает приёмы пищи за день по типам и добавляет
// суточную норму калорий из профиля.
func (s *MealService) Summary(ctx context.Context, userID, date string) (*models.DailyNutrition, error) {
	const op = "meal.Summary"

	day, err := dates.ParseDate("date", date)
	if err != nil {
		return nil, err
	}
	byType, err := s.repo.MealSummary(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res := &models.DailyNutrition{Date: dates.Format(day), ByMealType: byType}
	for _, t := range byType {
		res.MealCount += t.MealCount
		res.TotalCalories += t.Calories
		res.TotalProtein += t.Protein
		res.TotalCarbs += t.Carbs
		res.TotalFat += t.Fat
	}
	res.TotalCalories = round2(res.TotalCalories)
	res.TotalProtein = round2(res.TotalProtein)
	res.TotalCarbs = round2(res.TotalCarbs)
	res.TotalFat = round2(res.TotalFat)

	profile, err := s.repo.GetProfile(ctx, userID)
	switch {
	case err == nil:
		res.CalorieGoal = profile.DailyCalorieGoal
	case errors.Is(err, apperr.ErrNotFound):
	default:
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// SearchFoods ищет продукты по подстроке названия. Анонимная выдача
// содержит только общий каталог и кешируется; выдача для пользователя
// включает его собственные продукты и не кешируется.
func (s *MealService) SearchFoods(ctx context.Context, userID, query string, limit int) ([]*models.Food, error) {
	const op = "meal.SearchFoods"

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperr.Validation("query parameter q is required")
	}
	limit = searchLimit(limit)

	if userID != "" {
		foods, err := s.repo.SearchFoods(ctx, query, userID, limit)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return foods, nil
	}

	key := cache.SearchKey("food", limit, query)
	var cached []*models.Food
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("food search cache read failed", slog.String("key", key), sl.Err(err))
	}
	if hit {
		return cached, nil
	}

	foods, err := s.repo.SearchFoods(ctx, query, "", limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(ctx, key, foods, s.cacheTTL); err != nil {
		s.log.Warn("food search cache write failed", slog.String("key", key), sl.Err(err))
	}
	return foods, nil
}

// CreateFood добавляет продукт, видимый только его автору.
func (s *MealService) CreateFood(ctx context.Context, userID string, req models.CreateFoodRequest) (_ *models.Food, err error) {
	const op = "meal.CreateFood"
	defer func() { s.auditFailure(ctx, userID, "food.create", err) }()

	food := &models.Food{
		Name:        strings.TrimSpace(req.Name),
		Brand:       req.Brand,
		Category:    req.Category,
		ServingSize: req.ServingSize,
		ServingUnit: req.ServingUnit,
		Calories:    req.Calories,
		Protein:     req.Protein,
		Carbs:       req.Carbs,
		Fat:         req.Fat,
		Fiber:       req.Fiber,
		CreatedBy:   &userID,
	}
	if err := s.repo.CreateFood(ctx, food); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.audit.Record(ctx, models.AuditEntry{
		UserID:      userID,
		Action:      "food.create",
		Category:    models.AuditCategoryMeal,
		Description: fmt.Sprintf("custom food %d created", food.ID),
	})
	return food, nil
}

func (s *MealService) auditFailure(ctx context.Context, userID, action string, err error) {
	if err == nil {
		return
	}
	s.audit.Record(ctx, models.AuditEntry{
		UserID:      userID,
		Action:      action,
		Category:    models.AuditCategoryMeal,
		Description: apperr.Describe(err),
		Outcome:     models.AuditOutcomeFailure,
	})
}

func (s *MealService) resolveItem(ctx context.Context, userID string, req models.MealItemRequest) (models.MealItem, error) {
	food, err := s.repo.GetFood(ctx, req.FoodID, userID)
	if errors.Is(err, apperr.ErrNotFound) {
		return models.MealItem{}, apperr.Validation("food %d not found", req.FoodID)
	}
	if err != nil {
		return models.MealItem{}, err
	}
	return food.Contribution(req.Quantity), nil
}

func searchLimit(limit int) int {
	if limit <= 0 {
		return DefaultSearchLimit
	}
	return min(limit, MaxSearchLimit)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
