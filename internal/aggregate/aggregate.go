// Package aggregate отвечает за согласованность производных итогов приёмов
// пищи и тренировок.
//
// Пересчёт выполняется одной хранимой функцией в базе, если она установлена.
// Наличие функций проверяется один раз при старте. Если функции нет или её
// вызов завершился ошибкой, итоги считаются в процессе: позиции читаются,
// сворачиваются SumMealItems / ReduceWorkoutExercises и записываются обратно.
// Такой путь не атомарен; параллельные изменения одного агрегата в этой
// системе не ожидаются.
package aggregate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/fitness-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/fitness-tracker/internal/metrics"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

// Имена хранимых функций пересчёта.
const (
	MealRoutine    = "recalculate_meal_totals"
	WorkoutRoutine = "recalculate_workout_totals"
)

// Recalculator пересчитывает итоги одного агрегата по его идентификатору.
type Recalculator interface {
	Recalculate(ctx context.Context, id int64) error
}

// RecalculatorFunc позволяет использовать функцию как Recalculator.
type RecalculatorFunc func(ctx context.Context, id int64) error

// Recalculate вызывает f(ctx, id).
func (f RecalculatorFunc) Recalculate(ctx context.Context, id int64) error {
	return f(ctx, id)
}

// RoutineProber проверяет, установлена ли хранимая функция.
type RoutineProber interface {
	RoutineExists(ctx context.Context, name string) (bool, error)
}

// MealStore: операции хранилища, нужные для пересчёта итогов приёма пищи.
type MealStore interface {
	CallMealTotalsRoutine(ctx context.Context, mealID int64) error
	ListMealItems(ctx context.Context, mealID int64) ([]models.MealItem, error)
	SetMealTotals(ctx context.Context, mealID int64, totals MealTotals) error
	GetMealTotals(ctx context.Context, mealID int64) (MealTotals, error)
}

// WorkoutStore: операции хранилища, нужные для пересчёта итогов тренировки.
type WorkoutStore interface {
	CallWorkoutTotalsRoutine(ctx context.Context, workoutID int64) error
	ListWorkoutExercises(ctx context.Context, workoutID int64) ([]models.WorkoutExercise, error)
	SetWorkoutTotals(ctx context.Context, workoutID int64, totals WorkoutTotals) error
	GetWorkoutTotals(ctx context.Context, workoutID int64) (WorkoutTotals, error)
}

// MealReduction: пересчёт итогов приёма пищи на стороне приложения.
func MealReduction(store MealStore) Recalculator {
	return RecalculatorFunc(func(ctx context.Context, id int64) error {
		const op = "aggregate.MealReduction"
		items, err := store.ListMealItems(ctx, id)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if err := store.SetMealTotals(ctx, id, SumMealItems(items)); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	})
}

// WorkoutReduction: пересчёт итогов тренировки на стороне приложения.
func WorkoutReduction(store WorkoutStore) Recalculator {
	return RecalculatorFunc(func(ctx context.Context, id int64) error {
		const op = "aggregate.WorkoutReduction"
		exercises, err := store.ListWorkoutExercises(ctx, id)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if err := store.SetWorkoutTotals(ctx, id, ReduceWorkoutExercises(exercises)); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	})
}

// Chain сначала вызывает native (если он задан), а при его ошибке, reduction.
type Chain struct {
	aggregate string
	native    Recalculator
	reduction Recalculator
	log       *slog.Logger
}

// NewChain собирает цепочку пересчёта. native может быть nil.
func NewChain(aggregate string, native, reduction Recalculator, log *slog.Logger) *Chain {
	return &Chain{
		aggregate: aggregate,
		native:    native,
		reduction: reduction,
		log:       log,
	}
}

// Recalculate реализует Recalculator.
func (c *Chain) Recalculate(ctx context.Context, id int64) error {
	const op = "aggregate.Recalculate"
	if c.native != nil {
		err := c.native.Recalculate(ctx, id)
		if err == nil {
			metrics.TotalsRecalculations.WithLabelValues(c.aggregate, metrics.PathRoutine).Inc()
			return nil
		}
		c.log.Warn("stored routine failed, recalculating in process",
			slog.String("aggregate", c.aggregate),
			slog.Int64("id", id),
			sl.Err(err),
		)
	}
	if err := c.reduction.Recalculate(ctx, id); err != nil {
		return fmt.Errorf("%s: %s %d: %w", op, c.aggregate, id, err)
	}
	metrics.TotalsRecalculations.WithLabelValues(c.aggregate, metrics.PathReduction).Inc()
	return nil
}

// Native сообщает, будет ли сначала вызываться хранимая функция.
func (c *Chain) Native() bool {
	return c.native != nil
}

func routineAvailable(ctx context.Context, prober RoutineProber, name string, log *slog.Logger) bool {
	ok, err := prober.RoutineExists(ctx, name)
	if err != nil {
		log.Warn("failed to probe stored routine", slog.String("routine", name), sl.Err(err))
		return false
	}
	if !ok {
		log.Info("stored routine not installed, totals will be reduced in process", slog.String("routine", name))
	}
	return ok
}

// Meals пересчитывает итоги приёмов пищи и обновляет переданную модель.
type Meals struct {
	store MealStore
	chain *Chain
}

// NewMeals проверяет наличие хранимой функции и собирает пересчёт приёмов пищи.
func NewMeals(ctx context.Context, store MealStore, prober RoutineProber, log *slog.Logger) *Meals {
	var native Recalculator
	if routineAvailable(ctx, prober, MealRoutine, log) {
		native = RecalculatorFunc(store.CallMealTotalsRoutine)
	}
	return &Meals{
		store: store,
		chain: NewChain("meal", native, MealReduction(store), log),
	}
}

// Recalculate пересчитывает итоги meal и перечитывает их из хранилища в meal.
func (m *Meals) Recalculate(ctx context.Context, meal *models.Meal) error {
	const op = "aggregate.Meals.Recalculate"
	if err := m.chain.Recalculate(ctx, meal.ID); err != nil {
		return err
	}
	totals, err := m.store.GetMealTotals(ctx, meal.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	meal.TotalCalories = totals.Calories
	meal.TotalProtein = totals.Protein
	meal.TotalCarbs = totals.Carbs
	meal.TotalFat = totals.Fat
	return nil
}

// Workouts пересчитывает итоги тренировок и обновляет переданную модель.
type Workouts struct {
	store WorkoutStore
	chain *Chain
}

// NewWorkouts проверяет наличие хранимой функции и собирает пересчёт тренировок.
func NewWorkouts(ctx context.Context, store WorkoutStore, prober RoutineProber, log *slog.Logger) *Workouts {
	var native Recalculator
	if routineAvailable(ctx, prober, WorkoutRoutine, log) {
		native = RecalculatorFunc(store.CallWorkoutTotalsRoutine)
	}
	return &Workouts{
		store: store,
		chain: NewChain("workout", native, WorkoutReduction(store), log),
	}
}

// Recalculate пересчитывает итоги workout и перечитывает их из хранилища в workout.
func (w *Workouts) Recalculate(ctx context.Context, workout *models.Workout) error {
	const op = "aggregate.Workouts.Recalculate"
	if err := w.chain.Recalculate(ctx, workout.ID); err != nil {
		return err
	}
	totals, err := w.store.GetWorkoutTotals(ctx, workout.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	workout.TotalDuration = totals.Duration
	workout.TotalCaloriesBurned = totals.CaloriesBurned
	workout.AverageHeartRate = totals.AverageHeartRate
	workout.MaxHeartRate = totals.MaxHeartRate
	return nil
}
