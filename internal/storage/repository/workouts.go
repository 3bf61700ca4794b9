package repository

import (
	"context"
	"database/sql"

	"github.com/magabrotheeeer/fitness-tracker/internal/aggregate"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

const workoutColumns = `id, user_id, workout_date, name, intensity, total_duration,
	total_calories_burned, average_heart_rate, max_heart_rate, notes, created_at`

func scanWorkout(row scanner) (*models.Workout, error) {
	w := &models.Workout{}
	if err := row.Scan(&w.ID, &w.UserID, &w.WorkoutDate, &w.Name, &w.Intensity,
		&w.TotalDuration, &w.TotalCaloriesBurned, &w.AverageHeartRate, &w.MaxHeartRate,
		&w.Notes, &w.CreatedAt); err != nil {
		return nil, err
	}
	return w, nil
}

// CreateWorkout сохраняет тренировку и её упражнения в одной транзакции.
// Упражнения нумеруются по порядку следования, начиная с 1.
func (s *Storage) CreateWorkout(ctx context.Context, w *models.Workout, exercises []models.WorkoutExercise) error {
	const op = "storage.CreateWorkout"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		query := `INSERT INTO workouts (user_id, workout_date, name, intensity, notes)
				  VALUES ($1, $2, $3, $4, $5)
				  RETURNING id, created_at`
		if err := tx.QueryRowContext(ctx, query, w.UserID, w.WorkoutDate, w.Name,
			w.Intensity, w.Notes).Scan(&w.ID, &w.CreatedAt); err != nil {
			return err
		}

		w.Exercises = make([]models.WorkoutExercise, 0, len(exercises))
		for i, e := range exercises {
			e.WorkoutID = w.ID
			e.OrderIndex = i + 1
			if err := insertWorkoutExercise(ctx, tx, &e); err != nil {
				return err
			}
			w.Exercises = append(w.Exercises, e)
		}
		return nil
	})
	if err != nil {
		return wrap(op, err)
	}
	return nil
}

func insertWorkoutExercise(ctx context.Context, q querier, e *models.WorkoutExercise) error {
	query := `INSERT INTO workout_exercises (workout_id, exercise_id, sets, reps, weight_kg,
			      duration_minutes, distance_km, calories_burned, heart_rate, order_index, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			  RETURNING id`
	return q.QueryRowContext(ctx, query, e.WorkoutID, e.ExerciseID, e.Sets, e.Reps, e.WeightKg,
		e.DurationMinutes, e.DistanceKm, e.CaloriesBurned, e.HeartRate, e.OrderIndex,
		e.Notes).Scan(&e.ID)
}

// AddWorkoutExercise добавляет упражнение в конец тренировки.
func (s *Storage) AddWorkoutExercise(ctx context.Context, e *models.WorkoutExercise) error {
	const op = "storage.AddWorkoutExercise"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(order_index), 0) + 1 FROM workout_exercises WHERE workout_id = $1`,
			e.WorkoutID).Scan(&e.OrderIndex); err != nil {
			return err
		}
		return insertWorkoutExercise(ctx, tx, e)
	})
	if err != nil {
		return wrap(op, err)
	}
	return nil
}

// ListWorkouts возвращает тренировки пользователя, новые первыми.
func (s *Storage) ListWorkouts(ctx context.Context, f models.WorkoutFilter) ([]*models.Workout, error) {
	const op = "storage.ListWorkouts"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + workoutColumns + `
			  FROM workouts
			  WHERE user_id = $1 AND ($2::date IS NULL OR workout_date = $2::date)
			  ORDER BY workout_date DESC, id DESC
			  LIMIT $3 OFFSET $4`
	rows, err := s.DB.QueryContext(ctx, query, f.UserID, f.Date, f.Limit, f.Offset)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	res := []*models.Workout{}
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		res = append(res, w)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return res, nil
}

// GetWorkout возвращает тренировку владельца.
func (s *Storage) GetWorkout(ctx context.Context, id int64, userID string) (*models.Workout, error) {
	const op = "storage.GetWorkout"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + workoutColumns + ` FROM workouts WHERE id = $1 AND user_id = $2`
	w, err := scanWorkout(s.DB.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		return nil, wrap(op, err)
	}
	return w, nil
}

// ListWorkoutExercises возвращает упражнения тренировки по order_index.
func (s *Storage) ListWorkoutExercises(ctx context.Context, workoutID int64) ([]models.WorkoutExercise, error) {
	const op = "storage.ListWorkoutExercises"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT we.id, we.workout_id, we.exercise_id, e.name, we.sets, we.reps, we.weight_kg,
			      we.duration_minutes, we.distance_km, we.calories_burned, we.heart_rate,
			      we.order_index, we.notes
			  FROM workout_exercises we
			  JOIN exercises e ON e.id = we.exercise_id
			  WHERE we.workout_id = $1
			  ORDER BY we.order_index, we.id`
	rows, err := s.DB.QueryContext(ctx, query, workoutID)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	res := []models.WorkoutExercise{}
	for rows.Next() {
		var (
			e                     models.WorkoutExercise
			sets, reps, heartRate sql.NullInt64
			weight, distance      sql.NullFloat64
		)
		if err := rows.Scan(&e.ID, &e.WorkoutID, &e.ExerciseID, &e.ExerciseName, &sets, &reps,
			&weight, &e.DurationMinutes, &distance, &e.CaloriesBurned, &heartRate,
			&e.OrderIndex, &e.Notes); err != nil {
			return nil, wrap(op, err)
		}
		e.Sets = intPtr(sets)
		e.Reps = intPtr(reps)
		e.HeartRate = intPtr(heartRate)
		e.WeightKg = floatPtr(weight)
		e.DistanceKm = floatPtr(distance)
		res = append(res, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return res, nil
}

// DeleteWorkout удаляет тренировку владельца вместе с упражнениями.
func (s *Storage) DeleteWorkout(ctx context.Context, id int64, userID string) error {
	const op = "storage.DeleteWorkout"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM workouts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return wrap(op, err)
	}
	return checkAffected(op, res)
}

// CallWorkoutTotalsRoutine пересчитывает итоги хранимой функцией.
func (s *Storage) CallWorkoutTotalsRoutine(ctx context.Context, workoutID int64) error {
	const op = "storage.CallWorkoutTotalsRoutine"
	if _, err := s.DB.ExecContext(ctx, `SELECT recalculate_workout_totals($1)`, workoutID); err != nil {
		return wrap(op, err)
	}
	return nil
}

// SetWorkoutTotals записывает итоги, посчитанные в приложении.
func (s *Storage) SetWorkoutTotals(ctx context.Context, workoutID int64, t aggregate.WorkoutTotals) error {
	const op = "storage.SetWorkoutTotals"
	res, err := s.DB.ExecContext(ctx,
		`UPDATE workouts
		 SET total_duration = $2, total_calories_burned = $3,
		     average_heart_rate = $4, max_heart_rate = $5
		 WHERE id = $1`,
		workoutID, t.Duration, t.CaloriesBurned, t.AverageHeartRate, t.MaxHeartRate)
	if err != nil {
		return wrap(op, err)
	}
	return checkAffected(op, res)
}

// GetWorkoutTotals читает текущие итоги тренировки.
func (s *Storage) GetWorkoutTotals(ctx context.Context, workoutID int64) (aggregate.WorkoutTotals, error) {
	const op = "storage.GetWorkoutTotals"
	var t aggregate.WorkoutTotals
	err := s.DB.QueryRowContext(ctx,
		`SELECT total_duration, total_calories_burned, average_heart_rate, max_heart_rate
		 FROM workouts WHERE id = $1`,
		workoutID).Scan(&t.Duration, &t.CaloriesBurned, &t.AverageHeartRate, &t.MaxHeartRate)
	if err != nil {
		return aggregate.WorkoutTotals{}, wrap(op, err)
	}
	return t, nil
}
