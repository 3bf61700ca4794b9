package repository

import (
	"context"
	"database/sql"

	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

const foodColumns = `id, name, brand, category, serving_size, serving_unit, calories,
	protein, carbs, fat, fiber, created_by`

func scanFood(row scanner) (*models.Food, error) {
	f := &models.Food{}
	var createdBy sql.NullString
	if err := row.Scan(&f.ID, &f.Name, &f.Brand, &f.Category, &f.ServingSize, &f.ServingUnit,
		&f.Calories, &f.Protein, &f.Carbs, &f.Fat, &f.Fiber, &createdBy); err != nil {
		return nil, err
	}
	if createdBy.Valid {
		f.CreatedBy = &createdBy.String
	}
	return f, nil
}

// SearchFoods ищет продукты по подстроке названия или бренда. Пустой userID
// ограничивает поиск общим каталогом, иначе в выдачу попадают и продукты
// пользователя.
func (s *Storage) SearchFoods(ctx context.Context, query, userID string, limit int) ([]*models.Food, error) {
	const op = "storage.SearchFoods"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	q := `SELECT ` + foodColumns + `
		  FROM foods
		  WHERE (name ILIKE '%' || $1::text || '%' OR brand ILIKE '%' || $1::text || '%')
		    AND (created_by IS NULL OR created_by = $2)
		  ORDER BY created_by NULLS LAST, name
		  LIMIT $3`
	rows, err := s.DB.QueryContext(ctx, q, query, nullString(userID), limit)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	res := []*models.Food{}
	for rows.Next() {
		f, err := scanFood(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		res = append(res, f)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return res, nil
}

// GetFood возвращает продукт, видимый пользователю: из общего каталога
// или созданный им самим.
func (s *Storage) GetFood(ctx context.Context, id int64, userID string) (*models.Food, error) {
	const op = "storage.GetFood"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	q := `SELECT ` + foodColumns + `
		  FROM foods
		  WHERE id = $1 AND (created_by IS NULL OR created_by = $2)`
	f, err := scanFood(s.DB.QueryRowContext(ctx, q, id, nullString(userID)))
	if err != nil {
		return nil, wrap(op, err)
	}
	return f, nil
}

// CreateFood добавляет продукт пользователя и заполняет food.ID.
func (s *Storage) CreateFood(ctx context.Context, food *models.Food) error {
	const op = "storage.CreateFood"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}

	q := `INSERT INTO foods (name, brand, category, serving_size, serving_unit, calories,
		      protein, carbs, fat, fiber, created_by)
		  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, q, food.Name, food.Brand, food.Category,
		food.ServingSize, food.ServingUnit, food.Calories, food.Protein, food.Carbs,
		food.Fat, food.Fiber, food.CreatedBy).Scan(&food.ID); err != nil {
		return wrap(op, err)
	}
	return nil
}

// SearchExercises ищет упражнения по подстроке названия и, если задано,
// по категории.
func (s *Storage) SearchExercises(ctx context.Context, query, category string, limit int) ([]*models.Exercise, error) {
	const op = "storage.SearchExercises"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	q := `SELECT id, name, category, muscle_group, equipment, calories_per_minute
		  FROM exercises
		  WHERE name ILIKE '%' || $1::text || '%'
		    AND ($2::text = '' OR lower(category) = lower($2::text))
		  ORDER BY name
		  LIMIT $3`
	rows, err := s.DB.QueryContext(ctx, q, query, category, limit)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	res := []*models.Exercise{}
	for rows.Next() {
		e := &models.Exercise{}
		if err := rows.Scan(&e.ID, &e.Name, &e.Category, &e.MuscleGroup, &e.Equipment,
			&e.CaloriesPerMinute); err != nil {
			return nil, wrap(op, err)
		}
		res = append(res, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return res, nil
}

// GetExercise возвращает упражнение каталога.
func (s *Storage) GetExercise(ctx context.Context, id int64) (*models.Exercise, error) {
	const op = "storage.GetExercise"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	e := &models.Exercise{}
	q := `SELECT id, name, category, muscle_group, equipment, calories_per_minute
		  FROM exercises
		  WHERE id = $1`
	if err := s.DB.QueryRowContext(ctx, q, id).Scan(&e.ID, &e.Name, &e.Category,
		&e.MuscleGroup, &e.Equipment, &e.CaloriesPerMinute); err != nil {
		return nil, wrap(op, err)
	}
	return e, nil
}
