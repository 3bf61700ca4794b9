package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/magabrotheeeer/fitness-tracker/internal/aggregate"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

const mealColumns = `id, user_id, meal_type, meal_date, COALESCE(to_char(meal_time, 'HH24:MI'), ''),
	total_calories, total_protein, total_carbs, total_fat, notes, created_at`

func scanMeal(row scanner) (*models.Meal, error) {
	m := &models.Meal{}
	if err := row.Scan(&m.ID, &m.UserID, &m.MealType, &m.MealDate, &m.MealTime,
		&m.TotalCalories, &m.TotalProtein, &m.TotalCarbs, &m.TotalFat, &m.Notes,
		&m.CreatedAt); err != nil {
		return nil, err
	}
	return m, nil
}

// CreateMeal сохраняет приём пищи и его позиции в одной транзакции.
// Итоги не пересчитываются: это делает aggregate.Meals после вызова.
func (s *Storage) CreateMeal(ctx context.Context, meal *models.Meal, items []models.MealItem) error {
	const op = "storage.CreateMeal"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		query := `INSERT INTO meals (user_id, meal_type, meal_date, meal_time, notes)
				  VALUES ($1, $2, $3, NULLIF($4, '')::time, $5)
				  RETURNING id, created_at`
		if err := tx.QueryRowContext(ctx, query, meal.UserID, meal.MealType, meal.MealDate,
			meal.MealTime, meal.Notes).Scan(&meal.ID, &meal.CreatedAt); err != nil {
			return err
		}

		meal.Items = make([]models.MealItem, 0, len(items))
		for _, it := range items {
			it.MealID = meal.ID
			if err := insertMealItem(ctx, tx, &it); err != nil {
				return err
			}
			meal.Items = append(meal.Items, it)
		}
		return nil
	})
	if err != nil {
		return wrap(op, err)
	}
	return nil
}

func insertMealItem(ctx context.Context, q querier, item *models.MealItem) error {
	query := `INSERT INTO meal_items (meal_id, food_id, quantity, calories, protein, carbs, fat)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	return q.QueryRowContext(ctx, query, item.MealID, item.FoodID, item.Quantity,
		item.Calories, item.Protein, item.Carbs, item.Fat).Scan(&item.ID)
}

// AddMealItem добавляет позицию в существующий приём пищи.
func (s *Storage) AddMealItem(ctx context.Context, item *models.MealItem) error {
	const op = "storage.AddMealItem"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}

	if err := insertMealItem(ctx, s.DB, item); err != nil {
		return wrap(op, err)
	}
	return nil
}

// ListMeals возвращает приёмы пищи пользователя, новые первыми.
func (s *Storage) ListMeals(ctx context.Context, f models.MealFilter) ([]*models.Meal, error) {
	const op = "storage.ListMeals"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + mealColumns + `
			  FROM meals
			  WHERE user_id = $1 AND ($2::date IS NULL OR meal_date = $2::date)
			  ORDER BY meal_date DESC, meal_time DESC NULLS LAST, id DESC
			  LIMIT $3 OFFSET $4`
	rows, err := s.DB.QueryContext(ctx, query, f.UserID, f.Date, f.Limit, f.Offset)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	res := []*models.Meal{}
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		res = append(res, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return res, nil
}

// GetMeal возвращает приём пищи владельца. Чужой приём неотличим от
// отсутствующего.
func (s *Storage) GetMeal(ctx context.Context, id int64, userID string) (*models.Meal, error) {
	const op = "storage.GetMeal"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + mealColumns + ` FROM meals WHERE id = $1 AND user_id = $2`
	m, err := scanMeal(s.DB.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		return nil, wrap(op, err)
	}
	return m, nil
}

// ListMealItems возвращает позиции приёма пищи в порядке добавления.
func (s *Storage) ListMealItems(ctx context.Context, mealID int64) ([]models.MealItem, error) {
	const op = "storage.ListMealItems"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT mi.id, mi.meal_id, mi.food_id, f.name, mi.quantity,
			      mi.calories, mi.protein, mi.carbs, mi.fat
			  FROM meal_items mi
			  JOIN foods f ON f.id = mi.food_id
			  WHERE mi.meal_id = $1
			  ORDER BY mi.id`
	rows, err := s.DB.QueryContext(ctx, query, mealID)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	res := []models.MealItem{}
	for rows.Next() {
		var it models.MealItem
		if err := rows.Scan(&it.ID, &it.MealID, &it.FoodID, &it.FoodName, &it.Quantity,
			&it.Calories, &it.Protein, &it.Carbs, &it.Fat); err != nil {
			return nil, wrap(op, err)
		}
		res = append(res, it)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return res, nil
}

// DeleteMeal удаляет приём пищи владельца вместе с позициями.
func (s *Storage) DeleteMeal(ctx context.Context, id int64, userID string) error {
	const op = "storage.DeleteMeal"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM meals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return wrap(op, err)
	}
	return checkAffected(op, res)
}

// MealSummary сворачивает приёмы пищи за день по типам.
func (s *Storage) MealSummary(ctx context.Context, userID string, date time.Time) ([]models.MealTypeSummary, error) {
	const op = "storage.MealSummary"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT meal_type, COUNT(*),
			      COALESCE(SUM(total_calories), 0), COALESCE(SUM(total_protein), 0),
			      COALESCE(SUM(total_carbs), 0), COALESCE(SUM(total_fat), 0)
			  FROM meals
			  WHERE user_id = $1 AND meal_date = $2
			  GROUP BY meal_type
			  ORDER BY CASE meal_type
			      WHEN 'Breakfast' THEN 1 WHEN 'Lunch' THEN 2
			      WHEN 'Dinner' THEN 3 ELSE 4 END`
	rows, err := s.DB.QueryContext(ctx, query, userID, date)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	res := []models.MealTypeSummary{}
	for rows.Next() {
		var m models.MealTypeSummary
		if err := rows.Scan(&m.MealType, &m.MealCount, &m.Calories, &m.Protein,
			&m.Carbs, &m.Fat); err != nil {
			return nil, wrap(op, err)
		}
		res = append(res, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return res, nil
}

// CallMealTotalsRoutine пересчитывает итоги хранимой функцией.
func (s *Storage) CallMealTotalsRoutine(ctx context.Context, mealID int64) error {
	const op = "storage.CallMealTotalsRoutine"
	if _, err := s.DB.ExecContext(ctx, `SELECT recalculate_meal_totals($1)`, mealID); err != nil {
		return wrap(op, err)
	}
	return nil
}

// SetMealTotals записывает итоги, посчитанные в приложении.
func (s *Storage) SetMealTotals(ctx context.Context, mealID int64, t aggregate.MealTotals) error {
	const op = "storage.SetMealTotals"
	res, err := s.DB.ExecContext(ctx,
		`UPDATE meals
		 SET total_calories = $2, total_protein = $3, total_carbs = $4, total_fat = $5
		 WHERE id = $1`,
		mealID, t.Calories, t.Protein, t.Carbs, t.Fat)
	if err != nil {
		return wrap(op, err)
	}
	return checkAffected(op, res)
}

// GetMealTotals читает текущие итоги приёма пищи.
func (s *Storage) GetMealTotals(ctx context.Context, mealID int64) (aggregate.MealTotals, error) {
	const op = "storage.GetMealTotals"
	var t aggregate.MealTotals
	err := s.DB.QueryRowContext(ctx,
		`SELECT total_calories, total_protein, total_carbs, total_fat FROM meals WHERE id = $1`,
		mealID).Scan(&t.Calories, &t.Protein, &t.Carbs, &t.Fat)
	if err != nil {
		return aggregate.MealTotals{}, wrap(op, err)
	}
	return t, nil
}
