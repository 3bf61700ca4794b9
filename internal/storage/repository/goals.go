package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

const goalColumns = `id, user_id, goal_type, title, description, target_value, current_value,
	unit, start_date, target_date, status, priority, category, completed_date,
	created_at, updated_at`

func scanGoal(row scanner) (*models.Goal, error) {
	g := &models.Goal{}
	var targetDate, completedDate sql.NullTime
	if err := row.Scan(&g.ID, &g.UserID, &g.GoalType, &g.Title, &g.Description,
		&g.TargetValue, &g.CurrentValue, &g.Unit, &g.StartDate, &targetDate, &g.Status,
		&g.Priority, &g.Category, &completedDate, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}
	if targetDate.Valid {
		g.TargetDate = &targetDate.Time
	}
	if completedDate.Valid {
		g.CompletedDate = &completedDate.Time
	}
	return g, nil
}

// CountActiveGoals возвращает число активных целей пользователя.
func (s *Storage) CountActiveGoals(ctx context.Context, userID string) (int, error) {
	const op = "storage.CountActiveGoals"
	if err := ctxDone(ctx, op); err != nil {
		return 0, err
	}

	var n int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM goals WHERE user_id = $1 AND status = 'Active'`, userID).Scan(&n)
	if err != nil {
		return 0, wrap(op, err)
	}
	return n, nil
}

// CreateGoal сохраняет цель и заполняет служебные поля.
func (s *Storage) CreateGoal(ctx context.Context, g *models.Goal) error {
	const op = "storage.CreateGoal"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}

	query := `INSERT INTO goals (user_id, goal_type, title, description, target_value,
			      current_value, unit, start_date, target_date, status, priority, category)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			  RETURNING id, created_at, updated_at`
	if err := s.DB.QueryRowContext(ctx, query, g.UserID, g.GoalType, g.Title, g.Description,
		g.TargetValue, g.CurrentValue, g.Unit, g.StartDate, g.TargetDate, g.Status,
		g.Priority, g.Category).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return wrap(op, err)
	}
	return nil
}

// ListGoals возвращает цели пользователя, при необходимости по статусу.
func (s *Storage) ListGoals(ctx context.Context, f models.GoalFilter) ([]*models.Goal, error) {
	const op = "storage.ListGoals"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + goalColumns + `
			  FROM goals
			  WHERE user_id = $1 AND ($2::text = '' OR status = $2::text)
			  ORDER BY CASE priority WHEN 'High' THEN 1 WHEN 'Medium' THEN 2 ELSE 3 END,
			      created_at DESC
			  LIMIT $3 OFFSET $4`
	rows, err := s.DB.QueryContext(ctx, query, f.UserID, f.Status, f.Limit, f.Offset)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	res := []*models.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		res = append(res, g)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return res, nil
}

// GetGoal возвращает цель владельца.
func (s *Storage) GetGoal(ctx context.Context, id int64, userID string) (*models.Goal, error) {
	const op = "storage.GetGoal"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = $1 AND user_id = $2`
	g, err := scanGoal(s.DB.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		return nil, wrap(op, err)
	}
	return g, nil
}

// ListProgress возвращает историю прогресса цели, новые записи первыми.
func (s *Storage) ListProgress(ctx context.Context, goalID int64) ([]models.ProgressTracking, error) {
	const op = "storage.ListProgress"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT id, goal_id, user_id, value, recorded_date, notes, source, created_at
			  FROM progress_tracking
			  WHERE goal_id = $1
			  ORDER BY recorded_date DESC, id DESC`
	rows, err := s.DB.QueryContext(ctx, query, goalID)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	res := []models.ProgressTracking{}
	for rows.Next() {
		var p models.ProgressTracking
		if err := rows.Scan(&p.ID, &p.GoalID, &p.UserID, &p.Value, &p.RecordedDate,
			&p.Notes, &p.Source, &p.CreatedAt); err != nil {
			return nil, wrap(op, err)
		}
		res = append(res, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return res, nil
}

// RecordProgress в одной транзакции обновляет текущее значение и статус цели
// и добавляет запись в историю. completed_date ставится только при первом
// переходе в Completed. В g возвращается состояние цели после обновления.
func (s *Storage) RecordProgress(ctx context.Context, g *models.Goal, p *models.ProgressTracking) error {
	const op = "storage.RecordProgress"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		query := `UPDATE goals SET
				      current_value  = $3,
				      status         = $4::text,
				      completed_date = CASE WHEN $4::text = 'Completed'
				                            THEN COALESCE(completed_date, $5::date)
				                            ELSE completed_date END,
				      updated_at     = NOW()
				  WHERE id = $1 AND user_id = $2
				  RETURNING ` + goalColumns
		updated, err := scanGoal(tx.QueryRowContext(ctx, query, g.ID, g.UserID,
			g.CurrentValue, g.Status, p.RecordedDate))
		if err != nil {
			return err
		}

		if err := tx.QueryRowContext(ctx,
			`INSERT INTO progress_tracking (goal_id, user_id, value, recorded_date, notes, source)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING id, created_at`,
			g.ID, g.UserID, p.Value, p.RecordedDate, p.Notes, p.Source,
		).Scan(&p.ID, &p.CreatedAt); err != nil {
			return err
		}
		p.GoalID = g.ID
		p.UserID = g.UserID
		*g = *updated
		return nil
	})
	if err != nil {
		return wrap(op, err)
	}
	return nil
}

// UpdateGoalStatus меняет статус цели. При первом переходе в Completed
// ставится completed_date = at.
func (s *Storage) UpdateGoalStatus(ctx context.Context, id int64, userID, status string, at time.Time) (*models.Goal, error) {
	const op = "storage.UpdateGoalStatus"
	if err := ctxDone(ctx, op); err != nil {
		return nil, err
	}

	query := `UPDATE goals SET
			      status         = $3::text,
			      completed_date = CASE WHEN $3::text = 'Completed'
			                            THEN COALESCE(completed_date, $4::date)
			                            ELSE completed_date END,
			      updated_at     = NOW()
			  WHERE id = $1 AND user_id = $2
			  RETURNING ` + goalColumns
	g, err := scanGoal(s.DB.QueryRowContext(ctx, query, id, userID, status, at))
	if err != nil {
		return nil, wrap(op, err)
	}
	return g, nil
}

// DeleteGoal удаляет цель владельца вместе с историей прогресса.
func (s *Storage) DeleteGoal(ctx context.Context, id int64, userID string) error {
	const op = "storage.DeleteGoal"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return wrap(op, err)
	}
	return checkAffected(op, res)
}
