package repository

import (
	"context"

	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

// InsertAuditEntry добавляет запись в журнал аудита.
func (s *Storage) InsertAuditEntry(ctx context.Context, e *models.AuditEntry) error {
	const op = "storage.InsertAuditEntry"
	if err := ctxDone(ctx, op); err != nil {
		return err
	}

	query := `INSERT INTO audit_logs (id, user_id, action, category, description, outcome)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING created_at`
	if err := s.DB.QueryRowContext(ctx, query, e.ID, nullString(e.UserID), e.Action,
		e.Category, e.Description, e.Outcome).Scan(&e.CreatedAt); err != nil {
		return wrap(op, err)
	}
	return nil
}
