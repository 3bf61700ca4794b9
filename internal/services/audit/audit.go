// Package audit ведёт журнал действий пользователей. Запись идёт в таблицу
// audit_logs и, если настроен брокер, дублируется в обменник RabbitMQ.
// Ошибки записи только логируются и никогда не прерывают запрос.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/fitness-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/fitness-tracker/internal/metrics"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

const writeTimeout = 3 * time.Second

// Repository сохраняет записи журнала.
type Repository interface {
	InsertAuditEntry(ctx context.Context, e *models.AuditEntry) error
}

// Publisher отправляет события во внешний брокер.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// Recorder пишет записи аудита.
type Recorder struct {
	repo Repository
	pub  Publisher
	log  *slog.Logger
}

// NewRecorder создаёт Recorder. pub может быть nil.
func NewRecorder(repo Repository, pub Publisher, log *slog.Logger) *Recorder {
	return &Recorder{
		repo: repo,
		pub:  pub,
		log:  log,
	}
}

// Record сохраняет запись. Отмена запроса не прерывает запись журнала.
func (r *Recorder) Record(ctx context.Context, e models.AuditEntry) {
	const op = "audit.Record"
	log := r.log.With(sl.Op(op), slog.String("action", e.Action), slog.String("category", e.Category))

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Outcome == "" {
		e.Outcome = models.AuditOutcomeSuccess
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	if err := r.repo.InsertAuditEntry(ctx, &e); err != nil {
		log.Warn("failed to store audit entry", sl.Err(err))
	}
	metrics.AuditEvents.WithLabelValues(e.Category, e.Outcome).Inc()

	if r.pub == nil {
		return
	}
	if err := r.pub.Publish(e.Category, e); err != nil {
		log.Warn("failed to publish audit entry", sl.Err(err))
	}
}
