// Package health реализует проверку живости сервиса.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fitness-tracker/internal/http/response"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/sl"
)

const pingTimeout = 2 * time.Second

// Status: тело ответа /health.
type Status struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"ok"`
}

type Handler struct {
	log *slog.Logger
	db  Pinger
}

// Pinger проверяет доступность базы данных.
type Pinger interface {
	Ping(ctx context.Context) error
}

func New(log *slog.Logger, db Pinger) *Handler {
	return &Handler{
		log: log,
		db:  db,
	}
}

// ServeHTTP godoc
// @Summary Проверка состояния
// @Tags Health
// @Produce  json
// @Success 200 {object} response.Response{data=health.Status}
// @Failure 503 {object} response.Response{data=health.Status}
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.log.Error("database is unreachable",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			sl.Err(err),
		)
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.Response{
			Success: false,
			Error:   "database unavailable",
			Data:    Status{Status: "degraded", Database: "unavailable"},
		})
		return
	}
	render.JSON(w, r, response.OK(Status{Status: "ok", Database: "ok"}))
}
