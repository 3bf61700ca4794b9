// Package exercisesearch реализует HTTP-обработчик поиска по каталогу
// упражнений. Авторизация не требуется.
package exercisesearch

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fitness-tracker/internal/http/request"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/response"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	SearchExercises(ctx context.Context, query, category string, limit int) ([]*models.Exercise, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Поиск упражнений
// @Tags Exercises
// @Produce  json
// @Param q query string false "Подстрока названия"
// @Param category query string false "Категория"
// @Param limit query int false "Размер выдачи (по умолчанию 20, максимум 100)"
// @Success 200 {object} response.Response{data=[]models.Exercise}
// @Failure 400 {object} response.ErrorResponse
// @Router /api/workouts/exercises/search [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.workout.exercisesearch"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, err := request.Int(r, "limit")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	q := r.URL.Query()

	res, err := h.service.SearchExercises(r.Context(), q.Get("q"), q.Get("category"), limit)
	if err != nil {
		log.Error("failed to search exercises", sl.Err(err))
		response.WriteError(w, r, err)
		return
	}
	render.JSON(w, r, response.OK(res))
}
