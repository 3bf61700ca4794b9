// Package workoutcreate реализует HTTP-обработчик создания тренировки.
//
// Для упражнений без calories_burned калории считаются по каталогу.
// Ответ содержит тренировку с пересчитанными итогами.
package workoutcreate

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fitness-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/request"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/response"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

// Handler управляет HTTP-запросами на создание тренировки.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис журнала тренировок
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания тренировки.
type Service interface {
	Create(ctx context.Context, userID string, req models.CreateWorkoutRequest) (*models.Workout, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать тренировку
// @Tags Workouts
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.CreateWorkoutRequest true "Тренировка"
// @Success 201 {object} response.Response{data=models.Workout}
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации или неизвестное упражнение"
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/workouts [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.workout.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID := middlewarectx.UserID(r.Context())
	if userID == "" {
		response.WriteError(w, r, apperr.ErrTokenMissing)
		return
	}

	var req models.CreateWorkoutRequest
	if err := request.Decode(r, &req, h.validate); err != nil {
		log.Error("invalid request", sl.Err(err))
		response.WriteError(w, r, err)
		return
	}

	workout, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		log.Error("failed to create workout", sl.Err(err))
		response.WriteError(w, r, err)
		return
	}

	log.Info("workout created", slog.Int64("workout_id", workout.ID), slog.Int("exercises", len(workout.Exercises)))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithMessage("workout created successfully", workout))
}
