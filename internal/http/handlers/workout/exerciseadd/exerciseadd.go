// Package exerciseadd реализует HTTP-обработчик добавления упражнения в
// тренировку. Упражнение встаёт в конец списка.
package exerciseadd

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

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

type Service interface {
	AddExercise(ctx context.Context, userID string, workoutID int64, req models.WorkoutExerciseRequest) (*models.Workout, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Добавить упражнение в тренировку
// @Tags Workouts
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID тренировки"
// @Param request body models.WorkoutExerciseRequest true "Упражнение"
// @Success 201 {object} response.Response{data=models.Workout}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/workouts/{id}/exercises [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.workout.exerciseadd"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID := middlewarectx.UserID(r.Context())
	if userID == "" {
		response.WriteError(w, r, apperr.ErrTokenMissing)
		return
	}
	id, err := request.ID(r, "id")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req models.WorkoutExerciseRequest
	if err := request.Decode(r, &req, h.validate); err != nil {
		log.Error("invalid request", sl.Err(err))
		response.WriteError(w, r, err)
		return
	}

	workout, err := h.service.AddExercise(r.Context(), userID, id, req)
	if err != nil {
		log.Error("failed to add exercise", sl.Err(err))
		response.WriteError(w, r, err)
		return
	}

	log.Info("exercise added", slog.Int64("workout_id", id), slog.Int64("exercise_id", req.ExerciseID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithMessage("exercise added successfully", workout))
}
