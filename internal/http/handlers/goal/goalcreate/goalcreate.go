// Package goalcreate реализует HTTP-обработчик создания цели.
//
// У пользователя может быть не больше models.MaxActiveGoals активных
// целей. Новая цель создаётся в статусе Active.
package goalcreate

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

// Handler управляет HTTP-запросами на создание цели.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает бизнес-логику создания цели.
type Service interface {
	Create(ctx context.Context, userID string, req models.CreateGoalRequest) (*models.Goal, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать цель
// @Tags Goals
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.CreateGoalRequest true "Цель"
// @Success 201 {object} response.Response{data=models.Goal}
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации или превышен лимит активных целей"
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/goals [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.goal.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID := middlewarectx.UserID(r.Context())
	if userID == "" {
		response.WriteError(w, r, apperr.ErrTokenMissing)
		return
	}

	var req models.CreateGoalRequest
	if err := request.Decode(r, &req, h.validate); err != nil {
		log.Error("invalid request", sl.Err(err))
		response.WriteError(w, r, err)
		return
	}

	goal, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		log.Error("failed to create goal", sl.Err(err))
		response.WriteError(w, r, err)
		return
	}

	log.Info("goal created", slog.Int64("goal_id", goal.ID), slog.String("goal_type", goal.GoalType))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithMessage("goal created successfully", goal))
}
