// Package goalprogress реализует HTTP-обработчик записи прогресса по цели.
//
// Значение становится текущим значением цели. Активная цель, достигшая
// целевого значения, переходит в статус Completed.
package goalprogress

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
	Progress(ctx context.Context, userID string, id int64, req models.ProgressRequest) (*models.Goal, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Записать прогресс
// @Tags Goals
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID цели"
// @Param request body models.ProgressRequest true "Значение"
// @Success 200 {object} response.Response{data=models.Goal}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/goals/{id}/progress [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.goal.progress"

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

	var req models.ProgressRequest
	if err := request.Decode(r, &req, h.validate); err != nil {
		log.Error("invalid request", sl.Err(err))
		response.WriteError(w, r, err)
		return
	}

	goal, err := h.service.Progress(r.Context(), userID, id, req)
	if err != nil {
		log.Error("failed to record progress", sl.Err(err))
		response.WriteError(w, r, err)
		return
	}

	log.Info("progress recorded", slog.Int64("goal_id", id), slog.String("status", goal.Status))
	render.JSON(w, r, response.OKWithMessage("progress updated successfully", goal))
}
