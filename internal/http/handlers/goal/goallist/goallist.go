// Package goallist реализует HTTP-обработчик списка целей пользователя.
package goallist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fitness-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/request"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/response"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	List(ctx context.Context, userID, status string, page models.Page) ([]*models.Goal, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список целей
// @Tags Goals
// @Produce  json
// @Security BearerAuth
// @Param status query string false "Фильтр по статусу" Enums(Active, Completed, Paused, Cancelled)
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} response.Response{data=[]models.Goal}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /api/goals [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.goal.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID := middlewarectx.UserID(r.Context())
	if userID == "" {
		response.WriteError(w, r, apperr.ErrTokenMissing)
		return
	}
	page, err := request.Page(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	goals, err := h.service.List(r.Context(), userID, r.URL.Query().Get("status"), page)
	if err != nil {
		log.Error("failed to list goals", sl.Err(err))
		response.WriteError(w, r, err)
		return
	}
	render.JSON(w, r, response.List(goals, page, len(goals)))
}
