// Package mealitemadd реализует HTTP-обработчик добавления продукта в
// приём пищи.
package mealitemadd

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
	AddItem(ctx context.Context, userID string, mealID int64, req models.MealItemRequest) (*models.Meal, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Добавить продукт в приём пищи
// @Tags Meals
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID приёма пищи"
// @Param request body models.MealItemRequest true "Продукт и количество порций"
// @Success 201 {object} response.Response{data=models.Meal}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/meals/{id}/items [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.meal.itemadd"

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

	var req models.MealItemRequest
	if err := request.Decode(r, &req, h.validate); err != nil {
		log.Error("invalid request", sl.Err(err))
		response.WriteError(w, r, err)
		return
	}

	meal, err := h.service.AddItem(r.Context(), userID, id, req)
	if err != nil {
		log.Error("failed to add meal item", sl.Err(err))
		response.WriteError(w, r, err)
		return
	}

	log.Info("meal item added", slog.Int64("meal_id", id), slog.Int64("food_id", req.FoodID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithMessage("item added successfully", meal))
}
