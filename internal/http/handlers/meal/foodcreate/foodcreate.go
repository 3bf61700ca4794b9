// Package foodcreate реализует HTTP-обработчик добавления собственного
// продукта пользователя.
package foodcreate

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
	CreateFood(ctx context.Context, userID string, req models.CreateFoodRequest) (*models.Food, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Добавить свой продукт
// @Tags Foods
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.CreateFoodRequest true "Продукт, значения на одну порцию"
// @Success 201 {object} response.Response{data=models.Food}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /api/meals/foods [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.meal.foodcreate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID := middlewarectx.UserID(r.Context())
	if userID == "" {
		response.WriteError(w, r, apperr.ErrTokenMissing)
		return
	}

	var req models.CreateFoodRequest
	if err := request.Decode(r, &req, h.validate); err != nil {
		log.Error("invalid request", sl.Err(err))
		response.WriteError(w, r, err)
		return
	}

	food, err := h.service.CreateFood(r.Context(), userID, req)
	if err != nil {
		log.Error("failed to create food", sl.Err(err))
		response.WriteError(w, r, err)
		return
	}

	log.Info("food created", slog.Int64("food_id", food.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithMessage("food created successfully", food))
}
