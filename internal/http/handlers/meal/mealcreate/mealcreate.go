// Package mealcreate реализует HTTP-обработчик создания приёма пищи.
//
// Handler принимает приём пищи с необязательным списком продуктов,
// создаёт его через сервис и возвращает с пересчитанными итогами.
package mealcreate

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

// Handler управляет HTTP-запросами на создание приёма пищи.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис дневника питания
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания приёма пищи.
type Service interface {
	Create(ctx context.Context, userID string, req models.CreateMealRequest) (*models.Meal, error)
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
// @Summary Создать приём пищи
// @Description Создаёт приём пищи с продуктами и возвращает его с итогами по калориям и БЖУ.
// @Tags Meals
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.CreateMealRequest true "Приём пищи"
// @Success 201 {object} response.Response{data=models.Meal}
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации или неизвестный продукт"
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/meals [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.meal.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID := middlewarectx.UserID(r.Context())
	if userID == "" {
		response.WriteError(w, r, apperr.ErrTokenMissing)
		return
	}

	var req models.CreateMealRequest
	if err := request.Decode(r, &req, h.validate); err != nil {
		log.Error("invalid request", sl.Err(err))
		response.WriteError(w, r, err)
		return
	}

	meal, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		log.Error("failed to create meal", sl.Err(err))
		response.WriteError(w, r, err)
		return
	}

	log.Info("meal created", slog.Int64("meal_id", meal.ID), slog.Int("items", len(meal.Items)))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithMessage("meal created successfully", meal))
}
