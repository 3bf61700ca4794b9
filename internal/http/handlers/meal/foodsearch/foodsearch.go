// Package foodsearch реализует HTTP-обработчик поиска продуктов.
//
// Авторизация необязательна: анонимный запрос ищет только по общему
// каталогу, запрос с токеном включает собственные продукты пользователя.
package foodsearch

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fitness-tracker/internal/http/middlewarectx"
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
	SearchFoods(ctx context.Context, userID, query string, limit int) ([]*models.Food, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Поиск продуктов
// @Tags Foods
// @Produce  json
// @Param q query string true "Подстрока названия"
// @Param limit query int false "Размер выдачи (по умолчанию 20, максимум 100)"
// @Success 200 {object} response.Response{data=[]models.Food}
// @Failure 400 {object} response.ErrorResponse
// @Router /api/meals/foods/search [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.meal.foodsearch"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, err := request.Int(r, "limit")
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	foods, err := h.service.SearchFoods(r.Context(), middlewarectx.UserID(r.Context()), r.URL.Query().Get("q"), limit)
	if err != nil {
		log.Error("failed to search foods", sl.Err(err))
		response.WriteError(w, r, err)
		return
	}
	render.JSON(w, r, response.OK(foods))
}
