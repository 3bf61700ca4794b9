// Package password реализует HTTP-обработчик смены пароля.
package password

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
	ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) error
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Сменить пароль
// @Description Проверяет текущий пароль и заменяет его новым (не короче 8 символов).
// @Tags Users
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.ChangePasswordRequest true "Текущий и новый пароль"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Неверный текущий пароль или слабый новый"
// @Failure 401 {object} response.ErrorResponse
// @Router /api/users/password [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.password"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID := middlewarectx.UserID(r.Context())
	if userID == "" {
		response.WriteError(w, r, apperr.ErrTokenMissing)
		return
	}

	var req models.ChangePasswordRequest
	if err := request.Decode(r, &req, h.validate); err != nil {
		log.Error("invalid request", sl.Err(err))
		response.WriteError(w, r, err)
		return
	}

	if err := h.service.ChangePassword(r.Context(), userID, req); err != nil {
		log.Warn("password change rejected", sl.Err(err))
		response.WriteError(w, r, err)
		return
	}

	log.Info("password changed")
	render.JSON(w, r, response.OKWithMessage("password changed successfully", nil))
}
