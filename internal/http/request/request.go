// Package request разбирает входные данные HTTP-запроса: тело JSON,
// параметры пути и пагинацию. Все ошибки разбора возвращаются как
// apperr.ErrValidation.
package request

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fitness-tracker/internal/http/response"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

// Decode читает JSON-тело в dst и проверяет его тегами validate.
func Decode(r *http.Request, dst any, validate *validator.Validate) error {
	if err := render.DecodeJSON(r.Body, dst); err != nil {
		return apperr.Validation("invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return apperr.Validation("%s", response.ValidationMessage(verrs))
		}
		return apperr.Validation("invalid request body")
	}
	return nil
}

// ID возвращает положительный числовой параметр пути name.
func ID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("invalid %s", name)
	}
	return id, nil
}

// Page разбирает limit и offset из строки запроса. Отсутствующий limit
// заменяется models.DefaultLimit, слишком большой обрезается до
// models.MaxLimit.
func Page(r *http.Request) (models.Page, error) {
	page := models.Page{Limit: models.DefaultLimit}

	limit, err := Int(r, "limit")
	if err != nil {
		return page, err
	}
	if limit > 0 {
		page.Limit = min(limit, models.MaxLimit)
	}
	if page.Offset, err = Int(r, "offset"); err != nil {
		return page, err
	}
	return page, nil
}

// Int возвращает неотрицательный целый параметр строки запроса или 0,
// если он не задан.
func Int(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, apperr.Validation("query parameter %s must be a non-negative integer", name)
	}
	return v, nil
}
