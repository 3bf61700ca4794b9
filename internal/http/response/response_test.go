package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/fitness-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "validation", err: apperr.Validation("field x is bad"), wantCode: http.StatusBadRequest, wantMsg: "field x is bad"},
		{name: "wrapped validation", err: fmt.Errorf("meal.Create: %w", apperr.Validation("food 9 not found")),
			wantCode: http.StatusBadRequest, wantMsg: "food 9 not found"},
		{name: "auth", err: apperr.ErrTokenExpired, wantCode: http.StatusUnauthorized, wantMsg: "token expired"},
		{name: "not found", err: fmt.Errorf("storage.GetMeal: %w", apperr.ErrNotFound),
			wantCode: http.StatusNotFound, wantMsg: "resource not found"},
		{name: "conflict", err: apperr.Conflict("username or email already registered", apperr.ErrConflict),
			wantCode: http.StatusConflict, wantMsg: "username or email already registered"},
		{name: "internal", err: errors.New("pq: connection refused"),
			wantCode: http.StatusInternalServerError, wantMsg: InternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)

			WriteError(w, r, tt.err)

			assert.Equal(t, tt.wantCode, w.Code)
			var body Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantMsg, body.Error)
			assert.Nil(t, body.Data)
		})
	}
}

func TestList(t *testing.T) {
	resp := List([]int{1, 2}, models.Page{Limit: 10, Offset: 20}, 2)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":[1,2],"pagination":{"limit":10,"offset":20,"count":2}}`, string(raw))
}

func TestValidationMessage(t *testing.T) {
	type req struct {
		Username string  `json:"username" validate:"required"`
		Email    string  `json:"email" validate:"omitempty,email"`
		Type     string  `json:"type" validate:"omitempty,oneof=A B"`
		Value    float64 `json:"value" validate:"gte=0"`
	}
	err := validator.New().Struct(req{Email: "nope", Type: "C", Value: -1})
	require.Error(t, err)

	msg := ValidationMessage(err.(validator.ValidationErrors))

	assert.Contains(t, msg, "field Username is a required field")
	assert.Contains(t, msg, "field Email must be a valid email")
	assert.Contains(t, msg, "field Type must be one of: A B")
	assert.Contains(t, msg, "field Value is out of range")
}
