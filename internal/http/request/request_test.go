package request

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/fitness-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

func TestDecode(t *testing.T) {
	v := validator.New()

	t.Run("valid body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"food_id":3,"quantity":1.5}`))
		var req models.MealItemRequest
		require.NoError(t, Decode(r, &req, v))
		assert.Equal(t, models.MealItemRequest{FoodID: 3, Quantity: 1.5}, req)
	})

	t.Run("malformed json", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"food_id":`))
		var req models.MealItemRequest
		err := Decode(r, &req, v)
		require.ErrorIs(t, err, apperr.ErrValidation)
		assert.Equal(t, "invalid request body", apperr.Reason(err))
	})

	t.Run("failed validation", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"food_id":3,"quantity":0}`))
		var req models.MealItemRequest
		err := Decode(r, &req, v)
		require.ErrorIs(t, err, apperr.ErrValidation)
		assert.Equal(t, "field Quantity is a required field", apperr.Reason(err))
	})
}

func withParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestID(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/meals/42", nil)
	id, err := ID(withParam(r, "id", "42"), "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"abc", "0", "-3", ""} {
		_, err := ID(withParam(r, "id", bad), "id")
		assert.ErrorIs(t, err, apperr.ErrValidation, bad)
	}
}

func TestPage(t *testing.T) {
	tests := []struct {
		query   string
		want    models.Page
		wantErr bool
	}{
		{query: "", want: models.Page{Limit: 50}},
		{query: "limit=10&offset=30", want: models.Page{Limit: 10, Offset: 30}},
		{query: "limit=1000", want: models.Page{Limit: 100}},
		{query: "limit=0", want: models.Page{Limit: 50}},
		{query: "limit=ten", wantErr: true},
		{query: "offset=-1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/meals?"+tt.query, nil)
			page, err := Page(r)
			if tt.wantErr {
				require.ErrorIs(t, err, apperr.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, page)
		})
	}
}
