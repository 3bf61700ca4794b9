package mealitemadd

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/fitness-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) AddItem(ctx context.Context, userID string, mealID int64, req models.MealItemRequest) (*models.Meal, error) {
	args := m.Called(ctx, userID, mealID, req)
	if res := args.Get(0); res != nil {
		return res.(*models.Meal), args.Error(1)
	}
	return nil, args.Error(1)
}

func serve(h http.Handler, id, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/meals/"+id+"/items", strings.NewReader(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = middlewarectx.WithIdentity(ctx, &models.Identity{UserID: "u-1"})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req.WithContext(ctx))
	return w
}

func TestItemAddHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		id         string
		body       string
		setupMock  func(*MockService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "item added",
			id:   "7",
			body: `{"food_id":2,"quantity":1.5}`,
			setupMock: func(m *MockService) {
				m.On("AddItem", mock.Anything, "u-1", int64(7), models.MealItemRequest{FoodID: 2, Quantity: 1.5}).
					Return(&models.Meal{ID: 7, TotalCalories: 166.5}, nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"total_calories":166.5`,
		},
		{
			name:       "missing food",
			id:         "7",
			body:       `{"quantity":1}`,
			setupMock:  func(_ *MockService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `field FoodID is a required field`,
		},
		{
			name:       "quantity too large",
			id:         "7",
			body:       `{"food_id":2,"quantity":101}`,
			setupMock:  func(_ *MockService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `field Quantity is out of range`,
		},
		{
			name:       "broken json",
			id:         "7",
			body:       `[`,
			setupMock:  func(_ *MockService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"error":"invalid request body"}`,
		},
		{
			name:       "bad id",
			id:         "-1",
			body:       `{"food_id":2,"quantity":1}`,
			setupMock:  func(_ *MockService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"error":"invalid id"}`,
		},
		{
			name: "unknown food",
			id:   "7",
			body: `{"food_id":99,"quantity":1}`,
			setupMock: func(m *MockService) {
				m.On("AddItem", mock.Anything, "u-1", int64(7), mock.Anything).
					Return(nil, apperr.Validation("food %d not found", 99))
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"error":"food 99 not found"}`,
		},
		{
			name: "foreign meal",
			id:   "8",
			body: `{"food_id":2,"quantity":1}`,
			setupMock: func(m *MockService) {
				m.On("AddItem", mock.Anything, "u-1", int64(8), mock.Anything).Return(nil, apperr.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `{"success":false,"error":"resource not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			w := serve(New(logger, svc), tt.id, tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			svc.AssertExpectations(t)
		})
	}
}
