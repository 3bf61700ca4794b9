package mealread

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/fitness-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

// MockService реализует интерфейс mealread.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Get(ctx context.Context, userID string, id int64) (*models.Meal, error) {
	args := m.Called(ctx, userID, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Meal), args.Error(1)
	}
	return nil, args.Error(1)
}

func serve(h http.Handler, userID, id string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/meals/"+id, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if userID != "" {
		ctx = middlewarectx.WithIdentity(ctx, &models.Identity{UserID: userID})
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req.WithContext(ctx))
	return w
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		userID         string
		id             string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "успешное чтение приёма пищи",
			userID: "owner",
			id:     "5",
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, "owner", int64(5)).Return(&models.Meal{
					ID: 5, UserID: "owner", MealType: models.MealTypeLunch, TotalCalories: 469.5,
					Items: []models.MealItem{{ID: 1, FoodID: 1, Quantity: 1.5, Calories: 247.5}},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"total_calories":469.5`,
		},
		{
			name:           "некорректный id в URL",
			userID:         "owner",
			id:             "abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"success":false,"error":"invalid id"}`,
		},
		{
			name:   "ошибка хранилища",
			userID: "owner",
			id:     "7",
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, "owner", int64(7)).Return(nil, fmt.Errorf("storage.GetMeal: %w", context.DeadlineExceeded))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"success":false,"error":"internal server error"}`,
		},
		{
			name:           "без авторизации",
			id:             "5",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"success":false,"error":"access token required"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			w := serve(New(logger, mockService), tt.userID, tt.id)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}

// Чужой и несуществующий приём пищи дают один и тот же ответ.
func TestReadHandler_ForeignAndMissingLookAlike(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := new(MockService)
	svc.On("Get", mock.Anything, "intruder", int64(5)).Return(nil, fmt.Errorf("meal.Get: %w", apperr.ErrNotFound))
	svc.On("Get", mock.Anything, "intruder", int64(999)).Return(nil, fmt.Errorf("meal.Get: %w", apperr.ErrNotFound))
	h := New(logger, svc)

	foreign := serve(h, "intruder", "5")
	missing := serve(h, "intruder", "999")

	assert.Equal(t, http.StatusNotFound, foreign.Code)
	assert.Equal(t, missing.Code, foreign.Code)
	assert.Equal(t, missing.Body.String(), foreign.Body.String())
	assert.JSONEq(t, `{"success":false,"error":"resource not found"}`, foreign.Body.String())
}
