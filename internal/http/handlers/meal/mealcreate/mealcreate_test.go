package mealcreate

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/fitness-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, userID string, req models.CreateMealRequest) (*models.Meal, error) {
	args := m.Called(ctx, userID, req)
	if res := args.Get(0); res != nil {
		return res.(*models.Meal), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		body       string
		setupMock  func(*MockService)
		wantStatus int
		wantError  string
	}{
		{
			name: "created with items",
			body: `{"meal_type":"Lunch","meal_date":"2025-06-01","items":[{"food_id":1,"quantity":1.5}]}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "u-1", models.CreateMealRequest{
					MealType: "Lunch", MealDate: "2025-06-01",
					Items: []models.MealItemRequest{{FoodID: 1, Quantity: 1.5}},
				}).Return(&models.Meal{ID: 3, MealType: "Lunch", TotalCalories: 247.5}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "unknown meal type",
			body:       `{"meal_type":"Brunch"}`,
			setupMock:  func(_ *MockService) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "field MealType must be one of: Breakfast Lunch Dinner Snack",
		},
		{
			name:       "item with zero quantity",
			body:       `{"meal_type":"Snack","items":[{"food_id":1,"quantity":0}]}`,
			setupMock:  func(_ *MockService) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "field Quantity is a required field",
		},
		{
			name: "unknown food",
			body: `{"meal_type":"Snack","items":[{"food_id":99,"quantity":1}]}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "u-1", mock.Anything).Return(nil, apperr.Validation("food 99 not found"))
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "food 99 not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/meals", strings.NewReader(tt.body))
			req = req.WithContext(middlewarectx.WithIdentity(req.Context(), &models.Identity{UserID: "u-1"}))
			w := httptest.NewRecorder()

			New(logger, svc).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, body["error"])
			} else {
				assert.Equal(t, true, body["success"])
				assert.Equal(t, 247.5, body["data"].(map[string]any)["total_calories"])
			}
			svc.AssertExpectations(t)
		})
	}
}
