package mealsummary

import (
	"context"
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

type MockService struct {
	mock.Mock
}

func (m *MockService) Summary(ctx context.Context, userID, date string) (*models.DailyNutrition, error) {
	args := m.Called(ctx, userID, date)
	if res := args.Get(0); res != nil {
		return res.(*models.DailyNutrition), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestSummaryHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		date       string
		userID     string
		setupMock  func(*MockService)
		wantStatus int
		wantBody   string
	}{
		{
			name:   "summary for day",
			date:   "2025-06-01",
			userID: "u-1",
			setupMock: func(m *MockService) {
				m.On("Summary", mock.Anything, "u-1", "2025-06-01").Return(&models.DailyNutrition{
					Date: "2025-06-01", MealCount: 2, TotalCalories: 469.5, CalorieGoal: 2000,
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"total_calories":469.5`,
		},
		{
			name:   "malformed date",
			date:   "01.06.2025",
			userID: "u-1",
			setupMock: func(m *MockService) {
				m.On("Summary", mock.Anything, "u-1", "01.06.2025").
					Return(nil, apperr.Validation("date must be in YYYY-MM-DD format"))
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"error":"date must be in YYYY-MM-DD format"}`,
		},
		{
			name:       "anonymous",
			date:       "2025-06-01",
			setupMock:  func(_ *MockService) {},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"success":false,"error":"access token required"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodGet, "/api/meals/summary/"+tt.date, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("date", tt.date)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			if tt.userID != "" {
				ctx = middlewarectx.WithIdentity(ctx, &models.Identity{UserID: tt.userID})
			}
			w := httptest.NewRecorder()

			New(logger, svc).ServeHTTP(w, req.WithContext(ctx))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			svc.AssertExpectations(t)
		})
	}
}
