package fitnesstracker

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/fitness-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

// Заглушки реализуют только методы, которые дергают маршруты теста.
type stubAuth struct{ AuthService }

func (stubAuth) Authenticate(_ context.Context, token string) (*models.Identity, error) {
	switch token {
	case "":
		return nil, apperr.ErrTokenMissing
	case "good":
		return &models.Identity{UserID: "u-1"}, nil
	}
	return nil, apperr.ErrTokenInvalid
}

type stubMeals struct {
	MealService
	calls []string
}

func (s *stubMeals) Summary(_ context.Context, userID, date string) (*models.DailyNutrition, error) {
	s.calls = append(s.calls, "summary:"+userID+":"+date)
	return &models.DailyNutrition{}, nil
}

func (s *stubMeals) Get(_ context.Context, userID string, _ int64) (*models.Meal, error) {
	s.calls = append(s.calls, "get:"+userID)
	return &models.Meal{}, nil
}

func (s *stubMeals) SearchFoods(_ context.Context, userID, query string, _ int) ([]*models.Food, error) {
	s.calls = append(s.calls, "foods:"+userID+":"+query)
	return []*models.Food{}, nil
}

type stubWorkouts struct{ WorkoutService }

func (stubWorkouts) SearchExercises(context.Context, string, string, int) ([]*models.Exercise, error) {
	return []*models.Exercise{}, nil
}

type pinger struct{}

func (pinger) Ping(context.Context) error { return nil }

func TestRoutes(t *testing.T) {
	meals := &stubMeals{}
	r := chi.NewRouter()
	RegisterRoutes(r, slog.New(slog.NewTextHandler(io.Discard, nil)), Services{
		Auth:     stubAuth{},
		Meals:    meals,
		Workouts: stubWorkouts{},
		DB:       pinger{},
	})

	tests := []struct {
		name       string
		path       string
		token      string
		wantStatus int
		wantCall   string
	}{
		{name: "health is public", path: "/health", wantStatus: http.StatusOK},
		{name: "meals require token", path: "/api/meals/1", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", path: "/api/meals/1", token: "forged", wantStatus: http.StatusUnauthorized},
		{name: "meal by id", path: "/api/meals/1", token: "good", wantStatus: http.StatusOK, wantCall: "get:u-1"},
		{name: "summary wins over id", path: "/api/meals/summary/2025-04-02", token: "good",
			wantStatus: http.StatusOK, wantCall: "summary:u-1:2025-04-02"},
		{name: "anonymous food search", path: "/api/meals/foods/search?q=oat",
			wantStatus: http.StatusOK, wantCall: "foods::oat"},
		{name: "food search with token", path: "/api/meals/foods/search?q=oat", token: "good",
			wantStatus: http.StatusOK, wantCall: "foods:u-1:oat"},
		{name: "exercise search is public", path: "/api/workouts/exercises/search?q=run", wantStatus: http.StatusOK},
		{name: "goals require token", path: "/api/goals", wantStatus: http.StatusUnauthorized},
		{name: "unknown route", path: "/api/nothing", wantStatus: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meals.calls = nil
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCall != "" {
				assert.Equal(t, []string{tt.wantCall}, meals.calls)
			} else {
				assert.Empty(t, meals.calls)
			}
		})
	}
}
