package goalstatus

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

func (m *MockService) SetStatus(ctx context.Context, userID string, id int64, status string) (*models.Goal, error) {
	args := m.Called(ctx, userID, id, status)
	if res := args.Get(0); res != nil {
		return res.(*models.Goal), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestStatusHandler(t *testing.T) {
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
			name: "paused",
			id:   "3",
			body: `{"status":"Paused"}`,
			setupMock: func(m *MockService) {
				m.On("SetStatus", mock.Anything, "u-1", int64(3), models.GoalStatusPaused).
					Return(&models.Goal{ID: 3, Status: models.GoalStatusPaused}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"message":"goal status updated successfully"`,
		},
		{
			name:       "unknown status",
			id:         "3",
			body:       `{"status":"Archived"}`,
			setupMock:  func(_ *MockService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `field Status must be one of: Active Completed Paused Cancelled`,
		},
		{
			name:       "missing status",
			id:         "3",
			body:       `{}`,
			setupMock:  func(_ *MockService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `field Status is a required field`,
		},
		{
			name:       "broken json",
			id:         "3",
			body:       `{"status":`,
			setupMock:  func(_ *MockService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"error":"invalid request body"}`,
		},
		{
			name:       "non-numeric id",
			id:         "abc",
			body:       `{"status":"Paused"}`,
			setupMock:  func(_ *MockService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"error":"invalid id"}`,
		},
		{
			name:       "zero id",
			id:         "0",
			body:       `{"status":"Paused"}`,
			setupMock:  func(_ *MockService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"error":"invalid id"}`,
		},
		{
			name: "foreign goal",
			id:   "9",
			body: `{"status":"Cancelled"}`,
			setupMock: func(m *MockService) {
				m.On("SetStatus", mock.Anything, "u-1", int64(9), models.GoalStatusCancelled).
					Return(nil, apperr.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `{"success":false,"error":"resource not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPut, "/api/goals/"+tt.id+"/status", strings.NewReader(tt.body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = middlewarectx.WithIdentity(ctx, &models.Identity{UserID: "u-1"})
			w := httptest.NewRecorder()

			New(logger, svc).ServeHTTP(w, req.WithContext(ctx))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			svc.AssertExpectations(t)
		})
	}
}
