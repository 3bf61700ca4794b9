package middlewarectx_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/fitness-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

type AuthenticatorMock struct {
	mock.Mock
}

func (m *AuthenticatorMock) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	args := m.Called(ctx, token)
	id, _ := args.Get(0).(*models.Identity)
	return id, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

var alice = &models.Identity{UserID: "u-1", Username: "alice", Email: "alice@example.com"}

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		token      string
		mockErr    error
		wantStatus int
		wantBody   string
		wantCalled bool
	}{
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
			mockErr:    apperr.ErrTokenMissing,
			wantBody:   `{"success":false,"error":"access token required"}`,
		},
		{
			name:       "expired token",
			authHeader: "Bearer old",
			token:      "old",
			mockErr:    apperr.ErrTokenExpired,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"success":false,"error":"token expired"}`,
		},
		{
			name:       "bad signature",
			authHeader: "Bearer forged",
			token:      "forged",
			mockErr:    apperr.ErrTokenInvalid,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"success":false,"error":"invalid token"}`,
		},
		{
			name:       "deleted user",
			authHeader: "Bearer orphan",
			token:      "orphan",
			mockErr:    apperr.ErrUserNotFound,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"success":false,"error":"user not found"}`,
		},
		{
			name:       "inactive account",
			authHeader: "Bearer t",
			token:      "t",
			mockErr:    apperr.ErrAccountInactive,
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"success":false,"error":"account is inactive"}`,
		},
		{
			name:       "store failure",
			authHeader: "Bearer t",
			token:      "t",
			mockErr:    errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"success":false,"error":"internal server error"}`,
		},
		{
			name:       "bearer token",
			authHeader: "Bearer good",
			token:      "good",
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:       "bare token",
			authHeader: "good",
			token:      "good",
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthenticatorMock)
			if tt.mockErr != nil {
				authMock.On("Authenticate", mock.Anything, tt.token).Return(nil, tt.mockErr)
			} else {
				authMock.On("Authenticate", mock.Anything, tt.token).Return(alice, nil)
			}

			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				id, ok := middlewarectx.IdentityFrom(r.Context())
				assert.True(t, ok)
				assert.Equal(t, alice, id)
				assert.Equal(t, "u-1", middlewarectx.UserID(r.Context()))
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			middlewarectx.Auth(authMock, newNoopLogger())(next).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCalled, called)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			}
			authMock.AssertExpectations(t)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	authMock := new(AuthenticatorMock)
	authMock.On("Authenticate", mock.Anything, "good").Return(alice, nil)
	authMock.On("Authenticate", mock.Anything, "bad").Return(nil, apperr.ErrTokenInvalid)

	var gotUser string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = middlewarectx.UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	h := middlewarectx.OptionalAuth(authMock, newNoopLogger())(next)

	for header, want := range map[string]string{"": "", "Bearer good": "u-1", "Bearer bad": ""} {
		gotUser = "unset"
		req := httptest.NewRequest(http.MethodGet, "/api/meals/foods/search?q=oat", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()

		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, header)
		assert.Equal(t, want, gotUser, header)
	}
	authMock.AssertNumberOfCalls(t, "Authenticate", 2)
}

func TestToken(t *testing.T) {
	for header, want := range map[string]string{
		"":               "",
		"Bearer abc":     "abc",
		"bearer abc":     "abc",
		"  Bearer  abc ": "abc",
		"abc":            "abc",
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		assert.Equal(t, want, middlewarectx.Token(req), header)
	}
}
