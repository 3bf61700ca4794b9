// Package middlewarectx содержит HTTP middleware авторизации и ключи
// контекста запроса.
//
// Auth извлекает токен из заголовка Authorization (в виде "Bearer <token>"
// или просто токена), проверяет его и состояние учётной записи и кладёт
// в контекст Identity пользователя. В случае ошибки отвечает 401 с
// причиной отказа.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/fitness-tracker/internal/http/response"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// IdentityKey: ключ для *models.Identity в контексте.
const IdentityKey Key = "identity"

// Authenticator проверяет токен и возвращает пользователя, которому он
// выдан. Учётная запись перечитывается на каждый запрос, поэтому
// удалённый или деактивированный пользователь теряет доступ сразу.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Identity, error)
}

// Auth возвращает middleware, который пропускает только запросы с
// действительным токеном активного пользователя.
func Auth(authn Authenticator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Auth"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			id, err := authn.Authenticate(r.Context(), Token(r))
			if err != nil {
				log.Warn("request rejected", sl.Err(err))
				response.WriteError(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// OptionalAuth кладёт Identity в контекст, если токен действителен, и
// пропускает запрос дальше в любом случае.
func OptionalAuth(authn Authenticator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := Token(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			id, err := authn.Authenticate(r.Context(), token)
			if err != nil {
				log.Debug("optional auth ignored", slog.String("op", "middlewarectx.OptionalAuth"), sl.Err(err))
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// Token достаёт токен из заголовка Authorization.
func Token(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return h
}

// WithIdentity возвращает контекст с пользователем.
func WithIdentity(ctx context.Context, id *models.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, id)
}

// IdentityFrom возвращает пользователя из контекста.
func IdentityFrom(ctx context.Context) (*models.Identity, bool) {
	id, ok := ctx.Value(IdentityKey).(*models.Identity)
	return id, ok && id != nil
}

// UserID возвращает идентификатор пользователя из контекста или пустую
// строку для анонимного запроса.
func UserID(ctx context.Context) string {
	if id, ok := IdentityFrom(ctx); ok {
		return id.UserID
	}
	return ""
}
