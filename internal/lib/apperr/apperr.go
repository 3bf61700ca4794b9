// Package apperr описывает классы ошибок приложения, которые HTTP-слой
// переводит в коды ответа: валидация (400), аутентификация (401),
// отсутствие или чужой ресурс (404), конфликт уникальности (409).
// Всё остальное считается внутренней ошибкой (500).
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation: некорректные или отсутствующие входные данные.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthenticated: отсутствующий, просроченный или невалидный токен,
	// либо неактивная учётная запись.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrNotFound: ресурс не существует или принадлежит другому пользователю.
	ErrNotFound = errors.New("resource not found")
	// ErrConflict: нарушение уникальности (например, повторная регистрация).
	ErrConflict = errors.New("resource already exists")
)

// ValidationError несёт человекочитаемую причину отказа.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Is позволяет сравнивать через errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Validation создаёт ValidationError с отформатированной причиной.
func Validation(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// ConflictError уточняет, что именно уже существует.
type ConflictError struct {
	Reason string
	Err    error
}

func (e *ConflictError) Error() string { return e.Reason }

// Is позволяет сравнивать через errors.Is(err, ErrConflict).
func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

func (e *ConflictError) Unwrap() error { return e.Err }

// Conflict оборачивает cause в ConflictError с причиной reason.
func Conflict(reason string, cause error) error {
	return &ConflictError{Reason: reason, Err: cause}
}

// AuthError: ошибка аутентификации с различимой причиной.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string { return e.Reason }

// Is позволяет сравнивать через errors.Is(err, ErrUnauthenticated).
func (e *AuthError) Is(target error) bool { return target == ErrUnauthenticated }

// Причины отказа в доступе.
var (
	ErrTokenMissing    = &AuthError{Reason: "access token required"}
	ErrTokenExpired    = &AuthError{Reason: "token expired"}
	ErrTokenInvalid    = &AuthError{Reason: "invalid token"}
	ErrUserNotFound    = &AuthError{Reason: "user not found"}
	ErrAccountInactive = &AuthError{Reason: "account is inactive"}
	ErrBadCredentials  = &AuthError{Reason: "invalid credentials"}
)

// Reason возвращает текст для клиента, если ошибка относится к известному классу.
// Для внутренних ошибок возвращает пустую строку.
func Reason(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Reason
	}
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Reason
	}
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce.Reason
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return ErrNotFound.Error()
	case errors.Is(err, ErrConflict):
		return ErrConflict.Error()
	case errors.Is(err, ErrValidation):
		return ErrValidation.Error()
	case errors.Is(err, ErrUnauthenticated):
		return ErrUnauthenticated.Error()
	}
	return ""
}

// Describe возвращает Reason, а для внутренних ошибок общий текст.
func Describe(err error) string {
	if reason := Reason(err); reason != "" {
		return reason
	}
	return "internal error"
}
