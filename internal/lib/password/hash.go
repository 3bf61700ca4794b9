// Package password реализует хеширование и проверку паролей.
//
// GetHash создаёт bcrypt-хеш для хранения, CompareHash сверяет хеш
// с введённым паролем, CheckStrength проверяет минимальную длину нового пароля.
package password

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/magabrotheeeer/fitness-tracker/internal/lib/apperr"
)

// MinLength: минимальная длина пароля в символах.
const MinLength = 8

// GetHash принимает пароль пользователя и возвращает его bcrypt-хеш.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash сравнивает bcrypt-хеш с введённым паролем.
//
// Возвращает nil, если пароль соответствует хешу, иначе, ошибку.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CheckStrength отклоняет пароли короче MinLength.
func CheckStrength(password string) error {
	if utf8.RuneCountInString(password) < MinLength {
		return apperr.Validation("password must be at least %d characters long", MinLength)
	}
	return nil
}
