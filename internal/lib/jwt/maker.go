// Package jwt реализует выпуск и проверку access-токенов.
//
// Maker выпускает подписанный HS256 токен с идентификатором, именем и email
// пользователя и ограниченным сроком жизни, а также разбирает токен обратно,
// различая просроченный токен и токен с неверной подписью или структурой.
package jwt

import (
	"errors"
	"time"
)

var (
	// ErrExpired возвращается для токена с истёкшим сроком действия.
	ErrExpired = errors.New("token expired")
	// ErrInvalid возвращается для повреждённого токена или токена с чужой подписью.
	ErrInvalid = errors.New("token invalid")
)

// Maker описывает выпуск и разбор токенов.
type Maker interface {
	// GenerateToken выпускает токен и возвращает момент его истечения.
	GenerateToken(userID, username, email string) (string, time.Time, error)
	// ParseToken проверяет подпись и срок действия и возвращает claims.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует Maker на общем секретном ключе.
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
	now       func() time.Time
}

// NewJWTMaker создаёт MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
		now:       time.Now,
	}
}

// TTL возвращает время жизни выпускаемых токенов.
func (j *MakerImpl) TTL() time.Duration {
	return j.tokenTTL
}
