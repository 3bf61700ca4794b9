package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTMaker_GenerateAndParseToken_ValidCases(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	tokenTTL := 15 * time.Minute
	maker := NewJWTMaker(secretKey, tokenTTL)

	tests := []struct {
		name     string
		userID   string
		username string
		email    string
	}{
		{
			name:     "regular user",
			userID:   "5b1f3c9e-8a8d-4b5e-9d4a-0c7b3f0e1a11",
			username: "runner42",
			email:    "runner42@example.com",
		},
		{
			name:     "username with dots",
			userID:   "0d4f7c1a-2b3c-4d5e-8f90-112233445566",
			username: "anna.k",
			email:    "anna.k@example.org",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, expiresAt, err := maker.GenerateToken(tt.userID, tt.username, tt.email)
			require.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.WithinDuration(t, time.Now().Add(tokenTTL), expiresAt, time.Second)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, tt.userID, claims.UserID)
			assert.Equal(t, tt.username, claims.Username)
			assert.Equal(t, tt.email, claims.Email)
			assert.Equal(t, tt.userID, claims.Subject)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second)
		})
	}
}

func TestJWTMaker_ParseToken_InvalidTokens(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	maker := NewJWTMaker(secretKey, 15*time.Minute)

	validToken, _, err := maker.GenerateToken("uid-1", "testuser", "test@example.com")
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{
			name:    "empty token",
			token:   "",
			wantErr: ErrInvalid,
		},
		{
			name:    "malformed token",
			token:   "invalid.token.here",
			wantErr: ErrInvalid,
		},
		{
			name:    "expired token",
			token:   createExpiredToken(t, secretKey),
			wantErr: ErrExpired,
		},
		{
			name:    "wrong secret key",
			token:   createTokenWithWrongSecret(t),
			wantErr: ErrInvalid,
		},
		{
			name:    "tampered token",
			token:   validToken + "tampered",
			wantErr: ErrInvalid,
		},
		{
			name:    "token without expiry",
			token:   createTokenWithoutExpiry(t, secretKey),
			wantErr: ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTMaker_ExpiredIsNotInvalid(t *testing.T) {
	maker := NewJWTMaker("secret", 15*time.Minute)
	_, err := maker.ParseToken(createExpiredToken(t, "secret"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExpired)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestJWTMaker_DifferentSecretKeys(t *testing.T) {
	maker1 := NewJWTMaker("first_secret_key", 15*time.Minute)
	maker2 := NewJWTMaker("different_secret_key", 15*time.Minute)

	token, _, err := maker1.GenerateToken("uid-1", "testuser", "test@example.com")
	require.NoError(t, err)

	claims, err := maker2.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Nil(t, claims)

	claims, err = maker1.ParseToken(token)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
}

func TestJWTMaker_TokenExpiration(t *testing.T) {
	maker := NewJWTMaker("test_secret_key", time.Hour)
	now := time.Now()
	maker.now = func() time.Time { return now }

	token, _, err := maker.GenerateToken("uid-1", "testuser", "test@example.com")
	require.NoError(t, err)

	_, err = maker.ParseToken(token)
	require.NoError(t, err)

	maker.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, err = maker.ParseToken(token)
	assert.ErrorIs(t, err, ErrExpired)
}

func createExpiredToken(t *testing.T, secretKey string) string {
	maker := NewJWTMaker(secretKey, -time.Hour)
	token, _, err := maker.GenerateToken("uid-1", "testuser", "test@example.com")
	require.NoError(t, err)
	return token
}

func createTokenWithWrongSecret(t *testing.T) string {
	wrongMaker := NewJWTMaker("wrong_secret_key", 15*time.Minute)
	token, _, err := wrongMaker.GenerateToken("uid-1", "testuser", "test@example.com")
	require.NoError(t, err)
	return token
}

func createTokenWithoutExpiry(t *testing.T, secretKey string) string {
	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, CustomClaims{UserID: "uid-1"})
	signed, err := token.SignedString([]byte(secretKey))
	require.NoError(t, err)
	return signed
}
