//go:build integration

package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/fitness-tracker/internal/config"
	"github.com/magabrotheeeer/fitness-tracker/internal/migrations"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя с профилем и настройками
func (f *TestDataFactory) CreateUser(t *testing.T, username, email string) *models.User {
	u := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: "hashedpassword",
		Status:       models.UserStatusActive,
	}
	err := f.storage.CreateUser(context.Background(), u, models.DefaultProfile(u.ID), models.DefaultPreferences(u.ID))
	require.NoError(t, err)
	return u
}

// FoodID возвращает id продукта общего каталога по названию
func (f *TestDataFactory) FoodID(t *testing.T, name string) int64 {
	var id int64
	err := f.storage.DB.QueryRow(`SELECT id FROM foods WHERE name = $1 AND created_by IS NULL`, name).Scan(&id)
	require.NoError(t, err)
	return id
}

// ExerciseID возвращает id упражнения каталога по названию
func (f *TestDataFactory) ExerciseID(t *testing.T, name string) int64 {
	var id int64
	err := f.storage.DB.QueryRow(`SELECT id FROM exercises WHERE name = $1`, name).Scan(&id)
	require.NoError(t, err)
	return id
}

func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	storage, err := New(ctx, config.Storage{
		ConnectionString: dsn,
		MaxOpenConns:     5,
		MaxIdleConns:     2,
		ConnMaxLifetime:  time.Minute,
	})
	require.NoError(t, err, "failed to create storage")

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	_, err = migrations.Run(storage.DB, migrationsPath)
	require.NoError(t, err, "failed to apply migrations")

	cleanup := func() {
		storage.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
	return storage, cleanup
}
