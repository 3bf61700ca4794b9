//go:build integration

package migrations

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func getTestDB(t *testing.T) (*sql.DB, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return db, cleanup
}

func getMigrationsPath(t *testing.T) string {
	projectRoot, err := filepath.Abs("../..")
	require.NoError(t, err)

	migrationsPath := filepath.Join(projectRoot, "migrations")
	t.Logf("Migrations path: %s", migrationsPath)
	return migrationsPath
}

func TestRunMigrations(t *testing.T) {
	db, cleanup := getTestDB(t)
	defer cleanup()

	version, err := Run(db, getMigrationsPath(t))
	require.NoError(t, err)
	require.EqualValues(t, 4, version)

	for _, table := range []string{
		"users", "user_profiles", "user_preferences", "foods", "exercises",
		"meals", "meal_items", "workouts", "workout_exercises", "goals",
		"progress_tracking", "audit_logs",
	} {
		var exists bool
		err = db.QueryRow(`
			SELECT EXISTS (
				SELECT 1 FROM information_schema.tables
				WHERE table_schema = 'public' AND table_name = $1
			)`, table).Scan(&exists)
		require.NoError(t, err)
		require.True(t, exists, "table %s should exist", table)
	}

	for _, routine := range []string{"recalculate_meal_totals", "recalculate_workout_totals"} {
		var exists bool
		err = db.QueryRow(`SELECT EXISTS (SELECT 1 FROM pg_proc WHERE proname = $1)`, routine).Scan(&exists)
		require.NoError(t, err)
		require.True(t, exists, "routine %s should exist", routine)
	}

	var emailIndex bool
	err = db.QueryRow(`SELECT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'users_email_lower_key')`).Scan(&emailIndex)
	require.NoError(t, err)
	require.True(t, emailIndex, "email uniqueness should ignore case")

	var foods int
	err = db.QueryRow("SELECT COUNT(*) FROM foods WHERE created_by IS NULL").Scan(&foods)
	require.NoError(t, err)
	require.Greater(t, foods, 0, "catalog should be seeded")
}

func TestMigrationIdempotency(t *testing.T) {
	db, cleanup := getTestDB(t)
	defer cleanup()

	migrationsPath := getMigrationsPath(t)

	_, err := Run(db, migrationsPath)
	require.NoError(t, err)

	version, err := Run(db, migrationsPath)
	require.NoError(t, err, "running migrations twice should not fail")
	require.EqualValues(t, 4, version)

	var exercises int
	err = db.QueryRow("SELECT COUNT(*) FROM exercises").Scan(&exercises)
	require.NoError(t, err)
	require.Equal(t, 10, exercises, "catalog should not be duplicated")
}
