package category

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	database "github.com/sebuszqo/firetrack/internal/db"
	"github.com/sebuszqo/firetrack/internal/user"
)

var (
	testDB    *sql.DB
	testDBErr error
)

func TestMain(m *testing.M) {
	ctx := context.Background()
	cleanup := setupTestDatabase(ctx)
	code := m.Run()
	cleanup()
	os.Exit(code)
}

// setupTestDatabase connects to TEST_DATABASE_URL, or starts a PostgreSQL container when it is
// not set. Failures are kept in testDBErr so tests needing the database can skip.
func setupTestDatabase(ctx context.Context) (cleanup func()) {
	cleanup = func() {}

	connStr := os.Getenv("TEST_DATABASE_URL")
	if connStr == "" {
		container, err := startPostgres(ctx)
		if err != nil {
			testDBErr = err
			return cleanup
		}
		cleanup = func() { _ = container.Terminate(ctx) }

		connStr, err = container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			testDBErr = err
			return cleanup
		}
	}

	service, err := database.NewDBService(ctx, connStr)
	if err != nil {
		testDBErr = err
		return cleanup
	}
	if err := service.Migrate(ctx); err != nil {
		testDBErr = err
		service.Close()
		return cleanup
	}

	testDB = service.DB
	containerCleanup := cleanup
	return func() {
		service.Close()
		containerCleanup()
	}
}

func startPostgres(ctx context.Context) (container *postgres.PostgresContainer, err error) {
	// testcontainers panics when no Docker host can be found
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("start postgres container: %v", p)
		}
	}()

	return postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("firetrack"),
		postgres.WithUsername("firetrack"),
		postgres.WithPassword("firetrack"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
}

// openTestDB returns an empty database for the test and empties it again when the test ends.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	if testDB == nil {
		t.Skipf("postgres is not available: %v", testDBErr)
	}

	truncate := func() {
		_, err := testDB.Exec(`TRUNCATE categories, users RESTART IDENTITY CASCADE`)
		require.NoError(t, err)
	}
	truncate()
	t.Cleanup(truncate)

	return testDB
}

func createTestUser(t *testing.T, db database.DBTX) *user.User {
	t.Helper()

	u := &user.User{
		Email:        fmt.Sprintf("%s@example.com", uuid.NewString()),
		PasswordHash: "not-a-real-hash",
	}
	err := db.QueryRowContext(context.Background(),
		`INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id, created_at, updated_at`,
		u.Email, u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	require.NoError(t, err)

	return u
}
