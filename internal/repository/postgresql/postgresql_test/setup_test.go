package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/staffdeck/staffdeck-backend-go/internal/pkg/database"
)

// testDatabase connects to the database named by TEST_DATABASE_URL. Tests in
// this package are integration tests and skip when no test database is
// configured.
func testDatabase(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database tests")
	}

	db, err := database.NewPostgreSQLDB(dsn, 4, 1)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	t.Cleanup(db.Close)

	return db
}

// truncateTables resets the given tables between tests.
func truncateTables(t *testing.T, db *database.DB, tables ...string) {
	t.Helper()

	ctx := context.Background()
	for _, table := range tables {
		if _, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			t.Fatalf("failed to truncate table %s: %v", table, err)
		}
	}
}
