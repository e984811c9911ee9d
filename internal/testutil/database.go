package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"

	"bakerydash/internal/infrastructure/mysql"
)

// SetupTestDB opens the MySQL test database. The DSN defaults to a local
// bakerydash_test schema and can be overridden with TEST_MYSQL_DSN. Tests are
// skipped when the database is not reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		dsn = "root:@tcp(localhost:3306)/bakerydash_test?parseTime=true&clientFoundRows=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties every table and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"AnnouncementComments", "Announcements", "OrderItems", "Orders", "Product"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the tables of the initial migration.
func SetupTestTables(t *testing.T, db *sql.DB) {
	t.Helper()

	statements, err := mysql.Schema()
	if err != nil {
		t.Fatalf("failed to read schema: %v", err)
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			t.Logf("failed to create table: %v", err)
		}
	}
}
