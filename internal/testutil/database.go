package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"

	"lessonstore/internal/infrastructure/mysql"
)

// SetupTestDB opens the MySQL test database. It expects a database called
// 'lessonstore_test' on localhost:3306 and skips the test when none is reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := "root:@tcp(localhost:3306)/lessonstore_test?parseTime=true"
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

// SetupTestTables creates the lesson and order tables.
func SetupTestTables(t *testing.T, db *sql.DB) {
	t.Helper()

	if err := mysql.EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("failed to create test tables: %v", err)
	}
}

// CleanupTestDB empties every table and closes the pool.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{mysql.OrderItemsTable, mysql.OrdersTable, mysql.LessonsTable}
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}
