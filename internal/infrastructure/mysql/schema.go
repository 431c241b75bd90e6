package mysql

import (
	"context"
	"database/sql"
	"fmt"
)

const (
	LessonsTable    = "Lessons"
	OrdersTable     = "Orders"
	OrderItemsTable = "OrderItems"
)

var schema = []struct {
	table string
	ddl   string
}{
	{LessonsTable, `
	CREATE TABLE IF NOT EXISTS Lessons (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		subject VARCHAR(255) NOT NULL DEFAULT '',
		location VARCHAR(255) NOT NULL DEFAULT '',
		price DOUBLE NOT NULL DEFAULT 0,
		availableInventory INT UNSIGNED NOT NULL DEFAULT 0,
		description TEXT,
		image VARCHAR(255) NOT NULL DEFAULT '',
		INDEX idx_subject (subject),
		INDEX idx_location (location)
	)`},
	{OrdersTable, `
	CREATE TABLE IF NOT EXISTS Orders (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		phone VARCHAR(50) NOT NULL,
		email VARCHAR(255) NOT NULL,
		address VARCHAR(500) NOT NULL,
		createdAt DATETIME(3) NOT NULL,
		INDEX idx_created (createdAt)
	)`},
	{OrderItemsTable, `
	CREATE TABLE IF NOT EXISTS OrderItems (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		orderId INT UNSIGNED NOT NULL,
		position INT NOT NULL,
		lessonId JSON NOT NULL,
		quantity JSON NOT NULL,
		FOREIGN KEY (orderId) REFERENCES Orders(id) ON DELETE CASCADE,
		INDEX idx_order (orderId)
	)`},
}

// EnsureSchema creates the lesson and order tables when they do not exist.
// It never alters an existing table.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, tbl := range schema {
		if _, err := db.ExecContext(ctx, tbl.ddl); err != nil {
			return fmt.Errorf("creating table %s: %w", tbl.table, err)
		}
	}
	return nil
}
