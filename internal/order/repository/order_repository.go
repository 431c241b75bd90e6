package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"lessonstore/internal/domain"
)

type MySQLOrderRepository struct {
	db    *sql.DB
	items *MySQLOrderItemRepository
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db, items: NewMySQLOrderItemRepository()}
}

// Insert writes the order row and its items in one transaction and returns
// the new order id as a decimal string.
func (r *MySQLOrderRepository) Insert(ctx context.Context, order domain.Order) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning order transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO Orders (name, phone, email, address, createdAt) VALUES (?, ?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query, order.Name, order.Phone, order.Email, order.Address, order.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("inserting order: %w", err)
	}

	orderID, err := result.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("getting last insert id: %w", err)
	}

	for position, item := range order.Items {
		if _, err := r.items.Insert(ctx, tx, uint(orderID), position, item); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing order transaction: %w", err)
	}

	return strconv.FormatInt(orderID, 10), nil
}
