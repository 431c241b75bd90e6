package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"lessonstore/internal/domain"
)

// MySQLOrderItemRepository writes order lines inside the caller's transaction.
// lessonId and quantity are JSON columns holding the submitted values.
type MySQLOrderItemRepository struct{}

func NewMySQLOrderItemRepository() *MySQLOrderItemRepository {
	return &MySQLOrderItemRepository{}
}

func (r *MySQLOrderItemRepository) Insert(ctx context.Context, tx *sql.Tx, orderID uint, position int, item domain.OrderItem) (uint, error) {
	lessonID, err := json.Marshal(item.LessonID)
	if err != nil {
		return 0, fmt.Errorf("encoding lessonId of item %d: %w", position, err)
	}
	quantity, err := json.Marshal(item.Quantity)
	if err != nil {
		return 0, fmt.Errorf("encoding quantity of item %d: %w", position, err)
	}

	query := `INSERT INTO OrderItems (orderId, position, lessonId, quantity) VALUES (?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query, orderID, position, string(lessonID), string(quantity))
	if err != nil {
		return 0, fmt.Errorf("inserting order item %d: %w", position, err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}
