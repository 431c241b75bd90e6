package domain

import "time"

type Order struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Address   string
	Items     []OrderItem
	CreatedAt time.Time
}

// OrderItem values are stored exactly as submitted.
type OrderItem struct {
	LessonID interface{}
	Quantity interface{}
}
