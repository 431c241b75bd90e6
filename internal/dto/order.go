package dto

type CreateOrderRequest struct {
	Name    string             `json:"name"`
	Phone   string             `json:"phone"`
	Email   string             `json:"email"`
	Address string             `json:"address"`
	Items   []OrderItemRequest `json:"items"`
}

// OrderItemRequest keeps item values as the client sent them; items are not
// validated field by field.
type OrderItemRequest struct {
	LessonID interface{} `json:"lessonId"`
	Quantity interface{} `json:"quantity"`
}

type CreateOrderResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
}
