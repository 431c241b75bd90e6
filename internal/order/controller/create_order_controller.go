package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lessonstore/internal/commons"
	"lessonstore/internal/dto"
)

type CreateOrderUseCase interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (string, error)
}

type CreateOrderController struct {
	useCase CreateOrderUseCase
	logger  *zap.Logger
}

func NewCreateOrderController(useCase CreateOrderUseCase, logger *zap.Logger) *CreateOrderController {
	return &CreateOrderController{
		useCase: useCase,
		logger:  logger,
	}
}

// CreateOrder handles POST /orders
func (c *CreateOrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.CreateOrderRequest
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		commons.WriteInvalidBody(w, traceID, err, logger)
		return
	}

	orderID, err := c.useCase.CreateOrder(r.Context(), req)
	if err != nil {
		commons.WriteError(w, traceID, err, "Failed to create order", logger)
		return
	}

	commons.WriteJSON(w, http.StatusCreated, dto.CreateOrderResponse{
		Success: true,
		OrderID: orderID,
	}, logger)
}
