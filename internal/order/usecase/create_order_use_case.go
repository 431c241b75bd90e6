package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"lessonstore/internal/domain"
	"lessonstore/internal/dto"
	apperrors "lessonstore/internal/errors"
)

type OrderRepository interface {
	Insert(ctx context.Context, order domain.Order) (string, error)
}

type CreateOrderUseCase struct {
	orderRepo OrderRepository
	logger    *zap.Logger
	now       func() time.Time
}

func NewCreateOrderUseCase(orderRepo OrderRepository, logger *zap.Logger) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		orderRepo: orderRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateOrder validates the request, stamps createdAt and stores the order.
// Items are stored as given: lesson ids and quantities are not checked.
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (string, error) {
	if err := validateCreateOrderRequest(req); err != nil {
		return "", err
	}

	items := make([]domain.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.OrderItem{LessonID: item.LessonID, Quantity: item.Quantity}
	}

	order := domain.Order{
		Name:      strings.TrimSpace(req.Name),
		Phone:     strings.TrimSpace(req.Phone),
		Email:     strings.TrimSpace(req.Email),
		Address:   strings.TrimSpace(req.Address),
		Items:     items,
		CreatedAt: uc.now().UTC(),
	}

	id, err := uc.orderRepo.Insert(ctx, order)
	if err != nil {
		return "", err
	}

	uc.logger.Info("order created", zap.String("orderId", id), zap.Int("itemCount", len(items)))
	return id, nil
}

func validateCreateOrderRequest(req dto.CreateOrderRequest) error {
	var details []apperrors.ValidationDetail

	required := []struct {
		field string
		value string
	}{
		{"name", req.Name},
		{"phone", req.Phone},
		{"email", req.Email},
		{"address", req.Address},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			details = append(details, apperrors.ValidationDetail{
				Field:   r.field,
				Message: r.field + " is required",
			})
		}
	}

	if len(req.Items) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("Missing required order fields", details...)
	}

	return nil
}
