package order

import (
	"go.uber.org/zap"

	"lessonstore/internal/infrastructure/store"
	"lessonstore/internal/order/controller"
	orderrepo "lessonstore/internal/order/repository"
	"lessonstore/internal/order/usecase"
)

func NewModule(s *store.Store, logger *zap.Logger) *controller.CreateOrderController {
	uc := usecase.NewCreateOrderUseCase(NewRepository(s), logger)
	return controller.NewCreateOrderController(uc, logger)
}

func NewRepository(s *store.Store) usecase.OrderRepository {
	if s.SQL != nil {
		return orderrepo.NewMySQLOrderRepository(s.SQL)
	}
	return orderrepo.NewMongoOrderRepository(s.Mongo)
}
