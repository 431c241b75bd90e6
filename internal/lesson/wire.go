package lesson

import (
	"go.uber.org/zap"

	"lessonstore/internal/infrastructure/store"
	"lessonstore/internal/lesson/controller"
	"lessonstore/internal/lesson/repository"
	"lessonstore/internal/lesson/service"
)

func NewModule(s *store.Store, logger *zap.Logger) *controller.LessonController {
	svc := service.NewLessonService(NewRepository(s))
	return controller.NewLessonController(svc, logger)
}

// Repository is everything the lesson feature and the seeder need from storage.
type Repository interface {
	service.Repository
	repository.Seeder
}

// NewRepository picks the implementation matching the open backend.
func NewRepository(s *store.Store) Repository {
	if s.SQL != nil {
		return repository.NewMySQLRepository(s.SQL)
	}
	return repository.NewMongoRepository(s.Mongo)
}
