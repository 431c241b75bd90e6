package repository

import (
	"context"

	"lessonstore/internal/domain"
)

// Seeder loads lessons out-of-band; the HTTP API never creates lessons.
type Seeder interface {
	InsertMany(ctx context.Context, lessons []domain.Lesson) ([]string, error)
	Count(ctx context.Context) (int64, error)
}
