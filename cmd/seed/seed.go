package main

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"lessonstore/internal/domain"
	"lessonstore/internal/lesson/repository"
)

type seedLesson struct {
	Subject            string  `yaml:"subject"`
	Location           string  `yaml:"location"`
	Price              float64 `yaml:"price"`
	AvailableInventory int     `yaml:"availableInventory"`
	Description        string  `yaml:"description"`
	Image              string  `yaml:"image"`
}

type seedFileContents struct {
	Lessons []seedLesson `yaml:"lessons"`
}

// parseSeedFile decodes the lessons of a seed file and rejects entries the
// API could not serve sensibly.
func parseSeedFile(data []byte) ([]domain.Lesson, error) {
	var contents seedFileContents
	if err := yaml.Unmarshal(data, &contents); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	if len(contents.Lessons) == 0 {
		return nil, fmt.Errorf("seed file has no lessons")
	}

	lessons := make([]domain.Lesson, 0, len(contents.Lessons))
	for i, l := range contents.Lessons {
		if strings.TrimSpace(l.Subject) == "" {
			return nil, fmt.Errorf("lesson %d: subject is required", i)
		}
		if l.Price < 0 {
			return nil, fmt.Errorf("lesson %d: price must not be negative", i)
		}
		if l.AvailableInventory < 0 {
			return nil, fmt.Errorf("lesson %d: availableInventory must not be negative", i)
		}

		lessons = append(lessons, domain.Lesson{
			Subject:            l.Subject,
			Location:           l.Location,
			Price:              l.Price,
			AvailableInventory: l.AvailableInventory,
			Description:        l.Description,
			Image:              l.Image,
		})
	}

	return lessons, nil
}

func seedLessons(ctx context.Context, repo repository.Seeder, lessons []domain.Lesson, force bool, logger *zap.Logger) (int, error) {
	existing, err := repo.Count(ctx)
	if err != nil {
		return 0, err
	}

	if existing > 0 && !force {
		logger.Info("catalog already seeded, skipping", zap.Int64("existing", existing))
		return 0, nil
	}

	ids, err := repo.InsertMany(ctx, lessons)
	if err != nil {
		return 0, err
	}

	logger.Info("lessons seeded", zap.Int("inserted", len(ids)), zap.Int64("existing", existing))
	return len(ids), nil
}
