package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"lessonstore/internal/domain"
	apperrors "lessonstore/internal/errors"
)

type Repository interface {
	FindAll(ctx context.Context, sort domain.LessonSort) ([]domain.Lesson, error)
	Search(ctx context.Context, term string) ([]domain.Lesson, error)
	Update(ctx context.Context, id string, patch domain.LessonPatch) (modified int64, err error)
}

type LessonService struct {
	repo Repository
}

func NewLessonService(repo Repository) *LessonService {
	return &LessonService{repo: repo}
}

func (s *LessonService) ListLessons(ctx context.Context, sortBy, order string) ([]domain.Lesson, error) {
	return s.repo.FindAll(ctx, domain.ParseLessonSort(sortBy, order))
}

// SearchLessons returns a NotFoundError when nothing matches.
func (s *LessonService) SearchLessons(ctx context.Context, query string) ([]domain.Lesson, error) {
	term := strings.TrimSpace(query)
	if term == "" {
		return nil, apperrors.NewValidationError("search query is required", apperrors.ValidationDetail{
			Field:   "query",
			Message: "query must not be empty",
		})
	}

	lessons, err := s.repo.Search(ctx, term)
	if err != nil {
		return nil, err
	}

	if len(lessons) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no lessons found matching %q", term))
	}

	return lessons, nil
}

func (s *LessonService) UpdateLesson(ctx context.Context, id string, fields map[string]interface{}) (int64, error) {
	patch, err := BuildLessonPatch(fields)
	if err != nil {
		return 0, err
	}

	return s.repo.Update(ctx, id, patch)
}

// BuildLessonPatch checks every submitted field against the updatable lesson
// fields and their types. Numbers may arrive as json.Number, float64 or int.
func BuildLessonPatch(fields map[string]interface{}) (domain.LessonPatch, error) {
	if len(fields) == 0 {
		return nil, apperrors.NewValidationError("no fields to update", apperrors.ValidationDetail{
			Field:   "body",
			Message: "body must contain at least one lesson field",
		})
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	patch := domain.LessonPatch{}
	var details []apperrors.ValidationDetail

	for _, name := range names {
		value := fields[name]
		switch name {
		case domain.LessonFieldSubject, domain.LessonFieldLocation, domain.LessonFieldDescription, domain.LessonFieldImage:
			str, ok := value.(string)
			if !ok {
				details = append(details, apperrors.ValidationDetail{Field: name, Message: name + " must be a string"})
				continue
			}
			patch[name] = str

		case domain.LessonFieldPrice:
			price, ok := toFloat(value)
			if !ok {
				details = append(details, apperrors.ValidationDetail{Field: name, Message: "price must be a number"})
				continue
			}
			patch[name] = price

		case domain.LessonFieldAvailableInventory:
			inventory, ok := toInt(value)
			if !ok || inventory < 0 {
				details = append(details, apperrors.ValidationDetail{Field: name, Message: "availableInventory must be a non-negative integer"})
				continue
			}
			patch[name] = inventory

		case domain.LessonFieldID:
			details = append(details, apperrors.ValidationDetail{Field: name, Message: "_id cannot be updated"})

		default:
			details = append(details, apperrors.ValidationDetail{Field: name, Message: "unknown lesson field"})
		}
	}

	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid lesson fields", details...)
	}

	return patch, nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	}
	return 0, false
}
