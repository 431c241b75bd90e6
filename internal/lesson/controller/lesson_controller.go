package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"lessonstore/internal/commons"
	"lessonstore/internal/domain"
	"lessonstore/internal/dto"
)

type LessonService interface {
	ListLessons(ctx context.Context, sortBy, order string) ([]domain.Lesson, error)
	SearchLessons(ctx context.Context, query string) ([]domain.Lesson, error)
	UpdateLesson(ctx context.Context, id string, fields map[string]interface{}) (int64, error)
}

type LessonController struct {
	service LessonService
	logger  *zap.Logger
}

func NewLessonController(service LessonService, logger *zap.Logger) *LessonController {
	return &LessonController{
		service: service,
		logger:  logger,
	}
}

// ListLessons handles GET /lessons?sortBy=&order=
func (c *LessonController) ListLessons(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	q := r.URL.Query()
	lessons, err := c.service.ListLessons(r.Context(), q.Get("sortBy"), q.Get("order"))
	if err != nil {
		commons.WriteError(w, traceID, err, "Failed to fetch lessons", logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewLessonDTOs(lessons), logger)
}

// SearchLessons handles GET /lessons/search?query=
func (c *LessonController) SearchLessons(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	lessons, err := c.service.SearchLessons(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		commons.WriteError(w, traceID, err, "Failed to search lessons", logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.NewLessonDTOs(lessons), logger)
}

// UpdateLesson handles PUT /lessons/{id}
func (c *LessonController) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	id := chi.URLParam(r, "id")
	logger := c.logger.With(zap.String("traceId", traceID), zap.String("lessonId", id))

	var fields map[string]interface{}
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		commons.WriteInvalidBody(w, traceID, err, logger)
		return
	}

	modified, err := c.service.UpdateLesson(r.Context(), id, fields)
	if err != nil {
		commons.WriteError(w, traceID, err, "Failed to update lesson", logger)
		return
	}

	logger.Info("lesson updated", zap.Int64("modifiedCount", modified))
	commons.WriteJSON(w, http.StatusOK, dto.UpdateLessonResponse{
		Success:       true,
		ModifiedCount: modified,
	}, logger)
}
