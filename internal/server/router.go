package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"lessonstore/internal/commons"
	"lessonstore/internal/config"
	"lessonstore/internal/dto"
	lessoncontroller "lessonstore/internal/lesson/controller"
	ordercontroller "lessonstore/internal/order/controller"
)

// Version is reported by /health.
const Version = "1.0.0"

const requestTimeout = 30 * time.Second

func NewRouter(
	cfg config.ServerConfig,
	lessonCtrl *lessoncontroller.LessonController,
	orderCtrl *ordercontroller.CreateOrderController,
	pinger Pinger,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(requestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		commons.WriteJSON(w, http.StatusNotFound, dto.ErrorResponse{
			Success: false,
			Code:    dto.CodeNotFound,
			Message: "route not found",
		}, logger)
	})

	r.Method(http.MethodGet, "/health", NewHealthHandler(pinger, Version, logger))
	r.Method(http.MethodGet, "/images/*", NewImageHandler(cfg.ImagesDir, logger))

	r.Route("/lessons", func(r chi.Router) {
		r.Get("/", lessonCtrl.ListLessons)
		r.Get("/search", lessonCtrl.SearchLessons)
		r.Put("/{id}", lessonCtrl.UpdateLesson)
	})

	r.Post("/orders", orderCtrl.CreateOrder)

	return r
}
