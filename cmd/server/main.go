package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"lessonstore/internal/commons"
	"lessonstore/internal/config"
	"lessonstore/internal/infrastructure/logger"
	"lessonstore/internal/infrastructure/store"
	"lessonstore/internal/lesson"
	"lessonstore/internal/order"
	"lessonstore/internal/server"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("opening store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			zapLogger.Error("closing store", zap.Error(err))
		}
	}()

	if n, err := lesson.NewRepository(st).Count(ctx); err != nil {
		zapLogger.Warn("counting lessons", zap.Error(err))
	} else {
		zapLogger.Info("lessons available", zap.Int64("count", n))
	}

	lessonCtrl := lesson.NewModule(st, zapLogger)
	orderCtrl := order.NewModule(st, zapLogger)

	router := server.NewRouter(cfg.Server, lessonCtrl, orderCtrl, st, zapLogger)
	srv := server.New(cfg.Server, router, zapLogger)

	if err := srv.Run(ctx); err != nil {
		zapLogger.Error("server stopped with error", zap.Error(err))
		return
	}

	zapLogger.Info("server stopped gracefully")
}

// loadConfig reads the YAML file named by CONFIG_FILE when set, otherwise
// the environment.
func loadConfig() (*config.Config, error) {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return commons.LoadConfig(path)
	}
	return config.Load()
}
