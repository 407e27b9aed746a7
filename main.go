package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ideahub/ideahub-backend/infra"
	"github.com/ideahub/ideahub-backend/models"
	"github.com/ideahub/ideahub-backend/repositories"
	"github.com/ideahub/ideahub-backend/usecases"
	"github.com/ideahub/ideahub-backend/utils"
)

func main() {
	conf := loadConfiguration()

	logger := utils.NewLogger(conf.env)
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	registry := models.NewIdeaHubRegistry()
	if err := registry.Validate(); err != nil {
		logger.ErrorContext(ctx, "invalid entity registry", "error", err.Error())
		return
	}

	pool, err := infra.NewPostgresConnectionPool(ctx, conf.pgConfig.GetConnectionString(),
		conf.pgConfig.MaxPoolSize)
	if err != nil {
		logger.ErrorContext(ctx, "failed to create connection pool", "error", err.Error())
		return
	}
	defer pool.Close()

	executorGetter := repositories.NewExecutorGetter(pool)
	u := usecases.NewUsecases(
		executorGetter,
		registry,
		repositories.NewBlobRepository(),
		conf.attachmentsBucketUrl,
	)

	router := initRouter(ctx, conf, u)
	server := &http.Server{
		Addr:    ":" + conf.port,
		Handler: router,
	}

	notify, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.InfoContext(ctx, "starting server", "port", conf.port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "error serving the app", "error", err.Error())
		}
		logger.InfoContext(ctx, "server returned")
	}()

	<-notify.Done()
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(ctx, "server shutdown error", "error", err.Error())
	}
}
