package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vietanh2810/eloquence-api/internal/api"
	"github.com/vietanh2810/eloquence-api/internal/config"
	"github.com/vietanh2810/eloquence-api/internal/db"
	"github.com/vietanh2810/eloquence-api/internal/logger"
	"github.com/vietanh2810/eloquence-api/internal/notify"
	"github.com/vietanh2810/eloquence-api/internal/service"
	"github.com/vietanh2810/eloquence-api/internal/storage"
	"github.com/vietanh2810/eloquence-api/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment, conf.API.LogLevel); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	defer func() { _ = zap.L().Sync() }()

	conf.OnChange(func(reloaded *config.AppConfig) {
		if err := logger.SetLevel(reloaded.API.LogLevel); err != nil {
			zap.L().Warn("ignoring log level", zap.Error(err))
			return
		}
		zap.L().Info("config reloaded", zap.String("log_level", logger.Level().String()))
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, conf.Telemetry.OTLPEndpoint, conf.Telemetry.ServiceName)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry -> %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			zap.L().Warn("failed to flush traces", zap.Error(err))
		}
	}()

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	documents, err := storage.NewDiskDocumentStore(conf.Storage.Root)
	if err != nil {
		return fmt.Errorf("failed to initialize document storage -> %w", err)
	}

	var publishers []service.EventPublisher
	if conf.AMQP.URL != "" {
		amqpPublisher, err := notify.NewAMQPPublisher(conf.AMQP.URL, conf.AMQP.Exchange, conf.AMQP.RoutingKey)
		if err != nil {
			return fmt.Errorf("failed to initialize amqp publisher -> %w", err)
		}
		defer amqpPublisher.Close()
		publishers = append(publishers, amqpPublisher)
	}

	s := api.NewServer(conf, postgresDB, documents, publishers...)

	if _, err = s.Settings.Bootstrap(ctx); err != nil {
		return fmt.Errorf("failed to bootstrap event settings -> %w", err)
	}

	go s.Hub.Run(ctx)

	addr := ":" + s.Config.API.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info(fmt.Sprintf("starting server at %v", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err = <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start the server -> %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down the server -> %w", err)
	}

	return nil
}
