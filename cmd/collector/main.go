package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/linkedin-collector/internal/config"
	"github.com/mmeshcher/linkedin-collector/internal/handler"
	"github.com/mmeshcher/linkedin-collector/internal/mailer"
	"github.com/mmeshcher/linkedin-collector/internal/middleware"
	"github.com/mmeshcher/linkedin-collector/internal/repository"
	"github.com/mmeshcher/linkedin-collector/internal/service"
	"github.com/mmeshcher/linkedin-collector/internal/session"
)

type submissionRepository interface {
	service.SubmissionStore
	Close() error
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	sugar := logger.Sugar()

	sugar.Infow("Starting LinkedIn collector")

	cfg, err := config.ParseFlags()
	if err != nil {
		sugar.Fatalw("Configuration error", "error", err.Error())
	}

	sugar.Infow(
		"Configuration loaded",
		"server_address", cfg.ServerAddress,
		"database", cfg.DatabaseDSN != "",
		"file_storage_path", cfg.FileStoragePath,
		"redis_addr", cfg.RedisAddr,
		"mail_enabled", cfg.Mail.Enabled(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := newRepository(ctx, cfg, logger)
	if err != nil {
		sugar.Fatalw("Storage initialization failed", "error", err.Error())
	}
	defer repo.Close()

	store, closeStore, err := newSessionStore(ctx, cfg, logger)
	if err != nil {
		sugar.Fatalw("Session store initialization failed", "error", err.Error())
	}
	defer closeStore()

	collector := service.NewCollectorService(mailer.New(cfg.Mail, logger), repo, cfg.CodeTTL, logger)
	sessions := session.NewManager(store, cfg.SecretKey, session.DefaultTTL, logger)
	limiter := middleware.NewRateLimiter(cfg.SendCodeRPS, cfg.SendCodeBurst, logger)

	h := handler.NewHandler(collector, sessions, limiter, logger)

	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           h.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	sugar.Infow("Server starting", "address", cfg.ServerAddress)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugar.Fatalw(err.Error(), "event", "start server")
	}

	sugar.Infow("Server stopped")
}

func newRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (submissionRepository, error) {
	if cfg.DatabaseDSN != "" {
		pgRepo, err := repository.NewPostgresRepository(ctx, cfg.DatabaseDSN, logger)
		if err == nil {
			logger.Info("Using PostgreSQL repository")
			return pgRepo, nil
		}
		logger.Error("Failed to connect to PostgreSQL, falling back", zap.Error(err))
	}

	if cfg.FileStoragePath != "" {
		fileRepo, err := repository.NewFileRepository(cfg.FileStoragePath)
		if err != nil {
			return nil, err
		}
		logger.Info("Using file repository", zap.String("path", cfg.FileStoragePath))
		return fileRepo, nil
	}

	logger.Warn("Using in-memory repository, submissions are lost on restart")
	return repository.NewMemoryRepository(), nil
}

func newSessionStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (session.Store, func(), error) {
	if cfg.RedisAddr == "" {
		logger.Info("Using in-memory session store")
		store := session.NewMemoryStore()
		go store.Run(ctx, time.Minute)
		return store, func() {}, nil
	}

	rdb, err := session.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Using Redis session store", zap.String("addr", cfg.RedisAddr))
	return session.NewRedisStore(rdb), func() { rdb.Close() }, nil
}
