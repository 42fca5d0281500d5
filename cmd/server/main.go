package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"applytrack/api/config"
	"applytrack/api/internal/cleanup"
	"applytrack/api/internal/email"
	"applytrack/api/internal/health"
	"applytrack/api/internal/infrastructure/postgres"
	ctxlog "applytrack/api/internal/log"
	"applytrack/api/internal/metrics"
	"applytrack/api/internal/security"
	"applytrack/api/internal/storage"
	"applytrack/api/internal/token"
	httptransport "applytrack/api/internal/transport/http"
	"applytrack/api/internal/transport/http/handler"
	"applytrack/api/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, cfg.DatabaseURL); err != nil {
		stop()
		log.Fatalf("migrate: %v", err)
	}

	userRepo := postgres.NewUserRepository(pool)
	jobRepo := postgres.NewJobRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)

	store, err := newStore(ctx, cfg)
	if err != nil {
		stop()
		log.Fatalf("storage: %v", err)
	}

	hasher := security.NewBcryptHasher()
	codec := token.NewCodec([]byte(cfg.JWTSecret), time.Duration(cfg.JWTTTLHours)*time.Hour)
	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	authUsecase := usecase.NewAuthUsecase(userRepo, profileRepo, hasher, codec, sender, logger, cfg.BackendURL)
	jobUsecase := usecase.NewJobUsecase(jobRepo)
	profileUsecase := usecase.NewProfileUsecase(profileRepo, userRepo, store, logger)

	authHandler := handler.NewAuthHandler(authUsecase, logger, cfg.FrontendURL)
	jobHandler := handler.NewJobHandler(jobUsecase, logger)
	profileHandler := handler.NewProfileHandler(profileUsecase, logger, cfg.MaxUploadBytes())

	janitor := cleanup.NewJanitor(userRepo, logger)
	if err := janitor.Start(ctx); err != nil {
		stop()
		log.Fatalf("janitor: %v", err)
	}

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, codec, authHandler, jobHandler, profileHandler),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	if cfg.StorageBackend == "s3" {
		return storage.NewS3Store(ctx, storage.S3Config{
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
	}
	return storage.NewDiskStore(cfg.UploadDir)
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
