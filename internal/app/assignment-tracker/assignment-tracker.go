package assignmenttracker

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/homeworkhub/assignment-tracker/internal/cache"
	"github.com/homeworkhub/assignment-tracker/internal/config"
	libjwt "github.com/homeworkhub/assignment-tracker/internal/lib/jwt"
	"github.com/homeworkhub/assignment-tracker/internal/migrations"
	assignmentservice "github.com/homeworkhub/assignment-tracker/internal/services/assignment"
	authservice "github.com/homeworkhub/assignment-tracker/internal/services/auth"
	"github.com/homeworkhub/assignment-tracker/internal/storage"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := libjwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.NewAuthService(db, jwtMaker)
	assignmentService := assignmentservice.NewAssignmentService(db, cacheRedis, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, authService, assignmentService, db)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
