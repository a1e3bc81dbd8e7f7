// Package app assembles the catalog API from configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	mongodrv "go.mongodb.org/mongo-driver/mongo"

	"github.com/weekly-exercises/catalog-api/internal/api"
	"github.com/weekly-exercises/catalog-api/internal/api/handler"
	"github.com/weekly-exercises/catalog-api/internal/core/ports"
	"github.com/weekly-exercises/catalog-api/internal/core/service"
	"github.com/weekly-exercises/catalog-api/internal/infrastructure/db/memory"
	"github.com/weekly-exercises/catalog-api/internal/infrastructure/db/mongo"
	"github.com/weekly-exercises/catalog-api/internal/infrastructure/db/redis"
	"github.com/weekly-exercises/catalog-api/internal/infrastructure/security"
	"github.com/weekly-exercises/catalog-api/internal/pkg/config"
)

const shutdownTimeout = 10 * time.Second

// stores groups the repositories of one backend.
type stores struct {
	users  ports.UserRepository
	movies ports.MovieRepository
	events ports.EventRepository
}

type App struct {
	cfg    *config.Config
	log    zerolog.Logger
	echo   *echo.Echo
	stores stores
	auth   ports.AuthService

	mongoDB *mongodrv.Database
	closers []func(context.Context) error
}

// Options tweak New for tests.
type Options struct {
	// Registry receives HTTP metrics instead of the default Prometheus registry.
	Registry *prometheus.Registry
}

// New connects the configured backends and builds the router. Callers must
// Close the App.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger, opts Options) (*App, error) {
	a := &App{cfg: cfg, log: log}

	var pingers []handler.Pinger
	switch cfg.Storage {
	case config.StorageMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Disconnect)
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			_ = a.Close(ctx)
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		a.mongoDB = db
		a.stores = stores{
			users:  mongo.NewUserRepository(db),
			movies: mongo.NewMovieRepository(db),
			events: mongo.NewEventRepository(db),
		}
		pingers = append(pingers, mongo.NewPinger(client))
		log.Info().Str("db", cfg.Mongo.Database).Msg("using mongo storage")
	default:
		a.stores = stores{
			users:  memory.NewUserRepository(),
			movies: memory.NewMovieRepository(),
			events: memory.NewEventRepository(),
		}
		log.Info().Msg("using in-memory storage")
	}

	var idem ports.IdempotencyStore
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			_ = a.Close(ctx)
			return nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return rdb.Close() })
		idem = redis.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)
		pingers = append(pingers, redis.NewPinger(rdb))
	}

	hasher, err := security.NewPasswordHasher(cfg.Auth.PasswordHasher, cfg.Auth.BcryptCost)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}
	tokens, err := security.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiresIn)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	a.auth = service.NewAuthService(a.stores.users, hasher, tokens, log)
	a.echo = api.NewRouter(api.Deps{
		Logger:   log,
		Tokens:   tokens,
		Auth:     a.auth,
		Movies:   service.NewMovieService(a.stores.movies, idem, log),
		Events:   service.NewEventService(a.stores.events, idem, log),
		Pingers:  pingers,
		Registry: opts.Registry,
	})

	return a, nil
}

// Handler exposes the router, mainly for httptest.
func (a *App) Handler() http.Handler { return a.echo }

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              net.JoinHostPort("", a.cfg.Port),
		Handler:           a.echo,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	a.log.Info().Str("addr", server.Addr).Str("storage", a.cfg.Storage).Msg("server listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// Close releases backend connections in reverse order of acquisition.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
