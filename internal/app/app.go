// Package app is the composition root: it turns a Config into storage
// clients, middleware and an Echo server, and runs that server until its
// context is cancelled.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/court-metrics/internal/config"
	"github.com/iliyamo/court-metrics/internal/database"
	"github.com/iliyamo/court-metrics/internal/handler"
	"github.com/iliyamo/court-metrics/internal/logging"
	"github.com/iliyamo/court-metrics/internal/middleware"
	"github.com/iliyamo/court-metrics/internal/repository"
	"github.com/iliyamo/court-metrics/internal/router"
	queue_publisher "github.com/iliyamo/court-metrics/internal/service"
	"github.com/iliyamo/court-metrics/internal/stats"
	"github.com/iliyamo/court-metrics/internal/utils"
)

// Deps are the collaborators the HTTP layer needs.  Redis and Pros may be
// nil; the cache, limiter and pro routes degrade accordingly.
type Deps struct {
	Cfg     config.Config
	Log     logging.Logger
	Users   repository.UserStore
	Matches repository.MatchStore
	Codec   *utils.SessionCodec
	Events  queue_publisher.Publisher
	Pros    *stats.ProTable
	Redis   *redis.Client
}

// App owns the server and everything that must be closed with it.
type App struct {
	Cfg     config.Config
	Log     logging.Logger
	Echo    *echo.Echo
	closers []func() error
}

// New builds the application from cfg.  Storage failures are fatal;
// Redis, RabbitMQ and the pro table are optional.
func New(ctx context.Context, cfg config.Config, log logging.Logger) (*App, error) {
	codec, err := utils.NewSessionCodec(cfg.Secret)
	if err != nil {
		return nil, err
	}

	a := &App{Cfg: cfg, Log: log}
	users, matches, closeStore, err := OpenStores(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closeStore)

	rdb := config.NewRedisClient(ctx)
	if rdb == nil {
		log.Warn(ctx, "redis unavailable; rate limiting and response cache disabled")
	} else {
		a.closers = append(a.closers, rdb.Close)
	}

	var events queue_publisher.Publisher = queue_publisher.Noop{}
	if cfg.EventsEnabled {
		events = queue_publisher.NewAMQP(cfg.AMQPURL)
	}

	pros, err := LoadPros(cfg.ProsCSVPath)
	if err != nil {
		log.Warn(ctx, "pro comparison data not loaded", "path", cfg.ProsCSVPath, "err", err)
	}

	a.Echo = NewEcho(Deps{
		Cfg:     cfg,
		Log:     log,
		Users:   users,
		Matches: matches,
		Codec:   codec,
		Events:  events,
		Pros:    pros,
		Redis:   rdb,
	})
	return a, nil
}

// OpenStores connects the backend named by cfg.Driver.  SQL backends are
// migrated before use.
func OpenStores(ctx context.Context, cfg config.Config) (repository.UserStore, repository.MatchStore, func() error, error) {
	switch cfg.Driver {
	case config.DriverDynamo:
		client, err := database.NewDynamoClient(ctx, cfg.AWSRegion, cfg.DynamoEndpoint)
		if err != nil {
			return nil, nil, nil, err
		}
		return repository.NewDynamoUserRepo(client, cfg.UsersTable),
			repository.NewDynamoMatchRepo(client, cfg.MatchesTable),
			func() error { return nil }, nil
	case config.DriverMySQL, config.DriverSQLite:
		db, dialect, err := openSQL(ctx, cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.Migrate(ctx, db, dialect); err != nil {
			_ = db.Close()
			return nil, nil, nil, err
		}
		return repository.NewUserRepo(db), repository.NewMatchRepo(db), db.Close, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func openSQL(ctx context.Context, cfg config.Config) (*sql.DB, string, error) {
	if cfg.Driver == config.DriverSQLite {
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		return db, database.DialectSQLite, err
	}
	db, err := database.OpenMySQL(ctx, cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return nil, "", fmt.Errorf("mysql: %w", err)
	}
	return db, database.DialectMySQL, nil
}

// LoadPros reads the pro comparison CSV at path.
func LoadPros(path string) (*stats.ProTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return stats.LoadProTable(f)
}

// NewEcho wires middleware, handlers and routes.
func NewEcho(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			args := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency.String()}
			if v.Error != nil {
				d.Log.Error(c.Request().Context(), "request", append(args, "err", v.Error)...)
				return nil
			}
			d.Log.Info(c.Request().Context(), "request", args...)
			return nil
		},
	}))

	// keep nil *redis.Client out of the interfaces so the middleware sees nil
	var (
		scripter redis.Scripter
		cache    middleware.CacheStore
	)
	if d.Redis != nil {
		scripter, cache = d.Redis, d.Redis
	}
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), scripter, d.Log)
	respCache := middleware.NewRedisCache(config.LoadCacheConfig(), cache, d.Log)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(d.Cfg, d.Users, d.Codec, d.Log), d.Codec, limiter)
	router.RegisterMatches(e, handler.NewMatchHandler(d.Matches, d.Events, d.Log), d.Codec)
	router.RegisterPublic(e, handler.NewProsHandler(d.Pros), respCache)
	return e
}

// Run serves on cfg.Port until ctx is cancelled, then shuts down
// gracefully and closes the storage and Redis clients.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	addr := ":" + a.Cfg.Port
	errCh := make(chan error, 1)
	go func() {
		a.Log.Info(ctx, "listening", "addr", addr, "env", a.Cfg.Env, "storage", a.Cfg.Driver)
		if err := a.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	a.Log.Info(shutdownCtx, "shutting down")
	return a.Echo.Shutdown(shutdownCtx)
}

func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
}
