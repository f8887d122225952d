// Package server boots the HTTP service: config, logging, database,
// migrations, routes, and graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ecomm-labs/storefront-api/app/routes"
	"github.com/ecomm-labs/storefront-api/config"
	_ "github.com/ecomm-labs/storefront-api/database/migrations"
	"github.com/ecomm-labs/storefront-api/pkg/database"
	"github.com/ecomm-labs/storefront-api/pkg/logger"
	"github.com/ecomm-labs/storefront-api/pkg/metrics"
	"github.com/ecomm-labs/storefront-api/pkg/middleware"
	"github.com/ecomm-labs/storefront-api/pkg/migration"
	"github.com/ecomm-labs/storefront-api/pkg/reqid"
	"github.com/ecomm-labs/storefront-api/pkg/router"
)

const shutdownGrace = 15 * time.Second

// Run boots the service and blocks until SIGINT/SIGTERM.
func Run() error {
	if err := config.Load(); err != nil {
		return err
	}
	logger.Setup()
	defer logger.Shutdown()

	db, err := database.Connect()
	if err != nil {
		return err
	}
	defer closeDB(db)

	if err := migration.New(db).Run(); err != nil {
		return err
	}

	r := BuildRouter(db)
	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(ctx)
}

// BuildRouter assembles the middleware stack and route table. The CLI
// uses it to print the route list without opening a listener.
func BuildRouter(db *gorm.DB) *router.Router {
	r := router.New()
	r.Use(
		metrics.Middleware(),
		reqid.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(newLimiter()),
	)
	routes.Register(r, db)
	return r
}

// newLimiter picks Redis when configured, otherwise a per-process
// in-memory limiter.
func newLimiter() middleware.Limiter {
	max := config.RateLimitMax()
	window := time.Minute
	if addr := config.RedisAddr(); addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: config.RedisPassword(),
		})
		return middleware.NewRedisLimiter(rdb, max, window)
	}
	return middleware.NewMemoryLimiter(max, window)
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err == nil {
		sqlDB.Close() //nolint:errcheck
	}
}
