// Package server wires the exercise tracker together: it opens the database,
// applies migrations, builds the services and runs the HTTP server until a
// termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/exercisetracker/internal/logging"
	"github.com/dmitrijs2005/exercisetracker/internal/server/config"
	"github.com/dmitrijs2005/exercisetracker/internal/server/httpapi"
	"github.com/dmitrijs2005/exercisetracker/internal/server/metrics"
	"github.com/dmitrijs2005/exercisetracker/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/exercisetracker/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
	metrics     *metrics.Metrics
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}
	logger.Info(ctx, "Database ready")

	us := services.NewUserService(db, rm)

	return &App{config: c, logger: logger, db: db, userService: us, metrics: metrics.New()}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.userService, app.db, app.metrics, httpapi.Options{
		AllowedOrigins:  app.config.AllowedOrigins,
		RequestTimeout:  app.config.RequestTimeout,
		ShutdownTimeout: app.config.ShutdownTimeout,
		RateLimitRPS:    app.config.RateLimitRPS,
		RateLimitBurst:  app.config.RateLimitBurst,
	})

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled or a termination signal is received.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
