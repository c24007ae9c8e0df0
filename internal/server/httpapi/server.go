// Package httpapi is the REST transport of the exercise tracker: routing,
// request decoding, response shaping and the middleware chain around them.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/exercisetracker/internal/logging"
	"github.com/dmitrijs2005/exercisetracker/internal/server/logquery"
	"github.com/dmitrijs2005/exercisetracker/internal/server/metrics"
	"github.com/dmitrijs2005/exercisetracker/internal/server/models"
	"github.com/dmitrijs2005/exercisetracker/internal/server/services"
)

// UserService is the business API the handlers call. *services.UserService
// implements it.
type UserService interface {
	CreateUser(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	AddExercise(ctx context.Context, userID string, in services.NewExercise) (*models.User, models.Exercise, error)
	GetLog(ctx context.Context, userID string, q logquery.Query) (*logquery.Result, error)
}

// Pinger reports database reachability for /health. *sql.DB implements it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Options tune the middleware chain and the shutdown behaviour.
type Options struct {
	AllowedOrigins  []string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	RateLimitRPS    float64
	RateLimitBurst  int
}

const readHeaderTimeout = 5 * time.Second

type HTTPServer struct {
	address string
	logger  logging.Logger
	users   UserService
	db      Pinger
	metrics *metrics.Metrics
	limiter *RateLimiter
	opts    Options
}

func NewHTTPServer(a string, l logging.Logger, us UserService, db Pinger, m *metrics.Metrics, o Options) *HTTPServer {
	if m == nil {
		m = metrics.New()
	}
	s := &HTTPServer{
		address: a,
		logger:  l.With("module", "http_server"),
		users:   us,
		db:      db,
		metrics: m,
		opts:    o,
	}
	if o.RateLimitRPS > 0 {
		s.limiter = NewRateLimiter(o.RateLimitRPS, o.RateLimitBurst)
	}
	return s
}

// Handler returns the complete handler: router plus middleware.
func (s *HTTPServer) Handler() http.Handler {
	var h http.Handler = s.newRouter()
	if s.limiter != nil {
		h = s.limiter.Handler(h)
	}
	h = corsMiddleware(s.opts.AllowedOrigins)(h)
	h = s.requestLogger(h)
	h = s.recoverer(h)
	return h
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most ShutdownTimeout.
func (s *HTTPServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	if s.limiter != nil {
		go s.limiter.RunSweeper(ctx, time.Minute)
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(listen)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")

	timeout := s.opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
