// Package daemon runs the mock provider as a standalone HTTP service
// for out-of-process clients.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hackry/mymlhmock"
	"github.com/hackry/mymlhmock/internal/config"
	"github.com/hackry/mymlhmock/internal/reqid"
)

const shutdownTimeout = 5 * time.Second

// Server wraps a mock provider instance with a real listener, access
// logging, and metrics.
type Server struct {
	cfg     *config.Config
	logger  *zap.Logger
	mock    *mymlhmock.Mock
	metrics *metrics
	router  chi.Router
}

type metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mymlhmock_http_requests_total",
			Help: "HTTP requests served, by method, path, and status code.",
		}, []string{"method", "path", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mymlhmock_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
	m.registry.MustRegister(m.requests, m.duration)
	return m
}

// New builds a daemon server from the loaded configuration.
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	mockCfg := mymlhmock.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		CallbackURLs: cfg.CallbackURLs,
		Logger:       logger,
	}
	for _, u := range cfg.AuthenticatedUsers {
		mockCfg.AuthenticatedUsers = append(mockCfg.AuthenticatedUsers, u.ToStoreUser())
	}
	for _, u := range cfg.UnauthenticatedUsers {
		mockCfg.UnauthenticatedUsers = append(mockCfg.UnauthenticatedUsers, u.ToStoreUser())
	}

	mock, err := mymlhmock.New(mockCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build mock provider: %w", err)
	}

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		mock:    mock,
		metrics: newMetrics(),
	}
	s.router = s.routes()
	return s, nil
}

// Mock exposes the underlying provider instance.
func (s *Server) Mock() *mymlhmock.Mock {
	return s.mock
}

// Handler returns the daemon's full handler, including the health and
// metrics endpoints.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(reqid.Middleware)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(
		s.metrics.registry, promhttp.HandlerOpts{}))
	r.Mount("/", s.mock.Handler())
	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// statusRecorder captures the response code for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		s.metrics.requests.WithLabelValues(
			r.Method, r.URL.Path, strconv.Itoa(rec.status)).Inc()
		s.metrics.duration.WithLabelValues(
			r.Method, r.URL.Path).Observe(elapsed.Seconds())

		s.logger.Debug("request served",
			zap.String("request_id", reqid.FromContext(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", elapsed))
	})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Listen, err)
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.logger.Info("mock provider listening",
		zap.String("addr", ln.Addr().String()))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
