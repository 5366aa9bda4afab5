package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vsinha/schc/pkg/infrastructure/log"
	"github.com/vsinha/schc/pkg/infrastructure/reference"
)

/*
Server serves the advisor over HTTP:
- GET / renders the dashboard, POST / evaluates the submitted form
- POST /api/v1/recommendation evaluates a JSON request
- GET /api/v1/options and /api/v1/status expose the loaded reference data
- GET /health and /metrics for probes and scraping
*/
type Server struct {
	holder  *reference.Holder
	logger  *zap.SugaredLogger
	handler http.Handler
}

// NewServer builds the router over the sessions published by holder
func NewServer(holder *reference.Holder, logger *zap.Logger) *Server {
	s := &Server{
		holder: holder,
		logger: logger.Sugar().Named("web"),
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(log.Logger(logger, "http"))
	router.Use(middleware.Recoverer)

	router.Get("/", s.dashboard)
	router.Post("/", s.submit)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/recommendation", s.recommend)
		r.Get("/options", s.options)
		r.Get("/status", s.status)
	})

	router.Get("/health", s.health)
	router.Handle("/metrics", promhttp.Handler())

	s.handler = router
	return s
}

// Handler returns the root http.Handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves on listener until ctx is cancelled, then shuts down gracefully
// within shutdownTimeout.
func (s *Server) Run(ctx context.Context, listener net.Listener, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		ctxTimeout, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		if err := srv.Shutdown(ctxTimeout); err != nil {
			s.logger.Errorw("failed to gracefully shut down the server", "error", err)
		}
		s.logger.Info("server terminated")
	}()

	s.logger.Infow("serving advisor", "address", listener.Addr().String())
	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	return nil
}
