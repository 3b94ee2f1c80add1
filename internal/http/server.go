// README: API gateway; wires handlers, middleware and the graceful-shutdown loop.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"voyager/internal/http/handlers"
	"voyager/internal/infra"
	"voyager/internal/metrics"
	"voyager/internal/modules/fixtures"
	"voyager/internal/modules/session"
)

type ServerDeps struct {
	Planner  handlers.Planner
	Sessions *session.Service
	Fixtures *fixtures.Service
	Geocoder handlers.Geocoder
	Usage    handlers.UsageReporter
	Verifier infra.TokenVerifier
	Metrics  *metrics.Metrics
	Logger   *zap.Logger

	CORSOrigins   []string
	RatePerMinute int
	MaxBodyBytes  int64
}

type Server struct {
	deps ServerDeps
	log  *zap.Logger
}

// NewServer accepts nil for every optional dependency: Sessions, Geocoder, Usage, Verifier and Metrics.
func NewServer(deps ServerDeps) *Server {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{deps: deps, log: log}
}

// Serve runs srv until ctx is done, then drains in-flight requests for up to grace.
func Serve(ctx context.Context, srv *http.Server, grace time.Duration, log *zap.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down http server", zap.Duration("grace", grace))
		sctx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}
