package ui

import (
	"context"
	"log"
	"net/http"
	"time"

	"fluxgear/adapters/report"
	"fluxgear/app"
	"fluxgear/domain/gear"
	"fluxgear/ports"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// ModelFactory supplies a fresh model per sweep so each run starts from
// nominal bounds.
type ModelFactory func() ports.MetabolicModel

// Server exposes the sweep over HTTP.
type Server struct {
	router *gin.Engine
	sweep  *app.SweepService
	agg    *app.Aggregator
	repo   ports.SweepRepository
	gears  []gear.Config
	models ModelFactory
	md     *report.Builder
}

// NewServer creates a web server instance
func NewServer(sweep *app.SweepService, repo ports.SweepRepository, gears []gear.Config, models ModelFactory, md *report.Builder) *Server {
	s := &Server{
		router: gin.Default(),
		sweep:  sweep,
		agg:    app.NewAggregator(),
		repo:   repo,
		gears:  gears,
		models: models,
		md:     md,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.POST("/sweeps", s.handleRunSweep)
		api.GET("/sweeps/latest", s.handleLatestSweep)
		api.GET("/report", s.handleReport)
	}
}

// Router returns the underlying gin engine, for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start serves HTTP on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("[Server] listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
