// Package server is the http surface: manual triggers, read endpoints, the event stream,
// per-sector RSS and the metrics scrape endpoint.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/morningdesk/morningdesk/pkg/domain"
	"github.com/morningdesk/morningdesk/pkg/events"
	"github.com/morningdesk/morningdesk/pkg/feed"
	"github.com/morningdesk/morningdesk/pkg/metrics"
	"github.com/morningdesk/morningdesk/pkg/pipeline"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/pipeline.go -pkg mocks -skip-ensure -fmt goimports . Pipeline

// Server represents HTTP server instance
type Server struct {
	config   ConfigProvider
	store    Store
	pipeline Pipeline
	events   EventSource
	feedGen  *feed.Generator
	metrics  *metrics.Recorder
	params   Params

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Store gives read access to stored data
type Store interface {
	FindSectors(ctx context.Context, activeOnly bool) ([]domain.Sector, error)
	GetSectorByLabel(ctx context.Context, label string) (*domain.Sector, error)
	FindArticles(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error)
	FindBriefings(ctx context.Context, sectorID int64, limit int) ([]domain.Briefing, error)
}

// Pipeline runs triggered operations, each call goes through the same locks as the scheduler
type Pipeline interface {
	RunCycle(ctx context.Context, region domain.Region, includeSearch bool) (domain.CycleResult, error)
	Reclassify(ctx context.Context) (domain.ReclassifyResult, error)
	Cluster(ctx context.Context, sectorID int64) (domain.ClusterResult, error)
	Briefings(ctx context.Context, slot domain.BriefingSlot) (domain.BriefingResult, error)
	Status() pipeline.Status
}

// EventSource is the event bus streamed to clients
type EventSource interface {
	Subscribe(fn events.Listener) (unsubscribe func())
	ListenerCount() int
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// Params are optional server settings
type Params struct {
	Version     string
	Debug       bool
	BaseURL     string
	KeepAlive   time.Duration  // event stream keepalive interval
	MaxRequests int64          // concurrent requests limit, event streams excluded
	Location    *time.Location // time zone of date-only query parameters
	Metrics     *metrics.Recorder
}

// New initializes a new server instance
func New(cfg ConfigProvider, store Store, pipe Pipeline, bus EventSource, params Params) *Server {
	if params.KeepAlive <= 0 {
		params.KeepAlive = 30 * time.Second
	}
	if params.BaseURL == "" {
		params.BaseURL = "http://localhost:8080"
	}
	if params.MaxRequests <= 0 {
		params.MaxRequests = 100
	}
	if params.Location == nil {
		params.Location = time.FixedZone("KST", 9*60*60)
	}
	s := &Server{
		config:   cfg,
		store:    store,
		pipeline: pipe,
		events:   bus,
		feedGen:  feed.NewGenerator(params.BaseURL),
		metrics:  params.Metrics,
		params:   params,
		router:   routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout, // event stream clears its own deadline
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("morningdesk", "morningdesk", s.params.Version))
	s.router.Use(rest.Ping)
	s.router.Use(s.metrics.Middleware)

	if s.params.Debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.SizeLimit(64 * 1024))
}

// setupRoutes configures application routes. Long-lived event streams are kept out of the throttled group.
func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /api/v1/events", s.eventsHandler)

	throttled := s.router.Group()
	throttled.Use(rest.Throttle(s.params.MaxRequests))

	throttled.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("POST /collect", s.collectHandler)
		r.HandleFunc("POST /classify", s.classifyHandler)
		r.HandleFunc("POST /cluster", s.clusterHandler)
		r.HandleFunc("POST /briefings/generate", s.generateBriefingsHandler)
		r.HandleFunc("GET /briefings", s.briefingsHandler)
		r.HandleFunc("GET /sectors", s.sectorsHandler)
		r.HandleFunc("GET /articles", s.articlesHandler)
	})

	throttled.HandleFunc("GET /rss", s.rssHandler)
	throttled.HandleFunc("GET /rss/{sector}", s.rssHandler)
	throttled.HandleFunc("GET /opml", s.opmlHandler)
	throttled.Handle("GET /metrics", s.metrics.Handler())
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
