package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/arcview/pkg/cache"
	"github.com/matzehuels/arcview/pkg/explorer"
)

const defaultShutdownTimeout = 5 * time.Second

// Config configures a Server.
type Config struct {
	// Addr is the listen address used by Listen.
	Addr string

	// Logger receives request and connection logs. Nil uses [log.Default].
	Logger *log.Logger

	// Gatherer backs /metrics. Nil leaves the route unregistered.
	Gatherer prometheus.Gatherer

	// Cache stores rendered snapshots. Nil uses a small [cache.MemoryCache].
	Cache cache.Cache

	// ShutdownTimeout bounds graceful shutdown. Zero means 5s.
	ShutdownTimeout time.Duration

	// Title is shown in the page header.
	Title string
}

// Server hosts the explorer for one App.
type Server struct {
	app    *explorer.App
	cfg    Config
	logger *log.Logger
	hub    *hub
	cache  cache.Cache
	router chi.Router
}

// New builds the server and its routes. Nothing listens until Run or Serve.
func New(app *explorer.App, cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.NewMemoryCache(32)
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	if cfg.Title == "" {
		cfg.Title = "arcview"
	}

	s := &Server{
		app:    app,
		cfg:    cfg,
		logger: cfg.Logger,
		hub:    newHub(app.Controller, cfg.Logger),
		cache:  cfg.Cache,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/", s.handlePage)
	r.Get("/healthz", s.handleHealth)
	r.Get("/snapshot.svg", s.handleSnapshot)
	r.Get("/ws", s.handleWS)

	r.Route("/api", func(r chi.Router) {
		r.Get("/graph", s.handleGraph)
		r.Get("/options", s.handleOptions)
		r.Get("/style", s.handleGetStyle)
		r.Post("/style", s.handlePostStyle)
	})

	if s.cfg.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.cfg.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// Listen opens a TCP listener on the configured address. Pass it to Serve;
// its Addr is the bound address, which differs from Config.Addr for port 0.
func (s *Server) Listen() (net.Listener, error) {
	return net.Listen("tcp", s.cfg.Addr)
}

// Serve accepts connections on ln and runs the style controller loop until
// ctx is done or either fails. WebSocket clients are disconnected and
// in-flight requests get the shutdown timeout to finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	unsubscribe := s.app.Controller.Subscribe(s.hub)
	defer unsubscribe()

	g, gctx := errgroup.WithContext(ctx)
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return gctx },
	}

	g.Go(func() error {
		return s.app.Controller.Run(gctx, s.app.Controller.Inbox())
	})
	g.Go(func() error {
		s.logger.Info("Explorer listening", "url", "http://"+ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Debug("Shutting down explorer")
		s.hub.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Shutdown failed", "error", err)
			return err
		}
		return nil
	})

	return g.Wait()
}
