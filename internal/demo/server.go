// Package demo serves the sample graph page together with the staged assets
// and the live event bridge.
package demo

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/recera/vango-sigma/app/routes"
	"github.com/recera/vango-sigma/internal/assets"
	"github.com/recera/vango-sigma/internal/logging"
	"github.com/recera/vango-sigma/internal/metrics"
	"github.com/recera/vango-sigma/pkg/components/sigmagraph"
	"github.com/recera/vango-sigma/pkg/live"
	"github.com/recera/vango-sigma/pkg/renderer/html"
	"github.com/recera/vango-sigma/pkg/vango/vdom"
)

const (
	sessionMaxIdle = 5 * time.Minute
	shutdownGrace  = 5 * time.Second
)

// Config configures the demo server.
type Config struct {
	Host string
	Port int

	Component *sigmagraph.Component
	State     *routes.DemoState

	// Events overrides the default callbacks, which log each event.
	Events *sigmagraph.Events

	// StagedDir is served under /utils/.
	StagedDir string

	// BundleDir holds the host-built component bundle and is served under
	// /assets/. BundleURL is what the page imports.
	BundleDir string
	BundleURL string

	Logger *log.Logger
}

// Server is the demo HTTP server.
type Server struct {
	cfg    Config
	live   *live.Server
	router chi.Router
	logger *log.Logger
}

// New builds the server and its routes.
func New(cfg Config) *Server {
	if cfg.State == nil {
		cfg.State = routes.NewDemoState()
	}
	if cfg.Component == nil {
		cfg.Component = sigmagraph.New(nil)
	}
	logger := logging.WithPrefix(cfg.Logger, "demo")

	s := &Server{
		cfg:    cfg,
		live:   live.NewServer(cfg.Logger),
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/vango/bootstrap.js", s.handleBootstrap)
	r.Get("/vango/live/{session}", func(w http.ResponseWriter, r *http.Request) {
		s.live.Serve(w, r, chi.URLParam(r, "session"))
	})
	if cfg.StagedDir != "" {
		r.Handle("/utils/*", http.StripPrefix("/utils/", http.FileServer(http.Dir(cfg.StagedDir))))
	}
	if cfg.BundleDir != "" {
		r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.Dir(cfg.BundleDir))))
	}
	r.Handle("/metrics", metrics.Handler())

	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Live returns the live server backing event delivery.
func (s *Server) Live() *live.Server {
	return s.live
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Serving demo", "url", "http://"+addr)
		errCh <- srv.ListenAndServe()
	}()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err

		case <-ticker.C:
			if n := s.live.Prune(sessionMaxIdle); n > 0 {
				s.logger.Debug("Pruned idle sessions", "count", n)
			}

		case <-ctx.Done():
			s.live.Close()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sessionID := uuid.NewString()
	logger := s.logger.With("session", sessionID)

	events := s.defaultEvents(logger)
	if s.cfg.Events != nil {
		events = *s.cfg.Events
	}

	body, err := routes.Index(s.cfg.Component, s.cfg.State, events)
	if err != nil {
		logger.Error("Failed to build page", "err", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	registry := live.NewRegistry()
	doc := html.Document{
		Title: "Sigma Graph Demo",
		Head: []*vdom.VNode{
			vdom.NewElement("script", vdom.Props{
				"src":          "/vango/bootstrap.js",
				"data-session": sessionID,
				"data-bundle":  s.cfg.BundleURL,
			}),
		},
		Body: body,
	}

	var buf bytes.Buffer
	if err := doc.Render(&buf, html.WithHandlerSink(registry)); err != nil {
		logger.Error("Failed to render page", "err", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	s.live.Attach(sessionID, registry)
	logger.Debug("Rendered page", "handlers", registry.Len())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleBootstrap(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Write(assets.BootstrapJS)
}

func (s *Server) defaultEvents(logger *log.Logger) sigmagraph.Events {
	return sigmagraph.Events{
		OnNodeClick: func(id string, data map[string]any) {
			logger.Info("Node clicked", "node", id, "label", data["label"])
		},
		OnNodeHover: func(id string, _ map[string]any) {
			logger.Debug("Node hovered", "node", id)
		},
		OnEdgeClick: func(id string, data map[string]any) {
			logger.Info("Edge clicked", "edge", id, "label", data["label"])
		},
		OnEdgeHover: func(id string, _ map[string]any) {
			logger.Debug("Edge hovered", "edge", id)
		},
		OnLayoutComplete: func() {
			logger.Info("Layout complete")
		},
	}
}
