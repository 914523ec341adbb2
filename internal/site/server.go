// Package site serves a built documentation site with the page behaviors
// applied at the origin: every page goes out with its theme resolved, code
// blocks wrapped, and the browser runtime injected, so the first paint
// already matches the reader's saved preferences. With live reload enabled,
// edits to the site trigger a refresh in connected browsers.
package site

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/sync/errgroup"

	"pagelet/internal/assets"
	"pagelet/internal/dom"
	"pagelet/internal/page"
)

// Config holds preview server configuration.
type Config struct {
	// Dir is the root of the built site.
	Dir string
	// Port to listen on.
	Port int
	// Inject adds runtime asset references to served pages.
	Inject bool
	// Reload enables the file watcher and the reload websocket.
	Reload bool
	// AllowAll allows all CORS origins (dev mode).
	AllowAll bool
}

// Server is the preview server.
type Server struct {
	cfg        Config
	store      page.ThemeStore
	probe      page.ColorSchemeProbe
	router     chi.Router
	hub        *reloadHub
	httpServer *http.Server
}

// New creates a preview server for the site in cfg.Dir. store and probe
// feed theme resolution for every served page.
func New(cfg Config, store page.ThemeStore, probe page.ColorSchemeProbe) *Server {
	s := &Server{cfg: cfg, store: store, probe: probe}
	if cfg.Reload {
		s.hub = newReloadHub()
	}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Theme API: the server-side counterpart of the in-page toggle.
	r.Get("/api/theme", s.handleTheme)
	r.Post("/api/theme/toggle", s.handleThemeToggle)

	// Runtime assets and the reload websocket.
	r.Route("/__pagelet", func(r chi.Router) {
		if s.hub != nil {
			r.Get("/reload", s.hub.handleWS)
		}
		r.Handle("/*", http.StripPrefix("/__pagelet", assets.Handler()))
	})

	// Everything else is the site itself.
	r.NotFound(s.handlePage)

	return r
}

// Router returns the handler, for tests and embedding.
func (s *Server) Router() http.Handler { return s.router }

type themeResponse struct {
	Theme page.Theme `json:"theme"`
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, themeResponse{Theme: page.Preferred(s.store, s.probe)})
}

func (s *Server) handleThemeToggle(w http.ResponseWriter, r *http.Request) {
	next := page.Preferred(s.store, s.probe).Toggle()
	s.store.Set(page.ThemeKey, string(next))
	if s.hub != nil {
		s.hub.Broadcast()
	}
	writeJSON(w, themeResponse{Theme: next})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// handlePage resolves a request path inside the site directory. Directories
// serve their index page or a generated listing; pages are enhanced on the
// way out; everything else is served as-is.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	full := filepath.Join(s.cfg.Dir, filepath.FromSlash(rel))

	info, err := os.Stat(full)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if info.IsDir() {
		index := filepath.Join(full, "index.html")
		if _, err := os.Stat(index); err == nil {
			s.servePage(w, r, index)
			return
		}
		s.serveListing(w, r, full)
		return
	}

	if isPagePath(full) {
		s.servePage(w, r, full)
		return
	}

	http.ServeFile(w, r, full)
}

func isPagePath(p string) bool {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".html", ".htm":
		return true
	}
	return false
}

// servePage reads a page, applies the behaviors, and writes the enhanced
// document. Pages enhanced ahead of time only get their theme refreshed.
func (s *Server) servePage(w http.ResponseWriter, r *http.Request, fullPath string) {
	data, err := os.ReadFile(fullPath)
	if err != nil {
		http.Error(w, "reading page", http.StatusInternalServerError)
		return
	}

	doc, err := dom.Parse(bytes.NewReader(data))
	if err != nil {
		http.Error(w, "parsing page", http.StatusInternalServerError)
		return
	}

	if page.Stamped(doc) {
		page.ApplyPreferred(doc, s.store, s.probe)
	} else {
		page.Setup(doc, page.Environment{Store: s.store, Probe: s.probe})
	}
	if s.cfg.Inject {
		assets.InjectRefs(doc, "/__pagelet/")
	}
	if s.hub != nil {
		injectReloadScript(doc)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := doc.Render(w); err != nil {
		log.Printf("rendering %s: %v", fullPath, err)
	}
}

// Start listens on the configured port until ctx is canceled. With reload
// enabled it also watches the site directory and pushes a refresh to
// connected browsers on changes.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("pagelet serving %s on http://localhost:%d", s.cfg.Dir, s.cfg.Port)
		err := s.httpServer.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	if s.hub != nil {
		g.Go(func() error {
			return watchSite(ctx, s.cfg.Dir, s.hub.Broadcast)
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// OpenBrowser opens the given URL in the default browser.
func OpenBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
