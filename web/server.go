// Package web provides an HTTP API for reading and writing PLC tags,
// gated behind a cookie-backed operator session.
package web

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"

	"github.com/dhunt84971/cslogix/config"
	"github.com/dhunt84971/cslogix/logging"
	"github.com/dhunt84971/cslogix/logix"
)

const sessionName = "cslogix_session"

// Server is the HTTP API server for tag read/write access.
type Server struct {
	cfg     *config.WebConfig
	plcs    *PLCRegistry
	store   *sessions.CookieStore
	findUser func(username string) *config.WebUser

	httpServer *http.Server
	router     chi.Router
	running    bool
	mu         sync.RWMutex
}

// PLCRegistry maps a configured PLC name to its connected client.
// Access is synchronized so PLCs can be added/removed while the server runs.
type PLCRegistry struct {
	mu   sync.RWMutex
	plcs map[string]*logix.Client
}

// NewPLCRegistry creates an empty registry.
func NewPLCRegistry() *PLCRegistry {
	return &PLCRegistry{plcs: make(map[string]*logix.Client)}
}

// Put registers or replaces the client for a PLC name.
func (r *PLCRegistry) Put(name string, client *logix.Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plcs[name] = client
}

// Remove drops a PLC from the registry.
func (r *PLCRegistry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.plcs, name)
}

// Get returns the client registered under name, or nil if absent.
func (r *PLCRegistry) Get(name string) *logix.Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.plcs[name]
}

// List returns the names of every registered PLC.
func (r *PLCRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.plcs))
	for name := range r.plcs {
		names = append(names, name)
	}
	return names
}

// NewServer creates an HTTP API server. findUser looks up web users by
// username (normally backed by cfg.Web.UI.Users via a *config.Config).
func NewServer(cfg *config.WebConfig, plcs *PLCRegistry, findUser func(username string) *config.WebUser) *Server {
	var secret []byte
	if cfg.UI.SessionSecret != "" {
		secret = []byte(cfg.UI.SessionSecret)
	} else {
		secret = []byte("cslogix-dev-secret")
	}

	s := &Server{
		cfg:      cfg,
		plcs:     plcs,
		store:    sessions.NewCookieStore(secret),
		findUser: findUser,
	}
	s.store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   8 * 3600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures the chi router with all routes.
func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Compress(5))

	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	if s.cfg.API.Enabled {
		r.Route("/api/plcs/{plc}/tags", func(sub chi.Router) {
			sub.Use(s.requireSession)
			sub.Get("/", s.handleListTags)
			sub.Get("/{tag}", s.handleReadTag)
			sub.Post("/{tag}", s.handleWriteTag)
		})
	}

	s.router = r
}

// debugLogWriter adapts logging.DebugLog to an io.Writer for use with log.Logger.
type debugLogWriter string

func (tag debugLogWriter) Write(p []byte) (n int, err error) {
	logging.DebugLog(string(tag), "%s", string(p))
	return len(p), nil
}

var _ io.Writer = debugLogWriter("")

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          log.New(debugLogWriter("web"), "", 0),
	}

	go func() {
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
		}
	}()

	s.running = true
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	s.running = false
	s.httpServer = nil
	return err
}

// IsRunning reports whether the server is currently accepting connections.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Address returns the base URL the server listens on.
func (s *Server) Address() string {
	return fmt.Sprintf("http://%s:%d", s.cfg.Host, s.cfg.Port)
}

// ServeHTTP allows the server to be used directly with httptest or another mux.
func (s *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	s.router.ServeHTTP(w, req)
}
