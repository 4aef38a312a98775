package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/socialcopy/internal/gemini"
	"github.com/jonathan/socialcopy/internal/pipeline"
	"github.com/jonathan/socialcopy/internal/server/ratelimit"
	"github.com/jonathan/socialcopy/internal/store"
)

// Server represents the HTTP server.
type Server struct {
	httpServer  *http.Server
	pipeline    *pipeline.Pipeline
	store       store.Store
	rateLimiter *ratelimit.Limiter
	pgStore     *store.Postgres // retained for Close on shutdown; nil for memory store
}

// Config holds server configuration.
type Config struct {
	Port            int
	APIKey          string
	DatabaseURL     string
	MaxContentChars int
	MaxAttempts     int
	RetryBaseDelay  time.Duration
	GeminiBaseURL   string
	GeminiModel     string
	ImagenModel     string

	// Client and Store override the real implementations in tests.
	Client gemini.Client
	Store  store.Store
}

// New creates a new server instance.
func New(cfg Config) (*Server, error) {
	s := &Server{}

	client := cfg.Client
	if client == nil {
		client = gemini.NewClient(&gemini.Config{
			BaseURL:    cfg.GeminiBaseURL,
			CopyModel:  cfg.GeminiModel,
			ImageModel: cfg.ImagenModel,
			Retry: gemini.RetryPolicy{
				MaxAttempts: cfg.MaxAttempts,
				BaseDelay:   cfg.RetryBaseDelay,
			},
		})
	}

	s.store = cfg.Store
	if s.store == nil {
		if cfg.DatabaseURL != "" {
			pg, err := store.Connect(context.Background(), cfg.DatabaseURL)
			if err != nil {
				// Draft/override storage is best-effort; degrade to memory.
				log.Printf("[STORE] database unavailable, using in-memory store: %v", err)
				s.store = store.NewMemory()
			} else {
				s.store = pg
				s.pgStore = pg
			}
		} else {
			s.store = store.NewMemory()
		}
	}

	s.pipeline = pipeline.New(pipeline.Options{
		Client:          client,
		APIKey:          cfg.APIKey,
		MaxContentChars: cfg.MaxContentChars,
	})
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/generate-copy", s.handleGenerateCopy)
	mux.HandleFunc("POST /api/generate-image", s.handleGenerateImage)
	mux.HandleFunc("POST /api/ingest", s.handleIngest)

	// Draft autosave endpoints
	mux.HandleFunc("PUT /api/drafts/{id}", s.handleSaveDraft)
	mux.HandleFunc("GET /api/drafts/{id}", s.handleGetDraft)
	mux.HandleFunc("DELETE /api/drafts/{id}", s.handleDeleteDraft)

	// Per-session platform prompt overrides
	mux.HandleFunc("PUT /api/overrides/{platform_id}", s.handleSaveOverride)
	mux.HandleFunc("GET /api/overrides/{platform_id}", s.handleGetOverride)
	mux.HandleFunc("DELETE /api/overrides/{platform_id}", s.handleDeleteOverride)

	mux.HandleFunc("GET /health", s.handleHealth)

	port := cfg.Port
	if port == 0 {
		port = 8080
	}
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // generation calls can be slow with retries
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
		log.Printf("Shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := s.httpServer.Shutdown(ctx)
		if s.pgStore != nil {
			s.pgStore.Close()
		}
		return err
	}
}

// Handler exposes the configured handler chain for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// withCORS allows browser clients to reach the API.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractClientID identifies the caller for rate limiting, using the IP
// from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
