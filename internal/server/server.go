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
	"strconv"
	"syscall"
	"time"

	"github.com/jonathan/seo-consultant/internal/db"
	"github.com/jonathan/seo-consultant/internal/llm"
	"github.com/jonathan/seo-consultant/internal/pipeline"
	"github.com/jonathan/seo-consultant/internal/server/ratelimit"
)

// Server exposes the consulting pipeline over REST, with SSE streaming
// for long-running analyses.
type Server struct {
	httpServer  *http.Server
	pipeline    *pipeline.Pipeline
	sessions    db.SessionStore
	llm         llm.Client
	rateLimiter *ratelimit.Limiter
	corsOrigin  string
}

// Config carries everything New needs to assemble a server.
type Config struct {
	Port       int
	CORSOrigin string      // empty allows any origin
	APIKey     string      // optional model key for the chat consultant
	Models     *llm.Config // nil uses the Gemini defaults
	Pipeline   pipeline.Options
}

// New creates a new server instance. The pipeline's metric and report
// stores degrade individually; sessions fall back to process memory when no
// database is connected, and the consultant runs without a model client.
func New(cfg Config) (*Server, error) {
	ctx := context.Background()

	p, err := pipeline.New(ctx, cfg.Pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to build pipeline: %w", err)
	}

	s := &Server{
		pipeline:   p,
		corsOrigin: cfg.CORSOrigin,
	}
	if s.corsOrigin == "" {
		s.corsOrigin = "*"
	}

	if database := p.Database(); database != nil {
		s.sessions = database
	} else {
		s.sessions = db.NewMemorySessionStore()
	}

	if cfg.APIKey != "" {
		client, err := llm.NewClient(ctx, cfg.Models, cfg.APIKey)
		if err != nil {
			fmt.Printf("Warning: Failed to create model client: %v\n", err)
			fmt.Printf("Continuing with deterministic replies...\n")
		} else {
			s.llm = client
		}
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	mux := http.NewServeMux()
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("GET /analyze/stream", s.handleAnalyzeStream)
	mux.HandleFunc("POST /compare", s.handleCompare)
	mux.HandleFunc("POST /track", s.handleTrack)
	mux.HandleFunc("GET /trends/{domain}", s.handleTrends)
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("GET /sessions", s.handleListSessions)
	mux.HandleFunc("GET /sessions/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // crawl-backed endpoints run for minutes
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start listens until SIGINT or SIGTERM, then drains in-flight requests
// before returning.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	drainCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(drainCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.Close()
	log.Println("Server stopped")
	return nil
}

// Handler returns the root handler with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Close releases the pipeline, the model client and the rate limiter. Start
// calls it after shutdown; tests call it directly.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.llm != nil {
		_ = s.llm.Close()
	}
	s.pipeline.Close()
}

// withCORS answers preflights and stamps the allowed origin on every
// response.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", s.corsOrigin)
		h.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRateLimit checks the client's bucket before the handler runs. Limit
// headers go on every limited route, allowed or not.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientIP(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging logs each request on the way in and its duration on the way
// out.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth reports liveness plus where sessions are being kept.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	health := map[string]string{"status": "ok", "sessions": "memory"}
	if s.pipeline.Database() != nil {
		health["sessions"] = "postgres"
	}
	s.jsonResponse(w, http.StatusOK, health)
}

// jsonResponse encodes data with the right content type.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// errorResponse writes the error envelope: a stable machine-readable code
// plus a human-readable message.
func (s *Server) errorResponse(w http.ResponseWriter, status int, code, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message, "code": code})
}

// clientIP identifies the client for rate limiting. RemoteAddr is the
// whole story here; X-Forwarded-For is only trustworthy behind a known
// proxy, which this server does not assume.
func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders stamps the standard X-RateLimit-* trio. Exempt
// routes report no limit and get no headers.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit <= 0 {
		return
	}
	h := w.Header()
	h.Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
}

// rateLimitResponse answers a throttled request with 429 and enough detail
// for the client to back off sensibly.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	body := map[string]any{
		"error":     "Rate limit exceeded. Please try again later.",
		"code":      codeRateLimited,
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}
	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds())
		body["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	log.Printf("[rate-limit] throttled: limit=%d remaining=%d reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, body)
}
