package alexa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"studentenfutter/internal/domain"
)

type SkillHandler interface {
	Handle(ctx context.Context, req domain.Request) domain.Response
}

type Server struct {
	addr        string
	appID       string
	authToken   string
	skill       SkillHandler
	logger      *slog.Logger
	mux         *http.ServeMux
	rateLimiter *RateLimiter

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
	running  bool
}

// NewServer serves the skill on addr. An empty appID or authToken disables
// the corresponding check.
func NewServer(addr, appID, authToken string, skill SkillHandler, logger *slog.Logger) *Server {
	s := &Server{
		addr:        addr,
		appID:       appID,
		authToken:   authToken,
		skill:       skill,
		logger:      logger,
		mux:         http.NewServeMux(),
		rateLimiter: NewRateLimiter(30, time.Minute),
	}
	s.mux.HandleFunc("POST /alexa", s.rateLimiter.Middleware(s.handleAlexa))
	s.mux.HandleFunc("GET /health", s.handleHealth)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

// Addr is the bound address once started, the configured one before.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

func (s *Server) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.addr, err)
	}

	s.listener = ln
	s.server = &http.Server{
		Handler:      s.mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		s.logger.Info("skill server starting", "addr", ln.Addr().String())
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", "error", err)
		}
	}()

	s.running = true
	return nil
}

func (s *Server) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	srv := s.server
	s.running = false
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.logger.Warn("graceful shutdown failed, forcing close", "error", err)
		if err := srv.Close(); err != nil {
			return fmt.Errorf("closing server: %w", err)
		}
	}

	return nil
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	s.logger.Info("stopping skill server")
	if err := s.Stop(); err != nil {
		return err
	}
	return ctx.Err()
}

func (s *Server) handleAlexa(w http.ResponseWriter, r *http.Request) {
	if s.authToken != "" {
		token := r.Header.Get("X-Auth-Token")
		if token == "" {
			token = r.URL.Query().Get("token")
		}

		if token != s.authToken {
			s.logger.Warn("unauthorized alexa request", "remote_addr", r.RemoteAddr)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, 64*1024))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var env RequestEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		s.logger.Warn("invalid alexa request body", "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if env.Request.Type == "" {
		http.Error(w, "missing request type", http.StatusBadRequest)
		return
	}

	if s.appID != "" && env.ApplicationID() != s.appID {
		s.logger.Warn("request for foreign application",
			"application_id", env.ApplicationID(),
			"request_id", env.Request.RequestID,
		)
		http.Error(w, "invalid application id", http.StatusForbidden)
		return
	}

	req := env.ToDomain()
	s.logger.Info("received alexa request",
		"request_id", req.ID,
		"type", req.Type,
		"intent", req.Intent,
		"locale", req.Locale,
	)

	resp := s.skill.Handle(r.Context(), req)

	w.Header().Set("Content-Type", "application/json;charset=UTF-8")
	if err := json.NewEncoder(w).Encode(FromDomain(resp)); err != nil {
		s.logger.Error("writing alexa response", "request_id", req.ID, "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()

	status := "ok"
	statusCode := http.StatusOK

	if !running {
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	fmt.Fprintf(w, `{"status":"%s","running":%t}`, status, running)
}
