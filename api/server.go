// Package api - Thin, deterministic API layer
// The API is ONLY responsible for: input decoding, dispatch to a cloud
// adapter, output serialization. It never resolves or prices anything itself.
package api

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cloud-adapter/clouds"
	"cloud-adapter/core/types"
	"cloud-adapter/internal/errors"
	"cloud-adapter/internal/logging"
)

// Server is the API server
type Server struct {
	registry     *clouds.Registry
	mux          *http.ServeMux
	version      string
	defaultCloud types.Provider
	probeTimeout time.Duration
	logger       *zap.Logger
}

// Option configures a Server
type Option func(*Server)

// WithVersion sets the version reported by /version and /health
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// WithDefaultCloud sets the provider used when a request names none
func WithDefaultCloud(p types.Provider) Option {
	return func(s *Server) { s.defaultCloud = p }
}

// WithCredentialTimeout bounds each credential probe
func WithCredentialTimeout(d time.Duration) Option {
	return func(s *Server) { s.probeTimeout = d }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// NewServer creates a new API server over the provider dispatch table
func NewServer(registry *clouds.Registry, opts ...Option) *Server {
	s := &Server{
		registry:     registry,
		mux:          http.NewServeMux(),
		version:      "dev",
		defaultCloud: types.ProviderHyperstack,
		probeTimeout: 10 * time.Second,
		logger:       logging.Named("api"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Orchestrator surface
	s.mux.HandleFunc("POST /resolve", s.handleResolve)
	s.mux.HandleFunc("GET /regions", s.handleRegions)
	s.mux.HandleFunc("GET /cost", s.handleCost)
	s.mux.HandleFunc("GET /features", s.handleFeatures)
	s.mux.HandleFunc("GET /credentials", s.handleCredentials)

	// Supporting endpoints
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"clouds":  s.registry.Names(),
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "cloud-adapter",
		"api_version": "v1",
	}, http.StatusOK)
}

// provider picks the adapter named by the request, or the default one
func (s *Server) provider(name types.Provider) (clouds.CloudProvider, error) {
	if name == "" {
		name = s.defaultCloud
	}
	return s.registry.Lookup(name)
}

// probeContext bounds a credential probe by the configured timeout
func (s *Server) probeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.probeTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.probeTimeout)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	s.writeJSON(w, map[string]interface{}{
		"error": ErrorDetail{Code: code, Message: message},
	}, status)
}

// writeDomainError maps a typed error to its HTTP status
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	detail := ErrorDetail{Code: string(errors.TypeInternal), Message: err.Error()}
	if e, ok := errors.As(err); ok {
		detail.Code = string(e.Type)
		detail.Context = e.Context
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	} else {
		s.logger.Debug("request rejected", zap.String("code", detail.Code), zap.Error(err))
	}
	s.writeJSON(w, map[string]interface{}{"error": detail}, status)
}

func statusFor(err error) int {
	switch {
	case errors.IsType(err, errors.TypeContract), errors.IsType(err, errors.TypeInput):
		return http.StatusBadRequest
	case errors.IsType(err, errors.TypeCapability), errors.IsType(err, errors.TypeNotSupported):
		return http.StatusUnprocessableEntity
	case errors.IsType(err, errors.TypeNotFound):
		return http.StatusNotFound
	case errors.IsType(err, errors.TypeCredentials), errors.IsType(err, errors.TypeNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s.mux.ServeHTTP(w, r)
	s.logger.Debug("request",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Duration("duration", time.Since(start)),
	)
}

// ListenAndServe starts the server and stops it when ctx is done
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Helper functions

func computeInputHash(v interface{}) string {
	data, _ := json.Marshal(v)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func generateRequestID() string {
	return "res-" + uuid.NewString()
}
