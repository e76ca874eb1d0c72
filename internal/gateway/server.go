package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/SebastienMelki/tablegate/internal/observability"
)

// tablesResourcePath is the protected resource served by the gateway.
const tablesResourcePath = "/dynamodb"

// Server is the local gateway HTTP server.
type Server struct {
	cfg        Config
	httpServer *http.Server
	service    *InvokeService
	logger     *slog.Logger
}

// NewServer creates a new local gateway server. metricsHandler is mounted at
// /metrics when non-nil.
func NewServer(
	cfg Config,
	authorizer Authorizer,
	integration Integration,
	metrics *observability.Metrics,
	metricsHandler http.Handler,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:     cfg,
		service: NewInvokeService(cfg, authorizer, integration, logger),
		logger:  logger.With("component", "gateway-server"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{stage}"+tablesResourcePath, s.handleResource)
	mux.HandleFunc("GET /health", s.handleHealth)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}
	mux.HandleFunc("/", s.handleNotFound)

	var handler http.Handler = mux
	handler = StageRateLimit(cfg.RateLimit, metrics)(handler)
	if metrics != nil {
		handler = observability.HTTPMetrics(metrics)(handler)
	}
	handler = RequestID()(handler)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens and serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("starting local gateway",
		"addr", s.cfg.Addr,
		"stage", s.cfg.Stage,
		"method_arn", s.service.MethodArn(http.MethodGet, tablesResourcePath),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleResource(w http.ResponseWriter, r *http.Request) {
	if r.PathValue("stage") != s.cfg.Stage {
		s.handleNotFound(w, r)
		return
	}

	resp, err := s.service.Invoke(r.Context(), Invocation{
		RequestID:    GetRequestID(r.Context()),
		Method:       r.Method,
		ResourcePath: tablesResourcePath,
		Path:         tablesResourcePath,
		Headers:      r.Header,
		Query:        r.URL.Query(),
		SourceIP:     sourceIP(r),
	})
	switch {
	case errors.Is(err, ErrMissingToken):
		writeMessage(w, http.StatusUnauthorized, "message", msgUnauthorized)
		return
	case errors.Is(err, ErrAccessDenied):
		writeMessage(w, http.StatusForbidden, "Message", msgExplicitDeny)
		return
	case errors.Is(err, ErrAuthorizerFailed):
		writeMessage(w, http.StatusInternalServerError, "message", msgInternalError)
		return
	case err != nil:
		writeMessage(w, http.StatusBadGateway, "message", msgInternalError)
		return
	}

	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	for k, vs := range resp.MultiValueHeaders {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	statusCode := resp.StatusCode
	if statusCode == 0 {
		statusCode = http.StatusOK
	}
	w.WriteHeader(statusCode)
	_, _ = w.Write([]byte(resp.Body))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleNotFound answers unknown routes the way API Gateway does.
func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusForbidden, "message", msgMissingAuthTok)
}

// writeMessage writes a single-field JSON error body.
func writeMessage(w http.ResponseWriter, status int, field, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		field: message,
	})
}

func sourceIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
