package server

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/adfharrison1/employees-api/pkg/api"
	"github.com/adfharrison1/employees-api/pkg/domain"
)

// Server holds references to the store, router, etc.
type Server struct {
	router         *mux.Router
	handler        http.Handler
	logger         *zap.Logger
	allowedOrigins []string
}

type Option func(*Server)

// WithAllowedOrigins restricts CORS to the given origins; "*" allows any
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) {
		s.allowedOrigins = origins
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new instance of Server.
func NewServer(store domain.EmployeeStore, opts ...Option) *Server {
	s := &Server{
		router:         mux.NewRouter(),
		logger:         zap.NewNop(),
		allowedOrigins: []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}

	// Define HTTP routes
	api.NewHandler(store, s.logger).RegisterRoutes(s.router)
	s.router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	s.router.Use(requestIDMiddleware, s.requestLoggerMiddleware, metricsMiddleware)

	// Customize NotFoundHandler to log 404s
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Warn("No route found", zap.String("method", r.Method), zap.String("path", r.URL.Path))
		http.NotFound(w, r)
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Warn("Method not allowed", zap.String("method", r.Method), zap.String("path", r.URL.Path))
		api.WriteJSONError(w, http.StatusMethodNotAllowed, r.Method+" is not supported on "+r.URL.Path)
	})

	s.handler = handlers.CORS(
		handlers.AllowedOrigins(s.allowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Accept", api.RequestIDHeader}),
		handlers.ExposedHeaders([]string{api.RequestIDHeader}),
	)(s.router)

	return s
}

// Router exposes the router wrapped with CORS handling.
func (s *Server) Router() http.Handler {
	return s.handler
}
