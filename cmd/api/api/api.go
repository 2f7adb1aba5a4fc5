package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/submitty/dockerdash/cmd/api/config"
	"github.com/submitty/dockerdash/lib/logger"
	"github.com/submitty/dockerdash/lib/otel"
	"github.com/submitty/dockerdash/lib/snapshot"
)

// ApiService serves the admin Docker dashboard.
type ApiService struct {
	Config  *config.Config
	Source  snapshot.Source
	Metrics *otel.InventoryMetrics
	Tracer  trace.Tracer
}

// New creates a new ApiService. metrics may be nil.
func New(
	config *config.Config,
	source snapshot.Source,
	metrics *otel.InventoryMetrics,
	tracer trace.Tracer,
) *ApiService {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}
	return &ApiService{
		Config:  config,
		Source:  source,
		Metrics: metrics,
		Tracer:  tracer,
	}
}

// Routes mounts the service's handlers on r. Admin routes are wrapped in
// adminMiddleware when given.
func (s *ApiService) Routes(r chi.Router, adminMiddleware ...func(http.Handler) http.Handler) {
	r.Get("/healthz", s.Healthz)

	r.Route("/admin/docker", func(r chi.Router) {
		r.Use(adminMiddleware...)
		r.Get("/", s.GetDocker)
		r.Get("/workers/{name}", s.GetWorker)
	})
}

// Healthz reports liveness.
func (s *ApiService) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

// Error is the JSON body of every non-2xx API response.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).ErrorContext(r.Context(), "encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code string, err error) {
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logger.FromContext(r.Context()).Log(r.Context(), level, "request failed", "code", code, "error", err)
	writeJSON(w, r, status, Error{Code: code, Message: err.Error()})
}
