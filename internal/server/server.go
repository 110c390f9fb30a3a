// Package server exposes derived job statuses over HTTP for dashboard
// clients and local tooling.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/grandcanyonsmith/leadmagnet/internal/app"
	"github.com/grandcanyonsmith/leadmagnet/internal/ports"
)

// tenantHeader carries the tenant on every request; the platform fronts
// this service with its own auth, so the header is trusted here.
const tenantHeader = "X-Tenant-ID"

// requestIDHeader carries the request correlation ID.
const requestIDHeader = "X-Request-ID"

// Server serves the status API.
type Server struct {
	service *app.StatusService
	logger  ports.Logger
	router  chi.Router
}

// New creates a Server around the given status service.
func New(service *app.StatusService, logger ports.Logger) *Server {
	s := &Server{
		service: service,
		logger:  logger,
	}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Get("/healthz", s.handleHealth)
	r.Get("/v1/jobs", s.handleListJobs)
	r.Get("/v1/jobs/{jobID}/status", s.handleJobStatus)
	s.router = r

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe runs the server on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// requestID assigns a correlation ID to requests that arrive without one
// and echoes it on the response.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)

		ctx := ports.ContextWithLogger(r.Context(),
			s.logger.With(ports.F("request_id", id)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	tenantID := r.Header.Get(tenantHeader)
	if tenantID == "" {
		s.writeError(w, http.StatusBadRequest, "missing "+tenantHeader+" header")
		return
	}

	jobID := chi.URLParam(r, "jobID")
	report, err := s.service.JobReport(r.Context(), tenantID, jobID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	tenantID := r.Header.Get(tenantHeader)
	if tenantID == "" {
		s.writeError(w, http.StatusBadRequest, "missing "+tenantHeader+" header")
		return
	}

	reports, err := s.service.ListReports(r.Context(), tenantID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{"jobs": reports})
}

// writeServiceError maps source errors to response codes.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ports.ErrJobNotFound):
		s.writeError(w, http.StatusNotFound, "job not found")
	case errors.Is(err, ports.ErrUnauthorized):
		s.writeError(w, http.StatusUnauthorized, "unauthorized")
	default:
		logger := ports.LoggerFromContext(r.Context())
		if logger == nil {
			logger = s.logger
		}
		logger.Error(r.Context(), "status request failed", ports.F("error", err.Error()))
		s.writeError(w, http.StatusBadGateway, "upstream request failed")
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	// The header is already written; an encode failure here has nowhere
	// to go.
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	s.writeJSON(w, code, map[string]string{"error": msg})
}
