package chi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/findaid/internal/domain"
	"github.com/kailas-cloud/findaid/internal/domain/search/query"
	"github.com/kailas-cloud/findaid/internal/metrics"
	"github.com/kailas-cloud/findaid/internal/transport/solr"
	findingaiduc "github.com/kailas-cloud/findaid/internal/usecase/findingaid"
	healthuc "github.com/kailas-cloud/findaid/internal/usecase/health"
	searchuc "github.com/kailas-cloud/findaid/internal/usecase/search"
)

// ErrorCode is the machine-readable code of an error response.
type ErrorCode string

// Error codes returned by the API.
const (
	CodeBadRequest              ErrorCode = "bad_request"
	CodeMalformedDocument       ErrorCode = "malformed_document"
	CodeDocumentTooLarge        ErrorCode = "document_too_large"
	CodeSearchEngineUnavailable ErrorCode = "search_engine_unavailable"
	CodeInternalError           ErrorCode = "internal_error"
)

// ErrorResponse is the JSON body of every non-engine error.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// HealthResponse is the JSON body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// ExplainResponse is the JSON body of GET /search/explain.
type ExplainResponse struct {
	Query string `json:"query"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves finding-aid parsing and search over HTTP.
type Server struct {
	ingest        *findingaiduc.Service
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	ingest *findingaiduc.Service,
	search *searchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		ingest: ingest,
		search: search,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		engineErrorHandler,
		sentinelHandler(domain.ErrMalformedDocument, http.StatusBadRequest, CodeMalformedDocument),
		sentinelHandler(domain.ErrDocumentTooLarge, http.StatusRequestEntityTooLarge, CodeDocumentTooLarge),
		sentinelHandler(domain.ErrSearchEngineUnavailable, http.StatusBadGateway, CodeSearchEngineUnavailable),
	}
	return s
}

// RouterOptions configures the middleware stack built by Router.
type RouterOptions struct {
	CORSOrigins []string
}

// Router builds the chi router with the full middleware stack.
func (s *Server) Router(opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(s.logger))
	r.Use(corsMiddleware(opts.CORSOrigins))
	r.Use(metrics.Middleware("/metrics"))

	r.Post("/finding-aids/parse", s.ParseFindingAid)
	r.Route("/search", func(r chi.Router) {
		r.Get("/", s.Search)
		r.Get("/display", s.SearchDisplay)
		r.Get("/explain", s.ExplainSearch)
	})
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeBadRequest, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeBadRequest, "method not allowed")
	})
	return r
}

// ParseFindingAid handles POST /finding-aids/parse.
func (s *Server) ParseFindingAid(w http.ResponseWriter, r *http.Request) {
	repository := r.URL.Query().Get("repository")
	filename := r.URL.Query().Get("filename")
	if repository == "" || filename == "" {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "repository and filename are required")
		return
	}

	body := r.Body
	if limit := s.ingest.MaxBytes(); limit > 0 {
		body = http.MaxBytesReader(w, r.Body, limit)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			s.handleDomainError(w, domain.ErrDocumentTooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, CodeBadRequest, "failed to read request body")
		return
	}

	rec, err := s.ingest.Ingest(r.Context(), findingaiduc.Upload{
		Repository: repository,
		Filename:   filename,
		Data:       data,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// Search handles GET /search with the full projection.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	s.runSearch(w, r, false)
}

// SearchDisplay handles GET /search/display with the front-end projection.
func (s *Server) SearchDisplay(w http.ResponseWriter, r *http.Request) {
	s.runSearch(w, r, true)
}

func (s *Server) runSearch(w http.ResponseWriter, r *http.Request, frontend bool) {
	params := query.ParseParams(r.URL.RawQuery)

	docs, err := s.search.Search(r.Context(), params, frontend)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, docs)
}

// ExplainSearch handles GET /search/explain.
func (s *Server) ExplainSearch(w http.ResponseWriter, r *http.Request) {
	params := query.ParseParams(r.URL.RawQuery)
	frontend := r.URL.Query().Get("frontend") == "true"

	writeJSON(w, http.StatusOK, ExplainResponse{Query: s.search.Explain(params, frontend)})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrMalformedDocument,
		domain.ErrDocumentTooLarge,
		domain.ErrSearchEngine,
		domain.ErrSearchEngineUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// engineErrorHandler relays the search engine's error payload as the response body.
func engineErrorHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrSearchEngine) {
		return false
	}
	var ee *solr.EngineError
	if !errors.As(err, &ee) || len(ee.Payload) == 0 {
		writeError(w, http.StatusBadRequest, CodeBadRequest, msg)
		return true
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_, _ = w.Write(ee.Payload)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
