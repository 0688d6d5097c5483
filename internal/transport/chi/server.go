package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/hotelsearch/internal/domain"
	"github.com/kailas-cloud/hotelsearch/internal/usecase/analytics"
	"github.com/kailas-cloud/hotelsearch/internal/usecase/deepsearch"
	healthuc "github.com/kailas-cloud/hotelsearch/internal/usecase/health"
	"github.com/kailas-cloud/hotelsearch/internal/usecase/suggest"
	"github.com/kailas-cloud/hotelsearch/internal/version"
)

// Error codes returned in the error envelope.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeUnknownLayer     = "unknown_layer"
	codeProviderError    = "provider_error"
	codeInternalError    = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the deep-search API over HTTP.
type Server struct {
	search        *deepsearch.Service
	suggestions   *suggest.Service
	analytics     *analytics.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *deepsearch.Service,
	suggestions *suggest.Service,
	analyticsSvc *analytics.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:      search,
		suggestions: suggestions,
		analytics:   analyticsSvc,
		health:      health,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrUnknownLayer, http.StatusBadRequest, codeUnknownLayer),
		sentinelHandler(domain.ErrAllProvidersFailed, http.StatusBadGateway, codeProviderError),
		sentinelHandler(domain.ErrProviderError, http.StatusBadGateway, codeProviderError),
	}
	return s
}

// Routes registers all endpoints on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.Root)
	r.Post("/deep-search", s.DeepSearch)
	r.Get("/search-layer/{layer}", s.SearchLayer)
	r.Get("/search-suggestions", s.SearchSuggestions)
	r.Get("/analytics", s.Analytics)
	r.Get("/health", s.HealthCheck)
	r.Get("/docs", s.Docs)
	r.Get("/metrics", s.Metrics)
}

type deepSearchRequest struct {
	Query string `json:"query"`
}

type deepSearchResponse struct {
	Status         domain.Status                       `json:"status"`
	Query          string                              `json:"query"`
	Results        map[domain.Layer]domain.LayerResult `json:"results"`
	Synthesis      string                              `json:"synthesis"`
	Timestamp      time.Time                           `json:"timestamp"`
	ProcessingTime float64                             `json:"processing_time"`
}

// DeepSearch handles POST /deep-search.
func (s *Server) DeepSearch(w http.ResponseWriter, r *http.Request) {
	var req deepSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		s.handleDomainError(w, domain.ErrEmptyQuery)
		return
	}

	start := time.Now()
	result := s.search.DeepSearch(r.Context(), query)

	writeJSON(w, http.StatusOK, deepSearchResponse{
		Status:         overallStatus(result.Results),
		Query:          result.Query,
		Results:        result.Results,
		Synthesis:      result.Synthesis,
		Timestamp:      result.Timestamp,
		ProcessingTime: time.Since(start).Seconds(),
	})
}

type layerSearchResponse struct {
	Layer     domain.Layer       `json:"layer"`
	Query     string             `json:"query"`
	Result    domain.LayerResult `json:"result"`
	Timestamp time.Time          `json:"timestamp"`
}

// SearchLayer handles GET /search-layer/{layer}.
func (s *Server) SearchLayer(w http.ResponseWriter, r *http.Request) {
	layer, err := domain.ParseLayer(chi.URLParam(r, "layer"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		s.handleDomainError(w, domain.ErrEmptyQuery)
		return
	}

	result := s.search.SearchLayer(r.Context(), layer, query)

	writeJSON(w, http.StatusOK, layerSearchResponse{
		Layer:     layer,
		Query:     query,
		Result:    result,
		Timestamp: time.Now().UTC(),
	})
}

// SearchSuggestions handles GET /search-suggestions.
func (s *Server) SearchSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions := s.suggestions.Suggest(r.Context(), r.URL.Query().Get("query"))

	writeJSON(w, http.StatusOK, map[string][]string{
		"suggestions": suggestions,
	})
}

// Analytics handles GET /analytics.
func (s *Server) Analytics(w http.ResponseWriter, r *http.Request) {
	report := s.analytics.GetReport(r.Context())

	writeJSON(w, http.StatusOK, map[string]analytics.Report{
		"system": report,
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Root handles GET /. Returns service info.
func (s *Server) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Hotel Deep Search API",
		"version": version.Version,
		"docs":    "/docs",
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// overallStatus reports success unless every layer errored.
func overallStatus(results map[domain.Layer]domain.LayerResult) domain.Status {
	errored := 0
	for _, res := range results {
		if res.Status == domain.StatusError {
			errored++
		}
	}
	if len(results) > 0 && errored == len(results) {
		return domain.StatusError
	}
	if errored > 0 {
		return domain.StatusPartial
	}
	return domain.StatusSuccess
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrEmptyQuery,
		domain.ErrUnknownLayer,
		domain.ErrAllProvidersFailed,
		domain.ErrProviderError,
		domain.ErrHistoryUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
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
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
