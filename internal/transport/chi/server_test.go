package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/hotelsearch/internal/domain"
	"github.com/kailas-cloud/hotelsearch/internal/repository/history"
	"github.com/kailas-cloud/hotelsearch/internal/usecase/analytics"
	"github.com/kailas-cloud/hotelsearch/internal/usecase/deepsearch"
	healthuc "github.com/kailas-cloud/hotelsearch/internal/usecase/health"
	"github.com/kailas-cloud/hotelsearch/internal/usecase/suggest"
)

type stubExecutor struct {
	executeFn  func(ctx context.Context, prompt string) domain.LayerResult
	generateFn func(ctx context.Context, prompt string) (string, error)
}

func (s *stubExecutor) Execute(ctx context.Context, prompt string) domain.LayerResult {
	return s.executeFn(ctx, prompt)
}

func (s *stubExecutor) Generate(ctx context.Context, prompt string) (string, error) {
	return s.generateFn(ctx, prompt)
}

type stubChecker struct {
	name string
	err  error
}

func (s *stubChecker) HealthCheck(_ context.Context) error { return s.err }
func (s *stubChecker) Name() string                        { return s.name }

type testEnv struct {
	handler http.Handler
	store   *history.MemoryStore
}

func newTestEnv(exec *stubExecutor, checkers ...healthuc.ProviderChecker) *testEnv {
	logger := zap.NewNop()
	store := history.NewMemoryStore(100)

	searchSvc := deepsearch.New(exec, store, logger)
	suggestSvc := suggest.New(exec, logger)
	analyticsSvc := analytics.New(store, map[string]bool{"groq": true, "gemini": false}, logger)
	healthSvc := healthuc.New(store, checkers...)

	server := NewServer(searchSvc, suggestSvc, analyticsSvc, healthSvc, logger)

	r := chi.NewRouter()
	server.Routes(r)
	return &testEnv{handler: r, store: store}
}

func successExecutor() *stubExecutor {
	return &stubExecutor{
		executeFn: func(_ context.Context, _ string) domain.LayerResult {
			return domain.LayerResult{
				Status:       domain.StatusSuccess,
				Summary:      "found it",
				TotalMatches: 1,
			}
		},
		generateFn: func(_ context.Context, _ string) (string, error) {
			return "combined analysis", nil
		},
	}
}

func TestDeepSearch(t *testing.T) {
	env := newTestEnv(successExecutor())

	body := strings.NewReader(`{"query": "booking room 101"}`)
	req := httptest.NewRequest("POST", "/deep-search", body)
	rr := httptest.NewRecorder()
	env.handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rr.Code, rr.Body.String())
	}

	var resp deepSearchResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != domain.StatusSuccess {
		t.Errorf("status = %q, want success", resp.Status)
	}
	if resp.Query != "booking room 101" {
		t.Errorf("query = %q", resp.Query)
	}
	if len(resp.Results) != len(domain.Layers()) {
		t.Errorf("got %d layer results, want %d", len(resp.Results), len(domain.Layers()))
	}
	if resp.Synthesis != "combined analysis" {
		t.Errorf("synthesis = %q", resp.Synthesis)
	}
	if resp.Timestamp.IsZero() {
		t.Error("timestamp must be set")
	}
	if resp.ProcessingTime < 0 {
		t.Errorf("processing_time = %f", resp.ProcessingTime)
	}
}

func TestDeepSearch_EmptyQuery_400(t *testing.T) {
	env := newTestEnv(successExecutor())

	body := strings.NewReader(`{"query": "   "}`)
	req := httptest.NewRequest("POST", "/deep-search", body)
	rr := httptest.NewRecorder()
	env.handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}

	var errResp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Code != codeValidationFailed {
		t.Errorf("error code = %q, want %q", errResp.Code, codeValidationFailed)
	}
}

func TestDeepSearch_InvalidBody_400(t *testing.T) {
	env := newTestEnv(successExecutor())

	req := httptest.NewRequest("POST", "/deep-search", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	env.handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestDeepSearch_AllLayersFail_StatusError(t *testing.T) {
	exec := &stubExecutor{
		executeFn: func(_ context.Context, _ string) domain.LayerResult {
			return domain.LayerResult{Status: domain.StatusError, Error: "all providers failed"}
		},
		generateFn: func(_ context.Context, _ string) (string, error) {
			return "", errors.New("all providers failed")
		},
	}
	env := newTestEnv(exec)

	body := strings.NewReader(`{"query": "anything"}`)
	req := httptest.NewRequest("POST", "/deep-search", body)
	rr := httptest.NewRecorder()
	env.handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp deepSearchResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != domain.StatusError {
		t.Errorf("status = %q, want error", resp.Status)
	}
	if !strings.HasPrefix(resp.Synthesis, "error:") {
		t.Errorf("synthesis = %q, want error prefix", resp.Synthesis)
	}
}

func TestSearchLayer(t *testing.T) {
	env := newTestEnv(successExecutor())

	req := httptest.NewRequest("GET", "/search-layer/booking?query=room+101", http.NoBody)
	rr := httptest.NewRecorder()
	env.handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rr.Code, rr.Body.String())
	}

	var resp layerSearchResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Layer != domain.LayerBooking {
		t.Errorf("layer = %q, want booking", resp.Layer)
	}
	if resp.Query != "room 101" {
		t.Errorf("query = %q", resp.Query)
	}
	if resp.Result.Status != domain.StatusSuccess {
		t.Errorf("result status = %q", resp.Result.Status)
	}
}

func TestSearchLayer_UnknownLayer_400(t *testing.T) {
	env := newTestEnv(successExecutor())

	req := httptest.NewRequest("GET", "/search-layer/inventory?query=x", http.NoBody)
	rr := httptest.NewRecorder()
	env.handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}

	var errResp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Code != codeUnknownLayer {
		t.Errorf("error code = %q, want %q", errResp.Code, codeUnknownLayer)
	}
}

func TestSearchLayer_MissingQuery_400(t *testing.T) {
	env := newTestEnv(successExecutor())

	req := httptest.NewRequest("GET", "/search-layer/staff", http.NoBody)
	rr := httptest.NewRecorder()
	env.handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestSearchSuggestions(t *testing.T) {
	exec := successExecutor()
	exec.generateFn = func(_ context.Context, _ string) (string, error) {
		return `{"suggestions": ["room 101 booking", "room 101 status"]}`, nil
	}
	env := newTestEnv(exec)

	req := httptest.NewRequest("GET", "/search-suggestions?query=room+101", http.NoBody)
	rr := httptest.NewRecorder()
	env.handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp map[string][]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp["suggestions"]) != 2 {
		t.Errorf("suggestions = %v", resp["suggestions"])
	}
}

func TestSearchSuggestions_EmptyQuery(t *testing.T) {
	env := newTestEnv(successExecutor())

	req := httptest.NewRequest("GET", "/search-suggestions", http.NoBody)
	rr := httptest.NewRecorder()
	env.handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp map[string][]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp["suggestions"]) != 0 {
		t.Errorf("suggestions = %v, want empty", resp["suggestions"])
	}
}

func TestAnalytics_CountsSearches(t *testing.T) {
	env := newTestEnv(successExecutor())

	body := strings.NewReader(`{"query": "staff schedule"}`)
	req := httptest.NewRequest("POST", "/deep-search", body)
	env.handler.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest("GET", "/analytics", http.NoBody)
	rr := httptest.NewRecorder()
	env.handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp map[string]analytics.Report
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	system := resp["system"]
	if system.SearchCount != 1 {
		t.Errorf("search_count = %d, want 1", system.SearchCount)
	}
	if system.LastSearch == nil || system.LastSearch.Query != "staff schedule" {
		t.Errorf("unexpected last search: %+v", system.LastSearch)
	}
	if system.Providers["groq"] != analytics.ProviderConfigured {
		t.Errorf("groq = %q", system.Providers["groq"])
	}
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(successExecutor(), &stubChecker{name: "groq"})

	req := httptest.NewRequest("GET", "/health", http.NoBody)
	rr := httptest.NewRecorder()
	env.handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
}

func TestHealthCheck_Degraded_503(t *testing.T) {
	env := newTestEnv(successExecutor(), &stubChecker{name: "groq", err: errors.New("down")})

	req := httptest.NewRequest("GET", "/health", http.NoBody)
	rr := httptest.NewRecorder()
	env.handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rr.Code)
	}
}

func TestRoot(t *testing.T) {
	env := newTestEnv(successExecutor())

	req := httptest.NewRequest("GET", "/", http.NoBody)
	rr := httptest.NewRecorder()
	env.handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["docs"] != "/docs" {
		t.Errorf("docs = %q", resp["docs"])
	}
}

func TestDocs(t *testing.T) {
	env := newTestEnv(successExecutor())

	req := httptest.NewRequest("GET", "/docs", http.NoBody)
	rr := httptest.NewRecorder()
	env.handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q, want text/html", ct)
	}
	if !strings.Contains(rr.Body.String(), "/deep-search") {
		t.Error("docs page must list the deep-search endpoint")
	}
}

func TestOverallStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []domain.Status
		want     domain.Status
	}{
		{"all success", []domain.Status{domain.StatusSuccess, domain.StatusSuccess}, domain.StatusSuccess},
		{"mixed", []domain.Status{domain.StatusSuccess, domain.StatusError}, domain.StatusPartial},
		{"all errored", []domain.Status{domain.StatusError, domain.StatusError}, domain.StatusError},
		{"parsed counts as success", []domain.Status{domain.StatusParsed}, domain.StatusSuccess},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			results := make(map[domain.Layer]domain.LayerResult)
			for i, st := range tc.statuses {
				results[domain.Layers()[i]] = domain.LayerResult{Status: st}
			}
			if got := overallStatus(results); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}
