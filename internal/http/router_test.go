package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	httpH "github.com/yungbote/sotfinder-backend/internal/http/handlers"
	"github.com/yungbote/sotfinder-backend/internal/observability"
	"github.com/yungbote/sotfinder-backend/internal/pkg/logger"
)

func init() { gin.SetMode(gin.TestMode) }

func newTestRouter() *gin.Engine {
	return NewRouter(RouterConfig{
		Log:                logger.Nop(),
		Metrics:            observability.NewMetrics(),
		CORSOrigins:        []string{"https://sotfinder.dev"},
		HealthHandler:      httpH.NewHealthHandler(),
		LLMProxyHandler:    httpH.NewLLMProxyHandler(logger.Nop(), httpH.LLMProxyConfig{}, nil),
		ConfigProxyHandler: httpH.NewConfigProxyHandler(logger.Nop(), "", nil),
	})
}

func preflight(r http.Handler, path, origin, method string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodOptions, path, nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", method)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRouterOpenCORSOnPublicEndpoints(t *testing.T) {
	r := newTestRouter()
	rec := preflight(r, "/api/url-validator", "https://elsewhere.example", http.MethodPost)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("url-validator preflight: want allow-origin *, got %q (status %d)", got, rec.Code)
	}
}

func TestRouterStrictCORSElsewhere(t *testing.T) {
	r := newTestRouter()
	rec := preflight(r, "/api/llm-proxy", "https://sotfinder.dev", http.MethodPost)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://sotfinder.dev" {
		t.Fatalf("allowed origin: got %q (status %d)", got, rec.Code)
	}
	rec = preflight(r, "/api/llm-proxy", "https://elsewhere.example", http.MethodPost)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("disallowed origin: want 403, got %d", rec.Code)
	}
}

func TestRouterHealthAndMetrics(t *testing.T) {
	r := newTestRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthcheck: got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "sotfinder_api_requests_total") {
		t.Fatalf("metrics: got %d", rec.Code)
	}
}

func TestRouterSkipsNilHandlers(t *testing.T) {
	r := newTestRouter()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/feedback", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("feedback without handler: want 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/curriculum-config", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("config proxy without upstream: want 500, got %d", rec.Code)
	}
}
