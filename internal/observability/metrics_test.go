package observability

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/x", "200", time.Second)
	m.ObserveLLMRequest("gpt", "200", time.Second)
	m.ObserveCacheLookup("remote", "hit")
	m.ObserveGeneration("base", nil, time.Second)
	m.AddDegradedTopics(2)
	m.ObserveAsset("quiz", "hit", 0)
	m.ObserveURLProbe(true)
	if m.Registry() != nil {
		t.Fatalf("nil metrics should have no registry")
	}
}

func TestMetricsRecordAndExport(t *testing.T) {
	m := NewMetrics()
	m.ObserveCacheLookup("remote", "hit")
	m.ObserveCacheLookup("remote", "hit")
	m.ObserveGeneration("base", errors.New("boom"), time.Second)
	m.AddDegradedTopics(3)

	if got := testutil.ToFloat64(m.cacheLookups.WithLabelValues("remote", "hit")); got != 2 {
		t.Fatalf("cache lookups=%v", got)
	}
	if got := testutil.ToFloat64(m.generations.WithLabelValues("base", "error")); got != 1 {
		t.Fatalf("generations=%v", got)
	}
	if got := testutil.ToFloat64(m.degradedTopics); got != 3 {
		t.Fatalf("degraded=%v", got)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "sotfinder_cache_lookups_total") {
		t.Fatalf("exposition missing cache metric")
	}
}

func TestParseHeaders(t *testing.T) {
	got := ParseHeaders(" a=1, b = 2 ,broken,=x")
	if len(got) != 2 || got["a"] != "1" || got["b"] != "2" {
		t.Fatalf("headers=%v", got)
	}
	if ParseHeaders("") != nil {
		t.Fatalf("expected nil")
	}
}
