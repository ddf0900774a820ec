package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/recetario/recetario/internal/metrics"
)

func TestMetricsHandler(t *testing.T) {
	recorder := metrics.NewInMemory()
	recorder.IncLoginSucceeded()
	recorder.IncLoginFailed()
	recorder.IncLoginFailed()
	recorder.IncPantryItemAdded()

	rec := httptest.NewRecorder()
	NewMetricsHandler(recorder).Metrics(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("unexpected Content-Type %s", ct)
	}

	body := rec.Body.String()
	for _, line := range []string{
		`recetario_logins_total{result="success"} 1`,
		`recetario_logins_total{result="failure"} 2`,
		`recetario_pantry_items_added_total 1`,
		`recetario_rate_limited_total 0`,
	} {
		if !strings.Contains(body, line+"\n") {
			t.Errorf("missing %q in:\n%s", line, body)
		}
	}
}

func TestMetricsHandler_NoSnapshotter(t *testing.T) {
	rec := httptest.NewRecorder()
	NewMetricsHandler(nil).Metrics(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}
}
