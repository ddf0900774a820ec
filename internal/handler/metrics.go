package handler

import (
	"fmt"
	"net/http"

	"github.com/recetario/recetario/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "recetario_users_registered_total %d\n", snap.UsersRegistered)
	writeMetric(w, "recetario_logins_total{result=\"success\"} %d\n", snap.LoginsSucceeded)
	writeMetric(w, "recetario_logins_total{result=\"failure\"} %d\n", snap.LoginsFailed)

	writeMetric(w, "recetario_pantry_items_added_total %d\n", snap.PantryItemsAdded)
	writeMetric(w, "recetario_pantry_items_removed_total %d\n", snap.PantryItemsRemoved)
	writeMetric(w, "recetario_feedback_batches_total %d\n", snap.FeedbackBatches)

	writeMetric(w, "recetario_recipe_cache_hits_total %d\n", snap.RecipeCacheHits)
	writeMetric(w, "recetario_recipe_cache_misses_total %d\n", snap.RecipeCacheMisses)
	writeMetric(w, "recetario_recipes_created_total %d\n", snap.RecipesCreated)
	writeMetric(w, "recetario_recipes_updated_total %d\n", snap.RecipesUpdated)
	writeMetric(w, "recetario_recipes_deleted_total %d\n", snap.RecipesDeleted)

	writeMetric(w, "recetario_rate_limited_total %d\n", snap.RateLimited)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
