package api

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics
var (
	opsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "paypeer_operations_total",
		Help: "Simulator operations processed, labeled by outcome",
	}, []string{"operation", "outcome"})

	opDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "paypeer_operation_duration_seconds",
		Help:    "Latency distribution of simulator operations",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
	}, []string{"operation"})
)

// Every operation answers HTTP 200 with a boolean status field named for
// the operation; failure is the flag plus a message, never a transport
// error. Agents driving the simulator check the flag, not the code.

func (h *Handler) ok(w http.ResponseWriter, op, statusKey string, payload map[string]any) {
	opsTotal.WithLabelValues(op, "ok").Inc()
	body := map[string]any{statusKey: true}
	for k, v := range payload {
		body[k] = v
	}
	respondWithJSON(w, http.StatusOK, body)
}

// fail folds a typed service error into the operation's failure shape.
// The payload carries the operation's zero-value fields so callers always
// see the same keys.
func (h *Handler) fail(w http.ResponseWriter, op, statusKey string, err error, payload map[string]any) {
	opsTotal.WithLabelValues(op, "failed").Inc()
	body := map[string]any{statusKey: false, "message": err.Error()}
	for k, v := range payload {
		body[k] = v
	}
	respondWithJSON(w, http.StatusOK, body)
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}
