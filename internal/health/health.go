// Package health provides the plain-HTTP health endpoint used by process
// supervisors. It is independent of the MCP tool surface: a plain GET, no
// protocol-level tool invocation semantics.
package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/giantswarm/mcp-influxdb/internal/influx"
	"github.com/giantswarm/mcp-influxdb/internal/server"
)

// Prober is the connectivity probe the handler depends on. It is satisfied
// by *influx.Client.
type Prober interface {
	TestConnection(ctx context.Context) influx.ConnectionStatus
}

// Handler serves GET /health, reporting 200 when the store is reachable and
// 503 otherwise.
type Handler struct {
	prober Prober
	logger server.Logger
}

// NewHandler creates a health handler backed by the given connectivity probe.
func NewHandler(prober Prober, logger server.Logger) *Handler {
	return &Handler{
		prober: prober,
		logger: logger,
	}
}

// response is the two-key health body; the error detail is attached only on
// failure.
type response struct {
	Status         string `json:"status"`
	InfluxDBStatus string `json:"influxdb_status"`
	Error          string `json:"error,omitempty"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	status := h.prober.TestConnection(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if status.Status == "connected" {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(response{
			Status:         "healthy",
			InfluxDBStatus: "connected",
		})
		return
	}

	h.logger.Warn("Health check failed", "message", status.Message)
	w.WriteHeader(http.StatusServiceUnavailable)
	json.NewEncoder(w).Encode(response{
		Status:         "unhealthy",
		InfluxDBStatus: status.Status,
		Error:          status.Message,
	})
}
