// internal/handlers/health.go
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/dukahub/duka-be/internal/core/ports"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	blob      ports.BlobStore
	version   string
	env       string
	logger    *slog.Logger
	startTime time.Time
}

// HealthStatus represents the health of the application and its store.
type HealthStatus struct {
	Status      string                 `json:"status"`
	Version     string                 `json:"version"`
	Environment string                 `json:"environment"`
	Uptime      string                 `json:"uptime"`
	Timestamp   time.Time              `json:"timestamp"`
	Services    map[string]ServiceInfo `json:"services"`
	System      SystemInfo             `json:"system"`
}

// ServiceInfo represents the status of a dependency.
type ServiceInfo struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time,omitempty"`
	Error        string `json:"error,omitempty"`
}

// SystemInfo reports runtime statistics.
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	MemAllocMB   uint64 `json:"mem_alloc_mb"`
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(blob ports.BlobStore, version, env string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		blob:      blob,
		version:   version,
		env:       env,
		logger:    logger.With(slog.String("handler", "health")),
		startTime: time.Now(),
	}
}

// Health handles GET /health (liveness).
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(h.logger, w, http.StatusOK, h.buildStatus(r.Context(), false))
}

// Readiness handles GET /health/ready. It fails when the blob store is
// unreachable, since every mutation needs it for persistence.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	status := h.buildStatus(r.Context(), true)

	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	respondJSON(h.logger, w, code, status)
}

func (h *HealthHandler) buildStatus(ctx context.Context, checkStore bool) HealthStatus {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	status := HealthStatus{
		Status:      "healthy",
		Version:     h.version,
		Environment: h.env,
		Uptime:      time.Since(h.startTime).Round(time.Second).String(),
		Timestamp:   time.Now().UTC(),
		Services:    make(map[string]ServiceInfo),
		System: SystemInfo{
			GoVersion:    runtime.Version(),
			NumGoroutine: runtime.NumGoroutine(),
			MemAllocMB:   mem.Alloc / 1024 / 1024,
		},
	}

	if checkStore {
		start := time.Now()
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		info := ServiceInfo{Status: "healthy"}
		if err := h.blob.Ping(pingCtx); err != nil {
			info = ServiceInfo{Status: "unhealthy", Error: err.Error()}
			status.Status = "degraded"
		}
		info.ResponseTime = time.Since(start).String()
		status.Services["store"] = info
	}

	return status
}
