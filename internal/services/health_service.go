package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"emcli/internal/catalog"
)

// HealthService reports process and dependency health.
type HealthService struct {
	version   string
	catalog   *catalog.Catalog
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Uptime    string                 `json:"uptime"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthService creates a new health service
func NewHealthService(version string, cat *catalog.Catalog, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		catalog:   cat,
		startTime: time.Now(),
		logger:    logger.With(slog.String("service", "health")),
	}
}

// HealthCheck reports overall health including the catalog connection.
func (s *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   s.version,
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Runtime: map[string]interface{}{
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
			"os":         runtime.GOOS,
			"arch":       runtime.GOARCH,
		},
		Services: map[string]interface{}{},
	}

	catalogHealth := ServiceHealth{Status: "healthy"}
	if s.catalog == nil {
		catalogHealth = ServiceHealth{Status: "disabled", Message: "no catalog configured"}
	} else if err := s.catalog.Ping(ctx); err != nil {
		catalogHealth = ServiceHealth{Status: "unhealthy", Message: err.Error()}
		status.Status = "degraded"
		s.logger.WarnContext(ctx, "catalog health check failed", slog.String("error", err.Error()))
	}
	status.Services["catalog"] = catalogHealth

	return status
}

// Version returns version metadata for GET /api/version.
func (s *HealthService) Version() map[string]string {
	return map[string]string{
		"version":    s.version,
		"go_version": runtime.Version(),
	}
}
