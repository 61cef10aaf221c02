package handlers

import (
	"context"
	"net/http"
	"time"

	"roomledger/internal/caching"
	"roomledger/internal/services"

	"github.com/labstack/echo/v4"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlers handles health check and monitoring endpoints
type HealthHandlers struct {
	db      Pinger
	cache   caching.CacheService
	storage services.StorageService
	bucket  string
	version string
	started time.Time
}

// NewHealthHandlers creates a new health handlers instance. cache and
// storage may be nil when those backends are not configured.
func NewHealthHandlers(db Pinger, cache caching.CacheService, storage services.StorageService, bucket, version string) *HealthHandlers {
	return &HealthHandlers{
		db:      db,
		cache:   cache,
		storage: storage,
		bucket:  bucket,
		version: version,
		started: time.Now(),
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Uptime    string            `json:"uptime"`
	Version   string            `json:"version"`
}

const checkTimeout = 2 * time.Second

// HealthCheck reports each backend; any unhealthy one degrades the
// response to 206.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), checkTimeout)
	defer cancel()

	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
		Version:   h.version,
		Uptime:    time.Since(h.started).Round(time.Second).String(),
	}

	record := func(name string, configured bool, check func(context.Context) error) {
		switch {
		case !configured:
			health.Services[name] = "disabled"
		case check(ctx) != nil:
			health.Services[name] = "unhealthy"
			health.Status = "degraded"
		default:
			health.Services[name] = "healthy"
		}
	}

	record("database", true, h.db.Ping)
	record("redis", h.cache != nil, func(ctx context.Context) error { return h.cache.Ping(ctx) })
	record("storage", h.storage != nil, func(ctx context.Context) error { return h.storage.Ping(ctx, h.bucket) })

	statusCode := http.StatusOK
	if health.Status == "degraded" {
		statusCode = http.StatusPartialContent
	}
	return c.JSON(statusCode, health)
}

// ReadinessCheck determines if the application is ready to serve traffic
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), checkTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "not_ready",
			"message": "Database unavailable",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ready",
		"message": "All systems operational",
	})
}

// LivenessCheck determines if the application is running (basic liveness probe)
func (h *HealthHandlers) LivenessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "alive",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthHandlers) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.HealthCheck)
	e.GET("/health/ready", h.ReadinessCheck)
	e.GET("/health/live", h.LivenessCheck)
}
