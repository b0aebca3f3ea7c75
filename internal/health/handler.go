package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/redis/go-redis/v9"
)

// Checker defines the interface for checking a dependency's health.
type Checker interface {
	Ping(ctx context.Context) error
}

// RedisChecker adapts redis.Client to Checker interface.
type RedisChecker struct {
	client *redis.Client
}

// NewRedisChecker creates a new Redis health checker.
func NewRedisChecker(client *redis.Client) *RedisChecker {
	return &RedisChecker{client: client}
}

// Ping checks Redis connectivity.
func (r *RedisChecker) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Handler handles health check operations.
type Handler struct {
	eventStream Checker
}

// NewHandler creates a new health handler. The checker probes the broker
// that carries denial events.
func NewHandler(eventStream Checker) *Handler {
	return &Handler{eventStream: eventStream}
}

// Response is the response for health check endpoint.
type Response struct {
	Body struct {
		Status      string `json:"status"`
		EventStream string `json:"eventStream"`
	}
}

// Check performs a health check of the application and its dependencies.
// Rate limiting itself stays available either way, so a broken event
// stream only degrades the status.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	resp := &Response{}
	resp.Body.Status = "ok"

	if err := h.eventStream.Ping(ctx); err != nil {
		resp.Body.EventStream = "unhealthy"
		resp.Body.Status = "degraded"
	} else {
		resp.Body.EventStream = "healthy"
	}

	return resp, nil
}

// RegisterRoutes registers health check routes.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Get(api, "/health", h.Check)
}
