package handlers

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/quotagate/quotagate/internal/ratelimit"
)

// RegisterRoutes registers the demo endpoints with their per-endpoint rate
// limit policies, plus the usage report.
func RegisterRoutes(api huma.API, demo *DemoHandler, rateInfo *RateInfoHandler) {
	// GET /api/hello - guarded by the default quota
	huma.Register(api, huma.Operation{
		OperationID: "hello",
		Method:      http.MethodGet,
		Path:        "/api/hello",
		Summary:     "Rate limited hello",
		Description: "Returns a greeting. Guarded by the default quota of 60 requests per minute.",
		Tags:        []string{"Demo"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.DefaultPolicy(),
		},
	}, demo.Hello)

	// GET /api/limited - tight quota so denials are easy to provoke
	huma.Register(api, huma.Operation{
		OperationID: "limited",
		Method:      http.MethodGet,
		Path:        "/api/limited",
		Summary:     "Tightly limited hello",
		Description: "Returns a greeting. Guarded by a quota of 5 requests per 30 seconds.",
		Tags:        []string{"Demo"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.Policy{Limit: 5, Window: 30 * time.Second},
		},
	}, demo.Limited)

	// GET /api/unlimited - no policy attached
	huma.Register(api, huma.Operation{
		OperationID: "unlimited",
		Method:      http.MethodGet,
		Path:        "/api/unlimited",
		Summary:     "Unlimited hello",
		Description: "Returns a greeting with no rate limit applied.",
		Tags:        []string{"Demo"},
	}, demo.Unlimited)

	// GET /api/rate-info - usage report, never counted against a quota
	huma.Register(api, huma.Operation{
		OperationID: "rate-info",
		Method:      http.MethodGet,
		Path:        "/api/rate-info",
		Summary:     "Rate limit status",
		Description: "Reports the caller's current usage on every rate limited endpoint.",
		Tags:        []string{"Demo"},
	}, rateInfo.RateInfo)
}
