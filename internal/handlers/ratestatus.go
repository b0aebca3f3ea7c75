package handlers

import (
	"context"

	"github.com/quotagate/quotagate/internal/ratelimit"
)

// RateInfoHandler reports per-endpoint quota usage for the calling client.
type RateInfoHandler struct {
	reporter *ratelimit.Reporter
}

// NewRateInfoHandler creates a new rate info handler.
func NewRateInfoHandler(reporter *ratelimit.Reporter) *RateInfoHandler {
	return &RateInfoHandler{reporter: reporter}
}

// RateInfo builds the usage report for the caller. Reading the report never
// consumes quota.
func (h *RateInfoHandler) RateInfo(ctx context.Context, _ *struct{}) (*RateInfoResponse, error) {
	meta := RequestMetaFromContext(ctx)

	statuses := h.reporter.Report(ctx, meta.ClientIP)

	limits := make(map[string]EndpointLimit, len(statuses))
	for _, status := range statuses {
		limits[status.Endpoint] = EndpointLimit{
			Description:       status.Description,
			Limit:             status.Limit,
			TimeWindowSeconds: status.WindowSeconds,
			Current:           status.Count,
			Remaining:         status.Remaining,
			ResetsInSeconds:   status.ResetSeconds,
		}
	}

	resp := &RateInfoResponse{}
	resp.Body.IP = meta.ClientIP
	resp.Body.Limits = limits

	if len(limits) == 0 {
		resp.Body.Message = "No rate limits are currently active for this IP address"
	}

	return resp, nil
}
