package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/quotagate/quotagate/internal/audit"
	"github.com/quotagate/quotagate/internal/messaging"
	"github.com/quotagate/quotagate/internal/ratelimit"
	"go.uber.org/zap"
)

// IdentityFunc derives the rate limit identity for a request.
type IdentityFunc func(ctx huma.Context) string

// RateLimiter returns a Huma middleware enforcing the policies attached to
// operation metadata under ratelimit.MetadataKey. Operations without a
// policy pass through unguarded.
//
// A nil identity falls back to PeerIdentity. A nil publishDenied disables
// denial events.
func RateLimiter(
	api huma.API,
	gate *ratelimit.Gate,
	identity IdentityFunc,
	publishDenied messaging.Publish[audit.RequestDeniedEvent],
	logger *zap.Logger,
) func(ctx huma.Context, next func(huma.Context)) {
	if identity == nil {
		identity = PeerIdentity
	}

	return func(ctx huma.Context, next func(huma.Context)) {
		op := ctx.Operation()

		policy, ok := ratelimit.PolicyFromOperation(op)
		if !ok {
			next(ctx)

			return
		}

		policy.Description = policy.Describe(operationName(op))

		who := identity(ctx)
		decision := gate.Check(ctx.Context(), who, op.Path, policy)

		if decision.Allowed {
			next(ctx)

			return
		}

		logger.Warn("rate limit exceeded",
			zap.String("endpoint", op.Path),
			zap.String("method", ctx.Method()),
			zap.String("identity", who),
			zap.Int64("count", decision.Count),
			zap.Int64("limit", decision.Limit),
		)

		if publishDenied != nil {
			event := &audit.RequestDeniedEvent{
				Endpoint:      op.Path,
				ClientIP:      who,
				UserAgent:     ctx.Header("User-Agent"),
				Limit:         decision.Limit,
				WindowSeconds: policy.WindowSeconds(),
				Count:         decision.Count,
			}

			if err := publishDenied(event); err != nil {
				logger.Error("failed to publish denial event",
					zap.String("endpoint", op.Path),
					zap.Error(err),
				)
			}
		}

		writeDenied(api, ctx, decision)
	}
}

// writeDenied responds with 429 and the standard rate limit headers.
func writeDenied(api huma.API, ctx huma.Context, decision ratelimit.Decision) {
	retryAfter := int64(time.Until(decision.ResetAt).Seconds())
	if retryAfter < 1 {
		retryAfter = 1
	}

	ctx.SetHeader("Retry-After", strconv.FormatInt(retryAfter, 10))
	ctx.SetHeader("X-RateLimit-Limit", strconv.FormatInt(decision.Limit, 10))
	ctx.SetHeader("X-RateLimit-Remaining", strconv.FormatInt(decision.Remaining, 10))

	_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests, "Rate limit exceeded. Try again later.")
}

// operationName returns the name used in synthesized policy descriptions.
func operationName(op *huma.Operation) string {
	if op.OperationID != "" {
		return op.OperationID
	}

	return op.Path
}
