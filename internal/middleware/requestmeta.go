package middleware

import (
	"net"

	"github.com/danielgtaylor/huma/v2"
	"github.com/quotagate/quotagate/internal/handlers"
)

// RequestMeta is a middleware that records the caller's identity and user
// agent in the request context for handlers that need them.
func RequestMeta(_ huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		meta := handlers.RequestMeta{
			ClientIP:  PeerIdentity(ctx),
			UserAgent: ctx.Header("User-Agent"),
		}

		newCtx := handlers.ContextWithRequestMeta(ctx.Context(), meta)
		ctx = huma.WithContext(ctx, newCtx)

		next(ctx)
	}
}

// PeerIdentity returns the transport peer address with the port stripped.
// Forwarding headers such as X-Forwarded-For and X-Real-IP are ignored:
// they are caller-controlled, and a forged header must not move a request
// onto another client's quota.
func PeerIdentity(ctx huma.Context) string {
	addr := ctx.RemoteAddr()

	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}

	return host
}
