package audit

import "time"

// TopicRequestDenied is the stream topic carrying rate limit denials.
const TopicRequestDenied = "ratelimit.denied"

// RequestDeniedEvent records one request rejected by the rate limiter.
type RequestDeniedEvent struct {
	ID            string    `json:"id"`
	Endpoint      string    `json:"endpoint"`
	ClientIP      string    `json:"clientIp"`
	UserAgent     string    `json:"userAgent,omitempty"`
	Limit         int64     `json:"limit"`
	WindowSeconds int64     `json:"windowSeconds"`
	Count         int64     `json:"count"`
	Instance      string    `json:"instance,omitempty"`
	DeniedAt      time.Time `json:"deniedAt"`
}
