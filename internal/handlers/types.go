package handlers

// MessageResponse is the response body shared by the demo endpoints.
type MessageResponse struct {
	Body struct {
		Message string `doc:"Greeting describing the endpoint's quota" example:"Hello! This endpoint is not rate limited." json:"message"`
	}
}

// EndpointLimit describes one guarded endpoint's quota and the caller's
// current usage of it.
type EndpointLimit struct {
	Description       string `doc:"Human readable policy summary" example:"hello (limit: 60 requests per minute)" json:"description"`
	Limit             int64  `doc:"Requests allowed per window"   example:"60"                                    json:"limit"`
	TimeWindowSeconds int64  `doc:"Window length in seconds"      example:"60"                                    json:"timeWindowSeconds"`
	Current           int64  `doc:"Requests counted this window"  example:"3"                                     json:"current"`
	Remaining         int64  `doc:"Requests left before denial"   example:"57"                                    json:"remaining"`
	ResetsInSeconds   int64  `doc:"Seconds until the window ends" example:"42"                                    json:"resetsInSeconds"`
}

// RateInfoResponse reports the caller's standing on every guarded endpoint.
type RateInfoResponse struct {
	Body struct {
		IP      string                   `doc:"Client address the report applies to" example:"192.0.2.1" json:"ip"`
		Limits  map[string]EndpointLimit `doc:"Guarded endpoints keyed by path"                          json:"limits"`
		Message string                   `doc:"Present when no endpoints are guarded"                    json:"message,omitempty"`
	}
}
