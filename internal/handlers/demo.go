package handlers

import (
	"context"
)

// DemoHandler serves the demonstration endpoints the rate limiter guards.
type DemoHandler struct{}

// NewDemoHandler creates a new demo handler.
func NewDemoHandler() *DemoHandler {
	return &DemoHandler{}
}

func (h *DemoHandler) Hello(_ context.Context, _ *struct{}) (*MessageResponse, error) {
	resp := &MessageResponse{}
	resp.Body.Message = "Hello! This endpoint is rate limited to 60 requests per minute."

	return resp, nil
}

func (h *DemoHandler) Limited(_ context.Context, _ *struct{}) (*MessageResponse, error) {
	resp := &MessageResponse{}
	resp.Body.Message = "Hello! This endpoint is rate limited to 5 requests per 30 seconds."

	return resp, nil
}

func (h *DemoHandler) Unlimited(_ context.Context, _ *struct{}) (*MessageResponse, error) {
	resp := &MessageResponse{}
	resp.Body.Message = "Hello! This endpoint is not rate limited."

	return resp, nil
}
