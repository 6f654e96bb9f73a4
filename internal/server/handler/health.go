package handler

import (
	"net/http"
	"time"
)

type healthResponse struct {
	Status              string    `json:"status"`
	Timestamp           time.Time `json:"timestamp"`
	AnthropicConfigured bool      `json:"anthropicConfigured"`
}

// HealthHandler reports liveness and whether a completion credential is set.
type HealthHandler struct {
	anthropicConfigured bool
	now                 func() time.Time
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(anthropicConfigured bool) *HealthHandler {
	return &HealthHandler{anthropicConfigured: anthropicConfigured, now: time.Now}
}

// Handle always answers 200.
func (h *HealthHandler) Handle(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:              "ok",
		Timestamp:           h.now().UTC(),
		AnthropicConfigured: h.anthropicConfigured,
	})
}
