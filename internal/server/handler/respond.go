// Package handler provides HTTP handlers for the review relay.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/sevigo/a11y-warden/internal/core"
)

// ErrorPolicy controls how failures are rendered to the caller.
type ErrorPolicy struct {
	// StrictStatusCodes maps validation errors to 400 and upstream errors to
	// 502. Without it every failure is a 500.
	StrictStatusCodes bool
	// IncludeStack adds a stack trace to error envelopes. The trace is the
	// one recorded where the error was created when the error carries one,
	// otherwise the handler's own stack.
	IncludeStack bool
}

type stackTracer interface {
	Stack() string
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// statusFor returns the HTTP status for err under the policy.
func (p ErrorPolicy) statusFor(err error) int {
	if !p.StrictStatusCodes {
		return http.StatusInternalServerError
	}
	var validationErr *core.ValidationError
	var upstreamErr *core.UpstreamError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &upstreamErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (p ErrorPolicy) writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := p.statusFor(err)
	logger.Error("review request failed", "error", err, "status", status)

	res := core.ReviewResult{Success: false, Error: err.Error()}
	if p.IncludeStack {
		res.Stack = stackOf(err)
	}
	writeJSON(w, status, res)
}

func stackOf(err error) string {
	var st stackTracer
	if errors.As(err, &st) {
		if stack := st.Stack(); stack != "" {
			return stack
		}
	}
	return string(debug.Stack())
}
