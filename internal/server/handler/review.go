package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/sevigo/a11y-warden/internal/core"
	"github.com/sevigo/a11y-warden/internal/logger"
)

// ReviewIDHeader carries the id the relay logs a review under.
const ReviewIDHeader = "X-Review-ID"

// Analyzer runs one review for a profile.
type Analyzer interface {
	Analyze(ctx context.Context, profile core.Profile, req *core.ReviewRequest) (*core.ReviewResult, error)
}

// ReviewHandler serves the analyze endpoints for one profile.
type ReviewHandler struct {
	analyzer Analyzer
	profile  core.Profile
	policy   ErrorPolicy
	logger   *slog.Logger
}

// NewReviewHandler creates a handler bound to a review profile.
func NewReviewHandler(analyzer Analyzer, profile core.Profile, policy ErrorPolicy, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		analyzer: analyzer,
		profile:  profile,
		policy:   policy,
		logger:   logger,
	}
}

// Handle decodes the request body, runs the review and writes the envelope.
func (h *ReviewHandler) Handle(w http.ResponseWriter, r *http.Request) {
	reviewID := uuid.NewString()
	log := h.logger.With(
		"review_id", reviewID,
		"request_id", middleware.GetReqID(r.Context()),
		"profile", h.profile,
	)
	w.Header().Set(ReviewIDHeader, reviewID)

	req, err := decodeReviewRequest(r)
	if err != nil {
		h.policy.writeError(w, log, err)
		return
	}

	res, err := h.analyzer.Analyze(logger.WithContext(r.Context(), log), h.profile, req)
	if err != nil {
		h.policy.writeError(w, log, err)
		return
	}

	log.Debug("review relayed", "patches", len(req.Patches))
	writeJSON(w, http.StatusOK, res)
}

// reviewBody mirrors core.ReviewRequest but keeps patches raw so a
// non-array value can be told apart from a malformed one.
type reviewBody struct {
	Patches      json.RawMessage `json:"patches"`
	Prompt       string          `json:"prompt"`
	SystemPrompt string          `json:"systemPrompt"`
	MaxTokens    *int64          `json:"maxTokens"`
}

func decodeReviewRequest(r *http.Request) (*core.ReviewRequest, error) {
	var body reviewBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, core.NewValidationError("body", "request body exceeds %d bytes", maxErr.Limit)
		}
		return nil, core.NewValidationError("body", "invalid JSON body: %v", err)
	}

	raw := bytes.TrimSpace(body.Patches)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, core.NewValidationError("patches", "Patches must be provided as an array")
	}

	var patches []core.Patch
	if err := json.Unmarshal(raw, &patches); err != nil {
		return nil, core.NewValidationError("patches", "invalid patches: %v", err)
	}

	return &core.ReviewRequest{
		Patches:      patches,
		Prompt:       body.Prompt,
		SystemPrompt: body.SystemPrompt,
		MaxTokens:    body.MaxTokens,
	}, nil
}
