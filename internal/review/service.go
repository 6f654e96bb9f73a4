// Package review relays patch batches to the completion service and shapes
// the answer for the caller.
package review

import (
	"context"
	"time"

	"github.com/sevigo/a11y-warden/internal/core"
	"github.com/sevigo/a11y-warden/internal/logger"
	"github.com/sevigo/a11y-warden/internal/prompt"
)

// Options are the per-deployment defaults applied to every request.
type Options struct {
	Provider            string
	DefaultSystemPrompt string
	MaxTokens           int64
	Mode                core.ResponseMode
}

// Service validates requests, composes prompts and calls the completer.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	composer  *prompt.Composer
	completer core.Completer
	opts      Options
}

// NewService creates a review service.
func NewService(composer *prompt.Composer, completer core.Completer, opts Options) *Service {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 4096
	}
	if opts.Mode == "" {
		opts.Mode = core.ResponseRaw
	}
	return &Service{composer: composer, completer: completer, opts: opts}
}

// Analyze runs one review. It returns a *core.ValidationError for a malformed
// request, a *core.UpstreamError when the completion call fails, and never
// calls the completer for an invalid batch. The request is not modified.
func (s *Service) Analyze(ctx context.Context, profile core.Profile, req *core.ReviewRequest) (*core.ReviewResult, error) {
	log := logger.FromContext(ctx)

	if req == nil || req.Patches == nil {
		return nil, core.NewValidationError("patches", "Patches must be provided as an array")
	}

	maxTokens := s.opts.MaxTokens
	if req.MaxTokens != nil {
		if *req.MaxTokens <= 0 {
			return nil, core.NewValidationError("maxTokens", "maxTokens must be a positive number, got %d", *req.MaxTokens)
		}
		maxTokens = *req.MaxTokens
	}

	text, err := s.composer.Build(profile, req.Patches, req.Prompt)
	if err != nil {
		return nil, err
	}

	system := s.systemPrompt(profile, req.SystemPrompt)

	log.Info("requesting completion",
		"profile", profile,
		"provider", s.opts.Provider,
		"patches", len(req.Patches),
		"prompt_chars", len(text),
		"max_tokens", maxTokens,
	)
	start := time.Now()

	completion, err := s.completer.Complete(ctx, core.CompletionRequest{
		System:    system,
		Prompt:    text,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return nil, core.NewUpstreamError(s.opts.Provider, err)
	}

	log.Info("completion received",
		"profile", profile,
		"chars", len(completion),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return Shape(s.opts.Mode, completion, req.Patches), nil
}

// systemPrompt picks the system text for the profile. Accessibility reviews
// always use the accessibility system prompt.
func (s *Service) systemPrompt(profile core.Profile, requested string) string {
	if profile == core.ProfileAccessibility {
		return s.composer.AccessibilitySystem()
	}
	if requested != "" {
		return requested
	}
	return s.opts.DefaultSystemPrompt
}
