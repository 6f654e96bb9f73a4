package llm

import (
	"context"
	_ "embed"

	"github.com/sevigo/a11y-warden/internal/core"
)

//go:embed fixtures/accessibility_review.md
var fixtureReview string

// FixtureCompleter returns a canned review and never touches the network.
type FixtureCompleter struct {
	response string
}

// NewFixtureCompleter returns a completer answering with the embedded fixture.
func NewFixtureCompleter() *FixtureCompleter {
	return &FixtureCompleter{response: fixtureReview}
}

// Complete returns the canned response unless the context is already done.
func (f *FixtureCompleter) Complete(ctx context.Context, _ core.CompletionRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return f.response, nil
}

// FixtureResponse exposes the canned text for callers that need to compare against it.
func FixtureResponse() string {
	return fixtureReview
}
