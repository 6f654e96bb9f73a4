// Package core defines the essential interfaces and data structures that form the
// backbone of the application. These components are designed to be abstract,
// allowing the relay, the prompt composer and the completion adapters to stay
// decoupled from each other.
package core

import (
	"context"
)

// Completer defines the contract for a remote text-completion service.
// Implementations issue exactly one request per call and never retry.
//
//go:generate mockgen -source=completer.go -destination=../../mocks/mock_completer.go -package=mocks
type Completer interface {
	// Complete sends the request and returns the generated text verbatim.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionRequest is the provider-neutral form of one completion call.
type CompletionRequest struct {
	System    string // system-role instructions, may be empty
	Prompt    string // the sole user message
	MaxTokens int64  // output-token budget
}
