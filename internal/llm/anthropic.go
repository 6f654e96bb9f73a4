package llm

import (
	"context"
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/sevigo/a11y-warden/internal/core"
)

// ErrEmptyCompletion is returned when the provider answers without any text.
var ErrEmptyCompletion = errors.New("empty completion")

// messageCreator is the subset of the Anthropic messages service the completer uses.
type messageCreator interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// AnthropicCompleter implements core.Completer on the Anthropic Messages API.
type AnthropicCompleter struct {
	messages messageCreator
	model    anthropic.Model
}

// NewAnthropicCompleter creates a completer for the given model.
// An empty apiKey is accepted; requests will then fail upstream with an auth error.
func NewAnthropicCompleter(apiKey, model string) *AnthropicCompleter {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicCompleter{messages: &client.Messages, model: anthropic.Model(model)}
}

// Complete sends the prompt as the sole user message.
func (a *AnthropicCompleter) Complete(ctx context.Context, req core.CompletionRequest) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: req.MaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	resp, err := a.messages.New(ctx, params)
	if err != nil {
		return "", err
	}

	for _, block := range resp.Content {
		if block.Text != "" {
			return block.Text, nil
		}
	}
	return "", ErrEmptyCompletion
}
