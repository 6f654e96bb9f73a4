package llm

import (
	"context"

	"github.com/sevigo/goframe/llms"

	"github.com/sevigo/a11y-warden/internal/core"
)

// ModelCompleter adapts a single-prompt goframe model to core.Completer.
// These models take no separate system role and no token budget, so the
// system text is prepended to the prompt and MaxTokens is left to the model.
type ModelCompleter struct {
	model llms.Model
}

// NewModelCompleter wraps a goframe model.
func NewModelCompleter(model llms.Model) *ModelCompleter {
	return &ModelCompleter{model: model}
}

// Complete calls the model with the combined prompt.
func (m *ModelCompleter) Complete(ctx context.Context, req core.CompletionRequest) (string, error) {
	text, err := m.model.Call(ctx, singlePrompt(req.System, req.Prompt))
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

func singlePrompt(system, prompt string) string {
	if system == "" {
		return prompt
	}
	return system + "\n\n" + prompt
}
