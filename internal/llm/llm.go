package llm

import (
	"context"
	"errors"
)

// CompletionRequest captures one chat-completion call. Each analysis mode
// supplies its own sampling parameters.
type CompletionRequest struct {
	Prompt      string
	Temperature float32
	MaxTokens   int
}

// Client abstracts chat-completion providers.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// ErrMissingAPIKey indicates the provider credential is not configured.
// It is checked per-request so a key rotated into the environment is picked
// up without a restart.
var ErrMissingAPIKey = errors.New("llm api key missing")

// ErrUpstreamTimeout indicates the provider did not answer within the
// configured deadline. It is distinct from generic provider failure so the
// caller can surface a different message.
var ErrUpstreamTimeout = errors.New("llm upstream timeout")
