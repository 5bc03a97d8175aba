package llm

import (
	"context"
	"errors"
)

// Client abstracts the generative text capability used by the document
// intelligence pipeline.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

var (
	// ErrRateLimited signals upstream throttling; callers should retry later.
	ErrRateLimited = errors.New("llm rate limited")
	// ErrUpstream signals an unavailable provider or a malformed response.
	ErrUpstream = errors.New("llm upstream error")
)

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// Generate returns ErrUpstream; useful for environments without an API key.
func (PlaceholderClient) Generate(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrUpstream
}
