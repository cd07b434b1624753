// Package embedding defines the dense text encoders used by the embedding scoring mode.
package embedding

import (
	"context"
	"errors"
)

const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

// ErrUnavailable marks a model or endpoint that cannot be used at all. It is not retried.
var ErrUnavailable = errors.New("embedding model unavailable")

// Embedder encodes texts into fixed-size vectors, one per text, in input order.
// Implementations are constructed once and reused across calls.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Provider() string
	Model() string
}
