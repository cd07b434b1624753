package similarity

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Encoder turns texts into dense vectors, one per text, in input order.
type Encoder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Embedding scores two documents by the cosine of their dense embeddings.
type Embedding struct {
	encoder Encoder
}

// NewEmbedding wraps an already constructed encoder. The encoder is reused across calls.
func NewEmbedding(encoder Encoder) (*Embedding, error) {
	if encoder == nil {
		return nil, errors.New("embedding encoder is required")
	}
	return &Embedding{encoder: encoder}, nil
}

func (e *Embedding) Mode() string {
	return ModeEmbedding
}

func (e *Embedding) Score(ctx context.Context, resume, jd string) (float64, error) {
	if strings.TrimSpace(resume) == "" || strings.TrimSpace(jd) == "" {
		return 0, ErrEmptyVocabulary
	}

	vectors, err := e.encoder.Embed(ctx, []string{resume, jd})
	if err != nil {
		return 0, fmt.Errorf("embed documents: %w", err)
	}

	if len(vectors) != 2 {
		return 0, fmt.Errorf("embed documents: expected 2 vectors, got %d", len(vectors))
	}

	if len(vectors[0]) == 0 || len(vectors[1]) == 0 {
		return 0, errors.New("embed documents: empty embedding returned")
	}

	return Cosine(widen(vectors[0]), widen(vectors[1]))
}

func widen(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
