package similarity

import (
	"context"
	"errors"
	"math"
	"testing"
)

type fakeEncoder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (f *fakeEncoder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = f.vectors[text]
	}
	return out, nil
}

func TestEmbeddingScore(t *testing.T) {
	t.Parallel()

	encoder := &fakeEncoder{vectors: map[string][]float32{
		"golang developer": {1, 0, 1},
		"go engineer":      {1, 0, 0.9},
		"nurse":            {0, 1, 0},
	}}

	scorer, err := NewEmbedding(encoder)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	near, err := scorer.Score(context.Background(), "golang developer", "go engineer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	far, err := scorer.Score(context.Background(), "golang developer", "nurse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if near <= 0.9 {
		t.Fatalf("expected paraphrases to score high without lexical overlap, got %v", near)
	}
	if far != 0 {
		t.Fatalf("expected orthogonal embeddings to score 0, got %v", far)
	}

	back, _ := scorer.Score(context.Background(), "go engineer", "golang developer")
	if math.Abs(back-near) > tolerance {
		t.Fatalf("expected symmetric score, got %v and %v", near, back)
	}

	if encoder.calls != 3 {
		t.Fatalf("expected one encoder call per score, got %d", encoder.calls)
	}
}

func TestEmbeddingEmptyInput(t *testing.T) {
	t.Parallel()

	encoder := &fakeEncoder{}
	scorer, _ := NewEmbedding(encoder)

	if _, err := scorer.Score(context.Background(), " ", "go"); !errors.Is(err, ErrEmptyVocabulary) {
		t.Fatalf("expected ErrEmptyVocabulary, got %v", err)
	}
	if encoder.calls != 0 {
		t.Fatalf("expected encoder not to be called")
	}
}

func TestEmbeddingErrors(t *testing.T) {
	t.Parallel()

	failing := &fakeEncoder{err: errors.New("model unavailable")}
	scorer, _ := NewEmbedding(failing)
	if _, err := scorer.Score(context.Background(), "a", "b"); err == nil {
		t.Fatal("expected encoder error")
	}

	mismatch := &fakeEncoder{vectors: map[string][]float32{"a": {1, 2}, "b": {1, 2, 3}}}
	scorer, _ = NewEmbedding(mismatch)
	if _, err := scorer.Score(context.Background(), "a", "b"); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}

	missing := &fakeEncoder{vectors: map[string][]float32{"a": {1}}}
	scorer, _ = NewEmbedding(missing)
	if _, err := scorer.Score(context.Background(), "a", "b"); err == nil {
		t.Fatal("expected error for empty embedding")
	}

	if _, err := NewEmbedding(nil); err == nil {
		t.Fatal("expected error for nil encoder")
	}
}
