// Package similarity scores how related a resume is to a job description.
package similarity

import (
	"context"
	"errors"
	"math"
)

const (
	ModeLexical   = "lexical"
	ModeEmbedding = "embedding"
)

var (
	// ErrEmptyVocabulary is returned when a document has no terms left to compare.
	ErrEmptyVocabulary = errors.New("cannot compute similarity: insufficient text for comparison")
	// ErrDimensionMismatch is returned when two embeddings have different sizes.
	ErrDimensionMismatch = errors.New("cannot compute similarity: embedding dimensions differ")
)

// Scorer compares a resume-derived text with a job-description-derived text.
type Scorer interface {
	Score(ctx context.Context, resume, jd string) (float64, error)
	Mode() string
}

// Cosine returns the cosine of the angle between a and b, or 0 when either has zero norm.
func Cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return clamp(dot / (math.Sqrt(normA) * math.Sqrt(normB))), nil
}

// Percent converts a score into a percentage rounded to two decimals.
func Percent(score float64) float64 {
	return math.Round(score*100*100) / 100
}

func clamp(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	default:
		return v
	}
}
