package similarity

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Weighting selects how term counts become vector components.
type Weighting string

const (
	WeightingCount Weighting = "count"
	WeightingTFIDF Weighting = "tfidf"
)

// Lexical scores two documents by the cosine of their term vectors.
// The vocabulary comes only from the two documents being compared.
type Lexical struct {
	weighting Weighting
}

// NewLexical returns a lexical scorer. An empty weighting means raw counts.
func NewLexical(weighting Weighting) (*Lexical, error) {
	switch weighting {
	case "":
		weighting = WeightingCount
	case WeightingCount, WeightingTFIDF:
	default:
		return nil, fmt.Errorf("unknown lexical weighting %q", weighting)
	}
	return &Lexical{weighting: weighting}, nil
}

func (l *Lexical) Mode() string {
	return ModeLexical
}

func (l *Lexical) Weighting() Weighting {
	return l.weighting
}

// Score expects cleaned, whitespace-separated texts.
func (l *Lexical) Score(ctx context.Context, resume, jd string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	vectors, err := l.Vectorize(resume, jd)
	if err != nil {
		return 0, err
	}

	return Cosine(vectors[0], vectors[1])
}

// Vectorize builds the document-term matrix for the given documents,
// one row per document, columns ordered by sorted vocabulary.
func (l *Lexical) Vectorize(docs ...string) ([][]float64, error) {
	counts := make([]map[string]float64, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		counts[i] = termCounts(doc)
		if len(counts[i]) == 0 {
			return nil, ErrEmptyVocabulary
		}
		for term := range counts[i] {
			df[term]++
		}
	}

	vocabulary := make([]string, 0, len(df))
	for term := range df {
		vocabulary = append(vocabulary, term)
	}
	sort.Strings(vocabulary)

	n := float64(len(docs))
	matrix := make([][]float64, len(docs))
	for i := range docs {
		row := make([]float64, len(vocabulary))
		for j, term := range vocabulary {
			tf := counts[i][term]
			if tf == 0 {
				continue
			}
			if l.weighting == WeightingTFIDF {
				tf *= smoothIDF(n, float64(df[term]))
			}
			row[j] = tf
		}
		matrix[i] = row
	}

	return matrix, nil
}

// smoothIDF is ln((1+n)/(1+df)) + 1, so no term gets a zero weight.
func smoothIDF(n, df float64) float64 {
	return math.Log((1+n)/(1+df)) + 1
}

func termCounts(doc string) map[string]float64 {
	counts := make(map[string]float64)
	for _, term := range strings.Fields(strings.ToLower(doc)) {
		counts[term]++
	}
	return counts
}
