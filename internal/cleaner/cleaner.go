// Package cleaner normalizes free text into lemmatized tokens for vectorization.
package cleaner

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/blevesearch/segment"
)

// maxLemmaDepth bounds lemma chains such as "founded" -> "found" -> "find".
const maxLemmaDepth = 4

var apostrophes = strings.NewReplacer("’", "'", "‘", "'", "ʼ", "'")

// Lemmatizer reduces a word to its dictionary base form.
type Lemmatizer interface {
	Lemma(word string) string
}

// Cleaner turns raw text into whitespace-joined lemmas with stopwords and punctuation removed.
// It holds no mutable state and is safe for concurrent use.
type Cleaner struct {
	lemmatizer Lemmatizer
	exclude    map[string]struct{}
}

// New builds a cleaner around the provided lemmatizer. A nil lemmatizer keeps tokens as they are.
// Extra stopwords are added to the built-in English list.
func New(lemmatizer Lemmatizer, extraStopwords ...string) *Cleaner {
	stopwords := append(EnglishStopwords(), extraStopwords...)
	return &Cleaner{
		lemmatizer: lemmatizer,
		exclude:    exclusionSet(stopwords),
	}
}

// NewEnglish loads the English lemma dictionary. Loading takes a while, so
// build the cleaner once and share it.
func NewEnglish(extraStopwords ...string) (*Cleaner, error) {
	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load english lemma dictionary: %w", err)
	}
	return New(lemmatizer, extraStopwords...), nil
}

// Clean runs lowercase, tokenize, exclusion, lemmatization and join.
func (c *Cleaner) Clean(text string) string {
	return strings.Join(c.Tokens(text), " ")
}

// Tokens is Clean without the final join.
func (c *Cleaner) Tokens(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	text = strings.ToLower(text)
	text = strings.ToValidUTF8(text, "�")
	text = apostrophes.Replace(text)

	var out []string
	for _, token := range tokenize(text) {
		if c.excluded(token) || !hasWordRune(token) {
			continue
		}

		lemma := c.lemma(token)
		if c.excluded(lemma) {
			continue
		}
		out = append(out, lemma)
	}

	return out
}

// IsStopword reports whether the word is dropped by the cleaner.
func (c *Cleaner) IsStopword(word string) bool {
	return c.excluded(strings.ToLower(word))
}

func (c *Cleaner) excluded(token string) bool {
	_, ok := c.exclude[token]
	return ok
}

func (c *Cleaner) lemma(token string) string {
	if c.lemmatizer == nil {
		return token
	}

	current := token
	for i := 0; i < maxLemmaDepth; i++ {
		next := strings.ToLower(strings.TrimSpace(c.lemmatizer.Lemma(current)))
		if next == "" || next == current || !isPlainWord(next) {
			return current
		}
		current = next
	}
	return current
}

// tokenize splits text on Unicode word boundaries. Separator segments are
// skipped. If the segmenter fails the rest of the text is split on whitespace.
func tokenize(text string) []string {
	data := []byte(text)
	segmenter := segment.NewWordSegmenterDirect(data)

	var tokens []string
	consumed := 0
	for segmenter.Segment() {
		part := segmenter.Bytes()
		consumed += len(part)
		if segmenter.Type() == segment.None {
			continue
		}
		tokens = append(tokens, string(part))
	}

	if err := segmenter.Err(); err != nil && consumed < len(data) {
		tokens = append(tokens, strings.Fields(string(data[consumed:]))...)
	}

	return tokens
}

func hasWordRune(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}

func isPlainWord(word string) bool {
	for _, r := range word {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			return false
		}
	}
	return word != ""
}
