package cleaner

import (
	_ "embed"
	"strings"
)

//go:embed stopwords_en.txt
var englishStopwords string

// punctuation mirrors the ASCII punctuation characters.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// EnglishStopwords returns the built-in English stopword list.
func EnglishStopwords() []string {
	var words []string
	for _, line := range strings.Split(englishStopwords, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return words
}

func exclusionSet(stopwords []string) map[string]struct{} {
	set := make(map[string]struct{}, len(stopwords)+len(punctuation))
	for _, word := range stopwords {
		word = strings.ToLower(strings.TrimSpace(word))
		if word != "" {
			set[word] = struct{}{}
		}
	}
	for _, r := range punctuation {
		set[string(r)] = struct{}{}
	}
	return set
}
