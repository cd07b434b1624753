package cleaner

import (
	"reflect"
	"strings"
	"testing"
)

type mapLemmatizer map[string]string

func (m mapLemmatizer) Lemma(word string) string {
	if lemma, ok := m[word]; ok {
		return lemma
	}
	return word
}

var testLemmas = mapLemmatizer{
	"engineers": "engineer",
	"running":   "run",
	"built":     "build",
	"founded":   "found",
	"found":     "find",
	"pipelines": "pipeline",
	"doings":    "doing",
	"cats":      "cat",
	"teams":     "team",
}

func TestCleanExample(t *testing.T) {
	t.Parallel()

	c := New(testLemmas)
	got := c.Clean("I am a Software Engineer.")
	if got != "software engineer" {
		t.Fatalf("unexpected cleaned text: %q", got)
	}
}

func TestCleanSteps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "empty", input: "", expect: ""},
		{name: "whitespace only", input: " \n\t ", expect: ""},
		{name: "only stopwords and punctuation", input: "The, and... of!!", expect: ""},
		{name: "lemmatizes", input: "Engineers were running pipelines", expect: "engineer run pipeline"},
		{name: "follows lemma chains", input: "She founded startups", expect: "find startups"},
		{name: "drops lemmas that are stopwords", input: "doings matter", expect: "matter"},
		{name: "curly apostrophes", input: "We don’t stop", expect: "stop"},
		{name: "keeps numbers and dotted words", input: "Go 1.22, Node.js & 3 teams", expect: "go 1.22 node.js 3 team"},
		{name: "invalid utf8", input: "golang \xff\xfe kafka", expect: "golang kafka"},
	}

	c := New(testLemmas)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := c.Clean(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"I am a Software Engineer.",
		"Founded two companies; built data pipelines with Go, Kafka and PostgreSQL!",
		"Skills:\nPython, SQL, Go\n\nExperience:\nLed teams of engineers running ML workloads.",
		"",
	}

	c := New(testLemmas)
	for _, input := range inputs {
		once := c.Clean(input)
		twice := c.Clean(once)
		if once != twice {
			t.Fatalf("clean is not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestNilLemmatizerKeepsTokens(t *testing.T) {
	t.Parallel()

	got := New(nil).Tokens("Running the pipelines")
	want := []string{"running", "pipelines"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtraStopwords(t *testing.T) {
	t.Parallel()

	c := New(nil, "Resume", "cv")
	if got := c.Clean("Resume of a CV wizard"); got != "wizard" {
		t.Fatalf("unexpected cleaned text: %q", got)
	}

	if !c.IsStopword("THE") {
		t.Fatal("expected built-in stopwords to be kept")
	}
}

func TestEnglishStopwords(t *testing.T) {
	t.Parallel()

	words := EnglishStopwords()
	if len(words) != 179 {
		t.Fatalf("expected 179 stopwords, got %d", len(words))
	}
	for _, word := range words {
		if strings.HasPrefix(word, "#") {
			t.Fatalf("comment leaked into stopwords: %q", word)
		}
	}
}

func TestNewEnglish(t *testing.T) {
	if testing.Short() {
		t.Skip("loading the lemma dictionary is slow")
	}

	c, err := NewEnglish()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := c.Clean("I am a Software Engineer.")
	if got != "software engineer" {
		t.Fatalf("unexpected cleaned text: %q", got)
	}

	if again := c.Clean(got); again != got {
		t.Fatalf("expected idempotent cleaning, got %q", again)
	}
}
