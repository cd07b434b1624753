// Package skills matches text against a reference list of known skills.
package skills

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/spigell/ats-matcher/internal/sections"
)

// ErrMissingResource is returned when the reference list cannot be found.
var ErrMissingResource = errors.New("missing resource")

// Reference is an immutable list of skills, each stored as its normalized phrase.
type Reference struct {
	skills []string
}

// New builds a reference from skill names. Duplicates and blanks are dropped.
func New(names ...string) *Reference {
	set := sections.NewSkillSet()
	for _, name := range names {
		if phrase := phrase(name); phrase != "" {
			set.Add(phrase)
		}
	}
	return &Reference{skills: set.Sorted()}
}

// Load reads one skill per line. Blank lines and lines starting with # are skipped.
func Load(path string) (*Reference, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: skills file %s", ErrMissingResource, path)
		}
		return nil, fmt.Errorf("open skills file: %w", err)
	}
	defer f.Close()

	return read(f)
}

func read(r io.Reader) (*Reference, error) {
	var names []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read skills file: %w", err)
	}

	return New(names...), nil
}

func (r *Reference) Len() int {
	if r == nil {
		return 0
	}
	return len(r.skills)
}

// Skills returns the reference list in sorted order.
func (r *Reference) Skills() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.skills...)
}

// Match returns the reference skills mentioned in text, sorted.
func (r *Reference) Match(text string) []string {
	if r.Len() == 0 {
		return nil
	}

	haystack := newHaystack(text)

	var found []string
	for _, skill := range r.skills {
		if haystack.contains(skill) {
			found = append(found, skill)
		}
	}
	return found
}

// Missing returns the reference skills the job description mentions that the resume does not.
func (r *Reference) Missing(resumeText, jdText string) []string {
	resume := newHaystack(resumeText)

	var missing []string
	for _, skill := range r.Match(jdText) {
		if !resume.contains(skill) {
			missing = append(missing, skill)
		}
	}
	return missing
}

// Overlap returns the resume skills that the job description mentions, sorted.
func Overlap(resumeSkills sections.SkillSet, jdText string) []string {
	if resumeSkills.Len() == 0 {
		return nil
	}

	jd := newHaystack(jdText)

	var common []string
	for _, skill := range resumeSkills.Sorted() {
		if p := phrase(skill); p != "" && jd.contains(p) {
			common = append(common, skill)
		}
	}
	return common
}

// haystack is a space-padded token sequence so phrases match on word boundaries only.
type haystack string

func newHaystack(text string) haystack {
	tokens := words(text)
	if len(tokens) == 0 {
		return ""
	}
	return haystack(" " + strings.Join(tokens, " ") + " ")
}

func (h haystack) contains(phrase string) bool {
	return h != "" && strings.Contains(string(h), " "+phrase+" ")
}

func phrase(name string) string {
	return strings.Join(words(name), " ")
}

// words lowercases text and splits it into tokens. Characters common in
// technology names (c++, c#, node.js) stay inside the token.
func words(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#' && r != '.'
	})

	out := fields[:0]
	for _, f := range fields {
		if f = strings.Trim(f, "."); f != "" {
			out = append(out, f)
		}
	}
	return out
}
