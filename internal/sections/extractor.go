package sections

import (
	"fmt"
	"regexp"
	"strings"
)

// Boundary decides where a section body ends.
type Boundary string

const (
	// BoundaryNextHeading ends a section at the next heading of another label.
	BoundaryNextHeading Boundary = "next-heading"
	// BoundaryBlankLine ends a section at its first blank line.
	BoundaryBlankLine Boundary = "blank-line"
)

var blankLine = regexp.MustCompile(`\n[ \t]*\r?\n`)

// qualifier is a capitalised word in front of a head keyword, as in "Key Skills".
const qualifier = `(?-i:[A-Z][\w&/]*)`

// Resume holds the fields derived from a resume text.
type Resume struct {
	Text       string   `json:"-"`
	Skills     string   `json:"skills_section"`
	Experience string   `json:"experience_section"`
	SkillSet   SkillSet `json:"skills"`
	Contact    Contact  `json:"contact"`
}

// Extractor locates resume sections by their headings.
// It is immutable after construction and safe for concurrent use.
type Extractor struct {
	aliases  Aliases
	boundary Boundary
	heading  *regexp.Regexp
}

type heading struct {
	label Label
	start int
	end   int
}

// NewExtractor compiles the heading matcher for the provided aliases.
func NewExtractor(aliases Aliases, boundary Boundary) (*Extractor, error) {
	switch boundary {
	case "":
		boundary = BoundaryNextHeading
	case BoundaryNextHeading, BoundaryBlankLine:
	default:
		return nil, fmt.Errorf("unknown section boundary %q", boundary)
	}

	if len(aliases) == 0 {
		aliases = DefaultAliases()
	}

	names := aliases.all()
	if len(names) == 0 {
		return nil, fmt.Errorf("no section headings configured")
	}

	alternatives := make([]string, 0, len(names))
	for _, name := range names {
		words := strings.Fields(name)
		for i, word := range words {
			words[i] = regexp.QuoteMeta(word)
		}
		alternatives = append(alternatives, strings.Join(words, `[ \t]+`))
	}

	if keywords := aliases.keywords(); len(keywords) > 0 {
		for i, keyword := range keywords {
			keywords[i] = regexp.QuoteMeta(keyword)
		}
		alternatives = append(alternatives,
			fmt.Sprintf(`(?:%s[ \t]+){1,%d}(?:%s)`, qualifier, maxQualifiers, strings.Join(keywords, "|")))
	}

	pattern := `(?im)^[ \t]*[#*]*[ \t]*(` + strings.Join(alternatives, "|") + `)[ \t]*\**[ \t]*(?::|\r?$)`
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile section headings: %w", err)
	}

	return &Extractor{aliases: aliases, boundary: boundary, heading: re}, nil
}

// Default returns an extractor with the built-in aliases and next-heading boundaries.
func Default() *Extractor {
	e, err := NewExtractor(DefaultAliases(), BoundaryNextHeading)
	if err != nil {
		panic(err)
	}
	return e
}

// Boundary returns the configured boundary policy.
func (e *Extractor) Boundary() Boundary {
	return e.boundary
}

// Extract returns the body of the first section introduced by label, or an
// empty string when the resume has no such heading.
func (e *Extractor) Extract(text string, label Label) string {
	heads := e.headings(text)
	for i, head := range heads {
		if head.label != label {
			continue
		}

		end := len(text)
		for _, next := range heads[i+1:] {
			if next.label != label {
				end = next.start
				break
			}
		}

		body := text[head.end:end]
		if e.boundary == BoundaryBlankLine {
			body = cutAtBlankLine(body)
		}

		return strings.TrimSpace(body)
	}

	return ""
}

// ExtractExperience returns the experience section body.
func (e *Extractor) ExtractExperience(text string) string {
	return e.Extract(text, LabelExperience)
}

// ExtractSkills splits the skills section into a set of skill names.
// Lines are split on ':', ',' and '-'. A skills sub-heading that opens a line,
// such as "Programming Languages:", is dropped; the same words inside a list are kept.
func (e *Extractor) ExtractSkills(text string) SkillSet {
	return e.skillsFromSection(e.Extract(text, LabelSkills))
}

// Parse extracts every supported field from the resume text.
func (e *Extractor) Parse(text string) *Resume {
	skills := e.Extract(text, LabelSkills)
	return &Resume{
		Text:       text,
		Skills:     skills,
		Experience: e.ExtractExperience(text),
		SkillSet:   e.skillsFromSection(skills),
		Contact:    ExtractContact(text),
	}
}

func (e *Extractor) skillsFromSection(section string) SkillSet {
	set := NewSkillSet()
	if section == "" {
		return set
	}

	for _, line := range strings.Split(section, "\n") {
		if m := e.heading.FindStringSubmatchIndex(line); m != nil {
			if label, ok := e.aliases.Resolve(line[m[2]:m[3]]); ok && label == LabelSkills {
				line = line[m[1]:]
			}
		}

		for _, token := range skillSeparators.Split(line, -1) {
			token = strings.Trim(token, " \t\r*•·")
			if token == "" {
				continue
			}
			set.Add(token)
		}
	}

	return set
}

func (e *Extractor) headings(text string) []heading {
	matches := e.heading.FindAllStringSubmatchIndex(text, -1)
	heads := make([]heading, 0, len(matches))
	for _, m := range matches {
		label, ok := e.aliases.Resolve(text[m[2]:m[3]])
		if !ok {
			continue
		}
		heads = append(heads, heading{label: label, start: m[0], end: m[1]})
	}
	return heads
}

func cutAtBlankLine(body string) string {
	trimmed := strings.TrimLeft(body, " \t\r\n")
	if loc := blankLine.FindStringIndex(trimmed); loc != nil {
		return trimmed[:loc[0]]
	}
	return trimmed
}
