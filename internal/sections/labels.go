package sections

import (
	"fmt"
	"sort"
	"strings"
)

// Label is a canonical resume section.
type Label string

const (
	LabelContact        Label = "contact"
	LabelObjective      Label = "objective"
	LabelSummary        Label = "summary"
	LabelEducation      Label = "education"
	LabelExperience     Label = "experience"
	LabelSkills         Label = "skills"
	LabelProjects       Label = "projects"
	LabelCertifications Label = "certifications"
	LabelAwards         Label = "awards"
	LabelPublications   Label = "publications"
	LabelReferences     Label = "references"
	LabelInterests      Label = "interests"
)

// Labels lists every canonical label in the order they are usually found on a resume.
var Labels = []Label{
	LabelContact,
	LabelObjective,
	LabelSummary,
	LabelEducation,
	LabelExperience,
	LabelSkills,
	LabelProjects,
	LabelCertifications,
	LabelAwards,
	LabelPublications,
	LabelReferences,
	LabelInterests,
}

var defaultAliases = map[Label][]string{
	LabelContact:   {"Contact Information", "Contact", "Contact Details", "Personal Information"},
	LabelObjective: {"Objective", "Career Objective"},
	LabelSummary:   {"Summary", "Professional Summary", "Profile", "About Me"},
	LabelEducation: {"Education", "Academic Background"},
	LabelExperience: {
		"Experience", "Work Experience", "Professional Experience", "Employment History",
		"Internship Experience", "Volunteer Experience", "Leadership Experience",
		"Research Experience", "Teaching Experience",
	},
	LabelSkills: {
		"Skills", "Technical Skills", "Computer Skills", "Programming Languages",
		"Software Skills", "Soft Skills", "Language Skills", "Professional Skills",
		"Transferable Skills",
	},
	LabelProjects:       {"Projects", "Personal Projects"},
	LabelCertifications: {"Certifications", "Licenses", "Licenses and Certifications"},
	LabelAwards:         {"Awards", "Honors", "Honors and Awards"},
	LabelPublications:   {"Publications"},
	LabelReferences:     {"References"},
	LabelInterests:      {"Interests", "Hobbies"},
}

// headKeywords end a qualified heading such as "Core Skills" or "Relevant Experience".
var headKeywords = map[Label][]string{
	LabelContact:        {"contact"},
	LabelObjective:      {"objective"},
	LabelSummary:        {"summary", "profile"},
	LabelEducation:      {"education"},
	LabelExperience:     {"experience"},
	LabelSkills:         {"skills", "competencies"},
	LabelProjects:       {"projects"},
	LabelCertifications: {"certifications", "licenses"},
	LabelAwards:         {"awards", "honors"},
	LabelPublications:   {"publications"},
	LabelReferences:     {"references"},
	LabelInterests:      {"interests", "hobbies"},
}

// maxQualifiers is how many words may precede a head keyword.
const maxQualifiers = 2

// ParseLabel resolves a canonical label name, case-insensitively.
func ParseLabel(name string) (Label, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, label := range Labels {
		if string(label) == name {
			return label, nil
		}
	}
	return "", fmt.Errorf("unknown section label %q", name)
}

// Aliases maps each label to the heading texts that introduce it.
type Aliases map[Label][]string

// DefaultAliases returns a copy of the built-in heading aliases.
func DefaultAliases() Aliases {
	aliases := make(Aliases, len(defaultAliases))
	for label, names := range defaultAliases {
		aliases[label] = append([]string(nil), names...)
	}
	return aliases
}

// Extend adds extra heading texts to the provided labels. Duplicates are ignored.
func (a Aliases) Extend(extra map[Label][]string) Aliases {
	for label, names := range extra {
		for _, name := range names {
			name = strings.TrimSpace(name)
			if name == "" || a.has(label, name) {
				continue
			}
			a[label] = append(a[label], name)
		}
	}
	return a
}

// Of reports which label a heading text belongs to.
func (a Aliases) Of(heading string) (Label, bool) {
	heading = normalizeHeading(heading)
	for _, label := range Labels {
		for _, name := range a[label] {
			if normalizeHeading(name) == heading {
				return label, true
			}
		}
	}
	return "", false
}

// Resolve reports which label a heading text belongs to. Exact aliases win;
// otherwise a heading of up to two qualifier words ending in a head keyword
// belongs to the label of its first keyword, so "Skills Summary" is skills.
func (a Aliases) Resolve(heading string) (Label, bool) {
	if label, ok := a.Of(heading); ok {
		return label, true
	}

	words := strings.Fields(normalizeHeading(heading))
	if len(words) == 0 || len(words) > maxQualifiers+1 {
		return "", false
	}
	if _, ok := a.keywordLabel(words[len(words)-1]); !ok {
		return "", false
	}

	for _, word := range words {
		if label, ok := a.keywordLabel(word); ok {
			return label, true
		}
	}
	return "", false
}

func (a Aliases) keywordLabel(word string) (Label, bool) {
	for _, label := range Labels {
		if len(a[label]) == 0 {
			continue
		}
		for _, keyword := range headKeywords[label] {
			if keyword == word {
				return label, true
			}
		}
	}
	return "", false
}

// keywords returns the head keywords of every configured label, longest first.
func (a Aliases) keywords() []string {
	var words []string
	for _, label := range Labels {
		if len(a[label]) == 0 {
			continue
		}
		words = append(words, headKeywords[label]...)
	}
	sort.SliceStable(words, func(i, j int) bool {
		return len(words[i]) > len(words[j])
	})
	return words
}

func (a Aliases) has(label Label, name string) bool {
	name = normalizeHeading(name)
	for _, existing := range a[label] {
		if normalizeHeading(existing) == name {
			return true
		}
	}
	return false
}

// all returns every alias, longest first, so longer headings win the regex alternation.
func (a Aliases) all() []string {
	var names []string
	for _, label := range Labels {
		names = append(names, a[label]...)
	}
	sort.SliceStable(names, func(i, j int) bool {
		return len(names[i]) > len(names[j])
	})
	return names
}

func normalizeHeading(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
