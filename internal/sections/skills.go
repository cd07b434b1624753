package sections

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"
)

var skillSeparators = regexp.MustCompile(`[:,\-]`)

// SkillSet is a deduplicated set of lowercased skill names.
type SkillSet map[string]struct{}

// NewSkillSet builds a set from the provided names.
func NewSkillSet(skills ...string) SkillSet {
	set := make(SkillSet, len(skills))
	for _, skill := range skills {
		set.Add(skill)
	}
	return set
}

// Add normalizes the skill name and inserts it. Empty names are ignored.
func (s SkillSet) Add(skill string) {
	skill = NormalizeSkill(skill)
	if skill == "" {
		return
	}
	s[skill] = struct{}{}
}

// Contains reports whether the normalized skill is in the set.
func (s SkillSet) Contains(skill string) bool {
	_, ok := s[NormalizeSkill(skill)]
	return ok
}

func (s SkillSet) Len() int {
	return len(s)
}

// Sorted returns the skills in lexical order.
func (s SkillSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for skill := range s {
		out = append(out, skill)
	}
	sort.Strings(out)
	return out
}

// String joins the sorted skills with spaces, the form fed to the cleaner.
func (s SkillSet) String() string {
	return strings.Join(s.Sorted(), " ")
}

func (s SkillSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *SkillSet) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*s = NewSkillSet(items...)
	return nil
}

// NormalizeSkill lowercases the name and collapses inner whitespace.
func NormalizeSkill(skill string) string {
	return strings.ToLower(strings.Join(strings.Fields(skill), " "))
}
