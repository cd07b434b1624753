package sections

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`(?:\+\d{1,2}\s?)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}\b`)
	linkPattern  = regexp.MustCompile(`(?i)\b(?:https?://|www\.)[^\s<>()]+|\b(?:linkedin\.com|github\.com)/[^\s<>()]+`)
)

// Contact holds the contact details found anywhere in a resume.
type Contact struct {
	Emails []string `json:"emails,omitempty"`
	Phones []string `json:"phones,omitempty"`
	Links  []string `json:"links,omitempty"`
}

// IsEmpty reports whether no contact detail was found.
func (c Contact) IsEmpty() bool {
	return len(c.Emails) == 0 && len(c.Phones) == 0 && len(c.Links) == 0
}

// ExtractContact finds emails, phone numbers and profile links in order of appearance.
func ExtractContact(text string) Contact {
	links := emailFree(linkPattern.FindAllString(text, -1))
	for i, link := range links {
		links[i] = strings.TrimRight(link, ".,;:")
	}

	return Contact{
		Emails: unique(emailPattern.FindAllString(text, -1)),
		Phones: unique(trimAll(phonePattern.FindAllString(text, -1))),
		Links:  unique(links),
	}
}

func emailFree(links []string) []string {
	out := links[:0]
	for _, link := range links {
		if strings.Contains(link, "@") {
			continue
		}
		out = append(out, link)
	}
	return out
}

func trimAll(values []string) []string {
	for i, v := range values {
		values[i] = strings.TrimSpace(v)
	}
	return values
}

func unique(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
