package sections

import (
	"reflect"
	"strings"
	"testing"
)

const sampleResume = `Jane Doe
jane.doe@example.com | +1 (555) 123-4567 | https://github.com/janedoe

Summary
Backend engineer focused on data pipelines.

Skills:
Python, SQL, Go
Programming Languages: Java - Kotlin

Work Experience
Acme Corp, Senior Engineer
Built streaming ingestion in Go.

Led migration to PostgreSQL.

Education
BSc Computer Science
`

func TestExtractSkillsExample(t *testing.T) {
	t.Parallel()

	text := "Skills:\nPython, SQL, Go\n\nExperience:\n..."
	got := Default().ExtractSkills(text).Sorted()
	want := []string{"go", "python", "sql"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtractSkillsCaseInsensitiveAndDeduplicated(t *testing.T) {
	t.Parallel()

	text := "SKILLS:\n  Python ,python, SQL,, Go  \n- Docker\n"
	got := Default().ExtractSkills(text).Sorted()
	want := []string{"docker", "go", "python", "sql"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtractSkillsDropsSubHeadings(t *testing.T) {
	t.Parallel()

	got := Default().ExtractSkills(sampleResume).Sorted()
	want := []string{"go", "java", "kotlin", "python", "sql"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtractSkillsKeepsAliasListItems(t *testing.T) {
	t.Parallel()

	text := "Skills:\nPython, Soft Skills, SQL\nProgramming Languages: Go\nTechnical Skills\nRust\n\nEducation\nBSc"
	got := Default().ExtractSkills(text).Sorted()
	want := []string{"go", "python", "rust", "soft skills", "sql"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtractQualifiedHeadings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		label  Label
		expect string
	}{
		{name: "key skills", text: "Key Skills:\nPython, SQL\n\nEducation\nBSc", label: LabelSkills, expect: "Python, SQL"},
		{name: "core skills", text: "Core Skills:\nPython, SQL, Go\n\nEducation\nBSc", label: LabelSkills, expect: "Python, SQL, Go"},
		{name: "skills summary", text: "Skills Summary\nGo, Rust\nEducation\nBSc", label: LabelSkills, expect: "Go, Rust"},
		{name: "relevant experience", text: "Relevant Experience\nAcme, engineer\n\nEducation\nBSc", label: LabelExperience, expect: "Acme, engineer"},
		{name: "industry experience", text: "## Industry Experience:\nAcme\nKey Projects\nCrawler", label: LabelExperience, expect: "Acme"},
		{name: "two qualifiers", text: "Core Technical Competencies\nGo\nEducation\nBSc", label: LabelSkills, expect: "Go"},
		{name: "uppercase", text: "KEY SKILLS\nGo\nEDUCATION\nBSc", label: LabelSkills, expect: "Go"},
		{name: "prose is not a heading", text: "Experience\nAcme\nmanaged team projects\nEducation\nBSc", label: LabelExperience, expect: "Acme\nmanaged team projects"},
		{name: "too many qualifiers", text: "Skills\nGo\nMy Very Best Projects\nEducation", label: LabelSkills, expect: "Go\nMy Very Best Projects"},
	}

	e := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := e.Extract(tt.text, tt.label); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestExtractQualifiedSkillsSet(t *testing.T) {
	t.Parallel()

	got := Default().ExtractSkills("Core Skills:\nPython, SQL, Go\n\nEducation\nBSc").Sorted()
	want := []string{"go", "python", "sql"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestResolveHeading(t *testing.T) {
	t.Parallel()

	aliases := DefaultAliases()
	tests := []struct {
		heading string
		label   Label
		ok      bool
	}{
		{heading: "Programming Languages", label: LabelSkills, ok: true},
		{heading: "Professional Summary", label: LabelSummary, ok: true},
		{heading: "Skills Summary", label: LabelSkills, ok: true},
		{heading: "relevant  experience", label: LabelExperience, ok: true},
		{heading: "Skills and Tools", ok: false},
		{heading: "One Two Three Skills", ok: false},
	}

	for _, tt := range tests {
		label, ok := aliases.Resolve(tt.heading)
		if ok != tt.ok || label != tt.label {
			t.Fatalf("%q: expected (%q, %v), got (%q, %v)", tt.heading, tt.label, tt.ok, label, ok)
		}
	}
}

func TestExtractInlineHeading(t *testing.T) {
	t.Parallel()

	got := Default().ExtractSkills("Name\nTechnical Skills: Go, Rust\nEducation\nMSc").Sorted()
	want := []string{"go", "rust"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtractNoHeading(t *testing.T) {
	t.Parallel()

	texts := []string{
		"",
		"just some words without any structure",
		"I have great skills in Go and years of experience with SQL.",
	}

	e := Default()
	for _, text := range texts {
		if got := e.Extract(text, LabelSkills); got != "" {
			t.Fatalf("expected empty skills section for %q, got %q", text, got)
		}
		if got := e.ExtractExperience(text); got != "" {
			t.Fatalf("expected empty experience section for %q, got %q", text, got)
		}
		if got := e.ExtractSkills(text); got.Len() != 0 {
			t.Fatalf("expected no skills for %q, got %v", text, got.Sorted())
		}
	}
}

func TestExtractNextHeadingBoundary(t *testing.T) {
	t.Parallel()

	got := Default().ExtractExperience(sampleResume)
	want := "Acme Corp, Senior Engineer\nBuilt streaming ingestion in Go.\n\nLed migration to PostgreSQL."
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestExtractBlankLineBoundary(t *testing.T) {
	t.Parallel()

	e, err := NewExtractor(DefaultAliases(), BoundaryBlankLine)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := e.ExtractExperience(sampleResume)
	want := "Acme Corp, Senior Engineer\nBuilt streaming ingestion in Go."
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestExtractFirstOccurrenceOnly(t *testing.T) {
	t.Parallel()

	text := "Skills:\nGo\n\nEducation\nBSc\n\nSkills:\nCobol\n"
	got := Default().ExtractSkills(text).Sorted()
	if !reflect.DeepEqual(got, []string{"go"}) {
		t.Fatalf("expected only the first skills section, got %v", got)
	}
}

func TestExtractSameLabelAliasesContinue(t *testing.T) {
	t.Parallel()

	text := "Work Experience\nAcme\nVolunteer Experience\nFood bank\nEducation\nBSc"
	got := Default().ExtractExperience(text)
	if got != "Acme\nVolunteer Experience\nFood bank" {
		t.Fatalf("unexpected experience section: %q", got)
	}
}

func TestExtractHandlesCRLFAndMarkdown(t *testing.T) {
	t.Parallel()

	text := "## Skills\r\nGo, SQL\r\n\r\n**Education**\r\nBSc\r\n"
	got := Default().ExtractSkills(text).Sorted()
	if !reflect.DeepEqual(got, []string{"go", "sql"}) {
		t.Fatalf("unexpected skills: %v", got)
	}
}

func TestExtendAliases(t *testing.T) {
	t.Parallel()

	aliases := DefaultAliases().Extend(map[Label][]string{
		LabelSkills: {"Toolbox", "skills"},
	})

	if got, want := len(aliases[LabelSkills]), len(DefaultAliases()[LabelSkills])+1; got != want {
		t.Fatalf("expected %d skills aliases, got %d", want, got)
	}

	e, err := NewExtractor(aliases, BoundaryNextHeading)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := e.ExtractSkills("Toolbox:\nTerraform, Ansible\nProjects\nX").Sorted()
	if !reflect.DeepEqual(got, []string{"ansible", "terraform"}) {
		t.Fatalf("unexpected skills: %v", got)
	}
}

func TestNewExtractorRejectsUnknownBoundary(t *testing.T) {
	t.Parallel()

	if _, err := NewExtractor(DefaultAliases(), Boundary("paragraph")); err == nil {
		t.Fatal("expected error for unknown boundary")
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	resume := Default().Parse(sampleResume)
	if resume.SkillSet.Len() != 5 {
		t.Fatalf("expected 5 skills, got %v", resume.SkillSet.Sorted())
	}
	if !strings.HasPrefix(resume.Experience, "Acme Corp") {
		t.Fatalf("unexpected experience: %q", resume.Experience)
	}
	if len(resume.Contact.Emails) != 1 || resume.Contact.Emails[0] != "jane.doe@example.com" {
		t.Fatalf("unexpected emails: %v", resume.Contact.Emails)
	}
}

func TestParseLabel(t *testing.T) {
	t.Parallel()

	label, err := ParseLabel(" Skills ")
	if err != nil || label != LabelSkills {
		t.Fatalf("expected skills label, got %q (%v)", label, err)
	}

	if _, err := ParseLabel("hobbits"); err == nil {
		t.Fatal("expected error for unknown label")
	}
}
