// Package matching runs the parse, clean and score pipeline for resume and job description pairs.
package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/ats-matcher/internal/document"
	"github.com/spigell/ats-matcher/internal/sections"
	"github.com/spigell/ats-matcher/internal/similarity"
	"github.com/spigell/ats-matcher/internal/skills"
	"github.com/spigell/ats-matcher/internal/utils"
)

// Source selects which part of the resume is compared with the job description.
type Source string

const (
	// SourceSections compares the experience and skills sections only.
	SourceSections Source = "sections"
	// SourceFull compares the whole resume text.
	SourceFull Source = "full"

	previewLength = 120
)

// ParseSource resolves a source name. Empty means sections.
func ParseSource(name string) (Source, error) {
	switch Source(strings.ToLower(strings.TrimSpace(name))) {
	case "", SourceSections:
		return SourceSections, nil
	case SourceFull:
		return SourceFull, nil
	default:
		return "", fmt.Errorf("unknown scoring source %q", name)
	}
}

// TextCleaner normalizes text before scoring.
type TextCleaner interface {
	Clean(text string) string
}

type Config struct {
	Source    Source
	Reference *skills.Reference
}

type Deps struct {
	Extractor *sections.Extractor
	Cleaner   TextCleaner
	Scorer    similarity.Scorer
	Logger    *zap.Logger
}

// Matcher is built once and shared. It keeps no per-call state.
type Matcher struct {
	source    Source
	reference *skills.Reference
	extractor *sections.Extractor
	cleaner   TextCleaner
	scorer    similarity.Scorer
	logger    *zap.Logger
}

func New(cfg *Config, deps *Deps) (*Matcher, error) {
	if deps == nil || deps.Cleaner == nil || deps.Scorer == nil {
		return nil, errors.New("cleaner and scorer are required")
	}

	if cfg == nil {
		cfg = &Config{}
	}

	source, err := ParseSource(string(cfg.Source))
	if err != nil {
		return nil, err
	}

	extractor := deps.Extractor
	if extractor == nil {
		extractor = sections.Default()
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Matcher{
		source:    source,
		reference: cfg.Reference,
		extractor: extractor,
		cleaner:   deps.Cleaner,
		scorer:    deps.Scorer,
		logger:    logger,
	}, nil
}

func (m *Matcher) Mode() string {
	return m.scorer.Mode()
}

func (m *Matcher) Source() Source {
	return m.source
}

// Match scores one resume against one job description.
func (m *Matcher) Match(ctx context.Context, resume, jd document.Document) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parsed := m.extractor.Parse(resume.Text)

	result := &Result{
		Resume:         resume.Name,
		JobDescription: jd.Name,
		Mode:           m.scorer.Mode(),
		Source:         m.source,
		Skills:         parsed.SkillSet,
		Experience:     parsed.Experience,
		Contact:        parsed.Contact,
		CommonSkills:   skills.Overlap(parsed.SkillSet, jd.Text),
	}

	if m.reference.Len() > 0 {
		result.ReferenceSkills = m.reference.Match(resume.Text)
		result.MissingSkills = m.reference.Missing(resume.Text, jd.Text)
	}

	resumeText, source := m.resumeText(parsed)
	jdText := m.cleaner.Clean(jd.Text)

	m.logger.Debug("cleaned texts",
		zap.String("resume", resume.Name),
		zap.String("job_description", jd.Name),
		zap.String("source", string(source)),
		zap.String("resume_preview", utils.Preview(resumeText, previewLength)),
		zap.String("job_description_preview", utils.Preview(jdText, previewLength)),
	)

	score, err := m.scorer.Score(ctx, resumeText, jdText)
	if err != nil {
		return nil, fmt.Errorf("score %s against %s: %w", resume.Name, jd.Name, err)
	}

	result.Score = score
	result.Percent = similarity.Percent(score)
	result.Source = source

	m.logger.Info("scored pair",
		zap.String("resume", resume.Name),
		zap.String("job_description", jd.Name),
		zap.Float64("percent", result.Percent),
		zap.Int("common_skills", len(result.CommonSkills)),
	)

	return result, nil
}

// resumeText returns the cleaned text to score and the source actually used.
// Sections mode falls back to the full resume when neither section was found.
func (m *Matcher) resumeText(parsed *sections.Resume) (string, Source) {
	if m.source == SourceSections {
		parts := make([]string, 0, 2)
		for _, section := range []string{parsed.Experience, parsed.Skills} {
			if cleaned := m.cleaner.Clean(section); cleaned != "" {
				parts = append(parts, cleaned)
			}
		}

		if len(parts) > 0 {
			return strings.Join(parts, " "), SourceSections
		}

		m.logger.Debug("no experience or skills section found, using full resume text")
	}

	return m.cleaner.Clean(parsed.Text), SourceFull
}
