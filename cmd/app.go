package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/ats-matcher/internal/cleaner"
	"github.com/spigell/ats-matcher/internal/document"
	"github.com/spigell/ats-matcher/internal/embedding"
	"github.com/spigell/ats-matcher/internal/embedding/gemini"
	"github.com/spigell/ats-matcher/internal/embedding/ollama"
	"github.com/spigell/ats-matcher/internal/logger"
	"github.com/spigell/ats-matcher/internal/matching"
	"github.com/spigell/ats-matcher/internal/secrets"
	"github.com/spigell/ats-matcher/internal/sections"
	"github.com/spigell/ats-matcher/internal/similarity"
	"github.com/spigell/ats-matcher/internal/skills"
)

const geminiAPIKeyEnv = "GEMINI_API_KEY"

// start builds the logger and config every command needs. It exits on failure.
func start(name string) (*zap.Logger, *Config) {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	l = logger.WithRunID(l, uuid.NewString())

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	l.Debug("starting the "+name, zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	l.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	return l, config
}

func newExtractor(cfg *SectionsConfig) (*sections.Extractor, error) {
	extra := make(map[sections.Label][]string, len(cfg.Aliases))
	for name, aliases := range cfg.Aliases {
		label, err := sections.ParseLabel(name)
		if err != nil {
			return nil, fmt.Errorf("sections.aliases: %w", err)
		}
		extra[label] = aliases
	}

	return sections.NewExtractor(sections.DefaultAliases().Extend(extra), sections.Boundary(cfg.Boundary))
}

func newReference(path string) (*skills.Reference, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	return skills.Load(path)
}

func newEmbedder(ctx context.Context, cfg *EmbeddingConfig, l *zap.Logger) (embedding.Embedder, error) {
	switch cfg.Provider {
	case embedding.ProviderGemini:
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: cfg.Gemini.APIKey,
			File:  cfg.Gemini.APIKeyFile,
			Env:   geminiAPIKeyEnv,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v (set embedding.gemini.api-key-file or %s)", embedding.ErrUnavailable, err, geminiAPIKeyEnv)
		}

		embedder, err := gemini.NewEmbedder(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, l)
		if err != nil {
			return nil, err
		}
		return embedder, nil
	case embedding.ProviderOllama:
		return ollama.New(cfg.Ollama.URL, cfg.Ollama.Model, cfg.Ollama.Timeout, l), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}

// newScorer returns the scorer and the logger tagged with how scores are computed.
func newScorer(ctx context.Context, cfg *Config, l *zap.Logger) (similarity.Scorer, *zap.Logger, error) {
	switch cfg.Scoring.Mode {
	case similarity.ModeLexical:
		scorer, err := similarity.NewLexical(similarity.Weighting(cfg.Scoring.Weighting))
		if err != nil {
			return nil, nil, err
		}
		return scorer, logger.WithScoringFields(l, scorer.Mode(), "", ""), nil
	case similarity.ModeEmbedding:
		embedder, err := newEmbedder(ctx, cfg.Embedding, l)
		if err != nil {
			return nil, nil, err
		}

		l = logger.WithScoringFields(l, similarity.ModeEmbedding, embedder.Provider(), embedder.Model())

		scorer, err := similarity.NewEmbedding(embedder)
		if err != nil {
			return nil, nil, err
		}
		return scorer, l, nil
	default:
		return nil, nil, fmt.Errorf("unsupported scoring mode: %s", cfg.Scoring.Mode)
	}
}

// newMatcher wires extractor, cleaner, scorer and the optional skills reference.
func newMatcher(ctx context.Context, cfg *Config, l *zap.Logger) (*matching.Matcher, error) {
	extractor, err := newExtractor(cfg.Sections)
	if err != nil {
		return nil, err
	}

	reference, err := newReference(cfg.SkillsFile)
	if err != nil {
		return nil, err
	}

	scorer, l, err := newScorer(ctx, cfg, l)
	if err != nil {
		return nil, err
	}

	l.Debug("loading lemma dictionary")

	textCleaner, err := cleaner.NewEnglish(cfg.Sections.Stopwords...)
	if err != nil {
		return nil, err
	}

	return matching.New(&matching.Config{
		Source:    matching.Source(cfg.Scoring.Source),
		Reference: reference,
	}, &matching.Deps{
		Extractor: extractor,
		Cleaner:   textCleaner,
		Scorer:    scorer,
		Logger:    l,
	})
}

// loadInput prefers inline text over a path. name labels inline text.
func loadInput(path, text, name string) (document.Document, error) {
	if strings.TrimSpace(text) != "" {
		return document.FromString(name, text), nil
	}

	if strings.TrimSpace(path) == "" {
		return document.Document{}, fmt.Errorf("%s is required: pass a file or inline text", name)
	}

	return document.Load(path)
}

// hint turns well-known failures into a short suggestion for the user.
func hint(err error) string {
	switch {
	case errors.Is(err, similarity.ErrEmptyVocabulary):
		return "both texts must contain words besides stopwords and punctuation"
	case errors.Is(err, embedding.ErrUnavailable):
		return "check the embedding provider settings or switch to --mode lexical"
	case errors.Is(err, skills.ErrMissingResource):
		return "check the skills-file path"
	case errors.Is(err, document.ErrUnsupported):
		return "supported formats are txt, md, pdf, docx and html"
	default:
		return ""
	}
}

func fatal(l *zap.Logger, msg string, err error) {
	fields := []zap.Field{zap.Error(err)}
	if h := hint(err); h != "" {
		fields = append(fields, zap.String("hint", h))
	}
	l.Fatal(msg, fields...)
}
