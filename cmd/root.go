package cmd

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app       = "ats-matcher"
	envPrefix = "ATS"
)

type Config struct {
	Resume         string           `mapstructure:"resume"`
	JobDescription string           `mapstructure:"job-description"`
	SkillsFile     string           `mapstructure:"skills-file"`
	Scoring        *ScoringConfig   `mapstructure:"scoring" validate:"required"`
	Sections       *SectionsConfig  `mapstructure:"sections" validate:"required"`
	Embedding      *EmbeddingConfig `mapstructure:"embedding" validate:"required"`
	Batch          *BatchConfig     `mapstructure:"batch" validate:"required"`
}

type ScoringConfig struct {
	Mode      string `mapstructure:"mode" validate:"oneof=lexical embedding"`
	Weighting string `mapstructure:"weighting" validate:"oneof=count tfidf"`
	Source    string `mapstructure:"source" validate:"oneof=sections full"`
}

type SectionsConfig struct {
	Boundary string `mapstructure:"boundary" validate:"oneof=next-heading blank-line"`
	// Aliases adds heading texts to a label, e.g. skills: ["Tech Stack"].
	Aliases map[string][]string `mapstructure:"aliases"`
	// Stopwords are dropped in addition to the built-in english list.
	Stopwords []string `mapstructure:"stopwords"`
}

type EmbeddingConfig struct {
	Provider string        `mapstructure:"provider" validate:"oneof=gemini ollama"`
	Gemini   *GeminiConfig `mapstructure:"gemini" validate:"required"`
	Ollama   *OllamaConfig `mapstructure:"ollama" validate:"required"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key" json:"-"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	MaxRetries int    `mapstructure:"max-retries" validate:"gte=0"`
}

type OllamaConfig struct {
	URL     string        `mapstructure:"url" validate:"omitempty,url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

type BatchConfig struct {
	Dir          string  `mapstructure:"dir"`
	Concurrency  int     `mapstructure:"concurrency" validate:"gte=0"`
	MinimumScore float64 `mapstructure:"minimum-score" validate:"gte=-100,lte=100"`
	Top          int     `mapstructure:"top" validate:"gte=0"`
}

var (
	// Used for flags.
	cfgFile string

	validate = validator.New()

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "ats-matcher scores how well a resume matches a job description",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	setDefaults(viper.GetViper())

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is ats-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("skills-file", "", "reference skills list, one skill per line")
	rootCmd.PersistentFlags().StringP("mode", "m", "", "scoring mode: lexical or embedding")
	rootCmd.PersistentFlags().String("weighting", "", "lexical term weighting: count or tfidf")
	rootCmd.PersistentFlags().String("source", "", "resume text to score: sections or full")
	rootCmd.PersistentFlags().String("boundary", "", "section boundary: next-heading or blank-line")
	rootCmd.PersistentFlags().String("provider", "", "embedding provider: gemini or ollama")

	bindFlags(rootCmd, map[string]string{
		"debug":              "debug",
		"json":               "json",
		"skills-file":        "skills-file",
		"scoring.mode":       "mode",
		"scoring.weighting":  "weighting",
		"scoring.source":     "source",
		"sections.boundary":  "boundary",
		"embedding.provider": "provider",
	}, true)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("resume", "")
	v.SetDefault("job-description", "")
	v.SetDefault("skills-file", "")
	v.SetDefault("scoring.mode", "lexical")
	v.SetDefault("scoring.weighting", "count")
	v.SetDefault("scoring.source", "sections")
	v.SetDefault("sections.boundary", "next-heading")
	v.SetDefault("sections.aliases", map[string][]string{})
	v.SetDefault("sections.stopwords", []string{})
	v.SetDefault("embedding.provider", "ollama")
	v.SetDefault("embedding.gemini.api-key", "")
	v.SetDefault("embedding.gemini.api-key-file", "")
	v.SetDefault("embedding.gemini.model", "text-embedding-004")
	v.SetDefault("embedding.gemini.max-retries", 3)
	v.SetDefault("embedding.ollama.url", "http://localhost:11434")
	v.SetDefault("embedding.ollama.model", "all-minilm")
	v.SetDefault("embedding.ollama.timeout", "60s")
	v.SetDefault("batch.dir", "")
	v.SetDefault("batch.concurrency", 4)
	v.SetDefault("batch.minimum-score", 0)
	v.SetDefault("batch.top", 0)
}

// bindFlags binds config keys to flags; persistent selects the flag set.
func bindFlags(cmd *cobra.Command, keys map[string]string, persistent bool) {
	flags := cmd.Flags()
	if persistent {
		flags = cmd.PersistentFlags()
	}

	for key, name := range keys {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			log.Fatalf("binding %s flag: %v", name, err)
		}
	}
}

func initConfig() {
	// A missing .env is fine, it only feeds the environment.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional unless set explicitly, but a broken one is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config == nil {
		return nil, errors.New("config is required")
	}

	normalizeConfig(config)

	if err := validate.Struct(config); err != nil {
		return nil, err
	}

	return config, nil
}

func normalizeConfig(config *Config) {
	if config.Scoring != nil {
		config.Scoring.Mode = strings.ToLower(strings.TrimSpace(config.Scoring.Mode))
		config.Scoring.Weighting = strings.ToLower(strings.TrimSpace(config.Scoring.Weighting))
		config.Scoring.Source = strings.ToLower(strings.TrimSpace(config.Scoring.Source))
	}

	if config.Sections != nil {
		config.Sections.Boundary = strings.ToLower(strings.TrimSpace(config.Sections.Boundary))
	}

	if config.Embedding != nil {
		config.Embedding.Provider = strings.ToLower(strings.TrimSpace(config.Embedding.Provider))
	}
}
