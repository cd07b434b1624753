package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Actual version can be specified in build command.
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and the active scoring setup",
	Run: func(_ *cobra.Command, _ []string) {
		config, err := getConfig()
		if err != nil {
			writeVersion(os.Stdout, nil)
			return
		}
		writeVersion(os.Stdout, config)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func writeVersion(w io.Writer, config *Config) {
	fmt.Fprintf(w, "%s version: %s\n", app, version)
	if config == nil {
		return
	}

	if s := config.Scoring; s != nil {
		fmt.Fprintf(w, "scoring: %s (weighting %s, source %s)\n", s.Mode, s.Weighting, s.Source)
	}

	if e := config.Embedding; e != nil {
		model := ""
		switch {
		case e.Provider == "gemini" && e.Gemini != nil:
			model = e.Gemini.Model
		case e.Provider == "ollama" && e.Ollama != nil:
			model = e.Ollama.Model
		}
		fmt.Fprintf(w, "embedding: %s %s\n", e.Provider, model)
	}
}
