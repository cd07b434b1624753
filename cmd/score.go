package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/ats-matcher/internal/matching"
)

const (
	outputText = "text"
	outputJSON = "json"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one resume against one job description",
	PreRun: func(cmd *cobra.Command, _ []string) {
		bindFlags(cmd, map[string]string{
			"resume":          "resume",
			"job-description": "job-description",
		}, false)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		score(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringP("resume", "r", "", "resume file (txt, md, pdf, docx, html)")
	scoreCmd.Flags().StringP("job-description", "t", "", "job description file (txt, md, pdf, docx, html)")
	scoreCmd.Flags().String("resume-text", "", "resume text, takes precedence over --resume")
	scoreCmd.Flags().String("jd-text", "", "job description text, takes precedence over --job-description")
	scoreCmd.Flags().StringP("output", "o", outputText, "output format: text or json")
}

func score(cmd *cobra.Command) {
	ctx := context.Background()

	logger, config := start("scoring")

	output := cmd.Flag("output").Value.String()
	if err := validate.Var(output, "oneof=text json"); err != nil {
		logger.Fatal("invalid output format", zap.String("output", output))
	}

	resume, err := loadInput(config.Resume, cmd.Flag("resume-text").Value.String(), "resume")
	if err != nil {
		fatal(logger, "loading the resume", err)
	}

	jd, err := loadInput(config.JobDescription, cmd.Flag("jd-text").Value.String(), "job description")
	if err != nil {
		fatal(logger, "loading the job description", err)
	}

	matcher, err := newMatcher(ctx, config, logger)
	if err != nil {
		fatal(logger, "preparing the matcher", err)
	}

	result, err := matcher.Match(ctx, resume, jd)
	if err != nil {
		fatal(logger, "scoring failed", err)
	}

	if err := writeResult(os.Stdout, result, output); err != nil {
		logger.Fatal("writing the result", zap.Error(err))
	}
}

func writeResult(w io.Writer, result *matching.Result, output string) error {
	if output == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	lines := []string{result.Message()}
	if len(result.CommonSkills) > 0 {
		lines = append(lines, "Common skills: "+strings.Join(result.CommonSkills, ", "))
	}
	if len(result.MissingSkills) > 0 {
		lines = append(lines, "Missing skills: "+strings.Join(result.MissingSkills, ", "))
	}

	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}
