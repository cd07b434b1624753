package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/ats-matcher/internal/document"
	"github.com/spigell/ats-matcher/internal/filtering"
	"github.com/spigell/ats-matcher/internal/matching"
)

const (
	PromptPrint         = "Print results"
	PromptReport        = "Report by job descriptions"
	PromptFilters       = "Show filters"
	PromptResultsToFile = "Dump results to file"
	PromptExit          = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptPrint, PromptReport, PromptFilters, PromptResultsToFile, PromptExit},
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score one resume against every job description in a directory",
	PreRun: func(cmd *cobra.Command, _ []string) {
		bindFlags(cmd, map[string]string{
			"resume":              "resume",
			"batch.dir":           "dir",
			"batch.concurrency":   "concurrency",
			"batch.minimum-score": "minimum-score",
			"batch.top":           "top",
		}, false)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		batch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringP("resume", "r", "", "resume file (txt, md, pdf, docx, html)")
	batchCmd.Flags().String("dir", "", "directory with job descriptions")
	batchCmd.Flags().IntP("concurrency", "c", 4, "pairs scored in parallel")
	batchCmd.Flags().Float64("minimum-score", 0, "drop pairs scoring below this percentage")
	batchCmd.Flags().Int("top", 0, "keep only the best N pairs, 0 keeps all")
	batchCmd.Flags().BoolP("yes", "y", false, "print the results without asking what to do next")
}

func batch(cmd *cobra.Command) {
	ctx := context.Background()

	logger, config := start("batch")

	if config.Resume == "" || config.Batch.Dir == "" {
		logger.Fatal("resume and batch.dir are required")
	}

	resume, err := document.Load(config.Resume)
	if err != nil {
		fatal(logger, "loading the resume", err)
	}

	jds, err := document.LoadDir(config.Batch.Dir)
	if err != nil {
		fatal(logger, "loading job descriptions", err)
	}

	if len(jds) == 0 {
		logger.Info("exiting", zap.String("reason", "no job descriptions found"), zap.String("dir", config.Batch.Dir))
		return
	}

	logger.Info("starting the batch",
		zap.String("resume", resume.Name),
		zap.Int("job_descriptions", len(jds)),
		zap.Int("concurrency", config.Batch.Concurrency),
	)

	matcher, err := newMatcher(ctx, config, logger)
	if err != nil {
		fatal(logger, "preparing the matcher", err)
	}

	results, err := matching.Batch(ctx, matcher, resume, jds, config.Batch.Concurrency)
	if err != nil {
		fatal(logger, "batch failed", err)
	}

	for _, failed := range results.Failed() {
		logger.Warn("pair was not scored",
			zap.String("job_description", failed.JobDescription),
			zap.Error(failed.Err),
			zap.String("hint", hint(failed.Err)),
		)
	}

	steps := prepareFilters(config.Batch)
	results, err = filtering.Run(ctx, filterConfig(config.Batch), filtering.Deps{Logger: logger}, steps, results)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	if results.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no pairs left after filters"))
		return
	}

	results.Sort()

	if cmd.Flag("yes").Value.String() == "true" {
		if err := printResults(os.Stdout, results); err != nil {
			logger.Fatal("printing results", zap.Error(err))
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, logger, steps, results); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, logger *zap.Logger, steps []filtering.Filter, results *matching.Results) error {
	switch action {
	case PromptPrint:
		return printResults(os.Stdout, results)
	case PromptReport:
		pretty, _ := json.MarshalIndent(results.Report(), "", "  ")
		logger.Info(string(pretty), zap.Int("pairs count", results.Len()))
		return nil
	case PromptFilters:
		pretty, _ := json.MarshalIndent(filtering.Describe(steps), "", "  ")
		logger.Info(string(pretty))
		return nil
	case PromptResultsToFile:
		filename, err := results.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func prepareFilters(cfg *BatchConfig) []filtering.Filter {
	steps := filtering.Default()

	if cfg.MinimumScore == 0 {
		filtering.DisableByName(steps, "minimum_score", "batch.minimum-score is not set")
	}

	if cfg.Top == 0 {
		filtering.DisableByName(steps, "top", "batch.top is not set")
	}

	return steps
}

func filterConfig(cfg *BatchConfig) *filtering.Config {
	return &filtering.Config{
		MinimumScore: cfg.MinimumScore,
		Top:          cfg.Top,
	}
}

func printResults(w io.Writer, results *matching.Results) error {
	for _, item := range results.Items {
		var err error
		if item.Failed() {
			_, err = fmt.Fprintf(w, "%8s  %s  (%s)\n", "failed", item.JobDescription, item.Error)
		} else {
			_, err = fmt.Fprintf(w, "%7.2f%%  %s\n", item.Percent, item.JobDescription)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
