package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/ats-matcher/internal/sections"
)

type extraction struct {
	*sections.Resume
	ReferenceSkills []string `json:"reference_skills,omitempty"`
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Print the skills, experience and contact details found in a resume as JSON",
	PreRun: func(cmd *cobra.Command, _ []string) {
		bindFlags(cmd, map[string]string{"resume": "resume"}, false)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		extract(cmd)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("resume", "r", "", "resume file (txt, md, pdf, docx, html)")
	extractCmd.Flags().String("resume-text", "", "resume text, takes precedence over --resume")
}

func extract(cmd *cobra.Command) {
	logger, config := start("extraction")

	resume, err := loadInput(config.Resume, cmd.Flag("resume-text").Value.String(), "resume")
	if err != nil {
		fatal(logger, "loading the resume", err)
	}

	extractor, err := newExtractor(config.Sections)
	if err != nil {
		logger.Fatal("preparing the extractor", zap.Error(err))
	}

	reference, err := newReference(config.SkillsFile)
	if err != nil {
		fatal(logger, "loading the skills reference", err)
	}

	parsed := extractor.Parse(resume.Text)
	out := extraction{
		Resume:          parsed,
		ReferenceSkills: reference.Match(resume.Text),
	}

	logger.Debug("extracted resume fields",
		zap.Int("skills", parsed.SkillSet.Len()),
		zap.Bool("experience_found", parsed.Experience != ""),
		zap.Bool("contact_found", !parsed.Contact.IsEmpty()),
	)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Fatal("writing the result", zap.Error(err))
	}
}
