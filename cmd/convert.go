package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/ats-matcher/internal/document"
)

var convertCmd = &cobra.Command{
	Use:   "convert FILE",
	Short: "Extract plain text from a pdf, docx or html file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		convert(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().BoolP("normalize", "n", false, "keep only lowercased letters and digits, one line per paragraph")
	convertCmd.Flags().StringP("output", "o", "", "write the text to this file instead of stdout")
}

func convert(cmd *cobra.Command, path string) {
	logger, _ := start("conversion")

	doc, err := document.Load(path)
	if err != nil {
		fatal(logger, "loading the document", err)
	}

	text := doc.Text
	if cmd.Flag("normalize").Value.String() == "true" {
		text = document.Normalize(text)
	}

	output := cmd.Flag("output").Value.String()
	if output == "" {
		fmt.Println(text)
		return
	}

	if err := os.WriteFile(output, []byte(text+"\n"), 0o644); err != nil {
		logger.Fatal("writing the text", zap.Error(err))
	}

	logger.Info("converted document",
		zap.String("input", path),
		zap.String("format", string(doc.Format)),
		zap.String("output", output),
	)
}
