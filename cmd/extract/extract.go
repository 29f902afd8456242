// Package extract handles the dry-run extraction command
package extract

import (
	"fmt"

	"fjacquet/mocktest/cmd/common"
	"fjacquet/mocktest/cmd/root"
	"fjacquet/mocktest/internal/extraction"
	"fjacquet/mocktest/internal/logging"
	"fjacquet/mocktest/internal/validation"

	"github.com/spf13/cobra"
)

var format string

// Cmd represents the extract command
var Cmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract questions from a PDF without storing them",
	Long: `Extract and validate the question blocks of a PDF and print the report.
Nothing is written to the database.

Example:
  mocktest extract -i quiz.pdf -f json -o quiz.report.json`,
	RunE: extractFunc,
}

func init() {
	common.AddFormatFlag(Cmd, &format)
}

func extractFunc(cmd *cobra.Command, args []string) error {
	logger := root.GetLogger()
	input := root.SharedFlags.Input
	if input == "" {
		return fmt.Errorf("input file must be specified with --input")
	}
	logger.Info("Extract command called", logging.F(logging.FieldFile, input))
	f := common.ResolveFormat(format, root.GetConfig().Report.Format)
	if err := validation.InputFile(input); err != nil {
		return err
	}
	if err := validation.ReportFormat(f); err != nil {
		return err
	}

	c, err := root.GetContainer(cmd.Context())
	if err != nil {
		return err
	}

	rep, err := c.GetPipeline().Run(cmd.Context(), extraction.FileDocument(input), 0)
	if err != nil {
		return fmt.Errorf("error extracting questions: %w", err)
	}

	return common.WriteReport(cmd, c.GetReportWriter(), rep, f, root.SharedFlags.Output)
}
