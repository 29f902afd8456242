// Package importpdf handles importing a PDF as a new test
package importpdf

import (
	"fmt"
	"path/filepath"

	"fjacquet/mocktest/cmd/common"
	"fjacquet/mocktest/cmd/root"
	"fjacquet/mocktest/internal/batch"
	"fjacquet/mocktest/internal/extraction"
	"fjacquet/mocktest/internal/logging"
	"fjacquet/mocktest/internal/validation"

	"github.com/spf13/cobra"
)

var (
	title    string
	category string
	format   string
)

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import",
	Short: "Import the questions of a PDF as a new test",
	Long: `Create a test and store every valid question block of a PDF in it.
The questions are committed all together or not at all.

Example:
  mocktest import -i quiz.pdf --title "Go basics" --category go`,
	RunE: importFunc,
}

func init() {
	Cmd.Flags().StringVar(&title, "title", "", "Test title (default: derived from the file name)")
	Cmd.Flags().StringVar(&category, "category", "", "Test category")
	common.AddFormatFlag(Cmd, &format)
}

func importFunc(cmd *cobra.Command, args []string) error {
	logger := root.GetLogger()
	input := root.SharedFlags.Input
	if input == "" {
		return fmt.Errorf("input file must be specified with --input")
	}

	f := common.ResolveFormat(format, root.GetConfig().Report.Format)
	if err := validation.InputFile(input); err != nil {
		return err
	}
	if err := validation.ReportFormat(f); err != nil {
		return err
	}

	t := title
	if t == "" {
		t = batch.TitleFromFilename(input)
	}

	c, err := root.GetContainer(cmd.Context())
	if err != nil {
		return err
	}

	rep, importErr := c.GetImporter().Import(cmd.Context(), t, category, extraction.FileDocument(input))
	if rep != nil {
		if err := common.WriteReport(cmd, c.GetReportWriter(), rep, f, root.SharedFlags.Output); err != nil {
			return err
		}
	}
	if importErr != nil {
		return fmt.Errorf("error importing %s: %w", filepath.Base(input), importErr)
	}

	logger.Info("Import completed successfully",
		logging.F(logging.FieldTestID, rep.TestID),
		logging.F(logging.FieldAccepted, len(rep.Accepted)))
	return nil
}
