// Package batch handles batch processing of PDF directories
package batch

import (
	"fmt"

	"fjacquet/mocktest/cmd/common"
	"fjacquet/mocktest/cmd/root"
	"fjacquet/mocktest/internal/batch"
	"fjacquet/mocktest/internal/logging"
	"fjacquet/mocktest/internal/validation"

	"github.com/spf13/cobra"
)

var (
	importTests bool
	category    string
	format      string
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch process the PDFs of a directory",
	Long: `Batch process every PDF of an input directory and write one report per
file to the output directory. With --import each PDF becomes a new test titled
after its file name.

Example:
  mocktest batch -i exams/ -o reports/ --import --category go`,
	RunE: batchFunc,
}

func init() {
	Cmd.Flags().BoolVar(&importTests, "import", false, "Store each PDF as a new test")
	Cmd.Flags().StringVar(&category, "category", "", "Category of imported tests")
	common.AddFormatFlag(Cmd, &format)
}

func batchFunc(cmd *cobra.Command, args []string) error {
	logger := root.GetLogger()
	inputDir := root.SharedFlags.Input
	if inputDir == "" {
		return fmt.Errorf("input directory must be specified with --input")
	}
	logger.Info("Batch command called", logging.F(logging.FieldFile, inputDir))

	f := common.ResolveFormat(format, root.GetConfig().Report.Format)
	if err := validation.InputDir(inputDir); err != nil {
		return err
	}
	if err := validation.ReportFormat(f); err != nil {
		return err
	}

	c, err := root.GetContainer(cmd.Context())
	if err != nil {
		return err
	}

	bp := batch.NewBatchProcessor(c.GetPipeline(), c.GetImporter(), c.GetReportWriter(), logger)
	sum, err := bp.Run(cmd.Context(), inputDir, batch.Options{
		OutputDir: root.SharedFlags.Output,
		Format:    f,
		Import:    importTests,
		Category:  category,
	})
	if err != nil {
		return fmt.Errorf("error during batch processing: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, f := range sum.Files {
		switch {
		case f.Err != nil:
			fmt.Fprintf(out, "FAIL %s: %v\n", f.File, f.Err)
		default:
			fmt.Fprintf(out, "ok   %s: %s\n", f.File, f.Report.Summary())
		}
	}
	fmt.Fprintln(out, sum.String())

	if sum.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", sum.Failed, len(sum.Files))
	}
	return nil
}
