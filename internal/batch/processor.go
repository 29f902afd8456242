// Package batch runs question extraction over every PDF in a directory
package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"fjacquet/mocktest/internal/extraction"
	"fjacquet/mocktest/internal/fileutils"
	"fjacquet/mocktest/internal/logging"
	"fjacquet/mocktest/internal/models"
	"fjacquet/mocktest/internal/report"
)

// Options controls a batch run.
type Options struct {
	// OutputDir receives one report per input file. Empty skips writing.
	OutputDir string
	Format    string
	// Import commits each file as a new test titled after the file name.
	Import   bool
	Category string
}

// FileResult is the outcome for one input file.
type FileResult struct {
	File       string
	ReportPath string
	Report     *models.ExtractionReport
	Err        error
}

// Summary aggregates a batch run.
type Summary struct {
	Files    []FileResult
	Failed   int
	Accepted int
	Rejected int
}

// String returns a one-line description of the run.
func (s Summary) String() string {
	return fmt.Sprintf("%d files, %d failed, %d questions accepted, %d skipped",
		len(s.Files), s.Failed, s.Accepted, s.Rejected)
}

// BatchProcessor extracts, and optionally imports, a directory of PDFs.
type BatchProcessor struct {
	pipeline *extraction.Pipeline
	importer *extraction.Importer
	writer   *report.Writer
	logger   logging.Logger
}

// NewBatchProcessor creates a new BatchProcessor instance. importer may be
// nil when Options.Import is never set.
func NewBatchProcessor(pipeline *extraction.Pipeline, importer *extraction.Importer, writer *report.Writer, logger logging.Logger) *BatchProcessor {
	return &BatchProcessor{
		pipeline: pipeline,
		importer: importer,
		writer:   writer,
		logger:   logger.WithField(logging.FieldComponent, "batch"),
	}
}

// Run processes the PDFs of inputDir in name order. A failing file is
// recorded in the summary and does not stop the run; a cancelled ctx does.
func (bp *BatchProcessor) Run(ctx context.Context, inputDir string, opts Options) (Summary, error) {
	if opts.Import && bp.importer == nil {
		return Summary{}, fmt.Errorf("batch import requested without an importer")
	}
	files, err := fileutils.ListFilesWithExtension(inputDir, ".pdf")
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read input directory: %w", err)
	}
	if opts.OutputDir != "" {
		if err := fileutils.EnsureDirectoryExists(opts.OutputDir); err != nil {
			return Summary{}, err
		}
	}

	bp.logger.Info("Starting batch run",
		logging.F(logging.FieldCount, len(files)),
		logging.F("import", opts.Import))

	var sum Summary
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		res := bp.processFile(ctx, file, opts)
		if res.Err != nil {
			sum.Failed++
			bp.logger.WithError(res.Err).Warn("Failed to process file",
				logging.F(logging.FieldFile, file))
		}
		if res.Report != nil {
			sum.Accepted += len(res.Report.Accepted)
			sum.Rejected += len(res.Report.Rejected)
		}
		sum.Files = append(sum.Files, res)
	}

	bp.logger.Info("Batch run completed", logging.F("summary", sum.String()))
	return sum, nil
}

func (bp *BatchProcessor) processFile(ctx context.Context, file string, opts Options) FileResult {
	res := FileResult{File: file}
	doc := extraction.FileDocument(file)

	if opts.Import {
		res.Report, res.Err = bp.importer.Import(ctx, TitleFromFilename(file), opts.Category, doc)
	} else {
		res.Report, res.Err = bp.pipeline.Run(ctx, doc, 0)
	}
	if res.Report == nil || opts.OutputDir == "" {
		return res
	}

	path := filepath.Join(opts.OutputDir, OutputFilename(file, opts.Format))
	if err := bp.writer.WriteFile(res.Report, opts.Format, path); err != nil {
		if res.Err == nil {
			res.Err = err
		}
		return res
	}
	res.ReportPath = path
	return res
}

// TitleFromFilename derives a test title from a PDF path:
// "exams/go_basics-1.pdf" becomes "go basics 1".
func TitleFromFilename(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	return strings.Join(strings.Fields(base), " ")
}

// OutputFilename names the report written for input in format.
func OutputFilename(input, format string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	ext := strings.ToLower(format)
	switch ext {
	case "", report.FormatText:
		ext = "txt"
	case report.FormatYAML:
		ext = "yaml"
	}
	return base + ".report." + ext
}
