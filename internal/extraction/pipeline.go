// Package extraction runs the question extraction pipeline over a PDF and
// commits its output to the record store.
package extraction

import (
	"context"
	"errors"
	"time"

	"fjacquet/mocktest/internal/extractionerror"
	"fjacquet/mocktest/internal/logging"
	"fjacquet/mocktest/internal/models"
	"fjacquet/mocktest/internal/pdfextract"
	"fjacquet/mocktest/internal/questionparser"
	"fjacquet/mocktest/internal/recordbuilder"
)

// Document is a PDF given either by path or by content. Data wins when both
// are set. Name is used in logs and errors only.
type Document struct {
	Name string
	Path string
	Data []byte
}

// FileDocument returns a Document read from path.
func FileDocument(path string) Document {
	return Document{Name: path, Path: path}
}

// BytesDocument returns an in-memory Document.
func BytesDocument(name string, data []byte) Document {
	return Document{Name: name, Data: data}
}

// Pipeline chains text extraction, block parsing and record building.
type Pipeline struct {
	extractor pdfextract.TextExtractor
	logger    logging.Logger
	timeout   time.Duration
}

// NewPipeline returns a Pipeline. A zero timeout leaves extraction bounded
// only by the caller's context.
func NewPipeline(extractor pdfextract.TextExtractor, logger logging.Logger, timeout time.Duration) *Pipeline {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Pipeline{
		extractor: extractor,
		logger:    logger.WithField(logging.FieldComponent, "extraction"),
		timeout:   timeout,
	}
}

// Extract returns the text of doc.
func (p *Pipeline) Extract(ctx context.Context, doc Document) (pdfextract.Result, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	var (
		res pdfextract.Result
		err error
	)
	if doc.Data != nil || doc.Path == "" {
		res, err = pdfextract.ExtractBytes(ctx, p.extractor, doc.Data)
	} else {
		res, err = pdfextract.ExtractFile(ctx, p.extractor, doc.Path, p.logger)
	}
	if err != nil {
		var due *extractionerror.DocumentUnreadableError
		if errors.As(err, &due) && due.Source == "" {
			due.Source = doc.Name
		}
		return pdfextract.Result{}, err
	}
	return res, nil
}

// Run extracts doc and builds its report for testID.
func (p *Pipeline) Run(ctx context.Context, doc Document, testID int64) (*models.ExtractionReport, error) {
	start := time.Now()
	res, err := p.Extract(ctx, doc)
	if err != nil {
		p.logger.WithError(err).Error("Failed to extract document", logging.F(logging.FieldFile, doc.Name))
		return nil, err
	}

	report := p.BuildReport(res.Text, testID)
	report.PageCount = res.PageCount
	report.EmptyPages = res.EmptyPages

	p.logger.Info("Extraction finished",
		logging.F(logging.FieldFile, doc.Name),
		logging.F(logging.FieldPages, res.PageCount),
		logging.F(logging.FieldEmptyPages, res.EmptyPages),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	return report, nil
}

// BuildReport parses text and validates every block. Accepted records get
// consecutive 1-based positions in document order.
func (p *Pipeline) BuildReport(text string, testID int64) *models.ExtractionReport {
	report := models.NewExtractionReport(testID)

	for block := range questionparser.Parse(text) {
		if block.Rejected() {
			p.reject(report, block.Ordinal, block.Reason, block.Span)
			continue
		}

		rec, err := recordbuilder.Build(*block.Match, testID)
		if err != nil {
			var be *extractionerror.BlockError
			if errors.As(err, &be) {
				p.reject(report, be.Ordinal, be.Reason, block.Span)
				continue
			}
			p.logger.WithError(err).Warn("Unexpected build failure", logging.F(logging.FieldOrdinal, block.Ordinal))
			continue
		}

		rec.Position = len(report.Accepted) + 1
		report.Accepted = append(report.Accepted, rec)
	}

	report.TotalBlocksFound = len(report.Accepted) + len(report.Rejected)

	p.logger.Info(report.Summary(),
		logging.F(logging.FieldTestID, testID),
		logging.F(logging.FieldAccepted, len(report.Accepted)),
		logging.F(logging.FieldRejected, len(report.Rejected)))
	return report
}

func (p *Pipeline) reject(report *models.ExtractionReport, ordinal int, reason models.RejectReason, span models.Span) {
	report.Rejected = append(report.Rejected, models.Rejection{
		Ordinal: ordinal,
		Reason:  reason,
		Span:    span,
	})
	p.logger.Debug("Skipped question block",
		logging.F(logging.FieldOrdinal, ordinal),
		logging.F(logging.FieldReason, string(reason)))
}
