// Package pdfextract turns a PDF document into one linear text blob, page by
// page, for the question parser.
package pdfextract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"fjacquet/mocktest/internal/extractionerror"
	"fjacquet/mocktest/internal/logging"
)

// Result is the text of a document plus page accounting for the report.
type Result struct {
	Text       string
	PageCount  int
	EmptyPages int
}

// TextExtractor extracts the text of a PDF held in r (size bytes long).
// Implementations return a *extractionerror.DocumentUnreadableError when the
// container cannot be opened, and ctx.Err() when ctx ends between pages.
type TextExtractor interface {
	ExtractText(ctx context.Context, r io.ReaderAt, size int64) (Result, error)
}

// ExtractFile opens path, extracts its text and closes the file on every
// return path.
func ExtractFile(ctx context.Context, ex TextExtractor, path string, logger logging.Logger) (Result, error) {
	f, err := os.Open(path) // #nosec G304 -- path is chosen by the operator
	if err != nil {
		return Result{}, fmt.Errorf("error opening input file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && logger != nil {
			logger.WithError(cerr).Warn("Failed to close input file", logging.F(logging.FieldFile, path))
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return Result{}, fmt.Errorf("error reading input file: %w", err)
	}

	res, err := ex.ExtractText(ctx, f, info.Size())
	if err != nil {
		if due, ok := err.(*extractionerror.DocumentUnreadableError); ok && due.Source == "" {
			due.Source = path
		}
		return Result{}, err
	}
	return res, nil
}

// ExtractBytes extracts the text of an in-memory document.
func ExtractBytes(ctx context.Context, ex TextExtractor, data []byte) (Result, error) {
	return ex.ExtractText(ctx, bytes.NewReader(data), int64(len(data)))
}
