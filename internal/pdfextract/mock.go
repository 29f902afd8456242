package pdfextract

import (
	"context"
	"io"
	"strings"
)

// MockExtractor returns fixed text or a fixed error without reading any PDF.
type MockExtractor struct {
	Text  string
	Err   error
	Calls int
}

// NewMockExtractor returns a MockExtractor yielding text or err.
func NewMockExtractor(text string, err error) *MockExtractor {
	return &MockExtractor{Text: text, Err: err}
}

// ExtractText implements TextExtractor.
func (m *MockExtractor) ExtractText(ctx context.Context, _ io.ReaderAt, _ int64) (Result, error) {
	m.Calls++
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if m.Err != nil {
		return Result{}, m.Err
	}
	res := Result{Text: m.Text, PageCount: 1}
	if strings.TrimSpace(m.Text) == "" {
		res.EmptyPages = 1
	}
	return res, nil
}
