package pdfextract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"fjacquet/mocktest/internal/extractionerror"
	"fjacquet/mocktest/internal/logging"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor is the production TextExtractor backed by ledongthuc/pdf.
type PDFExtractor struct {
	logger logging.Logger
}

// NewPDFExtractor returns a PDFExtractor logging through logger.
func NewPDFExtractor(logger logging.Logger) *PDFExtractor {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &PDFExtractor{logger: logger.WithField(logging.FieldComponent, "pdfextract")}
}

// ExtractText implements TextExtractor.
func (e *PDFExtractor) ExtractText(ctx context.Context, r io.ReaderAt, size int64) (Result, error) {
	if size == 0 {
		return Result{}, &extractionerror.DocumentUnreadableError{Err: errors.New("empty document")}
	}

	reader, err := openReader(r, size)
	if err != nil {
		return Result{}, &extractionerror.DocumentUnreadableError{Err: err}
	}

	res, err := ConcatPages(ctx, ledongthucPages{reader: reader}, e.logger)
	if err != nil {
		return Result{}, err
	}

	e.logger.Debug("Extracted PDF text",
		logging.F(logging.FieldPages, res.PageCount),
		logging.F(logging.FieldEmptyPages, res.EmptyPages),
		logging.F("bytes", len(res.Text)))
	return res, nil
}

// openReader converts panics raised by the PDF library on broken input into
// errors.
func openReader(r io.ReaderAt, size int64) (reader *pdf.Reader, err error) {
	defer func() {
		if p := recover(); p != nil {
			reader, err = nil, fmt.Errorf("malformed PDF: %v", p)
		}
	}()
	return pdf.NewReader(r, size)
}

type ledongthucPages struct {
	reader *pdf.Reader
}

func (l ledongthucPages) NumPage() int {
	return l.reader.NumPage()
}

func (l ledongthucPages) PageText(num int) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			text, err = "", fmt.Errorf("page %d: %v", num, p)
		}
	}()

	page := l.reader.Page(num)
	if page.V.IsNull() {
		return "", nil
	}

	rows, err := page.GetTextByRow()
	if err == nil && distinctPositions(rows) > 1 {
		return joinRows(rows), nil
	}
	// GetTextByRow only tracks Tm, so text placed with Td lands on one row.
	return joinRows(rowsFromGlyphs(page.Content().Text)), nil
}

func distinctPositions(rows pdf.Rows) int {
	seen := make(map[int64]struct{}, len(rows))
	for _, row := range rows {
		seen[row.Position] = struct{}{}
	}
	return len(seen)
}

// rowsFromGlyphs groups positioned glyphs into rows. Glyphs whose baselines
// are within half a font size of the row's first glyph share the row. Rows run
// top-to-bottom and glyphs left-to-right, keeping stream order on equal X.
func rowsFromGlyphs(glyphs []pdf.Text) pdf.Rows {
	sorted := make([]pdf.Text, 0, len(glyphs))
	for _, g := range glyphs {
		if g.S == "\n" || g.S == "\r" || g.S == "" {
			continue
		}
		sorted = append(sorted, g)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Y > sorted[j].Y
	})

	var rows pdf.Rows
	var baseline, tolerance float64
	for _, g := range sorted {
		if len(rows) == 0 || baseline-g.Y > tolerance {
			baseline = g.Y
			tolerance = math.Max(g.FontSize*0.5, 1)
			rows = append(rows, &pdf.Row{Position: int64(math.Round(g.Y))})
		}
		row := rows[len(rows)-1]
		row.Content = append(row.Content, g)
	}

	for _, row := range rows {
		sort.SliceStable(row.Content, func(i, j int) bool {
			return row.Content[i].X < row.Content[j].X
		})
	}
	return rows
}

// joinRows rebuilds physical lines from positioned text runs. Rows come
// top-to-bottom and runs within a row left-to-right.
func joinRows(rows pdf.Rows) string {
	var b strings.Builder
	for _, row := range rows {
		var line strings.Builder
		var prevEnd float64
		for i, word := range row.Content {
			if i > 0 && needsSpace(line.String(), word, prevEnd) {
				line.WriteByte(' ')
			}
			line.WriteString(word.S)
			prevEnd = word.X + word.W
		}
		b.WriteString(strings.TrimRight(line.String(), " \t"))
		b.WriteByte('\n')
	}
	return b.String()
}

func needsSpace(sofar string, next pdf.Text, prevEnd float64) bool {
	if sofar == "" || strings.HasSuffix(sofar, " ") || strings.HasPrefix(next.S, " ") {
		return false
	}
	return next.X-prevEnd > math.Max(next.FontSize*0.15, 0.5)
}
