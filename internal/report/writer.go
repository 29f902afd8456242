// Package report renders extraction reports for people and for other tools.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"fjacquet/mocktest/internal/fileutils"
	"fjacquet/mocktest/internal/logging"
	"fjacquet/mocktest/internal/models"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// DefaultSpanPreview is the number of runes of a rejected span shown to users.
const DefaultSpanPreview = 80

// Formats lists every format Render accepts.
var Formats = []string{FormatText, FormatJSON, FormatYAML, FormatCSV}

// View is the user-facing shape of an ExtractionReport. Rejected spans are
// shortened to a preview.
type View struct {
	TestID           int64                   `json:"test_id" yaml:"test_id"`
	Summary          string                  `json:"summary" yaml:"summary"`
	TotalBlocksFound int                     `json:"total_blocks_found" yaml:"total_blocks_found"`
	AcceptedCount    int                     `json:"accepted_count" yaml:"accepted_count"`
	RejectedCount    int                     `json:"rejected_count" yaml:"rejected_count"`
	PageCount        int                     `json:"page_count" yaml:"page_count"`
	EmptyPages       int                     `json:"empty_pages" yaml:"empty_pages"`
	Committed        bool                    `json:"committed" yaml:"committed"`
	Accepted         []models.QuestionRecord `json:"accepted" yaml:"accepted"`
	Rejected         []RejectionView         `json:"rejected" yaml:"rejected"`
}

// RejectionView is a rejection with its span preview.
type RejectionView struct {
	Ordinal int                 `json:"ordinal" yaml:"ordinal"`
	Reason  models.RejectReason `json:"reason" yaml:"reason"`
	Span    string              `json:"span" yaml:"span"`
	Start   int                 `json:"start" yaml:"start"`
	End     int                 `json:"end" yaml:"end"`
}

type csvRow struct {
	Status   string `csv:"status"`
	Ordinal  int    `csv:"ordinal"`
	Position int    `csv:"position"`
	Question string `csv:"question"`
	OptionA  string `csv:"option_a"`
	OptionB  string `csv:"option_b"`
	OptionC  string `csv:"option_c"`
	OptionD  string `csv:"option_d"`
	Answer   string `csv:"correct_answer"`
	Reason   string `csv:"reason"`
	Span     string `csv:"span"`
}

// Writer renders reports.
type Writer struct {
	logger      logging.Logger
	delimiter   rune
	spanPreview int
}

// NewWriter returns a Writer. A zero delimiter means ',' and a non-positive
// spanPreview means DefaultSpanPreview.
func NewWriter(logger logging.Logger, delimiter rune, spanPreview int) *Writer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if delimiter == 0 {
		delimiter = ','
	}
	if spanPreview <= 0 {
		spanPreview = DefaultSpanPreview
	}
	return &Writer{
		logger:      logger.WithField(logging.FieldComponent, "report"),
		delimiter:   delimiter,
		spanPreview: spanPreview,
	}
}

// View converts r for display.
func (w *Writer) View(r *models.ExtractionReport) View {
	v := View{
		TestID:           r.TestID,
		Summary:          r.Summary(),
		TotalBlocksFound: r.TotalBlocksFound,
		AcceptedCount:    len(r.Accepted),
		RejectedCount:    len(r.Rejected),
		PageCount:        r.PageCount,
		EmptyPages:       r.EmptyPages,
		Committed:        r.Committed,
		Accepted:         r.Accepted,
		Rejected:         make([]RejectionView, 0, len(r.Rejected)),
	}
	if v.Accepted == nil {
		v.Accepted = []models.QuestionRecord{}
	}
	for _, rej := range r.Rejected {
		v.Rejected = append(v.Rejected, RejectionView{
			Ordinal: rej.Ordinal,
			Reason:  rej.Reason,
			Span:    TruncateSpan(rej.Span.Text, w.spanPreview),
			Start:   rej.Span.Start,
			End:     rej.Span.End,
		})
	}
	return v
}

// Render returns r in format.
func (w *Writer) Render(r *models.ExtractionReport, format string) ([]byte, error) {
	var buf bytes.Buffer
	if err := w.Write(&buf, r, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders r in format to out.
func (w *Writer) Write(out io.Writer, r *models.ExtractionReport, format string) error {
	switch strings.ToLower(format) {
	case FormatText, "":
		return w.writeText(out, r)
	case FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(w.View(r)); err != nil {
			return fmt.Errorf("failed to marshal JSON report: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(w.View(r)); err != nil {
			return fmt.Errorf("failed to marshal YAML report: %w", err)
		}
		return enc.Close()
	case FormatCSV:
		return w.writeCSV(out, r)
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}

// WriteFile renders r in format into path, creating parent directories.
func (w *Writer) WriteFile(r *models.ExtractionReport, format, path string) error {
	data, err := w.Render(r, format)
	if err != nil {
		return err
	}
	if err := fileutils.WriteFile(path, data, 0600); err != nil {
		w.logger.WithError(err).Error("Failed to write report", logging.F(logging.FieldFile, path))
		return err
	}
	w.logger.Info("Wrote report",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldFormat, format))
	return nil
}

func (w *Writer) writeText(out io.Writer, r *models.ExtractionReport) error {
	var b strings.Builder
	fmt.Fprintln(&b, r.Summary())
	if r.PageCount > 0 {
		fmt.Fprintf(&b, "pages: %d (%d without text)\n", r.PageCount, r.EmptyPages)
	}
	for _, rej := range r.Rejected {
		fmt.Fprintf(&b, "  question %d skipped (%s): %s\n",
			rej.Ordinal, rej.Reason, TruncateSpan(rej.Span.Text, w.spanPreview))
	}
	_, err := io.WriteString(out, b.String())
	return err
}

func (w *Writer) writeCSV(out io.Writer, r *models.ExtractionReport) error {
	rows := make([]csvRow, 0, len(r.Accepted)+len(r.Rejected))
	for _, q := range r.Accepted {
		rows = append(rows, csvRow{
			Status:   "accepted",
			Ordinal:  q.Ordinal,
			Position: q.Position,
			Question: q.QuestionText,
			OptionA:  q.OptionA,
			OptionB:  q.OptionB,
			OptionC:  q.OptionC,
			OptionD:  q.OptionD,
			Answer:   q.CorrectAnswer,
		})
	}
	for _, rej := range r.Rejected {
		rows = append(rows, csvRow{
			Status:  "rejected",
			Ordinal: rej.Ordinal,
			Reason:  string(rej.Reason),
			Span:    TruncateSpan(rej.Span.Text, w.spanPreview),
		})
	}

	csvWriter := csv.NewWriter(out)
	csvWriter.Comma = w.delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// TruncateSpan collapses whitespace in text and cuts it to at most n runes,
// marking the cut with "...".
func TruncateSpan(text string, n int) string {
	s := strings.Join(strings.Fields(text), " ")
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
