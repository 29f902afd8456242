package models

import "fmt"

// RejectReason tags why a question block was not imported.
type RejectReason string

const (
	// MissingAnswer: the block has a question and four options but no
	// well-formed "Answer:" line.
	MissingAnswer RejectReason = "MissingAnswer"
	// EmptyField: the question or an option is blank after trimming.
	EmptyField RejectReason = "EmptyField"
	// InvalidAnswerLetter: the answer is not one of A, B, C or D.
	InvalidAnswerLetter RejectReason = "InvalidAnswerLetter"
	// IncompleteOptions: option labels started but are missing or out of order.
	IncompleteOptions RejectReason = "IncompleteOptions"
)

// Rejection is a block that was found but skipped.
type Rejection struct {
	Ordinal int          `json:"ordinal" yaml:"ordinal"`
	Reason  RejectReason `json:"reason" yaml:"reason"`
	Span    Span         `json:"span" yaml:"span"`
}

// ExtractionReport is the outcome of one pipeline run over a document.
type ExtractionReport struct {
	TestID           int64            `json:"test_id" yaml:"test_id"`
	TotalBlocksFound int              `json:"total_blocks_found" yaml:"total_blocks_found"`
	Accepted         []QuestionRecord `json:"accepted" yaml:"accepted"`
	Rejected         []Rejection      `json:"rejected" yaml:"rejected"`
	PageCount        int              `json:"page_count" yaml:"page_count"`
	EmptyPages       int              `json:"empty_pages" yaml:"empty_pages"`
	Committed        bool             `json:"committed" yaml:"committed"`
}

// NewExtractionReport returns a report with non-nil slices so that an empty
// document serialises as empty lists.
func NewExtractionReport(testID int64) *ExtractionReport {
	return &ExtractionReport{
		TestID:   testID,
		Accepted: []QuestionRecord{},
		Rejected: []Rejection{},
	}
}

// Summary renders the user-facing one-liner, e.g.
// "12 of 15 questions imported, 3 skipped".
func (r *ExtractionReport) Summary() string {
	return fmt.Sprintf("%d of %d questions imported, %d skipped",
		len(r.Accepted), r.TotalBlocksFound, len(r.Rejected))
}

// RejectionCounts tallies rejections per reason.
func (r *ExtractionReport) RejectionCounts() map[RejectReason]int {
	counts := make(map[RejectReason]int)
	for _, rej := range r.Rejected {
		counts[rej.Reason]++
	}
	return counts
}
