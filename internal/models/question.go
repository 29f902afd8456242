// Package models holds the domain types shared by the extraction pipeline,
// the record store and the HTTP layer.
package models

// Option letters in the fixed order a question block lists them.
const (
	OptionA = "A"
	OptionB = "B"
	OptionC = "C"
	OptionD = "D"
)

// OptionLetters lists the valid answer letters in document order.
var OptionLetters = [4]string{OptionA, OptionB, OptionC, OptionD}

// IsOptionLetter reports whether s is exactly one of A, B, C or D.
func IsOptionLetter(s string) bool {
	for _, l := range OptionLetters {
		if s == l {
			return true
		}
	}
	return false
}

// Span is a contiguous byte range [Start, End) of an extracted text blob.
type Span struct {
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end" yaml:"end"`
	Text  string `json:"text" yaml:"text"`
}

// RawQuestionMatch holds the unvalidated fields of one question block. Every
// string is a substring of the source text and may carry surrounding
// whitespace or line breaks.
type RawQuestionMatch struct {
	Ordinal      int
	QuestionText string
	Options      [4]string
	AnswerLetter string
	Span         Span
}

// QuestionRecord is a validated, store-ready question.
type QuestionRecord struct {
	ID            int64  `json:"id" yaml:"id"`
	TestID        int64  `json:"test_id" yaml:"test_id"`
	Position      int    `json:"position" yaml:"position"`
	Ordinal       int    `json:"ordinal" yaml:"ordinal"`
	QuestionText  string `json:"question" yaml:"question"`
	OptionA       string `json:"option_a" yaml:"option_a"`
	OptionB       string `json:"option_b" yaml:"option_b"`
	OptionC       string `json:"option_c" yaml:"option_c"`
	OptionD       string `json:"option_d" yaml:"option_d"`
	CorrectAnswer string `json:"correct_answer,omitempty" yaml:"correct_answer"`
}

// Option returns the text of the option labelled letter, or "" for an
// unknown letter.
func (q QuestionRecord) Option(letter string) string {
	switch letter {
	case OptionA:
		return q.OptionA
	case OptionB:
		return q.OptionB
	case OptionC:
		return q.OptionC
	case OptionD:
		return q.OptionD
	}
	return ""
}

// WithoutAnswer returns a copy safe to show to a test taker.
func (q QuestionRecord) WithoutAnswer() QuestionRecord {
	q.CorrectAnswer = ""
	return q
}
