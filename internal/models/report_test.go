package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractionReport_Summary(t *testing.T) {
	r := NewExtractionReport(3)
	assert.Equal(t, "0 of 0 questions imported, 0 skipped", r.Summary())
	assert.NotNil(t, r.Accepted)
	assert.NotNil(t, r.Rejected)

	r.Accepted = append(r.Accepted, QuestionRecord{}, QuestionRecord{})
	r.Rejected = append(r.Rejected, Rejection{Reason: MissingAnswer})
	r.TotalBlocksFound = 3
	assert.Equal(t, "2 of 3 questions imported, 1 skipped", r.Summary())
}

func TestExtractionReport_RejectionCounts(t *testing.T) {
	r := NewExtractionReport(1)
	r.Rejected = []Rejection{
		{Reason: MissingAnswer},
		{Reason: EmptyField},
		{Reason: MissingAnswer},
	}
	counts := r.RejectionCounts()
	assert.Equal(t, 2, counts[MissingAnswer])
	assert.Equal(t, 1, counts[EmptyField])
	assert.Zero(t, counts[InvalidAnswerLetter])
}

func TestIsOptionLetter(t *testing.T) {
	for _, l := range []string{"A", "B", "C", "D"} {
		assert.True(t, IsOptionLetter(l), l)
	}
	for _, l := range []string{"", "E", "a", "AB", " B"} {
		assert.False(t, IsOptionLetter(l), l)
	}
}

func TestQuestionRecord_OptionAndWithoutAnswer(t *testing.T) {
	q := QuestionRecord{OptionA: "3", OptionB: "4", OptionC: "5", OptionD: "6", CorrectAnswer: "B"}
	assert.Equal(t, "4", q.Option("B"))
	assert.Equal(t, "", q.Option("E"))

	hidden := q.WithoutAnswer()
	assert.Empty(t, hidden.CorrectAnswer)
	assert.Equal(t, "B", q.CorrectAnswer)
}
