// Package recordbuilder validates raw question matches and turns them into
// store-ready records.
package recordbuilder

import (
	"strings"

	"fjacquet/mocktest/internal/extractionerror"
	"fjacquet/mocktest/internal/models"
)

// Build normalises the fields of raw and stamps testID into the resulting
// record. It returns a *extractionerror.BlockError carrying EmptyField or
// InvalidAnswerLetter when raw cannot become a record.
func Build(raw models.RawQuestionMatch, testID int64) (models.QuestionRecord, error) {
	question := Normalize(raw.QuestionText)
	var options [4]string
	for i, opt := range raw.Options {
		options[i] = Normalize(opt)
	}

	if question == "" {
		return models.QuestionRecord{}, blockError(raw, models.EmptyField)
	}
	for _, opt := range options {
		if opt == "" {
			return models.QuestionRecord{}, blockError(raw, models.EmptyField)
		}
	}

	answer := strings.TrimSpace(raw.AnswerLetter)
	if !models.IsOptionLetter(answer) {
		return models.QuestionRecord{}, blockError(raw, models.InvalidAnswerLetter)
	}

	return models.QuestionRecord{
		TestID:        testID,
		Ordinal:       raw.Ordinal,
		QuestionText:  question,
		OptionA:       options[0],
		OptionB:       options[1],
		OptionC:       options[2],
		OptionD:       options[3],
		CorrectAnswer: answer,
	}, nil
}

// Normalize trims s and collapses every run of whitespace, line breaks
// included, to a single space.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func blockError(raw models.RawQuestionMatch, reason models.RejectReason) error {
	return &extractionerror.BlockError{Ordinal: raw.Ordinal, Reason: reason}
}
