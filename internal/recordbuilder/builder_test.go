package recordbuilder

import (
	"testing"

	"fjacquet/mocktest/internal/extractionerror"
	"fjacquet/mocktest/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawMatch(question string, options [4]string, answer string) models.RawQuestionMatch {
	return models.RawQuestionMatch{
		Ordinal:      3,
		QuestionText: question,
		Options:      options,
		AnswerLetter: answer,
	}
}

func TestBuild_Valid(t *testing.T) {
	raw := rawMatch(" What is\n  2+2? \n", [4]string{"3 ", "\n4", "5\n", " 6"}, " B ")

	rec, err := Build(raw, 42)
	require.NoError(t, err)
	assert.Equal(t, models.QuestionRecord{
		TestID:        42,
		Ordinal:       3,
		QuestionText:  "What is 2+2?",
		OptionA:       "3",
		OptionB:       "4",
		OptionC:       "5",
		OptionD:       "6",
		CorrectAnswer: "B",
	}, rec)
}

func TestBuild_Rejections(t *testing.T) {
	full := [4]string{"a", "b", "c", "d"}
	tests := []struct {
		name   string
		raw    models.RawQuestionMatch
		reason models.RejectReason
	}{
		{name: "empty question", raw: rawMatch("", full, "A"), reason: models.EmptyField},
		{name: "whitespace question", raw: rawMatch(" \n\t", full, "A"), reason: models.EmptyField},
		{name: "empty option C", raw: rawMatch("Q", [4]string{"a", "b", "  ", "d"}, "A"), reason: models.EmptyField},
		{name: "letter outside options", raw: rawMatch("Q", full, "E"), reason: models.InvalidAnswerLetter},
		{name: "lowercase letter", raw: rawMatch("Q", full, "b"), reason: models.InvalidAnswerLetter},
		{name: "digit", raw: rawMatch("Q", full, "2"), reason: models.InvalidAnswerLetter},
		{name: "empty field wins over bad letter", raw: rawMatch("Q", [4]string{"", "b", "c", "d"}, "Z"), reason: models.EmptyField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.raw, 1)
			require.Error(t, err)

			var be *extractionerror.BlockError
			require.ErrorAs(t, err, &be)
			assert.Equal(t, tt.reason, be.Reason)
			assert.Equal(t, 3, be.Ordinal)
		})
	}
}

func TestBuild_AllLettersAccepted(t *testing.T) {
	for _, letter := range models.OptionLetters {
		rec, err := Build(rawMatch("Q", [4]string{"a", "b", "c", "d"}, letter), 7)
		require.NoError(t, err)
		assert.Equal(t, letter, rec.CorrectAnswer)
		assert.Equal(t, int64(7), rec.TestID)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "", Normalize(" \n "))
	assert.Equal(t, "one two three", Normalize("one\ntwo   three\r\n"))
}
