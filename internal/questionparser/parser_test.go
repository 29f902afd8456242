package questionparser

import (
	"strings"
	"testing"

	"fjacquet/mocktest/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoPlusTwo = "1. What is 2+2?\nA. 3\nB. 4\nC. 5\nD. 6\nAnswer: B\n"

func ordinals(blocks []Block) []int {
	out := make([]int, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, b.Ordinal)
	}
	return out
}

func TestParse_SingleValidBlock(t *testing.T) {
	blocks := Collect(twoPlusTwo)
	require.Len(t, blocks, 1)

	b := blocks[0]
	require.False(t, b.Rejected())
	assert.Equal(t, 1, b.Ordinal)
	assert.Equal(t, "What is 2+2?", b.Match.QuestionText)
	assert.Equal(t, [4]string{"3", "4", "5", "6"}, b.Match.Options)
	assert.Equal(t, "B", b.Match.AnswerLetter)
	assert.Equal(t, 0, b.Span.Start)
	assert.Equal(t, strings.TrimSuffix(twoPlusTwo, "\n"), b.Span.Text)
	assert.Equal(t, b.Span, b.Match.Span)
}

func TestParse_MissingAnswerLine(t *testing.T) {
	blocks := Collect("1. What is 2+2?\nA. 3\nB. 4\nC. 5\nD. 6\n")
	require.Len(t, blocks, 1)
	assert.True(t, blocks[0].Rejected())
	assert.Equal(t, models.MissingAnswer, blocks[0].Reason)
	assert.Equal(t, 1, blocks[0].Ordinal)
	assert.Equal(t, "1. What is 2+2?\nA. 3\nB. 4\nC. 5\nD. 6", blocks[0].Span.Text)
}

func TestParse_ProseBetweenBlocks(t *testing.T) {
	text := "1. First?\nA. a\nB. b\nC. c\nD. d\nAnswer: A\n" +
		"See section 5 for details.\n" +
		"5. this line only looks like a question\n" +
		"2. Second?\nA. e\nB. f\nC. g\nD. h\nAnswer: C\n"

	blocks := Collect(text)
	require.Len(t, blocks, 2)
	assert.Equal(t, []int{1, 2}, ordinals(blocks))
	assert.Equal(t, "A", blocks[0].Match.AnswerLetter)
	assert.Equal(t, "C", blocks[1].Match.AnswerLetter)
	assert.Equal(t, "Second?", blocks[1].Match.QuestionText)
}

func TestParse_EmptyInput(t *testing.T) {
	for _, text := range []string{"", "\n\n", "   \n\t\n", "Just an introduction page.\n"} {
		assert.Empty(t, Collect(text), "text %q", text)
	}
}

func TestParse_AnswerValues(t *testing.T) {
	const body = "7. Pick one\nA. w\nB. x\nC. y\nD. z\n"
	tests := []struct {
		name       string
		answer     string
		wantReason models.RejectReason
		wantLetter string
	}{
		{name: "letter with spaces", answer: "Answer:   D  ", wantLetter: "D"},
		{name: "case-insensitive label", answer: "answer : c", wantLetter: "c"},
		{name: "letter outside options reaches builder", answer: "Answer: Z", wantLetter: "Z"},
		{name: "empty value", answer: "Answer:", wantReason: models.MissingAnswer},
		{name: "two letters", answer: "Answer: BC", wantReason: models.MissingAnswer},
		{name: "word", answer: "Answer: none", wantReason: models.MissingAnswer},
		{name: "letter with trailing note", answer: "Answer: B (see note)", wantReason: models.MissingAnswer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := Collect(body + tt.answer + "\n")
			require.Len(t, blocks, 1)
			assert.Equal(t, 7, blocks[0].Ordinal)
			if tt.wantReason != "" {
				assert.True(t, blocks[0].Rejected())
				assert.Equal(t, tt.wantReason, blocks[0].Reason)
				assert.True(t, strings.HasSuffix(blocks[0].Span.Text, tt.answer))
				return
			}
			require.False(t, blocks[0].Rejected())
			assert.Equal(t, tt.wantLetter, blocks[0].Match.AnswerLetter)
		})
	}
}

func TestParse_IncompleteOptions(t *testing.T) {
	text := "1. Skips C\nA. a\nB. b\nD. d\nAnswer: A\n" +
		"2. Fine\nA. a\nB. b\nC. c\nD. d\nAnswer: B\n"

	blocks := Collect(text)
	require.Len(t, blocks, 2)
	assert.Equal(t, models.IncompleteOptions, blocks[0].Reason)
	assert.Equal(t, "1. Skips C\nA. a\nB. b", blocks[0].Span.Text)
	require.False(t, blocks[1].Rejected())
	assert.Equal(t, 2, blocks[1].Ordinal)
}

func TestParse_CandidateWithoutOptionsIsDiscarded(t *testing.T) {
	text := "3. Introduction paragraph\nmore prose\n" +
		"4. Real?\nA. a\nB. b\nC. c\nD. d\nAnswer: D\n" +
		"5. Trailing heading"

	blocks := Collect(text)
	require.Len(t, blocks, 1)
	assert.Equal(t, 4, blocks[0].Ordinal)
}

func TestParse_MissingAnswerDoesNotSwallowNextBlock(t *testing.T) {
	text := "1. No answer\nA. a\nB. b\nC. c\nD. d\n" +
		"2. Has answer\nA. a\nB. b\nC. c\nD. d\nAnswer: A\n"

	blocks := Collect(text)
	require.Len(t, blocks, 2)
	assert.Equal(t, models.MissingAnswer, blocks[0].Reason)
	assert.False(t, blocks[1].Rejected())
	assert.Equal(t, "Has answer", blocks[1].Match.QuestionText)
}

func TestParse_MultiLineFields(t *testing.T) {
	text := "10.\nWhich statement about\nGo channels is true?\n\n" +
		"A. They are\n   always buffered\nB. They can be closed\n" +
		"C. They are files\nD. None\nAnswer: B\n"

	blocks := Collect(text)
	require.Len(t, blocks, 1)
	m := blocks[0].Match
	require.NotNil(t, m)
	assert.Equal(t, 10, m.Ordinal)
	assert.Equal(t, "\nWhich statement about\nGo channels is true?\n", m.QuestionText)
	assert.Equal(t, "They are\n   always buffered", m.Options[0])
	assert.Equal(t, "They can be closed", m.Options[1])
}

func TestParse_FieldsAreSubstringsOfSource(t *testing.T) {
	text := "Header\n" + twoPlusTwo
	blocks := Collect(text)
	require.Len(t, blocks, 1)

	b := blocks[0]
	assert.Equal(t, len("Header\n"), b.Span.Start)
	assert.Equal(t, text[b.Span.Start:b.Span.End], b.Span.Text)
	assert.Contains(t, text, b.Match.QuestionText)
	for _, opt := range b.Match.Options {
		assert.Contains(t, b.Span.Text, opt)
	}
}

func TestParse_CRLF(t *testing.T) {
	text := strings.ReplaceAll(twoPlusTwo, "\n", "\r\n")
	blocks := Collect(text)
	require.Len(t, blocks, 1)
	require.False(t, blocks[0].Rejected())
	assert.Equal(t, "What is 2+2?", blocks[0].Match.QuestionText)
	assert.Equal(t, "B", blocks[0].Match.AnswerLetter)
}

func TestParse_IsRestartable(t *testing.T) {
	text := twoPlusTwo + "2. Missing\nA. a\nB. b\nC. c\nD. d\n" + strings.Replace(twoPlusTwo, "1.", "3.", 1)
	seq := Parse(text)

	var first, second []Block
	for b := range seq {
		first = append(first, b)
	}
	for b := range seq {
		second = append(second, b)
	}
	assert.Equal(t, first, second)
	assert.Equal(t, first, Collect(text))
}

func TestParse_DocumentOrder(t *testing.T) {
	var b strings.Builder
	for _, n := range []string{"4", "9", "2", "15"} {
		b.WriteString(n + ". Q" + n + "\nA. a\nB. b\nC. c\nD. d\nAnswer: A\n")
	}
	assert.Equal(t, []int{4, 9, 2, 15}, ordinals(Collect(b.String())))
}

func TestParse_StopsWhenConsumerStops(t *testing.T) {
	text := strings.Repeat(twoPlusTwo, 5)
	count := 0
	for range Parse(text) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestParse_OrdinalLookingLinesInsideFields(t *testing.T) {
	const options = "B. b\nC. c\nD. d\nAnswer: A\n"
	tests := []struct {
		name         string
		text         string
		wantOrdinal  int
		wantQuestion string
		wantOptionA  string
	}{
		{
			name:         "wrapped year in option",
			text:         "1. Which year?\nA. The year\n2023. was good\n" + options,
			wantOrdinal:  1,
			wantQuestion: "Which year?",
			wantOptionA:  "The year\n2023. was good",
		},
		{
			name:         "wrapped decimal in question",
			text:         "1. Pick the rate\n3. 5 percent is\nA. low\n" + options,
			wantOrdinal:  1,
			wantQuestion: "Pick the rate\n3. 5 percent is",
			wantOptionA:  "low",
		},
		{
			name:         "numbered list in option",
			text:         "4. Which steps?\nA. these:\n1. first\n2. second\n" + options,
			wantOrdinal:  4,
			wantQuestion: "Which steps?",
			wantOptionA:  "these:\n1. first\n2. second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := Collect(tt.text)
			require.Len(t, blocks, 1)
			require.False(t, blocks[0].Rejected(), "reason %s", blocks[0].Reason)
			m := blocks[0].Match
			assert.Equal(t, tt.wantOrdinal, m.Ordinal)
			assert.Equal(t, tt.wantQuestion, m.QuestionText)
			assert.Equal(t, tt.wantOptionA, m.Options[0])
			assert.Equal(t, strings.TrimSuffix(tt.text, "\n"), blocks[0].Span.Text)
		})
	}
}

func TestParse_OrdinalInOptionStartsBlockWhenComplete(t *testing.T) {
	text := "1. First\nA. a\nB. b\nC. c\nD. d\n" +
		"2. Second\nA. e\nB. f\nC. g\nD. h\nAnswer: B\n"

	blocks := Collect(text)
	require.Len(t, blocks, 2)
	assert.Equal(t, models.MissingAnswer, blocks[0].Reason)
	assert.Equal(t, "1. First\nA. a\nB. b\nC. c\nD. d", blocks[0].Span.Text)
	require.False(t, blocks[1].Rejected())
	assert.Equal(t, "Second", blocks[1].Match.QuestionText)
}

func TestParse_AnswerLetterOnNextLine(t *testing.T) {
	blocks := Collect("7. Pick one\nA. w\nB. x\nC. y\nD. z\nAnswer:\nB\n")
	require.Len(t, blocks, 1)
	assert.Equal(t, models.MissingAnswer, blocks[0].Reason)
	assert.Equal(t, "7. Pick one\nA. w\nB. x\nC. y\nD. z\nAnswer:", blocks[0].Span.Text)
}
