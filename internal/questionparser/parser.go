// Package questionparser finds multiple-choice question blocks in the text
// of an extracted document.
//
// A block is an ordinal line ("12. text"), four option lines labelled A. to
// D. in that order, and an "Answer: X" line. Field text may continue over
// unlabelled lines up to the next labelled one.
package questionparser

import (
	"iter"
	"strings"
	"unicode/utf8"

	"fjacquet/mocktest/internal/models"
)

// Block is one question candidate. Exactly one of Match and Reason is set.
type Block struct {
	Ordinal int
	Span    models.Span
	Match   *models.RawQuestionMatch
	Reason  models.RejectReason
}

// Rejected reports whether the block was found but is malformed.
func (b Block) Rejected() bool {
	return b.Match == nil
}

// Parse returns the question blocks of text in document order. The sequence
// is lazy and holds no state between iterations, so ranging over it twice
// yields the same blocks.
func Parse(text string) iter.Seq[Block] {
	return func(yield func(Block) bool) {
		lines := tokenize(text)
		i := 0
		for i < len(lines) {
			if lines[i].kind != kindOrdinal {
				i++
				continue
			}

			blk, next := scanBlock(text, lines, i)
			if next <= i {
				next = i + 1
			}
			i = next

			if blk != nil && !yield(*blk) {
				return
			}
		}
	}
}

// Collect drains Parse into a slice.
func Collect(text string) []Block {
	var out []Block
	for b := range Parse(text) {
		out = append(out, b)
	}
	return out
}

// scanBlock reads the block whose ordinal line is lines[start]. It returns a
// nil block for a candidate that never reaches option A, and the index of the
// line where scanning resumes.
func scanBlock(text string, lines []line, start int) (*Block, int) {
	head := lines[start]

	question, j := field(text, lines, start, true)
	if j >= len(lines) || lines[j].kind != kindOption || lines[j].letter != models.OptionA {
		return nil, j
	}

	var options [4]string
	for k, letter := range models.OptionLetters {
		if j >= len(lines) || lines[j].kind != kindOption || lines[j].letter != letter {
			return reject(text, head, lines[j-1].end, models.IncompleteOptions), j
		}
		options[k], j = field(text, lines, j, false)
	}

	if j >= len(lines) || lines[j].kind != kindAnswer {
		return reject(text, head, lines[j-1].end, models.MissingAnswer), j
	}

	ans := lines[j]
	letter := strings.TrimSpace(text[ans.value:ans.end])
	if utf8.RuneCountInString(letter) != 1 {
		return reject(text, head, ans.end, models.MissingAnswer), j + 1
	}

	span := spanOf(text, head.start, ans.end)
	return &Block{
		Ordinal: head.ordinal,
		Span:    span,
		Match: &models.RawQuestionMatch{
			Ordinal:      head.ordinal,
			QuestionText: question,
			Options:      options,
			AnswerLetter: letter,
			Span:         span,
		},
	}, j + 1
}

// field returns the text following the label of lines[at], extended over the
// unlabelled lines after it, and the index of the line that ends it.
//
// Ordinal-looking lines do not always end a field. In question text a line
// such as "3. 5 percent" is a wrapped decimal and continues the field. In an
// option an ordinal line ends the field only when a complete block follows it.
func field(text string, lines []line, at int, question bool) (string, int) {
	end := lines[at].end
	j := at + 1
	for j < len(lines) && !endsField(text, lines, j, question) {
		end = lines[j].end
		j++
	}
	return text[lines[at].value:end], j
}

func endsField(text string, lines []line, j int, question bool) bool {
	l := lines[j]
	if l.kind != kindOrdinal {
		return l.labeled()
	}
	if question {
		return !l.splitsDecimal(text)
	}
	return startsBlock(lines, j)
}

// startsBlock reports whether the ordinal line lines[at] is followed by
// options A to D in order and an answer line. Only the labels are checked;
// text and ordinal lines between them are skipped.
func startsBlock(lines []line, at int) bool {
	want := 0
	for _, l := range lines[at+1:] {
		switch l.kind {
		case kindOption:
			if want >= len(models.OptionLetters) || l.letter != models.OptionLetters[want] {
				return false
			}
			want++
		case kindAnswer:
			return want == len(models.OptionLetters)
		}
	}
	return false
}

func reject(text string, head line, end int, reason models.RejectReason) *Block {
	return &Block{
		Ordinal: head.ordinal,
		Span:    spanOf(text, head.start, end),
		Reason:  reason,
	}
}

func spanOf(text string, start, end int) models.Span {
	return models.Span{Start: start, End: end, Text: text[start:end]}
}
