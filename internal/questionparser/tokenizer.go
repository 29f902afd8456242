package questionparser

import (
	"regexp"
	"strconv"
	"strings"
)

// lineKind classifies a physical line of the text blob.
type lineKind int

const (
	kindText lineKind = iota
	kindBlank
	kindOrdinal
	kindOption
	kindAnswer
)

func (k lineKind) String() string {
	switch k {
	case kindBlank:
		return "blank"
	case kindOrdinal:
		return "ordinal"
	case kindOption:
		return "option"
	case kindAnswer:
		return "answer"
	default:
		return "text"
	}
}

var (
	ordinalPattern = regexp.MustCompile(`^\s*(\d+)\.(?:\s+|$)`)
	optionPattern  = regexp.MustCompile(`^\s*([A-D])\.(?:\s+|$)`)
	answerPattern  = regexp.MustCompile(`(?i)^\s*answer\s*:`)
)

// line is one physical line. start and end delimit its content without the
// line terminator; value is where the text after a label begins.
type line struct {
	kind    lineKind
	start   int
	end     int
	value   int
	ordinal int
	letter  string
}

// tokenize splits text into classified lines with byte offsets into text.
// "\r\n" terminators are accepted; the "\r" is excluded from the content.
func tokenize(text string) []line {
	var lines []line
	pos := 0
	for pos < len(text) {
		end := strings.IndexByte(text[pos:], '\n')
		next := 0
		if end < 0 {
			end = len(text)
			next = len(text)
		} else {
			end += pos
			next = end + 1
		}
		contentEnd := end
		if contentEnd > pos && text[contentEnd-1] == '\r' {
			contentEnd--
		}
		lines = append(lines, classify(text, pos, contentEnd))
		pos = next
	}
	return lines
}

func classify(text string, start, end int) line {
	content := text[start:end]
	l := line{kind: kindText, start: start, end: end, value: start}

	if strings.TrimSpace(content) == "" {
		l.kind = kindBlank
		return l
	}
	if m := answerPattern.FindStringIndex(content); m != nil {
		l.kind = kindAnswer
		l.value = start + m[1]
		return l
	}
	if m := optionPattern.FindStringSubmatchIndex(content); m != nil {
		l.kind = kindOption
		l.letter = content[m[2]:m[3]]
		l.value = start + m[1]
		return l
	}
	if m := ordinalPattern.FindStringSubmatchIndex(content); m != nil {
		n, err := strconv.Atoi(content[m[2]:m[3]])
		if err != nil {
			return l
		}
		l.kind = kindOrdinal
		l.ordinal = n
		l.value = start + m[1]
	}
	return l
}

// labeled reports whether the line starts a new field.
func (l line) labeled() bool {
	return l.kind == kindOrdinal || l.kind == kindOption || l.kind == kindAnswer
}

// splitsDecimal reports whether an ordinal line is the tail of a number
// broken after its decimal point, as in "3. 5 percent".
func (l line) splitsDecimal(text string) bool {
	return l.kind == kindOrdinal && l.value < l.end && text[l.value] >= '0' && text[l.value] <= '9'
}
