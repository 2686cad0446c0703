package interpreter

import (
	"strings"
	"unicode"
)

// Confirmation is the reading of a reply to "is the word X?"
type Confirmation int

const (
	ConfirmationUnclear Confirmation = iota
	ConfirmationAccepted
	ConfirmationRejected
)

// An explicit "yes" wins over everything; otherwise rejections are checked before the
// remaining accept words so "incorrect" does not read as "correct".
var (
	rejectKeywords = []string{"spell", "incorrect", "wrong", "no"}
	acceptKeywords = []string{"yeah", "correct", "right"}
)

// ClassifyConfirmation reads a yes/no/spell reply during seed phrase import
func ClassifyConfirmation(transcript string) Confirmation {
	text := normalize(transcript)
	switch {
	case strings.Contains(text, "yes"):
		return ConfirmationAccepted
	case containsAny(text, rejectKeywords):
		return ConfirmationRejected
	case containsAny(text, acceptKeywords):
		return ConfirmationAccepted
	}
	return ConfirmationUnclear
}

// SpelledWord joins letters dictated one by one ("a p p l e", "A. P. P. L. E.") into a word
func SpelledWord(transcript string) string {
	parts := strings.FieldsFunc(normalize(transcript), func(r rune) bool {
		return unicode.IsSpace(r) || r == '.' || r == ','
	})
	return strings.Join(parts, "")
}

// CandidateWord takes the first whitespace-delimited token, stripped of punctuation
func CandidateWord(transcript string) string {
	fields := strings.Fields(normalize(transcript))
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimFunc(fields[0], func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}
