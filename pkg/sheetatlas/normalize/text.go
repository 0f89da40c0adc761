package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/ukaji3/sheetatlas-go/pkg/sheetatlas/models"
)

// zeroWidth is the set of invisible format characters stripped from text.
var zeroWidth = map[rune]bool{
	'\u200b': true, // zero width space
	'\u200c': true, // zero width non-joiner
	'\u200d': true, // zero width joiner
	'\u2060': true, // word joiner
	'\ufeff': true, // byte order mark
	'\u180e': true, // mongolian vowel separator
}

// strippable matches zero-width characters and control characters other
// than newline and tab.
var strippable = runes.Predicate(func(r rune) bool {
	if zeroWidth[r] {
		return true
	}
	return unicode.Is(unicode.Cc, r) && r != '\n' && r != '\t'
})

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// cleanText normalizes line endings to "\n", composes to NFC, strips
// invisible and control characters, and trims surrounding whitespace.
// The issue is InvalidCharacters when characters were stripped, else
// ExtraWhitespace when trimming changed the text.
func cleanText(s string) (string, models.DataQualityIssue) {
	s = lineEndings.Replace(s)
	composed := norm.NFC.String(s)

	// Transformers carry state, so one per call.
	stripped, _, err := transform.String(runes.Remove(strippable), composed)
	if err != nil {
		stripped = strings.Map(func(r rune) rune {
			if strippable.Contains(r) {
				return -1
			}
			return r
		}, composed)
	}

	trimmed := strings.TrimFunc(stripped, unicode.IsSpace)

	switch {
	case len(stripped) != len(composed):
		return trimmed, models.IssueInvalidCharacters
	case len(trimmed) != len(stripped):
		return trimmed, models.IssueExtraWhitespace
	default:
		return trimmed, models.IssueNone
	}
}

// CleanText is the text pre-pass applied to every string cell.
func CleanText(s string) string {
	out, _ := cleanText(s)
	return out
}
