package transcription

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Words normalises a cleaned line (NFKC, lower case) and returns its runs of
// letters. Everything else separates words.
func Words(line string) []string {
	line = strings.ToLower(norm.NFKC.String(line))
	return strings.FieldsFunc(line, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}
