package extract

import (
	"regexp"
	"strings"
)

// NormalizedText is the cleaned OCR output, split into non-empty lines.
type NormalizedText struct {
	Lines []string
}

// String joins the lines back into one block of text.
func (n NormalizedText) String() string {
	return strings.Join(n.Lines, "\n")
}

var (
	tabRunRe   = regexp.MustCompile(`[ ]*\t[\t ]*`)
	spaceRunRe = regexp.MustCompile(` {2,}`)
)

// Normalize repairs common OCR artifacts and collapses whitespace. Runs of
// tabs collapse to a single tab (tabs are column separators and must
// survive), runs of spaces to a single space. Glyph repair is
// context-sensitive: a confused character is only rewritten when both of
// its neighbors agree on the character class, so digit sequences inside
// numeric tokens are never altered. Normalize never fails; garbage in
// yields garbage lines out.
func Normalize(raw string) NormalizedText {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = tabRunRe.ReplaceAllString(line, "\t")
		line = spaceRunRe.ReplaceAllString(line, " ")
		line = strings.Trim(line, " \t")
		line = repairGlyphs(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return NormalizedText{Lines: lines}
}

// repairGlyphs fixes the classic OCR confusions O/0, l/1, I/1 and | using
// the character class of both neighbors.
func repairGlyphs(line string) string {
	rs := []rune(line)
	for i, r := range rs {
		prev, next := rune(0), rune(0)
		if i > 0 {
			prev = rs[i-1]
		}
		if i < len(rs)-1 {
			next = rs[i+1]
		}
		switch {
		case (r == 'O' || r == 'o') && isDigitRune(prev) && isDigitRune(next):
			rs[i] = '0'
		case r == '0' && isLetterRune(prev) && isLetterRune(next):
			rs[i] = 'O'
		case (r == 'l' || r == 'I' || r == '|') && isDigitRune(prev) && isDigitRune(next):
			rs[i] = '1'
		}
	}
	return string(rs)
}

func isDigitRune(r rune) bool {
	return r >= '0' && r <= '9'
}

func isLetterRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
