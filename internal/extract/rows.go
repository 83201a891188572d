package extract

import (
	"regexp"
	"strings"
)

// RawRow is a group of physical OCR lines believed to form one logical
// table entry, in original order.
type RawRow struct {
	Lines []string
}

// Joined returns the row as a single string with the original token
// boundaries preserved.
func (r RawRow) Joined() string {
	return strings.Join(r.Lines, " ")
}

// Grouped amounts appear in both Indian (1,49,999.97) and Western
// (149,999.97) digit grouping, so the comma groups are 2 or 3 digits.
const decimalPat = `(?:\d{1,3}(?:,\d{2,3})+|\d+)\.\d{1,2}`

var (
	rowNumberRe       = regexp.MustCompile(`^\d+[\t ]`)
	decimalRe         = regexp.MustCompile(decimalPat)
	trailingAmountsRe = regexp.MustCompile(decimalPat + `[\t ]+` + decimalPat + `[\t ]*$`)
)

// reconstructRows re-groups the product-table lines into one RawRow per
// logical entry. A line opens a new row when it starts with a row-number
// token, a dictionary company name, or an accessory keyword. An open row
// accumulates continuation lines until its text ends in two decimal tokens
// (unit price and line amount) or until the next opener appears. A row
// whose numeric tail arrived before its product name may absorb exactly
// one trailing name line; beyond that the reconstructor always prefers
// closing early over swallowing the start of the next row.
func reconstructRows(lines []string, dict Dictionary) []RawRow {
	var rows []RawRow
	var cur []string
	curDone := false

	flush := func() {
		if cur != nil {
			rows = append(rows, RawRow{Lines: cur})
			cur = nil
			curDone = false
		}
	}

	for _, line := range lines {
		if opensRow(line, dict) {
			flush()
			cur = []string{line}
			curDone = trailingAmountsRe.MatchString(line)
			continue
		}
		if cur == nil {
			// Line outside any row: dropped.
			continue
		}
		if curDone {
			if !decimalRe.MatchString(line) && lacksName(strings.Join(cur, " "), dict) {
				cur = append(cur, line)
			}
			flush()
			continue
		}
		cur = append(cur, line)
		if trailingAmountsRe.MatchString(strings.Join(cur, " ")) {
			curDone = true
		}
	}
	flush()
	return rows
}

func opensRow(line string, dict Dictionary) bool {
	if rowNumberRe.MatchString(line) {
		return true
	}
	if dict.HasCompanyPrefix(line) {
		return true
	}
	return dict.IsAccessory(line)
}

// lacksName reports whether the accumulated row text has no product-name
// content yet: after discounting the company token, unit tokens and all
// numeric material, no word of three or more letters remains.
func lacksName(joined string, dict Dictionary) bool {
	s := joined
	if c, ok := dict.MatchCompany(s); ok {
		s = removeFirstFold(s, c)
	}
	for _, w := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t'
	}) {
		if dict.IsUnit(w) {
			continue
		}
		if letterCount(w) >= 3 {
			return false
		}
	}
	return true
}

// removeFirstFold removes the first case-insensitive occurrence of sub
// from s.
func removeFirstFold(s, sub string) string {
	i := strings.Index(strings.ToLower(s), strings.ToLower(sub))
	if i < 0 {
		return s
	}
	return s[:i] + s[i+len(sub):]
}

func letterCount(w string) int {
	n := 0
	for _, r := range w {
		if isLetterRune(r) {
			n++
		}
	}
	return n
}
