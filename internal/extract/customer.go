package extract

import (
	"regexp"
	"strings"
)

var (
	labeledPhoneRe = regexp.MustCompile(`(?i)\b(?:mobile|mob|phone|ph|contact|tel|whatsapp)\.?\s*(?:no|number)?\.?\s*[:\-]?\s*(?:\+?91[\s\-]?)?([6-9]\d{9})\b`)
	barePhoneRe    = regexp.MustCompile(`\b([6-9]\d{9})\b`)
	gstinRe        = regexp.MustCompile(`(?i)\bGSTIN(?:\s*/\s*UIN)?\s*(?:no\.?)?\s*[:\-]?\s*(\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z])`)
	stateNameRe    = regexp.MustCompile(`(?i)\bstate(?:\s*name)?\s*[:\-]\s*([A-Za-z][A-Za-z ]*?)(?:\s*,|\s+code\b|$)`)
	stateCodeRe    = regexp.MustCompile(`(?i)\bstate\s*code\s*[:\-]?\s*(\d{1,2})\b`)
	// A bare "Code: NN" identifies the state code only on the state
	// name's own line; elsewhere it could be a truncated PIN label.
	bareCodeRe = regexp.MustCompile(`(?i)\bcode\s*[:\-]?\s*(\d{1,2})\b`)
)

// extractCustomer pulls the buyer identity from the Customer section.
// Every regex here runs against the section's own lines only, so a seller
// phone number printed above the buyer anchor can never leak into the
// customer's contact fields.
func extractCustomer(sec Section) CustomerRecord {
	var rec CustomerRecord
	if sec.Empty() {
		return rec
	}

	lines := sec.Lines
	joined := sec.Joined()

	// Name: text after the anchor's colon when present, otherwise the
	// first substantive line below the anchor.
	nameIdx := 0
	if after := afterAnchorColon(lines[0]); after != "" {
		rec.Name = after
	} else {
		for i := 1; i < len(lines); i++ {
			if isSubstantive(lines[i]) {
				rec.Name = cleanupName(lines[i])
				nameIdx = i
				break
			}
		}
	}

	// Address: lines below the name until a phone/GSTIN/state marker.
	var addr []string
	for i := nameIdx + 1; i < len(lines); i++ {
		if isMarkerLine(lines[i]) {
			break
		}
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		addr = append(addr, strings.TrimSpace(lines[i]))
	}
	rec.Address = strings.Join(addr, ", ")

	// Labeled numbers are strictly preferred; the bare 10-digit fallback
	// only applies when no label exists anywhere in the section.
	labeled := labeledPhoneRe.FindAllStringSubmatch(joined, -1)
	switch {
	case len(labeled) >= 2:
		rec.Phone = labeled[0][1]
		rec.AltPhone = labeled[1][1]
	case len(labeled) == 1:
		rec.Phone = labeled[0][1]
	default:
		if m := barePhoneRe.FindStringSubmatch(joined); m != nil {
			rec.Phone = m[1]
		}
	}

	if m := gstinRe.FindStringSubmatch(joined); m != nil {
		rec.GSTIN = m[1]
	}
	for _, line := range lines {
		if m := stateNameRe.FindStringSubmatch(line); m != nil {
			rec.State = strings.TrimSpace(m[1])
			if c := bareCodeRe.FindStringSubmatch(line); c != nil {
				rec.StateCode = c[1]
			}
			break
		}
	}
	if rec.StateCode == "" {
		if m := stateCodeRe.FindStringSubmatch(joined); m != nil {
			rec.StateCode = m[1]
		}
	}
	return rec
}

// afterAnchorColon returns any text following the anchor keyword's colon
// on the anchor line itself, e.g. "Bill To: S Kumar" yields "S Kumar".
func afterAnchorColon(line string) string {
	i := strings.IndexByte(line, ':')
	if i < 0 || i+1 >= len(line) {
		return ""
	}
	rest := strings.TrimSpace(line[i+1:])
	if rest == "" || isMarkerLine(rest) {
		return ""
	}
	return cleanupName(rest)
}

// isSubstantive reports whether a line looks like a person or firm name
// rather than a label or noise.
func isSubstantive(line string) bool {
	if isMarkerLine(line) {
		return false
	}
	if isCustomerAnchor(strings.ToLower(line)) {
		return false
	}
	return letterCount(line) >= 2
}

func isMarkerLine(line string) bool {
	return labeledPhoneRe.MatchString(line) ||
		barePhoneRe.MatchString(line) ||
		gstinRe.MatchString(line) ||
		stateNameRe.MatchString(line) ||
		stateCodeRe.MatchString(line)
}
