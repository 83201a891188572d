package extract

import "regexp"

// Each tax field has its own label-anchored regex, evaluated independently
// over the joined section text. A missing label leaves the field at zero.
var (
	taxGSTRateRe     = regexp.MustCompile(`(?i)\bgst\s*(?:rate)?\s*[@:]?\s*(\d{1,2}(?:\.\d+)?)\s*%`)
	taxTaxableRe     = regexp.MustCompile(`(?mi)taxable\s*(?:value|amount|amt)\b.*?([\d,]+\.\d{1,2}|\d+)\s*$`)
	taxCGSTRateRe    = regexp.MustCompile(`(?i)\bcgst\s*@?\s*(\d{1,2}(?:\.\d+)?)\s*%`)
	taxCGSTAmountRe  = regexp.MustCompile(`(?mi)\bcgst\b.*?([\d,]+\.\d{1,2})\s*$`)
	taxSGSTRateRe    = regexp.MustCompile(`(?i)\bsgst\s*@?\s*(\d{1,2}(?:\.\d+)?)\s*%`)
	taxSGSTAmountRe  = regexp.MustCompile(`(?mi)\bsgst\b.*?([\d,]+\.\d{1,2})\s*$`)
	taxTotalTaxRe    = regexp.MustCompile(`(?mi)total\s*tax(?:\s*amount)?\b.*?([\d,]+\.\d{1,2})\s*$`)
	taxRoundOffRe    = regexp.MustCompile(`(?mi)round[\s\-]*off\b.*?\(?(-?[\d,]+\.\d{1,2})\)?\s*$`)
	taxTotalAmountRe = regexp.MustCompile(`(?mi)(?:grand\s*total|total\s*amount|amount\s*payable|invoice\s*total|net\s*payable)\b.*?([\d,]+\.\d{1,2})\s*$`)
)

// extractTax pulls the labeled numeric fields from the TaxSummary section.
// Values are coerced to numbers; see TaxSummary.
func extractTax(sec Section) TaxSummary {
	var t TaxSummary
	if sec.Empty() {
		return t
	}
	text := sec.Joined()

	grab := func(re *regexp.Regexp) float64 {
		if m := re.FindStringSubmatch(text); m != nil {
			return parseAmount(m[1])
		}
		return 0
	}

	t.GSTRate = grab(taxGSTRateRe)
	t.TaxableValue = grab(taxTaxableRe)
	t.CGSTRate = grab(taxCGSTRateRe)
	t.CGSTAmount = grab(taxCGSTAmountRe)
	t.SGSTRate = grab(taxSGSTRateRe)
	t.SGSTAmount = grab(taxSGSTAmountRe)
	t.TotalTax = grab(taxTotalTaxRe)
	t.RoundOff = grab(taxRoundOffRe)
	t.TotalAmount = grab(taxTotalAmountRe)
	return t
}
