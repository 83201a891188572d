package extract

import (
	"math"
	"regexp"

	"invoscan/internal/domain"
)

// Extractor runs the full document-to-structured-data pipeline: normalize,
// segment, reconstruct rows, parse rows, extract customer and tax fields,
// assemble. It is stateless across calls and safe for concurrent use;
// identical input text always yields an identical Result.
type Extractor struct {
	dict      Dictionary
	cascade   []rowPattern
	qtyUnitRe *regexp.Regexp
}

// New creates an Extractor. Empty dictionary lists fall back to the
// built-in defaults.
func New(dict Dictionary) *Extractor {
	dict = dict.withDefaults()
	return &Extractor{
		dict:      dict,
		cascade:   buildCascade(dict),
		qtyUnitRe: regexp.MustCompile(`(?i)\b(\d+)\s*(?:` + dict.unitAlternation() + `)\b\.?`),
	}
}

// Extract recovers a structured invoice record from raw OCR text. It
// returns domain.ErrInvalidInput for an empty string and otherwise never
// fails: garbage input produces a result with empty fields, not an error.
func (e *Extractor) Extract(rawText string) (*Result, error) {
	if rawText == "" {
		return nil, domain.ErrInvalidInput
	}

	nt := Normalize(rawText)
	secs := Segment(nt)

	res := &Result{
		Customer: extractCustomer(secs.Customer),
		Tax:      extractTax(secs.TaxSummary),
		Products: []ProductRecord{},
		Text:     nt.String(),
	}

	prevCompany := ""
	for _, row := range reconstructRows(secs.ProductTable.Lines, e.dict) {
		rec, ok := e.parseRow(row, prevCompany, len(res.Products)+1)
		if !ok {
			continue
		}
		applyDerivation(&rec)
		res.Products = append(res.Products, rec)
		if rec.CompanyName != "" {
			prevCompany = rec.CompanyName
		}
	}
	return res, nil
}

// applyDerivation enforces the numeric laws on an accepted record,
// regardless of which cascade pattern produced it: quantity >= 1, price
// and amount >= 0, and whichever of price/amount is missing derived from
// the other. An inferred quantity is round(amount/price) floored to 1.
func applyDerivation(rec *ProductRecord) {
	if rec.UnitPrice < 0 {
		rec.UnitPrice = 0
	}
	if rec.LineAmount < 0 {
		rec.LineAmount = 0
	}
	if rec.Quantity < 1 {
		rec.Quantity = 1
		if !rec.quantityExplicit && rec.UnitPrice > 0 && rec.LineAmount > 0 {
			if q := int(math.Round(rec.LineAmount / rec.UnitPrice)); q > 1 {
				rec.Quantity = q
			}
		}
	}
	if rec.LineAmount == 0 && rec.UnitPrice > 0 {
		rec.LineAmount = rec.UnitPrice * float64(rec.Quantity)
	}
	if rec.UnitPrice == 0 && rec.LineAmount > 0 {
		rec.UnitPrice = rec.LineAmount / float64(rec.Quantity)
	}
}
