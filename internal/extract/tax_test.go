package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func taxSection(text string) Section {
	nt := Normalize(text)
	return Section{Kind: SectionTaxSummary, Start: 0, End: len(nt.Lines), Lines: nt.Lines}
}

func TestExtractTax_AllFields(t *testing.T) {
	tax := extractTax(taxSection(`GST @ 18%
Taxable Value	42,076.00
CGST @ 9%	3786.84
SGST @ 9%	3786.84
Total Tax Amount	7573.68
Round Off	0.32
Grand Total	49650.00`))

	assert.Equal(t, 18.0, tax.GSTRate)
	assert.Equal(t, 42076.00, tax.TaxableValue)
	assert.Equal(t, 9.0, tax.CGSTRate)
	assert.Equal(t, 3786.84, tax.CGSTAmount)
	assert.Equal(t, 9.0, tax.SGSTRate)
	assert.Equal(t, 3786.84, tax.SGSTAmount)
	assert.Equal(t, 7573.68, tax.TotalTax)
	assert.Equal(t, 0.32, tax.RoundOff)
	assert.Equal(t, 49650.00, tax.TotalAmount)
}

func TestExtractTax_ThousandsSeparatorsCoerced(t *testing.T) {
	tax := extractTax(taxSection("Taxable Value	1,42,076.00"))
	// Indian digit grouping still parses once separators are stripped.
	assert.Equal(t, 142076.00, tax.TaxableValue)
}

func TestExtractTax_NegativeRoundOff(t *testing.T) {
	tax := extractTax(taxSection("Round-Off	-0.18"))
	assert.Equal(t, -0.18, tax.RoundOff)
}

func TestExtractTax_MissingLabelsStayZero(t *testing.T) {
	tax := extractTax(taxSection("CGST @ 9%	120.00"))
	assert.Equal(t, 9.0, tax.CGSTRate)
	assert.Equal(t, 120.00, tax.CGSTAmount)
	assert.Zero(t, tax.SGSTAmount)
	assert.Zero(t, tax.TotalAmount)
	assert.Zero(t, tax.RoundOff)
}

func TestExtractTax_EmptySection(t *testing.T) {
	assert.Equal(t, TaxSummary{}, extractTax(Section{Kind: SectionTaxSummary, Start: -1}))
}

func TestExtractTax_CGSTLabelDoesNotBleedIntoGSTRate(t *testing.T) {
	tax := extractTax(taxSection("CGST @ 9%	120.00\nSGST @ 9%	120.00"))
	assert.Zero(t, tax.GSTRate)
}
