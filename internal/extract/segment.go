package extract

import "strings"

// SectionKind labels the three regions of an invoice the pipeline cares
// about.
type SectionKind string

const (
	SectionCustomer     SectionKind = "customer"
	SectionProductTable SectionKind = "product_table"
	SectionTaxSummary   SectionKind = "tax_summary"
)

// Section is a labeled, read-only span of normalized lines. Start/End are
// line indices into the NormalizedText (End exclusive); Start is -1 when
// the section's anchor was not found.
type Section struct {
	Kind  SectionKind
	Start int
	End   int
	Lines []string
}

// Empty reports whether the section's anchor was missing or the span holds
// no lines.
func (s Section) Empty() bool {
	return s.Start < 0 || len(s.Lines) == 0
}

// Joined returns the section's lines as one newline-separated string.
func (s Section) Joined() string {
	return strings.Join(s.Lines, "\n")
}

// Sections groups the segmented regions of one document.
type Sections struct {
	Customer     Section
	ProductTable Section
	TaxSummary   Section
}

var customerAnchors = []string{
	"buyer/recipient", "bill to", "billed to", "buyer", "recipient",
	"customer detail", "consignee",
}

var itemHeaderTokens = []string{
	"description", "particulars", "item", "product", "goods",
}

var valueHeaderTokens = []string{
	"price", "rate", "amount", "qty", "quantity", "mrp",
}

var taxAnchors = []string{
	"taxable value", "taxable amount", "cgst", "sgst", "igst",
	"tax summary",
}

// Segment scans the normalized text top to bottom for anchor keywords and
// splits it into the Customer, ProductTable and TaxSummary regions.
// Sections are non-overlapping and appear in document order; a section
// whose anchor never occurs is empty, which is not an error.
func Segment(nt NormalizedText) Sections {
	custStart, prodStart, taxStart := -1, -1, -1

	for i, line := range nt.Lines {
		l := strings.ToLower(line)
		switch {
		case custStart < 0 && prodStart < 0 && taxStart < 0 && isCustomerAnchor(l):
			custStart = i
		case prodStart < 0 && taxStart < 0 && isProductHeader(l):
			prodStart = i
		case prodStart >= 0 && taxStart < 0 && i > prodStart && isTaxAnchor(l):
			taxStart = i
		case prodStart < 0 && taxStart < 0 && isTaxAnchor(l) && !isProductHeader(l):
			taxStart = i
		}
	}

	end := len(nt.Lines)
	secs := Sections{
		Customer:     Section{Kind: SectionCustomer, Start: -1},
		ProductTable: Section{Kind: SectionProductTable, Start: -1},
		TaxSummary:   Section{Kind: SectionTaxSummary, Start: -1},
	}

	if custStart >= 0 {
		custEnd := end
		if prodStart > custStart {
			custEnd = prodStart
		} else if taxStart > custStart {
			custEnd = taxStart
		}
		secs.Customer = Section{
			Kind:  SectionCustomer,
			Start: custStart,
			End:   custEnd,
			Lines: nt.Lines[custStart:custEnd],
		}
	}
	if prodStart >= 0 {
		prodEnd := end
		if taxStart > prodStart {
			prodEnd = taxStart
		}
		secs.ProductTable = Section{
			Kind:  SectionProductTable,
			Start: prodStart,
			End:   prodEnd,
			Lines: nt.Lines[prodStart:prodEnd],
		}
	}
	if taxStart >= 0 {
		secs.TaxSummary = Section{
			Kind:  SectionTaxSummary,
			Start: taxStart,
			End:   end,
			Lines: nt.Lines[taxStart:end],
		}
	}
	return secs
}

func isCustomerAnchor(l string) bool {
	for _, a := range customerAnchors {
		if strings.Contains(l, a) {
			return true
		}
	}
	return false
}

// isProductHeader recognizes the table header row: it must mention both an
// item-name column and a price or quantity column.
func isProductHeader(l string) bool {
	item := false
	for _, t := range itemHeaderTokens {
		if strings.Contains(l, t) {
			item = true
			break
		}
	}
	if !item {
		return false
	}
	for _, t := range valueHeaderTokens {
		if strings.Contains(l, t) {
			return true
		}
	}
	return false
}

func isTaxAnchor(l string) bool {
	for _, a := range taxAnchors {
		if strings.Contains(l, a) {
			return true
		}
	}
	return false
}
