package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleInvoice = `Sharma Electronics, Main Road
Phone: +91 9876543210
Tax Invoice No. 215
Buyer/Recipient:
Akash Anil Jagtap
At Post Arjunwad
Mobile No: 7387644884
S.No	Description of Goods	Qty	Rate	Amount
1	Whirlpool	001	17900.00	15169.49
Ref DC 215 Impro Prm 5s Cool Illusi-72590
2 Apple	1	TV	3	149999.97	449999.91
Taxable Value	42076.00
CGST @ 9%	3786.84
SGST @ 9%	3786.84
Round Off	0.32
Grand Total	49650.00`

func TestSegment_DocumentOrder(t *testing.T) {
	secs := Segment(Normalize(sampleInvoice))

	require.False(t, secs.Customer.Empty())
	require.False(t, secs.ProductTable.Empty())
	require.False(t, secs.TaxSummary.Empty())

	assert.Less(t, secs.Customer.Start, secs.ProductTable.Start)
	assert.Less(t, secs.ProductTable.Start, secs.TaxSummary.Start)

	// Non-overlapping spans.
	assert.Equal(t, secs.Customer.End, secs.ProductTable.Start)
	assert.Equal(t, secs.ProductTable.End, secs.TaxSummary.Start)
}

func TestSegment_CustomerSectionExcludesSellerHeader(t *testing.T) {
	secs := Segment(Normalize(sampleInvoice))
	assert.NotContains(t, secs.Customer.Joined(), "9876543210")
	assert.Contains(t, secs.Customer.Joined(), "7387644884")
}

func TestSegment_MissingAnchorsYieldEmptySections(t *testing.T) {
	t.Run("garbage", func(t *testing.T) {
		secs := Segment(Normalize("asdkjhaskjdh"))
		assert.True(t, secs.Customer.Empty())
		assert.True(t, secs.ProductTable.Empty())
		assert.True(t, secs.TaxSummary.Empty())
	})

	t.Run("tax_only", func(t *testing.T) {
		secs := Segment(Normalize("CGST @ 9% 120.00\nSGST @ 9% 120.00"))
		assert.True(t, secs.Customer.Empty())
		assert.True(t, secs.ProductTable.Empty())
		require.False(t, secs.TaxSummary.Empty())
		assert.Equal(t, 0, secs.TaxSummary.Start)
	})
}

func TestSegment_ProductHeaderNeedsBothTokenKinds(t *testing.T) {
	// An item word alone is not a table header.
	secs := Segment(Normalize("Product warranty card enclosed"))
	assert.True(t, secs.ProductTable.Empty())

	secs = Segment(Normalize("Item Description	Qty	Rate"))
	assert.False(t, secs.ProductTable.Empty())
}

func TestSegment_SectionRunsToEndOfText(t *testing.T) {
	secs := Segment(Normalize("Bill To: Ramesh\nSome Street\nLast Line"))
	require.False(t, secs.Customer.Empty())
	assert.Equal(t, 3, len(secs.Customer.Lines))
}
