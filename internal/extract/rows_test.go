package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDict() Dictionary {
	return Dictionary{}.withDefaults()
}

func TestReconstructRows_SingleLineRow(t *testing.T) {
	rows := reconstructRows([]string{
		"1	Samsung	64012	12500.00	12500.00",
	}, testDict())
	require.Len(t, rows, 1)
	assert.Len(t, rows[0].Lines, 1)
}

func TestReconstructRows_IndianGroupedTailClosesRow(t *testing.T) {
	// A lakh-grouped numeric tail is a complete tail; the row must not
	// wait for more lines or be dropped as unfinished.
	rows := reconstructRows([]string{
		"1	Samsung	TV 55 Inch	1,49,999.97	1,49,999.97",
	}, testDict())
	require.Len(t, rows, 1)
	assert.Len(t, rows[0].Lines, 1)
}

func TestReconstructRows_NumericTailBeforeName(t *testing.T) {
	// OCR emitted the numeric columns first and the product name on the
	// following physical line; both belong to one logical row.
	rows := reconstructRows([]string{
		"1	Whirlpool	001	17900.00	15169.49",
		"Ref DC 215 Impro Prm 5s Cool Illusi-72590",
	}, testDict())
	require.Len(t, rows, 1)
	assert.Len(t, rows[0].Lines, 2)
	assert.Contains(t, rows[0].Joined(), "Illusi-72590")
}

func TestReconstructRows_SplitAcrossLines(t *testing.T) {
	// Name on the opener, numbers on a continuation line.
	rows := reconstructRows([]string{
		"1	LG	Washing Machine Front Load",
		"27990.00	27990.00",
	}, testDict())
	require.Len(t, rows, 1)
	assert.Len(t, rows[0].Lines, 2)
}

func TestReconstructRows_NewOpenerClosesPrevious(t *testing.T) {
	rows := reconstructRows([]string{
		"1	Samsung	Refrigerator",
		"2	Sony	Bravia TV	55000.00	55000.00",
	}, testDict())
	require.Len(t, rows, 2)
	// First row closed without its numbers; the cascade decides its fate.
	assert.Len(t, rows[0].Lines, 1)
	assert.Len(t, rows[1].Lines, 1)
}

func TestReconstructRows_BrandKeywordOpens(t *testing.T) {
	rows := reconstructRows([]string{
		"Voltas	1.5 Ton Split AC	32990.00	32990.00",
	}, testDict())
	require.Len(t, rows, 1)
}

func TestReconstructRows_AccessoryKeywordOpens(t *testing.T) {
	rows := reconstructRows([]string{
		"1	Samsung	TV 43 Inch	31990.00	31990.00",
		"Stand	1500.00	1500.00",
	}, testDict())
	require.Len(t, rows, 2)
}

func TestReconstructRows_OrphanLinesDropped(t *testing.T) {
	rows := reconstructRows([]string{
		"continued from previous page",
		"1	Godrej	Almirah	18500.00	18500.00",
	}, testDict())
	require.Len(t, rows, 1)
	assert.NotContains(t, rows[0].Joined(), "previous page")
}

func TestReconstructRows_PrefersFewerContinuationLines(t *testing.T) {
	// Once the numeric tail is present and the row has a name, the next
	// non-opener line must not be swallowed.
	rows := reconstructRows([]string{
		"1	Haier	Deep Freezer	21000.00	21000.00",
		"E & OE subject to jurisdiction",
	}, testDict())
	require.Len(t, rows, 1)
	assert.NotContains(t, rows[0].Joined(), "jurisdiction")
}

func TestReconstructRows_Empty(t *testing.T) {
	assert.Empty(t, reconstructRows(nil, testDict()))
}
