package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoscan/internal/extract"
)

func sampleResult() *extract.Result {
	return &extract.Result{
		Customer: extract.CustomerRecord{
			Name:  "Akash Anil Jagtap",
			Phone: "7387644884",
			GSTIN: "27AAPFU0939F1ZV",
		},
		Products: []extract.ProductRecord{
			{
				ID:           "P1",
				CompanyName:  "Whirlpool",
				Name:         "Ref DC 215 Impro Prm 5s",
				SerialNumber: "001",
				Quantity:     1,
				UnitPrice:    17900,
				LineAmount:   15169.49,
			},
			{
				ID:               "P2",
				CompanyName:      "Samsung",
				Name:             "Product 2",
				Quantity:         2,
				UnitPrice:        1000,
				LineAmount:       2000,
				NeedsManualEntry: true,
			},
		},
		Tax: extract.TaxSummary{
			TaxableValue: 42076,
			TotalAmount:  49650,
		},
	}
}

func TestCSVWriter_Header(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 12)
	assert.Equal(t, "Product ID", row[0])
	assert.Equal(t, "Customer GSTIN", row[11])
}

func TestCSVWriter_WriteResult(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteResult(sampleResult()))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	first := rows[1]
	assert.Equal(t, "P1", first[0])
	assert.Equal(t, "Whirlpool", first[1])
	assert.Equal(t, "Ref DC 215 Impro Prm 5s", first[2])
	assert.Equal(t, "001", first[3])
	assert.Equal(t, "1", first[4])
	assert.Equal(t, "17900.00", first[5])
	assert.Equal(t, "15169.49", first[6])
	assert.Equal(t, "No", first[8])
	assert.Equal(t, "Akash Anil Jagtap", first[9])
	assert.Equal(t, "7387644884", first[10])

	second := rows[2]
	assert.Equal(t, "P2", second[0])
	assert.Equal(t, "Yes", second[8])
}

func TestWriteXLSX(t *testing.T) {
	data, err := WriteXLSX(sampleResult())
	require.NoError(t, err)
	// xlsx files are zip archives
	assert.Equal(t, []byte{'P', 'K'}, data[:2])
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "Invoice_215", SanitizeFilename("Invoice #215!"))
	assert.Equal(t, "a_b", SanitizeFilename("a   b"))
	assert.Equal(t, "trimmed", SanitizeFilename("__trimmed__"))
}

func TestBuildFilename(t *testing.T) {
	name := BuildFilename("extraction 42", "csv")
	assert.Regexp(t, `^extraction_42_\d{4}-\d{2}-\d{2}\.csv$`, name)
}
