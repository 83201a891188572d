package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"invoscan/internal/extract"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// productColumns defines the CSV header row for product rows.
var productColumns = []string{
	"Product ID",
	"Company",
	"Product Name",
	"Serial Number",
	"Quantity",
	"Unit Price",
	"Line Amount",
	"GST Rate",
	"Needs Manual Entry",
	"Customer Name",
	"Customer Phone",
	"Customer GSTIN",
}

// CSVWriter wraps csv.Writer for exporting extraction results as CSV.
// Each product becomes one row; the customer columns repeat on every row
// so a flat spreadsheet still carries the full context.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(productColumns)
}

// WriteResult converts an extraction result to CSV rows and writes them.
func (w *CSVWriter) WriteResult(res *extract.Result) error {
	for i := range res.Products {
		row := productToRow(&res.Products[i], &res.Customer)
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

func productToRow(p *extract.ProductRecord, c *extract.CustomerRecord) []string {
	row := make([]string, len(productColumns))
	row[0] = p.ID
	row[1] = p.CompanyName
	row[2] = p.Name
	row[3] = p.SerialNumber
	row[4] = strconv.Itoa(p.Quantity)
	row[5] = formatMoney(p.UnitPrice)
	row[6] = formatMoney(p.LineAmount)
	row[7] = formatMoney(p.GSTRate)
	row[8] = formatBool(p.NeedsManualEntry)
	row[9] = c.Name
	row[10] = c.Phone
	row[11] = c.GSTIN
	return row
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses
// consecutive underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header. Format: {sanitized_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(name, ext string) string {
	sanitized := SanitizeFilename(name)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", sanitized, date, ext)
}
