package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"invoscan/internal/extract"
)

// WriteXLSX renders an extraction result as an Excel workbook with three
// sheets: Products, Customer and Tax Summary.
func WriteXLSX(res *extract.Result) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const productSheet = "Products"
	f.SetSheetName(f.GetSheetName(0), productSheet)

	header := []interface{}{
		"Product ID", "Company", "Product Name", "Serial Number",
		"Quantity", "Unit Price", "Line Amount", "GST Rate", "Needs Manual Entry",
	}
	if err := f.SetSheetRow(productSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx header: %w", err)
	}
	for i, p := range res.Products {
		row := []interface{}{
			p.ID, p.CompanyName, p.Name, p.SerialNumber,
			p.Quantity, p.UnitPrice, p.LineAmount, p.GSTRate, formatBool(p.NeedsManualEntry),
		}
		cell := "A" + strconv.Itoa(i+2)
		if err := f.SetSheetRow(productSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("xlsx product row %d: %w", i+1, err)
		}
	}

	if err := writeKVSheet(f, "Customer", [][2]interface{}{
		{"Name", res.Customer.Name},
		{"Phone", res.Customer.Phone},
		{"Alt Phone", res.Customer.AltPhone},
		{"Address", res.Customer.Address},
		{"State", res.Customer.State},
		{"State Code", res.Customer.StateCode},
		{"GSTIN", res.Customer.GSTIN},
	}); err != nil {
		return nil, err
	}

	if err := writeKVSheet(f, "Tax Summary", [][2]interface{}{
		{"Taxable Value", res.Tax.TaxableValue},
		{"CGST Rate", res.Tax.CGSTRate},
		{"CGST Amount", res.Tax.CGSTAmount},
		{"SGST Rate", res.Tax.SGSTRate},
		{"SGST Amount", res.Tax.SGSTAmount},
		{"GST Rate", res.Tax.GSTRate},
		{"Total Tax", res.Tax.TotalTax},
		{"Round Off", res.Tax.RoundOff},
		{"Total Amount", res.Tax.TotalAmount},
	}); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

// writeKVSheet fills a new sheet with label/value pairs, one per row.
func writeKVSheet(f *excelize.File, name string, pairs [][2]interface{}) (err error) {
	if _, err = f.NewSheet(name); err != nil {
		return fmt.Errorf("xlsx sheet %s: %w", name, err)
	}
	for i, pair := range pairs {
		cell := "A" + strconv.Itoa(i+1)
		row := []interface{}{pair[0], pair[1]}
		if err = f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("xlsx sheet %s row %d: %w", name, i+1, err)
		}
	}
	return nil
}
