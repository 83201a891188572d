package extract

// Result is the structured record recovered from one invoice document.
// It is serializable as-is for form prefill; Text carries the normalized
// input for audit and debugging.
type Result struct {
	Customer CustomerRecord  `json:"customer"`
	Products []ProductRecord `json:"products"`
	Tax      TaxSummary      `json:"tax"`
	Text     string          `json:"text"`
}

// ProductRecord is one extracted line item. Numeric fields are always
// populated: when only one of price/amount is recoverable the other is
// derived, and quantity is never below 1.
type ProductRecord struct {
	ID               string  `json:"id"`
	CompanyName      string  `json:"company_name"`
	Name             string  `json:"name"`
	SerialNumber     string  `json:"serial_number"`
	Quantity         int     `json:"quantity"`
	UnitPrice        float64 `json:"unit_price"`
	LineAmount       float64 `json:"line_amount"`
	GSTRate          float64 `json:"gst_rate"`
	NeedsManualEntry bool    `json:"needs_manual_entry"`

	// quantityExplicit records whether the quantity was read from the row
	// itself rather than back-computed from amount/price.
	quantityExplicit bool
}

// CustomerRecord is the buyer identity block. Absent fields stay "".
type CustomerRecord struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	AltPhone  string `json:"alt_phone"`
	Address   string `json:"address"`
	State     string `json:"state"`
	StateCode string `json:"state_code"`
	GSTIN     string `json:"gstin"`
}

// TaxSummary holds the invoice totals block. All figures are coerced to
// numbers; thousands separators and currency marks are a presentation
// concern and are stripped during extraction.
type TaxSummary struct {
	GSTRate      float64 `json:"gst_rate"`
	TaxableValue float64 `json:"taxable_value"`
	CGSTRate     float64 `json:"cgst_rate"`
	CGSTAmount   float64 `json:"cgst_amount"`
	SGSTRate     float64 `json:"sgst_rate"`
	SGSTAmount   float64 `json:"sgst_amount"`
	TotalTax     float64 `json:"total_tax"`
	RoundOff     float64 `json:"round_off"`
	TotalAmount  float64 `json:"total_amount"`
}
