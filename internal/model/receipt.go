package model

// ReceiptExtraction is the best-effort structured view of OCR text from a
// photographed receipt. All fields are optional; a receipt that matched
// nothing is represented by the zero value with Confidence 0, never by an
// error.
type ReceiptExtraction struct {
	MerchantName    string     `json:"merchant_name,omitempty"`
	TotalAmount     *float64   `json:"total_amount,omitempty"`
	TransactionDate string     `json:"transaction_date,omitempty"` // Verbatim matched substring, not validated
	LineItems       []LineItem `json:"line_items"`                 // In order of appearance
	Confidence      float64    `json:"confidence"`                 // Sum of partial-match weights, capped at 1
}

// LineItem is a single item row recognized on a receipt
type LineItem struct {
	Name  string   `json:"name"`
	Price *float64 `json:"price,omitempty"`
}

// IsEmpty reports whether nothing at all was recognized.
func (r *ReceiptExtraction) IsEmpty() bool {
	return r.MerchantName == "" && r.TotalAmount == nil &&
		r.TransactionDate == "" && len(r.LineItems) == 0
}
