package model

import "time"

// UnknownMerchant is the fallback merchant name when no merchant pattern
// matched. It is a deliberate product default, not a sentinel for "absent".
const UnknownMerchant = "Unknown Merchant"

// MerchantMaxLen is the maximum length of a sanitized merchant name.
const MerchantMaxLen = 50

// TransactionCandidate is a tentative, unconfirmed transaction extracted from
// a bank SMS, pending user review before an expense is created from it.
type TransactionCandidate struct {
	ID         string    `json:"id"`                 // Assigned at extraction time
	Amount     float64   `json:"amount"`             // Always > 0
	Merchant   string    `json:"merchant"`           // Sanitized, UnknownMerchant if not found
	Direction  Direction `json:"direction"`          // debit or credit
	Timestamp  time.Time `json:"timestamp"`          // Capture time, not parsed from the message
	RawText    string    `json:"raw_text"`           // Original message body, kept for audit
	SourceID   string    `json:"source_id"`          // Sender identifier (e.g., bank shortcode)
	Confidence float64   `json:"confidence"`         // Heuristic support, 0-1
	Category   string    `json:"category,omitempty"` // Optional LLM-suggested expense category
}

// Direction classifies the money flow of a transaction
type Direction string

const (
	DirectionDebit  Direction = "DEBIT"
	DirectionCredit Direction = "CREDIT"
)

// Confidence thresholds driving what callers do with a candidate
const (
	ConfidenceLow  = 0.5 // below: suggest manual entry
	ConfidenceHigh = 0.8 // at or above: safe to pre-fill
)

// NeedsReview reports whether the candidate should be shown to the user for
// confirmation rather than auto-filled.
func (c *TransactionCandidate) NeedsReview() bool {
	return c.Confidence < ConfidenceHigh
}
