package model

import "time"

// SourceKind identifies where the raw text came from
type SourceKind string

const (
	SourceSMS     SourceKind = "sms"
	SourceReceipt SourceKind = "receipt"
)

// ScanReport is the envelope written by the CLI for a single extraction.
// Exactly one of Candidate/Receipt is set depending on Kind.
type ScanReport struct {
	Kind      SourceKind `json:"kind"`
	Input     string     `json:"input"`      // File path, or "sms:<sender>" for inline messages
	ScannedAt time.Time  `json:"scanned_at"` // When the extraction ran

	Candidate *TransactionCandidate `json:"candidate,omitempty"`
	Receipt   *ReceiptExtraction    `json:"receipt,omitempty"`

	Category string `json:"category,omitempty"` // Optional LLM-suggested category
	Cached   bool   `json:"cached"`             // Result served from the dedupe cache
}

// BatchSummary aggregates the outcome of a batch run over an SMS export file.
type BatchSummary struct {
	Messages   int `json:"messages"`   // Lines processed
	Candidates int `json:"candidates"` // Messages that produced a candidate
	Skipped    int `json:"skipped"`    // Messages the gate rejected
	Review     int `json:"review"`     // Candidates below the auto-fill threshold
	Errors     int `json:"errors"`     // Malformed input lines
}
