// Package score holds the confidence weights and banding shared by the
// extractors and the CLI. Scoring is transparent and additive: each piece of
// recognized evidence contributes a fixed weight and the sum is clamped into
// [0,1]. The result is a heuristic support measure, not a probability.
package score

import "github.com/finshare/finx/internal/model"

// SMS candidate weights
const (
	WeightAmount   = 0.4 // A positive amount was parsed
	WeightMerchant = 0.3 // A merchant was extracted (not the fallback)
	WeightSender   = 0.3 // Sender id contains a bank-table key
)

// Receipt weights
const (
	WeightReceiptMerchant = 0.2
	WeightReceiptTotal    = 0.4
	WeightReceiptDate     = 0.2
	WeightReceiptItem     = 0.1 // Per line item, uncapped until the final clamp
)

// Clamp01 clamps v into [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Candidate computes the SMS candidate confidence from the three evidence
// signals. The sender bonus deliberately uses the narrow bank-table check,
// not the wider gate vocabulary.
func Candidate(hasAmount, hasMerchant, knownBankSender bool) float64 {
	var c float64
	if hasAmount {
		c += WeightAmount
	}
	if hasMerchant {
		c += WeightMerchant
	}
	if knownBankSender {
		c += WeightSender
	}
	return Clamp01(c)
}

// Band classifies a confidence value for display and caller decisions
type Band string

const (
	BandLow    Band = "low"    // Suggest manual entry
	BandMedium Band = "medium" // Show an editable review screen
	BandHigh   Band = "high"   // Safe to pre-fill
)

// BandFor maps a confidence value to its band.
func BandFor(confidence float64) Band {
	switch {
	case confidence < model.ConfidenceLow:
		return BandLow
	case confidence < model.ConfidenceHigh:
		return BandMedium
	default:
		return BandHigh
	}
}
