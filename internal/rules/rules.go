// Package rules holds the declarative pattern tables shared by the SMS and
// receipt extractors. Keeping them as data rather than code branches lets new
// banks be added without touching extractor logic.
package rules

import "regexp"

// TransactionKeywords is the vocabulary that marks an SMS body as a possible
// transaction notification. Matched against the uppercased body.
var TransactionKeywords = []string{
	"SPENT", "DEBITED", "CHARGED", "PAID", "TRANSACTION",
	"PURCHASE", "WITHDRAW", "DEBIT", "CREDITED",
}

// SenderKeywords is the set of tokens accepted in a sender identifier by the
// transaction-likelihood gate. Wider than the bank table below: generic
// "BANK" and "CARD" senders pass the gate but earn no sender confidence.
var SenderKeywords = []string{
	"HDFC", "ICICI", "SBI", "AXIS", "KOTAK", "BANK", "CARD",
}

// BankRule is one bank's ordered list of SMS formats. Patterns with a third
// capture group carry the merchant in that group.
type BankRule struct {
	Bank     string
	Patterns []*regexp.Regexp
}

// BankRules is the per-bank pattern table, tried in order. The slice (not a
// map) keeps iteration deterministic.
var BankRules = []BankRule{
	{
		Bank: "HDFC",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)spent INR ([0-9,]+\.?[0-9]*) on ([^\n]+) at ([^\n]+)`),
			regexp.MustCompile(`(?i)debited for INR ([0-9,]+\.?[0-9]*) on ([^\n]+)`),
		},
	},
	{
		Bank: "ICICI",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)spent Rs\.([0-9,]+\.?[0-9]*) on ([^\n]+) at ([^\n]+)`),
			regexp.MustCompile(`(?i)debited by Rs\.([0-9,]+\.?[0-9]*)`),
		},
	},
	{
		Bank: "SBI",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)Rs\.([0-9,]+\.?[0-9]*) spent on ([^\n]+)`),
			regexp.MustCompile(`(?i)debited Rs\.([0-9,]+\.?[0-9]*)`),
		},
	},
	{
		Bank: "AXIS",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)spent INR ([0-9,]+\.?[0-9]*) at ([^\n]+)`),
			regexp.MustCompile(`(?i)debited for INR ([0-9,]+\.?[0-9]*)`),
		},
	},
	{
		Bank: "KOTAK",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)spent Rs ([0-9,]+\.?[0-9]*) at ([^\n]+)`),
			regexp.MustCompile(`(?i)debited Rs ([0-9,]+\.?[0-9]*)`),
		},
	},
}

// BankNames returns the bank-table keys. The confidence sender bonus uses
// only this set, not the wider SenderKeywords gate set.
func BankNames() []string {
	names := make([]string, len(BankRules))
	for i, r := range BankRules {
		names[i] = r.Bank
	}
	return names
}

// AmountPatterns is the ordered currency-amount list. First match wins; the
// patterns are tried in priority order, never searched for a "best" match.
var AmountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)INR ([0-9,]+\.?[0-9]*)`),
	regexp.MustCompile(`(?i)Rs\.?\s*([0-9,]+\.?[0-9]*)`),
	regexp.MustCompile(`(?i)USD ([0-9,]+\.?[0-9]*)`),
	regexp.MustCompile(`(?i)\$([0-9,]+\.?[0-9]*)`),
}

// MerchantPatterns is the ordered generic prepositional list, tried before
// the per-bank table.
var MerchantPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)at ([A-Za-z0-9\s&.-]+)`),
	regexp.MustCompile(`(?i)on ([A-Za-z0-9\s&.-]+)`),
	regexp.MustCompile(`(?i)from ([A-Za-z0-9\s&.-]+)`),
}

// Receipt-side patterns, applied per trimmed line of OCR text.
var (
	// TotalKeywords marks a line that may carry the receipt total.
	TotalKeywords = regexp.MustCompile(`(?i)total|sum|amount`)

	// Number matches a plain numeric substring within a line.
	Number = regexp.MustCompile(`[0-9]+\.?[0-9]*`)

	// Date matches a loose D[D]/M[M]/Y[YYY] style date with / or - separators.
	// The match is stored verbatim, never validated as a calendar date.
	Date = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)

	// LineItem matches "<name> <price>" item rows.
	LineItem = regexp.MustCompile(`([A-Za-z\s]+)\s+([0-9]+\.?[0-9]*)`)

	// MerchantLineExclude rejects candidate merchant lines. Dots are excluded
	// along with digits so price fragments never become a merchant.
	MerchantLineExclude = regexp.MustCompile(`[0-9.]`)
)
