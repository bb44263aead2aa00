package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finshare/finx/internal/model"
	"github.com/finshare/finx/internal/rules"
	"github.com/finshare/finx/internal/score"
)

// SmsExtractor turns bank SMS notifications into transaction candidates.
// It is stateless and safe for concurrent use.
type SmsExtractor struct{}

// NewSmsExtractor creates a new SMS extractor
func NewSmsExtractor() *SmsExtractor {
	return &SmsExtractor{}
}

var (
	merchantStrip  = regexp.MustCompile(`[^a-zA-Z0-9\s&.-]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// Extract parses a single SMS. It returns nil when the message does not look
// like a transaction or no positive amount could be parsed; it never returns
// an error and never panics into the caller. Absence of a candidate is the
// only failure signal.
func (e *SmsExtractor) Extract(sourceID, body string) *model.TransactionCandidate {
	if !isTransactionSms(sourceID, body) {
		return nil
	}

	amount, ok := extractAmount(body)
	if !ok || amount <= 0 {
		return nil
	}

	merchant := extractMerchant(body)

	candidate := &model.TransactionCandidate{
		ID:         uuid.NewString(),
		Amount:     amount,
		Merchant:   merchant,
		Direction:  classifyDirection(body),
		Timestamp:  time.Now().UTC(),
		RawText:    body,
		SourceID:   sourceID,
		Confidence: score.Candidate(true, merchant != "", senderIsKnownBank(sourceID)),
	}
	if candidate.Merchant == "" {
		candidate.Merchant = model.UnknownMerchant
	}
	return candidate
}

// isTransactionSms is the transaction-likelihood gate: the body must carry
// transaction vocabulary AND either the sender or the body must look bank
// related. Promotional and OTP messages that share vocabulary fail the
// sender half.
func isTransactionSms(sourceID, body string) bool {
	bodyUpper := strings.ToUpper(body)
	senderUpper := strings.ToUpper(sourceID)

	keywordHit := false
	for _, kw := range rules.TransactionKeywords {
		if strings.Contains(bodyUpper, kw) {
			keywordHit = true
			break
		}
	}
	if !keywordHit {
		return false
	}

	for _, bank := range rules.SenderKeywords {
		if strings.Contains(senderUpper, bank) {
			return true
		}
	}
	return strings.Contains(bodyUpper, "CARD") || strings.Contains(bodyUpper, "A/C")
}

// extractAmount tries the ordered currency patterns and returns the first
// parseable amount. A pattern that matches but fails to parse falls through
// to the next one.
func extractAmount(body string) (float64, bool) {
	for _, p := range rules.AmountPatterns {
		m := p.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		raw := strings.ReplaceAll(m[1], ",", "")
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		return amount, true
	}
	return 0, false
}

// extractMerchant returns the sanitized merchant name, or "" when no pattern
// produced one. Generic prepositional patterns are tried first; the per-bank
// table is the fallback for formats where the merchant sits in a third
// capture group.
func extractMerchant(body string) string {
	for _, p := range rules.MerchantPatterns {
		m := p.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		merchant := strings.TrimSpace(m[1])
		if len(merchant) > 2 {
			return sanitizeMerchant(merchant)
		}
	}

	for _, bank := range rules.BankRules {
		for _, p := range bank.Patterns {
			m := p.FindStringSubmatch(body)
			if m == nil || len(m) < 4 {
				continue
			}
			merchant := strings.TrimSpace(m[3])
			if merchant != "" {
				return sanitizeMerchant(merchant)
			}
		}
	}

	return ""
}

// sanitizeMerchant strips everything outside [A-Za-z0-9 &.-], collapses
// whitespace runs, trims and truncates to MerchantMaxLen.
func sanitizeMerchant(merchant string) string {
	merchant = merchantStrip.ReplaceAllString(merchant, "")
	merchant = whitespaceRuns.ReplaceAllString(merchant, " ")
	merchant = strings.TrimSpace(merchant)
	if len(merchant) > model.MerchantMaxLen {
		merchant = merchant[:model.MerchantMaxLen]
	}
	return merchant
}

// classifyDirection is a keyword override defaulting to DEBIT.
func classifyDirection(body string) model.Direction {
	bodyUpper := strings.ToUpper(body)
	if strings.Contains(bodyUpper, "CREDITED") || strings.Contains(bodyUpper, "REFUND") {
		return model.DirectionCredit
	}
	return model.DirectionDebit
}

// senderIsKnownBank checks the sender against the bank-table keys only.
// This is narrower than the gate's SenderKeywords: a sender like "MYBANK"
// passes the gate but earns no confidence bonus.
func senderIsKnownBank(sourceID string) bool {
	senderUpper := strings.ToUpper(sourceID)
	for _, bank := range rules.BankNames() {
		if strings.Contains(senderUpper, bank) {
			return true
		}
	}
	return false
}
