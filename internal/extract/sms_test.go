package extract

import (
	"math"
	"strings"
	"testing"

	"github.com/finshare/finx/internal/model"
)

// almostEqual absorbs float64 rounding in additive confidence sums.
func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSmsExtractor_GateRejectsNonTransactionText(t *testing.T) {
	e := NewSmsExtractor()

	tests := []struct {
		name   string
		sender string
		body   string
	}{
		{"no transaction keyword, bank sender", "HDFC-BANK", "Your OTP is 482913. Do not share it."},
		{"no transaction keyword, promo", "AX-PROMO", "Mega sale! 50% off at all stores this weekend"},
		{"keyword but unknown sender and no card hint", "FRIEND", "I spent INR 500 at the cinema yesterday"},
		{"empty body", "HDFC-BANK", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Extract(tt.sender, tt.body); got != nil {
				t.Errorf("Expected no candidate, got %+v", got)
			}
		})
	}
}

func TestSmsExtractor_GatePassesOnBodyCardHint(t *testing.T) {
	e := NewSmsExtractor()

	// Unknown sender, but the body mentions A/C, so the gate passes.
	got := e.Extract("VM-ALERTS", "Your A/C debited by Rs.250.00 on 12-03-24")
	if got == nil {
		t.Fatal("Expected a candidate for A/C body hint, got nil")
	}
	if got.Amount != 250.00 {
		t.Errorf("Expected amount 250.00, got %v", got.Amount)
	}
}

func TestSmsExtractor_HDFCSpent(t *testing.T) {
	e := NewSmsExtractor()

	got := e.Extract("HDFC-BANK", "You spent INR 1,234.50 on dining at Cafe Mocha")
	if got == nil {
		t.Fatal("Expected a candidate, got nil")
	}
	if got.Amount != 1234.50 {
		t.Errorf("Expected amount 1234.50, got %v", got.Amount)
	}
	if got.Direction != model.DirectionDebit {
		t.Errorf("Expected DEBIT, got %s", got.Direction)
	}
	if got.Merchant != "Cafe Mocha" {
		t.Errorf("Expected merchant 'Cafe Mocha', got %q", got.Merchant)
	}
	// 0.4 amount + 0.3 merchant + 0.3 known bank sender
	if got.Confidence < 0.7 {
		t.Errorf("Expected confidence >= 0.7, got %v", got.Confidence)
	}
	if got.RawText == "" || got.SourceID != "HDFC-BANK" {
		t.Errorf("Expected raw text and source id to be retained, got %+v", got)
	}
	if got.ID == "" {
		t.Error("Expected a candidate id")
	}
}

func TestSmsExtractor_CreditKeywordsOverrideDirection(t *testing.T) {
	e := NewSmsExtractor()

	tests := []struct {
		body string
		want model.Direction
	}{
		{"INR 900.00 credited to your account at HDFC Branch", model.DirectionCredit},
		{"Refund of Rs.120.00 processed for your card transaction", model.DirectionCredit},
		{"You spent INR 45.00 at Corner Shop", model.DirectionDebit},
	}

	for _, tt := range tests {
		got := e.Extract("HDFC-BANK", tt.body)
		if got == nil {
			t.Fatalf("Expected a candidate for %q, got nil", tt.body)
		}
		if got.Direction != tt.want {
			t.Errorf("body %q: expected %s, got %s", tt.body, tt.want, got.Direction)
		}
	}
}

func TestSmsExtractor_MerchantSanitized(t *testing.T) {
	e := NewSmsExtractor()

	got := e.Extract("ICICI", "You spent INR 300.00 at Joes Diner And Grill House Of The Extremely Long Receipt Banner Name")
	if got == nil {
		t.Fatal("Expected a candidate, got nil")
	}
	if len(got.Merchant) > model.MerchantMaxLen {
		t.Errorf("Expected merchant <= %d chars, got %d", model.MerchantMaxLen, len(got.Merchant))
	}
	for _, r := range got.Merchant {
		if !strings.ContainsRune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 &.-", r) {
			t.Errorf("Merchant %q contains disallowed rune %q", got.Merchant, r)
		}
	}
}

func TestSmsExtractor_UnknownMerchantFallback(t *testing.T) {
	e := NewSmsExtractor()

	got := e.Extract("SBI", "Your account debited by Rs.500.00, ref 883211")
	if got == nil {
		t.Fatal("Expected a candidate, got nil")
	}
	if got.Merchant != model.UnknownMerchant {
		t.Errorf("Expected fallback merchant %q, got %q", model.UnknownMerchant, got.Merchant)
	}
	// Amount + known bank sender, no merchant bonus.
	if !almostEqual(got.Confidence, 0.7) {
		t.Errorf("Expected confidence 0.7, got %v", got.Confidence)
	}
}

func TestSmsExtractor_BankTableMerchantFallback(t *testing.T) {
	e := NewSmsExtractor()

	// The generic patterns need at least one sanctioned character right
	// after the preposition; "!" defeats them, while the HDFC three-group
	// pattern still reaches the merchant in its third group.
	got := e.Extract("HDFC", "spent INR 89.00 on ! at !!QQ")
	if got == nil {
		t.Fatal("Expected a candidate, got nil")
	}
	if got.Merchant != "QQ" {
		t.Errorf("Expected bank-table merchant 'QQ', got %q", got.Merchant)
	}
}

func TestSmsExtractor_SenderBonusNarrowerThanGate(t *testing.T) {
	e := NewSmsExtractor()
	body := "You spent INR 100.00 at Cafe Mocha"

	// "MYBANK" passes the gate via the generic BANK token but is not a
	// bank-table key, so no sender bonus is earned.
	generic := e.Extract("MYBANK", body)
	if generic == nil {
		t.Fatal("Expected a candidate for generic bank sender, got nil")
	}
	if !almostEqual(generic.Confidence, 0.7) {
		t.Errorf("Expected confidence 0.7 without sender bonus, got %v", generic.Confidence)
	}

	known := e.Extract("HDFC-BANK", body)
	if known == nil {
		t.Fatal("Expected a candidate for known bank sender, got nil")
	}
	if known.Confidence != 1.0 {
		t.Errorf("Expected confidence 1.0 with sender bonus, got %v", known.Confidence)
	}
}

func TestSmsExtractor_AmountPatternFallthrough(t *testing.T) {
	e := NewSmsExtractor()

	// The INR pattern matches ",," but strips to an unparseable string; the
	// dollar pattern further along the priority list supplies the amount.
	got := e.Extract("HDFC-BANK", "spent INR ,, charged $45.00 at Book Store")
	if got == nil {
		t.Fatal("Expected a candidate, got nil")
	}
	if got.Amount != 45.00 {
		t.Errorf("Expected amount 45.00 from the $ pattern, got %v", got.Amount)
	}
}

func TestSmsExtractor_ZeroAmountYieldsNoCandidate(t *testing.T) {
	e := NewSmsExtractor()

	if got := e.Extract("HDFC-BANK", "You spent INR 0 at Cafe Mocha"); got != nil {
		t.Errorf("Expected no candidate for zero amount, got %+v", got)
	}
}

func TestSmsExtractor_Deterministic(t *testing.T) {
	e := NewSmsExtractor()
	sender, body := "ICICI", "spent Rs.750.00 on groceries at Big Bazaar"

	first := e.Extract(sender, body)
	second := e.Extract(sender, body)
	if first == nil || second == nil {
		t.Fatal("Expected candidates from both calls")
	}

	// ID and capture timestamp differ by design; the extraction itself must
	// be identical.
	if first.Amount != second.Amount || first.Merchant != second.Merchant ||
		first.Direction != second.Direction || first.Confidence != second.Confidence {
		t.Errorf("Extraction not deterministic:\n first: %+v\nsecond: %+v", first, second)
	}
}
