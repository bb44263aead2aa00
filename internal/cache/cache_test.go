package cache

import (
	"testing"
	"time"

	"github.com/finshare/finx/internal/model"
)

func TestMessageKey_StableAndSenderSensitive(t *testing.T) {
	a := MessageKey("HDFC-BANK", "spent INR 100 at Cafe")
	b := MessageKey("HDFC-BANK", "spent INR 100 at Cafe")
	if a != b {
		t.Errorf("Expected stable keys, got %q vs %q", a, b)
	}

	c := MessageKey("ICICI", "spent INR 100 at Cafe")
	if a == c {
		t.Error("Expected different senders to produce different keys")
	}
}

func TestCandidateRoundTrip(t *testing.T) {
	mem := NewMemoryCache(time.Minute, time.Minute)

	cand := &model.TransactionCandidate{
		ID:         "abc-123",
		Amount:     450.00,
		Merchant:   "Cafe Mocha",
		Direction:  model.DirectionDebit,
		SourceID:   "HDFC-BANK",
		Confidence: 1.0,
	}

	if err := PutCandidate(mem, "HDFC-BANK", "body", cand, time.Minute); err != nil {
		t.Fatalf("PutCandidate: %v", err)
	}

	got, ok := GetCandidate(mem, "HDFC-BANK", "body")
	if !ok {
		t.Fatal("Expected a cache hit")
	}
	if got.ID != cand.ID || got.Amount != cand.Amount || got.Merchant != cand.Merchant {
		t.Errorf("Round trip mismatch: %+v vs %+v", got, cand)
	}

	if _, ok := GetCandidate(mem, "HDFC-BANK", "other body"); ok {
		t.Error("Expected a miss for a different body")
	}
}
