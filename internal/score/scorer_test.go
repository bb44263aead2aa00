package score

import (
	"math"
	"testing"
)

func TestCandidate(t *testing.T) {
	tests := []struct {
		name                              string
		hasAmount, hasMerchant, knownBank bool
		want                              float64
	}{
		{"nothing", false, false, false, 0},
		{"amount only", true, false, false, 0.4},
		{"amount and merchant", true, true, false, 0.7},
		{"all signals", true, true, true, 1.0},
		{"merchant without amount", false, true, true, 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Candidate(tt.hasAmount, tt.hasMerchant, tt.knownBank)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Candidate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClamp01(t *testing.T) {
	if got := Clamp01(1.3); got != 1.0 {
		t.Errorf("Clamp01(1.3) = %v, want 1.0", got)
	}
	if got := Clamp01(-0.1); got != 0 {
		t.Errorf("Clamp01(-0.1) = %v, want 0", got)
	}
	if got := Clamp01(0.5); got != 0.5 {
		t.Errorf("Clamp01(0.5) = %v, want 0.5", got)
	}
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		confidence float64
		want       Band
	}{
		{0.0, BandLow},
		{0.49, BandLow},
		{0.5, BandMedium},
		{0.79, BandMedium},
		{0.8, BandHigh},
		{1.0, BandHigh},
	}

	for _, tt := range tests {
		if got := BandFor(tt.confidence); got != tt.want {
			t.Errorf("BandFor(%v) = %v, want %v", tt.confidence, got, tt.want)
		}
	}
}
