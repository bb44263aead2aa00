// Package validate performs offline sanity checks on extraction results
// before they are rendered or submitted. Checks never mutate the result and
// never fail the scan; they surface as warnings.
package validate

import (
	"fmt"
	"regexp"

	"github.com/finshare/finx/internal/model"
	"github.com/finshare/finx/internal/rules"
)

// Issue is one validation finding
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

// merchantCharset mirrors the sanitizer's allowed character set. A merchant
// outside it means the sanitizer was bypassed somewhere.
var merchantCharset = regexp.MustCompile(`^[A-Za-z0-9\s&.-]*$`)

// Validator checks extraction results for internal consistency
type Validator struct{}

// New creates a validator
func New() *Validator {
	return &Validator{}
}

// Candidate checks a transaction candidate. A nil candidate yields no issues;
// the gate rejecting a message is not an error.
func (v *Validator) Candidate(c *model.TransactionCandidate) []Issue {
	if c == nil {
		return nil
	}

	var issues []Issue
	if c.Amount <= 0 {
		issues = append(issues, Issue{Field: "amount", Message: fmt.Sprintf("must be positive, got %v", c.Amount)})
	}
	if c.Merchant == "" {
		issues = append(issues, Issue{Field: "merchant", Message: "empty; expected a name or the unknown placeholder"})
	} else if len(c.Merchant) > model.MerchantMaxLen {
		issues = append(issues, Issue{Field: "merchant", Message: fmt.Sprintf("exceeds %d characters", model.MerchantMaxLen)})
	} else if !merchantCharset.MatchString(c.Merchant) {
		issues = append(issues, Issue{Field: "merchant", Message: "contains unsanitized characters"})
	}
	if c.Direction != model.DirectionDebit && c.Direction != model.DirectionCredit {
		issues = append(issues, Issue{Field: "direction", Message: fmt.Sprintf("unknown direction %q", c.Direction)})
	}
	if c.Confidence < 0 || c.Confidence > 1 {
		issues = append(issues, Issue{Field: "confidence", Message: fmt.Sprintf("out of range: %v", c.Confidence)})
	}
	return issues
}

// Receipt checks a receipt extraction
func (v *Validator) Receipt(r *model.ReceiptExtraction) []Issue {
	if r == nil {
		return nil
	}

	var issues []Issue
	if r.TotalAmount != nil && *r.TotalAmount < 0 {
		issues = append(issues, Issue{Field: "total_amount", Message: fmt.Sprintf("negative total %v", *r.TotalAmount)})
	}
	if r.TransactionDate != "" && !rules.Date.MatchString(r.TransactionDate) {
		issues = append(issues, Issue{Field: "transaction_date", Message: fmt.Sprintf("unexpected shape %q", r.TransactionDate)})
	}
	if r.Confidence < 0 || r.Confidence > 1 {
		issues = append(issues, Issue{Field: "confidence", Message: fmt.Sprintf("out of range: %v", r.Confidence)})
	}
	for i, item := range r.LineItems {
		if item.Price != nil && *item.Price < 0 {
			issues = append(issues, Issue{Field: "line_items", Message: fmt.Sprintf("item %d has negative price", i)})
		}
	}
	return issues
}
