package extract

import (
	"strconv"
	"strings"

	"github.com/finshare/finx/internal/model"
	"github.com/finshare/finx/internal/rules"
	"github.com/finshare/finx/internal/score"
)

// ReceiptExtractor parses OCR text from a photographed receipt. Like the SMS
// extractor it is stateless and safe for concurrent use.
type ReceiptExtractor struct{}

// NewReceiptExtractor creates a new receipt extractor
func NewReceiptExtractor() *ReceiptExtractor {
	return &ReceiptExtractor{}
}

// merchantScanLines is how many leading lines are considered for the
// merchant name. Store names sit at the top of a receipt.
const merchantScanLines = 3

// minMerchantLineLen filters out OCR noise lines.
const minMerchantLineLen = 3

// Extract parses OCR text into a best-effort receipt extraction. It always
// returns a value: empty or unrecognizable input yields the zero extraction
// with confidence 0, never an error.
func (e *ReceiptExtractor) Extract(ocrText string) model.ReceiptExtraction {
	lines := splitLines(ocrText)

	result := model.ReceiptExtraction{
		LineItems: []model.LineItem{},
	}
	var confidence float64

	for i, line := range lines {
		// Merchant: first qualifying line among the leading few. A line with
		// a digit or dot is assumed to be an address, date or price row.
		if i < merchantScanLines && result.MerchantName == "" &&
			len(line) > minMerchantLineLen && !rules.MerchantLineExclude.MatchString(line) {
			result.MerchantName = line
			confidence += score.WeightReceiptMerchant
		}

		// Total: first line with total vocabulary and a numeric substring
		// wins; later total lines are ignored.
		if result.TotalAmount == nil && rules.TotalKeywords.MatchString(line) {
			if num := rules.Number.FindString(line); num != "" {
				if total, err := strconv.ParseFloat(num, 64); err == nil {
					result.TotalAmount = &total
					confidence += score.WeightReceiptTotal
				}
			}
		}

		// Date: first match across all lines, stored verbatim.
		if result.TransactionDate == "" {
			if date := rules.Date.FindString(line); date != "" {
				result.TransactionDate = date
				confidence += score.WeightReceiptDate
			}
		}

		// Line items: every line is a candidate, including ones already used
		// for merchant, total or date.
		if m := rules.LineItem.FindStringSubmatch(line); m != nil {
			name := strings.TrimSpace(m[1])
			if name != "" {
				if price, err := strconv.ParseFloat(m[2], 64); err == nil {
					result.LineItems = append(result.LineItems, model.LineItem{
						Name:  name,
						Price: &price,
					})
					confidence += score.WeightReceiptItem
				}
			}
		}
	}

	result.Confidence = score.Clamp01(confidence)
	return result
}

// splitLines returns the trimmed, non-empty lines of the OCR text.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
