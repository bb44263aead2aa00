package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/finshare/finx/internal/model"
	"github.com/finshare/finx/internal/score"
	"github.com/finshare/finx/internal/worker"
)

// RenderJSON writes the report as indented JSON
func RenderJSON(w io.Writer, report *model.ScanReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// WriteReportFile writes a report as JSON under dir, named after the
// candidate ID or the scan timestamp when no candidate was extracted.
func WriteReportFile(dir string, report *model.ScanReport) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	name := report.ScannedAt.Format("20060102T150405.000000000")
	if report.Candidate != nil {
		name = report.Candidate.ID
	}
	path := filepath.Join(dir, name+".json")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := RenderJSON(f, report); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// RenderCandidate prints a human-readable view of one extraction
func RenderCandidate(w io.Writer, report *model.ScanReport) {
	if report.Candidate == nil {
		fmt.Fprintf(w, "No transaction detected.\n")
		return
	}

	c := report.Candidate
	fmt.Fprintf(w, "Transaction candidate\n")
	fmt.Fprintf(w, "  Amount:     %.2f\n", c.Amount)
	fmt.Fprintf(w, "  Merchant:   %s\n", c.Merchant)
	fmt.Fprintf(w, "  Direction:  %s\n", c.Direction)
	if c.Category != "" {
		fmt.Fprintf(w, "  Category:   %s\n", c.Category)
	}
	fmt.Fprintf(w, "  Confidence: %.2f (%s)\n", c.Confidence, score.BandFor(c.Confidence))
	if report.Cached {
		fmt.Fprintf(w, "  (served from cache)\n")
	}
}

// RenderReceipt prints a human-readable view of a receipt extraction
func RenderReceipt(w io.Writer, report *model.ScanReport) {
	r := report.Receipt
	if r == nil || r.IsEmpty() {
		fmt.Fprintf(w, "No receipt fields recognized.\n")
		return
	}

	fmt.Fprintf(w, "Receipt\n")
	if r.MerchantName != "" {
		fmt.Fprintf(w, "  Merchant: %s\n", r.MerchantName)
	}
	if r.TotalAmount != nil {
		fmt.Fprintf(w, "  Total:    %.2f\n", *r.TotalAmount)
	}
	if r.TransactionDate != "" {
		fmt.Fprintf(w, "  Date:     %s\n", r.TransactionDate)
	}
	if len(r.LineItems) > 0 {
		fmt.Fprintf(w, "  Items:\n")
		for _, item := range r.LineItems {
			if item.Price != nil {
				fmt.Fprintf(w, "    %-30s %8.2f\n", item.Name, *item.Price)
			} else {
				fmt.Fprintf(w, "    %s\n", item.Name)
			}
		}
	}
	fmt.Fprintf(w, "  Confidence: %.2f (%s)\n", r.Confidence, score.BandFor(r.Confidence))
}

// Summarize aggregates batch results into counts
func Summarize(results []*worker.MessageResult) model.BatchSummary {
	summary := model.BatchSummary{Messages: len(results)}
	for _, res := range results {
		switch {
		case res.Error != nil:
			summary.Errors++
		case res.Report == nil || res.Report.Candidate == nil:
			summary.Skipped++
		default:
			summary.Candidates++
			if res.Report.Candidate.NeedsReview() {
				summary.Review++
			}
		}
	}
	return summary
}

// RenderSummary prints the batch outcome counts
func RenderSummary(w io.Writer, summary model.BatchSummary) {
	fmt.Fprintf(w, "Batch summary\n")
	fmt.Fprintf(w, "  Messages:   %d\n", summary.Messages)
	fmt.Fprintf(w, "  Candidates: %d\n", summary.Candidates)
	fmt.Fprintf(w, "  Skipped:    %d\n", summary.Skipped)
	fmt.Fprintf(w, "  Review:     %d\n", summary.Review)
	fmt.Fprintf(w, "  Errors:     %d\n", summary.Errors)
}
