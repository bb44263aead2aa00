// Package pipeline wires the extractors together with the dedupe cache,
// validation and optional categorization. The CLI commands are thin shells
// around it.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/finshare/finx/internal/cache"
	"github.com/finshare/finx/internal/extract"
	"github.com/finshare/finx/internal/llm"
	"github.com/finshare/finx/internal/model"
	"github.com/finshare/finx/internal/validate"
)

// Pipeline runs a full scan for one input
type Pipeline struct {
	sms         *extract.SmsExtractor
	receipt     *extract.ReceiptExtractor
	cache       cache.Cache
	cacheTTL    time.Duration
	validator   *validate.Validator
	categorizer *llm.Categorizer
	verbose     bool
}

// New builds a pipeline from configuration. The cache and categorizer are
// optional; a pipeline without them still extracts.
func New(cfg *model.Config) (*Pipeline, error) {
	p := &Pipeline{
		sms:       extract.NewSmsExtractor(),
		receipt:   extract.NewReceiptExtractor(),
		validator: validate.New(),
		verbose:   cfg.Output.Verbose,
	}

	if cfg.Cache.Enabled && cfg.Cache.Dir != "" {
		p.cache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		p.cacheTTL = cfg.Cache.DiskTTL
	}

	categorizer, err := llm.NewCategorizer(
		llm.ConfigFromModel(cfg.LLM),
		cfg.LLM.RequestsPerSecond,
		cfg.LLM.Burst,
	)
	if err != nil {
		return nil, fmt.Errorf("configure categorizer: %w", err)
	}
	p.categorizer = categorizer

	return p, nil
}

// ScanMessage extracts a transaction candidate from one SMS. A nil Candidate
// in the report means the gate rejected the message; that is a normal
// outcome, not an error.
func (p *Pipeline) ScanMessage(ctx context.Context, sourceID, body string) (*model.ScanReport, error) {
	report := &model.ScanReport{
		Kind:      model.SourceSMS,
		Input:     "sms:" + sourceID,
		ScannedAt: time.Now().UTC(),
	}

	if p.cache != nil {
		if cand, ok := cache.GetCandidate(p.cache, sourceID, body); ok {
			report.Candidate = cand
			report.Category = cand.Category
			report.Cached = true
			return report, nil
		}
	}

	cand := p.sms.Extract(sourceID, body)
	if cand == nil {
		return report, nil
	}

	p.warn(p.validator.Candidate(cand))

	if p.categorizer.IsEnabled() {
		category, err := p.categorizer.Categorize(ctx, *cand)
		if err != nil {
			// Categorization is decorative; warn and continue.
			fmt.Fprintf(os.Stderr, "Warning: categorize %s: %v\n", cand.Merchant, err)
		} else {
			cand.Category = category
			report.Category = category
		}
	}

	if p.cache != nil {
		if err := cache.PutCandidate(p.cache, sourceID, body, cand, p.cacheTTL); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cache candidate: %v\n", err)
		}
	}

	report.Candidate = cand
	return report, nil
}

// ScanReceipt extracts structured fields from receipt OCR text. The input
// label names the source file for the report, or "-" for stdin.
func (p *Pipeline) ScanReceipt(ctx context.Context, ocrText, input string) (*model.ScanReport, error) {
	report := &model.ScanReport{
		Kind:      model.SourceReceipt,
		Input:     input,
		ScannedAt: time.Now().UTC(),
	}

	extraction := p.receipt.Extract(ocrText)
	p.warn(p.validator.Receipt(&extraction))
	report.Receipt = &extraction

	return report, nil
}

// ClearCache drops all cached extraction results
func (p *Pipeline) ClearCache() error {
	if p.cache == nil {
		return nil
	}
	return p.cache.Clear()
}

func (p *Pipeline) warn(issues []validate.Issue) {
	if !p.verbose {
		return
	}
	for _, issue := range issues {
		fmt.Fprintf(os.Stderr, "Warning: validation: %s\n", issue)
	}
}
