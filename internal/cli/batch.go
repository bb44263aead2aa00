package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/finshare/finx/internal/pipeline"
	"github.com/finshare/finx/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	batchNoCache bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Extract candidates from an SMS export file in parallel",
	Long: `Batch processes an SMS export file:
- One message per line, as "sender<TAB>body"
- Lines starting with # and blank lines are skipped
- Exact duplicate lines are dropped (repeated broadcasts)
- Messages are extracted in parallel with a configurable worker count

With --output-dir, one JSON report is written per extracted candidate.
Without it, only the summary counts are printed.

Example:
  finx batch export.tsv
  finx batch export.tsv --concurrency 8 --output-dir ./candidates
  finx batch export.tsv --llm ollama`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "", "write one JSON report per candidate to this directory")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&batchNoCache, "no-cache", false, "disable the dedupe cache")

	// LLM flags
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable expense category suggestion")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "ollama", "LLM provider (openai, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := loadConfig()
	cfg.Concurrency.Workers = concurrency
	if batchNoCache {
		cfg.Cache.Enabled = false
	}
	if llmEnabled {
		if err := applyLLMFlags(cfg, llmProvider, llmModel); err != nil {
			return err
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Input file: %s\n", file)
		fmt.Fprintf(os.Stderr, "Workers:    %d\n", concurrency)
		if llmEnabled {
			fmt.Fprintf(os.Stderr, "LLM:        %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	for _, result := range results {
		if result.Error != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Message.SourceID, result.Error)
			continue
		}
		if result.Report.Candidate == nil {
			continue
		}

		if outputDir != "" {
			if _, err := pipeline.WriteReportFile(outputDir, result.Report); err != nil {
				fmt.Fprintf(os.Stderr, "✗ %s: write report: %v\n", result.Message.SourceID, err)
				continue
			}
		}
		if verbose {
			c := result.Report.Candidate
			fmt.Fprintf(os.Stderr, "✓ %s: %.2f at %s (confidence %.2f)\n",
				result.Message.SourceID, c.Amount, c.Merchant, c.Confidence)
		}
	}

	pipeline.RenderSummary(os.Stdout, pipeline.Summarize(results))
	if outputDir != "" {
		fmt.Fprintf(os.Stderr, "Reports written to %s\n", outputDir)
	}

	return nil
}
