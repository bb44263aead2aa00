package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/finshare/finx/internal/client"
	"github.com/finshare/finx/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	smsJSON     bool
	smsNoCache  bool
	smsSubmit   bool
	smsGroupID  string
	smsTimeout  time.Duration
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// smsCmd represents the sms command
var smsCmd = &cobra.Command{
	Use:   "sms <sender> <body>",
	Short: "Extract a transaction candidate from one SMS",
	Long: `Extract a tentative transaction from a bank SMS notification.

The sender is the SMS sender identifier (e.g., a bank shortcode like
HDFC-BANK); the body is the full message text. Non-transaction messages
yield no candidate, which is a normal outcome, not an error.

Example:
  finx sms HDFC "You spent INR 1,234.50 on 12-03-2024 at Cafe Mocha using card ending 1234"
  finx sms ICICI "Your A/C debited by Rs.450.00" --json
  finx sms HDFC "spent INR 450.00 on food at Cafe Mocha" --llm ollama`,
	Args: cobra.ExactArgs(2),
	RunE: runSms,
}

func init() {
	rootCmd.AddCommand(smsCmd)

	smsCmd.Flags().BoolVar(&smsJSON, "json", false, "print the full scan report as JSON")
	smsCmd.Flags().BoolVar(&smsNoCache, "no-cache", false, "disable the dedupe cache")
	smsCmd.Flags().BoolVar(&smsSubmit, "submit", false, "submit the candidate to the FinShare backend as an expense")
	smsCmd.Flags().StringVar(&smsGroupID, "group", "", "group id for backend submission")
	smsCmd.Flags().DurationVar(&smsTimeout, "timeout", 30*time.Second, "overall scan timeout")

	// LLM flags
	smsCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable expense category suggestion")
	smsCmd.Flags().StringVar(&llmProvider, "llm-provider", "ollama", "LLM provider (openai, ollama)")
	smsCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runSms(cmd *cobra.Command, args []string) error {
	sender, body := args[0], args[1]
	ctx, cancel := context.WithTimeout(context.Background(), smsTimeout)
	defer cancel()

	cfg := loadConfig()
	if smsNoCache {
		cfg.Cache.Enabled = false
	}
	if llmEnabled {
		if err := applyLLMFlags(cfg, llmProvider, llmModel); err != nil {
			return err
		}
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	report, err := p.ScanMessage(ctx, sender, body)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if smsJSON {
		if err := pipeline.RenderJSON(os.Stdout, report); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
	} else {
		pipeline.RenderCandidate(os.Stdout, report)
	}

	if smsSubmit {
		if report.Candidate == nil {
			return fmt.Errorf("nothing to submit: no transaction detected")
		}
		c := client.New(cfg.Backend)
		id, err := c.SubmitCandidate(ctx, report.Candidate, smsGroupID)
		if err != nil {
			return fmt.Errorf("submit failed: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Submitted expense %s\n", id)
	}

	return nil
}
