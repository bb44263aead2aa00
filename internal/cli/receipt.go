package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/finshare/finx/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	receiptJSON    bool
	receiptTimeout time.Duration
)

// receiptCmd represents the receipt command
var receiptCmd = &cobra.Command{
	Use:   "receipt <file>",
	Short: "Extract structured fields from receipt OCR text",
	Long: `Extract the merchant, total, date and line items from the OCR text of
a scanned receipt. Pass "-" to read the text from stdin.

Recognition is line-oriented and best-effort: fields that cannot be
recognized are simply absent, and the extraction carries a confidence
score reflecting how many fields were found.

Example:
  finx receipt receipt.txt
  tesseract scan.png - | finx receipt - --json`,
	Args: cobra.ExactArgs(1),
	RunE: runReceipt,
}

func init() {
	rootCmd.AddCommand(receiptCmd)

	receiptCmd.Flags().BoolVar(&receiptJSON, "json", false, "print the full scan report as JSON")
	receiptCmd.Flags().DurationVar(&receiptTimeout, "timeout", 30*time.Second, "overall scan timeout")
}

func runReceipt(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), receiptTimeout)
	defer cancel()

	ocrText, err := pipeline.ReadInput(input)
	if err != nil {
		return err
	}

	p, err := pipeline.New(loadConfig())
	if err != nil {
		return err
	}

	report, err := p.ScanReceipt(ctx, ocrText, input)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if receiptJSON {
		if err := pipeline.RenderJSON(os.Stdout, report); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
	} else {
		pipeline.RenderReceipt(os.Stdout, report)
	}

	return nil
}
