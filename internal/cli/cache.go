package cli

import (
	"fmt"

	"github.com/finshare/finx/internal/pipeline"
	"github.com/spf13/cobra"
)

// cacheCmd represents the cache command
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the dedupe cache",
	Long: `The dedupe cache remembers extraction results per message, so repeated
SMS broadcasts and batch re-runs keep their original candidate IDs.`,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop all cached extraction results",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := pipeline.New(loadConfig())
		if err != nil {
			return err
		}
		if err := p.ClearCache(); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
		fmt.Println("✓ Cache cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
