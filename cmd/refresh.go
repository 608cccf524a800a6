package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// refreshCmd runs one refresh from the terminal.
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh countries from the upstream sources",
	Long: `Fetches countries and exchange rates, upserts every reconciled country and
regenerates the summary. Outputs a log summary by default or JSON with --json.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")

		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.close()

		result, err := rt.engine.Refresh(cmd.Context())
		if err != nil {
			return fmt.Errorf("refresh failed: %w", err)
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		rt.logger.Info("Refresh summary",
			zap.Int("fetched", result.Fetched),
			zap.Int("committed", result.Committed),
			zap.Int("skipped", result.Skipped),
			zap.Int("without_rate", result.WithoutRate),
			zap.Duration("duration", result.Duration),
		)
		return nil
	},
}

func init() {
	refreshCmd.Flags().Bool("json", false, "Print the result as JSON")
	RootCmd.AddCommand(refreshCmd)
}
