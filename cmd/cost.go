package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lukman83/lcsc-scrap/internal/lcsc"
	"github.com/lukman83/lcsc-scrap/internal/ui"
)

var costCmd = &cobra.Command{
	Use:     "cost [part-number] [quantity]",
	Short:   "Price an order using the product's tiered pricing",
	Example: "  lcsc cost C111887 150",
	Args:    cobra.ExactArgs(2),
	RunE:    runCost,
}

func init() {
	costCmd.Flags().String("format", "table", "Output format: json, table")
	rootCmd.AddCommand(costCmd)
}

func runCost(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("quantity %q is not a whole number", args[1])
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	spin := ui.NewSpinner(cmd.ErrOrStderr())
	spin.Start(fmt.Sprintf("Pricing %d x %s...", quantity, args[0]))
	ctx := lcsc.WithProgress(cmd.Context(), spin.Update)
	quote, err := client.QuoteOrder(ctx, args[0], quantity)
	spin.Stop()
	if err != nil {
		return fmt.Errorf("cost failed: %w", err)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		return writeJSON(out, quote)
	default:
		printQuote(out, quote)
		return nil
	}
}
