package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lukman83/lcsc-scrap/internal/lcsc"
	"github.com/lukman83/lcsc-scrap/internal/ui"
)

var searchCmd = &cobra.Command{
	Use:   "search [keyword]",
	Short: "Search products by keyword",
	Long: "Search LCSC by keyword. Only the first page of 100 matches is fetched;\n" +
		"products below the stock floor are dropped and the rest are sorted.",
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("min-stock", lcsc.DefaultMinStock, "Drop products with less stock")
	searchCmd.Flags().Bool("no-stock-filter", false, "Keep products regardless of stock")
	searchCmd.Flags().String("sort-by", "", "Sort order: stock, price (default from $LCSC_SORT_BY or stock)")
	searchCmd.Flags().Int("limit", 0, "Print at most this many results (0 for all)")
	searchCmd.Flags().String("format", "json", "Output format: json, table")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	keyword := args[0]
	format, _ := cmd.Flags().GetString("format")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := searchDefaults()
	if cmd.Flags().Changed("min-stock") {
		n, _ := cmd.Flags().GetInt("min-stock")
		opts.MinStock = lcsc.StockFloor(n)
	}
	if noFilter, _ := cmd.Flags().GetBool("no-stock-filter"); noFilter {
		opts.MinStock = nil
	}
	if cmd.Flags().Changed("sort-by") {
		opts.SortBy, _ = cmd.Flags().GetString("sort-by")
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	spin := ui.NewSpinner(cmd.ErrOrStderr())
	spin.Start(fmt.Sprintf("Searching '%s'...", keyword))
	ctx := lcsc.WithProgress(cmd.Context(), spin.Update)
	results, err := client.Search(ctx, keyword, opts)
	spin.Stop()
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	out := cmd.OutOrStdout()
	switch format {
	case "table":
		printSearchTable(out, results)
		return nil
	default:
		return writeJSON(out, results)
	}
}
