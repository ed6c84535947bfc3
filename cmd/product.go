package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lukman83/lcsc-scrap/internal/lcsc"
	"github.com/lukman83/lcsc-scrap/internal/models"
	"github.com/lukman83/lcsc-scrap/internal/ui"
)

var productCmd = &cobra.Command{
	Use:     "product [part-number...]",
	Aliases: []string{"detail"},
	Short:   "Get product details by LCSC part number",
	Example: "  lcsc product C111887\n  lcsc product C111887 C2040 --format table",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runProduct,
}

func init() {
	productCmd.Flags().String("format", "json", "Output format: json, table")
	productCmd.Flags().Bool("raw", false, "Print the vendor records as received")
	rootCmd.AddCommand(productCmd)
}

func runProduct(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	raw, _ := cmd.Flags().GetBool("raw")

	client, err := newClient()
	if err != nil {
		return err
	}

	spin := ui.NewSpinner(cmd.ErrOrStderr())
	spin.Start(fmt.Sprintf("Fetching %d product(s)...", len(args)))
	ctx := lcsc.WithProgress(cmd.Context(), spin.Update)
	products, err := fetchProducts(ctx, client, args)
	spin.Stop()
	if err != nil {
		return fmt.Errorf("product lookup failed: %w", err)
	}
	products = uniqueProducts(products)

	out := cmd.OutOrStdout()
	switch {
	case raw:
		records := make([]models.Record, len(products))
		for i, p := range products {
			records[i] = p.Raw()
		}
		return writeJSON(out, single(records))
	case format == "table":
		printProductsTable(out, products)
		return nil
	default:
		return writeJSON(out, single(products))
	}
}

func fetchProducts(ctx context.Context, client *lcsc.Client, pns []string) ([]*models.Product, error) {
	if len(pns) == 1 {
		p, err := client.FetchProduct(ctx, pns[0])
		if err != nil {
			return nil, err
		}
		return []*models.Product{p}, nil
	}
	return client.FetchProducts(ctx, pns, cfg.MaxConcurrent)
}

// uniqueProducts drops repeated part numbers, keeping first-seen order.
func uniqueProducts(products []*models.Product) []*models.Product {
	idx := models.IndexByKey(products)
	out := make([]*models.Product, 0, len(idx))
	for _, p := range products {
		if kept, ok := idx[p.Key()]; ok {
			out = append(out, kept)
			delete(idx, p.Key())
		}
	}
	return out
}

// single unwraps one-element slices so a single lookup prints an object.
func single[T any](items []T) any {
	if len(items) == 1 {
		return items[0]
	}
	return items
}
