package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/net/html"

	"github.com/lukman83/lcsc-scrap/internal/lcsc"
	"github.com/lukman83/lcsc-scrap/internal/models"
)

const descriptionWidth = 100

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printProductsTable prints products in a human-friendly card layout.
func printProductsTable(w io.Writer, products []*models.Product) {
	for i, p := range products {
		if i > 0 {
			fmt.Fprintln(w)
		}
		printProductCard(w, i+1, p, "")
		printPriceBreaks(w, p)
		for _, s := range p.Specs() {
			fmt.Fprintf(w, "    %s: %s\n", s.Name(), s.Value())
		}
	}
}

// printSearchTable prints search results in ranked order.
func printSearchTable(w io.Writer, results models.SearchResults) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No products matched.")
		return
	}
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		printProductCard(w, i+1, r.Product(), r.URL())
		if r.OnDiscount() {
			fmt.Fprintln(w, "    [On discount]")
		}
	}
}

func printProductCard(w io.Writer, n int, p *models.Product, url string) {
	name := p.Code() + "  " + p.Model()
	if p.IsHot() {
		name += " [Hot]"
	}
	fmt.Fprintf(w, " %d. %s\n", n, name)

	fmt.Fprintf(w, "    Price: %s  |  Stock: %d  |  Brand: %s\n",
		formatUSD(p.BaseTier().Price()), p.Stock(), p.Brand().Name())
	fmt.Fprintf(w, "    Category: %s > %s\n", p.ParentCatalog().Name(), p.Catalog().Name())
	fmt.Fprintf(w, "    Order: min %d, multiples of %d\n", p.MinQuantity(), p.SplitQuantity())
	if d := plainText(p.Description()); d != "" {
		fmt.Fprintf(w, "    %s\n", truncate(d, descriptionWidth))
	}
	if url == "" {
		url = p.URL()
	}
	fmt.Fprintf(w, "    %s\n", url)
}

func printPriceBreaks(w io.Writer, p *models.Product) {
	price := p.Price()
	for _, q := range p.PriceBreaks() {
		t := price[q]
		line := fmt.Sprintf("    %6d+  %s", q, formatUSD(t.Price()))
		if t.DiscountPct().IsPositive() {
			line += fmt.Sprintf("  (-%s%%)", t.DiscountPct().Round(1))
		}
		fmt.Fprintln(w, line)
	}
}

func printQuote(w io.Writer, q lcsc.Quote) {
	p := q.Product
	fmt.Fprintf(w, " %s  %s\n", p.Code(), p.Model())
	fmt.Fprintf(w, "    Quantity:   %d (tier %d+)\n", q.Quantity, q.Tier.Quantity())
	fmt.Fprintf(w, "    Unit price: %s\n", formatUSD(q.UnitPrice))
	fmt.Fprintf(w, "    Total:      %s\n", formatUSD(q.Total))
	fmt.Fprintln(w, "    Price breaks:")
	printPriceBreaks(w, p)
}

// formatUSD formats d as "$1.50", keeping extra digits of sub-cent prices.
func formatUSD(d decimal.Decimal) string {
	if d.Exponent() >= -2 {
		return "$" + d.StringFixed(2)
	}
	s := d.String()
	if whole, frac, ok := strings.Cut(s, "."); ok && len(frac) < 2 {
		s = whole + "." + frac + strings.Repeat("0", 2-len(frac))
	}
	return "$" + s
}

// plainText strips markup from vendor text and collapses whitespace.
func plainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.Join(strings.Fields(s), " ")
	}
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			b.Write(z.Text())
			b.WriteByte(' ')
		}
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
