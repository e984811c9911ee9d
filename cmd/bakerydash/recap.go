package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"bakerydash/internal/domain"
	"bakerydash/internal/dto"
	"bakerydash/internal/order"
	"bakerydash/internal/recap"
)

var (
	recapStatus string
	recapJSON   bool
)

var recapCmd = &cobra.Command{
	Use:   "recap",
	Short: "Print the production recaps",
}

var recapBakeriesCmd = &cobra.Command{
	Use:   "bakeries",
	Short: "Print the per-bakery production recap",
	Long: `Groups orders by bakery and prints the quantity of every product each
bakery ordered. Recaps PENDING orders unless --status is given; --status ALL
recaps every order.`,
	RunE: runRecapBakeries,
}

var recapProductsCmd = &cobra.Command{
	Use:   "products",
	Short: "Print the per-product recap",
	Long: `Groups every order line by product name across all orders, or across the
orders in --status.`,
	RunE: runRecapProducts,
}

func init() {
	recapCmd.PersistentFlags().StringVar(&recapStatus, "status", "", "Order status to recap, or ALL")
	recapCmd.PersistentFlags().BoolVar(&recapJSON, "json", false, "Print JSON instead of a table")

	recapCmd.AddCommand(recapBakeriesCmd, recapProductsCmd)
}

func recapModule(cmd *cobra.Command) (*order.Module, func() error, error) {
	b, err := openBackend(cmd.Context(), cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return order.NewModuleWithStore(b.orders, b.products, cfg, log), b.Close, nil
}

func parseStatusFlag(fallback domain.OrderStatus) (domain.OrderStatus, error) {
	status, ok := domain.ParseStatusFilter(recapStatus, fallback)
	if !ok {
		return "", fmt.Errorf("unknown status %q", recapStatus)
	}
	return status, nil
}

func runRecapBakeries(cmd *cobra.Command, args []string) error {
	status, err := parseStatusFlag(domain.OrderStatusPending)
	if err != nil {
		return err
	}

	module, closeFn, err := recapModule(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	bakeries, summary, err := module.Recap.BakeryRecap(cmd.Context(), status)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if recapJSON {
		return writeIndentedJSON(out, dto.NewBakeryRecapResponse(status, bakeries, summary))
	}
	return printBakeries(out, bakeries, summary)
}

func runRecapProducts(cmd *cobra.Command, args []string) error {
	status, err := parseStatusFlag("")
	if err != nil {
		return err
	}

	module, closeFn, err := recapModule(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	products, err := module.Recap.ProductRecap(cmd.Context(), status)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if recapJSON {
		return writeIndentedJSON(out, dto.NewProductRecapResponse(status, products))
	}
	return printProducts(out, products)
}

func printBakeries(out io.Writer, bakeries []recap.BakeryRecap, summary recap.Summary) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BAKERY\tORDERS\tARTICLES\tTOTAL\tPRODUCTS")
	for _, b := range bakeries {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\n",
			b.BakeryName, b.OrderCount, b.ArticleCount, b.TotalAmount.StringFixed(2), formatProducts(b.Products))
	}
	fmt.Fprintf(tw, "TOTAL\t%d\t%d\t%s\t%d bakeries, %d products\n",
		summary.OrderCount, summary.ItemCount, summary.TotalAmount.StringFixed(2), summary.BakeryCount, summary.ProductCount)
	return tw.Flush()
}

func printProducts(out io.Writer, products []recap.ProductRecap) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT\tREF\tQUANTITY\tORDERS")
	for _, p := range products {
		ref := "-"
		if p.ProductRef != nil {
			ref = *p.ProductRef
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", p.ProductName, ref, p.TotalQuantity, p.OrderCount)
	}
	return tw.Flush()
}

func formatProducts(products map[string]int) string {
	names := make([]string, 0, len(products))
	for name := range products {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s x%d", name, products[name])
	}
	return strings.Join(parts, ", ")
}

func writeIndentedJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
