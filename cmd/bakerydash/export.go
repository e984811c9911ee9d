package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bakerydash/internal/order"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the production workbook of the pending orders",
	Long: `Writes the three-sheet production workbook (production grid, details and
summary) for every PENDING order. Use -o - to write it to stdout.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "production.xlsx", "Output file, or - for stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	b, err := openBackend(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer b.Close()

	module := order.NewModuleWithStore(b.orders, b.products, cfg, log)

	if exportOutput == "-" {
		w := bufio.NewWriter(cmd.OutOrStdout())
		if err := module.Recap.Export(cmd.Context(), w); err != nil {
			return err
		}
		return w.Flush()
	}

	f, err := os.Create(exportOutput)
	if err != nil {
		return fmt.Errorf("creating %s: %w", exportOutput, err)
	}
	if err := module.Recap.Export(cmd.Context(), f); err != nil {
		f.Close()
		_ = os.Remove(exportOutput)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", exportOutput, err)
	}

	log.Info("production workbook written", zap.String("path", exportOutput))
	return nil
}
