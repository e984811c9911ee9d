// Package export renders the production recap of pending orders as an xlsx
// workbook with a bakery × product matrix, a detail listing and a summary.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"bakerydash/internal/domain"
	"bakerydash/internal/recap"
)

const (
	SheetProduction = "Production"
	SheetDetails    = "Details"
	SheetSummary    = "Summary"
)

type Options struct {
	GeneratedAt time.Time
	Location    *time.Location
}

type styles struct {
	header int
	total  int
	money  int
}

// Build creates the workbook for the PENDING orders found in orders.
// The caller owns the returned file and must Close it.
func Build(orders []domain.Order, opts Options) (*excelize.File, error) {
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now()
	}
	if opts.Location != nil {
		opts.GeneratedAt = opts.GeneratedAt.In(opts.Location)
	}

	pending := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status == domain.OrderStatusPending {
			pending = append(pending, o)
		}
	}

	bakeries := recap.Bakeries(pending)
	products := recap.Products(pending)

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetProduction); err != nil {
		f.Close()
		return nil, fmt.Errorf("renaming default sheet: %w", err)
	}
	for _, name := range []string{SheetDetails, SheetSummary} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("creating sheet %s: %w", name, err)
		}
	}

	st, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := writeProduction(f, st, bakeries); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing %s sheet: %w", SheetProduction, err)
	}
	if err := writeDetails(f, st, bakeries, products); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing %s sheet: %w", SheetDetails, err)
	}
	if err := writeSummary(f, st, bakeries, opts.GeneratedAt); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing %s sheet: %w", SheetSummary, err)
	}

	f.SetActiveSheet(0)
	return f, nil
}

// Write builds the workbook and streams it to w.
func Write(w io.Writer, orders []domain.Order, opts Options) error {
	f, err := Build(orders, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func newStyles(f *excelize.File) (styles, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#8B5A2B"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return styles{}, fmt.Errorf("creating header style: %w", err)
	}

	total, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#F3E5AB"}, Pattern: 1},
	})
	if err != nil {
		return styles{}, fmt.Errorf("creating total style: %w", err)
	}

	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return styles{}, fmt.Errorf("creating money style: %w", err)
	}

	return styles{header: header, total: total, money: money}, nil
}

// cell only fails for coordinates below 1 or columns past excelize.MaxColumns.
// Callers count from 1 and writeProduction bounds its widest row.
func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func writeProduction(f *excelize.File, st styles, bakeries []recap.BakeryRecap) error {
	names := recap.ProductNames(bakeries)
	totalCol := len(names) + 2
	amountCol := len(names) + 3
	if amountCol > excelize.MaxColumns {
		return fmt.Errorf("%d distinct products do not fit in a production sheet", len(names))
	}

	header := make([]interface{}, 0, len(names)+3)
	header = append(header, "Bakery")
	for _, name := range names {
		header = append(header, name)
	}
	header = append(header, "Total", "Amount TTC")
	if err := f.SetSheetRow(SheetProduction, cell(1, 1), &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetProduction, cell(1, 1), cell(amountCol, 1), st.header); err != nil {
		return err
	}

	columnTotals := make([]int, len(names))
	grandTotal := 0
	for i, b := range bakeries {
		row := i + 2
		values := make([]interface{}, 0, len(names)+3)
		values = append(values, b.BakeryName)
		rowTotal := 0
		for j, name := range names {
			qty := b.Products[name]
			values = append(values, qty)
			rowTotal += qty
			columnTotals[j] += qty
		}
		grandTotal += rowTotal
		values = append(values, rowTotal, b.TotalAmount.InexactFloat64())
		if err := f.SetSheetRow(SheetProduction, cell(1, row), &values); err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetProduction, cell(totalCol, row), cell(totalCol, row), st.total); err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetProduction, cell(amountCol, row), cell(amountCol, row), st.money); err != nil {
			return err
		}
	}

	summary := recap.Totals(bakeries)
	totalsRow := len(bakeries) + 2
	totals := make([]interface{}, 0, len(names)+3)
	totals = append(totals, "Total")
	for _, qty := range columnTotals {
		totals = append(totals, qty)
	}
	totals = append(totals, grandTotal, summary.TotalAmount.InexactFloat64())
	if err := f.SetSheetRow(SheetProduction, cell(1, totalsRow), &totals); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetProduction, cell(1, totalsRow), cell(amountCol, totalsRow), st.total); err != nil {
		return err
	}

	if err := f.SetColWidth(SheetProduction, "A", "A", 28); err != nil {
		return err
	}
	return f.SetPanes(SheetProduction, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
		ActivePane:  "bottomRight",
	})
}

func writeDetails(f *excelize.File, st styles, bakeries []recap.BakeryRecap, products []recap.ProductRecap) error {
	refs := make(map[string]string, len(products))
	for _, p := range products {
		if p.ProductRef != nil {
			refs[p.ProductName] = *p.ProductRef
		}
	}

	header := []interface{}{"Bakery", "Product", "Reference", "Quantity"}
	if err := f.SetSheetRow(SheetDetails, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetDetails, "A1", "D1", st.header); err != nil {
		return err
	}

	row := 2
	for _, b := range bakeries {
		for _, name := range recap.ProductNames([]recap.BakeryRecap{b}) {
			values := []interface{}{b.BakeryName, name, refs[name], b.Products[name]}
			if err := f.SetSheetRow(SheetDetails, cell(1, row), &values); err != nil {
				return err
			}
			row++
		}
	}

	if err := f.SetColWidth(SheetDetails, "A", "B", 28); err != nil {
		return err
	}
	return f.SetColWidth(SheetDetails, "C", "D", 14)
}

func writeSummary(f *excelize.File, st styles, bakeries []recap.BakeryRecap, generatedAt time.Time) error {
	summary := recap.Totals(bakeries)

	rows := [][]interface{}{
		{"Indicator", "Value"},
		{"Pending orders", summary.OrderCount},
		{"Bakeries", summary.BakeryCount},
		{"Products", summary.ProductCount},
		{"Items to produce", summary.ItemCount},
		{"Amount TTC", summary.TotalAmount.InexactFloat64()},
		{"Generated at", generatedAt.Format("2006-01-02 15:04")},
	}

	for i := range rows {
		if err := f.SetSheetRow(SheetSummary, cell(1, i+1), &rows[i]); err != nil {
			return err
		}
	}

	if err := f.SetCellStyle(SheetSummary, "A1", "B1", st.header); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetSummary, "B6", "B6", st.money); err != nil {
		return err
	}
	return f.SetColWidth(SheetSummary, "A", "B", 24)
}
