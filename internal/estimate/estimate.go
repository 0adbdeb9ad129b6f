// Package estimate renders a priced calculation as a one-sheet XLSX estimate
// that the shop can print or hand to a customer.
package estimate

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/goldcalc/internal/money"
	"github.com/Simplici0/goldcalc/internal/pricing"
)

// Line is one label/value row of the estimate.
type Line struct {
	Label string
	Value string
}

// Estimate is the printable view of one calculation.
type Estimate struct {
	Title  string
	Inputs []Line
	Result pricing.Result
}

// ForSell builds the estimate of a sale.
func ForSell(in pricing.SellInput, r pricing.Result) Estimate {
	return Estimate{
		Title: "Selling Price Estimate",
		Inputs: []Line{
			{"Price of 24K Gold (1g)", money.FormatINR(in.GoldPricePerGram)},
			{"Gold Carat", in.Purity},
			{"Weight (g)", formatQty(in.WeightGrams)},
			{"Labour Cost (per gram)", money.FormatINR(in.LabourCostPerGram)},
			{"Extra Weight (mg)", formatQty(in.ExtraWeightMilligrams)},
		},
		Result: r,
	}
}

// ForBuy builds the estimate of a purchase.
func ForBuy(in pricing.BuyInput, r pricing.Result) Estimate {
	return Estimate{
		Title: "Buying Price Estimate",
		Inputs: []Line{
			{"Price of 24K Gold (1g)", money.FormatINR(in.GoldPricePerGram)},
			{"Touch (%)", formatQty(in.TouchPercent)},
			{"Weight (g)", formatQty(in.WeightGrams)},
			{"Dirt Weight (mg)", formatQty(in.DirtWeightMilligrams)},
		},
		Result: r,
	}
}

// Totals returns the breakdown and total rows. The labour line is only
// present for sales.
func (e Estimate) Totals() []Line {
	taxLabel := fmt.Sprintf("GST (%s%%)", formatQty(pricing.TaxRate*100))
	f := e.Result.Format()

	lines := []Line{{"Gold Cost", f.GoldCost}}
	if e.Result.Side == pricing.SideSell {
		lines = append(lines, Line{"Labour Cost", f.LabourCost})
	}
	return append(lines,
		Line{"Price Without GST", f.TotalExcludingTax},
		Line{taxLabel, f.TaxAmount},
		Line{"Price With GST", f.TotalIncludingTax},
	)
}

// WriteXLSX writes the estimate workbook to w.
func (e Estimate) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	if err := f.SetCellValue(sheet, "A1", e.Title); err != nil {
		return fmt.Errorf("write title: %w", err)
	}

	row := 3
	for _, section := range [][]Line{e.Inputs, e.Totals()} {
		for _, line := range section {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			values := []interface{}{line.Label, line.Value}
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
			row++
		}
		row++
	}

	if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetColWidth(sheet, "B", "B", 22); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
