package estimate

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/goldcalc/internal/pricing"
)

func TestForSell_WritesInputsAndTotals(t *testing.T) {
	in := pricing.SellInput{GoldPricePerGram: 6000, Purity: "22k", WeightGrams: 10, LabourCostPerGram: 500}
	est := ForSell(in, pricing.Sell(in))

	var buf bytes.Buffer
	if err := est.WriteXLSX(&buf); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(f.GetActiveSheetIndex()))
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}

	values := map[string]string{}
	for _, r := range rows {
		if len(r) == 2 {
			values[r[0]] = r[1]
		}
	}

	if rows[0][0] != "Selling Price Estimate" {
		t.Fatalf("unexpected title row: %v", rows[0])
	}
	expected := map[string]string{
		"Gold Carat":        "22k",
		"Weight (g)":        "10",
		"Gold Cost":         "₹55,000.00",
		"Labour Cost":       "₹5,000.00",
		"Price Without GST": "₹60,000.00",
		"GST (3%)":          "₹1,800.00",
		"Price With GST":    "₹61,800.00",
	}
	for label, want := range expected {
		if got := values[label]; got != want {
			t.Fatalf("%s = %q, want %q", label, got, want)
		}
	}
}

func TestForBuy_HasNoLabourLine(t *testing.T) {
	in := pricing.BuyInput{GoldPricePerGram: 6000, TouchPercent: 91.6, WeightGrams: 10, DirtWeightMilligrams: 100}
	est := ForBuy(in, pricing.Buy(in))

	for _, line := range est.Totals() {
		if line.Label == "Labour Cost" {
			t.Fatalf("buy estimate must not contain a labour line")
		}
	}
	last := est.Totals()[len(est.Totals())-1]
	if last.Value != "₹56,042.71" {
		t.Fatalf("total = %q, want ₹56,042.71", last.Value)
	}
}
