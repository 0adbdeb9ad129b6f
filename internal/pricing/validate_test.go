package pricing

import (
	"errors"
	"math"
	"testing"
)

func fieldNames(t *testing.T, err error) map[string]bool {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
	}
	names := make(map[string]bool, len(verr.Fields))
	for _, f := range verr.Fields {
		names[f.Field] = true
	}
	return names
}

func TestValidateSell_Valid(t *testing.T) {
	in := SellInput{GoldPricePerGram: 6000, Purity: "22k", WeightGrams: 10, LabourCostPerGram: 0}
	if err := ValidateSell(in); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !in.Valid() {
		t.Fatalf("expected Valid() to be true")
	}
}

func TestValidateSell_ReportsEveryField(t *testing.T) {
	in := SellInput{GoldPricePerGram: 0, Purity: "", WeightGrams: -1, LabourCostPerGram: -5, ExtraWeightMilligrams: -1}

	names := fieldNames(t, ValidateSell(in))
	for _, want := range []string{"gold_price", "purity", "weight", "labour_cost", "extra_weight"} {
		if !names[want] {
			t.Fatalf("expected %s in validation error, got %v", want, names)
		}
	}
	if in.Valid() {
		t.Fatalf("expected Valid() to be false")
	}
}

func TestValidateSell_UnresolvableGrade(t *testing.T) {
	names := fieldNames(t, ValidateSell(SellInput{GoldPricePerGram: 1, Purity: "shiny", WeightGrams: 1}))
	if !names["purity"] || len(names) != 1 {
		t.Fatalf("expected only purity to fail, got %v", names)
	}
}

func TestValidateSell_RejectsNaN(t *testing.T) {
	names := fieldNames(t, ValidateSell(SellInput{GoldPricePerGram: math.NaN(), Purity: "22k", WeightGrams: 1}))
	if !names["gold_price"] {
		t.Fatalf("expected gold_price to fail, got %v", names)
	}
}

func TestValidateBuy(t *testing.T) {
	cases := []struct {
		name  string
		in    BuyInput
		field string
	}{
		{"valid", BuyInput{GoldPricePerGram: 6000, TouchPercent: 91.6, WeightGrams: 10, DirtWeightMilligrams: 100}, ""},
		{"touch zero allowed", BuyInput{GoldPricePerGram: 6000, TouchPercent: 0, WeightGrams: 10}, ""},
		{"dirt equal to weight", BuyInput{GoldPricePerGram: 6000, TouchPercent: 90, WeightGrams: 1, DirtWeightMilligrams: 1000}, ""},
		{"no gold price", BuyInput{TouchPercent: 90, WeightGrams: 10}, "gold_price"},
		{"touch above 100", BuyInput{GoldPricePerGram: 6000, TouchPercent: 101, WeightGrams: 10}, "touch"},
		{"no weight", BuyInput{GoldPricePerGram: 6000, TouchPercent: 90}, "weight"},
		{"negative dirt", BuyInput{GoldPricePerGram: 6000, TouchPercent: 90, WeightGrams: 10, DirtWeightMilligrams: -1}, "dirt_weight"},
		{"dirt exceeds weight", BuyInput{GoldPricePerGram: 6000, TouchPercent: 90, WeightGrams: 1, DirtWeightMilligrams: 1500}, "dirt_weight"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateBuy(tc.in)
			if tc.field == "" {
				if err != nil {
					t.Fatalf("unexpected err: %v", err)
				}
				return
			}
			if names := fieldNames(t, err); !names[tc.field] {
				t.Fatalf("expected %s to fail, got %v", tc.field, names)
			}
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	err := ValidateBuy(BuyInput{TouchPercent: 50, WeightGrams: 1})
	if err == nil || err.Error() != "gold_price must be greater than 0" {
		t.Fatalf("unexpected message: %v", err)
	}
}
