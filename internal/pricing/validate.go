package pricing

import (
	"math"
	"strings"

	"github.com/Simplici0/goldcalc/internal/purity"
)

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every field that blocks a calculation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidateSell checks that a sale can be priced: gold price and weight above
// zero, a resolvable purity grade, and non-negative labour and extra weight.
func ValidateSell(in SellInput) error {
	verr := &ValidationError{}

	if !finite(in.GoldPricePerGram) || in.GoldPricePerGram <= 0 {
		verr.add("gold_price", "must be greater than 0")
	}
	if strings.TrimSpace(in.Purity) == "" {
		verr.add("purity", "is required")
	} else if _, err := purity.Resolve(in.Purity); err != nil {
		verr.add("purity", "must be a known grade or a karat number")
	}
	if !finite(in.WeightGrams) || in.WeightGrams <= 0 {
		verr.add("weight", "must be greater than 0")
	}
	if !finite(in.LabourCostPerGram) || in.LabourCostPerGram < 0 {
		verr.add("labour_cost", "must be greater than or equal to 0")
	}
	if !finite(in.ExtraWeightMilligrams) || in.ExtraWeightMilligrams < 0 {
		verr.add("extra_weight", "must be greater than or equal to 0")
	}

	return verr.orNil()
}

// ValidateBuy checks that a purchase can be priced. Dirt weight may not exceed
// the gross weight.
func ValidateBuy(in BuyInput) error {
	verr := &ValidationError{}

	if !finite(in.GoldPricePerGram) || in.GoldPricePerGram <= 0 {
		verr.add("gold_price", "must be greater than 0")
	}
	if !finite(in.TouchPercent) || in.TouchPercent < 0 || in.TouchPercent > 100 {
		verr.add("touch", "must be between 0 and 100")
	}
	if !finite(in.WeightGrams) || in.WeightGrams <= 0 {
		verr.add("weight", "must be greater than 0")
	}
	if !finite(in.DirtWeightMilligrams) || in.DirtWeightMilligrams < 0 {
		verr.add("dirt_weight", "must be greater than or equal to 0")
	} else if in.DirtWeightMilligrams*MilligramsToGrams > in.WeightGrams {
		verr.add("dirt_weight", "must not exceed the gross weight")
	}

	return verr.orNil()
}

// Valid reports whether the sale form may be submitted.
func (in SellInput) Valid() bool { return ValidateSell(in) == nil }

// Valid reports whether the purchase form may be submitted.
func (in BuyInput) Valid() bool { return ValidateBuy(in) == nil }
