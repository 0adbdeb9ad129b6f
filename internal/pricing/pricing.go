package pricing

import (
	"github.com/Simplici0/goldcalc/internal/money"
	"github.com/Simplici0/goldcalc/internal/purity"
)

// TaxRate is the GST applied once to the pre-tax subtotal on both sides.
const TaxRate = 0.03

// MilligramsToGrams converts the auxiliary extra/dirt weights to grams.
const MilligramsToGrams = 0.001

// Side identifies which page a result was computed for.
type Side string

const (
	SideSell Side = "sell"
	SideBuy  Side = "buy"
)

// SellInput holds the inputs of a sale: 24k price per gram, purity grade,
// gross weight, labour per gram and optional extra weight in milligrams.
type SellInput struct {
	GoldPricePerGram      float64
	Purity                string
	WeightGrams           float64
	LabourCostPerGram     float64
	ExtraWeightMilligrams float64
}

// BuyInput holds the inputs of a purchase from a customer. Touch is the
// purity as a percentage and dirt weight is subtracted from the gross weight.
type BuyInput struct {
	GoldPricePerGram     float64
	TouchPercent         float64
	WeightGrams          float64
	DirtWeightMilligrams float64
}

// Breakdown contains the line items that add up to the final price.
type Breakdown struct {
	GoldCost   float64
	LabourCost float64
	TaxAmount  float64
}

// Result groups the pricing output. Amounts are unrounded; use Rounded or
// money.FormatINR at the display boundary.
type Result struct {
	Side              Side
	TotalExcludingTax float64
	TotalIncludingTax float64
	Breakdown         Breakdown
}

// Sell computes the selling price. An unresolvable purity grade prices the
// gold at zero; ValidateSell rejects such inputs before they get here.
func Sell(in SellInput) Result {
	extraWeightGrams := in.ExtraWeightMilligrams * MilligramsToGrams
	totalWeight := in.WeightGrams + extraWeightGrams

	goldCost := in.GoldPricePerGram * purity.Multiplier(in.Purity) * totalWeight
	labourCost := totalWeight * in.LabourCostPerGram
	subtotal := goldCost + labourCost

	tax := subtotal * TaxRate

	return Result{
		Side:              SideSell,
		TotalExcludingTax: subtotal,
		TotalIncludingTax: subtotal + tax,
		Breakdown: Breakdown{
			GoldCost:   goldCost,
			LabourCost: labourCost,
			TaxAmount:  tax,
		},
	}
}

// Buy computes the purchase price. Net weight is not clamped: a dirt weight
// above the gross weight produces a negative cost.
func Buy(in BuyInput) Result {
	dirtWeightGrams := in.DirtWeightMilligrams * MilligramsToGrams
	netWeight := in.WeightGrams - dirtWeightGrams

	touchMultiplier := in.TouchPercent / 100.0
	goldCost := in.GoldPricePerGram * touchMultiplier * netWeight

	tax := goldCost * TaxRate

	return Result{
		Side:              SideBuy,
		TotalExcludingTax: goldCost,
		TotalIncludingTax: goldCost + tax,
		Breakdown: Breakdown{
			GoldCost:  goldCost,
			TaxAmount: tax,
		},
	}
}

// Rounded returns a copy with every amount rounded to two decimals.
func (r Result) Rounded() Result {
	return Result{
		Side:              r.Side,
		TotalExcludingTax: money.Round(r.TotalExcludingTax),
		TotalIncludingTax: money.Round(r.TotalIncludingTax),
		Breakdown: Breakdown{
			GoldCost:   money.Round(r.Breakdown.GoldCost),
			LabourCost: money.Round(r.Breakdown.LabourCost),
			TaxAmount:  money.Round(r.Breakdown.TaxAmount),
		},
	}
}

// Formatted holds display strings for a Result.
type Formatted struct {
	TotalExcludingTax string
	TotalIncludingTax string
	GoldCost          string
	LabourCost        string
	TaxAmount         string
}

// Format renders every amount of r with money.FormatINR.
func (r Result) Format() Formatted {
	return Formatted{
		TotalExcludingTax: money.FormatINR(r.TotalExcludingTax),
		TotalIncludingTax: money.FormatINR(r.TotalIncludingTax),
		GoldCost:          money.FormatINR(r.Breakdown.GoldCost),
		LabourCost:        money.FormatINR(r.Breakdown.LabourCost),
		TaxAmount:         money.FormatINR(r.Breakdown.TaxAmount),
	}
}
