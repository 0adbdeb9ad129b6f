package main

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/Simplici0/goldcalc/internal/pricing"
)

// sellForm and buyForm keep the raw field values so a rejected form can be
// shown again exactly as typed.
type sellForm struct {
	GoldPrice   string
	Purity      string
	Weight      string
	LabourCost  string
	ExtraWeight string
}

type buyForm struct {
	GoldPrice  string
	Touch      string
	Weight     string
	DirtWeight string
}

const defaultPurity = "22k"

// numericPattern admits plain digits with an optional decimal point, so
// strconv never sees signs, exponents or hex floats.
var numericPattern = regexp.MustCompile(`^[0-9]+\.?[0-9]*$`)

func parseNumeric(raw string) (float64, bool) {
	if !numericPattern.MatchString(raw) {
		return 0, false
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

type fieldParser struct {
	errs []pricing.FieldError
}

func (p *fieldParser) required(raw, field string) float64 {
	if strings.TrimSpace(raw) == "" {
		p.errs = append(p.errs, pricing.FieldError{Field: field, Message: "is required"})
		return 0
	}
	return p.optional(raw, field)
}

func (p *fieldParser) optional(raw, field string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	value, ok := parseNumeric(raw)
	if !ok {
		p.errs = append(p.errs, pricing.FieldError{Field: field, Message: "must be numeric"})
		return 0
	}
	return value
}

// merge appends the gate's failures to the parse failures, skipping fields
// that already failed to parse.
func (p *fieldParser) merge(gate error) error {
	var verr *pricing.ValidationError
	if errors.As(gate, &verr) {
		seen := make(map[string]bool, len(p.errs))
		for _, f := range p.errs {
			seen[f.Field] = true
		}
		for _, f := range verr.Fields {
			if !seen[f.Field] {
				p.errs = append(p.errs, f)
			}
		}
	} else if gate != nil {
		return gate
	}

	if len(p.errs) == 0 {
		return nil
	}
	return &pricing.ValidationError{Fields: p.errs}
}

func readSellForm(r *http.Request) sellForm {
	return sellForm{
		GoldPrice:   strings.TrimSpace(r.FormValue("gold_price")),
		Purity:      strings.TrimSpace(r.FormValue("purity")),
		Weight:      strings.TrimSpace(r.FormValue("weight")),
		LabourCost:  strings.TrimSpace(r.FormValue("labour_cost")),
		ExtraWeight: strings.TrimSpace(r.FormValue("extra_weight")),
	}
}

func readBuyForm(r *http.Request) buyForm {
	return buyForm{
		GoldPrice:  strings.TrimSpace(r.FormValue("gold_price")),
		Touch:      strings.TrimSpace(r.FormValue("touch")),
		Weight:     strings.TrimSpace(r.FormValue("weight")),
		DirtWeight: strings.TrimSpace(r.FormValue("dirt_weight")),
	}
}

// parseSellForm converts the submitted fields and runs the validity gate.
func parseSellForm(form sellForm) (pricing.SellInput, error) {
	var p fieldParser
	in := pricing.SellInput{
		GoldPricePerGram:      p.required(form.GoldPrice, "gold_price"),
		Purity:                form.Purity,
		WeightGrams:           p.required(form.Weight, "weight"),
		LabourCostPerGram:     p.required(form.LabourCost, "labour_cost"),
		ExtraWeightMilligrams: p.optional(form.ExtraWeight, "extra_weight"),
	}
	return in, p.merge(pricing.ValidateSell(in))
}

// parseBuyForm converts the submitted fields and runs the validity gate.
func parseBuyForm(form buyForm) (pricing.BuyInput, error) {
	var p fieldParser
	in := pricing.BuyInput{
		GoldPricePerGram:     p.required(form.GoldPrice, "gold_price"),
		TouchPercent:         p.required(form.Touch, "touch"),
		WeightGrams:          p.required(form.Weight, "weight"),
		DirtWeightMilligrams: p.optional(form.DirtWeight, "dirt_weight"),
	}
	return in, p.merge(pricing.ValidateBuy(in))
}

func formatAmount(v float64) string {
	if v <= 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatRate pre-fills a non-negative rate; a stored zero is a real value
// and shows as "0".
func formatRate(v float64, stored bool) string {
	if !stored || v < 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
