package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Simplici0/goldcalc/internal/metrics"
	"github.com/Simplici0/goldcalc/internal/pricing"
	"github.com/Simplici0/goldcalc/internal/purity"
)

const maxAPIBodyBytes = 1 << 16

type sellRequest struct {
	GoldPricePerGram      *float64 `json:"gold_price_per_gram"`
	Purity                string   `json:"purity"`
	WeightGrams           *float64 `json:"weight_grams"`
	LabourCostPerGram     *float64 `json:"labour_cost_per_gram"`
	ExtraWeightMilligrams float64  `json:"extra_weight_milligrams"`
}

type buyRequest struct {
	GoldPricePerGram     *float64 `json:"gold_price_per_gram"`
	TouchPercent         *float64 `json:"touch_percent"`
	WeightGrams          *float64 `json:"weight_grams"`
	DirtWeightMilligrams float64  `json:"dirt_weight_milligrams"`
}

type breakdownResponse struct {
	GoldCost   float64  `json:"gold_cost"`
	LabourCost *float64 `json:"labour_cost,omitempty"`
	TaxAmount  float64  `json:"tax_amount"`
}

type formattedResponse struct {
	TotalExcludingTax string `json:"total_excluding_tax"`
	TotalIncludingTax string `json:"total_including_tax"`
	GoldCost          string `json:"gold_cost"`
	LabourCost        string `json:"labour_cost,omitempty"`
	TaxAmount         string `json:"tax_amount"`
}

type priceResponse struct {
	Side              pricing.Side      `json:"side"`
	TaxRate           float64           `json:"tax_rate"`
	TotalExcludingTax float64           `json:"total_excluding_tax"`
	TotalIncludingTax float64           `json:"total_including_tax"`
	Breakdown         breakdownResponse `json:"breakdown"`
	Formatted         formattedResponse `json:"formatted"`
}

type fieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error  string               `json:"error"`
	Fields []fieldErrorResponse `json:"fields,omitempty"`
}

func newPriceResponse(result pricing.Result) priceResponse {
	rounded := result.Rounded()
	f := result.Format()

	resp := priceResponse{
		Side:              result.Side,
		TaxRate:           pricing.TaxRate,
		TotalExcludingTax: rounded.TotalExcludingTax,
		TotalIncludingTax: rounded.TotalIncludingTax,
		Breakdown: breakdownResponse{
			GoldCost:  rounded.Breakdown.GoldCost,
			TaxAmount: rounded.Breakdown.TaxAmount,
		},
		Formatted: formattedResponse{
			TotalExcludingTax: f.TotalExcludingTax,
			TotalIncludingTax: f.TotalIncludingTax,
			GoldCost:          f.GoldCost,
			TaxAmount:         f.TaxAmount,
		},
	}
	if result.Side == pricing.SideSell {
		labour := rounded.Breakdown.LabourCost
		resp.Breakdown.LabourCost = &labour
		resp.Formatted.LabourCost = f.LabourCost
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeValidationError(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: "invalid input"}
	var verr *pricing.ValidationError
	if errors.As(err, &verr) {
		for _, f := range verr.Fields {
			resp.Fields = append(resp.Fields, fieldErrorResponse{Field: f.Field, Message: f.Message})
		}
	} else {
		resp.Error = err.Error()
	}
	writeJSON(w, http.StatusBadRequest, resp)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAPIBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func (req sellRequest) input() (pricing.SellInput, error) {
	var p fieldParser
	need := func(v *float64, field string) float64 {
		if v == nil {
			p.errs = append(p.errs, pricing.FieldError{Field: field, Message: "is required"})
			return 0
		}
		return *v
	}

	in := pricing.SellInput{
		GoldPricePerGram:      need(req.GoldPricePerGram, "gold_price"),
		Purity:                req.Purity,
		WeightGrams:           need(req.WeightGrams, "weight"),
		LabourCostPerGram:     need(req.LabourCostPerGram, "labour_cost"),
		ExtraWeightMilligrams: req.ExtraWeightMilligrams,
	}
	return in, p.merge(pricing.ValidateSell(in))
}

func (req buyRequest) input() (pricing.BuyInput, error) {
	var p fieldParser
	need := func(v *float64, field string) float64 {
		if v == nil {
			p.errs = append(p.errs, pricing.FieldError{Field: field, Message: "is required"})
			return 0
		}
		return *v
	}

	in := pricing.BuyInput{
		GoldPricePerGram:     need(req.GoldPricePerGram, "gold_price"),
		TouchPercent:         need(req.TouchPercent, "touch"),
		WeightGrams:          need(req.WeightGrams, "weight"),
		DirtWeightMilligrams: req.DirtWeightMilligrams,
	}
	return in, p.merge(pricing.ValidateBuy(in))
}

func (s *server) handleAPIGrades(w http.ResponseWriter, _ *http.Request) {
	type grade struct {
		Label      string  `json:"label"`
		Multiplier float64 `json:"multiplier"`
	}

	labels := purity.Grades()
	grades := make([]grade, 0, len(labels))
	for _, label := range labels {
		grades = append(grades, grade{Label: label, Multiplier: purity.Multiplier(label)})
	}
	writeJSON(w, http.StatusOK, map[string]any{"grades": grades})
}

func (s *server) handleAPISell(w http.ResponseWriter, r *http.Request) {
	var req sellRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	in, err := req.input()
	if err != nil {
		metrics.CalculationsTotal.WithLabelValues(string(pricing.SideSell), metrics.OutcomeInvalid).Inc()
		writeValidationError(w, err)
		return
	}

	metrics.CalculationsTotal.WithLabelValues(string(pricing.SideSell), metrics.OutcomeOK).Inc()
	writeJSON(w, http.StatusOK, newPriceResponse(pricing.Sell(in)))
}

func (s *server) handleAPIBuy(w http.ResponseWriter, r *http.Request) {
	var req buyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	in, err := req.input()
	if err != nil {
		metrics.CalculationsTotal.WithLabelValues(string(pricing.SideBuy), metrics.OutcomeInvalid).Inc()
		writeValidationError(w, err)
		return
	}

	metrics.CalculationsTotal.WithLabelValues(string(pricing.SideBuy), metrics.OutcomeOK).Inc()
	writeJSON(w, http.StatusOK, newPriceResponse(pricing.Buy(in)))
}
