package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Simplici0/goldcalc/internal/rates"
)

type ratesViewData struct {
	baseViewData
	GoldPrice        string
	LabourCost       string
	GoldPricePerGram float64
	UpdatedAt        time.Time
}

func (s *server) handleAdminRatesForm(w http.ResponseWriter, r *http.Request) {
	ref, err := s.rates.Get(r.Context())
	if err != nil && !errors.Is(err, rates.ErrNotFound) {
		s.log.Error("load reference rates", "err", err)
		http.Error(w, "failed to load reference rates", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "admin_rates.html", ratesViewData{
		GoldPrice:        formatAmount(ref.GoldPricePerGram),
		LabourCost:       formatRate(ref.LabourCostPerGram, err == nil),
		GoldPricePerGram: ref.GoldPricePerGram,
		UpdatedAt:        ref.UpdatedAt,
	})
}

func (s *server) handleAdminRatesSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	view := ratesViewData{
		GoldPrice:  strings.TrimSpace(r.FormValue("gold_price")),
		LabourCost: strings.TrimSpace(r.FormValue("labour_cost")),
	}

	goldPrice, labourCost, err := parseRatesForm(view.GoldPrice, view.LabourCost)
	if err != nil {
		view.ErrorMessage = err.Error()
		s.renderTemplateStatus(w, http.StatusBadRequest, "admin_rates.html", view)
		return
	}

	if err := s.rates.Update(r.Context(), goldPrice, labourCost); err != nil {
		s.log.Error("save reference rates", "err", err)
		http.Error(w, "failed to save reference rates", http.StatusInternalServerError)
		return
	}
	s.log.Info("reference rates updated", "gold_price_per_gram", goldPrice, "labour_cost_per_gram", labourCost)

	view.SuccessMessage = "Reference rates saved."
	view.GoldPricePerGram = goldPrice
	view.UpdatedAt = time.Now()
	s.renderTemplate(w, "admin_rates.html", view)
}

func parseRatesForm(goldRaw, labourRaw string) (float64, float64, error) {
	goldPrice, err := parsePositiveFloat(goldRaw, "gold_price")
	if err != nil {
		return 0, 0, err
	}
	labourCost, err := parseNonNegativeFloat(labourRaw, "labour_cost")
	if err != nil {
		return 0, 0, err
	}
	return goldPrice, labourCost, nil
}

func parseNonNegativeFloat(raw, field string) (float64, error) {
	value, ok := parseNumeric(raw)
	if !ok {
		return 0, fmt.Errorf("%s must be numeric", field)
	}
	if value < 0 {
		return 0, fmt.Errorf("%s must be greater than or equal to 0", field)
	}
	return value, nil
}

func parsePositiveFloat(raw, field string) (float64, error) {
	value, ok := parseNumeric(raw)
	if !ok {
		return 0, fmt.Errorf("%s must be numeric", field)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", field)
	}
	return value, nil
}
