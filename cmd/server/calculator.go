package main

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/Simplici0/goldcalc/internal/estimate"
	"github.com/Simplici0/goldcalc/internal/metrics"
	"github.com/Simplici0/goldcalc/internal/pricing"
	"github.com/Simplici0/goldcalc/internal/purity"
	"github.com/Simplici0/goldcalc/internal/rates"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type sellViewData struct {
	baseViewData
	Form       sellForm
	Grades     []string
	TaxPercent string
	Result     *pricing.Formatted
}

type buyViewData struct {
	baseViewData
	Form       buyForm
	TaxPercent string
	Result     *pricing.Formatted
}

// referenceRates returns the stored reference rates and whether a row was
// read. Without one the forms simply start empty.
func (s *server) referenceRates(r *http.Request) (rates.Reference, bool) {
	ref, err := s.rates.Get(r.Context())
	if err != nil {
		if !errors.Is(err, rates.ErrNotFound) {
			s.log.Warn("load reference rates", "err", err)
		}
		return rates.Reference{}, false
	}
	return ref, true
}

func (s *server) handleSellForm(w http.ResponseWriter, r *http.Request) {
	ref, stored := s.referenceRates(r)
	s.renderTemplate(w, "sell.html", sellViewData{
		Form: sellForm{
			GoldPrice:  formatAmount(ref.GoldPricePerGram),
			Purity:     defaultPurity,
			LabourCost: formatRate(ref.LabourCostPerGram, stored),
		},
		Grades:     purity.Grades(),
		TaxPercent: taxPercent(),
	})
}

func (s *server) handleSellSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := readSellForm(r)
	view := sellViewData{Form: form, Grades: purity.Grades(), TaxPercent: taxPercent()}

	in, err := parseSellForm(form)
	if err != nil {
		metrics.CalculationsTotal.WithLabelValues(string(pricing.SideSell), metrics.OutcomeInvalid).Inc()
		view.ErrorMessage = err.Error()
		s.renderTemplateStatus(w, http.StatusBadRequest, "sell.html", view)
		return
	}

	result := pricing.Sell(in)
	metrics.CalculationsTotal.WithLabelValues(string(pricing.SideSell), metrics.OutcomeOK).Inc()
	s.log.Debug("sell price calculated", "purity", in.Purity, "weight_g", in.WeightGrams, "total", result.TotalIncludingTax)

	formatted := result.Format()
	view.Result = &formatted
	s.renderTemplate(w, "sell.html", view)
}

func (s *server) handleBuyForm(w http.ResponseWriter, r *http.Request) {
	ref, _ := s.referenceRates(r)
	s.renderTemplate(w, "buy.html", buyViewData{
		Form:       buyForm{GoldPrice: formatAmount(ref.GoldPricePerGram)},
		TaxPercent: taxPercent(),
	})
}

func (s *server) handleBuySubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := readBuyForm(r)
	view := buyViewData{Form: form, TaxPercent: taxPercent()}

	in, err := parseBuyForm(form)
	if err != nil {
		metrics.CalculationsTotal.WithLabelValues(string(pricing.SideBuy), metrics.OutcomeInvalid).Inc()
		view.ErrorMessage = err.Error()
		s.renderTemplateStatus(w, http.StatusBadRequest, "buy.html", view)
		return
	}

	result := pricing.Buy(in)
	metrics.CalculationsTotal.WithLabelValues(string(pricing.SideBuy), metrics.OutcomeOK).Inc()
	s.log.Debug("buy price calculated", "touch", in.TouchPercent, "weight_g", in.WeightGrams, "total", result.TotalIncludingTax)

	formatted := result.Format()
	view.Result = &formatted
	s.renderTemplate(w, "buy.html", view)
}

func (s *server) handleSellEstimate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	in, err := parseSellForm(readSellForm(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.writeEstimate(w, pricing.SideSell, estimate.ForSell(in, pricing.Sell(in)))
}

func (s *server) handleBuyEstimate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	in, err := parseBuyForm(readBuyForm(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.writeEstimate(w, pricing.SideBuy, estimate.ForBuy(in, pricing.Buy(in)))
}

func (s *server) writeEstimate(w http.ResponseWriter, side pricing.Side, est estimate.Estimate) {
	var buf bytes.Buffer
	if err := est.WriteXLSX(&buf); err != nil {
		s.log.Error("write estimate", "side", side, "err", err)
		http.Error(w, "failed to build estimate", http.StatusInternalServerError)
		return
	}

	metrics.EstimateExportsTotal.WithLabelValues(string(side)).Inc()
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+string(side)+`-estimate.xlsx"`)
	_, _ = buf.WriteTo(w)
}
