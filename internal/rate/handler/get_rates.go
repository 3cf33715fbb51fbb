package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type RateView struct {
	Rate         string    `json:"rate" example:"0.9523809523809524"`
	Triangulated bool      `json:"triangulated"`
	ObservedAt   time.Time `json:"observed_at"`
}

type GetRatesResponse struct {
	Base  string              `json:"base" example:"USD"`
	Rates map[string]RateView `json:"rates"`
}

// GetRates returns the latest rates of a tracked base against every other tracked currency.
// @Summary Rates for a base currency
// @Tags rates
// @Produce json
// @Param code path string true "Base currency code"
// @Success 200 {object} GetRatesResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 503 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/v1/currencies/{code}/rates [get]
func (h *Handler) GetRates(w http.ResponseWriter, r *http.Request) {
	base, err := h.validator.NormalizeCode(chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	observations, err := h.service.GetRates(r.Context(), base)
	if err != nil {
		writeServiceError(w, err, logrus.Fields{"handler": "GetRates", "base": base})
		return
	}

	res := GetRatesResponse{
		Base:  base.String(),
		Rates: make(map[string]RateView, len(observations)),
	}
	for _, o := range observations {
		res.Rates[o.CounterCurrency.String()] = RateView{
			Rate:         o.Rate.String(),
			Triangulated: o.Triangulated,
			ObservedAt:   o.ObservedAt,
		}
	}
	writeJSON(w, http.StatusOK, res)
}
