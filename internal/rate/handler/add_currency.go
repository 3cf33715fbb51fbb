package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

type AddCurrencyRequest struct {
	Code string `json:"code" example:"UAH"`
}

type AddCurrencyResponse struct {
	Code string `json:"code" example:"UAH"`
}

// AddCurrency starts tracking a currency and refreshes the rate table.
// @Summary Track a currency
// @Description Adds a currency to the tracked set and synchronously refreshes rates
// @Tags currencies
// @Accept json
// @Produce json
// @Param request body AddCurrencyRequest true "Currency to track"
// @Success 202 {object} AddCurrencyResponse
// @Failure 400 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/v1/currencies [post]
func (h *Handler) AddCurrency(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 256)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req AddCurrencyRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	code, err := h.validator.NormalizeCode(req.Code)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err = h.service.AddCurrency(r.Context(), code); err != nil {
		writeServiceError(w, err, logrus.Fields{"handler": "AddCurrency", "code": code})
		return
	}

	writeJSON(w, http.StatusAccepted, AddCurrencyResponse{Code: code.String()})
}
