package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

type ListCurrenciesResponse struct {
	Codes []string `json:"codes"`
}

// ListCurrencies returns the tracked currency codes in ascending order.
// @Summary List tracked currencies
// @Tags currencies
// @Produce json
// @Success 200 {object} ListCurrenciesResponse
// @Failure 500 {object} errorResponse
// @Router /api/v1/currencies [get]
func (h *Handler) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	codes, err := h.service.ListCurrencies(r.Context())
	if err != nil {
		writeServiceError(w, err, logrus.Fields{"handler": "ListCurrencies"})
		return
	}

	res := ListCurrenciesResponse{Codes: make([]string, 0, len(codes))}
	for _, code := range codes {
		res.Codes = append(res.Codes, code.String())
	}
	writeJSON(w, http.StatusOK, res)
}
