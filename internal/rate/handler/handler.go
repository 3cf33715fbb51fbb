package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"fxcross/internal/domain"
	"fxcross/internal/rate"

	"github.com/sirupsen/logrus"
)

type Validator interface {
	NormalizeCode(raw string) (domain.CurrencyCode, error)
}

type Service interface {
	AddCurrency(ctx context.Context, code domain.CurrencyCode) error
	ListCurrencies(ctx context.Context) ([]domain.CurrencyCode, error)
	GetRates(ctx context.Context, base domain.CurrencyCode) ([]domain.RateObservation, error)
}

type Handler struct {
	validator Validator
	service   Service
}

func NewRateHandler(validator Validator, service Service) *Handler {
	return &Handler{validator: validator, service: service}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{Error: errorMsg})
}

// writeServiceError maps domain failures to status codes; anything unknown is logged and hidden behind a 500.
func writeServiceError(w http.ResponseWriter, err error, fields logrus.Fields) {
	switch {
	case errors.Is(err, rate.ErrCodeRequired), errors.Is(err, rate.ErrCodeMalformed):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUntrackedCurrency):
		writeError(w, http.StatusBadRequest, "currency is not tracked")
	case errors.Is(err, domain.ErrRatesNotFound):
		writeError(w, http.StatusNotFound, "rates not found")
	case errors.Is(err, domain.ErrEmptyCache):
		logrus.WithError(err).WithFields(fields).Warn("rates are not available yet")
		writeError(w, http.StatusServiceUnavailable, "rates are not available yet, try again later")
	case errors.Is(err, domain.ErrProvider):
		logrus.WithError(err).WithFields(fields).Warn("rate provider failed")
		writeError(w, http.StatusBadGateway, "rate provider is unavailable")
	default:
		msg := "ups, something went wrong this time"
		logrus.WithError(err).WithFields(fields).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
	}
}
