package domain

import "errors"

var (
	ErrProvider          = errors.New("rate provider request failed")
	ErrUntrackedCurrency = errors.New("currency is not tracked")
	ErrEmptyCache        = errors.New("rates are not available yet")
	ErrRatesNotFound     = errors.New("rates not found")
)
