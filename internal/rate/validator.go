package rate

import (
	"errors"
	"strings"

	"fxcross/internal/domain"
)

var (
	ErrCodeRequired  = errors.New("currency code is required")
	ErrCodeMalformed = errors.New("currency code must consist of 3 latin letters")
)

const codeLength = 3

type CodeValidator struct{}

// NormalizeCode trims and upper-cases raw, then checks the ISO 4217 shape.
func (v *CodeValidator) NormalizeCode(raw string) (domain.CurrencyCode, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return "", ErrCodeRequired
	}
	if len(code) != codeLength {
		return "", ErrCodeMalformed
	}
	for _, ch := range code {
		if ch < 'A' || ch > 'Z' {
			return "", ErrCodeMalformed
		}
	}
	return domain.CurrencyCode(code), nil
}

func NewValidator() *CodeValidator {
	return &CodeValidator{}
}
