package validator

import (
	"fmt"
	"strings"

	"github.com/futig/trip-planner-backend/internal/entity"
)

// Validator validates incoming API requests
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidatePlanTrip checks the required trip request fields.
func (v *Validator) ValidatePlanTrip(req *entity.TripRequest) error {
	if strings.TrimSpace(req.Destination) == "" {
		return fmt.Errorf("%w: destination", entity.ErrMissingField)
	}
	if strings.TrimSpace(req.Dates) == "" {
		return fmt.Errorf("%w: dates", entity.ErrMissingField)
	}
	return nil
}

// ValidateConvertCurrency checks amount and currency codes.
func (v *Validator) ValidateConvertCurrency(req *entity.ConvertCurrencyRequest) error {
	if req.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive, got %f", entity.ErrInvalidParameter, req.Amount)
	}
	if err := validateCurrencyCode(req.FromCurrency); err != nil {
		return fmt.Errorf("from_currency: %w", err)
	}
	if err := validateCurrencyCode(req.ToCurrency); err != nil {
		return fmt.Errorf("to_currency: %w", err)
	}
	return nil
}

func validateCurrencyCode(code string) error {
	if code == "" {
		return fmt.Errorf("%w: currency code", entity.ErrMissingField)
	}
	if len(code) != 3 {
		return fmt.Errorf("%w: currency code must be 3 letters, got %q", entity.ErrInvalidFormat, code)
	}
	for _, r := range code {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return fmt.Errorf("%w: currency code must be alphabetic, got %q", entity.ErrInvalidFormat, code)
		}
	}
	return nil
}
