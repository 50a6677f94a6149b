package validator

import (
	"testing"

	"github.com/futig/trip-planner-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePlanTrip(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		req     entity.TripRequest
		wantErr error
	}{
		{
			name: "valid request",
			req:  entity.TripRequest{Destination: "Tokyo, Japan", Dates: "Oct 10-15, 2025"},
		},
		{
			name: "valid request with preferences",
			req:  entity.TripRequest{Destination: "Paris, France", Dates: "May 1-5", Preferences: "museums"},
		},
		{
			name:    "missing destination",
			req:     entity.TripRequest{Dates: "Oct 10-15, 2025"},
			wantErr: entity.ErrMissingField,
		},
		{
			name:    "whitespace destination",
			req:     entity.TripRequest{Destination: "   ", Dates: "Oct 10-15, 2025"},
			wantErr: entity.ErrMissingField,
		},
		{
			name:    "missing dates",
			req:     entity.TripRequest{Destination: "Tokyo, Japan"},
			wantErr: entity.ErrMissingField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidatePlanTrip(&tt.req)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateConvertCurrency(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		req     entity.ConvertCurrencyRequest
		wantErr error
	}{
		{
			name: "valid request",
			req:  entity.ConvertCurrencyRequest{Amount: 100, FromCurrency: "USD", ToCurrency: "EUR"},
		},
		{
			name: "lowercase codes accepted",
			req:  entity.ConvertCurrencyRequest{Amount: 1, FromCurrency: "usd", ToCurrency: "jpy"},
		},
		{
			name:    "zero amount",
			req:     entity.ConvertCurrencyRequest{Amount: 0, FromCurrency: "USD", ToCurrency: "EUR"},
			wantErr: entity.ErrInvalidParameter,
		},
		{
			name:    "negative amount",
			req:     entity.ConvertCurrencyRequest{Amount: -5, FromCurrency: "USD", ToCurrency: "EUR"},
			wantErr: entity.ErrInvalidParameter,
		},
		{
			name:    "missing currency",
			req:     entity.ConvertCurrencyRequest{Amount: 10, FromCurrency: "", ToCurrency: "EUR"},
			wantErr: entity.ErrMissingField,
		},
		{
			name:    "code too long",
			req:     entity.ConvertCurrencyRequest{Amount: 10, FromCurrency: "USDT", ToCurrency: "EUR"},
			wantErr: entity.ErrInvalidFormat,
		},
		{
			name:    "non alphabetic code",
			req:     entity.ConvertCurrencyRequest{Amount: 10, FromCurrency: "US1", ToCurrency: "EUR"},
			wantErr: entity.ErrInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateConvertCurrency(&tt.req)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
