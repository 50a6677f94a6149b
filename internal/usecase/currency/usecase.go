package currency

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/futig/trip-planner-backend/internal/entity"
	"github.com/futig/trip-planner-backend/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type RatesProvider interface {
	GetRates(ctx context.Context, base string) (map[string]float64, error)
}

// CurrencyUsecase implements currency conversion business logic
type CurrencyUsecase struct {
	rates     RatesProvider
	validator *validator.Validator
	logger    *zap.Logger
}

// NewUsecase creates a new currency conversion use case
func NewUsecase(rates RatesProvider, validator *validator.Validator, logger *zap.Logger) *CurrencyUsecase {
	return &CurrencyUsecase{
		rates:     rates,
		validator: validator,
		logger:    logger,
	}
}

// Convert converts an amount between two currencies using the latest
// rate table for the source currency.
func (uc *CurrencyUsecase) Convert(ctx context.Context, req *entity.ConvertCurrencyRequest) (*entity.ConvertCurrencyResponse, error) {
	if err := uc.validator.ValidateConvertCurrency(req); err != nil {
		return nil, err
	}

	from := strings.ToUpper(strings.TrimSpace(req.FromCurrency))
	to := strings.ToUpper(strings.TrimSpace(req.ToCurrency))

	rates, err := uc.rates.GetRates(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("get rates for %s: %w", from, err)
	}

	rate, ok := rates[to]
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrUnknownCurrency, to)
	}

	converted := math.Round(req.Amount*rate*100) / 100

	ctxzap.Info(ctx, "currency converted",
		zap.String("from", from),
		zap.String("to", to),
		zap.Float64("rate", rate),
	)

	return &entity.ConvertCurrencyResponse{
		Amount:          req.Amount,
		FromCurrency:    from,
		ToCurrency:      to,
		ConvertedAmount: converted,
		Rate:            rate,
	}, nil
}
