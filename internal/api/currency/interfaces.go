package currency

import (
	"context"

	"github.com/futig/trip-planner-backend/internal/entity"
)

type CurrencyUsecase interface {
	Convert(ctx context.Context, req *entity.ConvertCurrencyRequest) (*entity.ConvertCurrencyResponse, error)
}
