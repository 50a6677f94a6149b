package currency

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/avast/retry-go/v4"
	"github.com/futig/trip-planner-backend/internal/config"
	"github.com/futig/trip-planner-backend/internal/entity"
	"github.com/futig/trip-planner-backend/internal/integration/common"
	pkghttp "github.com/futig/trip-planner-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type ratesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// Connector fetches exchange rates from the external rates API.
type Connector struct {
	config    config.CurrencyConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(cfg config.CurrencyConfig, logger *zap.Logger) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// GetRates returns the exchange rate table for the base currency.
func (c *Connector) GetRates(ctx context.Context, base string) (map[string]float64, error) {
	ctxzap.Debug(ctx, "fetching exchange rates", zap.String("base", base))

	var resp ratesResponse
	opts := append(c.config.Retry.ToRetryOptions(),
		retry.Context(ctx),
		retry.RetryIf(func(err error) bool {
			var httpErr *pkghttp.HTTPError
			if errors.As(err, &httpErr) {
				return httpErr.StatusCode == http.StatusTooManyRequests || httpErr.StatusCode >= 500
			}
			var netErr *pkghttp.NetworkError
			return errors.As(err, &netErr) && ctx.Err() == nil
		}),
	)

	err := retry.Do(func() error {
		resp = ratesResponse{}
		return c.connector.DoRequest(ctx, http.MethodGet, c.config.RatesEndpoint+base, nil, &resp)
	}, opts...)
	if err != nil {
		var httpErr *pkghttp.HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", entity.ErrUnknownCurrency, base)
		}
		return nil, fmt.Errorf("%w: %v", entity.ErrRatesUnavailable, err)
	}

	if len(resp.Rates) == 0 {
		return nil, fmt.Errorf("%w: empty rate table for %s", entity.ErrRatesUnavailable, base)
	}

	ctxzap.Debug(ctx, "exchange rates fetched", zap.Int("count", len(resp.Rates)))
	return resp.Rates, nil
}
