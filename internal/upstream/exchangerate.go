package upstream

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/starkpulse/gas-backend/internal/utils/config"
	"github.com/starkpulse/gas-backend/internal/utils/logger"
)

type exchangeRateResponse struct {
	Data struct {
		Rates map[string]string `json:"rates"`
	} `json:"data"`
}

const quoteCurrency = "USDT"

// ExchangeRate fetches the quote-currency value of one ETH.
type ExchangeRate struct {
	url    string
	client *http.Client
	logger *logger.Logger
}

func NewExchangeRate(appConfig *config.AppConfig, logger *logger.Logger) *ExchangeRate {
	return &ExchangeRate{
		url:    appConfig.Upstream.ExchangeRateURL,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

const exchangeRateSource = "exchange-rate"

func (c *ExchangeRate) FetchRate(ctx context.Context) (float64, error) {
	var response exchangeRateResponse
	if err := fetchJSON(ctx, c.client, c.url, exchangeRateSource, &response); err != nil {
		return 0, err
	}

	raw, ok := response.Data.Rates[quoteCurrency]
	if !ok {
		return 0, newError(KindUnavailable, exchangeRateSource,
			errors.Errorf("%s rate missing from response", quoteCurrency))
	}

	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, newError(KindParse, exchangeRateSource,
			errors.Wrapf(err, "failed to parse rate %q", raw))
	}

	return rate, nil
}
