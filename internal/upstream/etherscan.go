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

// GasOraclePayload is the secondary oracle's three-tier series, fast first,
// truncated to integer gwei.
type GasOraclePayload struct {
	Fast     int
	Standard int
	Slow     int
}

type etherscanResponse struct {
	Result struct {
		SafeGasPrice    string `json:"SafeGasPrice"`
		ProposeGasPrice string `json:"ProposeGasPrice"`
		FastGasPrice    string `json:"FastGasPrice"`
	} `json:"result"`
}

type Etherscan struct {
	url    string
	client *http.Client
	logger *logger.Logger
}

func NewEtherscan(appConfig *config.AppConfig, logger *logger.Logger) *Etherscan {
	return &Etherscan{
		url:    appConfig.Upstream.EtherscanURL,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

const etherscanSource = "etherscan"

func (c *Etherscan) FetchGasOracle(ctx context.Context) (GasOraclePayload, error) {
	var response etherscanResponse
	if err := fetchJSON(ctx, c.client, c.url, etherscanSource, &response); err != nil {
		return GasOraclePayload{}, err
	}

	if response.Result.FastGasPrice == "" {
		return GasOraclePayload{}, newError(KindUnavailable, etherscanSource,
			errors.New("gas oracle result is empty"))
	}

	payload := GasOraclePayload{}
	for _, field := range []struct {
		name string
		raw  string
		dst  *int
	}{
		{"FastGasPrice", response.Result.FastGasPrice, &payload.Fast},
		{"ProposeGasPrice", response.Result.ProposeGasPrice, &payload.Standard},
		{"SafeGasPrice", response.Result.SafeGasPrice, &payload.Slow},
	} {
		// tiers occasionally arrive as fractional gwei ("30.5"); truncate
		value, err := strconv.ParseFloat(field.raw, 64)
		if err != nil {
			return GasOraclePayload{}, newError(KindParse, etherscanSource,
				errors.Wrapf(err, "failed to parse %s %q", field.name, field.raw))
		}
		*field.dst = int(value)
	}

	return payload, nil
}
