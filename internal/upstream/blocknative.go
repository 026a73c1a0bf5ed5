package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/starkpulse/gas-backend/internal/utils/config"
	"github.com/starkpulse/gas-backend/internal/utils/logger"
)

const (
	confidenceFastest  = 99
	confidenceFast     = 90
	confidenceStandard = 80
	confidenceSlow     = 60
)

// TierFeeCaps is the EIP-1559 fee pair reported alongside each tier price.
type TierFeeCaps struct {
	MaxPriorityFeePerGas float64 `json:"maxPriorityFeePerGas"`
	MaxFeePerGas         float64 `json:"maxFeePerGas"`
}

// BlockPricesPayload is the parsed primary-oracle signal: the three tier
// prices in gwei plus the fee caps for the same tiers.
type BlockPricesPayload struct {
	Fast     float64
	Standard float64
	Slow     float64

	FeeCaps [3]TierFeeCaps
}

type blocknativeResponse struct {
	BlockPrices []struct {
		EstimatedPrices []struct {
			Confidence           int     `json:"confidence"`
			Price                float64 `json:"price"`
			MaxPriorityFeePerGas float64 `json:"maxPriorityFeePerGas"`
			MaxFeePerGas         float64 `json:"maxFeePerGas"`
		} `json:"estimatedPrices"`
	} `json:"blockPrices"`
}

type Blocknative struct {
	url    string
	client *http.Client
	logger *logger.Logger
}

func NewBlocknative(appConfig *config.AppConfig, logger *logger.Logger) *Blocknative {
	return &Blocknative{
		url:    appConfig.Upstream.BlocknativeURL,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

const blocknativeSource = "blocknative"

func (c *Blocknative) FetchBlockPrices(ctx context.Context) (BlockPricesPayload, error) {
	var response blocknativeResponse
	if err := fetchJSON(ctx, c.client, c.url, blocknativeSource, &response); err != nil {
		return BlockPricesPayload{}, err
	}

	if len(response.BlockPrices) == 0 || len(response.BlockPrices[0].EstimatedPrices) == 0 {
		return BlockPricesPayload{}, newError(KindUnavailable, blocknativeSource,
			errors.New("no estimated prices in response"))
	}

	estimates := map[int]struct {
		price float64
		caps  TierFeeCaps
	}{}
	for _, estimate := range response.BlockPrices[0].EstimatedPrices {
		estimates[estimate.Confidence] = struct {
			price float64
			caps  TierFeeCaps
		}{
			price: estimate.Price,
			caps: TierFeeCaps{
				MaxPriorityFeePerGas: estimate.MaxPriorityFeePerGas,
				MaxFeePerGas:         estimate.MaxFeePerGas,
			},
		}
	}

	payload := BlockPricesPayload{}
	for i, confidence := range []int{confidenceFast, confidenceStandard, confidenceSlow} {
		estimate, ok := estimates[confidence]
		if !ok {
			return BlockPricesPayload{}, newError(KindParse, blocknativeSource,
				fmt.Errorf("confidence tier %d missing from estimated prices", confidence))
		}
		switch confidence {
		case confidenceFast:
			payload.Fast = estimate.price
		case confidenceStandard:
			payload.Standard = estimate.price
		case confidenceSlow:
			payload.Slow = estimate.price
		}
		payload.FeeCaps[i] = estimate.caps
	}

	return payload, nil
}

func fetchJSON(ctx context.Context, client *http.Client, url, source string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return newError(KindTransport, source, errors.Wrap(err, "failed to create request"))
	}

	resp, err := client.Do(req)
	if err != nil {
		return newError(KindTransport, source, errors.Wrap(err, "request failed"))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return newError(KindTransport, source, fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return newError(KindParse, source, errors.Wrap(err, "failed to decode response"))
	}
	return nil
}
