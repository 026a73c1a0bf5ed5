package refresher

import (
	"context"
	"sync"
	"time"

	"github.com/starkpulse/gas-backend/internal/consts"
	"github.com/starkpulse/gas-backend/internal/deriver"
	"github.com/starkpulse/gas-backend/internal/fetcher"
	"github.com/starkpulse/gas-backend/internal/model"
	"github.com/starkpulse/gas-backend/internal/pricecache"
	"github.com/starkpulse/gas-backend/internal/upstream"
	"github.com/starkpulse/gas-backend/internal/utils/logger"
)

// Sources are the four upstream calls a Refresher fans out to. Each gets its
// own memoized wrapper, so a cron tick and a manual refresh landing together
// still share one round trip per source.
type Sources struct {
	BlockPrices   fetcher.FetchFunc[upstream.BlockPricesPayload]
	GasOracle     fetcher.FetchFunc[upstream.GasOraclePayload]
	ExchangeRate  fetcher.FetchFunc[float64]
	NetworkStatus fetcher.FetchFunc[string]
}

type Refresher struct {
	cache  *pricecache.PriceCache
	logger *logger.Logger

	blockPrices   *fetcher.Memoized[upstream.BlockPricesPayload]
	gasOracle     *fetcher.Memoized[upstream.GasOraclePayload]
	exchangeRate  *fetcher.Memoized[float64]
	networkStatus *fetcher.Memoized[string]
}

func New(cache *pricecache.PriceCache, logger *logger.Logger, sources Sources) IRefresher {
	return NewWithWindows(cache, logger, sources, consts.DebounceWindow, consts.MemoWindow)
}

func NewWithWindows(cache *pricecache.PriceCache, logger *logger.Logger, sources Sources, debounce, memoTTL time.Duration) IRefresher {
	return &Refresher{
		cache:         cache,
		logger:        logger,
		blockPrices:   fetcher.New(sources.BlockPrices, debounce, memoTTL),
		gasOracle:     fetcher.New(sources.GasOracle, debounce, memoTTL),
		exchangeRate:  fetcher.New(sources.ExchangeRate, debounce, memoTTL),
		networkStatus: fetcher.New(sources.NetworkStatus, debounce, memoTTL),
	}
}

// RefreshAll runs one refresh cycle: the primary-oracle pipeline (exchange
// rate + block prices + derivation), the secondary oracle and the network
// status scrape all proceed concurrently, and a failure in any one branch
// never aborts the others. The join at the end is for logging only;
// correctness comes from the cache's write atomicity.
func (r *Refresher) RefreshAll() {
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		r.refreshPrimary(ctx)
	}()
	go func() {
		defer wg.Done()
		r.refreshSecondary(ctx)
	}()
	go func() {
		defer wg.Done()
		r.refreshNetworkStatus(ctx)
	}()
	wg.Wait()

	r.logger.Debug("[RefreshAll] refresh cycle complete")
}

// refreshPrimary resolves the exchange rate and the primary-oracle prices
// concurrently, then derives the three workload series from the primary
// fast-tier price. A rate failure never blocks derivation: the cycle
// proceeds with the 0 ("unknown") substitute, which zeroes only the
// quote-currency slot of each derived series.
func (r *Refresher) refreshPrimary(ctx context.Context) {
	rateCh := make(chan float64, 1)
	go func() {
		rate, err := r.exchangeRate.Fetch(ctx)
		if err != nil {
			r.logger.Error("[RefreshAll][FetchRate]", map[string]string{
				"error": err.Error(),
			})
			rate = 0
		}
		rateCh <- rate
	}()

	payload, err := r.blockPrices.Fetch(ctx)
	rate := <-rateCh

	if werr := r.cache.WriteExchangeRate(rate); werr != nil {
		r.logger.Error("[RefreshAll][WriteExchangeRate]", map[string]string{
			"error": werr.Error(),
		})
	}

	if err != nil {
		r.logger.Error("[RefreshAll][FetchBlockPrices]", map[string]string{
			"error": err.Error(),
		})
		// blank the primary slot; derived series keep their last value
		// since no new signal was available to derive from
		if werr := r.cache.MarkUnknown(model.SourcePrimaryOracle); werr != nil {
			r.logger.Error("[RefreshAll][MarkUnknown]", map[string]string{
				"source": string(model.SourcePrimaryOracle),
				"error":  werr.Error(),
			})
		}
		return
	}

	fetchedAt := time.Now().Unix()

	if payload.Fast > 0 {
		for _, source := range []model.SourceID{model.SourceSwap, model.SourceTransferERC20, model.SourceTransfer} {
			steps, _ := deriver.StepCost(source)
			estimate := deriver.Derive(payload.Fast, rate, steps)
			if werr := r.cache.WriteSeries(source, estimate.Series(fetchedAt)); werr != nil {
				r.logger.Error("[RefreshAll][WriteSeries]", map[string]string{
					"source": string(source),
					"error":  werr.Error(),
				})
			}
		}
	}

	series := model.NewPriceSeries(payload.Fast, payload.Standard, payload.Slow, fetchedAt)
	if werr := r.cache.WriteSeries(model.SourcePrimaryOracle, series); werr != nil {
		r.logger.Error("[RefreshAll][WriteSeries]", map[string]string{
			"source": string(model.SourcePrimaryOracle),
			"error":  werr.Error(),
		})
	}
}

func (r *Refresher) refreshSecondary(ctx context.Context) {
	payload, err := r.gasOracle.Fetch(ctx)
	if err != nil {
		r.logger.Error("[RefreshAll][FetchGasOracle]", map[string]string{
			"error": err.Error(),
		})
		if werr := r.cache.MarkUnknown(model.SourceSecondaryOracle); werr != nil {
			r.logger.Error("[RefreshAll][MarkUnknown]", map[string]string{
				"source": string(model.SourceSecondaryOracle),
				"error":  werr.Error(),
			})
		}
		return
	}

	series := model.NewPriceSeries(
		float64(payload.Fast),
		float64(payload.Standard),
		float64(payload.Slow),
		time.Now().Unix(),
	)
	if werr := r.cache.WriteSeries(model.SourceSecondaryOracle, series); werr != nil {
		r.logger.Error("[RefreshAll][WriteSeries]", map[string]string{
			"source": string(model.SourceSecondaryOracle),
			"error":  werr.Error(),
		})
	}
}

// refreshNetworkStatus writes only on success: a confirmed new label
// overwrites state, a failure leaves the prior value in place.
func (r *Refresher) refreshNetworkStatus(ctx context.Context) {
	status, err := r.networkStatus.Fetch(ctx)
	if err != nil {
		r.logger.Error("[RefreshAll][FetchStatus]", map[string]string{
			"error": err.Error(),
		})
		return
	}

	if werr := r.cache.WriteNetworkStatus(status); werr != nil {
		r.logger.Error("[RefreshAll][WriteNetworkStatus]", map[string]string{
			"error": werr.Error(),
		})
	}
}
