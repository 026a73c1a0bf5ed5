package refresher_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starkpulse/gas-backend/internal/deriver"
	"github.com/starkpulse/gas-backend/internal/model"
	"github.com/starkpulse/gas-backend/internal/pricecache"
	"github.com/starkpulse/gas-backend/internal/refresher"
	"github.com/starkpulse/gas-backend/internal/store"
	"github.com/starkpulse/gas-backend/internal/types/environments"
	"github.com/starkpulse/gas-backend/internal/upstream"
	"github.com/starkpulse/gas-backend/internal/utils/logger"
)

const (
	testDebounce = 5 * time.Millisecond
	testMemoTTL  = 20 * time.Millisecond
)

var errDown = errors.New("upstream down")

type stubSources struct {
	blockPrices   upstream.BlockPricesPayload
	blockPricesOK bool
	gasOracle     upstream.GasOraclePayload
	gasOracleOK   bool
	rate          float64
	rateOK        bool
	status        string
	statusOK      bool

	delay time.Duration
}

func (s stubSources) sources() refresher.Sources {
	return refresher.Sources{
		BlockPrices: func(ctx context.Context) (upstream.BlockPricesPayload, error) {
			time.Sleep(s.delay)
			if !s.blockPricesOK {
				return upstream.BlockPricesPayload{}, errDown
			}
			return s.blockPrices, nil
		},
		GasOracle: func(ctx context.Context) (upstream.GasOraclePayload, error) {
			time.Sleep(s.delay)
			if !s.gasOracleOK {
				return upstream.GasOraclePayload{}, errDown
			}
			return s.gasOracle, nil
		},
		ExchangeRate: func(ctx context.Context) (float64, error) {
			if !s.rateOK {
				return 0, errDown
			}
			return s.rate, nil
		},
		NetworkStatus: func(ctx context.Context) (string, error) {
			if !s.statusOK {
				return "", errDown
			}
			return s.status, nil
		},
	}
}

func newHarness(t *testing.T, stub stubSources) (refresher.IRefresher, *pricecache.PriceCache) {
	t.Helper()
	cache := pricecache.New(store.NewInMemStore(), logger.New(environments.Test))
	ref := refresher.NewWithWindows(cache, logger.New(environments.Test), stub.sources(), testDebounce, testMemoTTL)
	return ref, cache
}

func TestRefreshAll_PrimarySuccessRestFailing(t *testing.T) {
	ref, cache := newHarness(t, stubSources{
		blockPrices:   upstream.BlockPricesPayload{Fast: 30, Standard: 20, Slow: 10},
		blockPricesOK: true,
	})

	ref.RefreshAll()

	snap, err := cache.ReadAll()
	require.NoError(t, err)

	primary := snap[model.SourcePrimaryOracle]
	require.NotNil(t, primary.Fast)
	assert.Equal(t, 30.0, *primary.Fast)
	assert.Equal(t, 20.0, *primary.Standard)
	assert.Equal(t, 10.0, *primary.Slow)
	assert.NotZero(t, primary.FetchedAt)

	// derived series are populated from the fast-tier signal with the
	// substituted 0 rate
	for _, source := range []model.SourceID{model.SourceTransfer, model.SourceTransferERC20, model.SourceSwap} {
		series := snap[source]
		steps, _ := deriver.StepCost(source)
		want := deriver.Derive(30, 0, steps)
		require.NotNil(t, series.Fast, "derived source %s missing", source)
		assert.Equal(t, want.NetworkFee, *series.Fast)
		assert.Equal(t, want.ScaledGwei, *series.Standard)
		assert.Zero(t, *series.Slow, "quote fee is zero with the substituted rate")
		assert.Equal(t, primary.FetchedAt, series.FetchedAt)
	}

	secondary := snap[model.SourceSecondaryOracle]
	assert.True(t, secondary.IsUnknown())
	assert.Zero(t, secondary.FetchedAt, "never-fetched source keeps no timestamp")

	rate, err := cache.ReadExchangeRate()
	require.NoError(t, err)
	assert.Zero(t, rate)

	status, err := cache.ReadNetworkStatus()
	require.NoError(t, err)
	assert.Equal(t, "Unknown", status, "failed status fetch leaves prior value")
}

func TestRefreshAll_AllSourcesHealthy(t *testing.T) {
	ref, cache := newHarness(t, stubSources{
		blockPrices:   upstream.BlockPricesPayload{Fast: 40, Standard: 30, Slow: 25},
		blockPricesOK: true,
		gasOracle:     upstream.GasOraclePayload{Fast: 42, Standard: 32, Slow: 27},
		gasOracleOK:   true,
		rate:          2000,
		rateOK:        true,
		status:        "All Systems Operational",
		statusOK:      true,
	})

	ref.RefreshAll()

	snap, err := cache.ReadAll()
	require.NoError(t, err)

	secondary := snap[model.SourceSecondaryOracle]
	require.NotNil(t, secondary.Fast)
	assert.Equal(t, 42.0, *secondary.Fast)
	assert.NotZero(t, secondary.FetchedAt)

	transfer := snap[model.SourceTransfer]
	want := deriver.Derive(40, 2000, deriver.TransferSteps)
	require.NotNil(t, transfer.Slow)
	assert.Equal(t, want.FeeInQuote, *transfer.Slow)

	rate, err := cache.ReadExchangeRate()
	require.NoError(t, err)
	assert.Equal(t, 2000.0, rate)

	status, err := cache.ReadNetworkStatus()
	require.NoError(t, err)
	assert.Equal(t, "All Systems Operational", status)
}

func TestRefreshAll_PrimaryFailureKeepsDerivedSeries(t *testing.T) {
	healthy := stubSources{
		blockPrices:   upstream.BlockPricesPayload{Fast: 30, Standard: 20, Slow: 10},
		blockPricesOK: true,
		rate:          2000,
		rateOK:        true,
	}
	cache := pricecache.New(store.NewInMemStore(), logger.New(environments.Test))
	testLogger := logger.New(environments.Test)

	ref := refresher.NewWithWindows(cache, testLogger, healthy.sources(), testDebounce, testMemoTTL)
	ref.RefreshAll()

	// second cycle: primary now failing, fresh fetchers so the memo from
	// the first cycle does not mask the outage
	broken := stubSources{rate: 2000, rateOK: true}
	ref = refresher.NewWithWindows(cache, testLogger, broken.sources(), testDebounce, testMemoTTL)
	ref.RefreshAll()

	snap, err := cache.ReadAll()
	require.NoError(t, err)

	primary := snap[model.SourcePrimaryOracle]
	assert.True(t, primary.IsUnknown(), "primary slot is blanked")
	assert.NotZero(t, primary.FetchedAt, "previous timestamp survives the failure")

	transfer := snap[model.SourceTransfer]
	require.NotNil(t, transfer.Fast, "derived series keep their last value")
	want := deriver.Derive(30, 2000, deriver.TransferSteps)
	assert.Equal(t, want.NetworkFee, *transfer.Fast)
}

func TestRefreshAll_OverlappingInvocations(t *testing.T) {
	ref, cache := newHarness(t, stubSources{
		blockPrices:   upstream.BlockPricesPayload{Fast: 30, Standard: 20, Slow: 10},
		blockPricesOK: true,
		gasOracle:     upstream.GasOraclePayload{Fast: 42, Standard: 32, Slow: 27},
		gasOracleOK:   true,
		rate:          2000,
		rateOK:        true,
		status:        "OK",
		statusOK:      true,
		delay:         30 * time.Millisecond,
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		var wg sync.WaitGroup
		for i := 0; i < 3; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ref.RefreshAll()
			}()
		}
		wg.Wait()
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("overlapping refresh cycles deadlocked")
	}

	snap, err := cache.ReadAll()
	require.NoError(t, err)

	require.NotNil(t, snap[model.SourcePrimaryOracle].Fast)
	assert.Equal(t, 30.0, *snap[model.SourcePrimaryOracle].Fast)
	require.NotNil(t, snap[model.SourceSecondaryOracle].Fast)
	assert.Equal(t, 42.0, *snap[model.SourceSecondaryOracle].Fast)
}
