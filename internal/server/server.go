package server

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/starkpulse/gas-backend/internal/badge"
	"github.com/starkpulse/gas-backend/internal/pricecache"
	"github.com/starkpulse/gas-backend/internal/refresher"
	"github.com/starkpulse/gas-backend/internal/store"
	"github.com/starkpulse/gas-backend/internal/transport/http"
	"github.com/starkpulse/gas-backend/internal/upstream"
	"github.com/starkpulse/gas-backend/internal/utils/config"
	"github.com/starkpulse/gas-backend/internal/utils/logger"
)

func Init() {
	appConfig := config.New()
	logger := logger.New(appConfig.Environment)

	var kv store.IStore
	if appConfig.Postgres.Host != "" {
		kv = store.NewPostgresStore(appConfig, logger)
	} else {
		logger.Info("no database configured, price snapshots will not survive restarts")
		kv = store.NewInMemStore()
	}

	cache := pricecache.New(kv, logger)

	blocknative := upstream.NewBlocknative(appConfig, logger)
	etherscan := upstream.NewEtherscan(appConfig, logger)
	exchangeRate := upstream.NewExchangeRate(appConfig, logger)
	networkStatus := upstream.NewNetworkStatus(appConfig, logger)

	ref := refresher.New(cache, logger, refresher.Sources{
		BlockPrices:   blocknative.FetchBlockPrices,
		GasOracle:     etherscan.FetchGasOracle,
		ExchangeRate:  exchangeRate.FetchRate,
		NetworkStatus: networkStatus.FetchStatus,
	})

	watcher := badge.NewWatcher(cache, logger)
	watcher.Start(context.Background())

	c := cron.New()
	_, err := c.AddFunc(fmt.Sprintf("@every %s", appConfig.RefreshPeriod), ref.RefreshAll)
	if err != nil {
		logger.Fatal("failed to schedule refresh job", map[string]string{
			"error":  err.Error(),
			"period": appConfig.RefreshPeriod,
		})
	}
	c.Start()

	// first cycle runs immediately rather than waiting a full period
	go ref.RefreshAll()

	httpServer := http.NewHttpServer(appConfig, logger, cache, ref, watcher)

	httpServer.Run(fmt.Sprintf(":%s", appConfig.ApiServer.Port))
}
