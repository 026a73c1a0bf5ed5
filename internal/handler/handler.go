package handler

import (
	"github.com/starkpulse/gas-backend/internal/badge"
	"github.com/starkpulse/gas-backend/internal/handler/gas"
	"github.com/starkpulse/gas-backend/internal/pricecache"
	"github.com/starkpulse/gas-backend/internal/refresher"
	"github.com/starkpulse/gas-backend/internal/utils/config"
	"github.com/starkpulse/gas-backend/internal/utils/logger"
)

type Handler struct {
	GasHandler gas.IHandler
}

func New(appConfig *config.AppConfig, logger *logger.Logger,
	cache *pricecache.PriceCache,
	refresher refresher.IRefresher,
	watcher *badge.Watcher) *Handler {
	return &Handler{
		GasHandler: gas.New(cache, refresher, watcher, logger, appConfig),
	}
}
