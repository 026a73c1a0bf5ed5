package gas

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/starkpulse/gas-backend/internal/badge"
	"github.com/starkpulse/gas-backend/internal/model"
	"github.com/starkpulse/gas-backend/internal/pricecache"
	"github.com/starkpulse/gas-backend/internal/refresher"
	"github.com/starkpulse/gas-backend/internal/utils/config"
	"github.com/starkpulse/gas-backend/internal/utils/logger"
	"github.com/starkpulse/gas-backend/internal/view"
)

type handler struct {
	cache     *pricecache.PriceCache
	refresher refresher.IRefresher
	watcher   *badge.Watcher
	logger    *logger.Logger
	appConfig *config.AppConfig
}

func New(cache *pricecache.PriceCache, refresher refresher.IRefresher, watcher *badge.Watcher, logger *logger.Logger, appConfig *config.AppConfig) IHandler {
	return &handler{
		cache:     cache,
		refresher: refresher,
		watcher:   watcher,
		logger:    logger,
		appConfig: appConfig,
	}
}

// Detail godoc
// @Summary Get gas prices
// @Description Get the latest snapshot of all price series
// @id getGasPrices
// @Tags Gas
// @Accept json
// @Produce json
// @Success 200 {object} model.Snapshot
// @Failure 500 {object} ErrorResponse
// @Router /gas/prices [get]
func (h *handler) GetPrices(c *gin.Context) {
	snap, err := h.cache.ReadAll()
	if err != nil {
		h.logger.Error(err.Error())
		c.JSON(http.StatusInternalServerError, view.CreateResponse[any](nil, err, "", "can't read price snapshot"))
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse[any](snap, nil, "", ""))
}

type badgeResponse struct {
	Text   string         `json:"text"`
	Value  *float64       `json:"value"`
	Source model.SourceID `json:"source"`
	Tier   int            `json:"tier"`
}

// Detail godoc
// @Summary Get badge
// @Description Get the current badge value and the preference driving it
// @id getBadge
// @Tags Gas
// @Accept json
// @Produce json
// @Success 200 {object} badgeResponse
// @Failure 500 {object} ErrorResponse
// @Router /gas/badge [get]
func (h *handler) GetBadge(c *gin.Context) {
	pref, err := h.cache.ReadPreference()
	if err != nil {
		h.logger.Error(err.Error())
		c.JSON(http.StatusInternalServerError, view.CreateResponse[any](nil, err, "", "can't read badge preference"))
		return
	}

	text, value := h.watcher.Current()
	c.JSON(http.StatusOK, view.CreateResponse[any](badgeResponse{
		Text:   text,
		Value:  value,
		Source: pref.Source,
		Tier:   int(pref.Tier),
	}, nil, "", ""))
}

type networkStatusResponse struct {
	NetworkStatus   string  `json:"networkStatus"`
	ETHExchangeRate float64 `json:"ethExchangeRate"`
}

// Detail godoc
// @Summary Get network status
// @Description Get the network status label and the ETH exchange rate
// @id getNetworkStatus
// @Tags Gas
// @Accept json
// @Produce json
// @Success 200 {object} networkStatusResponse
// @Failure 500 {object} ErrorResponse
// @Router /gas/status [get]
func (h *handler) GetNetworkStatus(c *gin.Context) {
	status, err := h.cache.ReadNetworkStatus()
	if err != nil {
		h.logger.Error(err.Error())
		c.JSON(http.StatusInternalServerError, view.CreateResponse[any](nil, err, "", "can't read network status"))
		return
	}

	rate, err := h.cache.ReadExchangeRate()
	if err != nil {
		h.logger.Error(err.Error())
		c.JSON(http.StatusInternalServerError, view.CreateResponse[any](nil, err, "", "can't read exchange rate"))
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse[any](networkStatusResponse{
		NetworkStatus:   status,
		ETHExchangeRate: rate,
	}, nil, "", ""))
}

// Detail godoc
// @Summary Refresh now
// @Description Trigger a refresh cycle across all upstream sources
// @id triggerRefresh
// @Tags Gas
// @Accept json
// @Produce json
// @Success 202
// @Router /gas/refresh [post]
func (h *handler) TriggerRefresh(c *gin.Context) {
	go h.refresher.RefreshAll()
	c.JSON(http.StatusAccepted, view.CreateResponse[any](nil, nil, "", "refresh scheduled"))
}

type updateBadgeSourceRequest struct {
	Source string `json:"source" binding:"required"`
	Tier   *int   `json:"tier" binding:"required,min=0,max=2"`
}

// Detail godoc
// @Summary Update badge source
// @Description Set the (source, tier) pair surfaced on the badge
// @id updateBadgeSource
// @Tags Gas
// @Accept json
// @Produce json
// @Success 200 {object} model.BadgePreference
// @Failure 400 {object} ErrorResponse
// @Router /gas/badge-source [put]
func (h *handler) UpdateBadgeSource(c *gin.Context) {
	var req updateBadgeSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, "", "invalid badge source payload"))
		return
	}

	source := model.SourceID(req.Source)
	if !source.Valid() {
		err := errors.Errorf("unknown source: %q", req.Source)
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, "", "invalid badge source payload"))
		return
	}

	pref := model.BadgePreference{Source: source, Tier: model.SpeedTier(*req.Tier)}
	if err := h.cache.WritePreference(pref); err != nil {
		h.logger.Error(err.Error())
		c.JSON(http.StatusInternalServerError, view.CreateResponse[any](nil, err, "", "can't persist badge preference"))
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse[any](pref, nil, "", ""))
}
