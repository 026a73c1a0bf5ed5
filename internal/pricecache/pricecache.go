package pricecache

import (
	"encoding/json"
	"strconv"
	"sync"

	"github.com/starkpulse/gas-backend/internal/consts"
	"github.com/starkpulse/gas-backend/internal/model"
	"github.com/starkpulse/gas-backend/internal/store"
	"github.com/starkpulse/gas-backend/internal/utils/logger"
)

// PriceCache owns the latest snapshot per source in the durable store.
//
// All snapshot mutation goes through a read-merge-write cycle serialized by
// mux: read the whole prices map, splice in one source's series, persist the
// whole map. Concurrent writers queue on the mutex and each cycle completes
// fully before the next begins, so readers only ever observe committed
// snapshots and a write to one source never clobbers the other four.
type PriceCache struct {
	mux *sync.Mutex

	store  store.IStore
	logger *logger.Logger
}

func New(s store.IStore, logger *logger.Logger) *PriceCache {
	return &PriceCache{
		mux:    &sync.Mutex{},
		store:  s,
		logger: logger,
	}
}

// ReadAll returns the current snapshot. Sources never written yet come back
// as all-unknown series rather than being absent.
func (c *PriceCache) ReadAll() (model.Snapshot, error) {
	values, err := c.store.Get(consts.StorageKeyPrices)
	if err != nil {
		return nil, err
	}

	raw, ok := values[consts.StorageKeyPrices]
	if !ok {
		return model.EmptySnapshot(), nil
	}

	var snap model.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, err
	}
	return snap.Normalize(), nil
}

// WriteSeries commits a new series for one source. A source's timestamp is
// monotonic: an incoming series never lowers the stored FetchedAt.
func (c *PriceCache) WriteSeries(source model.SourceID, series model.PriceSeries) error {
	c.mux.Lock()
	defer c.mux.Unlock()

	snap, err := c.ReadAll()
	if err != nil {
		return err
	}

	if prev := snap[source]; prev.FetchedAt > series.FetchedAt {
		series.FetchedAt = prev.FetchedAt
	}
	snap[source] = series

	return c.persistSnapshot(snap)
}

// MarkUnknown blanks a source's values after a failed fetch while keeping
// its previous timestamp, so staleness stays honest without fabricating a
// fetch time for unknown values.
func (c *PriceCache) MarkUnknown(source model.SourceID) error {
	c.mux.Lock()
	defer c.mux.Unlock()

	snap, err := c.ReadAll()
	if err != nil {
		return err
	}

	snap[source] = model.UnknownSeries(snap[source].FetchedAt)

	return c.persistSnapshot(snap)
}

func (c *PriceCache) persistSnapshot(snap model.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.store.Set(map[string]string{consts.StorageKeyPrices: string(raw)})
}

func (c *PriceCache) ReadPreference() (model.BadgePreference, error) {
	values, err := c.store.Get(consts.StorageKeyBadgeSource)
	if err != nil {
		return model.BadgePreference{}, err
	}

	raw, ok := values[consts.StorageKeyBadgeSource]
	if !ok || raw == "" {
		return model.DefaultBadgePreference(), nil
	}

	pref, err := model.ParseBadgePreference(raw)
	if err != nil {
		c.logger.Error("[ReadPreference] stored preference is malformed, using default", map[string]string{
			"error": err.Error(),
			"raw":   raw,
		})
		return model.DefaultBadgePreference(), nil
	}
	return pref, nil
}

func (c *PriceCache) WritePreference(pref model.BadgePreference) error {
	return c.store.Set(map[string]string{consts.StorageKeyBadgeSource: pref.String()})
}

func (c *PriceCache) ReadExchangeRate() (float64, error) {
	values, err := c.store.Get(consts.StorageKeyExchangeRate)
	if err != nil {
		return 0, err
	}

	raw, ok := values[consts.StorageKeyExchangeRate]
	if !ok || raw == "" {
		return consts.DefaultExchangeRate, nil
	}

	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	return rate, nil
}

func (c *PriceCache) WriteExchangeRate(rate float64) error {
	raw := strconv.FormatFloat(rate, 'f', -1, 64)
	return c.store.Set(map[string]string{consts.StorageKeyExchangeRate: raw})
}

func (c *PriceCache) ReadNetworkStatus() (string, error) {
	values, err := c.store.Get(consts.StorageKeyNetworkStatus)
	if err != nil {
		return "", err
	}

	status, ok := values[consts.StorageKeyNetworkStatus]
	if !ok || status == "" {
		return consts.DefaultNetworkStatus, nil
	}
	return status, nil
}

func (c *PriceCache) WriteNetworkStatus(status string) error {
	return c.store.Set(map[string]string{consts.StorageKeyNetworkStatus: status})
}

func (c *PriceCache) ReadBadgeContent() (string, error) {
	values, err := c.store.Get(consts.StorageKeyBadgeContent)
	if err != nil {
		return "", err
	}

	content, ok := values[consts.StorageKeyBadgeContent]
	if !ok || content == "" {
		return consts.BadgePlaceholder, nil
	}
	return content, nil
}

func (c *PriceCache) WriteBadgeContent(content string) error {
	return c.store.Set(map[string]string{consts.StorageKeyBadgeContent: content})
}

// Subscribe re-exposes the store's change stream: one changed-key batch per
// committed write.
func (c *PriceCache) Subscribe() <-chan []string {
	return c.store.Subscribe()
}
