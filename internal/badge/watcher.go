package badge

import (
	"context"
	"slices"
	"sync"

	"github.com/starkpulse/gas-backend/internal/consts"
	"github.com/starkpulse/gas-backend/internal/pricecache"
	"github.com/starkpulse/gas-backend/internal/utils/logger"
)

// Watcher keeps the badge current: it consumes the cache's change stream and
// recomputes the badge whenever the prices or the preference change, so the
// display surface redraws without polling. The rendered text is persisted so
// a restarted process resumes from the last shown value.
type Watcher struct {
	cache  *pricecache.PriceCache
	logger *logger.Logger

	mu    sync.RWMutex
	text  string
	value *float64
}

func NewWatcher(cache *pricecache.PriceCache, logger *logger.Logger) *Watcher {
	return &Watcher{
		cache:  cache,
		logger: logger,
		text:   consts.BadgePlaceholder,
	}
}

// Start restores the last persisted badge text, recomputes once, and then
// follows the change stream until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	changes := w.cache.Subscribe()

	if content, err := w.cache.ReadBadgeContent(); err == nil {
		w.mu.Lock()
		w.text = content
		w.mu.Unlock()
	}

	w.recompute()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case keys, ok := <-changes:
				if !ok {
					return
				}
				if slices.Contains(keys, consts.StorageKeyPrices) || slices.Contains(keys, consts.StorageKeyBadgeSource) {
					w.recompute()
				}
			}
		}
	}()
}

// Current returns the badge as last computed.
func (w *Watcher) Current() (string, *float64) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.text, w.value
}

// recompute re-reads the whole snapshot rather than trusting the change
// payload; a dropped notification is repaired by the next one. An unknown
// selection keeps the previous text on the surface.
func (w *Watcher) recompute() {
	snap, err := w.cache.ReadAll()
	if err != nil {
		w.logger.Error("[Badge][ReadAll]", map[string]string{
			"error": err.Error(),
		})
		return
	}

	pref, err := w.cache.ReadPreference()
	if err != nil {
		w.logger.Error("[Badge][ReadPreference]", map[string]string{
			"error": err.Error(),
		})
		return
	}

	value := Select(snap, pref)
	if value == nil {
		return
	}

	text := Format(value)

	w.mu.Lock()
	w.text = text
	w.value = value
	w.mu.Unlock()

	if err := w.cache.WriteBadgeContent(text); err != nil {
		w.logger.Error("[Badge][WriteBadgeContent]", map[string]string{
			"error": err.Error(),
		})
	}
}
