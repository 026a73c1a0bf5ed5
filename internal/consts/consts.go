package consts

import "time"

// Storage keys for the durable key/value store.
const (
	StorageKeyPrices        = "prices"
	StorageKeyBadgeSource   = "badgeSource"
	StorageKeyBadgeContent  = "badgeContent"
	StorageKeyExchangeRate  = "ethExchangeRate"
	StorageKeyNetworkStatus = "networkStatus"
)

// Defaults served when a storage key has never been written.
const (
	DefaultNetworkStatus = "Unknown"
	DefaultExchangeRate  = float64(0)
	BadgePlaceholder     = "…"
)

// Fetch coalescing windows. Rapid triggers inside the debounce window share
// one upstream round trip; a completed result is reused for the memo window.
const (
	DebounceWindow = 500 * time.Millisecond
	MemoWindow     = 10 * time.Second
)

// Default upstream endpoints, overridable via config.
const (
	DefaultBlocknativeURL  = "https://api.blocknative.com/gasprices/blockprices?confidenceLevels=99&confidenceLevels=90&confidenceLevels=80&confidenceLevels=60"
	DefaultEtherscanURL    = "https://api.etherscan.io/api?module=gastracker&action=gasoracle"
	DefaultExchangeRateURL = "https://api.coinbase.com/v2/exchange-rates?currency=ETH"
	DefaultStatusPageURL   = "https://status.starknet.io/"
)

// DefaultRefreshPeriod is the scheduler period between refresh cycles.
const DefaultRefreshPeriod = "1m"
