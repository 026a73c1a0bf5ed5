package model

// SpeedTier indexes the three slots of a PriceSeries, in order of
// decreasing willingness to pay for fast inclusion.
type SpeedTier int

const (
	TierFast SpeedTier = iota
	TierStandard
	TierSlow
)

func (t SpeedTier) Valid() bool {
	return t >= TierFast && t <= TierSlow
}

// PriceSeries is the cached three-slot tuple for one source plus the Unix
// timestamp of the last successful fetch. For oracle sources the slots are
// the fast/standard/slow gas prices in gwei. For derived sources they carry
// (network fee estimate, scaled fee in gwei, fee in quote currency) in the
// same three positions.
//
// A nil slot means "unknown": never fetched, or the last fetch failed. It is
// deliberately distinct from a legitimate zero price. FetchedAt is zero only
// when the source has never been fetched successfully.
type PriceSeries struct {
	Fast      *float64 `json:"fast"`
	Standard  *float64 `json:"standard"`
	Slow      *float64 `json:"slow"`
	FetchedAt int64    `json:"fetchedAt,omitempty"`
}

func NewPriceSeries(fast, standard, slow float64, fetchedAt int64) PriceSeries {
	return PriceSeries{
		Fast:      &fast,
		Standard:  &standard,
		Slow:      &slow,
		FetchedAt: fetchedAt,
	}
}

// UnknownSeries keeps the given timestamp so a failed fetch can blank the
// values without fabricating freshness.
func UnknownSeries(fetchedAt int64) PriceSeries {
	return PriceSeries{FetchedAt: fetchedAt}
}

// At returns the slot for the given tier, nil when the tier is out of range.
func (s PriceSeries) At(tier SpeedTier) *float64 {
	switch tier {
	case TierFast:
		return s.Fast
	case TierStandard:
		return s.Standard
	case TierSlow:
		return s.Slow
	}
	return nil
}

func (s PriceSeries) IsUnknown() bool {
	return s.Fast == nil && s.Standard == nil && s.Slow == nil
}

// Snapshot is the full cache contents across all sources. Readers always
// observe a fully committed snapshot; see pricecache.PriceCache.
type Snapshot map[SourceID]PriceSeries

// EmptySnapshot returns the documented default: every source present with an
// all-unknown, never-fetched series.
func EmptySnapshot() Snapshot {
	snap := make(Snapshot, len(AllSources))
	for _, src := range AllSources {
		snap[src] = PriceSeries{}
	}
	return snap
}

// Normalize fills in any source missing from a stored snapshot, so partial
// state written by an older build still reads back complete.
func (s Snapshot) Normalize() Snapshot {
	for _, src := range AllSources {
		if _, ok := s[src]; !ok {
			s[src] = PriceSeries{}
		}
	}
	return s
}
