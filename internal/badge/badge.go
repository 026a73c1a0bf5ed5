package badge

import (
	"fmt"
	"math"

	"github.com/starkpulse/gas-backend/internal/consts"
	"github.com/starkpulse/gas-backend/internal/model"
)

// Select picks the scalar surfaced on the badge: the preferred source's tier
// slot, falling back to the primary then the secondary oracle when the
// preferred value is unknown. Returns nil when all three are unknown.
func Select(snap model.Snapshot, pref model.BadgePreference) *float64 {
	for _, source := range []model.SourceID{pref.Source, model.SourcePrimaryOracle, model.SourceSecondaryOracle} {
		if value := snap[source].At(pref.Tier); value != nil {
			return value
		}
	}
	return nil
}

// Format renders a badge value: values above 10 are truncated to whole
// units, smaller ones keep two decimals, and an unknown value renders as the
// ellipsis placeholder.
func Format(value *float64) string {
	if value == nil || math.IsNaN(*value) {
		return consts.BadgePlaceholder
	}
	if *value > 10 {
		return fmt.Sprintf("%d", int64(math.Trunc(*value)))
	}
	return fmt.Sprintf("%.2f", *value)
}
