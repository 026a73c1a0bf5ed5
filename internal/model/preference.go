package model

import (
	"fmt"
	"strconv"
	"strings"
)

// BadgePreference is the user-selected (source, tier) pair surfaced on the
// badge. It is persisted in the "<source>|<tierIndex>" form.
type BadgePreference struct {
	Source SourceID  `json:"source"`
	Tier   SpeedTier `json:"tier"`
}

func DefaultBadgePreference() BadgePreference {
	return BadgePreference{
		Source: SourcePrimaryOracle,
		Tier:   TierStandard,
	}
}

func (p BadgePreference) String() string {
	return fmt.Sprintf("%s|%d", p.Source, int(p.Tier))
}

func ParseBadgePreference(raw string) (BadgePreference, error) {
	parts := strings.SplitN(raw, "|", 2)
	if len(parts) != 2 {
		return BadgePreference{}, fmt.Errorf("malformed badge preference: %q", raw)
	}

	source := SourceID(parts[0])
	if !source.Valid() {
		return BadgePreference{}, fmt.Errorf("unknown badge source: %q", parts[0])
	}

	tierIndex, err := strconv.Atoi(parts[1])
	if err != nil {
		return BadgePreference{}, fmt.Errorf("malformed badge tier: %q", parts[1])
	}

	tier := SpeedTier(tierIndex)
	if !tier.Valid() {
		return BadgePreference{}, fmt.Errorf("badge tier out of range: %d", tierIndex)
	}

	return BadgePreference{Source: source, Tier: tier}, nil
}
