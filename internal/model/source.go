package model

// SourceID identifies one cached price series. The two oracle sources hold
// raw base-layer gas prices; the three workload sources hold estimates
// derived from the primary oracle's signal.
type SourceID string

const (
	SourcePrimaryOracle   SourceID = "blocknative"
	SourceSecondaryOracle SourceID = "etherscan"
	SourceTransfer        SourceID = "transfer"
	SourceTransferERC20   SourceID = "transferERC20"
	SourceSwap            SourceID = "swap"
)

var AllSources = []SourceID{
	SourcePrimaryOracle,
	SourceSecondaryOracle,
	SourceTransfer,
	SourceTransferERC20,
	SourceSwap,
}

func (s SourceID) Valid() bool {
	switch s {
	case SourcePrimaryOracle, SourceSecondaryOracle, SourceTransfer, SourceTransferERC20, SourceSwap:
		return true
	}
	return false
}

// IsDerived reports whether the series is computed from the primary oracle
// signal rather than fetched from an upstream of its own.
func (s SourceID) IsDerived() bool {
	switch s {
	case SourceTransfer, SourceTransferERC20, SourceSwap:
		return true
	}
	return false
}
