package deriver

import (
	"math"

	"github.com/ethereum/go-ethereum/params"

	"github.com/starkpulse/gas-backend/internal/model"
)

// Step costs per workload, in base-layer gas units per network step.
const (
	TransferSteps      = 2809
	TransferERC20Steps = 4701
	SwapSteps          = 9100
)

const (
	// GasFixer is a correction multiplier applied to the raw L1 price.
	GasFixer = 1
	// NetworkFeeMultiplier converts a base-asset fee into the network fee
	// estimate.
	NetworkFeeMultiplier = 1405
)

// gwei expressed in the base unit (wei): fixed 1e9/1e18 ratio.
const gweiToBase = float64(params.GWei) / float64(params.Ether)

// Estimate is one derived price tuple for a workload.
type Estimate struct {
	// NetworkFee is the network-specific fee estimate.
	NetworkFee float64
	// ScaledGwei is the scaled fee in gwei, truncated for display.
	ScaledGwei float64
	// FeeInQuote is the fee converted to the quote currency via the
	// exchange rate.
	FeeInQuote float64
}

// Derive computes a workload estimate from the upstream L1 gas price. Pure
// and deterministic; callers must skip derivation when the upstream signal
// is absent.
func Derive(l1GasPriceGwei, exchangeRate, stepCost float64) Estimate {
	scaledGwei := l1GasPriceGwei * GasFixer * stepCost
	feeInBase := scaledGwei * gweiToBase

	return Estimate{
		NetworkFee: feeInBase * NetworkFeeMultiplier,
		ScaledGwei: math.Trunc(scaledGwei),
		FeeInQuote: feeInBase * exchangeRate,
	}
}

// Series lays the estimate out as a cached price series: the three slots of
// a derived source carry (network fee, scaled gwei, fee in quote).
func (e Estimate) Series(fetchedAt int64) model.PriceSeries {
	return model.NewPriceSeries(e.NetworkFee, e.ScaledGwei, e.FeeInQuote, fetchedAt)
}

// StepCost maps a derived source to its step constant.
func StepCost(source model.SourceID) (float64, bool) {
	switch source {
	case model.SourceTransfer:
		return TransferSteps, true
	case model.SourceTransferERC20:
		return TransferERC20Steps, true
	case model.SourceSwap:
		return SwapSteps, true
	}
	return 0, false
}
