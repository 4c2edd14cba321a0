package tier

import (
	"math/big"

	"github.com/pkg/errors"

	commonerrors "github.com/tradeforge/swap-lib/common/errors"
	"github.com/tradeforge/swap-lib/common/types"
)

const bpsDenominator = 10000

// ComputeFee deducts the tier's platform fee from the gross native amount. The
// fee rounds down, so FeeAmount + NetAmount always equals GrossAmount exactly
// and no wei is created or lost. The swap itself must be built with NetAmount.
//
// Parameters:
// - tierConfig: the tier whose fee rate applies.
// - grossAmount: the requested native amount in wei.
//
// Returns:
// - *types.FeeResult: the fee breakdown.
// - error: an error if the amount is not positive or exceeds the tier's cap.
func ComputeFee(tierConfig *types.TierConfig, grossAmount *big.Int) (*types.FeeResult, error) {
	if grossAmount == nil || grossAmount.Sign() <= 0 {
		return nil, errors.Wrap(commonerrors.ErrInvalidConfig, "gross amount must be positive")
	}
	if tierConfig.MaxTradeSizeNative != nil && grossAmount.Cmp(tierConfig.MaxTradeSizeNative) > 0 {
		return nil, errors.Wrapf(commonerrors.ErrInvalidConfig,
			"gross amount %s exceeds tier %s limit %s",
			grossAmount, tierConfig.Name, tierConfig.MaxTradeSizeNative)
	}

	fee := new(big.Int).Mul(grossAmount, big.NewInt(int64(tierConfig.TradeFeeBps)))
	fee.Quo(fee, big.NewInt(bpsDenominator))
	net := new(big.Int).Sub(grossAmount, fee)

	return &types.FeeResult{
		GrossAmount: new(big.Int).Set(grossAmount),
		FeeAmount:   fee,
		NetAmount:   net,
		FeeBps:      tierConfig.TradeFeeBps,
		TierName:    tierConfig.Name,
	}, nil
}
