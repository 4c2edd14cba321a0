package evm

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// gasPriceData represents the gas pricing for a transaction under the bound
// strategy's premium multiplier.
type gasPriceData struct {
	GasPrice             *big.Int // Legacy gas price, nil for EIP-1559.
	MaxFeePerGas         *big.Int // EIP-1559 max fee per gas.
	MaxPriorityFeePerGas *big.Int // EIP-1559 priority fee.
}

// applyMultiplier scales a gas price by the strategy's premium percentage.
func applyMultiplier(price *big.Int, multiplierPct uint64) *big.Int {
	if multiplierPct == 0 {
		multiplierPct = 100
	}
	scaled := new(big.Int).Mul(price, new(big.Int).SetUint64(multiplierPct))
	return scaled.Div(scaled, big.NewInt(100))
}

// gasPrice fetches the current network gas price and applies the strategy's
// premium multiplier to bias for faster inclusion.
func (e *evm) gasPrice(ctx context.Context, client *ethclient.Client) (*gasPriceData, error) {
	if e.config.TxType == TxTypeEIP1559 {
		return e.eip1559GasPrice(ctx, client)
	}

	price, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get gas price")
	}
	return &gasPriceData{GasPrice: applyMultiplier(price, e.strategy.GasMultiplierPct)}, nil
}

// eip1559GasPrice computes the EIP-1559 fee caps: buffered base fee plus the
// suggested tip, both scaled by the strategy multiplier.
func (e *evm) eip1559GasPrice(ctx context.Context, client *ethclient.Client) (*gasPriceData, error) {
	suggestedTip, err := client.SuggestGasTipCap(ctx)
	if err != nil {
		e.logger.WithField("chain", e.config.Name).WithError(err).Warn("Failed to get suggested gas tip")
		suggestedTip = big.NewInt(1)
	}
	if suggestedTip.Sign() == 0 {
		suggestedTip = big.NewInt(1)
	}

	header, err := client.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get header by number")
	}
	if header.BaseFee == nil {
		return nil, errors.New("base fee is nil")
	}

	baseFeeBuf := new(big.Int).Mul(header.BaseFee, big.NewInt(130))
	baseFeeBuf = baseFeeBuf.Div(baseFeeBuf, big.NewInt(100))
	maxFee := new(big.Int).Add(baseFeeBuf, suggestedTip)

	tip := applyMultiplier(suggestedTip, e.strategy.GasMultiplierPct)
	maxFee = applyMultiplier(maxFee, e.strategy.GasMultiplierPct)
	if maxFee.Cmp(tip) <= 0 {
		maxFee = new(big.Int).Add(tip, header.BaseFee)
	}

	return &gasPriceData{
		MaxFeePerGas:         maxFee,
		MaxPriorityFeePerGas: tip,
	}, nil
}

// estimateGasLimit simulates the call and applies the safety buffer over the
// estimate. When estimation fails it falls back to the configured hard ceiling
// rather than refusing to build the transaction.
func (e *evm) estimateGasLimit(ctx context.Context, client *ethclient.Client, from, to common.Address, value *big.Int, data []byte) uint64 {
	estimated, err := client.EstimateGas(ctx, ethereum.CallMsg{
		From:  from,
		To:    &to,
		Value: value,
		Data:  data,
	})
	if err != nil {
		e.logger.WithFields(logrus.Fields{
			"chain": e.config.Name,
			"error": err,
		}).Warn("Gas estimation failed, using configured ceiling")
		return e.config.GasCeiling
	}

	buffered := estimated * gasLimitBufferPct / 100
	if buffered > e.config.GasCeiling {
		return e.config.GasCeiling
	}
	return buffered
}
