package evm

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"

	commonerrors "github.com/tradeforge/swap-lib/common/errors"
	"github.com/tradeforge/swap-lib/common/types"
	"github.com/tradeforge/swap-lib/endpointpool"
)

// bpsDenominator is the fixed-point basis for slippage and fee arithmetic.
const bpsDenominator = 10000

// minOutput computes the minimum acceptable output amount for a quote:
// amountOut * (10000 - slippageBps) / 10000, rounded down.
func minOutput(amountOut *big.Int, slippageBps uint32) *big.Int {
	minOut := new(big.Int).Mul(amountOut, big.NewInt(bpsDenominator-int64(slippageBps)))
	return minOut.Div(minOut, big.NewInt(bpsDenominator))
}

// quoteSwap asks the quoter contract for the expected output of swapping
// amountIn of tokenIn into tokenOut through the given fee tier.
func quoteSwap(ctx context.Context, caller contractCaller, config *types.ChainConfig, tokenIn, tokenOut common.Address, amountIn *big.Int, feeTier uint32) (*big.Int, uint64, error) {
	if err := dexABIs(); err != nil {
		return nil, 0, errors.Wrap(err, "failed to parse dex abis")
	}

	params := struct {
		TokenIn           common.Address
		TokenOut          common.Address
		AmountIn          *big.Int
		Fee               *big.Int
		SqrtPriceLimitX96 *big.Int
	}{
		TokenIn:           tokenIn,
		TokenOut:          tokenOut,
		AmountIn:          amountIn,
		Fee:               big.NewInt(int64(feeTier)),
		SqrtPriceLimitX96: big.NewInt(0),
	}

	data, err := quoterABI.Pack("quoteExactInputSingle", params)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to pack quote data")
	}

	quoter := common.HexToAddress(config.QuoterAddress)
	result, err := caller.CallContract(ctx, ethereum.CallMsg{To: &quoter, Data: data}, nil)
	if err != nil {
		if isRevert(err) {
			return nil, 0, endpointpool.Permanent(errors.Wrap(commonerrors.ErrQuoteFailed, err.Error()))
		}
		return nil, 0, errors.Wrap(err, "failed to call quoter")
	}

	values, err := quoterABI.Unpack("quoteExactInputSingle", result)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to unpack quote result")
	}

	amountOut, ok := values[0].(*big.Int)
	if !ok {
		return nil, 0, errors.Errorf("unexpected quote result type %T", values[0])
	}

	var gasEstimate uint64
	if gas, ok := values[3].(*big.Int); ok {
		gasEstimate = gas.Uint64()
	}
	return amountOut, gasEstimate, nil
}

// isRevert reports whether a contract call error is an execution revert rather
// than a transport failure. Reverts are deterministic: retrying on another
// endpoint will not change the answer.
func isRevert(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "execution reverted") || strings.Contains(msg, "revert")
}

// Quote estimates the output amount for swapping native currency into tokenOut.
//
// Parameters:
// - ctx: the context for managing the request.
// - tokenOut: the token contract address to buy.
// - amountInNative: the native amount to swap, in wei.
// - feeTierBps: the pool fee tier to use, or 0 to discover the best pool.
//
// Returns:
// - *types.QuoteResult: the estimated output, gas and the pool used.
// - error: ErrNoPoolFound or ErrQuoteFailed on definitive failures.
func (e *evm) Quote(ctx context.Context, tokenOut string, amountInNative *big.Int, feeTierBps uint32) (*types.QuoteResult, error) {
	var pool *types.PoolInfo
	if feeTierBps != 0 {
		pool = &types.PoolInfo{FeeTierBps: feeTierBps}
	} else {
		discovered, err := e.DiscoverPool(ctx, tokenOut)
		if err != nil {
			return nil, err
		}
		pool = discovered
	}

	tokenIn := common.HexToAddress(e.config.WrappedNative)
	out := common.HexToAddress(tokenOut)

	type quoteValue struct {
		amountOut *big.Int
		gas       uint64
	}
	value, err := read(ctx, e, func(ctx context.Context, client *ethclient.Client) (quoteValue, error) {
		amountOut, gas, err := quoteSwap(ctx, client, e.config, tokenIn, out, amountInNative, pool.FeeTierBps)
		if err != nil {
			return quoteValue{}, err
		}
		return quoteValue{amountOut: amountOut, gas: gas}, nil
	})
	if err != nil {
		return nil, err
	}

	return &types.QuoteResult{
		AmountOut:   value.amountOut,
		GasEstimate: value.gas,
		Pool:        pool,
	}, nil
}
