package evm

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	commonerrors "github.com/tradeforge/swap-lib/common/errors"
	"github.com/tradeforge/swap-lib/common/types"
	"github.com/tradeforge/swap-lib/endpointpool"
)

// contractCaller is the subset of the RPC client used for read-only contract
// calls. ethclient.Client satisfies it; tests substitute a fake.
type contractCaller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// discoverPool probes the DEX factory for a (tokenIn, tokenOut) pool at each
// candidate fee tier in priority order. When several pools exist the one with
// the highest observed liquidity wins; with no liquidity data the first tier
// with a pool wins. Discovery is deterministic for a fixed factory state.
//
// Parameters:
// - ctx: the context for managing the request.
// - caller: the contract call backend.
// - config: the chain configuration holding factory address and fee tiers.
// - tokenIn: the input token address.
// - tokenOut: the output token address.
//
// Returns:
// - *types.PoolInfo: the selected pool.
// - error: ErrNoPoolFound if no tier has a pool.
func discoverPool(ctx context.Context, caller contractCaller, config *types.ChainConfig, tokenIn, tokenOut common.Address) (*types.PoolInfo, error) {
	if err := dexABIs(); err != nil {
		return nil, errors.Wrap(err, "failed to parse dex abis")
	}

	factory := common.HexToAddress(config.FactoryAddress)

	var candidates []*types.PoolInfo
	for _, feeTier := range config.FeeTiers {
		pool, err := getPool(ctx, caller, factory, tokenIn, tokenOut, feeTier)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to query factory for fee tier %d", feeTier)
		}
		if pool == (common.Address{}) {
			continue
		}

		candidate := &types.PoolInfo{
			PoolAddress: pool.Hex(),
			FeeTierBps:  feeTier,
		}
		if liquidity, err := poolLiquidity(ctx, caller, pool); err == nil {
			candidate.Liquidity = liquidity
		}
		candidates = append(candidates, candidate)
	}

	if len(candidates) == 0 {
		return nil, errors.Wrapf(commonerrors.ErrNoPoolFound, "no pool for %s/%s", tokenIn.Hex(), tokenOut.Hex())
	}

	best := candidates[0]
	for _, candidate := range candidates[1:] {
		if candidate.Liquidity != nil && (best.Liquidity == nil || candidate.Liquidity.Cmp(best.Liquidity) > 0) {
			best = candidate
		}
	}
	return best, nil
}

// getPool calls factory.getPool for a single fee tier.
func getPool(ctx context.Context, caller contractCaller, factory, tokenA, tokenB common.Address, feeTier uint32) (common.Address, error) {
	data, err := factoryABI.Pack("getPool", tokenA, tokenB, big.NewInt(int64(feeTier)))
	if err != nil {
		return common.Address{}, errors.Wrap(err, "failed to pack getPool data")
	}

	result, err := caller.CallContract(ctx, ethereum.CallMsg{To: &factory, Data: data}, nil)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "failed to call getPool")
	}

	values, err := factoryABI.Unpack("getPool", result)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "failed to unpack getPool result")
	}

	pool, ok := values[0].(common.Address)
	if !ok {
		return common.Address{}, errors.Errorf("unexpected getPool result type %T", values[0])
	}
	return pool, nil
}

// poolLiquidity reads the pool's in-range liquidity. Best effort: callers fall
// back to tier priority order when it fails.
func poolLiquidity(ctx context.Context, caller contractCaller, pool common.Address) (*big.Int, error) {
	data, err := poolABI.Pack("liquidity")
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack liquidity data")
	}

	result, err := caller.CallContract(ctx, ethereum.CallMsg{To: &pool, Data: data}, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to call liquidity")
	}

	values, err := poolABI.Unpack("liquidity", result)
	if err != nil {
		return nil, errors.Wrap(err, "failed to unpack liquidity result")
	}

	liquidity, ok := values[0].(*big.Int)
	if !ok {
		return nil, errors.Errorf("unexpected liquidity result type %T", values[0])
	}
	return liquidity, nil
}

// DiscoverPool finds the best pool for swapping wrapped native into tokenOut,
// dispatching the factory reads across the bound strategy's endpoint set.
func (e *evm) DiscoverPool(ctx context.Context, tokenOut string) (*types.PoolInfo, error) {
	tokenIn := common.HexToAddress(e.config.WrappedNative)
	out := common.HexToAddress(tokenOut)

	pool, err := read(ctx, e, func(ctx context.Context, client *ethclient.Client) (*types.PoolInfo, error) {
		pool, err := discoverPool(ctx, client, e.config, tokenIn, out)
		if err != nil {
			if errors.Is(err, commonerrors.ErrNoPoolFound) {
				return nil, endpointpool.Permanent(err)
			}
			return nil, err
		}
		return pool, nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.WithFields(logrus.Fields{
		"chain":   e.config.Name,
		"token":   tokenOut,
		"pool":    pool.PoolAddress,
		"feeTier": pool.FeeTierBps,
	}).Debug("Pool discovered")

	return pool, nil
}
