package types

import "math/big"

// TokenInfo represents token metadata fetched on demand. It is cacheable for
// the lifetime of a trade.
//
// Fields:
// - Address: the token contract address.
// - Decimals: the number of decimals the token uses.
// - Symbol: the token symbol.
// - Name: the token name.
// - TotalSupply: the total token supply in base units.
type TokenInfo struct {
	Address     string
	Decimals    uint8
	Symbol      string
	Name        string
	TotalSupply *big.Int
}

// PoolInfo represents a discovered liquidity pool. A PoolInfo is only valid for
// the (tokenIn, tokenOut) pair and chain it was discovered on and must not be
// reused across chains.
//
// Fields:
// - PoolAddress: the pool contract address.
// - FeeTierBps: the pool's trading fee tier in bps.
// - Liquidity: the pool's in-range liquidity at discovery time, nil if not probed.
type PoolInfo struct {
	PoolAddress string
	FeeTierBps  uint32
	Liquidity   *big.Int
}

// QuoteResult represents the estimated outcome of a swap.
//
// Fields:
// - AmountOut: the estimated output amount in token base units.
// - GasEstimate: the estimated gas for the swap call.
// - Pool: the pool the quote was taken against.
type QuoteResult struct {
	AmountOut   *big.Int
	GasEstimate uint64
	Pool        *PoolInfo
}
