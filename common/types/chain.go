package types

import (
	"context"
	"math/big"
	"time"
)

// RouterKind selects the calldata layout used to build swap transactions.
type RouterKind string

const (
	// RouterDirect encodes a single-hop exactInputSingle call on the swap router.
	RouterDirect RouterKind = "direct"
	// RouterUniversal encodes a command sequence (wrap native, then swap) on the
	// universal router, with the swap path packed as (token, fee, token) triples.
	RouterUniversal RouterKind = "universal"
)

// ChainConfig holds the configuration for a specific chain implementation.
//
// Fields:
// - ChainID: the chain identifier.
// - Name: the human-readable name of the chain.
// - NetworkID: the numeric network id used for transaction signing.
// - TxType: the type of transactions supported by the chain (legacy or EIP-1559).
// - WrappedNative: the wrapped-native token address for the chain.
// - FactoryAddress: the DEX factory contract address.
// - QuoterAddress: the DEX quoter contract address.
// - RouterAddress: the swap router contract address.
// - RouterKind: the calldata layout used by the router.
// - FeeTiers: candidate pool fee tiers in bps, probed in priority order.
// - GasReserve: the minimum native balance kept aside for gas.
// - GasCeiling: the hard gas limit used when estimation fails.
// - DeadlineWindow: how far in the future swap deadlines are set.
// - ConfirmationBudget: the total time allowed for confirmation polling.
type ChainConfig struct {
	ChainID            ChainID
	Name               string
	NetworkID          uint64
	TxType             uint64
	WrappedNative      string
	FactoryAddress     string
	QuoterAddress      string
	RouterAddress      string
	RouterKind         RouterKind
	FeeTiers           []uint32
	GasReserve         *big.Int
	GasCeiling         uint64
	DeadlineWindow     time.Duration
	ConfirmationBudget time.Duration
}

// TokenInfoProvider provides token metadata lookups.
type TokenInfoProvider interface {
	// GetTokenInfo fetches metadata for a token contract.
	//
	// Parameters:
	// - ctx: the context for managing the request.
	// - tokenAddress: the token contract address.
	//
	// Returns:
	// - *TokenInfo: the token metadata.
	// - error: an error if the lookup fails.
	GetTokenInfo(ctx context.Context, tokenAddress string) (*TokenInfo, error)
}

// SwapQuoter provides swap output estimation. Quotes are read-only and safe to retry.
type SwapQuoter interface {
	// Quote estimates the output amount for swapping native currency into a token.
	//
	// Parameters:
	// - ctx: the context for managing the request.
	// - tokenOut: the token contract address to buy.
	// - amountInNative: the native amount to swap, in wei.
	// - feeTierBps: the pool fee tier to quote against, or 0 to discover one.
	//
	// Returns:
	// - *QuoteResult: the estimated output and gas, with the pool used.
	// - error: an error if no pool exists or the quote fails.
	Quote(ctx context.Context, tokenOut string, amountInNative *big.Int, feeTierBps uint32) (*QuoteResult, error)
}

// SwapExecutor performs the mutating swap submission. ExecuteBuy is NOT safe to
// retry blindly: a reverted or timed-out submission may already have moved funds.
type SwapExecutor interface {
	// ExecuteBuy builds, signs, submits and confirms a buy of tokenOut with native currency.
	//
	// Parameters:
	// - ctx: the context for managing the request.
	// - secret: the signing capability for the wallet, provided at submission time only.
	// - req: the immutable swap request.
	//
	// Returns:
	// - *SwapResult: the terminal result of the swap attempt.
	// - error: an error classified by the kinds in common/errors.
	ExecuteBuy(ctx context.Context, secret WalletSecret, req *SwapRequest) (*SwapResult, error)
}

// BalanceProvider provides native balance lookups.
type BalanceProvider interface {
	// GetBalance returns the native balance of the given address in wei.
	GetBalance(ctx context.Context, address string) (*big.Int, error)
}

// NativeTransferrer provides plain native-currency transfers.
type NativeTransferrer interface {
	// TransferNative sends native currency from the wallet behind secret to the
	// given address and returns the transaction hash.
	TransferNative(ctx context.Context, secret WalletSecret, to string, amount *big.Int) (string, error)
}

// ChainAdapter combines all chain-specific functionality. Every supported chain
// implements the full interface; chains without execution support implement it
// too and fail every mutating call with a typed unsupported-chain error.
type ChainAdapter interface {
	TokenInfoProvider
	SwapQuoter
	SwapExecutor
	BalanceProvider
	NativeTransferrer
}

// StrategyBinder is implemented by adapters whose endpoint selection and gas
// policy vary with the execution strategy of the user's tier. Adapters that do
// not implement it are used as-is.
type StrategyBinder interface {
	// WithStrategy returns a copy of the adapter bound to the given strategy.
	// The underlying connections and endpoint health state are shared.
	WithStrategy(strategy ExecutionStrategy) ChainAdapter
}
