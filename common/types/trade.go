package types

import (
	"math/big"
	"time"
)

// TradeState represents the lifecycle state of a trade.
type TradeState string

const (
	// TradeCreated is the initial state of a trade.
	TradeCreated TradeState = "CREATED"
	// TradeQuoted is the state after route discovery and slippage resolution.
	TradeQuoted TradeState = "QUOTED"
	// TradeFeeApplied is the state after the platform fee has been computed.
	TradeFeeApplied TradeState = "FEE_APPLIED"
	// TradeWalletValidated is the state after wallet selection and balance checks.
	TradeWalletValidated TradeState = "WALLET_VALIDATED"
	// TradeSubmitted is the state after the transaction has been sent to a provider.
	// From here the trade can no longer be cancelled.
	TradeSubmitted TradeState = "SUBMITTED"
	// TradeConfirmed is the terminal success state.
	TradeConfirmed TradeState = "CONFIRMED"
	// TradeFailed is the terminal failure state, reachable from any state.
	TradeFailed TradeState = "FAILED"
)

// Terminal reports whether the state is terminal.
func (s TradeState) Terminal() bool {
	return s == TradeConfirmed || s == TradeFailed
}

// SwapRequest describes a single swap to execute. It is constructed by the
// trade manager and immutable once passed to a chain adapter.
//
// Fields:
// - ChainID: the chain to execute on.
// - WalletAddress: the funding wallet address.
// - TokenOut: the token contract address to buy.
// - AmountInNative: the native amount to swap, in wei (net of platform fee).
// - SlippageBps: the slippage tolerance in bps, already advisor-adjusted.
// - FeeTierBps: optional pool fee tier override; 0 means discover.
type SwapRequest struct {
	ChainID        ChainID
	WalletAddress  string
	TokenOut       string
	AmountInNative *big.Int
	SlippageBps    uint32
	FeeTierBps     uint32
}

// SwapResult is the terminal value of a swap attempt.
//
// Fields:
// - Success: whether the swap was mined successfully.
// - TxHash: the transaction hash, set whenever a transaction was submitted.
// - BlockNumber: the block the transaction was mined in.
// - GasUsed: the gas consumed by the transaction.
// - AmountOut: the actual output amount parsed from transfer logs, nil if unknown.
// - ExplorerURL: the block explorer URL for the transaction.
type SwapResult struct {
	Success     bool
	TxHash      string
	BlockNumber uint64
	GasUsed     uint64
	AmountOut   *big.Int
	ExplorerURL string
}

// TradeKey identifies a trade in flight. Typed on purpose: composite string
// keys hide construction bugs.
type TradeKey struct {
	UserID  string
	TradeID string
}

// Trade is the aggregate record spanning one user swap. It is created when a
// swap is requested, mutated only by the trade manager, and never mutated
// concurrently for the same id.
//
// Fields:
// - ID: the unique trade identifier.
// - UserID: the owning user.
// - Request: the swap request built for the chain adapter.
// - FeeResult: the platform fee breakdown applied to the gross amount.
// - TierUsed: the subscription tier the trade executed under.
// - Pool: the pool the route was built against.
// - Result: the terminal swap result, nil until submission completes.
// - State: the current lifecycle state.
// - Err: the failure that terminated the trade, nil on success.
// - CreatedAt: when the trade was created.
// - UpdatedAt: when the trade last changed state.
type Trade struct {
	ID        string
	UserID    string
	Request   *SwapRequest
	FeeResult *FeeResult
	TierUsed  TierName
	Pool      *PoolInfo
	Result    *SwapResult
	State     TradeState
	Err       error
	CreatedAt time.Time
	UpdatedAt time.Time
}
