package errors

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/tradeforge/swap-lib/common/types"
)

var (
	ErrUnsupportedChain    = errors.New("chain does not support this operation")
	ErrChainNotFound       = errors.New("chain not found")
	ErrNoPoolFound         = errors.New("no route found for token pair")
	ErrQuoteFailed         = errors.New("failed to quote swap")
	ErrInsufficientBalance = errors.New("insufficient balance for trade and gas reserve")
	ErrInvalidSlippage     = errors.New("slippage outside allowed range")
	ErrProviderUnavailable = errors.New("all rpc endpoints in the selected set failed")
	ErrTransactionReverted = errors.New("transaction mined but reverted")
	ErrTimeout             = errors.New("confirmation not observed within polling budget, check explorer")
	ErrTierLookupFailed    = errors.New("tier lookup failed")
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrTradeInFlight       = errors.New("trade is already being processed")
	ErrTradeCancelled      = errors.New("trade cancelled before submission")
	ErrWalletNotFound      = errors.New("no wallet available for user on chain")
)

// Is reports whether any error in err's chain matches the target kind.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// TradeError carries enough context for the caller to render a precise message
// without re-deriving it: the trade id, the state at time of failure, and the
// error kind. TxHash and ExplorerURL are set when a transaction was submitted,
// so an ambiguous outcome can be verified manually.
type TradeError struct {
	TradeID     string
	State       types.TradeState
	Kind        error
	TxHash      string
	ExplorerURL string
	cause       error
}

// NewTradeError wraps cause in a TradeError for the given trade id and state.
//
// Parameters:
// - tradeID: the trade identifier.
// - state: the trade state at time of failure.
// - kind: the sentinel error kind from this package.
// - cause: the underlying error, may be nil.
//
// Returns:
// - *TradeError: the wrapped error.
func NewTradeError(tradeID string, state types.TradeState, kind error, cause error) *TradeError {
	return &TradeError{
		TradeID: tradeID,
		State:   state,
		Kind:    kind,
		cause:   cause,
	}
}

// WithTransaction attaches the submitted transaction hash and explorer URL.
func (e *TradeError) WithTransaction(txHash, explorerURL string) *TradeError {
	e.TxHash = txHash
	e.ExplorerURL = explorerURL
	return e
}

// Error implements the error interface.
func (e *TradeError) Error() string {
	msg := fmt.Sprintf("trade %s failed in state %s: %v", e.TradeID, e.State, e.Kind)
	if e.cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.cause)
	}
	if e.TxHash != "" {
		msg = fmt.Sprintf("%s (tx %s)", msg, e.TxHash)
	}
	return msg
}

// Unwrap returns the error kind so callers can match with errors.Is.
func (e *TradeError) Unwrap() error {
	return e.Kind
}

// Cause returns the underlying error, nil if none.
func (e *TradeError) Cause() error {
	return e.cause
}
