package solana

import (
	"context"
	"math/big"

	"github.com/pkg/errors"

	commonerrors "github.com/tradeforge/swap-lib/common/errors"
	"github.com/tradeforge/swap-lib/common/types"
)

// Swap execution on Solana is not implemented. Every mutating operation fails
// with a typed unsupported-chain error so callers can distinguish "not
// supported" from a transient failure. None of these methods simulate a
// submission or fabricate a transaction hash.

// Quote fails with ErrUnsupportedChain.
func (s *solana) Quote(ctx context.Context, tokenOut string, amountInNative *big.Int, feeTierBps uint32) (*types.QuoteResult, error) {
	return nil, errors.Wrap(commonerrors.ErrUnsupportedChain, "solana swap quoting not implemented")
}

// ExecuteBuy fails with ErrUnsupportedChain.
func (s *solana) ExecuteBuy(ctx context.Context, secret types.WalletSecret, req *types.SwapRequest) (*types.SwapResult, error) {
	return nil, errors.Wrap(commonerrors.ErrUnsupportedChain, "solana swap execution not implemented")
}

// TransferNative fails with ErrUnsupportedChain.
func (s *solana) TransferNative(ctx context.Context, secret types.WalletSecret, to string, amount *big.Int) (string, error) {
	return "", errors.Wrap(commonerrors.ErrUnsupportedChain, "solana transfers not implemented")
}
