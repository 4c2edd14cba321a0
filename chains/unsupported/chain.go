package unsupported

import (
	"context"
	"math/big"

	"github.com/pkg/errors"

	commonerrors "github.com/tradeforge/swap-lib/common/errors"
	"github.com/tradeforge/swap-lib/common/types"
)

// chain is the adapter returned for chains the system knows about but cannot
// operate on. It satisfies the full adapter contract and fails every call with
// a typed error rather than silently succeeding.
type chain struct {
	chainID types.ChainID
}

// NewChain creates an adapter that rejects every operation for the given chain.
func NewChain(chainID types.ChainID) types.ChainAdapter {
	return &chain{chainID: chainID}
}

func (c *chain) fail(operation string) error {
	return errors.Wrapf(commonerrors.ErrUnsupportedChain, "%s on chain %s", operation, c.chainID)
}

// GetTokenInfo fails with ErrUnsupportedChain.
func (c *chain) GetTokenInfo(ctx context.Context, tokenAddress string) (*types.TokenInfo, error) {
	return nil, c.fail("token lookup")
}

// Quote fails with ErrUnsupportedChain.
func (c *chain) Quote(ctx context.Context, tokenOut string, amountInNative *big.Int, feeTierBps uint32) (*types.QuoteResult, error) {
	return nil, c.fail("quote")
}

// ExecuteBuy fails with ErrUnsupportedChain.
func (c *chain) ExecuteBuy(ctx context.Context, secret types.WalletSecret, req *types.SwapRequest) (*types.SwapResult, error) {
	return nil, c.fail("swap execution")
}

// GetBalance fails with ErrUnsupportedChain.
func (c *chain) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	return nil, c.fail("balance lookup")
}

// TransferNative fails with ErrUnsupportedChain.
func (c *chain) TransferNative(ctx context.Context, secret types.WalletSecret, to string, amount *big.Int) (string, error) {
	return "", c.fail("native transfer")
}
