package solana

import (
	"context"
	"math/big"

	sol "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"

	"github.com/tradeforge/swap-lib/common/types"
)

// GetTokenInfo fetches SPL token mint data. Decimals and total supply come
// from the mint account; symbol and name live off-chain in token metadata and
// are left empty here.
//
// Parameters:
// - ctx: the context for managing the request.
// - tokenAddress: the base58-encoded mint address.
//
// Returns:
// - *types.TokenInfo: the token metadata.
// - error: an error if the mint address is invalid or the lookup fails.
func (s *solana) GetTokenInfo(ctx context.Context, tokenAddress string) (*types.TokenInfo, error) {
	mint, err := sol.PublicKeyFromBase58(tokenAddress)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse mint address")
	}

	supply, err := s.rpcClient().GetTokenSupply(ctx, mint, rpc.CommitmentConfirmed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get token supply")
	}

	totalSupply, ok := new(big.Int).SetString(supply.Value.Amount, 10)
	if !ok {
		return nil, errors.Errorf("invalid token supply amount %q", supply.Value.Amount)
	}

	return &types.TokenInfo{
		Address:     tokenAddress,
		Decimals:    supply.Value.Decimals,
		TotalSupply: totalSupply,
	}, nil
}
