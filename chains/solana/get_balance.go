package solana

import (
	"context"
	"math/big"

	sol "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
)

// GetBalance returns the native SOL balance of the given address in lamports.
//
// Parameters:
// - ctx: the context for managing the request.
// - address: the base58-encoded account address.
//
// Returns:
// - *big.Int: the balance in lamports.
// - error: an error if the address is invalid or the lookup fails.
func (s *solana) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	pubKey, err := sol.PublicKeyFromBase58(address)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse account address")
	}

	result, err := s.rpcClient().GetBalance(ctx, pubKey, rpc.CommitmentConfirmed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get native SOL balance")
	}

	return new(big.Int).SetUint64(result.Value), nil
}
