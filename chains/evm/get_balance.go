package evm

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
)

// GetBalance returns the native balance of the given address in wei.
//
// Parameters:
// - ctx: the context for managing the request.
// - address: the address to check the balance for.
//
// Returns:
// - *big.Int: the native balance.
// - error: an error if every endpoint in the strategy's set fails.
func (e *evm) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	account := common.HexToAddress(address)

	return read(ctx, e, func(ctx context.Context, client *ethclient.Client) (*big.Int, error) {
		balance, err := client.BalanceAt(ctx, account, nil)
		if err != nil {
			return nil, errors.Wrap(err, "failed to get native balance")
		}
		return balance, nil
	})
}
