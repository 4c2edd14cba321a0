package evm

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"

	commonerrors "github.com/tradeforge/swap-lib/common/errors"
	"github.com/tradeforge/swap-lib/endpointpool"
)

// transferEventTopic is keccak256("Transfer(address,address,uint256)").
var transferEventTopic = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

const (
	// confirmPollInitial is the first confirmation polling interval.
	confirmPollInitial = 2 * time.Second
	// confirmPollMax caps the exponential backoff between polls.
	confirmPollMax = 15 * time.Second
)

// waitReceipt polls for the transaction receipt with exponential backoff until
// the chain's confirmation budget is exhausted. An exhausted budget surfaces
// ErrTimeout: the outcome is unknown and must never be assumed failed or
// successful.
//
// Receipt polling is a read and may race across the strategy's endpoint set;
// only the original submission is pinned to a single provider.
func (e *evm) waitReceipt(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error) {
	budget := e.config.ConfirmationBudget
	if budget <= 0 {
		budget = 3 * time.Minute
	}

	deadline := time.Now().Add(budget)
	interval := confirmPollInitial

	for {
		receipt, err := read(ctx, e, func(ctx context.Context, client *ethclient.Client) (*ethtypes.Receipt, error) {
			receipt, err := client.TransactionReceipt(ctx, txHash)
			if err != nil {
				if errors.Is(err, ethereum.NotFound) {
					// A valid "not mined yet" answer, not an endpoint failure.
					return nil, endpointpool.Permanent(ethereum.NotFound)
				}
				return nil, errors.Wrap(err, "failed to get transaction receipt")
			}
			return receipt, nil
		})
		if err == nil {
			return receipt, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if time.Now().After(deadline) {
			return nil, errors.Wrapf(commonerrors.ErrTimeout, "tx %s not confirmed within %s", txHash.Hex(), budget)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}

		interval *= 2
		if interval > confirmPollMax {
			interval = confirmPollMax
		}
	}
}

// amountReceived parses the recipient's token-transfer event from a successful
// receipt to report the actual amount received. Returns nil when no matching
// transfer log is found; the caller reports the amount as unknown.
func amountReceived(receipt *ethtypes.Receipt, token, recipient common.Address) *big.Int {
	for _, log := range receipt.Logs {
		if log.Address != token || len(log.Topics) != 3 {
			continue
		}
		if log.Topics[0] != transferEventTopic {
			continue
		}
		to := common.BytesToAddress(log.Topics[2].Bytes())
		if to != recipient {
			continue
		}
		return new(big.Int).SetBytes(log.Data)
	}
	return nil
}
