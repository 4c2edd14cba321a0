package evm

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tradeforge/swap-lib/chains/evm/signer"
	commonerrors "github.com/tradeforge/swap-lib/common/errors"
	"github.com/tradeforge/swap-lib/common/types"
)

// TransferNative sends native currency from the wallet behind secret to the
// given address. Like ExecuteBuy, the submission goes to exactly one provider.
//
// Parameters:
// - ctx: the context for managing the request.
// - secret: the wallet signing capability, used for this call only.
// - to: the recipient address.
// - amount: the amount to send in wei.
//
// Returns:
// - string: the transaction hash.
// - error: an error if the balance is insufficient or the submission fails.
func (e *evm) TransferNative(ctx context.Context, secret types.WalletSecret, to string, amount *big.Int) (string, error) {
	txSigner, err := signer.FromHex(secret.PrivateKeyHex)
	if err != nil {
		return "", errors.Wrap(err, "failed to create signer")
	}

	balance, err := e.GetBalance(ctx, txSigner.Address().Hex())
	if err != nil {
		return "", err
	}
	required := new(big.Int).Add(amount, e.gasReserve())
	if balance.Cmp(required) < 0 {
		return "", errors.Wrapf(commonerrors.ErrInsufficientBalance,
			"balance %s wei, need %s wei including gas reserve", balance, required)
	}

	signedTx, err := e.buildAndSign(ctx, txSigner, common.HexToAddress(to), amount, nil)
	if err != nil {
		return "", err
	}

	client, endpoint, err := e.submitClient()
	if err != nil {
		return "", err
	}
	if err := client.SendTransaction(ctx, signedTx); err != nil {
		e.logger.WithFields(logrus.Fields{
			"chain":    e.config.Name,
			"endpoint": endpoint.URL,
			"error":    err,
		}).Error("Failed to send native transfer")
		return "", errors.Wrap(err, "failed to send transaction")
	}

	return signedTx.Hash().Hex(), nil
}
