package evm

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tradeforge/swap-lib/chains/evm/signer"
	commonerrors "github.com/tradeforge/swap-lib/common/errors"
	"github.com/tradeforge/swap-lib/common/types"
)

// ExecuteBuy builds, signs, submits and confirms a swap of native currency
// into req.TokenOut. The transaction is submitted to exactly one provider;
// only the surrounding reads (quote, balance, receipt polling) are dispatched
// across the endpoint set. A reverted or timed-out submission is surfaced with
// the transaction hash and never retried here: the funds may already have moved.
//
// Parameters:
// - ctx: the context for managing the request.
// - secret: the wallet signing capability, used for this call only.
// - req: the immutable swap request.
//
// Returns:
// - *types.SwapResult: the terminal result, with tx hash and actual amount out.
// - error: an error classified by the kinds in common/errors.
func (e *evm) ExecuteBuy(ctx context.Context, secret types.WalletSecret, req *types.SwapRequest) (*types.SwapResult, error) {
	txSigner, err := signer.FromHex(secret.PrivateKeyHex)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create signer")
	}

	// The balance check runs before anything is built or submitted so an
	// underfunded wallet fails fast without touching the mutating path.
	balance, err := e.GetBalance(ctx, txSigner.Address().Hex())
	if err != nil {
		return nil, err
	}
	required := new(big.Int).Add(req.AmountInNative, e.gasReserve())
	if balance.Cmp(required) < 0 {
		return nil, errors.Wrapf(commonerrors.ErrInsufficientBalance,
			"balance %s wei, need %s wei including gas reserve", balance, required)
	}

	quote, err := e.Quote(ctx, req.TokenOut, req.AmountInNative, req.FeeTierBps)
	if err != nil {
		return nil, err
	}
	minOut := minOutput(quote.AmountOut, req.SlippageBps)

	tokenIn := common.HexToAddress(e.config.WrappedNative)
	tokenOut := common.HexToAddress(req.TokenOut)
	recipient := txSigner.Address()
	deadline := big.NewInt(time.Now().Add(e.deadlineWindow()).Unix())

	var data []byte
	switch e.config.RouterKind {
	case types.RouterUniversal:
		data, err = buildUniversalSwapCall(tokenIn, tokenOut, quote.Pool.FeeTierBps, deadline, req.AmountInNative, minOut)
	default:
		data, err = buildDirectSwapCall(tokenIn, tokenOut, quote.Pool.FeeTierBps, recipient, deadline, req.AmountInNative, minOut)
	}
	if err != nil {
		return nil, err
	}

	signedTx, err := e.buildAndSign(ctx, txSigner, common.HexToAddress(e.config.RouterAddress), req.AmountInNative, data)
	if err != nil {
		return nil, err
	}

	client, endpoint, err := e.submitClient()
	if err != nil {
		return nil, err
	}
	if err := client.SendTransaction(ctx, signedTx); err != nil {
		e.logger.WithFields(logrus.Fields{
			"chain":    e.config.Name,
			"endpoint": endpoint.URL,
			"error":    err,
		}).Error("Failed to send swap transaction")
		return nil, errors.Wrap(err, "failed to send transaction")
	}

	txHash := signedTx.Hash()
	e.logger.WithFields(logrus.Fields{
		"chain":   e.config.Name,
		"txHash":  txHash.Hex(),
		"token":   req.TokenOut,
		"feeTier": quote.Pool.FeeTierBps,
		"mev":     e.strategy.MEVProtection,
	}).Info("Swap transaction submitted")

	receipt, err := e.waitReceipt(ctx, txHash)
	if err != nil {
		// The transaction is in flight: surface the hash so the outcome can be
		// verified manually. Resubmission here would risk a double spend.
		return &types.SwapResult{
			Success:     false,
			TxHash:      txHash.Hex(),
			ExplorerURL: e.config.ChainID.TxExplorerURL(txHash.Hex()),
		}, err
	}

	result := &types.SwapResult{
		TxHash:      txHash.Hex(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		GasUsed:     receipt.GasUsed,
		ExplorerURL: e.config.ChainID.TxExplorerURL(txHash.Hex()),
	}

	if receipt.Status != ethtypes.ReceiptStatusSuccessful {
		return result, errors.Wrapf(commonerrors.ErrTransactionReverted, "tx %s", txHash.Hex())
	}

	result.Success = true
	result.AmountOut = amountReceived(receipt, tokenOut, recipient)
	return result, nil
}

// buildAndSign assembles and signs the transaction against the submission
// endpoint's view of nonce and gas.
func (e *evm) buildAndSign(ctx context.Context, txSigner signer.Signer, to common.Address, value *big.Int, data []byte) (*ethtypes.Transaction, error) {
	client, _, err := e.submitClient()
	if err != nil {
		return nil, err
	}

	nonce, err := client.PendingNonceAt(ctx, txSigner.Address())
	if err != nil {
		return nil, errors.Wrap(err, "failed to get nonce")
	}

	gasPrice, err := e.gasPrice(ctx, client)
	if err != nil {
		return nil, err
	}

	gasLimit := e.estimateGasLimit(ctx, client, txSigner.Address(), to, value, data)

	var tx *ethtypes.Transaction
	if e.config.TxType == TxTypeEIP1559 {
		tx = ethtypes.NewTx(&ethtypes.DynamicFeeTx{
			ChainID:   new(big.Int).SetUint64(e.config.NetworkID),
			Nonce:     nonce,
			GasFeeCap: gasPrice.MaxFeePerGas,
			GasTipCap: gasPrice.MaxPriorityFeePerGas,
			Gas:       gasLimit,
			To:        &to,
			Value:     value,
			Data:      data,
		})
	} else {
		tx = ethtypes.NewTransaction(nonce, to, value, gasLimit, gasPrice.GasPrice, data)
	}

	return txSigner.SignTx(tx, new(big.Int).SetUint64(e.config.NetworkID))
}

// gasReserve returns the configured minimum native balance kept for gas.
func (e *evm) gasReserve() *big.Int {
	if e.config.GasReserve == nil {
		return big.NewInt(0)
	}
	return e.config.GasReserve
}

// deadlineWindow returns the configured swap deadline window.
func (e *evm) deadlineWindow() time.Duration {
	if e.config.DeadlineWindow <= 0 {
		return 10 * time.Minute
	}
	return e.config.DeadlineWindow
}
