package trademanager

import (
	"context"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tradeforge/swap-lib/advisor"
	commonerrors "github.com/tradeforge/swap-lib/common/errors"
	"github.com/tradeforge/swap-lib/common/types"
	"github.com/tradeforge/swap-lib/revenue"
	"github.com/tradeforge/swap-lib/tier"
	"github.com/tradeforge/swap-lib/walletselect"
)

// feeRecordTimeout bounds the fire-and-forget ledger write after confirmation.
const feeRecordTimeout = 15 * time.Second

// inflightTrade tracks one live trade for the in-flight guard and cancellation.
type inflightTrade struct {
	mutex     sync.Mutex
	cancelled bool
	submitted bool
}

// requestCancel marks the trade cancelled unless it was already submitted.
// It reports whether the cancellation took effect.
func (t *inflightTrade) requestCancel() bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.submitted {
		return false
	}
	t.cancelled = true
	return true
}

// beginSubmission locks in the point of no return. It reports false when the
// trade was cancelled first.
func (t *inflightTrade) beginSubmission() bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.cancelled {
		return false
	}
	t.submitted = true
	return true
}

// Manager orchestrates the full trade lifecycle: tier resolution, route
// discovery, slippage advice, fee deduction, wallet selection and on-chain
// execution. Each trade runs on its caller's goroutine; trades for different
// users share no lock beyond the in-flight table.
type Manager struct {
	logger   *logrus.Logger
	registry AdapterRegistry
	tiers    TierResolver
	wallets  WalletStore
	market   MarketDataProvider
	ledger   RevenueLedger

	inflightMutex sync.Mutex
	inflight      map[types.TradeKey]*inflightTrade
}

// NewManager creates a trade manager.
//
// Parameters:
// - registry: the chain adapter registry.
// - tiers: the tier resolver.
// - wallets: the wallet store.
// - market: the market-data provider, may be nil.
// - ledger: the revenue ledger, may be nil.
// - logger: the logger for logging purposes.
//
// Returns:
// - *Manager: the trade manager.
func NewManager(
	registry AdapterRegistry,
	tiers TierResolver,
	wallets WalletStore,
	market MarketDataProvider,
	ledger RevenueLedger,
	logger *logrus.Logger,
) *Manager {
	return &Manager{
		logger:   logger,
		registry: registry,
		tiers:    tiers,
		wallets:  wallets,
		market:   market,
		ledger:   ledger,
		inflight: make(map[types.TradeKey]*inflightTrade),
	}
}

// ExecuteTrade runs one buy trade end to end and returns the terminal trade
// record. The returned trade is always non-nil; on failure its State is FAILED
// and the error is a *commonerrors.TradeError carrying the failing state.
//
// Parameters:
// - ctx: the context for managing the request.
// - userID: the owning user.
// - chainID: the chain to execute on.
// - tokenOut: the token contract address to buy.
// - grossAmount: the requested native amount in wei, before the platform fee.
// - requestedSlippageBps: the user's slippage choice in bps, 0 to defer to the advisor.
// - walletAddress: the wallet to fund from, empty to auto-select.
//
// Returns:
// - *types.Trade: the terminal trade record.
// - error: the failure that terminated the trade, nil on success.
func (m *Manager) ExecuteTrade(
	ctx context.Context,
	userID string,
	chainID types.ChainID,
	tokenOut string,
	grossAmount *big.Int,
	requestedSlippageBps uint32,
	walletAddress string,
) (*types.Trade, error) {
	now := time.Now()
	trade := &types.Trade{
		ID:        uuid.NewString(),
		UserID:    userID,
		State:     types.TradeCreated,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if requestedSlippageBps > advisor.MaxSlippageBps {
		return m.fail(trade, commonerrors.ErrInvalidSlippage, nil)
	}
	if grossAmount == nil || grossAmount.Sign() <= 0 {
		return m.fail(trade, commonerrors.ErrInvalidConfig, nil)
	}

	guard, err := m.register(trade)
	if err != nil {
		return m.fail(trade, err, nil)
	}
	defer m.unregister(trade)

	tierConfig := m.tiers.Resolve(ctx, userID)
	trade.TierUsed = tierConfig.Name

	adapter := m.registry.Get(chainID)
	if binder, ok := adapter.(types.StrategyBinder); ok {
		adapter = binder.WithStrategy(tier.Strategy(tierConfig))
	}

	logger := m.logger.WithFields(logrus.Fields{
		"tradeID": trade.ID,
		"userID":  userID,
		"chain":   chainID,
		"tier":    tierConfig.Name,
	})

	// Route discovery and slippage resolution.
	quote, err := adapter.Quote(ctx, tokenOut, grossAmount, 0)
	if err != nil {
		return m.fail(trade, kindOf(err, commonerrors.ErrQuoteFailed), err)
	}
	trade.Pool = quote.Pool

	profile := m.liquidityProfile(ctx, chainID, tokenOut, grossAmount, logger)
	finalSlippage := advisor.FinalSlippage(requestedSlippageBps, profile.RecommendedSlippageBps)
	if profile.MaxRecommendedNative != nil && grossAmount.Cmp(profile.MaxRecommendedNative) > 0 {
		logger.WithFields(logrus.Fields{
			"liquidity":   profile.Category,
			"maxAdvised":  profile.MaxRecommendedNative,
			"grossAmount": grossAmount,
		}).Warn("Trade size exceeds advised maximum for pool liquidity")
	}
	m.setState(trade, types.TradeQuoted, logger)

	// Platform fee comes out of the gross amount; the swap runs on the rest.
	feeResult, err := tier.ComputeFee(tierConfig, grossAmount)
	if err != nil {
		return m.fail(trade, kindOf(err, commonerrors.ErrInvalidConfig), err)
	}
	trade.FeeResult = feeResult
	m.setState(trade, types.TradeFeeApplied, logger)

	wallet, err := m.selectWallet(ctx, userID, chainID, walletAddress)
	if err != nil {
		return m.fail(trade, kindOf(err, commonerrors.ErrWalletNotFound), err)
	}
	if wallet.NativeBalance != nil && wallet.NativeBalance.Cmp(grossAmount) < 0 {
		return m.fail(trade, commonerrors.ErrInsufficientBalance, nil)
	}

	trade.Request = &types.SwapRequest{
		ChainID:        chainID,
		WalletAddress:  wallet.Address,
		TokenOut:       tokenOut,
		AmountInNative: feeResult.NetAmount,
		SlippageBps:    finalSlippage,
		FeeTierBps:     quote.Pool.FeeTierBps,
	}
	m.setState(trade, types.TradeWalletValidated, logger)

	secret, err := m.wallets.Secret(ctx, userID, chainID, wallet.Address)
	if err != nil {
		return m.fail(trade, commonerrors.ErrWalletNotFound, err)
	}

	if !guard.beginSubmission() {
		return m.fail(trade, commonerrors.ErrTradeCancelled, nil)
	}

	result, err := adapter.ExecuteBuy(ctx, secret, trade.Request)
	if result != nil {
		trade.Result = result
		if result.TxHash != "" {
			m.setState(trade, types.TradeSubmitted, logger)
		}
	}
	if err != nil {
		tradeErr := commonerrors.NewTradeError(trade.ID, trade.State, kindOf(err, commonerrors.ErrQuoteFailed), err)
		if result != nil && result.TxHash != "" {
			tradeErr.WithTransaction(result.TxHash, result.ExplorerURL)
		}
		trade.State = types.TradeFailed
		trade.UpdatedAt = time.Now()
		trade.Err = tradeErr
		logger.WithError(err).Error("Trade failed")
		return trade, tradeErr
	}

	m.setState(trade, types.TradeConfirmed, logger)
	logger.WithFields(logrus.Fields{
		"txHash":    result.TxHash,
		"amountOut": result.AmountOut,
		"feeWei":    feeResult.FeeAmount,
	}).Info("Trade confirmed")

	m.recordFee(trade, chainID, result.TxHash, logger)
	return trade, nil
}

// Cancel requests cancellation of an in-flight trade. Cancellation succeeds
// only before the transaction is handed to a provider; afterwards the trade
// must run to its terminal state.
//
// Parameters:
// - userID: the owning user.
// - tradeID: the trade to cancel.
//
// Returns:
// - error: ErrTradeInFlight if the trade passed the point of no return or is unknown.
func (m *Manager) Cancel(userID, tradeID string) error {
	m.inflightMutex.Lock()
	guard, ok := m.inflight[types.TradeKey{UserID: userID, TradeID: tradeID}]
	m.inflightMutex.Unlock()

	if !ok || !guard.requestCancel() {
		return commonerrors.ErrTradeInFlight
	}
	return nil
}

// register adds the trade to the in-flight table.
func (m *Manager) register(trade *types.Trade) (*inflightTrade, error) {
	key := types.TradeKey{UserID: trade.UserID, TradeID: trade.ID}

	m.inflightMutex.Lock()
	defer m.inflightMutex.Unlock()

	if _, exists := m.inflight[key]; exists {
		return nil, commonerrors.ErrTradeInFlight
	}
	guard := &inflightTrade{}
	m.inflight[key] = guard
	return guard, nil
}

// unregister drops the trade from the in-flight table. Terminal trades live
// only in the returned record; there is no archival here.
func (m *Manager) unregister(trade *types.Trade) {
	m.inflightMutex.Lock()
	delete(m.inflight, types.TradeKey{UserID: trade.UserID, TradeID: trade.ID})
	m.inflightMutex.Unlock()
}

// setState advances the trade lifecycle.
func (m *Manager) setState(trade *types.Trade, state types.TradeState, logger *logrus.Entry) {
	trade.State = state
	trade.UpdatedAt = time.Now()
	logger.WithField("state", state).Debug("Trade state changed")
}

// fail terminates the trade with a typed error.
func (m *Manager) fail(trade *types.Trade, kind error, cause error) (*types.Trade, error) {
	tradeErr := commonerrors.NewTradeError(trade.ID, trade.State, kind, cause)
	trade.State = types.TradeFailed
	trade.UpdatedAt = time.Now()
	trade.Err = tradeErr

	m.logger.WithError(tradeErr).WithFields(logrus.Fields{
		"tradeID": trade.ID,
		"userID":  trade.UserID,
	}).Error("Trade failed")
	return trade, tradeErr
}

// liquidityProfile fetches market data and runs the advisor, degrading to the
// conservative default profile when the provider is unavailable.
func (m *Manager) liquidityProfile(
	ctx context.Context,
	chainID types.ChainID,
	tokenOut string,
	grossAmount *big.Int,
	logger *logrus.Entry,
) *types.LiquidityProfile {
	if m.market == nil {
		return advisor.DefaultProfile(grossAmount)
	}

	marketProfile, err := m.market.Profile(ctx, chainID, tokenOut)
	if err != nil || marketProfile == nil {
		logger.WithError(err).Warn("Market data unavailable, using conservative slippage defaults")
		return advisor.DefaultProfile(grossAmount)
	}
	return advisor.Recommend(*marketProfile, grossAmount)
}

// selectWallet resolves the funding wallet: the explicit choice when given,
// otherwise the highest-priority wallet from the selector.
func (m *Manager) selectWallet(
	ctx context.Context,
	userID string,
	chainID types.ChainID,
	walletAddress string,
) (*types.WalletCandidate, error) {
	candidates, err := m.wallets.Wallets(ctx, userID, chainID)
	if err != nil {
		return nil, err
	}

	if walletAddress != "" {
		for i := range candidates {
			if strings.EqualFold(candidates[i].Address, walletAddress) {
				return &candidates[i], nil
			}
		}
		return nil, commonerrors.ErrWalletNotFound
	}

	selected := walletselect.Select(candidates, time.Now())
	if selected == nil {
		return nil, commonerrors.ErrWalletNotFound
	}
	return selected, nil
}

// recordFee writes the collected fee to the ledger without blocking the trade.
func (m *Manager) recordFee(trade *types.Trade, chainID types.ChainID, txHash string, logger *logrus.Entry) {
	if m.ledger == nil || trade.FeeResult == nil {
		return
	}

	record := &revenue.FeeRecord{
		TradeID:   trade.ID,
		UserID:    trade.UserID,
		ChainID:   chainID,
		TierName:  trade.FeeResult.TierName,
		FeeBps:    trade.FeeResult.FeeBps,
		FeeWei:    trade.FeeResult.FeeAmount.String(),
		GrossWei:  trade.FeeResult.GrossAmount.String(),
		TxHash:    txHash,
		CreatedAt: time.Now(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), feeRecordTimeout)
		defer cancel()

		if err := m.ledger.RecordFee(ctx, record); err != nil {
			logger.WithError(err).Error("Failed to record platform fee")
		}
	}()
}

// kindOf extracts the sentinel kind from an adapter error, falling back to the
// given default when the error carries no known kind.
func kindOf(err error, fallback error) error {
	for _, kind := range []error{
		commonerrors.ErrUnsupportedChain,
		commonerrors.ErrNoPoolFound,
		commonerrors.ErrQuoteFailed,
		commonerrors.ErrInsufficientBalance,
		commonerrors.ErrProviderUnavailable,
		commonerrors.ErrTransactionReverted,
		commonerrors.ErrTimeout,
	} {
		if commonerrors.Is(err, kind) {
			return kind
		}
	}
	return fallback
}
