package trademanager

import (
	"context"

	"github.com/tradeforge/swap-lib/common/types"
	"github.com/tradeforge/swap-lib/revenue"
)

// WalletStore provides the user's wallets and their signing secrets. Secrets
// are fetched at submission time only and never retained by the manager.
type WalletStore interface {
	// Wallets returns the user's wallets on the chain, with balances as the
	// store last observed them.
	Wallets(ctx context.Context, userID string, chainID types.ChainID) ([]types.WalletCandidate, error)

	// Secret returns the signing secret for one of the user's wallets.
	Secret(ctx context.Context, userID string, chainID types.ChainID, address string) (types.WalletSecret, error)
}

// MarketDataProvider reports observed market data for a token. A failing
// provider degrades trades to conservative defaults instead of blocking them.
type MarketDataProvider interface {
	// Profile returns the market profile for the token on the chain.
	Profile(ctx context.Context, chainID types.ChainID, tokenAddress string) (*types.MarketProfile, error)
}

// AdapterRegistry resolves chain adapters. Chains without an adapter resolve
// to a stub that fails every call with a typed unsupported-chain error.
type AdapterRegistry interface {
	Get(chainID types.ChainID) types.ChainAdapter
}

// TierResolver resolves the user's tier configuration. Resolution never
// fails: lookup problems degrade to the FREE tier.
type TierResolver interface {
	Resolve(ctx context.Context, userID string) *types.TierConfig
}

// RevenueLedger persists collected platform fees.
type RevenueLedger interface {
	RecordFee(ctx context.Context, record *revenue.FeeRecord) error
}
