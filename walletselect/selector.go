package walletselect

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradeforge/swap-lib/common/types"
)

// Scoring weights. An imported wallet outranks a freshly generated one; a
// funded wallet earns up to 50 points proportional to balance; recently
// created wallets get a decaying bonus for their first 20 days.
const (
	importedScore  = 100.0
	balanceWeight  = 10.0
	balanceCap     = 50.0
	recencyWindow  = 20.0
	nativeDecimals = 18
)

// Score computes the priority score for a single wallet at the given time.
// The score is transient: it is recomputed on every selection run and never
// stored.
func Score(wallet types.WalletCandidate, now time.Time) float64 {
	score := 0.0
	if wallet.IsImported {
		score += importedScore
	}

	if wallet.NativeBalance != nil && wallet.NativeBalance.Sign() > 0 {
		balance, _ := decimal.NewFromBigInt(wallet.NativeBalance, -nativeDecimals).Float64()
		bonus := balance * balanceWeight
		if bonus > balanceCap {
			bonus = balanceCap
		}
		score += bonus
	}

	ageDays := now.Sub(wallet.CreatedAt).Hours() / 24
	if recency := recencyWindow - ageDays; recency > 0 {
		score += recency
	}

	return score
}

// Rank scores and sorts the wallets in descending priority order. Ties break
// by slot so the ranking is deterministic and idempotent: running it twice on
// unchanged input yields the same order. The input slice is not modified; the
// selector never mutates wallet state.
func Rank(wallets []types.WalletCandidate, now time.Time) []types.WalletCandidate {
	ranked := make([]types.WalletCandidate, len(wallets))
	copy(ranked, wallets)

	for i := range ranked {
		ranked[i].PriorityScore = Score(ranked[i], now)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].PriorityScore != ranked[j].PriorityScore {
			return ranked[i].PriorityScore > ranked[j].PriorityScore
		}
		return ranked[i].Slot < ranked[j].Slot
	})
	return ranked
}

// Select picks the wallet to auto-use for a trade when the user made no
// explicit choice: the highest-ranked wallet with a positive balance, or the
// highest-ranked wallet overall as a fallback. With the fallback the trade
// must still fail later at balance-check time; selection itself never errors
// on an unfunded account.
//
// Parameters:
// - wallets: the user's wallets on one chain.
// - now: the reference time for recency scoring.
//
// Returns:
// - *types.WalletCandidate: the selected wallet, nil if wallets is empty.
func Select(wallets []types.WalletCandidate, now time.Time) *types.WalletCandidate {
	if len(wallets) == 0 {
		return nil
	}

	ranked := Rank(wallets, now)
	for i := range ranked {
		if ranked[i].NativeBalance != nil && ranked[i].NativeBalance.Sign() > 0 {
			return &ranked[i]
		}
	}
	return &ranked[0]
}
