package types

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// LiquidityCategory buckets a token's liquidity depth.
type LiquidityCategory string

const (
	// LiquidityMicro is liquidity under 1K USD.
	LiquidityMicro LiquidityCategory = "micro"
	// LiquidityVeryLow is liquidity under 10K USD.
	LiquidityVeryLow LiquidityCategory = "very-low"
	// LiquidityLow is liquidity under 50K USD.
	LiquidityLow LiquidityCategory = "low"
	// LiquidityMedium is liquidity under 200K USD.
	LiquidityMedium LiquidityCategory = "medium"
	// LiquidityGood is liquidity under 1M USD.
	LiquidityGood LiquidityCategory = "good"
	// LiquidityHigh is liquidity of 1M USD and above.
	LiquidityHigh LiquidityCategory = "high"
)

// MarketProfile is the raw market data for a token as reported by the
// market-data provider. All USD values are best-effort observations.
//
// Fields:
// - LiquidityUSD: the pool liquidity in USD.
// - Volume24hUSD: the 24h trading volume in USD.
// - MarketCapUSD: the token market cap in USD.
// - BuyTaxBps: the token's buy tax in bps, 0 if none.
// - SellTaxBps: the token's sell tax in bps, 0 if none.
type MarketProfile struct {
	LiquidityUSD decimal.Decimal
	Volume24hUSD decimal.Decimal
	MarketCapUSD decimal.Decimal
	BuyTaxBps    uint32
	SellTaxBps   uint32
}

// LiquidityProfile is the advisor's classification of a token. It is derived
// purely from numeric thresholds and recomputed per quote request.
//
// Fields:
// - Category: the liquidity bucket.
// - RiskLevel: a coarse risk label derived from the category.
// - ActivityLevel: a coarse activity label derived from 24h volume.
// - RecommendedSlippageBps: the advised slippage bound in bps.
// - MaxRecommendedNative: the advised maximum trade size in wei, nil for no cap.
type LiquidityProfile struct {
	Category               LiquidityCategory
	RiskLevel              string
	ActivityLevel          string
	RecommendedSlippageBps uint32
	MaxRecommendedNative   *big.Int
}
