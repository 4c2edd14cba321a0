package advisor

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/tradeforge/swap-lib/common/types"
)

// Slippage recommendations are bounded to [0.5%, 99%].
const (
	MinSlippageBps uint32 = 50
	MaxSlippageBps uint32 = 9900
)

// Liquidity bucket thresholds in USD.
var (
	microCeiling   = decimal.NewFromInt(1_000)
	veryLowCeiling = decimal.NewFromInt(10_000)
	lowCeiling     = decimal.NewFromInt(50_000)
	mediumCeiling  = decimal.NewFromInt(200_000)
	goodCeiling    = decimal.NewFromInt(1_000_000)
)

// Activity thresholds on 24h volume in USD.
var (
	lowActivityCeiling      = decimal.NewFromInt(10_000)
	moderateActivityCeiling = decimal.NewFromInt(100_000)
)

// Trade-size adjustment bounds in wei. A request above the large threshold
// widens the recommendation; one below the small threshold narrows it, never
// under the category floor.
var (
	largeTradeWei = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil) // 1 native
	smallTradeWei = new(big.Int).Exp(big.NewInt(10), big.NewInt(16), nil) // 0.01 native
)

// categoryProfile holds the per-bucket baseline used by the recommendation.
type categoryProfile struct {
	floorBps  uint32
	riskLevel string
	// maxTradeNative is the advised cap in native units, 0 for no cap.
	maxTradeNative string
}

var categoryProfiles = map[types.LiquidityCategory]categoryProfile{
	types.LiquidityMicro:   {floorBps: 5000, riskLevel: "extreme", maxTradeNative: "0.05"},
	types.LiquidityVeryLow: {floorBps: 3000, riskLevel: "very-high", maxTradeNative: "0.1"},
	types.LiquidityLow:     {floorBps: 1500, riskLevel: "high", maxTradeNative: "0.5"},
	types.LiquidityMedium:  {floorBps: 800, riskLevel: "moderate", maxTradeNative: "2"},
	types.LiquidityGood:    {floorBps: 500, riskLevel: "low", maxTradeNative: "10"},
	types.LiquidityHigh:    {floorBps: 300, riskLevel: "low", maxTradeNative: ""},
}

// Categorize buckets a token's liquidity into one of the six categories by
// fixed USD thresholds.
func Categorize(liquidityUSD decimal.Decimal) types.LiquidityCategory {
	switch {
	case liquidityUSD.LessThan(microCeiling):
		return types.LiquidityMicro
	case liquidityUSD.LessThan(veryLowCeiling):
		return types.LiquidityVeryLow
	case liquidityUSD.LessThan(lowCeiling):
		return types.LiquidityLow
	case liquidityUSD.LessThan(mediumCeiling):
		return types.LiquidityMedium
	case liquidityUSD.LessThan(goodCeiling):
		return types.LiquidityGood
	default:
		return types.LiquidityHigh
	}
}

// activityLevel labels trading activity from 24h volume.
func activityLevel(volume24hUSD decimal.Decimal) string {
	switch {
	case volume24hUSD.LessThan(lowActivityCeiling):
		return "low"
	case volume24hUSD.LessThan(moderateActivityCeiling):
		return "moderate"
	default:
		return "high"
	}
}

// Recommend classifies the token's market profile and returns a bounded
// slippage recommendation for a trade of the given native size. It is a pure
// function: stateless, deterministic, recomputed per quote request.
//
// The baseline is the category floor, raised for token taxes (at least
// max(buyTax, sellTax) + 1%) and scaled by trade size: large requests widen it
// by 20%, very small ones narrow it by 10% but never below the category floor.
//
// Parameters:
// - profile: the observed market data for the token.
// - tradeSizeNative: the requested native amount in wei, may be nil.
//
// Returns:
// - *types.LiquidityProfile: the classification with the recommended slippage.
func Recommend(profile types.MarketProfile, tradeSizeNative *big.Int) *types.LiquidityProfile {
	category := Categorize(profile.LiquidityUSD)
	baseline := categoryProfiles[category]

	recommended := baseline.floorBps

	// Token taxes eat into the output before slippage does: the bound must
	// clear the tax plus headroom or every swap reverts.
	maxTax := profile.BuyTaxBps
	if profile.SellTaxBps > maxTax {
		maxTax = profile.SellTaxBps
	}
	if maxTax > 0 && recommended < maxTax+100 {
		recommended = maxTax + 100
	}

	if tradeSizeNative != nil {
		if tradeSizeNative.Cmp(largeTradeWei) >= 0 {
			recommended = recommended * 12 / 10
		} else if tradeSizeNative.Sign() > 0 && tradeSizeNative.Cmp(smallTradeWei) <= 0 {
			narrowed := recommended * 9 / 10
			if narrowed >= baseline.floorBps {
				recommended = narrowed
			} else {
				recommended = baseline.floorBps
			}
		}
	}

	if recommended < MinSlippageBps {
		recommended = MinSlippageBps
	}
	if recommended > MaxSlippageBps {
		recommended = MaxSlippageBps
	}

	return &types.LiquidityProfile{
		Category:               category,
		RiskLevel:              baseline.riskLevel,
		ActivityLevel:          activityLevel(profile.Volume24hUSD),
		RecommendedSlippageBps: recommended,
		MaxRecommendedNative:   maxTradeWei(baseline.maxTradeNative),
	}
}

// DefaultProfile is the conservative fallback used when the market-data
// provider is unavailable: the token is treated as low-liquidity.
func DefaultProfile(tradeSizeNative *big.Int) *types.LiquidityProfile {
	return Recommend(types.MarketProfile{LiquidityUSD: veryLowCeiling}, tradeSizeNative)
}

// FinalSlippage resolves the slippage used for a trade: the advisor only ever
// raises, never lowers, an explicit caller choice.
func FinalSlippage(requestedBps, recommendedBps uint32) uint32 {
	if recommendedBps > requestedBps {
		return recommendedBps
	}
	return requestedBps
}

// maxTradeWei converts an advised native cap to wei, nil for no cap.
func maxTradeWei(native string) *big.Int {
	if native == "" {
		return nil
	}
	dec, err := decimal.NewFromString(native)
	if err != nil {
		return nil
	}
	return dec.Mul(decimal.New(1, 18)).BigInt()
}
