package advisor

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradeforge/swap-lib/common/types"
)

func TestCategorize(t *testing.T) {
	cases := []struct {
		liquidityUSD int64
		want         types.LiquidityCategory
	}{
		{500, types.LiquidityMicro},
		{999, types.LiquidityMicro},
		{1_000, types.LiquidityVeryLow},
		{9_999, types.LiquidityVeryLow},
		{10_000, types.LiquidityLow},
		{49_999, types.LiquidityLow},
		{50_000, types.LiquidityMedium},
		{200_000, types.LiquidityGood},
		{1_000_000, types.LiquidityHigh},
		{50_000_000, types.LiquidityHigh},
	}

	for _, tc := range cases {
		got := Categorize(decimal.NewFromInt(tc.liquidityUSD))
		assert.Equal(t, tc.want, got, "liquidity %d", tc.liquidityUSD)
	}
}

func TestRecommendMonotonicity(t *testing.T) {
	// Deeper liquidity must never yield a wider recommendation.
	liquidities := []int64{500, 5_000, 30_000, 100_000, 500_000, 5_000_000}

	var previous uint32 = MaxSlippageBps + 1
	for _, liquidity := range liquidities {
		profile := Recommend(types.MarketProfile{
			LiquidityUSD: decimal.NewFromInt(liquidity),
		}, nil)

		assert.LessOrEqual(t, profile.RecommendedSlippageBps, previous,
			"recommendation widened at liquidity %d", liquidity)
		previous = profile.RecommendedSlippageBps
	}
}

func TestRecommendMicroLiquidity(t *testing.T) {
	profile := Recommend(types.MarketProfile{
		LiquidityUSD: decimal.NewFromInt(500),
	}, nil)

	require.Equal(t, types.LiquidityMicro, profile.Category)
	assert.GreaterOrEqual(t, profile.RecommendedSlippageBps, uint32(5000))
	assert.LessOrEqual(t, profile.RecommendedSlippageBps, MaxSlippageBps)
}

func TestRecommendTaxAdjustment(t *testing.T) {
	// A 20% sell tax must push the bound past the tax plus headroom even in a
	// deep pool.
	profile := Recommend(types.MarketProfile{
		LiquidityUSD: decimal.NewFromInt(5_000_000),
		SellTaxBps:   2000,
	}, nil)

	assert.GreaterOrEqual(t, profile.RecommendedSlippageBps, uint32(2100))
}

func TestRecommendTradeSizeAdjustment(t *testing.T) {
	market := types.MarketProfile{LiquidityUSD: decimal.NewFromInt(500_000)}

	base := Recommend(market, nil)
	require.Equal(t, uint32(500), base.RecommendedSlippageBps)

	large := Recommend(market, new(big.Int).Mul(big.NewInt(2), big.NewInt(1e18)))
	assert.Equal(t, uint32(600), large.RecommendedSlippageBps)

	// A tiny trade narrows the bound but never below the category floor.
	small := Recommend(market, big.NewInt(1e15))
	assert.Equal(t, uint32(500), small.RecommendedSlippageBps)
}

func TestRecommendBounds(t *testing.T) {
	// An extreme tax cannot push the recommendation past the ceiling.
	profile := Recommend(types.MarketProfile{
		LiquidityUSD: decimal.NewFromInt(500),
		BuyTaxBps:    9950,
	}, new(big.Int).Mul(big.NewInt(5), big.NewInt(1e18)))

	assert.Equal(t, MaxSlippageBps, profile.RecommendedSlippageBps)
}

func TestDefaultProfileIsConservative(t *testing.T) {
	profile := DefaultProfile(nil)

	require.NotNil(t, profile)
	assert.Equal(t, types.LiquidityLow, profile.Category)
	assert.GreaterOrEqual(t, profile.RecommendedSlippageBps, uint32(1500))
}

func TestFinalSlippage(t *testing.T) {
	// The advisor only ever raises an explicit choice.
	assert.Equal(t, uint32(3000), FinalSlippage(100, 3000))
	assert.Equal(t, uint32(5000), FinalSlippage(5000, 300))
	assert.Equal(t, uint32(800), FinalSlippage(800, 800))
	assert.Equal(t, uint32(1500), FinalSlippage(0, 1500))
}
