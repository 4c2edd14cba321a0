package tier

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "github.com/tradeforge/swap-lib/common/errors"
	"github.com/tradeforge/swap-lib/common/types"
)

func freeTier() *types.TierConfig {
	return &types.TierConfig{
		Name:             types.TierFree,
		TradeFeeBps:      30,
		Speed:            types.SpeedStandard,
		EndpointSet:      "standard",
		GasMultiplierPct: 110,
		MEVProtection:    types.MEVNone,
	}
}

func TestComputeFeeFreeTier(t *testing.T) {
	// 0.1 native on FREE: 0.0003 fee, 0.0997 swapped.
	gross, ok := new(big.Int).SetString("100000000000000000", 10)
	require.True(t, ok)

	result, err := ComputeFee(freeTier(), gross)
	require.NoError(t, err)

	assert.Equal(t, "300000000000000", result.FeeAmount.String())
	assert.Equal(t, "99700000000000000", result.NetAmount.String())
	assert.Equal(t, uint32(30), result.FeeBps)
	assert.Equal(t, types.TierFree, result.TierName)
}

func TestComputeFeeExactness(t *testing.T) {
	// Fee plus net must equal gross for amounts that do not divide evenly.
	amounts := []string{"1", "3", "9999", "1000000000000000001", "999999999999999999"}

	for _, raw := range amounts {
		gross, ok := new(big.Int).SetString(raw, 10)
		require.True(t, ok)

		result, err := ComputeFee(freeTier(), gross)
		require.NoError(t, err)

		sum := new(big.Int).Add(result.FeeAmount, result.NetAmount)
		assert.Zero(t, sum.Cmp(gross), "fee+net != gross for %s", raw)
		assert.GreaterOrEqual(t, result.FeeAmount.Sign(), 0)
		assert.GreaterOrEqual(t, result.NetAmount.Sign(), 0)
	}
}

func TestComputeFeeTierRates(t *testing.T) {
	gross := big.NewInt(1_000_000)

	cases := []struct {
		feeBps  uint32
		wantFee int64
	}{
		{30, 3000},
		{20, 2000},
		{10, 1000},
		{0, 0},
	}

	for _, tc := range cases {
		config := freeTier()
		config.TradeFeeBps = tc.feeBps

		result, err := ComputeFee(config, gross)
		require.NoError(t, err)
		assert.Equal(t, tc.wantFee, result.FeeAmount.Int64(), "fee bps %d", tc.feeBps)
	}
}

func TestComputeFeeRejectsNonPositive(t *testing.T) {
	_, err := ComputeFee(freeTier(), nil)
	assert.Error(t, err)

	_, err = ComputeFee(freeTier(), big.NewInt(0))
	assert.Error(t, err)

	_, err = ComputeFee(freeTier(), big.NewInt(-5))
	assert.Error(t, err)
}

func TestComputeFeeRejectsOverCap(t *testing.T) {
	config := freeTier()
	config.MaxTradeSizeNative = big.NewInt(1000)

	_, err := ComputeFee(config, big.NewInt(1001))
	require.Error(t, err)
	assert.True(t, commonerrors.Is(err, commonerrors.ErrInvalidConfig))

	_, err = ComputeFee(config, big.NewInt(1000))
	assert.NoError(t, err)
}

func TestStrategyMapping(t *testing.T) {
	standard := Strategy(&types.TierConfig{
		Name:             types.TierFree,
		Speed:            types.SpeedStandard,
		EndpointSet:      "standard",
		GasMultiplierPct: 110,
		MEVProtection:    types.MEVNone,
	})
	assert.Equal(t, types.ConcurrencySingle, standard.Concurrency)
	assert.Equal(t, uint64(110), standard.GasMultiplierPct)

	lightning := Strategy(&types.TierConfig{
		Name:             types.TierWhale,
		Speed:            types.SpeedLightning,
		EndpointSet:      "lightning",
		GasMultiplierPct: 150,
		MEVProtection:    types.MEVRequired,
	})
	assert.Equal(t, types.ConcurrencyRace, lightning.Concurrency)
	assert.Equal(t, "lightning", lightning.EndpointSet)
	assert.Equal(t, types.MEVRequired, lightning.MEVProtection)
}

func TestStrategyIsPure(t *testing.T) {
	config := &types.TierConfig{
		Name:             types.TierPro,
		Speed:            types.SpeedFast,
		EndpointSet:      "premium",
		GasMultiplierPct: 125,
	}

	first := Strategy(config)
	second := Strategy(config)
	assert.Equal(t, first, second)
}

func TestStrategyDefaultsGasMultiplier(t *testing.T) {
	strategy := Strategy(&types.TierConfig{Name: types.TierFree, Speed: types.SpeedStandard})
	assert.Equal(t, uint64(100), strategy.GasMultiplierPct)
}
