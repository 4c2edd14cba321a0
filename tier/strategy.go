package tier

import "github.com/tradeforge/swap-lib/common/types"

// Strategy maps a tier to its concrete execution strategy. The mapping is pure
// and performs no I/O: two calls with the same tier always yield the same
// strategy.
//
// Parameters:
// - tierConfig: the tier to map.
//
// Returns:
// - types.ExecutionStrategy: the dispatch plan for the tier.
func Strategy(tierConfig *types.TierConfig) types.ExecutionStrategy {
	strategy := types.ExecutionStrategy{
		Speed:            tierConfig.Speed,
		EndpointSet:      tierConfig.EndpointSet,
		GasMultiplierPct: tierConfig.GasMultiplierPct,
		MEVProtection:    tierConfig.MEVProtection,
		Concurrency:      types.ConcurrencySingle,
	}

	switch tierConfig.Speed {
	case types.SpeedFast, types.SpeedLightning:
		strategy.Concurrency = types.ConcurrencyRace
	}

	if strategy.GasMultiplierPct == 0 {
		strategy.GasMultiplierPct = 100
	}
	return strategy
}
