package config

import (
	"math/big"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	commonerrors "github.com/tradeforge/swap-lib/common/errors"
	"github.com/tradeforge/swap-lib/common/types"
)

// Config is the static configuration for the swap library: chain definitions,
// tier table and RPC endpoint sets. It is loaded once at startup; dynamic
// endpoint inventory can additionally be loaded from the database (see dbconfig).
type Config struct {
	Chains       map[string]ChainSettings       `toml:"chains"`
	Tiers        map[string]TierSettings        `toml:"tiers"`
	EndpointSets map[string]EndpointSetSettings `toml:"endpoint_sets"`
}

// ChainSettings describes one chain in the configuration file.
type ChainSettings struct {
	Name                string   `toml:"name"`
	NetworkID           uint64   `toml:"network_id"`
	TxType              uint64   `toml:"tx_type"`
	WrappedNative       string   `toml:"wrapped_native"`
	FactoryAddress      string   `toml:"factory_address"`
	QuoterAddress       string   `toml:"quoter_address"`
	RouterAddress       string   `toml:"router_address"`
	RouterKind          string   `toml:"router_kind"`
	FeeTiers            []uint32 `toml:"fee_tiers"`
	GasReserveNative    string   `toml:"gas_reserve_native"`
	GasCeiling          uint64   `toml:"gas_ceiling"`
	DeadlineMinutes     uint64   `toml:"deadline_minutes"`
	ConfirmationMinutes uint64   `toml:"confirmation_minutes"`
}

// TierSettings describes one subscription tier in the configuration file.
type TierSettings struct {
	TradeFeeBps        uint32 `toml:"trade_fee_bps"`
	Speed              string `toml:"speed"`
	EndpointSet        string `toml:"endpoint_set"`
	GasMultiplierPct   uint64 `toml:"gas_multiplier_pct"`
	MEVProtection      string `toml:"mev_protection"`
	MaxTradeSizeNative string `toml:"max_trade_size_native"`
}

// EndpointSetSettings describes a named set of RPC endpoints.
type EndpointSetSettings struct {
	URLs []string `toml:"urls"`
}

// Load reads a TOML configuration file.
//
// Parameters:
// - path: the configuration file path.
//
// Returns:
// - *Config: the parsed configuration.
// - error: an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config file")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	for name, tier := range c.Tiers {
		if tier.TradeFeeBps > 10000 {
			return errors.Wrapf(commonerrors.ErrInvalidConfig, "tier %s: trade fee %d bps exceeds 10000", name, tier.TradeFeeBps)
		}
		if tier.EndpointSet != "" {
			if _, ok := c.EndpointSets[tier.EndpointSet]; !ok {
				return errors.Wrapf(commonerrors.ErrInvalidConfig, "tier %s: unknown endpoint set %q", name, tier.EndpointSet)
			}
		}
	}
	for name, chain := range c.Chains {
		if types.ParseChainID(name) == types.UnknownChain {
			return errors.Wrapf(commonerrors.ErrInvalidConfig, "unknown chain %q", name)
		}
		if len(chain.FeeTiers) == 0 && chain.FactoryAddress != "" {
			return errors.Wrapf(commonerrors.ErrInvalidConfig, "chain %s: no fee tiers configured", name)
		}
	}
	return nil
}

// ChainConfig converts a chain section to the runtime chain configuration.
//
// Parameters:
// - chainID: the chain to convert.
//
// Returns:
// - *types.ChainConfig: the runtime configuration.
// - error: an error if the chain is not configured or has invalid amounts.
func (c *Config) ChainConfig(chainID types.ChainID) (*types.ChainConfig, error) {
	settings, ok := c.Chains[chainID.String()]
	if !ok {
		return nil, errors.Wrapf(commonerrors.ErrChainNotFound, "chain %s not configured", chainID)
	}

	gasReserve, err := nativeToWei(settings.GasReserveNative)
	if err != nil {
		return nil, errors.Wrapf(err, "chain %s: invalid gas reserve", chainID)
	}

	return &types.ChainConfig{
		ChainID:            chainID,
		Name:               settings.Name,
		NetworkID:          settings.NetworkID,
		TxType:             settings.TxType,
		WrappedNative:      settings.WrappedNative,
		FactoryAddress:     settings.FactoryAddress,
		QuoterAddress:      settings.QuoterAddress,
		RouterAddress:      settings.RouterAddress,
		RouterKind:         types.RouterKind(settings.RouterKind),
		FeeTiers:           settings.FeeTiers,
		GasReserve:         gasReserve,
		GasCeiling:         settings.GasCeiling,
		DeadlineWindow:     time.Duration(settings.DeadlineMinutes) * time.Minute,
		ConfirmationBudget: time.Duration(settings.ConfirmationMinutes) * time.Minute,
	}, nil
}

// TierConfig converts a tier section to the runtime tier configuration.
func (c *Config) TierConfig(name types.TierName) (*types.TierConfig, error) {
	settings, ok := c.Tiers[string(name)]
	if !ok {
		return nil, errors.Wrapf(commonerrors.ErrInvalidConfig, "tier %s not configured", name)
	}

	var maxSize *big.Int
	if settings.MaxTradeSizeNative != "" {
		var err error
		maxSize, err = nativeToWei(settings.MaxTradeSizeNative)
		if err != nil {
			return nil, errors.Wrapf(err, "tier %s: invalid max trade size", name)
		}
	}

	return &types.TierConfig{
		Name:               name,
		TradeFeeBps:        settings.TradeFeeBps,
		Speed:              types.ExecutionSpeed(settings.Speed),
		EndpointSet:        settings.EndpointSet,
		GasMultiplierPct:   settings.GasMultiplierPct,
		MEVProtection:      types.MEVLevel(settings.MEVProtection),
		MaxTradeSizeNative: maxSize,
	}, nil
}

// nativeToWei converts a decimal native amount string to wei.
func nativeToWei(amount string) (*big.Int, error) {
	if amount == "" {
		return big.NewInt(0), nil
	}
	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid native amount %q", amount)
	}
	wei := dec.Mul(decimal.New(1, 18))
	if wei.Exponent() < 0 {
		return nil, errors.Errorf("native amount %q has sub-wei precision", amount)
	}
	return wei.BigInt(), nil
}

// Default returns the built-in mainnet configuration used when no file is provided.
func Default() *Config {
	return &Config{
		Chains: map[string]ChainSettings{
			types.Ethereum.String(): {
				Name:                "Ethereum",
				NetworkID:           1,
				TxType:              2,
				WrappedNative:       "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2",
				FactoryAddress:      "0x1F98431c8aD98523631AE4a59f267346ea31F984",
				QuoterAddress:       "0x61fFE014bA17989E743c5F6cB21bF9697530B21e",
				RouterAddress:       "0xE592427A0AEce92De3Edee1F18E0157C05861564",
				RouterKind:          string(types.RouterDirect),
				FeeTiers:            []uint32{500, 3000, 10000},
				GasReserveNative:    "0.005",
				GasCeiling:          500000,
				DeadlineMinutes:     10,
				ConfirmationMinutes: 5,
			},
			types.Base.String(): {
				Name:                "Base",
				NetworkID:           8453,
				TxType:              2,
				WrappedNative:       "0x4200000000000000000000000000000000000006",
				FactoryAddress:      "0x33128a8fC17869897dcE68Ed026d694621f6FDfD",
				QuoterAddress:       "0x3d4e44Eb1374240CE5F1B871ab261CD16335B76a",
				RouterAddress:       "0x3fC91A3afd70395Cd496C647d5a6CC9D4B2b7FAD",
				RouterKind:          string(types.RouterUniversal),
				FeeTiers:            []uint32{500, 3000, 10000},
				GasReserveNative:    "0.001",
				GasCeiling:          500000,
				DeadlineMinutes:     10,
				ConfirmationMinutes: 3,
			},
			types.BSC.String(): {
				Name:                "BNB Smart Chain",
				NetworkID:           56,
				TxType:              0,
				WrappedNative:       "0xbb4CdB9CBd36B01bD1cBaEBF2De08d9173bc095c",
				FactoryAddress:      "0xdB1d10011AD0Ff90774D0C6Bb92e5C5c8b4461F7",
				QuoterAddress:       "0xB048Bbc1Ee6b733FFfCFb9e9CeF7375518e25997",
				RouterAddress:       "0x13f4EA83D0bd40E75C8222255bc855a974568Dd4",
				RouterKind:          string(types.RouterDirect),
				FeeTiers:            []uint32{500, 2500, 10000},
				GasReserveNative:    "0.002",
				GasCeiling:          600000,
				DeadlineMinutes:     10,
				ConfirmationMinutes: 3,
			},
			types.Solana.String(): {
				Name:      "Solana",
				NetworkID: 0,
			},
		},
		Tiers: map[string]TierSettings{
			string(types.TierFree): {
				TradeFeeBps:      30,
				Speed:            string(types.SpeedStandard),
				EndpointSet:      "standard",
				GasMultiplierPct: 110,
				MEVProtection:    string(types.MEVNone),
			},
			string(types.TierPro): {
				TradeFeeBps:      20,
				Speed:            string(types.SpeedFast),
				EndpointSet:      "premium",
				GasMultiplierPct: 125,
				MEVProtection:    string(types.MEVOptional),
			},
			string(types.TierWhale): {
				TradeFeeBps:      10,
				Speed:            string(types.SpeedLightning),
				EndpointSet:      "lightning",
				GasMultiplierPct: 150,
				MEVProtection:    string(types.MEVRequired),
			},
		},
		EndpointSets: map[string]EndpointSetSettings{
			"standard":  {URLs: []string{"https://eth.llamarpc.com"}},
			"premium":   {URLs: []string{"https://rpc.flashbots.net", "https://eth.llamarpc.com"}},
			"lightning": {URLs: []string{"https://rpc.flashbots.net", "https://eth.llamarpc.com", "https://rpc.mevblocker.io"}},
		},
	}
}
