package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradeforge/swap-lib/common/types"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
}

func TestDefaultChainConfig(t *testing.T) {
	cfg := Default()

	ethereum, err := cfg.ChainConfig(types.Ethereum)
	require.NoError(t, err)

	assert.Equal(t, uint64(1), ethereum.NetworkID)
	assert.Equal(t, types.RouterDirect, ethereum.RouterKind)
	assert.Equal(t, []uint32{500, 3000, 10000}, ethereum.FeeTiers)
	// 0.005 native reserved for gas.
	assert.Equal(t, "5000000000000000", ethereum.GasReserve.String())

	base, err := cfg.ChainConfig(types.Base)
	require.NoError(t, err)
	assert.Equal(t, types.RouterUniversal, base.RouterKind)

	bsc, err := cfg.ChainConfig(types.BSC)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), bsc.TxType)
	assert.Equal(t, []uint32{500, 2500, 10000}, bsc.FeeTiers)
}

func TestChainConfigUnknownChain(t *testing.T) {
	cfg := &Config{Chains: map[string]ChainSettings{}}

	_, err := cfg.ChainConfig(types.Ethereum)
	assert.Error(t, err)
}

func TestDefaultTierTable(t *testing.T) {
	cfg := Default()

	free, err := cfg.TierConfig(types.TierFree)
	require.NoError(t, err)
	assert.Equal(t, uint32(30), free.TradeFeeBps)
	assert.Equal(t, types.SpeedStandard, free.Speed)

	pro, err := cfg.TierConfig(types.TierPro)
	require.NoError(t, err)
	assert.Equal(t, uint32(20), pro.TradeFeeBps)
	assert.Equal(t, types.MEVOptional, pro.MEVProtection)

	whale, err := cfg.TierConfig(types.TierWhale)
	require.NoError(t, err)
	assert.Equal(t, uint32(10), whale.TradeFeeBps)
	assert.Equal(t, types.SpeedLightning, whale.Speed)
	assert.Equal(t, types.MEVRequired, whale.MEVProtection)
}

func TestValidateRejectsBadTier(t *testing.T) {
	cfg := Default()
	cfg.Tiers["BROKEN"] = TierSettings{TradeFeeBps: 10001}
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsUnknownEndpointSet(t *testing.T) {
	cfg := Default()
	cfg.Tiers["BROKEN"] = TierSettings{TradeFeeBps: 10, EndpointSet: "no-such-set"}
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsUnknownChain(t *testing.T) {
	cfg := Default()
	cfg.Chains["dogecoin"] = ChainSettings{Name: "Dogecoin"}
	assert.Error(t, cfg.Validate())
}

func TestNativeToWei(t *testing.T) {
	wei, err := nativeToWei("0.1")
	require.NoError(t, err)
	assert.Equal(t, "100000000000000000", wei.String())

	wei, err = nativeToWei("")
	require.NoError(t, err)
	assert.Zero(t, wei.Sign())

	_, err = nativeToWei("0.0000000000000000001")
	assert.Error(t, err)

	_, err = nativeToWei("not-a-number")
	assert.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	raw := `
[chains.ethereum]
name = "Ethereum"
network_id = 1
tx_type = 2
wrapped_native = "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"
factory_address = "0x1F98431c8aD98523631AE4a59f267346ea31F984"
quoter_address = "0x61fFE014bA17989E743c5F6cB21bF9697530B21e"
router_address = "0xE592427A0AEce92De3Edee1F18E0157C05861564"
router_kind = "direct"
fee_tiers = [500, 3000, 10000]
gas_reserve_native = "0.005"
gas_ceiling = 500000
deadline_minutes = 10
confirmation_minutes = 5

[tiers.FREE]
trade_fee_bps = 30
speed = "standard"
endpoint_set = "standard"
gas_multiplier_pct = 110
mev_protection = "none"

[endpoint_sets.standard]
urls = ["https://eth.llamarpc.com"]
`
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	chain, err := cfg.ChainConfig(types.Ethereum)
	require.NoError(t, err)
	assert.Equal(t, "Ethereum", chain.Name)
	assert.Equal(t, []string{"https://eth.llamarpc.com"}, cfg.EndpointSets["standard"].URLs)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
