package evm

import (
	"bytes"
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "github.com/tradeforge/swap-lib/common/errors"
	"github.com/tradeforge/swap-lib/common/types"
)

// fakeCaller serves factory and pool reads from fixed in-memory state.
type fakeCaller struct {
	pools     map[uint32]common.Address
	liquidity map[common.Address]*big.Int
}

func (f *fakeCaller) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	switch {
	case bytes.Equal(msg.Data[:4], factoryABI.Methods["getPool"].ID):
		args, err := factoryABI.Methods["getPool"].Inputs.Unpack(msg.Data[4:])
		if err != nil {
			return nil, err
		}
		feeTier := uint32(args[2].(*big.Int).Uint64())
		return factoryABI.Methods["getPool"].Outputs.Pack(f.pools[feeTier])

	case bytes.Equal(msg.Data[:4], poolABI.Methods["liquidity"].ID):
		liquidity := f.liquidity[*msg.To]
		if liquidity == nil {
			liquidity = big.NewInt(0)
		}
		return poolABI.Methods["liquidity"].Outputs.Pack(liquidity)
	}
	return nil, errors.New("unexpected contract call")
}

func testChainConfig() *types.ChainConfig {
	return &types.ChainConfig{
		ChainID:        types.Ethereum,
		Name:           "Ethereum",
		WrappedNative:  "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2",
		FactoryAddress: "0x1F98431c8aD98523631AE4a59f267346ea31F984",
		QuoterAddress:  "0x61fFE014bA17989E743c5F6cB21bF9697530B21e",
		RouterAddress:  "0xE592427A0AEce92De3Edee1F18E0157C05861564",
		FeeTiers:       []uint32{500, 3000, 10000},
	}
}

func TestDiscoverPoolPicksHighestLiquidity(t *testing.T) {
	require.NoError(t, dexABIs())

	poolLow := common.HexToAddress("0x1111111111111111111111111111111111111111")
	poolDeep := common.HexToAddress("0x2222222222222222222222222222222222222222")
	caller := &fakeCaller{
		pools: map[uint32]common.Address{
			500:  poolLow,
			3000: poolDeep,
		},
		liquidity: map[common.Address]*big.Int{
			poolLow:  big.NewInt(100),
			poolDeep: big.NewInt(5000),
		},
	}

	pool, err := discoverPool(context.Background(), caller, testChainConfig(),
		common.HexToAddress("0x01"), common.HexToAddress("0x02"))
	require.NoError(t, err)

	assert.Equal(t, poolDeep.Hex(), pool.PoolAddress)
	assert.Equal(t, uint32(3000), pool.FeeTierBps)
	assert.Equal(t, int64(5000), pool.Liquidity.Int64())
}

func TestDiscoverPoolIsDeterministic(t *testing.T) {
	require.NoError(t, dexABIs())

	poolA := common.HexToAddress("0x3333333333333333333333333333333333333333")
	poolB := common.HexToAddress("0x4444444444444444444444444444444444444444")
	caller := &fakeCaller{
		pools: map[uint32]common.Address{
			500:   poolA,
			10000: poolB,
		},
		liquidity: map[common.Address]*big.Int{
			poolA: big.NewInt(900),
			poolB: big.NewInt(800),
		},
	}

	// The same factory state must always select the same pool.
	for i := 0; i < 5; i++ {
		pool, err := discoverPool(context.Background(), caller, testChainConfig(),
			common.HexToAddress("0x01"), common.HexToAddress("0x02"))
		require.NoError(t, err)
		assert.Equal(t, poolA.Hex(), pool.PoolAddress)
		assert.Equal(t, uint32(500), pool.FeeTierBps)
	}
}

func TestDiscoverPoolSingleTier(t *testing.T) {
	require.NoError(t, dexABIs())

	only := common.HexToAddress("0x5555555555555555555555555555555555555555")
	caller := &fakeCaller{
		pools: map[uint32]common.Address{10000: only},
	}

	pool, err := discoverPool(context.Background(), caller, testChainConfig(),
		common.HexToAddress("0x01"), common.HexToAddress("0x02"))
	require.NoError(t, err)

	assert.Equal(t, only.Hex(), pool.PoolAddress)
	assert.Equal(t, uint32(10000), pool.FeeTierBps)
}

func TestDiscoverPoolNoPool(t *testing.T) {
	require.NoError(t, dexABIs())

	caller := &fakeCaller{pools: map[uint32]common.Address{}}

	_, err := discoverPool(context.Background(), caller, testChainConfig(),
		common.HexToAddress("0x01"), common.HexToAddress("0x02"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, commonerrors.ErrNoPoolFound))
}
