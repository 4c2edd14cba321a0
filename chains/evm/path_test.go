package evm

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePathSingleHop(t *testing.T) {
	tokenIn := common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
	tokenOut := common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F")

	path, err := encodePath([]common.Address{tokenIn, tokenOut}, []uint32{3000})
	require.NoError(t, err)

	// 20 bytes tokenIn, 3 bytes fee big-endian, 20 bytes tokenOut.
	require.Len(t, path, 43)
	assert.Equal(t, tokenIn.Bytes(), path[:20])
	assert.Equal(t, []byte{0x00, 0x0b, 0xb8}, path[20:23])
	assert.Equal(t, tokenOut.Bytes(), path[23:])
}

func TestEncodePathFeeTierEncoding(t *testing.T) {
	a := common.HexToAddress("0x01")
	b := common.HexToAddress("0x02")

	cases := []struct {
		feeTier uint32
		want    []byte
	}{
		{100, []byte{0x00, 0x00, 0x64}},
		{500, []byte{0x00, 0x01, 0xf4}},
		{2500, []byte{0x00, 0x09, 0xc4}},
		{3000, []byte{0x00, 0x0b, 0xb8}},
		{10000, []byte{0x00, 0x27, 0x10}},
	}

	for _, tc := range cases {
		path, err := encodePath([]common.Address{a, b}, []uint32{tc.feeTier})
		require.NoError(t, err)
		assert.Equal(t, tc.want, path[20:23], "fee tier %d", tc.feeTier)
	}
}

func TestEncodePathMultiHop(t *testing.T) {
	a := common.HexToAddress("0x01")
	b := common.HexToAddress("0x02")
	c := common.HexToAddress("0x03")

	path, err := encodePath([]common.Address{a, b, c}, []uint32{500, 3000})
	require.NoError(t, err)

	require.Len(t, path, 20*3+3*2)
	assert.Equal(t, b.Bytes(), path[23:43])
	assert.Equal(t, []byte{0x00, 0x0b, 0xb8}, path[43:46])
}

func TestEncodePathInvalid(t *testing.T) {
	a := common.HexToAddress("0x01")
	b := common.HexToAddress("0x02")

	_, err := encodePath([]common.Address{a}, nil)
	assert.Error(t, err)

	_, err = encodePath([]common.Address{a, b}, []uint32{500, 3000})
	assert.Error(t, err)

	_, err = encodePath([]common.Address{a, b}, []uint32{1 << 24})
	assert.Error(t, err)
}

func TestMinOutput(t *testing.T) {
	cases := []struct {
		amountOut   int64
		slippageBps uint32
		want        int64
	}{
		{1_000_000, 300, 970_000},
		{1_000_000, 0, 1_000_000},
		{1_000_000, 10000, 0},
		{999, 250, 974}, // rounds down
		{1, 1, 0},
	}

	for _, tc := range cases {
		got := minOutput(big.NewInt(tc.amountOut), tc.slippageBps)
		assert.Equal(t, tc.want, got.Int64(), "amountOut %d slippage %d", tc.amountOut, tc.slippageBps)
	}
}

func TestBuildDirectSwapCall(t *testing.T) {
	require.NoError(t, dexABIs())

	tokenIn := common.HexToAddress("0x01")
	tokenOut := common.HexToAddress("0x02")
	recipient := common.HexToAddress("0x03")

	data, err := buildDirectSwapCall(tokenIn, tokenOut, 3000, recipient, big.NewInt(1_700_000_600), big.NewInt(1e18), big.NewInt(5e17))
	require.NoError(t, err)

	assert.Equal(t, routerABI.Methods["exactInputSingle"].ID, data[:4])

	values, err := routerABI.Methods["exactInputSingle"].Inputs.Unpack(data[4:])
	require.NoError(t, err)
	require.Len(t, values, 1)
}

func TestBuildUniversalSwapCall(t *testing.T) {
	require.NoError(t, dexABIs())

	tokenIn := common.HexToAddress("0x01")
	tokenOut := common.HexToAddress("0x02")

	data, err := buildUniversalSwapCall(tokenIn, tokenOut, 500, big.NewInt(1_700_000_600), big.NewInt(1e18), big.NewInt(9e17))
	require.NoError(t, err)

	assert.Equal(t, universalRouterABI.Methods["execute"].ID, data[:4])

	values, err := universalRouterABI.Methods["execute"].Inputs.Unpack(data[4:])
	require.NoError(t, err)
	require.Len(t, values, 3)

	commands, ok := values[0].([]byte)
	require.True(t, ok)
	assert.Equal(t, []byte{commandWrapNative, commandV3SwapExactIn}, commands)

	inputs, ok := values[1].([][]byte)
	require.True(t, ok)
	require.Len(t, inputs, 2)
}
