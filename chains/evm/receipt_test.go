package evm

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transferLog(token, from, to common.Address, amount *big.Int) *ethtypes.Log {
	return &ethtypes.Log{
		Address: token,
		Topics: []common.Hash{
			transferEventTopic,
			common.BytesToHash(common.LeftPadBytes(from.Bytes(), 32)),
			common.BytesToHash(common.LeftPadBytes(to.Bytes(), 32)),
		},
		Data: common.LeftPadBytes(amount.Bytes(), 32),
	}
}

func TestAmountReceived(t *testing.T) {
	token := common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F")
	pool := common.HexToAddress("0x11")
	recipient := common.HexToAddress("0x22")
	amount := big.NewInt(123456789)

	receipt := &ethtypes.Receipt{
		Logs: []*ethtypes.Log{
			transferLog(token, pool, recipient, amount),
		},
	}

	got := amountReceived(receipt, token, recipient)
	require.NotNil(t, got)
	assert.Zero(t, got.Cmp(amount))
}

func TestAmountReceivedFiltersByTokenAndRecipient(t *testing.T) {
	token := common.HexToAddress("0x01")
	otherToken := common.HexToAddress("0x02")
	pool := common.HexToAddress("0x11")
	recipient := common.HexToAddress("0x22")
	stranger := common.HexToAddress("0x33")

	receipt := &ethtypes.Receipt{
		Logs: []*ethtypes.Log{
			transferLog(otherToken, pool, recipient, big.NewInt(1)),
			transferLog(token, pool, stranger, big.NewInt(2)),
			transferLog(token, pool, recipient, big.NewInt(3)),
		},
	}

	got := amountReceived(receipt, token, recipient)
	require.NotNil(t, got)
	assert.Equal(t, int64(3), got.Int64())
}

func TestAmountReceivedNoMatch(t *testing.T) {
	receipt := &ethtypes.Receipt{}
	assert.Nil(t, amountReceived(receipt, common.HexToAddress("0x01"), common.HexToAddress("0x02")))
}

func TestApplyMultiplier(t *testing.T) {
	cases := []struct {
		price int64
		pct   uint64
		want  int64
	}{
		{100, 110, 110},
		{100, 150, 150},
		{100, 0, 100},
		{7, 125, 8}, // rounds down after scaling
	}

	for _, tc := range cases {
		got := applyMultiplier(big.NewInt(tc.price), tc.pct)
		assert.Equal(t, tc.want, got.Int64(), "price %d pct %d", tc.price, tc.pct)
	}
}
