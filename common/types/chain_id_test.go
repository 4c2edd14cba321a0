package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseChainID(t *testing.T) {
	assert.Equal(t, Ethereum, ParseChainID("ethereum"))
	assert.Equal(t, Base, ParseChainID("base"))
	assert.Equal(t, BSC, ParseChainID("bsc"))
	assert.Equal(t, Solana, ParseChainID("solana"))
	assert.Equal(t, UnknownChain, ParseChainID("dogecoin"))
	assert.Equal(t, UnknownChain, ParseChainID(""))
}

func TestChainMetadata(t *testing.T) {
	assert.Equal(t, "ETH", Ethereum.NativeSymbol())
	assert.Equal(t, "BNB", BSC.NativeSymbol())
	assert.Equal(t, "https://etherscan.io/tx/0xabc", Ethereum.TxExplorerURL("0xabc"))
	assert.Equal(t, "", UnknownChain.TxExplorerURL("0xabc"))
	assert.Equal(t, "", Ethereum.TxExplorerURL(""))
}

func TestTradeStateTerminal(t *testing.T) {
	assert.True(t, TradeConfirmed.Terminal())
	assert.True(t, TradeFailed.Terminal())
	assert.False(t, TradeCreated.Terminal())
	assert.False(t, TradeSubmitted.Terminal())
}
