package types

// ChainID represents supported blockchain networks.
type ChainID string

const (
	// Ethereum represents the Ethereum mainnet.
	Ethereum ChainID = "ethereum"
	// Base represents the Base mainnet.
	Base ChainID = "base"
	// BSC represents the BNB Smart Chain mainnet.
	BSC ChainID = "bsc"
	// Solana represents the Solana mainnet.
	Solana ChainID = "solana"
	// UnknownChain represents an unknown or unsupported chain in the system.
	UnknownChain ChainID = "unknown"
)

// String converts ChainID to its string representation.
func (c ChainID) String() string {
	return string(c)
}

// ParseChainID converts a string to its ChainID representation.
func ParseChainID(s string) ChainID {
	switch s {
	case Ethereum.String():
		return Ethereum
	case Base.String():
		return Base
	case BSC.String():
		return BSC
	case Solana.String():
		return Solana
	default:
		return UnknownChain
	}
}

// chainMeta holds immutable per-chain presentation data loaded at startup.
type chainMeta struct {
	nativeSymbol string
	explorerURL  string
}

var chainMetadata = map[ChainID]chainMeta{
	Ethereum: {nativeSymbol: "ETH", explorerURL: "https://etherscan.io"},
	Base:     {nativeSymbol: "ETH", explorerURL: "https://basescan.org"},
	BSC:      {nativeSymbol: "BNB", explorerURL: "https://bscscan.com"},
	Solana:   {nativeSymbol: "SOL", explorerURL: "https://solscan.io"},
}

// NativeSymbol returns the native asset symbol for the chain.
func (c ChainID) NativeSymbol() string {
	return chainMetadata[c].nativeSymbol
}

// ExplorerURL returns the block explorer base URL for the chain.
func (c ChainID) ExplorerURL() string {
	return chainMetadata[c].explorerURL
}

// TxExplorerURL returns the explorer URL for a transaction hash on the chain.
func (c ChainID) TxExplorerURL(txHash string) string {
	base := chainMetadata[c].explorerURL
	if base == "" || txHash == "" {
		return ""
	}
	return base + "/tx/" + txHash
}
