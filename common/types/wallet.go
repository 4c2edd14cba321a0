package types

import (
	"math/big"
	"time"
)

// WalletCandidate represents one of a user's wallets on a chain, as returned by
// the wallet store for selection.
//
// Fields:
// - Slot: the wallet's position in the user's wallet list.
// - Address: the wallet address.
// - NativeBalance: the wallet's native balance in wei.
// - IsImported: whether the wallet was imported rather than freshly generated.
// - CreatedAt: when the wallet was created or imported.
// - PriorityScore: the selection score; computed transiently, never stored.
type WalletCandidate struct {
	Slot          int
	Address       string
	NativeBalance *big.Int
	IsImported    bool
	CreatedAt     time.Time
	PriorityScore float64
}

// WalletSecret is the decrypted signing capability for a wallet. It is handed
// to a chain adapter at submission time only and must not be retained.
type WalletSecret struct {
	// Address is the wallet address the key belongs to.
	Address string
	// PrivateKeyHex is the hex-encoded private key for EVM chains, or the
	// base58-encoded key for Solana.
	PrivateKeyHex string
}
