package types

import "math/big"

// TierName represents a subscription tier.
type TierName string

const (
	// TierFree is the default tier for all users.
	TierFree TierName = "FREE"
	// TierPro is the mid subscription tier.
	TierPro TierName = "PRO"
	// TierWhale is the top subscription tier.
	TierWhale TierName = "WHALE"
)

// ExecutionSpeed represents the execution speed class of a tier.
type ExecutionSpeed string

const (
	// SpeedStandard uses a single conservative RPC endpoint.
	SpeedStandard ExecutionSpeed = "standard"
	// SpeedFast races a small pool of premium endpoints.
	SpeedFast ExecutionSpeed = "fast"
	// SpeedLightning races a larger multi-endpoint pool including low-latency endpoints.
	SpeedLightning ExecutionSpeed = "lightning"
)

// ConcurrencyMode represents how read requests are dispatched across endpoints.
type ConcurrencyMode string

const (
	// ConcurrencySingle sends each request to a single endpoint.
	ConcurrencySingle ConcurrencyMode = "single"
	// ConcurrencyRace fans a request out to all healthy endpoints and takes the
	// first successful response.
	ConcurrencyRace ConcurrencyMode = "race"
)

// MEVLevel represents the MEV protection applied to submissions.
type MEVLevel string

const (
	// MEVNone submits through the public mempool.
	MEVNone MEVLevel = "none"
	// MEVOptional uses a shielded relay when one is configured.
	MEVOptional MEVLevel = "optional"
	// MEVRequired always submits through a shielded relay.
	MEVRequired MEVLevel = "required"
)

// TierConfig describes a subscription tier. Tier is looked up per user at the
// start of a trade and is immutable for that trade's duration.
//
// Fields:
// - Name: the tier name.
// - TradeFeeBps: the platform fee in bps applied to the gross amount.
// - Speed: the execution speed class.
// - EndpointSet: the name of the RPC endpoint set used by this tier.
// - GasMultiplierPct: the gas price premium in percent (100 = no premium).
// - MEVProtection: the MEV protection level for submissions.
// - MaxTradeSizeNative: the maximum gross trade size in wei, nil for unlimited.
type TierConfig struct {
	Name               TierName
	TradeFeeBps        uint32
	Speed              ExecutionSpeed
	EndpointSet        string
	GasMultiplierPct   uint64
	MEVProtection      MEVLevel
	MaxTradeSizeNative *big.Int
}

// ExecutionStrategy is the concrete dispatch plan for a tier: which endpoints
// to use, how to price gas, and how to parallelize reads. Selection is a pure
// mapping from tier and performs no I/O.
type ExecutionStrategy struct {
	Speed            ExecutionSpeed
	EndpointSet      string
	GasMultiplierPct uint64
	MEVProtection    MEVLevel
	Concurrency      ConcurrencyMode
}

// FeeResult is the deterministic platform fee breakdown for a trade.
//
// Fields:
// - GrossAmount: the requested native amount in wei.
// - FeeAmount: grossAmount * feeBps / 10000, rounded down.
// - NetAmount: grossAmount - feeAmount; the amount the swap is built with.
// - FeeBps: the fee rate applied.
// - TierName: the tier the rate came from.
type FeeResult struct {
	GrossAmount *big.Int
	FeeAmount   *big.Int
	NetAmount   *big.Int
	FeeBps      uint32
	TierName    TierName
}
