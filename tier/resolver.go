package tier

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tradeforge/swap-lib/common/types"
)

const defaultCacheTTL = 5 * time.Minute

// Store looks up a user's subscription tier name from an external system.
type Store interface {
	// TierName returns the current tier name for the user.
	TierName(ctx context.Context, userID string) (types.TierName, error)
}

// Table resolves tier names to tier configurations.
type Table interface {
	// TierConfig returns the configuration for the named tier.
	TierConfig(name types.TierName) (*types.TierConfig, error)
}

type cachedTier struct {
	config    *types.TierConfig
	expiresAt time.Time
}

// Resolver resolves a user's tier with a short-lived per-user cache. A tier is
// resolved once at the start of a trade and stays fixed for that trade even if
// the subscription changes mid-flight. Lookup failures never block trading:
// the resolver degrades to the FREE tier and logs the failure.
type Resolver struct {
	logger *logrus.Logger
	store  Store
	table  Table
	ttl    time.Duration

	cacheMutex sync.RWMutex
	cache      map[string]cachedTier

	// now is swappable for tests.
	now func() time.Time
}

// NewResolver creates a tier resolver.
//
// Parameters:
// - store: the external tier lookup.
// - table: the tier configuration table.
// - ttl: the cache lifetime per user, defaultCacheTTL when 0.
// - logger: the logger for logging purposes.
//
// Returns:
// - *Resolver: the resolver.
func NewResolver(store Store, table Table, ttl time.Duration, logger *logrus.Logger) *Resolver {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Resolver{
		logger: logger,
		store:  store,
		table:  table,
		ttl:    ttl,
		cache:  make(map[string]cachedTier),
		now:    time.Now,
	}
}

// Resolve returns the tier configuration for the user. A cached entry is used
// until its TTL passes; on store or table failure the FREE tier applies.
func (r *Resolver) Resolve(ctx context.Context, userID string) *types.TierConfig {
	r.cacheMutex.RLock()
	entry, ok := r.cache[userID]
	r.cacheMutex.RUnlock()

	if ok && r.now().Before(entry.expiresAt) {
		return entry.config
	}

	config := r.lookup(ctx, userID)

	r.cacheMutex.Lock()
	r.cache[userID] = cachedTier{config: config, expiresAt: r.now().Add(r.ttl)}
	r.cacheMutex.Unlock()

	return config
}

// Invalidate drops the cached tier for the user. Call it on subscription
// changes so the next trade sees the new tier immediately.
func (r *Resolver) Invalidate(userID string) {
	r.cacheMutex.Lock()
	delete(r.cache, userID)
	r.cacheMutex.Unlock()
}

// lookup fetches the user's tier from the store, degrading to FREE on failure.
func (r *Resolver) lookup(ctx context.Context, userID string) *types.TierConfig {
	name := types.TierFree
	if r.store != nil {
		resolved, err := r.store.TierName(ctx, userID)
		if err != nil {
			r.logger.WithError(err).WithField("userID", userID).
				Warn("Tier lookup failed, falling back to FREE")
		} else if resolved != "" {
			name = resolved
		}
	}

	config, err := r.table.TierConfig(name)
	if err != nil {
		r.logger.WithError(err).WithField("tier", name).
			Warn("Tier not configured, falling back to FREE")
		config, err = r.table.TierConfig(types.TierFree)
		if err != nil {
			// Last resort: a built-in FREE tier so trading is never blocked
			// by configuration problems.
			return &types.TierConfig{
				Name:             types.TierFree,
				TradeFeeBps:      30,
				Speed:            types.SpeedStandard,
				GasMultiplierPct: 110,
				MEVProtection:    types.MEVNone,
			}
		}
	}
	return config
}
