package chains

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/tradeforge/swap-lib/chains/unsupported"
	commontypes "github.com/tradeforge/swap-lib/common/types"
	"github.com/tradeforge/swap-lib/endpointpool"
)

// Registry manages the chain adapters the system can route trades to.
// Adapters are selected via this lookup table; a chain without an adapter
// resolves to an explicit unsupported stub that fails every call with a typed
// error.
type Registry struct {
	logger  *logrus.Logger
	factory Factory

	adaptersMutex sync.RWMutex
	adapters      map[commontypes.ChainID]commontypes.ChainAdapter
}

// NewRegistry creates an empty adapter registry backed by the given factory.
func NewRegistry(factory Factory, logger *logrus.Logger) *Registry {
	return &Registry{
		logger:   logger,
		factory:  factory,
		adapters: make(map[commontypes.ChainID]commontypes.ChainAdapter),
	}
}

// Add creates and registers an adapter for the configured chain.
//
// Parameters:
// - config: the chain configuration.
// - sets: the named RPC endpoint sets for the chain.
// - defaultStrategy: the strategy used when no tier-specific one is bound.
//
// Returns:
// - error: an error if the adapter cannot be created.
func (r *Registry) Add(
	config *commontypes.ChainConfig,
	sets map[string]*endpointpool.Set,
	defaultStrategy commontypes.ExecutionStrategy,
) error {
	adapter, err := r.factory.CreateChain(config, sets, defaultStrategy, r.logger)
	if err != nil {
		return err
	}

	r.adaptersMutex.Lock()
	r.adapters[config.ChainID] = adapter
	r.adaptersMutex.Unlock()

	r.logger.WithField("chain", config.ChainID).Info("Chain adapter registered")
	return nil
}

// Get returns the adapter for the chain, or an unsupported stub when the chain
// has no registered adapter.
func (r *Registry) Get(chainID commontypes.ChainID) commontypes.ChainAdapter {
	r.adaptersMutex.RLock()
	adapter, ok := r.adapters[chainID]
	r.adaptersMutex.RUnlock()

	if !ok {
		return unsupported.NewChain(chainID)
	}
	return adapter
}

// Remove removes the adapter for the chain.
func (r *Registry) Remove(chainID commontypes.ChainID) {
	r.adaptersMutex.Lock()
	delete(r.adapters, chainID)
	r.adaptersMutex.Unlock()
}
