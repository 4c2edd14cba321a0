package chains

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tradeforge/swap-lib/chains/evm"
	"github.com/tradeforge/swap-lib/chains/solana"
	commontypes "github.com/tradeforge/swap-lib/common/types"
	"github.com/tradeforge/swap-lib/endpointpool"
)

// ChainConstructor constructs a new chain adapter.
//
// Parameters:
// - config: the chain configuration.
// - sets: the named RPC endpoint sets available to execution strategies.
// - defaultStrategy: the strategy used when no tier-specific one is bound.
// - logger: the logger for logging purposes.
//
// Returns:
// - commontypes.ChainAdapter: the constructed adapter.
// - error: an error if the construction fails.
type ChainConstructor func(
	config *commontypes.ChainConfig,
	sets map[string]*endpointpool.Set,
	defaultStrategy commontypes.ExecutionStrategy,
	logger *logrus.Logger,
) (commontypes.ChainAdapter, error)

// Factory defines the interface for chain adapter creation.
type Factory interface {
	// RegisterConstructor registers a constructor for a chain.
	RegisterConstructor(chainID commontypes.ChainID, constructor ChainConstructor)

	// CreateChain creates an adapter for the configured chain.
	CreateChain(
		config *commontypes.ChainConfig,
		sets map[string]*endpointpool.Set,
		defaultStrategy commontypes.ExecutionStrategy,
		logger *logrus.Logger,
	) (commontypes.ChainAdapter, error)
}

type chainFactory struct {
	constructors      map[commontypes.ChainID]ChainConstructor
	constructorsMutex sync.RWMutex
}

// NewFactory creates a chain factory preloaded with the default constructors.
func NewFactory() Factory {
	factory := &chainFactory{
		constructors: make(map[commontypes.ChainID]ChainConstructor),
	}
	factory.registerConstructors()
	return factory
}

// RegisterConstructor registers a constructor for a chain.
func (f *chainFactory) RegisterConstructor(chainID commontypes.ChainID, constructor ChainConstructor) {
	f.constructorsMutex.Lock()
	defer f.constructorsMutex.Unlock()

	f.constructors[chainID] = constructor
}

// CreateChain creates an adapter for the configured chain.
func (f *chainFactory) CreateChain(
	config *commontypes.ChainConfig,
	sets map[string]*endpointpool.Set,
	defaultStrategy commontypes.ExecutionStrategy,
	logger *logrus.Logger,
) (commontypes.ChainAdapter, error) {
	f.constructorsMutex.RLock()
	constructor, exists := f.constructors[config.ChainID]
	f.constructorsMutex.RUnlock()

	if !exists {
		return nil, errors.Errorf("no constructor registered for chain %s", config.ChainID)
	}

	return constructor(config, sets, defaultStrategy, logger)
}

// registerConstructors registers the built-in chain constructors.
func (f *chainFactory) registerConstructors() {
	evmConstructor := func(
		config *commontypes.ChainConfig,
		sets map[string]*endpointpool.Set,
		defaultStrategy commontypes.ExecutionStrategy,
		logger *logrus.Logger,
	) (commontypes.ChainAdapter, error) {
		return evm.NewEvmChain(config, sets, defaultStrategy, logger)
	}

	f.RegisterConstructor(commontypes.Ethereum, evmConstructor)
	f.RegisterConstructor(commontypes.Base, evmConstructor)
	f.RegisterConstructor(commontypes.BSC, evmConstructor)

	f.RegisterConstructor(commontypes.Solana, func(
		config *commontypes.ChainConfig,
		sets map[string]*endpointpool.Set,
		defaultStrategy commontypes.ExecutionStrategy,
		logger *logrus.Logger,
	) (commontypes.ChainAdapter, error) {
		var rpcURL string
		if set, ok := sets[defaultStrategy.EndpointSet]; ok {
			if endpoint, err := set.Primary(); err == nil {
				rpcURL = endpoint.URL
			}
		}
		return solana.NewSolanaChain(config, rpcURL, logger)
	})
}
