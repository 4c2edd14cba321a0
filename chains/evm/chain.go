package evm

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tradeforge/swap-lib/common/types"
	"github.com/tradeforge/swap-lib/endpointpool"
)

const (
	// TxTypeLegacy represents the legacy transaction type.
	TxTypeLegacy = 0
	// TxTypeEIP1559 represents the EIP-1559 transaction type.
	TxTypeEIP1559 = 2

	// readTimeout bounds every read-path network call.
	readTimeout = 10 * time.Second
	// gasLimitBufferPct is the safety buffer applied over the simulated gas estimate.
	gasLimitBufferPct = 120
)

// clientCache lazily dials and caches one ethclient per endpoint URL. It is
// shared between strategy-bound copies of the adapter.
type clientCache struct {
	clientsMutex sync.RWMutex
	clients      map[string]*ethclient.Client
}

// client returns the cached client for the endpoint, dialing it on first use.
func (c *clientCache) client(endpoint *endpointpool.Endpoint) (*ethclient.Client, error) {
	c.clientsMutex.RLock()
	client, ok := c.clients[endpoint.URL]
	c.clientsMutex.RUnlock()
	if ok {
		return client, nil
	}

	c.clientsMutex.Lock()
	defer c.clientsMutex.Unlock()

	if client, ok := c.clients[endpoint.URL]; ok {
		return client, nil
	}

	client, err := ethclient.Dial(endpoint.URL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to dial %s", endpoint.URL)
	}
	c.clients[endpoint.URL] = client
	return client, nil
}

// close closes every dialed client.
func (c *clientCache) close() {
	c.clientsMutex.Lock()
	for url, client := range c.clients {
		client.Close()
		delete(c.clients, url)
	}
	c.clientsMutex.Unlock()
}

// evm represents the base EVM chain adapter. One adapter exists per chain; a
// strategy-bound shallow copy is taken per trade so that tier selection can
// change the endpoint set and gas policy without mutating shared state.
type evm struct {
	config          *types.ChainConfig
	logger          *logrus.Logger
	sets            map[string]*endpointpool.Set
	strategy        types.ExecutionStrategy
	defaultStrategy types.ExecutionStrategy
	cache           *clientCache
}

// NewEvmChain creates a new EVM chain adapter.
//
// Parameters:
// - config: the chain configuration.
// - sets: the named RPC endpoint sets available to execution strategies.
// - defaultStrategy: the strategy used when no tier-specific one is bound.
// - logger: the logger for logging events.
//
// Returns:
// - types.ChainAdapter: a new EVM chain adapter.
// - error: an error if the configuration is incomplete.
func NewEvmChain(
	config *types.ChainConfig,
	sets map[string]*endpointpool.Set,
	defaultStrategy types.ExecutionStrategy,
	logger *logrus.Logger,
) (types.ChainAdapter, error) {
	if config.FactoryAddress == "" || config.QuoterAddress == "" || config.RouterAddress == "" {
		return nil, errors.Errorf("chain %s: factory, quoter and router addresses are required", config.ChainID)
	}
	if len(config.FeeTiers) == 0 {
		return nil, errors.Errorf("chain %s: at least one fee tier is required", config.ChainID)
	}

	return &evm{
		config:          config,
		logger:          logger,
		sets:            sets,
		strategy:        defaultStrategy,
		defaultStrategy: defaultStrategy,
		cache:           &clientCache{clients: make(map[string]*ethclient.Client)},
	}, nil
}

// WithStrategy returns a copy of the adapter bound to the given execution
// strategy. The underlying client cache and endpoint health state are shared.
func (e *evm) WithStrategy(strategy types.ExecutionStrategy) types.ChainAdapter {
	bound := *e
	bound.strategy = strategy
	return &bound
}

// Close closes all dialed RPC clients.
func (e *evm) Close() {
	e.cache.close()
}

// set resolves the endpoint set for the bound strategy, falling back to the
// default strategy's set when the tier names one that is not configured.
func (e *evm) set() (*endpointpool.Set, error) {
	set, ok := e.sets[e.strategy.EndpointSet]
	if !ok {
		set, ok = e.sets[e.defaultStrategy.EndpointSet]
	}
	if !ok {
		return nil, errors.Errorf("chain %s: unknown endpoint set %q", e.config.ChainID, e.strategy.EndpointSet)
	}
	return set, nil
}

// read dispatches a read-only call across the strategy's endpoint set: raced
// for the fast execution modes, sequential otherwise.
func read[T any](ctx context.Context, e *evm, fn func(ctx context.Context, client *ethclient.Client) (T, error)) (T, error) {
	var zero T

	set, err := e.set()
	if err != nil {
		return zero, err
	}

	readCtx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	race := e.strategy.Concurrency == types.ConcurrencyRace
	return endpointpool.Dispatch(readCtx, set, race, func(ctx context.Context, endpoint *endpointpool.Endpoint) (T, error) {
		client, err := e.cache.client(endpoint)
		if err != nil {
			return zero, err
		}
		return fn(ctx, client)
	})
}

// submitClient returns the single client used for mutating submissions.
// Submissions are never raced across endpoints to avoid double-submission.
func (e *evm) submitClient() (*ethclient.Client, *endpointpool.Endpoint, error) {
	set, err := e.set()
	if err != nil {
		return nil, nil, err
	}

	endpoint, err := set.Primary()
	if err != nil {
		return nil, nil, err
	}

	client, err := e.cache.client(endpoint)
	if err != nil {
		return nil, nil, err
	}
	return client, endpoint, nil
}
