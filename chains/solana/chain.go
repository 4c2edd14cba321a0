package solana

import (
	"sync"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/sirupsen/logrus"

	"github.com/tradeforge/swap-lib/common/types"
)

// solana represents the Solana chain adapter. Read operations (balances, token
// metadata) are live; swap execution is not implemented yet, so every mutating
// call fails with a typed unsupported-chain error instead of pretending to
// succeed.
type solana struct {
	config *types.ChainConfig
	logger *logrus.Logger

	clientMutex sync.RWMutex
	client      *rpc.Client
}

// NewSolanaChain creates a new Solana chain adapter.
//
// Parameters:
// - config: the chain configuration.
// - rpcURL: the RPC endpoint URL.
// - logger: the logger for logging events.
//
// Returns:
// - types.ChainAdapter: a new Solana chain adapter.
// - error: an error if the client cannot be created.
func NewSolanaChain(config *types.ChainConfig, rpcURL string, logger *logrus.Logger) (types.ChainAdapter, error) {
	if rpcURL == "" {
		rpcURL = rpc.MainNetBeta_RPC
	}

	return &solana{
		config: config,
		logger: logger,
		client: rpc.New(rpcURL),
	}, nil
}

// rpcClient returns the RPC client under the read lock.
func (s *solana) rpcClient() *rpc.Client {
	s.clientMutex.RLock()
	defer s.clientMutex.RUnlock()
	return s.client
}
