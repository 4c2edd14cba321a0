package evm

import (
	"bytes"
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"

	"github.com/tradeforge/swap-lib/common/types"
)

// GetTokenInfo fetches ERC-20 metadata for a token contract. Symbol and name
// fall back to the bytes32 variants used by some older tokens.
//
// Parameters:
// - ctx: the context for managing the request.
// - tokenAddress: the token contract address.
//
// Returns:
// - *types.TokenInfo: the token metadata.
// - error: an error if the decimals call fails (the one mandatory field).
func (e *evm) GetTokenInfo(ctx context.Context, tokenAddress string) (*types.TokenInfo, error) {
	token := common.HexToAddress(tokenAddress)

	return read(ctx, e, func(ctx context.Context, client *ethclient.Client) (*types.TokenInfo, error) {
		return fetchTokenInfo(ctx, client, token)
	})
}

// fetchTokenInfo loads token metadata through read-only contract calls.
func fetchTokenInfo(ctx context.Context, caller contractCaller, token common.Address) (*types.TokenInfo, error) {
	if err := dexABIs(); err != nil {
		return nil, errors.Wrap(err, "failed to parse dex abis")
	}

	info := &types.TokenInfo{Address: token.Hex()}

	call := func(parsed abi.ABI, method string) ([]interface{}, error) {
		data, err := parsed.Pack(method)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to pack %s data", method)
		}
		result, err := caller.CallContract(ctx, ethereum.CallMsg{To: &token, Data: data}, nil)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to call %s", method)
		}
		return parsed.Unpack(method, result)
	}

	values, err := call(erc20ABI, "decimals")
	if err != nil {
		return nil, err
	}
	decimals, ok := values[0].(uint8)
	if !ok {
		return nil, errors.Errorf("unexpected decimals result type %T", values[0])
	}
	info.Decimals = decimals

	if values, err := call(erc20ABI, "symbol"); err == nil {
		if symbol, ok := values[0].(string); ok {
			info.Symbol = symbol
		}
	} else if values, err := call(erc20Bytes32ABI, "symbol"); err == nil {
		if symbol, ok := bytes32ToString(values[0]); ok {
			info.Symbol = symbol
		}
	}

	if values, err := call(erc20ABI, "name"); err == nil {
		if name, ok := values[0].(string); ok {
			info.Name = name
		}
	} else if values, err := call(erc20Bytes32ABI, "name"); err == nil {
		if name, ok := bytes32ToString(values[0]); ok {
			info.Name = name
		}
	}

	if values, err := call(erc20ABI, "totalSupply"); err == nil {
		if supply, ok := values[0].(*big.Int); ok {
			info.TotalSupply = supply
		}
	}

	return info, nil
}

// bytes32ToString converts a right-padded bytes32 value to a string.
func bytes32ToString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case [32]byte:
		return string(bytes.TrimRight(v[:], "\x00")), true
	case []byte:
		return string(bytes.TrimRight(v, "\x00")), true
	default:
		return "", false
	}
}
