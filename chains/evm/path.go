package evm

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// Universal router command bytes.
const (
	commandV3SwapExactIn = 0x00
	commandWrapNative    = 0x0b
)

// Universal router recipient sentinels.
var (
	// recipientSender routes output to the transaction sender.
	recipientSender = common.HexToAddress("0x0000000000000000000000000000000000000001")
	// recipientRouter keeps funds in the router for the next command.
	recipientRouter = common.HexToAddress("0x0000000000000000000000000000000000000002")
)

// encodePath packs a swap path as a byte sequence of (token, feeTier, token, …)
// triples: each token as 20 bytes, each fee tier as a 3-byte big-endian value.
// This layout must match the router's documented calldata format exactly.
//
// Parameters:
// - tokens: the token addresses along the path, length n.
// - feeTiers: the fee tier between each consecutive token pair, length n-1.
//
// Returns:
// - []byte: the packed path.
// - error: an error if the lengths do not line up or a fee tier overflows 3 bytes.
func encodePath(tokens []common.Address, feeTiers []uint32) ([]byte, error) {
	if len(tokens) < 2 || len(feeTiers) != len(tokens)-1 {
		return nil, errors.Errorf("invalid path: %d tokens, %d fee tiers", len(tokens), len(feeTiers))
	}

	path := make([]byte, 0, len(tokens)*common.AddressLength+len(feeTiers)*3)
	for i, token := range tokens {
		path = append(path, token.Bytes()...)
		if i < len(feeTiers) {
			fee := feeTiers[i]
			if fee >= 1<<24 {
				return nil, errors.Errorf("fee tier %d overflows 3 bytes", fee)
			}
			path = append(path, byte(fee>>16), byte(fee>>8), byte(fee))
		}
	}
	return path, nil
}

// buildDirectSwapCall encodes a single-hop exactInputSingle router call. The
// parameter struct order (tokenIn, tokenOut, fee, recipient, deadline,
// amountIn, amountOutMinimum, sqrtPriceLimitX96) follows the router ABI.
func buildDirectSwapCall(tokenIn, tokenOut common.Address, feeTier uint32, recipient common.Address, deadline, amountIn, minOut *big.Int) ([]byte, error) {
	if err := dexABIs(); err != nil {
		return nil, errors.Wrap(err, "failed to parse dex abis")
	}

	params := struct {
		TokenIn           common.Address
		TokenOut          common.Address
		Fee               *big.Int
		Recipient         common.Address
		Deadline          *big.Int
		AmountIn          *big.Int
		AmountOutMinimum  *big.Int
		SqrtPriceLimitX96 *big.Int
	}{
		TokenIn:           tokenIn,
		TokenOut:          tokenOut,
		Fee:               big.NewInt(int64(feeTier)),
		Recipient:         recipient,
		Deadline:          deadline,
		AmountIn:          amountIn,
		AmountOutMinimum:  minOut,
		SqrtPriceLimitX96: big.NewInt(0),
	}

	data, err := routerABI.Pack("exactInputSingle", params)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack exactInputSingle data")
	}
	return data, nil
}

// buildUniversalSwapCall encodes an execute call on the command-based router:
// wrap the attached native value first, then swap it along the packed path.
func buildUniversalSwapCall(tokenIn, tokenOut common.Address, feeTier uint32, deadline, amountIn, minOut *big.Int) ([]byte, error) {
	if err := dexABIs(); err != nil {
		return nil, errors.Wrap(err, "failed to parse dex abis")
	}

	path, err := encodePath([]common.Address{tokenIn, tokenOut}, []uint32{feeTier})
	if err != nil {
		return nil, err
	}

	wrapInput, err := packValues(
		[]string{"address", "uint256"},
		recipientRouter, amountIn,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack wrap input")
	}

	swapInput, err := packValues(
		[]string{"address", "uint256", "uint256", "bytes", "bool"},
		recipientSender, amountIn, minOut, path, false,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack swap input")
	}

	commands := []byte{commandWrapNative, commandV3SwapExactIn}
	inputs := [][]byte{wrapInput, swapInput}

	data, err := universalRouterABI.Pack("execute", commands, inputs, deadline)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack execute data")
	}
	return data, nil
}

// packValues ABI-encodes a flat list of values by solidity type name.
func packValues(typeNames []string, values ...interface{}) ([]byte, error) {
	if len(typeNames) != len(values) {
		return nil, errors.Errorf("type/value count mismatch: %d vs %d", len(typeNames), len(values))
	}

	arguments := make(abi.Arguments, 0, len(typeNames))
	for _, name := range typeNames {
		argType, err := abi.NewType(name, "", nil)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid abi type %s", name)
		}
		arguments = append(arguments, abi.Argument{Type: argType})
	}
	return arguments.Pack(values...)
}
