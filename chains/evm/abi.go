package evm

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Contract ABIs for the DEX surface the router touches: the V3 factory for
// pool discovery, the pool itself for liquidity probing, the quoter for output
// estimation, and the two router layouts for transaction building.

const factoryABIJSON = `[
  {"inputs": [
    {"internalType": "address", "name": "tokenA", "type": "address"},
    {"internalType": "address", "name": "tokenB", "type": "address"},
    {"internalType": "uint24", "name": "fee", "type": "uint24"}
  ], "name": "getPool", "outputs": [{"internalType": "address", "name": "pool", "type": "address"}], "stateMutability": "view", "type": "function"}
]`

const poolABIJSON = `[
  {"inputs": [], "name": "liquidity", "outputs": [{"internalType": "uint128", "name": "", "type": "uint128"}], "stateMutability": "view", "type": "function"}
]`

const quoterABIJSON = `[
  {"inputs": [
    {"components": [
      {"internalType": "address", "name": "tokenIn", "type": "address"},
      {"internalType": "address", "name": "tokenOut", "type": "address"},
      {"internalType": "uint256", "name": "amountIn", "type": "uint256"},
      {"internalType": "uint24", "name": "fee", "type": "uint24"},
      {"internalType": "uint160", "name": "sqrtPriceLimitX96", "type": "uint160"}
    ], "internalType": "struct IQuoterV2.QuoteExactInputSingleParams", "name": "params", "type": "tuple"}
  ], "name": "quoteExactInputSingle", "outputs": [
    {"internalType": "uint256", "name": "amountOut", "type": "uint256"},
    {"internalType": "uint160", "name": "sqrtPriceX96After", "type": "uint160"},
    {"internalType": "uint32", "name": "initializedTicksCrossed", "type": "uint32"},
    {"internalType": "uint256", "name": "gasEstimate", "type": "uint256"}
  ], "stateMutability": "nonpayable", "type": "function"}
]`

const routerABIJSON = `[
  {"inputs": [
    {"components": [
      {"internalType": "address", "name": "tokenIn", "type": "address"},
      {"internalType": "address", "name": "tokenOut", "type": "address"},
      {"internalType": "uint24", "name": "fee", "type": "uint24"},
      {"internalType": "address", "name": "recipient", "type": "address"},
      {"internalType": "uint256", "name": "deadline", "type": "uint256"},
      {"internalType": "uint256", "name": "amountIn", "type": "uint256"},
      {"internalType": "uint256", "name": "amountOutMinimum", "type": "uint256"},
      {"internalType": "uint160", "name": "sqrtPriceLimitX96", "type": "uint160"}
    ], "internalType": "struct ISwapRouter.ExactInputSingleParams", "name": "params", "type": "tuple"}
  ], "name": "exactInputSingle", "outputs": [
    {"internalType": "uint256", "name": "amountOut", "type": "uint256"}
  ], "stateMutability": "payable", "type": "function"}
]`

const universalRouterABIJSON = `[
  {"inputs": [
    {"internalType": "bytes", "name": "commands", "type": "bytes"},
    {"internalType": "bytes[]", "name": "inputs", "type": "bytes[]"},
    {"internalType": "uint256", "name": "deadline", "type": "uint256"}
  ], "name": "execute", "outputs": [], "stateMutability": "payable", "type": "function"}
]`

const erc20ABIJSON = `[
  {"inputs": [], "name": "decimals", "outputs": [{"type": "uint8"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "symbol", "outputs": [{"type": "string"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "name", "outputs": [{"type": "string"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "totalSupply", "outputs": [{"type": "uint256"}], "stateMutability": "view", "type": "function"},
  {"inputs": [{"name": "account", "type": "address"}], "name": "balanceOf", "outputs": [{"type": "uint256"}], "stateMutability": "view", "type": "function"}
]`

// Some older tokens return symbol/name as bytes32 instead of string.
const erc20Bytes32ABIJSON = `[
  {"inputs": [], "name": "symbol", "outputs": [{"type": "bytes32"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "name", "outputs": [{"type": "bytes32"}], "stateMutability": "view", "type": "function"}
]`

var (
	factoryABI         abi.ABI
	poolABI            abi.ABI
	quoterABI          abi.ABI
	routerABI          abi.ABI
	universalRouterABI abi.ABI
	erc20ABI           abi.ABI
	erc20Bytes32ABI    abi.ABI
	abiParseOnce       sync.Once
	abiParseErr        error
)

// dexABIs parses the embedded ABI definitions once.
func dexABIs() error {
	abiParseOnce.Do(func() {
		parse := func(raw string, dst *abi.ABI) {
			if abiParseErr != nil {
				return
			}
			parsed, err := abi.JSON(strings.NewReader(raw))
			if err != nil {
				abiParseErr = err
				return
			}
			*dst = parsed
		}
		parse(factoryABIJSON, &factoryABI)
		parse(poolABIJSON, &poolABI)
		parse(quoterABIJSON, &quoterABI)
		parse(routerABIJSON, &routerABI)
		parse(universalRouterABIJSON, &universalRouterABI)
		parse(erc20ABIJSON, &erc20ABI)
		parse(erc20Bytes32ABIJSON, &erc20Bytes32ABI)
	})
	return abiParseErr
}
