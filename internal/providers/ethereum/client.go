package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/feral-file/ff-marketplace-indexer/internal/adapter"
	"github.com/feral-file/ff-marketplace-indexer/internal/block"
	"github.com/feral-file/ff-marketplace-indexer/internal/logger"
)

// nftABI holds the read-only ERC-721 and ERC-1155 views used for metadata resolution
var nftABI = mustParseABI(`[
	{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"tokenURI","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"ownerOf","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"id","type":"uint256"}],"name":"uri","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"name","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"}
]`)

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(fmt.Sprintf("failed to parse ABI: %v", err))
	}
	return parsed
}

// ChainReader is the read side of the chain used by the sync pipeline
//
//go:generate mockgen -source=client.go -destination=../../mocks/chain_reader.go -package=mocks -mock_names=ChainReader=MockChainReader
type ChainReader interface {
	// CurrentBlockNumber returns the chain head, served through a short-lived cache
	CurrentBlockNumber(ctx context.Context) (uint64, error)

	// GetLogs returns the logs emitted by address in the inclusive block range
	GetLogs(ctx context.Context, address common.Address, fromBlock, toBlock uint64) ([]types.Log, error)

	// SubscribeLogs pushes new logs emitted by address with one of the given event ids into ch
	SubscribeLogs(ctx context.Context, address common.Address, eventIDs []common.Hash, ch chan<- types.Log) (ethereum.Subscription, error)

	// ERC721TokenURI fetches the tokenURI from an ERC721 contract
	ERC721TokenURI(ctx context.Context, contractAddress, tokenID string) (string, error)

	// ERC721OwnerOf fetches the current owner of an ERC721 token
	ERC721OwnerOf(ctx context.Context, contractAddress, tokenID string) (string, error)

	// ERC1155URI fetches the uri from an ERC1155 contract
	ERC1155URI(ctx context.Context, contractAddress, tokenID string) (string, error)

	// ContractName fetches the collection name of an NFT contract
	ContractName(ctx context.Context, contractAddress string) (string, error)

	// ContractSymbol fetches the collection symbol of an NFT contract
	ContractSymbol(ctx context.Context, contractAddress string) (string, error)

	// Close closes the underlying connections
	Close()
}

// ClientConfig holds the tuning of the chain reader
type ClientConfig struct {
	// LogsPageSize is the initial block span of one eth_getLogs request
	LogsPageSize uint64
	// RateLimit is the number of RPC calls per second, 0 disables limiting
	RateLimit float64
	Burst     int
}

type client struct {
	rpc     adapter.EthClient
	ws      adapter.EthClient
	head    block.HeadProvider
	limiter *rate.Limiter
	config  ClientConfig
}

// NewClient creates a chain reader. ws may be nil, in which case subscriptions use rpc.
func NewClient(cfg ClientConfig, rpc adapter.EthClient, ws adapter.EthClient, head block.HeadProvider) ChainReader {
	if cfg.LogsPageSize == 0 {
		cfg.LogsPageSize = 1000
	}
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &client{
		rpc:     rpc,
		ws:      ws,
		head:    head,
		limiter: rate.NewLimiter(limit, burst),
		config:  cfg,
	}
}

func (c *client) CurrentBlockNumber(ctx context.Context) (uint64, error) {
	return c.head.GetLatestBlock(ctx)
}

func (c *client) GetLogs(ctx context.Context, address common.Address, fromBlock, toBlock uint64) ([]types.Log, error) {
	if fromBlock > toBlock {
		return nil, nil
	}

	query := ethereum.FilterQuery{Addresses: []common.Address{address}}
	stepSize := c.config.LogsPageSize

	var allLogs []types.Log
	currentFrom := fromBlock
	for currentFrom <= toBlock {
		currentTo := currentFrom + stepSize - 1
		if currentTo > toBlock || currentTo < currentFrom {
			currentTo = toBlock
		}

		query.FromBlock = new(big.Int).SetUint64(currentFrom)
		query.ToBlock = new(big.Int).SetUint64(currentTo)

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		logs, err := c.rpc.FilterLogs(ctx, query)
		if err == nil {
			allLogs = append(allLogs, logs...)
			if currentTo == toBlock {
				break
			}
			currentFrom = currentTo + 1
			continue
		}

		if !isTooManyResultsError(err) || stepSize == 1 {
			return nil, fmt.Errorf("failed to get logs for range %d-%d: %w", currentFrom, currentTo, err)
		}

		stepSize = max(stepSize/2, 1)
		logger.WarnCtx(ctx, "Too many results, reducing step size",
			zap.Uint64("newStepSize", stepSize),
			zap.Uint64("fromBlock", currentFrom),
			zap.Uint64("toBlock", currentTo))
	}

	return allLogs, nil
}

// isTooManyResultsError checks if the provider rejected the range as too large
func isTooManyResultsError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "query returned more than") ||
		strings.Contains(errStr, "query timeout exceeded") ||
		strings.Contains(errStr, "too many results") ||
		strings.Contains(errStr, "exceeded maximum") ||
		strings.Contains(errStr, "block range")
}

func (c *client) SubscribeLogs(ctx context.Context, address common.Address, eventIDs []common.Hash, ch chan<- types.Log) (ethereum.Subscription, error) {
	sub := c.ws
	if sub == nil {
		sub = c.rpc
	}
	query := ethereum.FilterQuery{
		Addresses: []common.Address{address},
		Topics:    [][]common.Hash{eventIDs},
	}
	return sub.SubscribeFilterLogs(ctx, query, ch)
}

// call packs and executes a view method and returns its unpacked outputs
func (c *client) call(ctx context.Context, contractAddress string, method string, args ...interface{}) ([]interface{}, error) {
	if !common.IsHexAddress(contractAddress) {
		return nil, fmt.Errorf("invalid contract address: %s", contractAddress)
	}

	data, err := nftABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack data: %w", err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	contractAddr := common.HexToAddress(contractAddress)
	result, err := c.rpc.CallContract(ctx, ethereum.CallMsg{
		To:   &contractAddr,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call contract: %w", err)
	}

	out, err := nftABI.Unpack(method, result)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack result: %w", err)
	}
	if len(out) == 0 {
		return nil, errors.New("empty result")
	}
	return out, nil
}

func parseTokenID(tokenID string) (*big.Int, error) {
	id, ok := new(big.Int).SetString(tokenID, 10)
	if !ok {
		return nil, fmt.Errorf("invalid token id: %s", tokenID)
	}
	return id, nil
}

func (c *client) callString(ctx context.Context, contractAddress, method string, args ...interface{}) (string, error) {
	out, err := c.call(ctx, contractAddress, method, args...)
	if err != nil {
		return "", err
	}
	s, ok := out[0].(string)
	if !ok {
		return "", fmt.Errorf("unexpected %s result type %T", method, out[0])
	}
	return s, nil
}

func (c *client) ERC721TokenURI(ctx context.Context, contractAddress, tokenID string) (string, error) {
	id, err := parseTokenID(tokenID)
	if err != nil {
		return "", err
	}
	return c.callString(ctx, contractAddress, "tokenURI", id)
}

func (c *client) ERC721OwnerOf(ctx context.Context, contractAddress, tokenID string) (string, error) {
	id, err := parseTokenID(tokenID)
	if err != nil {
		return "", err
	}
	out, err := c.call(ctx, contractAddress, "ownerOf", id)
	if err != nil {
		return "", err
	}
	owner, ok := out[0].(common.Address)
	if !ok {
		return "", fmt.Errorf("unexpected ownerOf result type %T", out[0])
	}
	return owner.Hex(), nil
}

func (c *client) ERC1155URI(ctx context.Context, contractAddress, tokenID string) (string, error) {
	id, err := parseTokenID(tokenID)
	if err != nil {
		return "", err
	}
	return c.callString(ctx, contractAddress, "uri", id)
}

func (c *client) ContractName(ctx context.Context, contractAddress string) (string, error) {
	return c.callString(ctx, contractAddress, "name")
}

func (c *client) ContractSymbol(ctx context.Context, contractAddress string) (string, error) {
	return c.callString(ctx, contractAddress, "symbol")
}

func (c *client) Close() {
	c.rpc.Close()
	if c.ws != nil {
		c.ws.Close()
	}
}
