package ethereum

import (
	"context"
	"fmt"

	"github.com/feral-file/ff-marketplace-indexer/internal/adapter"
	"github.com/feral-file/ff-marketplace-indexer/internal/block"
)

type blockFetcher struct {
	client adapter.EthClient
}

// NewBlockFetcher returns a block.BlockFetcher backed by eth_blockNumber
func NewBlockFetcher(client adapter.EthClient) block.BlockFetcher {
	return &blockFetcher{client: client}
}

func (f *blockFetcher) FetchLatestBlock(ctx context.Context) (uint64, error) {
	number, err := f.client.BlockNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest block: %w", err)
	}
	return number, nil
}
