package block

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace-indexer/internal/adapter"
	"github.com/feral-file/ff-marketplace-indexer/internal/logger"
)

// headInfo is the cached chain head
type headInfo struct {
	number    uint64
	fetchedAt time.Time
}

// HeadProvider provides cached access to the chain head.
// Scans of every marketplace worker ask for the head on each cycle, so the
// number is cached for a short TTL and never moves backwards when a lagging
// RPC node answers with an older block.
//
//go:generate mockgen -source=head.go -destination=../mocks/head.go -package=mocks -mock_names=HeadProvider=MockHeadProvider,BlockFetcher=MockBlockFetcher
type HeadProvider interface {
	// GetLatestBlock returns the latest block number, potentially from cache
	GetLatestBlock(ctx context.Context) (uint64, error)

	// GetConfirmedBlock returns the latest block minus the number of confirmations, clamped at 0
	GetConfirmedBlock(ctx context.Context, confirmations uint64) (uint64, error)
}

// BlockFetcher fetches the latest block number from the chain
type BlockFetcher interface {
	FetchLatestBlock(ctx context.Context) (uint64, error)
}

// Config holds configuration for the HeadProvider
type Config struct {
	// TTL is how long to cache the block number
	TTL time.Duration

	// StaleWindow is how long to serve the cached number when fetching fails
	StaleWindow time.Duration
}

type headProvider struct {
	fetcher BlockFetcher
	config  Config
	clock   adapter.Clock

	mu     sync.RWMutex
	cached *headInfo
}

// NewHeadProvider creates a new HeadProvider with caching
func NewHeadProvider(fetcher BlockFetcher, config Config, clock adapter.Clock) HeadProvider {
	return &headProvider{
		fetcher: fetcher,
		config:  config,
		clock:   clock,
	}
}

func (p *headProvider) GetLatestBlock(ctx context.Context) (uint64, error) {
	p.mu.RLock()
	cached := p.cached
	p.mu.RUnlock()

	now := p.clock.Now()

	if cached != nil && now.Sub(cached.fetchedAt) < p.config.TTL {
		return cached.number, nil
	}

	number, err := p.fetcher.FetchLatestBlock(ctx)
	if err != nil {
		if cached != nil && now.Sub(cached.fetchedAt) < p.config.StaleWindow {
			logger.WarnCtx(ctx, "Serving stale block head", zap.Uint64("block_number", cached.number), zap.Error(err))
			return cached.number, nil
		}
		return 0, fmt.Errorf("failed to fetch latest block and no valid cache available: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Another caller may have stored a newer head in the meantime
	if p.cached != nil && p.cached.number > number {
		logger.DebugCtx(ctx, "Ignoring block head behind cache",
			zap.Uint64("fetched", number),
			zap.Uint64("cached", p.cached.number))
		number = p.cached.number
	}
	p.cached = &headInfo{number: number, fetchedAt: now}

	return number, nil
}

func (p *headProvider) GetConfirmedBlock(ctx context.Context, confirmations uint64) (uint64, error) {
	head, err := p.GetLatestBlock(ctx)
	if err != nil {
		return 0, err
	}
	if head < confirmations {
		return 0, nil
	}
	return head - confirmations, nil
}
