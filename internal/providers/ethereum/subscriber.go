package ethereum

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace-indexer/internal/logger"
)

//go:generate mockgen -destination=../../mocks/subscription.go -package=mocks -mock_names=Subscription=MockSubscription github.com/ethereum/go-ethereum Subscription

// LogHandler receives the logs pushed by a live subscription
type LogHandler func(ctx context.Context, vLog types.Log)

// Subscribe blocks while forwarding live logs emitted by address to handler.
// It returns when ctx is done or the subscription fails, so callers decide
// whether and when to re-subscribe.
func Subscribe(ctx context.Context, reader ChainReader, address common.Address, eventIDs []common.Hash, handler LogHandler) error {
	logs := make(chan types.Log, 64)
	sub, err := reader.SubscribeLogs(ctx, address, eventIDs, logs)
	if err != nil {
		return fmt.Errorf("failed to subscribe to filter logs: %w", err)
	}
	logger.InfoCtx(ctx, "Subscribed to marketplace logs", zap.String("contract", address.Hex()))
	defer func() {
		sub.Unsubscribe()
		logger.InfoCtx(ctx, "Unsubscribed from marketplace logs", zap.String("contract", address.Hex()))
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-sub.Err():
			if err == nil {
				return fmt.Errorf("subscription closed")
			}
			return fmt.Errorf("subscription error: %w", err)
		case vLog := <-logs:
			handler(ctx, vLog)
		}
	}
}
