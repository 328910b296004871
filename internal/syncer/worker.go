package syncer

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace-indexer/internal/adapter"
	"github.com/feral-file/ff-marketplace-indexer/internal/decoder"
	"github.com/feral-file/ff-marketplace-indexer/internal/domain"
	"github.com/feral-file/ff-marketplace-indexer/internal/logger"
	"github.com/feral-file/ff-marketplace-indexer/internal/metrics"
	"github.com/feral-file/ff-marketplace-indexer/internal/providers/ethereum"
	"github.com/feral-file/ff-marketplace-indexer/internal/reconciler"
	"github.com/feral-file/ff-marketplace-indexer/internal/store"
)

const (
	sourceScan = "scan"
	sourceLive = "live"
)

// worker syncs one (contract, category) pair
type worker struct {
	address     common.Address
	category    domain.Category
	cfg         Config
	chain       ethereum.ChainReader
	checkpoints store.CheckpointStore
	reconciler  reconciler.Reconciler
	decoder     *decoder.Decoder
	eventIDs    []common.Hash
	clock       adapter.Clock
	metrics     *metrics.Metrics

	// scanMu serializes scans of this contract
	scanMu sync.Mutex

	statusMu sync.RWMutex
	current  WorkerStatus
}

func (w *worker) status() WorkerStatus {
	w.statusMu.RLock()
	defer w.statusMu.RUnlock()

	s := w.current
	s.ContractAddress = w.address.Hex()
	s.Category = w.category
	return s
}

func (w *worker) updateStatus(fn func(s *WorkerStatus)) {
	w.statusMu.Lock()
	defer w.statusMu.Unlock()
	fn(&w.current)
}

// runScanLoop scans every interval until ctx is done. Scans themselves run on scanCtx.
func (w *worker) runScanLoop(ctx, scanCtx context.Context) {
	ticker := w.clock.NewTicker(w.cfg.ScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			if err := w.scan(scanCtx); err != nil {
				logger.ErrorCtx(ctx, fmt.Errorf("periodic scan failed: %w", err),
					zap.String("contract", w.address.Hex()))
			}
		}
	}
}

// scan processes the window after the checkpoint and advances the checkpoint
// only when every log in the window was handled or skipped
func (w *worker) scan(ctx context.Context) error {
	w.scanMu.Lock()
	defer w.scanMu.Unlock()

	scanID := uuid.NewString()
	startedAt := w.clock.Now()
	w.updateStatus(func(s *WorkerStatus) { s.Scanning = true })

	to, count, err := w.scanWindow(ctx, scanID)

	w.metrics.ObserveScan(w.address.Hex(), err, w.clock.Since(startedAt), count)
	w.updateStatus(func(s *WorkerStatus) {
		s.Scanning = false
		s.LastScanID = scanID
		s.LastScanAt = &startedAt
		s.LastScanError = ""
		if err != nil {
			s.LastScanError = err.Error()
			return
		}
		if to > s.LastScannedBlock {
			s.LastScannedBlock = to
		}
	})

	return err
}

func (w *worker) scanWindow(ctx context.Context, scanID string) (uint64, int, error) {
	contract := w.address.Hex()

	head, err := w.chain.CurrentBlockNumber(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get current block: %w", err)
	}
	w.metrics.SetHead(head)

	if head < w.cfg.Confirmations {
		return 0, 0, nil
	}
	to := head - w.cfg.Confirmations

	checkpoint, err := w.checkpoints.GetLastProcessedBlock(ctx, contract, w.category)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get checkpoint: %w", err)
	}

	from := w.fromBlock(head, checkpoint)
	if from > to {
		logger.DebugCtx(ctx, "Nothing to scan",
			zap.String("contract", contract),
			zap.Uint64("from", from),
			zap.Uint64("to", to))
		return to, 0, nil
	}

	logs, err := w.chain.GetLogs(ctx, w.address, from, to)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get logs: %w", err)
	}

	logger.InfoCtx(ctx, "Scanning marketplace logs",
		zap.String("scan_id", scanID),
		zap.String("contract", contract),
		zap.Uint64("from", from),
		zap.Uint64("to", to),
		zap.Int("logs", len(logs)))

	sort.SliceStable(logs, func(i, j int) bool {
		if logs[i].BlockNumber != logs[j].BlockNumber {
			return logs[i].BlockNumber < logs[j].BlockNumber
		}
		return logs[i].Index < logs[j].Index
	})

	for _, vLog := range logs {
		if err := w.handleLog(ctx, vLog, sourceScan); err != nil {
			// Later logs may depend on this one, the whole window is retried
			return 0, len(logs), fmt.Errorf("checkpoint held before block %d: %w", vLog.BlockNumber, err)
		}
	}

	if err := w.checkpoints.SetLastProcessedBlock(ctx, contract, w.category, to); err != nil {
		return 0, len(logs), fmt.Errorf("failed to set checkpoint: %w", err)
	}
	w.metrics.SetCheckpoint(contract, string(w.category), to)

	logger.InfoCtx(ctx, "Scan completed",
		zap.String("scan_id", scanID),
		zap.String("contract", contract),
		zap.Uint64("checkpoint", to))

	return to, len(logs), nil
}

// fromBlock is the first block after the checkpoint, or the start of the look-back window
func (w *worker) fromBlock(head uint64, checkpoint *uint64) uint64 {
	if checkpoint != nil {
		return *checkpoint + 1
	}
	if w.cfg.StartBlock > 0 {
		return w.cfg.StartBlock
	}
	if head < w.cfg.LookbackBlocks {
		return 0
	}
	return head - w.cfg.LookbackBlocks
}

// handleLog decodes and applies one log. Logs that do not decode are skipped.
func (w *worker) handleLog(ctx context.Context, vLog types.Log, source string) error {
	event := w.decoder.Decode(vLog)
	if event == nil {
		return nil
	}

	err := w.reconciler.Handle(ctx, event)
	w.metrics.RecordEvent(string(event.Name), source, err)
	return err
}

// runSubscription follows live logs until ctx is done, re-subscribing with backoff.
// Live logs never move the checkpoint, the next scan covers anything they miss.
func (w *worker) runSubscription(ctx context.Context) {
	contract := w.address.Hex()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.MaxInterval = w.cfg.ResubscribeMaxWait
	b.MaxElapsedTime = 0

	for {
		err := ethereum.Subscribe(ctx, w.chain, w.address, w.eventIDs, func(ctx context.Context, vLog types.Log) {
			b.Reset()
			if err := w.handleLog(ctx, vLog, sourceLive); err != nil {
				logger.WarnCtx(ctx, "Failed to handle live log, leaving it to the next scan",
					zap.String("contract", contract),
					zap.String("tx_hash", vLog.TxHash.Hex()),
					zap.Error(err))
			}
		})
		if ctx.Err() != nil {
			return
		}

		wait := b.NextBackOff()
		w.metrics.RecordSubscriptionRestart(contract)
		w.updateStatus(func(s *WorkerStatus) { s.SubscriptionRestarts++ })
		logger.WarnCtx(ctx, "Live subscription ended, re-subscribing",
			zap.String("contract", contract),
			zap.Duration("wait", wait),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return
		case <-w.clock.After(wait):
		}
	}
}
