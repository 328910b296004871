package syncer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/ethereum/go-ethereum/common"
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

// State is the lifecycle state of the orchestrator
type State string

const (
	StateStopped  State = "stopped"
	StateStarting State = "starting"
	StateRunning  State = "running"
)

// Config holds the scan schedule and the contracts to sync
type Config struct {
	Contracts      []string
	ScanInterval   time.Duration
	LookbackBlocks uint64
	Confirmations  uint64
	// StartBlock is used instead of the look-back window when a contract has no checkpoint, 0 means unset
	StartBlock         uint64
	SubscribeEnabled   bool
	ResubscribeMaxWait time.Duration
	// PoolSize bounds the number of concurrent catch-up scans on start
	PoolSize int
	// QueueSize bounds the pending catch-up scans, 0 is unbounded
	QueueSize int
}

// WorkerStatus is a snapshot of one worker
type WorkerStatus struct {
	ContractAddress      string          `json:"contract_address"`
	Category             domain.Category `json:"category"`
	Scanning             bool            `json:"scanning"`
	LastScanID           string          `json:"last_scan_id,omitempty"`
	LastScanAt           *time.Time      `json:"last_scan_at,omitempty"`
	LastScanError        string          `json:"last_scan_error,omitempty"`
	LastScannedBlock     uint64          `json:"last_scanned_block"`
	SubscriptionRestarts int64           `json:"subscription_restarts"`
}

// Orchestrator runs one worker per marketplace contract. Each worker
// periodically scans the contract's logs from its checkpoint and, when
// enabled, follows a live subscription through the same handling path.
//
//go:generate mockgen -source=syncer.go -destination=../mocks/syncer.go -package=mocks -mock_names=Orchestrator=MockOrchestrator
type Orchestrator interface {
	// Start runs one catch-up scan per worker, then starts the periodic scans and live subscriptions.
	// Cancelling ctx or calling Stop during the catch-up skips the pending scans and fails the start.
	Start(ctx context.Context) error
	// Stop cancels subscriptions and timers and waits for in-flight scans. It is safe to call at any time.
	Stop(ctx context.Context) error
	// State returns the lifecycle state
	State() State
	// TriggerScan runs a scan of the contract immediately and waits for it
	TriggerScan(ctx context.Context, contractAddress string) error
	// Status returns a snapshot of every worker
	Status() []WorkerStatus
}

type orchestrator struct {
	cfg     Config
	clock   adapter.Clock
	workers []*worker
	byAddr  map[string]*worker

	// lifecycle guards state transitions and is shared by triggered scans.
	// It is not held during the catch-up scans of Start.
	lifecycle sync.RWMutex
	state     atomic.Value
	cancel    context.CancelFunc
	// started is closed when the last Start returns
	started   chan struct{}
	wg        sync.WaitGroup
}

// New creates an orchestrator with one worker per configured contract
func New(
	cfg Config,
	chain ethereum.ChainReader,
	checkpoints store.CheckpointStore,
	rec reconciler.Reconciler,
	clock adapter.Clock,
	m *metrics.Metrics,
) (Orchestrator, error) {
	if cfg.ScanInterval <= 0 {
		cfg.ScanInterval = 30 * time.Second
	}
	if cfg.ResubscribeMaxWait <= 0 {
		cfg.ResubscribeMaxWait = time.Minute
	}
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = 4
	}

	dec := decoder.New(m)
	eventIDs := decoder.EventIDs()

	o := &orchestrator{
		cfg:    cfg,
		clock:  clock,
		byAddr: make(map[string]*worker, len(cfg.Contracts)),
	}
	o.state.Store(StateStopped)

	for _, addr := range cfg.Contracts {
		if !common.IsHexAddress(addr) {
			return nil, fmt.Errorf("invalid contract address: %s", addr)
		}
		key := strings.ToLower(addr)
		if _, ok := o.byAddr[key]; ok {
			continue
		}
		w := &worker{
			address:     common.HexToAddress(addr),
			category:    domain.CategoryMarketplace,
			cfg:         cfg,
			chain:       chain,
			checkpoints: checkpoints,
			reconciler:  rec,
			decoder:     dec,
			eventIDs:    eventIDs,
			clock:       clock,
			metrics:     m,
		}
		o.workers = append(o.workers, w)
		o.byAddr[key] = w
	}

	return o, nil
}

func (o *orchestrator) State() State {
	return o.state.Load().(State)
}

func (o *orchestrator) Start(ctx context.Context) error {
	o.lifecycle.Lock()
	if o.State() != StateStopped {
		o.lifecycle.Unlock()
		return domain.ErrAlreadyRunning
	}
	o.state.Store(StateStarting)

	// Scans outlive the stop signal so a window is never abandoned half way
	scanCtx := context.WithoutCancel(ctx)
	runCtx, cancelRun := context.WithCancel(scanCtx)
	// Stop or the caller aborts the catch-up: pending scans are skipped and Start fails
	catchUpCtx, cancelCatchUp := context.WithCancel(ctx)
	o.cancel = func() {
		cancelCatchUp()
		cancelRun()
	}
	started := make(chan struct{})
	o.started = started
	o.lifecycle.Unlock()
	defer close(started)

	logger.InfoCtx(ctx, "Starting marketplace sync",
		zap.Int("workers", len(o.workers)),
		zap.Duration("scan_interval", o.cfg.ScanInterval),
		zap.Bool("subscribe", o.cfg.SubscribeEnabled))

	var opts []pond.Option
	if o.cfg.QueueSize > 0 {
		opts = append(opts, pond.WithQueueSize(o.cfg.QueueSize))
	}
	pool := pond.NewPool(o.cfg.PoolSize, opts...)
	for _, w := range o.workers {
		pool.Submit(func() {
			if catchUpCtx.Err() != nil {
				return
			}
			if err := w.scan(scanCtx); err != nil {
				logger.ErrorCtx(ctx, fmt.Errorf("initial scan failed: %w", err),
					zap.String("contract", w.address.Hex()))
			}
		})
	}
	pool.StopAndWait()

	o.lifecycle.Lock()
	defer o.lifecycle.Unlock()

	if err := catchUpCtx.Err(); err != nil {
		o.cancel()
		o.state.Store(StateStopped)
		logger.WarnCtx(ctx, "Marketplace sync start aborted", zap.Error(err))
		return err
	}

	for _, w := range o.workers {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w.runScanLoop(runCtx, scanCtx)
		}()

		if o.cfg.SubscribeEnabled {
			o.wg.Add(1)
			go func() {
				defer o.wg.Done()
				w.runSubscription(runCtx)
			}()
		}
	}

	o.state.Store(StateRunning)
	logger.InfoCtx(ctx, "Marketplace sync running")

	return nil
}

func (o *orchestrator) Stop(ctx context.Context) error {
	o.lifecycle.Lock()
	if o.State() == StateStopped {
		o.lifecycle.Unlock()
		return nil
	}
	logger.InfoCtx(ctx, "Stopping marketplace sync")
	o.cancel()
	started := o.started
	o.lifecycle.Unlock()

	// a Start still in its catch-up returns once its in-flight scans finish
	select {
	case <-started:
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Marketplace sync stop interrupted before start unwound")
		return ctx.Err()
	}

	o.lifecycle.Lock()
	defer o.lifecycle.Unlock()

	if o.State() == StateStopped {
		return nil
	}

	done := make(chan struct{})
	go func() {
		o.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Marketplace sync stop interrupted before in-flight scans finished")
		return ctx.Err()
	}

	o.state.Store(StateStopped)
	logger.InfoCtx(ctx, "Marketplace sync stopped")

	return nil
}

func (o *orchestrator) TriggerScan(ctx context.Context, contractAddress string) error {
	o.lifecycle.RLock()
	defer o.lifecycle.RUnlock()

	if o.State() != StateRunning {
		return domain.ErrNotRunning
	}

	w, ok := o.byAddr[strings.ToLower(contractAddress)]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownContract, contractAddress)
	}

	return w.scan(context.WithoutCancel(ctx))
}

func (o *orchestrator) Status() []WorkerStatus {
	statuses := make([]WorkerStatus, 0, len(o.workers))
	for _, w := range o.workers {
		statuses = append(statuses, w.status())
	}
	return statuses
}
