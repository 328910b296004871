package syncer_test

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/feral-file/ff-marketplace-indexer/internal/decoder"
	"github.com/feral-file/ff-marketplace-indexer/internal/decoder/decodertest"
	"github.com/feral-file/ff-marketplace-indexer/internal/domain"
	"github.com/feral-file/ff-marketplace-indexer/internal/logger"
	"github.com/feral-file/ff-marketplace-indexer/internal/mocks"
	"github.com/feral-file/ff-marketplace-indexer/internal/syncer"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	goleak.VerifyTestMain(m)
}

var market = common.HexToAddress("0x00000000000000000000000000000000000000c1")

const scanInterval = 30 * time.Second

type testSyncerMocks struct {
	ctrl        *gomock.Controller
	chain       *mocks.MockChainReader
	checkpoints *mocks.MockCheckpointStore
	reconciler  *mocks.MockReconciler
	clock       *mocks.MockClock
	ticker      *mocks.MockTicker
	ticks       chan time.Time
}

func setupTestSyncer(t *testing.T) *testSyncerMocks {
	ctrl := gomock.NewController(t)
	tm := &testSyncerMocks{
		ctrl:        ctrl,
		chain:       mocks.NewMockChainReader(ctrl),
		checkpoints: mocks.NewMockCheckpointStore(ctrl),
		reconciler:  mocks.NewMockReconciler(ctrl),
		clock:       mocks.NewMockClock(ctrl),
		ticker:      mocks.NewMockTicker(ctrl),
		ticks:       make(chan time.Time),
	}

	tm.clock.EXPECT().Now().Return(time.Unix(1700000000, 0)).AnyTimes()
	tm.clock.EXPECT().Since(gomock.Any()).Return(time.Second).AnyTimes()
	tm.clock.EXPECT().NewTicker(scanInterval).Return(tm.ticker).AnyTimes()
	tm.ticker.EXPECT().C().Return(tm.ticks).AnyTimes()
	tm.ticker.EXPECT().Stop().AnyTimes()

	return tm
}

func tearDownTestSyncer(tm *testSyncerMocks) {
	tm.ctrl.Finish()
}

func (tm *testSyncerMocks) newOrchestrator(t *testing.T, cfg syncer.Config) syncer.Orchestrator {
	if cfg.Contracts == nil {
		cfg.Contracts = []string{market.Hex()}
	}
	cfg.ScanInterval = scanInterval
	if cfg.LookbackBlocks == 0 {
		cfg.LookbackBlocks = 1000
	}
	o, err := syncer.New(cfg, tm.chain, tm.checkpoints, tm.reconciler, tm.clock, nil)
	require.NoError(t, err)
	return o
}

// expectIdleScan makes a scan find nothing new
func (tm *testSyncerMocks) expectIdleScan(head uint64) {
	tm.chain.EXPECT().CurrentBlockNumber(gomock.Any()).Return(head, nil)
	tm.checkpoints.EXPECT().GetLastProcessedBlock(gomock.Any(), market.Hex(), domain.CategoryMarketplace).Return(&head, nil)
}

func unlistedLog(block uint64, index uint, listingID int64) types.Log {
	return decodertest.Log(market, domain.EventUnlisted, block, index, big.NewInt(listingID))
}

func stop(t *testing.T, o syncer.Orchestrator) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, o.Stop(ctx))
}

func TestNew_InvalidContract(t *testing.T) {
	tm := setupTestSyncer(t)
	defer tearDownTestSyncer(tm)

	_, err := syncer.New(syncer.Config{Contracts: []string{"not-an-address"}}, tm.chain, tm.checkpoints, tm.reconciler, tm.clock, nil)
	assert.Error(t, err)
}

func TestOrchestrator_Lifecycle(t *testing.T) {
	tm := setupTestSyncer(t)
	defer tearDownTestSyncer(tm)

	ctx := context.Background()
	o := tm.newOrchestrator(t, syncer.Config{})

	assert.Equal(t, syncer.StateStopped, o.State())
	require.NoError(t, o.Stop(ctx), "stop before start is a no-op")
	assert.ErrorIs(t, o.TriggerScan(ctx, market.Hex()), domain.ErrNotRunning)

	tm.expectIdleScan(500)
	require.NoError(t, o.Start(ctx))
	assert.Equal(t, syncer.StateRunning, o.State())
	assert.ErrorIs(t, o.Start(ctx), domain.ErrAlreadyRunning)

	stop(t, o)
	assert.Equal(t, syncer.StateStopped, o.State())
	stop(t, o)

	// restartable
	tm.expectIdleScan(500)
	require.NoError(t, o.Start(ctx))
	stop(t, o)
}

func TestOrchestrator_StopDuringCatchUp(t *testing.T) {
	tm := setupTestSyncer(t)
	defer tearDownTestSyncer(tm)

	other := common.HexToAddress("0x00000000000000000000000000000000000000c2")
	o := tm.newOrchestrator(t, syncer.Config{
		Contracts: []string{market.Hex(), other.Hex()},
		PoolSize:  1,
	})

	// only the first scan runs, the queued one is skipped
	entered := make(chan struct{})
	release := make(chan struct{})
	head := uint64(500)
	tm.chain.EXPECT().CurrentBlockNumber(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (uint64, error) {
			close(entered)
			<-release
			return head, nil
		})
	tm.checkpoints.EXPECT().GetLastProcessedBlock(gomock.Any(), gomock.Any(), domain.CategoryMarketplace).Return(&head, nil)

	startErr := make(chan error, 1)
	go func() {
		startErr <- o.Start(context.Background())
	}()
	<-entered
	assert.Equal(t, syncer.StateStarting, o.State())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	begin := time.Now()
	assert.ErrorIs(t, o.Stop(ctx), context.DeadlineExceeded)
	assert.Less(t, time.Since(begin), 2*time.Second)

	// the in-flight scan runs to completion
	close(release)
	assert.ErrorIs(t, <-startErr, context.Canceled)
	stop(t, o)
	assert.Equal(t, syncer.StateStopped, o.State())

	// restartable after an aborted start
	tm.chain.EXPECT().CurrentBlockNumber(gomock.Any()).Return(head, nil).Times(2)
	tm.checkpoints.EXPECT().GetLastProcessedBlock(gomock.Any(), gomock.Any(), domain.CategoryMarketplace).Return(&head, nil).Times(2)
	require.NoError(t, o.Start(context.Background()))
	assert.Equal(t, syncer.StateRunning, o.State())
	stop(t, o)
}

func TestOrchestrator_CallerCancelAbortsStart(t *testing.T) {
	tm := setupTestSyncer(t)
	defer tearDownTestSyncer(tm)

	o := tm.newOrchestrator(t, syncer.Config{})

	ctx, cancel := context.WithCancel(context.Background())
	head := uint64(500)
	tm.chain.EXPECT().CurrentBlockNumber(gomock.Any()).
		DoAndReturn(func(scanCtx context.Context) (uint64, error) {
			cancel()
			assert.NoError(t, scanCtx.Err(), "scans are not hard-cancelled")
			return head, nil
		})
	tm.checkpoints.EXPECT().GetLastProcessedBlock(gomock.Any(), market.Hex(), domain.CategoryMarketplace).Return(&head, nil)

	assert.ErrorIs(t, o.Start(ctx), context.Canceled)
	assert.Equal(t, syncer.StateStopped, o.State())
	require.NoError(t, o.Stop(context.Background()))
}

func TestOrchestrator_InitialScanFromLookback(t *testing.T) {
	tm := setupTestSyncer(t)
	defer tearDownTestSyncer(tm)

	ctx := context.Background()
	o := tm.newOrchestrator(t, syncer.Config{})

	logs := []types.Log{unlistedLog(4500, 0, 1), unlistedLog(4600, 2, 2)}
	gomock.InOrder(
		tm.chain.EXPECT().CurrentBlockNumber(gomock.Any()).Return(uint64(5000), nil),
		tm.checkpoints.EXPECT().GetLastProcessedBlock(gomock.Any(), market.Hex(), domain.CategoryMarketplace).Return(nil, nil),
		tm.chain.EXPECT().GetLogs(gomock.Any(), market, uint64(4000), uint64(5000)).Return(logs, nil),
		tm.reconciler.EXPECT().Handle(gomock.Any(), gomock.Any()).Return(nil).Times(2),
		tm.checkpoints.EXPECT().SetLastProcessedBlock(gomock.Any(), market.Hex(), domain.CategoryMarketplace, uint64(5000)).Return(nil),
	)

	require.NoError(t, o.Start(ctx))
	defer stop(t, o)

	statuses := o.Status()
	require.Len(t, statuses, 1)
	assert.Equal(t, market.Hex(), statuses[0].ContractAddress)
	assert.Equal(t, domain.CategoryMarketplace, statuses[0].Category)
	assert.Equal(t, uint64(5000), statuses[0].LastScannedBlock)
	assert.NotEmpty(t, statuses[0].LastScanID)
	assert.Empty(t, statuses[0].LastScanError)
	assert.False(t, statuses[0].Scanning)
}

func TestOrchestrator_StartBlockAndConfirmations(t *testing.T) {
	tm := setupTestSyncer(t)
	defer tearDownTestSyncer(tm)

	ctx := context.Background()
	o := tm.newOrchestrator(t, syncer.Config{StartBlock: 42, Confirmations: 10})

	tm.chain.EXPECT().CurrentBlockNumber(gomock.Any()).Return(uint64(5000), nil)
	tm.checkpoints.EXPECT().GetLastProcessedBlock(gomock.Any(), market.Hex(), domain.CategoryMarketplace).Return(nil, nil)
	tm.chain.EXPECT().GetLogs(gomock.Any(), market, uint64(42), uint64(4990)).Return(nil, nil)
	tm.checkpoints.EXPECT().SetLastProcessedBlock(gomock.Any(), market.Hex(), domain.CategoryMarketplace, uint64(4990)).Return(nil)

	require.NoError(t, o.Start(ctx))
	stop(t, o)
}

func TestOrchestrator_NothingToScan(t *testing.T) {
	tm := setupTestSyncer(t)
	defer tearDownTestSyncer(tm)

	ctx := context.Background()
	o := tm.newOrchestrator(t, syncer.Config{Confirmations: 5})

	// checkpoint already past head - confirmations
	checkpoint := uint64(998)
	tm.chain.EXPECT().CurrentBlockNumber(gomock.Any()).Return(uint64(1000), nil)
	tm.checkpoints.EXPECT().GetLastProcessedBlock(gomock.Any(), market.Hex(), domain.CategoryMarketplace).Return(&checkpoint, nil)

	require.NoError(t, o.Start(ctx))
	stop(t, o)
}

func TestOrchestrator_CrashMidRangeHoldsCheckpoint(t *testing.T) {
	tm := setupTestSyncer(t)
	defer tearDownTestSyncer(tm)

	ctx := context.Background()
	o := tm.newOrchestrator(t, syncer.Config{})

	checkpoint := uint64(99)
	logs := []types.Log{unlistedLog(100, 0, 1), unlistedLog(105, 1, 2), unlistedLog(108, 0, 3)}

	var mu sync.Mutex
	var handled []uint64
	record := func(_ context.Context, event *domain.DecodedEvent) {
		mu.Lock()
		defer mu.Unlock()
		handled = append(handled, event.BlockNumber)
	}

	tm.chain.EXPECT().CurrentBlockNumber(gomock.Any()).Return(uint64(110), nil).Times(2)
	tm.checkpoints.EXPECT().GetLastProcessedBlock(gomock.Any(), market.Hex(), domain.CategoryMarketplace).Return(&checkpoint, nil).Times(2)
	tm.chain.EXPECT().GetLogs(gomock.Any(), market, uint64(100), uint64(110)).Return(logs, nil).Times(2)

	gomock.InOrder(
		// first pass fails on the second log
		tm.reconciler.EXPECT().Handle(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, event *domain.DecodedEvent) error { record(ctx, event); return nil }),
		tm.reconciler.EXPECT().Handle(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, event *domain.DecodedEvent) error {
				record(ctx, event)
				return errors.New("connection refused")
			}),
		// retry replays the whole window
		tm.reconciler.EXPECT().Handle(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, event *domain.DecodedEvent) error { record(ctx, event); return nil }).
			Times(3),
		tm.checkpoints.EXPECT().SetLastProcessedBlock(gomock.Any(), market.Hex(), domain.CategoryMarketplace, uint64(110)).Return(nil),
	)

	require.NoError(t, o.Start(ctx), "a failed initial scan does not block start")
	defer stop(t, o)

	status := o.Status()[0]
	assert.Contains(t, status.LastScanError, "connection refused")
	assert.Equal(t, uint64(0), status.LastScannedBlock)

	require.NoError(t, o.TriggerScan(ctx, market.Hex()))

	status = o.Status()[0]
	assert.Empty(t, status.LastScanError)
	assert.Equal(t, uint64(110), status.LastScannedBlock)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []uint64{100, 105, 100, 105, 108}, handled)
}

func TestOrchestrator_UnknownLogIsSkipped(t *testing.T) {
	tm := setupTestSyncer(t)
	defer tearDownTestSyncer(tm)

	ctx := context.Background()
	o := tm.newOrchestrator(t, syncer.Config{})

	checkpoint := uint64(99)
	unknown := types.Log{
		Address:     market,
		Topics:      []common.Hash{common.HexToHash("0xdeadbeef")},
		BlockNumber: 101,
		Index:       0,
	}
	logs := []types.Log{unlistedLog(100, 0, 1), unknown, unlistedLog(102, 0, 2)}

	tm.chain.EXPECT().CurrentBlockNumber(gomock.Any()).Return(uint64(110), nil)
	tm.checkpoints.EXPECT().GetLastProcessedBlock(gomock.Any(), market.Hex(), domain.CategoryMarketplace).Return(&checkpoint, nil)
	tm.chain.EXPECT().GetLogs(gomock.Any(), market, uint64(100), uint64(110)).Return(logs, nil)
	tm.reconciler.EXPECT().Handle(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	tm.checkpoints.EXPECT().SetLastProcessedBlock(gomock.Any(), market.Hex(), domain.CategoryMarketplace, uint64(110)).Return(nil)

	require.NoError(t, o.Start(ctx))
	stop(t, o)
}

func TestOrchestrator_LogsHandledInBlockOrder(t *testing.T) {
	tm := setupTestSyncer(t)
	defer tearDownTestSyncer(tm)

	ctx := context.Background()
	o := tm.newOrchestrator(t, syncer.Config{})

	checkpoint := uint64(99)
	logs := []types.Log{unlistedLog(105, 1, 3), unlistedLog(101, 4, 2), unlistedLog(105, 0, 4), unlistedLog(101, 2, 1)}

	var order []string
	tm.chain.EXPECT().CurrentBlockNumber(gomock.Any()).Return(uint64(110), nil)
	tm.checkpoints.EXPECT().GetLastProcessedBlock(gomock.Any(), market.Hex(), domain.CategoryMarketplace).Return(&checkpoint, nil)
	tm.chain.EXPECT().GetLogs(gomock.Any(), market, uint64(100), uint64(110)).Return(logs, nil)
	tm.reconciler.EXPECT().Handle(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *domain.DecodedEvent) error {
			id, err := event.BigInt("id")
			assert.NoError(t, err)
			order = append(order, id.String())
			return nil
		}).Times(4)
	tm.checkpoints.EXPECT().SetLastProcessedBlock(gomock.Any(), market.Hex(), domain.CategoryMarketplace, uint64(110)).Return(nil)

	require.NoError(t, o.Start(ctx))
	stop(t, o)

	assert.Equal(t, []string{"1", "2", "4", "3"}, order)
}

func TestOrchestrator_TriggerScanUnknownContract(t *testing.T) {
	tm := setupTestSyncer(t)
	defer tearDownTestSyncer(tm)

	ctx := context.Background()
	o := tm.newOrchestrator(t, syncer.Config{})

	tm.expectIdleScan(10)
	require.NoError(t, o.Start(ctx))
	defer stop(t, o)

	err := o.TriggerScan(ctx, "0x00000000000000000000000000000000000000ff")
	assert.ErrorIs(t, err, domain.ErrUnknownContract)
}

func TestOrchestrator_PeriodicScan(t *testing.T) {
	tm := setupTestSyncer(t)
	defer tearDownTestSyncer(tm)

	ctx := context.Background()
	o := tm.newOrchestrator(t, syncer.Config{})

	tm.expectIdleScan(150)
	require.NoError(t, o.Start(ctx))

	checkpoint := uint64(150)
	done := make(chan struct{})
	tm.chain.EXPECT().CurrentBlockNumber(gomock.Any()).Return(uint64(200), nil)
	tm.checkpoints.EXPECT().GetLastProcessedBlock(gomock.Any(), market.Hex(), domain.CategoryMarketplace).Return(&checkpoint, nil)
	tm.chain.EXPECT().GetLogs(gomock.Any(), market, uint64(151), uint64(200)).Return(nil, nil)
	tm.checkpoints.EXPECT().SetLastProcessedBlock(gomock.Any(), market.Hex(), domain.CategoryMarketplace, uint64(200)).
		DoAndReturn(func(context.Context, string, domain.Category, uint64) error {
			close(done)
			return nil
		})

	tm.ticks <- time.Now()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("periodic scan did not run")
	}

	stop(t, o)
}

func TestOrchestrator_LiveSubscription(t *testing.T) {
	tm := setupTestSyncer(t)
	defer tearDownTestSyncer(tm)

	ctx := context.Background()
	o := tm.newOrchestrator(t, syncer.Config{SubscribeEnabled: true})

	sub := mocks.NewMockSubscription(tm.ctrl)
	subErr := make(chan error)
	sub.EXPECT().Err().Return(subErr).AnyTimes()
	sub.EXPECT().Unsubscribe()

	live := unlistedLog(600, 0, 9)
	tm.chain.EXPECT().SubscribeLogs(gomock.Any(), market, decoder.EventIDs(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ common.Address, _ []common.Hash, ch chan<- types.Log) (ethereum.Subscription, error) {
			ch <- live
			return sub, nil
		})

	handled := make(chan *domain.DecodedEvent, 1)
	tm.reconciler.EXPECT().Handle(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *domain.DecodedEvent) error {
			handled <- event
			return nil
		})

	// live logs never write checkpoints, only the idle initial scan runs
	tm.expectIdleScan(600)
	require.NoError(t, o.Start(ctx))

	select {
	case event := <-handled:
		assert.Equal(t, domain.EventUnlisted, event.Name)
		assert.Equal(t, uint64(600), event.BlockNumber)
	case <-time.After(5 * time.Second):
		t.Fatal("live log was not handled")
	}

	stop(t, o)
}

func TestOrchestrator_Resubscribes(t *testing.T) {
	tm := setupTestSyncer(t)
	defer tearDownTestSyncer(tm)

	ctx := context.Background()
	o := tm.newOrchestrator(t, syncer.Config{SubscribeEnabled: true})

	sub := mocks.NewMockSubscription(tm.ctrl)
	sub.EXPECT().Err().Return(make(chan error)).AnyTimes()
	sub.EXPECT().Unsubscribe()

	ready := make(chan time.Time, 1)
	ready <- time.Now()
	tm.clock.EXPECT().After(gomock.Any()).Return(ready)

	subscribed := make(chan struct{})
	gomock.InOrder(
		tm.chain.EXPECT().SubscribeLogs(gomock.Any(), market, gomock.Any(), gomock.Any()).
			Return(nil, errors.New("websocket: close 1006")),
		tm.chain.EXPECT().SubscribeLogs(gomock.Any(), market, gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, common.Address, []common.Hash, chan<- types.Log) (ethereum.Subscription, error) {
				close(subscribed)
				return sub, nil
			}),
	)

	tm.expectIdleScan(600)
	require.NoError(t, o.Start(ctx))

	select {
	case <-subscribed:
	case <-time.After(5 * time.Second):
		t.Fatal("did not re-subscribe")
	}

	stop(t, o)
	assert.Equal(t, int64(1), o.Status()[0].SubscriptionRestarts)
}
