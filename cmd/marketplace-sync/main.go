package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-marketplace-indexer/internal/adapter"
	"github.com/feral-file/ff-marketplace-indexer/internal/api/middleware"
	"github.com/feral-file/ff-marketplace-indexer/internal/api/server"
	"github.com/feral-file/ff-marketplace-indexer/internal/block"
	"github.com/feral-file/ff-marketplace-indexer/internal/config"
	"github.com/feral-file/ff-marketplace-indexer/internal/logger"
	"github.com/feral-file/ff-marketplace-indexer/internal/messaging"
	"github.com/feral-file/ff-marketplace-indexer/internal/metadata"
	"github.com/feral-file/ff-marketplace-indexer/internal/metrics"
	"github.com/feral-file/ff-marketplace-indexer/internal/providers/ethereum"
	"github.com/feral-file/ff-marketplace-indexer/internal/providers/jetstream"
	"github.com/feral-file/ff-marketplace-indexer/internal/reconciler"
	"github.com/feral-file/ff-marketplace-indexer/internal/store"
	"github.com/feral-file/ff-marketplace-indexer/internal/syncer"
	"github.com/feral-file/ff-marketplace-indexer/internal/uri"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadMarketplaceSyncConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Registered before any blocking setup so a signal during the catch-up is not lost
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "marketplace-sync",
			"chain":   string(cfg.Ethereum.ChainID),
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting marketplace sync",
		zap.String("chain", string(cfg.Ethereum.ChainID)),
		zap.Strings("contracts", cfg.Marketplace.Contracts))

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	httpClient := adapter.NewHTTPClient(adapter.HTTPClientConfig{
		Timeout:        cfg.Metadata.HTTPTimeout,
		MaxElapsedTime: 2 * cfg.Metadata.HTTPTimeout,
		UserAgent:      "ff-marketplace-indexer/marketplace-sync",
	})
	dialer := adapter.NewEthClientDialer()

	// Connect to the chain
	rpcClient, err := dialer.Dial(ctx, cfg.Ethereum.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to RPC", zap.Error(err))
	}
	var wsClient adapter.EthClient
	if cfg.Ethereum.WebSocketURL != "" {
		wsClient, err = dialer.Dial(ctx, cfg.Ethereum.WebSocketURL)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to websocket", zap.Error(err))
		}
	}
	headProvider := block.NewHeadProvider(ethereum.NewBlockFetcher(rpcClient), block.Config{
		TTL:         cfg.Ethereum.BlockHeadTTL,
		StaleWindow: cfg.Ethereum.BlockHeadStaleWindow,
	}, clock)
	chain := ethereum.NewClient(ethereum.ClientConfig{
		LogsPageSize: cfg.Ethereum.LogsPageSize,
		RateLimit:    cfg.Ethereum.RPCRateLimit,
		Burst:        cfg.Ethereum.RPCBurst,
	}, rpcClient, wsClient, headProvider)
	defer chain.Close()
	logger.InfoCtx(ctx, "Connected to chain",
		zap.Bool("websocket", wsClient != nil))

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// Change notifications
	var publisher messaging.ChangePublisher
	if cfg.NATS.URL != "" {
		publisher, err = jetstream.NewPublisher(ctx, jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			SubjectPrefix:  cfg.NATS.SubjectPrefix,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
			PublishTimeout: cfg.NATS.PublishTimeout,
		}, adapter.NewNatsJetStream(), jsonAdapter, clock)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create change publisher", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Connected to NATS", zap.String("stream", cfg.NATS.StreamName))
	} else {
		logger.WarnCtx(ctx, "NATS url not configured, change notifications are disabled")
		publisher = messaging.NewNoopPublisher()
	}
	defer publisher.Close()

	// Sync pipeline
	resolver := metadata.NewResolver(metadata.Config{
		CollectionCacheSize: cfg.Metadata.CollectionCacheMax,
		CollectionCacheTTL:  cfg.Metadata.CollectionCacheTTL,
	}, chain, httpClient, jsonAdapter, uri.NewGateways(cfg.URI.IPFSGateways, cfg.URI.ArweaveGateways))

	rec, err := reconciler.New(reconciler.Config{
		Chain:          cfg.Ethereum.ChainID,
		TokenCacheSize: cfg.Metadata.TokenCacheSize,
	}, dataStore, resolver, publisher, jsonAdapter, m)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create reconciler", zap.Error(err))
	}

	orchestrator, err := syncer.New(syncer.Config{
		Contracts:          cfg.Marketplace.Contracts,
		ScanInterval:       cfg.Sync.ScanInterval,
		LookbackBlocks:     cfg.Sync.LookbackBlocks,
		Confirmations:      cfg.Sync.Confirmations,
		StartBlock:         cfg.Sync.StartBlock,
		SubscribeEnabled:   cfg.Sync.SubscribeEnabled,
		ResubscribeMaxWait: cfg.Sync.ResubscribeMaxWait,
		PoolSize:           cfg.Worker.WorkerPoolSize,
		QueueSize:          cfg.Worker.WorkerQueueSize,
	}, chain, dataStore, rec, clock, m)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create orchestrator", zap.Error(err))
	}

	// Ops API
	errCh := make(chan error, 1)
	var srv *server.Server
	if cfg.Server.Enabled {
		srv, err = server.New(server.Config{
			Debug:        cfg.Debug,
			Host:         cfg.Server.Host,
			Port:         cfg.Server.Port,
			ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
			IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
			Auth: middleware.AuthConfig{
				JWTPublicKey: cfg.Auth.JWTPublicKey,
				APIKeys:      cfg.Auth.APIKeys,
			},
		}, orchestrator, dataStore, rec, registry)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create API server", zap.Error(err))
		}

		go func() {
			if err := srv.Start(); err != nil {
				errCh <- err
			}
		}()
	}

	// The initial catch-up runs before Start returns, the API already reports "starting".
	// Cancelling ctx on a signal aborts it.
	startCh := make(chan error, 1)
	go func() {
		startCh <- orchestrator.Start(ctx)
	}()

	// Wait for interrupt signal to gracefully shutdown
	if err := awaitShutdown(ctx, startCh, sigCh, errCh); err != nil {
		logger.FatalCtx(ctx, "Failed to start orchestrator", zap.Error(err))
	}
	cancel()

	// Shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := orchestrator.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, fmt.Errorf("orchestrator forced to stop: %w", err))
	}

	if srv != nil {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.ErrorCtx(shutdownCtx, err, zap.String("component", "server"))
		}
	}

	logger.Info("Marketplace sync stopped")
}

// awaitShutdown blocks until a shutdown signal or a server error. A failed start
// returns early, a start still in its catch-up is not waited for.
func awaitShutdown(ctx context.Context, startCh <-chan error, sigCh <-chan os.Signal, errCh <-chan error) error {
	for {
		select {
		case err := <-startCh:
			if err != nil {
				return err
			}
			startCh = nil
		case sig := <-sigCh:
			logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
			return nil
		case err := <-errCh:
			logger.ErrorCtx(ctx, err, zap.String("component", "server"))
			return nil
		}
	}
}
