package jetstream

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	natsjs "github.com/nats-io/nats.go/jetstream"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace-indexer/internal/adapter"
	"github.com/feral-file/ff-marketplace-indexer/internal/domain"
	"github.com/feral-file/ff-marketplace-indexer/internal/logger"
	"github.com/feral-file/ff-marketplace-indexer/internal/messaging"
)

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	StreamName     string
	SubjectPrefix  string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	PublishTimeout time.Duration
}

type publisher struct {
	nc             adapter.NatsConn
	js             adapter.JetStream
	subjectPrefix  string
	publishTimeout time.Duration
	json           adapter.JSON
	clock          adapter.Clock
}

// NewPublisher connects to NATS, makes sure the change stream exists and returns a change publisher
func NewPublisher(ctx context.Context, cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON, clock adapter.Clock) (messaging.ChangePublisher, error) {
	if cfg.SubjectPrefix == "" {
		cfg.SubjectPrefix = "marketplace"
	}
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = 5 * time.Second
	}

	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	if err := js.EnsureStream(ctx, cfg.StreamName, []string{cfg.SubjectPrefix + ".>"}); err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to ensure stream %s: %w", cfg.StreamName, err)
	}

	logger.Info("Connected to NATS JetStream",
		zap.String("url", nc.ConnectedUrl()),
		zap.String("stream", cfg.StreamName))

	return &publisher{
		nc:             nc,
		js:             js,
		subjectPrefix:  cfg.SubjectPrefix,
		publishTimeout: cfg.PublishTimeout,
		json:           jsonAdapter,
		clock:          clock,
	}, nil
}

// PublishChange publishes a change notification. The dedup id lets JetStream drop replays of the same event.
func (p *publisher) PublishChange(ctx context.Context, change *domain.Change) error {
	if change.ID == "" {
		change.ID = ulid.Make().String()
	}
	if change.Timestamp.IsZero() {
		change.Timestamp = p.clock.Now().UTC()
	}

	data, err := p.json.Marshal(change)
	if err != nil {
		return fmt.Errorf("failed to marshal change: %w", err)
	}

	subject := p.buildSubject(change)
	logger.DebugCtx(ctx, "Publishing change", zap.String("subject", subject), zap.String("key", change.Key))

	pubCtx, cancel := context.WithTimeout(ctx, p.publishTimeout)
	defer cancel()

	_, err = p.js.Publish(pubCtx, subject, data, natsjs.WithMsgID(change.DedupID()))
	if err != nil {
		return fmt.Errorf("failed to publish change: %w", err)
	}

	return nil
}

// buildSubject constructs the NATS subject, e.g. marketplace.listing.upserted
func (p *publisher) buildSubject(change *domain.Change) string {
	return fmt.Sprintf("%s.%s.%s", p.subjectPrefix, change.Entity, change.Action)
}

// Close drains pending publishes and closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	if err := p.nc.Drain(); err != nil {
		logger.Warn("Failed to drain NATS connection", zap.Error(err))
		p.nc.Close()
	}
}
