package messaging

import (
	"context"

	"github.com/feral-file/ff-marketplace-indexer/internal/domain"
)

// ChangePublisher defines the interface for notifying read-side consumers about committed writes
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=ChangePublisher=MockChangePublisher
type ChangePublisher interface {
	// PublishChange publishes a change notification to the message broker
	PublishChange(ctx context.Context, change *domain.Change) error
	// Close drains and closes the connection
	Close()
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every change, used when no broker is configured
func NewNoopPublisher() ChangePublisher {
	return noopPublisher{}
}

func (noopPublisher) PublishChange(context.Context, *domain.Change) error { return nil }

func (noopPublisher) Close() {}
