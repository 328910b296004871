package reconciler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-marketplace-indexer/internal/adapter"
	"github.com/feral-file/ff-marketplace-indexer/internal/domain"
	"github.com/feral-file/ff-marketplace-indexer/internal/logger"
	"github.com/feral-file/ff-marketplace-indexer/internal/messaging"
	"github.com/feral-file/ff-marketplace-indexer/internal/metadata"
	"github.com/feral-file/ff-marketplace-indexer/internal/metrics"
	"github.com/feral-file/ff-marketplace-indexer/internal/store"
	"github.com/feral-file/ff-marketplace-indexer/internal/store/schema"
)

// Reconciler maps decoded marketplace events to idempotent store writes
//
//go:generate mockgen -source=reconciler.go -destination=../mocks/reconciler.go -package=mocks -mock_names=Reconciler=MockReconciler
type Reconciler interface {
	// Handle applies a decoded event. Tokens referenced by the event are resolved before any dependent row is written.
	// A returned error means the event must be retried.
	Handle(ctx context.Context, event *domain.DecodedEvent) error

	// RefreshToken re-resolves the metadata of a known token and stores the result
	RefreshToken(ctx context.Context, contractAddress, tokenID string) (*schema.Token, error)
}

// Config holds reconciler settings
type Config struct {
	Chain          domain.Chain
	TokenCacheSize int
}

type handlerFunc func(ctx context.Context, event *domain.DecodedEvent) error

type reconciler struct {
	chain     domain.Chain
	store     store.Store
	resolver  metadata.Resolver
	publisher messaging.ChangePublisher
	json      adapter.JSON
	metrics   *metrics.Metrics
	tokens    *lru.Cache[string, int64]
	handlers  map[domain.EventName]handlerFunc
}

// New creates a reconciler
func New(cfg Config, st store.Store, resolver metadata.Resolver, publisher messaging.ChangePublisher, json adapter.JSON, m *metrics.Metrics) (Reconciler, error) {
	if cfg.TokenCacheSize <= 0 {
		cfg.TokenCacheSize = 10000
	}
	tokens, err := lru.New[string, int64](cfg.TokenCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create token cache: %w", err)
	}

	r := &reconciler{
		chain:     cfg.Chain,
		store:     st,
		resolver:  resolver,
		publisher: publisher,
		json:      json,
		metrics:   m,
		tokens:    tokens,
	}
	r.handlers = map[domain.EventName]handlerFunc{
		domain.EventListed:         r.handleListed,
		domain.EventPurchased:      r.handlePurchased,
		domain.EventUnlisted:       r.handleUnlisted,
		domain.EventAuctionCreated: r.handleAuctionCreated,
		domain.EventBidPlaced:      r.handleBidPlaced,
		domain.EventAuctionSettled: r.handleAuctionSettled,
		domain.EventOfferMade:      r.handleOfferMade,
		domain.EventOfferAccepted:  r.handleOfferAccepted,
		domain.EventOfferCancelled: r.handleOfferCancelled,
	}
	return r, nil
}

func (r *reconciler) Handle(ctx context.Context, event *domain.DecodedEvent) error {
	if event == nil {
		return nil
	}

	handler, ok := r.handlers[event.Name]
	if !ok {
		logger.WarnCtx(ctx, "No handler for event", zap.String("event", string(event.Name)))
		return nil
	}

	if err := handler(ctx, event); err != nil {
		return fmt.Errorf("failed to handle %s at %s: %w", event.Name, event.Key(), err)
	}
	return nil
}

// tokenKey identifies a token in the known-token cache
func tokenKey(contractAddress, tokenID string) string {
	return strings.ToLower(contractAddress) + "/" + tokenID
}

// resolveToken makes sure the collection and token rows exist and returns the token reference.
// Metadata is only resolved when the token has never been stored.
func (r *reconciler) resolveToken(ctx context.Context, event *domain.DecodedEvent, contractAddress, tokenID string, isERC1155 bool) (int64, error) {
	key := tokenKey(contractAddress, tokenID)
	if ref, ok := r.tokens.Get(key); ok {
		return ref, nil
	}

	token, err := r.store.GetToken(ctx, contractAddress, tokenID)
	if err != nil {
		return 0, err
	}
	if token != nil {
		r.tokens.Add(key, token.ID)
		return token.ID, nil
	}

	info, err := r.resolver.CollectionInfo(ctx, contractAddress, isERC1155)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve collection: %w", err)
	}

	collection, err := r.store.UpsertCollection(ctx, store.UpsertCollectionInput{
		ContractAddress: contractAddress,
		Name:            info.Name,
		Symbol:          info.Symbol,
		ContractType:    info.ContractType,
		LastSyncBlock:   event.BlockNumber,
	})
	if err != nil {
		return 0, err
	}
	r.publish(ctx, event, domain.ChangeEntityCollection, domain.ChangeActionUpserted, collection.ContractAddress)

	md, err := r.resolver.Resolve(ctx, contractAddress, tokenID, isERC1155)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve token metadata: %w", err)
	}
	r.metrics.RecordMetadataResolution(md.RawHash == nil)

	input, err := r.tokenInput(collection, md, event.BlockNumber)
	if err != nil {
		return 0, err
	}

	token, err = r.store.UpsertToken(ctx, input)
	if err != nil {
		return 0, err
	}
	r.publish(ctx, event, domain.ChangeEntityToken, domain.ChangeActionUpserted, strconv.FormatInt(token.ID, 10))

	logger.InfoCtx(ctx, "Indexed new token",
		zap.String("contract", contractAddress),
		zap.String("token_id", tokenID),
		zap.String("name", token.Name))

	r.tokens.Add(key, token.ID)
	return token.ID, nil
}

// tokenInput maps resolved metadata to a token row. Missing names fall back to "<collection> #<id>".
func (r *reconciler) tokenInput(collection *schema.Collection, md *domain.TokenMetadata, block uint64) (store.UpsertTokenInput, error) {
	input := store.UpsertTokenInput{
		CollectionID:  collection.ID,
		TokenID:       md.TokenID,
		Name:          md.Name,
		Description:   md.Description,
		ImageURL:      md.Image,
		MetadataURL:   md.MetadataURI,
		MetadataHash:  md.RawHash,
		LastSyncBlock: block,
	}
	if input.Name == "" {
		input.Name = fmt.Sprintf("%s #%s", collection.Name, md.TokenID)
	}
	if md.Owner != "" {
		owner := md.Owner
		input.OwnerAddress = &owner
	}

	if md.Attributes != nil {
		attrs, err := r.json.Marshal(md.Attributes)
		if err != nil {
			return input, fmt.Errorf("failed to marshal attributes: %w", err)
		}
		input.Attributes = datatypes.JSON(attrs)
	}
	if md.Raw != nil {
		raw, err := r.json.Marshal(md.Raw)
		if err != nil {
			return input, fmt.Errorf("failed to marshal metadata: %w", err)
		}
		input.RawMetadata = datatypes.JSON(raw)
	}

	return input, nil
}

func (r *reconciler) RefreshToken(ctx context.Context, contractAddress, tokenID string) (*schema.Token, error) {
	token, err := r.store.GetToken(ctx, contractAddress, tokenID)
	if err != nil {
		return nil, err
	}
	if token == nil || token.Collection == nil {
		return nil, domain.ErrTokenNotFound
	}

	isERC1155 := token.Collection.Standard == schema.StandardERC1155
	md, err := r.resolver.Resolve(ctx, token.Collection.ContractAddress, tokenID, isERC1155)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve token metadata: %w", err)
	}
	r.metrics.RecordMetadataResolution(md.RawHash == nil)

	input, err := r.tokenInput(token.Collection, md, token.LastSyncBlock)
	if err != nil {
		return nil, err
	}

	refreshed, err := r.store.UpsertToken(ctx, input)
	if err != nil {
		return nil, err
	}
	r.publish(ctx, nil, domain.ChangeEntityToken, domain.ChangeActionUpdated, strconv.FormatInt(refreshed.ID, 10))

	return refreshed, nil
}

// publish sends a change notification. Failures are logged and never fail the event.
func (r *reconciler) publish(ctx context.Context, event *domain.DecodedEvent, entity domain.ChangeEntity, action domain.ChangeAction, key string) {
	change := &domain.Change{
		Chain:  r.chain,
		Entity: entity,
		Action: action,
		Key:    key,
	}
	if event != nil {
		change.ContractAddress = event.ContractAddress
		change.Event = event.Name
		change.TxHash = event.TxHash
		change.LogIndex = event.LogIndex
		change.BlockNumber = event.BlockNumber
	}

	if err := r.publisher.PublishChange(ctx, change); err != nil {
		r.metrics.RecordPublishFailure()
		logger.WarnCtx(ctx, "Failed to publish change",
			zap.String("entity", string(entity)),
			zap.String("key", key),
			zap.Error(err))
	}
}
