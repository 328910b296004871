package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-marketplace-indexer/internal/domain"
	"github.com/feral-file/ff-marketplace-indexer/internal/store/schema"
)

// CheckpointStore defines the interface for storing and retrieving sync checkpoints
//
//go:generate mockgen -source=checkpoint_store.go -destination=../mocks/checkpoint_store.go -package=mocks -mock_names=CheckpointStore=MockCheckpointStore
type CheckpointStore interface {
	// GetLastProcessedBlock retrieves the last fully processed block, nil when no checkpoint exists
	GetLastProcessedBlock(ctx context.Context, contractAddress string, category domain.Category) (*uint64, error)
	// SetLastProcessedBlock stores the last fully processed block, never moving it backwards
	SetLastProcessedBlock(ctx context.Context, contractAddress string, category domain.Category, blockNumber uint64) error
}

type checkpointStore struct {
	db *gorm.DB
}

// NewCheckpointStore creates a new checkpoint store
func NewCheckpointStore(db *gorm.DB) CheckpointStore {
	return &checkpointStore{db: db}
}

func (s *checkpointStore) GetLastProcessedBlock(ctx context.Context, contractAddress string, category domain.Category) (*uint64, error) {
	var checkpoint schema.SyncCheckpoint
	err := s.db.WithContext(ctx).
		Where("contract_address = ? AND category = ?", domain.NormalizeAddress(contractAddress), string(category)).
		First(&checkpoint).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get checkpoint: %w", err)
	}

	return &checkpoint.LastProcessedBlock, nil
}

func (s *checkpointStore) SetLastProcessedBlock(ctx context.Context, contractAddress string, category domain.Category, blockNumber uint64) error {
	checkpoint := schema.SyncCheckpoint{
		ContractAddress:    domain.NormalizeAddress(contractAddress),
		Category:           string(category),
		LastProcessedBlock: blockNumber,
		UpdatedAt:          time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "contract_address"}, {Name: "category"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"last_processed_block": gorm.Expr("GREATEST(sync_checkpoints.last_processed_block, EXCLUDED.last_processed_block)"),
				"updated_at":           gorm.Expr("EXCLUDED.updated_at"),
			}),
		}).
		Create(&checkpoint).Error
	if err != nil {
		return fmt.Errorf("failed to set checkpoint: %w", err)
	}

	return nil
}
