package dto

import (
	"encoding/json"
	"time"

	"github.com/feral-file/ff-marketplace-indexer/internal/store/schema"
	"github.com/feral-file/ff-marketplace-indexer/internal/syncer"
)

// SyncStatusResponse is the orchestrator state with one entry per worker
type SyncStatusResponse struct {
	State   syncer.State          `json:"state"`
	Workers []syncer.WorkerStatus `json:"workers"`
}

// CheckpointResponse is the last fully processed block of a (contract, category) pair
type CheckpointResponse struct {
	ContractAddress    string    `json:"contract_address"`
	Category           string    `json:"category"`
	LastProcessedBlock uint64    `json:"last_processed_block"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TokenResponse is a token after a metadata refresh
type TokenResponse struct {
	ID            int64           `json:"id"`
	TokenID       string          `json:"token_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	ImageURL      string          `json:"image_url"`
	MetadataURL   string          `json:"metadata_url"`
	Attributes    json.RawMessage `json:"attributes,omitempty"`
	OwnerAddress  *string         `json:"owner_address"`
	LastSyncBlock uint64          `json:"last_sync_block"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TriggerScanRequest asks for an immediate scan of a configured contract
type TriggerScanRequest struct {
	ContractAddress string `json:"contract_address" binding:"required"`
}

// RefreshMetadataRequest asks for the metadata of a known token to be resolved again
type RefreshMetadataRequest struct {
	ContractAddress string `json:"contract_address" binding:"required"`
	TokenID         string `json:"token_id" binding:"required"`
}

// MapCheckpoints converts checkpoint rows to responses
func MapCheckpoints(checkpoints []schema.SyncCheckpoint) []CheckpointResponse {
	resp := make([]CheckpointResponse, 0, len(checkpoints))
	for _, cp := range checkpoints {
		resp = append(resp, CheckpointResponse{
			ContractAddress:    cp.ContractAddress,
			Category:           cp.Category,
			LastProcessedBlock: cp.LastProcessedBlock,
			UpdatedAt:          cp.UpdatedAt,
		})
	}
	return resp
}

// MapToken converts a token row to its response
func MapToken(token *schema.Token) TokenResponse {
	resp := TokenResponse{
		ID:            token.ID,
		TokenID:       token.TokenID,
		Name:          token.Name,
		Description:   token.Description,
		ImageURL:      token.ImageURL,
		MetadataURL:   token.MetadataURL,
		OwnerAddress:  token.OwnerAddress,
		LastSyncBlock: token.LastSyncBlock,
		UpdatedAt:     token.UpdatedAt,
	}
	if len(token.Attributes) > 0 {
		resp.Attributes = json.RawMessage(token.Attributes)
	}
	return resp
}
