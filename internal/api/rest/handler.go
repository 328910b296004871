package rest

import (
	"errors"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace-indexer/internal/api/rest/dto"
	"github.com/feral-file/ff-marketplace-indexer/internal/domain"
	"github.com/feral-file/ff-marketplace-indexer/internal/reconciler"
	"github.com/feral-file/ff-marketplace-indexer/internal/store"
	"github.com/feral-file/ff-marketplace-indexer/internal/syncer"
)

// Handler defines the interface for the ops REST handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// GetSyncStatus returns the orchestrator state and a snapshot of every worker
	// GET /api/v1/sync/status
	GetSyncStatus(c *gin.Context)

	// ListCheckpoints returns every stored checkpoint
	// GET /api/v1/sync/checkpoints
	ListCheckpoints(c *gin.Context)

	// TriggerScan scans a configured contract immediately and waits for the scan (requires authentication)
	// POST /api/v1/sync/scan
	TriggerScan(c *gin.Context)

	// RefreshTokenMetadata resolves the metadata of a known token again (requires authentication)
	// POST /api/v1/tokens/metadata/refresh
	RefreshTokenMetadata(c *gin.Context)

	// HealthCheck returns the health status of the service
	// GET /health
	HealthCheck(c *gin.Context)
}

type handler struct {
	orchestrator syncer.Orchestrator
	store        store.Store
	reconciler   reconciler.Reconciler
}

// NewHandler creates a new REST API handler
func NewHandler(orchestrator syncer.Orchestrator, st store.Store, rec reconciler.Reconciler) Handler {
	return &handler{
		orchestrator: orchestrator,
		store:        st,
		reconciler:   rec,
	}
}

func (h *handler) GetSyncStatus(c *gin.Context) {
	c.JSON(http.StatusOK, dto.SyncStatusResponse{
		State:   h.orchestrator.State(),
		Workers: h.orchestrator.Status(),
	})
}

func (h *handler) ListCheckpoints(c *gin.Context) {
	checkpoints, err := h.store.ListCheckpoints(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to list checkpoints")
		return
	}

	c.JSON(http.StatusOK, dto.MapCheckpoints(checkpoints))
}

func (h *handler) TriggerScan(c *gin.Context) {
	var req dto.TriggerScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if !common.IsHexAddress(req.ContractAddress) {
		respondBadRequest(c, "Invalid contract address", req.ContractAddress)
		return
	}

	err := h.orchestrator.TriggerScan(c.Request.Context(), req.ContractAddress)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrUnknownContract):
		respondNotFound(c, "Contract is not synced", req.ContractAddress)
		return
	case errors.Is(err, domain.ErrNotRunning):
		respondConflict(c, "Sync is not running")
		return
	default:
		respondInternalError(c, err, "Scan failed", zap.String("contract", req.ContractAddress))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "completed"})
}

func (h *handler) RefreshTokenMetadata(c *gin.Context) {
	var req dto.RefreshMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if !common.IsHexAddress(req.ContractAddress) {
		respondBadRequest(c, "Invalid contract address", req.ContractAddress)
		return
	}
	if _, ok := new(big.Int).SetString(req.TokenID, 10); !ok {
		respondBadRequest(c, "Token ID must be a decimal number", req.TokenID)
		return
	}

	token, err := h.reconciler.RefreshToken(c.Request.Context(), req.ContractAddress, req.TokenID)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			respondNotFound(c, "Token not found")
			return
		}
		respondInternalError(c, err, "Failed to refresh token metadata",
			zap.String("contract", req.ContractAddress),
			zap.String("token_id", req.TokenID))
		return
	}

	c.JSON(http.StatusOK, dto.MapToken(token))
}

func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "marketplace-sync",
		"sync":    h.orchestrator.State(),
	})
}
