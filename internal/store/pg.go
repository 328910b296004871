package store

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-marketplace-indexer/internal/domain"
	"github.com/feral-file/ff-marketplace-indexer/internal/store/schema"
)

type pgStore struct {
	CheckpointStore
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{
		CheckpointStore: NewCheckpointStore(db),
		db:              db,
	}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// Zero values fall back to the defaults of NormalizeConnectionPoolSettings.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 10
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns <= 0 {
		maxOpenConns = 10
	}
	if maxIdleConns <= 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime <= 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime <= 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// weiDecimal stores a wei amount in a numeric(78,0) column
func weiDecimal(wei *big.Int) decimal.Decimal {
	if wei == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(wei, 0)
}

// first runs a First query and maps a missing row to nil
func first[T any](q *gorm.DB) (*T, error) {
	var out T
	if err := q.First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

// GetCollectionByAddress retrieves a collection by its contract address
func (s *pgStore) GetCollectionByAddress(ctx context.Context, contractAddress string) (*schema.Collection, error) {
	collection, err := first[schema.Collection](s.db.WithContext(ctx).
		Where("contract_address = ?", domain.NormalizeAddress(contractAddress)))
	if err != nil {
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	return collection, nil
}

// UpsertCollection creates the collection on first sighting. Later calls only raise last_sync_block.
func (s *pgStore) UpsertCollection(ctx context.Context, input UpsertCollectionInput) (*schema.Collection, error) {
	contract := domain.NormalizeAddress(input.ContractAddress)
	creator := input.CreatorAddress
	if creator == "" {
		creator = contract
	}
	name := input.Name
	if name == "" {
		name = domain.DEFAULT_COLLECTION_NAME
	}

	collection := schema.Collection{
		ContractAddress: contract,
		Name:            name,
		Symbol:          input.Symbol,
		Standard:        schema.Standard(input.ContractType),
		CreatorAddress:  domain.NormalizeAddress(creator),
		LastSyncBlock:   input.LastSyncBlock,
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "contract_address"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				// a resolved name or symbol replaces the placeholder left by a failed lookup, never a real one
				"name": gorm.Expr("CASE WHEN collections.name = ? THEN EXCLUDED.name ELSE collections.name END",
					domain.DEFAULT_COLLECTION_NAME),
				"symbol":          gorm.Expr("CASE WHEN collections.symbol = '' THEN EXCLUDED.symbol ELSE collections.symbol END"),
				"last_sync_block": gorm.Expr("GREATEST(collections.last_sync_block, EXCLUDED.last_sync_block)"),
				"updated_at":      gorm.Expr("now()"),
			}),
		}).
		Create(&collection).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert collection: %w", err)
	}

	return s.GetCollectionByAddress(ctx, contract)
}

// GetToken retrieves a token by contract address and on-chain token id
func (s *pgStore) GetToken(ctx context.Context, contractAddress, tokenID string) (*schema.Token, error) {
	token, err := first[schema.Token](s.db.WithContext(ctx).
		Preload("Collection").
		Joins("JOIN collections ON collections.id = tokens.collection_id").
		Where("collections.contract_address = ? AND tokens.token_id = ?", domain.NormalizeAddress(contractAddress), tokenID))
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}
	return token, nil
}

// UpsertToken creates the token or refreshes its metadata. The owner is only replaced by a non-null value.
func (s *pgStore) UpsertToken(ctx context.Context, input UpsertTokenInput) (*schema.Token, error) {
	token := schema.Token{
		CollectionID:  input.CollectionID,
		TokenID:       input.TokenID,
		Name:          input.Name,
		Description:   input.Description,
		ImageURL:      input.ImageURL,
		MetadataURL:   input.MetadataURL,
		Attributes:    input.Attributes,
		RawMetadata:   input.RawMetadata,
		MetadataHash:  input.MetadataHash,
		OwnerAddress:  input.OwnerAddress,
		LastSyncBlock: input.LastSyncBlock,
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "collection_id"}, {Name: "token_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"name":            gorm.Expr("EXCLUDED.name"),
				"description":     gorm.Expr("EXCLUDED.description"),
				"image_url":       gorm.Expr("EXCLUDED.image_url"),
				"metadata_url":    gorm.Expr("EXCLUDED.metadata_url"),
				"attributes":      gorm.Expr("EXCLUDED.attributes"),
				"raw_metadata":    gorm.Expr("EXCLUDED.raw_metadata"),
				"metadata_hash":   gorm.Expr("EXCLUDED.metadata_hash"),
				"owner_address":   gorm.Expr("COALESCE(EXCLUDED.owner_address, tokens.owner_address)"),
				"last_sync_block": gorm.Expr("GREATEST(tokens.last_sync_block, EXCLUDED.last_sync_block)"),
				"updated_at":      gorm.Expr("now()"),
			}),
		}).
		Create(&token).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert token: %w", err)
	}

	stored, err := first[schema.Token](s.db.WithContext(ctx).
		Preload("Collection").
		Where("collection_id = ? AND token_id = ?", input.CollectionID, input.TokenID))
	if err != nil {
		return nil, fmt.Errorf("failed to reload token: %w", err)
	}
	if stored == nil {
		return nil, domain.ErrTokenNotFound
	}
	return stored, nil
}

// UpdateTokenOwner sets the owner of a token. A replayed event from an older block never overrides a newer owner.
func (s *pgStore) UpdateTokenOwner(ctx context.Context, tokenRef int64, owner string, blockNumber uint64) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&schema.Token{}).
		Where("id = ? AND owner_block <= ?", tokenRef, blockNumber).
		Updates(map[string]interface{}{
			"owner_address":   domain.NormalizeAddress(owner),
			"owner_block":     blockNumber,
			"last_sync_block": gorm.Expr("GREATEST(last_sync_block, ?)", blockNumber),
			"updated_at":      time.Now().UTC(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to update token owner: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// UpsertListing creates a listing. A replayed Listed event leaves the active flag untouched.
func (s *pgStore) UpsertListing(ctx context.Context, input UpsertListingInput) (*schema.Listing, error) {
	amount := input.Amount
	if amount <= 0 {
		amount = 1
	}
	listing := schema.Listing{
		ListingID:       input.ListingID,
		TokenRef:        input.TokenRef,
		ContractAddress: domain.NormalizeAddress(input.ContractAddress),
		SellerAddress:   domain.NormalizeAddress(input.SellerAddress),
		Price:           domain.WeiToDecimal(input.PriceWei),
		PriceWei:        weiDecimal(input.PriceWei),
		Amount:          amount,
		IsERC1155:       input.IsERC1155,
		ListingType:     schema.ListingTypeFixedPrice,
		IsActive:        true,
		TransactionHash: input.TransactionHash,
		BlockNumber:     input.BlockNumber,
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "listing_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"token_ref", "seller_address", "price", "price_wei", "amount", "transaction_hash", "block_number"}),
		}).
		Create(&listing).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert listing: %w", err)
	}

	return s.GetListingByListingID(ctx, input.ListingID)
}

// GetListingByListingID retrieves a listing by its on-chain id
func (s *pgStore) GetListingByListingID(ctx context.Context, listingID string) (*schema.Listing, error) {
	listing, err := first[schema.Listing](s.db.WithContext(ctx).Where("listing_id = ?", listingID))
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return listing, nil
}

// DeactivateListing marks a listing inactive
func (s *pgStore) DeactivateListing(ctx context.Context, listingID string) (*schema.Listing, error) {
	var listings []schema.Listing
	err := s.db.WithContext(ctx).
		Model(&listings).
		Clauses(clause.Returning{}).
		Where("listing_id = ?", listingID).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now().UTC(),
		}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to deactivate listing: %w", err)
	}
	if len(listings) == 0 {
		return nil, nil
	}
	return &listings[0], nil
}

// UpsertAuction creates an auction with no bids. A replayed AuctionCreated event keeps bids and settlement.
func (s *pgStore) UpsertAuction(ctx context.Context, input UpsertAuctionInput) (*schema.Auction, error) {
	amount := input.Amount
	if amount <= 0 {
		amount = 1
	}
	auction := schema.Auction{
		AuctionID:       input.AuctionID,
		TokenRef:        input.TokenRef,
		ContractAddress: domain.NormalizeAddress(input.ContractAddress),
		SellerAddress:   domain.NormalizeAddress(input.SellerAddress),
		ReservePrice:    domain.WeiToDecimal(input.ReserveWei),
		ReservePriceWei: weiDecimal(input.ReserveWei),
		HighestBid:      decimal.Zero,
		HighestBidWei:   decimal.Zero,
		StartTime:       input.StartTime.UTC(),
		EndTime:         input.EndTime.UTC(),
		Amount:          amount,
		IsERC1155:       input.IsERC1155,
		TransactionHash: input.TransactionHash,
		BlockNumber:     input.BlockNumber,
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "auction_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"token_ref", "seller_address", "reserve_price", "reserve_price_wei", "start_time", "end_time", "amount", "transaction_hash", "block_number"}),
		}).
		Create(&auction).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert auction: %w", err)
	}

	return s.GetAuctionByAuctionID(ctx, input.AuctionID)
}

// GetAuctionByAuctionID retrieves an auction by its on-chain id
func (s *pgStore) GetAuctionByAuctionID(ctx context.Context, auctionID string) (*schema.Auction, error) {
	auction, err := first[schema.Auction](s.db.WithContext(ctx).Where("auction_id = ?", auctionID))
	if err != nil {
		return nil, fmt.Errorf("failed to get auction: %w", err)
	}
	return auction, nil
}

// CreateBid appends a bid to the bid log
func (s *pgStore) CreateBid(ctx context.Context, input CreateBidInput) (bool, error) {
	bid := schema.Bid{
		AuctionRef:      input.AuctionRef,
		BidderAddress:   domain.NormalizeAddress(input.BidderAddress),
		Amount:          domain.WeiToDecimal(input.AmountWei),
		AmountWei:       weiDecimal(input.AmountWei),
		TransactionHash: input.TransactionHash,
		BlockNumber:     input.BlockNumber,
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "auction_ref"}, {Name: "transaction_hash"}},
			DoNothing: true,
		}).
		Create(&bid)
	if result.Error != nil {
		return false, fmt.Errorf("failed to create bid: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// RaiseHighestBid is a single conditional UPDATE ordered by (amount, block, log index).
// An equal amount only wins when it was emitted before the incumbent.
func (s *pgStore) RaiseHighestBid(ctx context.Context, input RaiseHighestBidInput) (bool, error) {
	wei := weiDecimal(input.AmountWei)
	result := s.db.WithContext(ctx).
		Model(&schema.Auction{}).
		Where("id = ?", input.AuctionRef).
		Where("highest_bid_wei < ? OR (highest_bid_wei = ? AND (highest_bid_block, highest_bid_log_index) > (?, ?))",
			wei, wei, input.BlockNumber, input.LogIndex).
		Updates(map[string]interface{}{
			"highest_bid":            domain.WeiToDecimal(input.AmountWei),
			"highest_bid_wei":        wei,
			"highest_bidder_address": domain.NormalizeAddress(input.BidderAddress),
			"highest_bid_block":      input.BlockNumber,
			"highest_bid_log_index":  input.LogIndex,
			"updated_at":             time.Now().UTC(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to raise highest bid: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// SettleAuction marks an auction settled. A nil winner means the auction ended without bids.
func (s *pgStore) SettleAuction(ctx context.Context, auctionRef int64, winner *string) error {
	updates := map[string]interface{}{
		"is_settled": true,
		"updated_at": time.Now().UTC(),
	}
	if winner != nil {
		updates["winner_address"] = domain.NormalizeAddress(*winner)
	}

	err := s.db.WithContext(ctx).
		Model(&schema.Auction{}).
		Where("id = ?", auctionRef).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("failed to settle auction: %w", err)
	}
	return nil
}

// UpsertOffer creates an offer. A replayed OfferMade event leaves the active flag untouched.
func (s *pgStore) UpsertOffer(ctx context.Context, input UpsertOfferInput) (*schema.Offer, error) {
	amount := input.Amount
	if amount <= 0 {
		amount = 1
	}
	offer := schema.Offer{
		OfferID:         input.OfferID,
		TokenRef:        input.TokenRef,
		ContractAddress: domain.NormalizeAddress(input.ContractAddress),
		BuyerAddress:    domain.NormalizeAddress(input.BuyerAddress),
		Price:           domain.WeiToDecimal(input.PriceWei),
		PriceWei:        weiDecimal(input.PriceWei),
		Amount:          amount,
		Expiry:          input.Expiry.UTC(),
		IsERC1155:       input.IsERC1155,
		IsActive:        true,
		TransactionHash: input.TransactionHash,
		BlockNumber:     input.BlockNumber,
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "offer_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"token_ref", "buyer_address", "price", "price_wei", "amount", "expiry", "transaction_hash", "block_number"}),
		}).
		Create(&offer).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert offer: %w", err)
	}

	return s.GetOfferByOfferID(ctx, input.OfferID)
}

// GetOfferByOfferID retrieves an offer by its on-chain id
func (s *pgStore) GetOfferByOfferID(ctx context.Context, offerID string) (*schema.Offer, error) {
	offer, err := first[schema.Offer](s.db.WithContext(ctx).Where("offer_id = ?", offerID))
	if err != nil {
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}
	return offer, nil
}

// DeactivateOffer marks an offer inactive
func (s *pgStore) DeactivateOffer(ctx context.Context, offerID string) (*schema.Offer, error) {
	var offers []schema.Offer
	err := s.db.WithContext(ctx).
		Model(&offers).
		Clauses(clause.Returning{}).
		Where("offer_id = ?", offerID).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now().UTC(),
		}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to deactivate offer: %w", err)
	}
	if len(offers) == 0 {
		return nil, nil
	}
	return &offers[0], nil
}

// CreateTransaction appends a sale to the transaction history
func (s *pgStore) CreateTransaction(ctx context.Context, input CreateTransactionInput) (bool, error) {
	amount := input.Amount
	if amount <= 0 {
		amount = 1
	}
	var from *string
	if input.FromAddress != nil {
		normalized := domain.NormalizeAddress(*input.FromAddress)
		from = &normalized
	}

	tx := schema.Transaction{
		TransactionHash: input.TransactionHash,
		TransactionType: input.TransactionType,
		TokenRef:        input.TokenRef,
		FromAddress:     from,
		ToAddress:       domain.NormalizeAddress(input.ToAddress),
		Price:           domain.WeiToDecimal(input.PriceWei),
		PriceWei:        weiDecimal(input.PriceWei),
		Amount:          amount,
		Status:          schema.TransactionStatusConfirmed,
		BlockNumber:     input.BlockNumber,
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "transaction_hash"}, {Name: "transaction_type"}},
			DoNothing: true,
		}).
		Create(&tx)
	if result.Error != nil {
		return false, fmt.Errorf("failed to create transaction: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// GetTransactionsByTokenRef lists the sales of a token, most recent first
func (s *pgStore) GetTransactionsByTokenRef(ctx context.Context, tokenRef int64) ([]schema.Transaction, error) {
	var txs []schema.Transaction
	err := s.db.WithContext(ctx).
		Where("token_ref = ?", tokenRef).
		Order("block_number DESC, id DESC").
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return txs, nil
}

// ListCheckpoints returns every sync checkpoint
func (s *pgStore) ListCheckpoints(ctx context.Context) ([]schema.SyncCheckpoint, error) {
	var checkpoints []schema.SyncCheckpoint
	err := s.db.WithContext(ctx).
		Order("contract_address, category").
		Find(&checkpoints).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list checkpoints: %w", err)
	}
	return checkpoints, nil
}
