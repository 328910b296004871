package store

import (
	"context"
	"math/big"
	"time"

	"gorm.io/datatypes"

	"github.com/feral-file/ff-marketplace-indexer/internal/domain"
	"github.com/feral-file/ff-marketplace-indexer/internal/store/schema"
)

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	CheckpointStore

	// GetCollectionByAddress retrieves a collection by its contract address, nil if unknown
	GetCollectionByAddress(ctx context.Context, contractAddress string) (*schema.Collection, error)
	// UpsertCollection creates a collection or raises its last sync block
	UpsertCollection(ctx context.Context, input UpsertCollectionInput) (*schema.Collection, error)

	// GetToken retrieves a token by contract address and on-chain token id, nil if unknown
	GetToken(ctx context.Context, contractAddress, tokenID string) (*schema.Token, error)
	// UpsertToken creates a token or refreshes its metadata
	UpsertToken(ctx context.Context, input UpsertTokenInput) (*schema.Token, error)
	// UpdateTokenOwner sets the owner unless a later block already did, reports whether the row changed
	UpdateTokenOwner(ctx context.Context, tokenRef int64, owner string, blockNumber uint64) (bool, error)

	// UpsertListing creates a listing keyed by its on-chain id
	UpsertListing(ctx context.Context, input UpsertListingInput) (*schema.Listing, error)
	// GetListingByListingID retrieves a listing by its on-chain id, nil if unknown
	GetListingByListingID(ctx context.Context, listingID string) (*schema.Listing, error)
	// DeactivateListing marks a listing inactive, nil if unknown
	DeactivateListing(ctx context.Context, listingID string) (*schema.Listing, error)

	// UpsertAuction creates an auction keyed by its on-chain id
	UpsertAuction(ctx context.Context, input UpsertAuctionInput) (*schema.Auction, error)
	// GetAuctionByAuctionID retrieves an auction by its on-chain id, nil if unknown
	GetAuctionByAuctionID(ctx context.Context, auctionID string) (*schema.Auction, error)
	// CreateBid appends a bid, reports false when the bid was already recorded
	CreateBid(ctx context.Context, input CreateBidInput) (bool, error)
	// RaiseHighestBid replaces the highest bid when the new bid is greater, or equal but earlier on chain
	RaiseHighestBid(ctx context.Context, input RaiseHighestBidInput) (bool, error)
	// SettleAuction marks an auction settled with its winner
	SettleAuction(ctx context.Context, auctionRef int64, winner *string) error

	// UpsertOffer creates an offer keyed by its on-chain id
	UpsertOffer(ctx context.Context, input UpsertOfferInput) (*schema.Offer, error)
	// GetOfferByOfferID retrieves an offer by its on-chain id, nil if unknown
	GetOfferByOfferID(ctx context.Context, offerID string) (*schema.Offer, error)
	// DeactivateOffer marks an offer inactive, nil if unknown
	DeactivateOffer(ctx context.Context, offerID string) (*schema.Offer, error)

	// CreateTransaction appends a sale, reports false when it was already recorded
	CreateTransaction(ctx context.Context, input CreateTransactionInput) (bool, error)
	// GetTransactionsByTokenRef lists the sales of a token, most recent first
	GetTransactionsByTokenRef(ctx context.Context, tokenRef int64) ([]schema.Transaction, error)

	// ListCheckpoints returns every sync checkpoint
	ListCheckpoints(ctx context.Context) ([]schema.SyncCheckpoint, error)
}

// UpsertCollectionInput represents the data needed to create a collection
type UpsertCollectionInput struct {
	ContractAddress string
	Name            string
	Symbol          string
	ContractType    domain.ContractType
	CreatorAddress  string
	LastSyncBlock   uint64
}

// UpsertTokenInput represents the data needed to create or refresh a token
type UpsertTokenInput struct {
	CollectionID  int64
	TokenID       string
	Name          string
	Description   string
	ImageURL      string
	MetadataURL   string
	Attributes    datatypes.JSON
	RawMetadata   datatypes.JSON
	MetadataHash  []byte
	OwnerAddress  *string
	LastSyncBlock uint64
}

// UpsertListingInput represents a Listed event
type UpsertListingInput struct {
	ListingID       string
	TokenRef        int64
	ContractAddress string
	SellerAddress   string
	PriceWei        *big.Int
	Amount          int64
	IsERC1155       bool
	TransactionHash string
	BlockNumber     uint64
}

// UpsertAuctionInput represents an AuctionCreated event
type UpsertAuctionInput struct {
	AuctionID       string
	TokenRef        int64
	ContractAddress string
	SellerAddress   string
	ReserveWei      *big.Int
	StartTime       time.Time
	EndTime         time.Time
	Amount          int64
	IsERC1155       bool
	TransactionHash string
	BlockNumber     uint64
}

// CreateBidInput represents a BidPlaced event
type CreateBidInput struct {
	AuctionRef      int64
	BidderAddress   string
	AmountWei       *big.Int
	TransactionHash string
	BlockNumber     uint64
}

// RaiseHighestBidInput is a bid competing for the highest bid of an auction
type RaiseHighestBidInput struct {
	AuctionRef    int64
	BidderAddress string
	AmountWei     *big.Int
	BlockNumber   uint64
	LogIndex      uint
}

// UpsertOfferInput represents an OfferMade event
type UpsertOfferInput struct {
	OfferID         string
	TokenRef        int64
	ContractAddress string
	BuyerAddress    string
	PriceWei        *big.Int
	Amount          int64
	Expiry          time.Time
	IsERC1155       bool
	TransactionHash string
	BlockNumber     uint64
}

// CreateTransactionInput represents a sale observed on chain
type CreateTransactionInput struct {
	TransactionHash string
	TransactionType schema.TransactionType
	TokenRef        int64
	FromAddress     *string
	ToAddress       string
	PriceWei        *big.Int
	Amount          int64
	BlockNumber     uint64
}
