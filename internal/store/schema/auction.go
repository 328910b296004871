package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// Auction represents the auctions table
type Auction struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// AuctionID is the on-chain auction id as a decimal string
	AuctionID string `gorm:"column:auction_id;not null;uniqueIndex;type:text"`
	// TokenRef references the auctioned token
	TokenRef int64 `gorm:"column:token_ref;not null;index"`
	// ContractAddress is the NFT contract address
	ContractAddress string `gorm:"column:contract_address;not null;type:text"`
	// SellerAddress is the account that created the auction
	SellerAddress string `gorm:"column:seller_address;not null;type:text"`
	// ReservePrice is the reserve in the native display unit
	ReservePrice decimal.Decimal `gorm:"column:reserve_price;not null;type:numeric(78,18)"`
	// ReservePriceWei is the reserve in wei
	ReservePriceWei decimal.Decimal `gorm:"column:reserve_price_wei;not null;type:numeric(78,0)"`
	// HighestBid is the highest bid in the native display unit, zero until the first bid
	HighestBid decimal.Decimal `gorm:"column:highest_bid;not null;type:numeric(78,18);default:0"`
	// HighestBidWei is the highest bid in wei
	HighestBidWei decimal.Decimal `gorm:"column:highest_bid_wei;not null;type:numeric(78,0);default:0"`
	// HighestBidderAddress is the account holding the highest bid
	HighestBidderAddress *string `gorm:"column:highest_bidder_address;type:text"`
	// HighestBidBlock is the block of the highest bid, nil until the first bid
	HighestBidBlock *uint64 `gorm:"column:highest_bid_block"`
	// HighestBidLogIndex is the log index of the highest bid within its block
	HighestBidLogIndex *uint `gorm:"column:highest_bid_log_index"`
	// StartTime is the auction start
	StartTime time.Time `gorm:"column:start_time;not null"`
	// EndTime is the auction end
	EndTime time.Time `gorm:"column:end_time;not null"`
	// Amount is the number of editions auctioned
	Amount int64 `gorm:"column:amount;not null;default:1"`
	// IsERC1155 marks auctions of multi-edition tokens
	IsERC1155 bool `gorm:"column:is_erc1155;not null;default:false"`
	// IsSettled is set by AuctionSettled
	IsSettled bool `gorm:"column:is_settled;not null;default:false"`
	// WinnerAddress is the settled winner, nil until settlement
	WinnerAddress *string `gorm:"column:winner_address;type:text"`
	// TransactionHash is the hash of the AuctionCreated transaction
	TransactionHash string `gorm:"column:transaction_hash;not null;type:text"`
	// BlockNumber is the block of the AuctionCreated event
	BlockNumber uint64 `gorm:"column:block_number;not null"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`

	// Associations
	Bids []Bid `gorm:"foreignKey:AuctionRef;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Auction model
func (Auction) TableName() string {
	return "auctions"
}
