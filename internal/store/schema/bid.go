package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bid represents the auction_bids table - an append-only log of BidPlaced events
type Bid struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// AuctionRef references the auction the bid was placed on
	AuctionRef int64 `gorm:"column:auction_ref;not null;uniqueIndex:idx_auction_bids_auction_tx,priority:1"`
	// BidderAddress is the account that placed the bid
	BidderAddress string `gorm:"column:bidder_address;not null;type:text"`
	// Amount is the bid in the native display unit
	Amount decimal.Decimal `gorm:"column:amount;not null;type:numeric(78,18)"`
	// AmountWei is the bid in wei
	AmountWei decimal.Decimal `gorm:"column:amount_wei;not null;type:numeric(78,0)"`
	// TransactionHash is the hash of the BidPlaced transaction
	TransactionHash string `gorm:"column:transaction_hash;not null;type:text;uniqueIndex:idx_auction_bids_auction_tx,priority:2"`
	// BlockNumber is the block of the BidPlaced event
	BlockNumber uint64 `gorm:"column:block_number;not null"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the Bid model
func (Bid) TableName() string {
	return "auction_bids"
}
