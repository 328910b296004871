package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of sale a transaction records
type TransactionType string

const (
	// TransactionTypePurchase is a fixed price listing purchase
	TransactionTypePurchase TransactionType = "purchase"
	// TransactionTypeOfferAccepted is an accepted offer
	TransactionTypeOfferAccepted TransactionType = "offer_accepted"
	// TransactionTypeAuctionSettled is a settled auction with a winner
	TransactionTypeAuctionSettled TransactionType = "auction_settled"
)

// TransactionStatus represents the status of a recorded transaction
type TransactionStatus string

const (
	// TransactionStatusConfirmed is set for every transaction observed in a log
	TransactionStatusConfirmed TransactionStatus = "confirmed"
)

// Transaction represents the transactions table - an append-only sales history
type Transaction struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TransactionHash is the on-chain transaction hash
	TransactionHash string `gorm:"column:transaction_hash;not null;type:text;uniqueIndex:idx_transactions_hash_type,priority:1"`
	// TransactionType is the kind of sale
	TransactionType TransactionType `gorm:"column:transaction_type;not null;type:text;uniqueIndex:idx_transactions_hash_type,priority:2"`
	// TokenRef references the sold token
	TokenRef int64 `gorm:"column:token_ref;not null;index"`
	// FromAddress is the seller, nil when unknown
	FromAddress *string `gorm:"column:from_address;type:text"`
	// ToAddress is the buyer or winner
	ToAddress string `gorm:"column:to_address;not null;type:text"`
	// Price is the sale price in the native display unit
	Price decimal.Decimal `gorm:"column:price;not null;type:numeric(78,18)"`
	// PriceWei is the sale price in wei
	PriceWei decimal.Decimal `gorm:"column:price_wei;not null;type:numeric(78,0)"`
	// Amount is the number of editions sold
	Amount int64 `gorm:"column:amount;not null;default:1"`
	// Status is always confirmed
	Status TransactionStatus `gorm:"column:status;not null;type:text;default:'confirmed'"`
	// BlockNumber is the block the transaction was mined in
	BlockNumber uint64 `gorm:"column:block_number;not null"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}
