package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// Offer represents the offers table - a buyer offer created by an OfferMade event
type Offer struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// OfferID is the on-chain offer id as a decimal string
	OfferID string `gorm:"column:offer_id;not null;uniqueIndex;type:text"`
	// TokenRef references the token the offer is made for
	TokenRef int64 `gorm:"column:token_ref;not null;index"`
	// ContractAddress is the NFT contract address
	ContractAddress string `gorm:"column:contract_address;not null;type:text"`
	// BuyerAddress is the account making the offer
	BuyerAddress string `gorm:"column:buyer_address;not null;type:text"`
	// Price is the offered price in the native display unit
	Price decimal.Decimal `gorm:"column:price;not null;type:numeric(78,18)"`
	// PriceWei is the offered price in wei
	PriceWei decimal.Decimal `gorm:"column:price_wei;not null;type:numeric(78,0)"`
	// Amount is the number of editions requested
	Amount int64 `gorm:"column:amount;not null;default:1"`
	// Expiry is the time after which the offer can no longer be accepted
	Expiry time.Time `gorm:"column:expiry;not null"`
	// IsERC1155 marks offers for multi-edition tokens
	IsERC1155 bool `gorm:"column:is_erc1155;not null;default:false"`
	// IsActive turns false on acceptance or cancellation
	IsActive bool `gorm:"column:is_active;not null;default:true"`
	// TransactionHash is the hash of the OfferMade transaction
	TransactionHash string `gorm:"column:transaction_hash;not null;type:text"`
	// BlockNumber is the block of the OfferMade event
	BlockNumber uint64 `gorm:"column:block_number;not null"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the Offer model
func (Offer) TableName() string {
	return "offers"
}
