package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// ListingType represents how a listing is sold
type ListingType string

const (
	// ListingTypeFixedPrice is the only listing type emitted by the marketplace
	ListingTypeFixedPrice ListingType = "fixed_price"
)

// Listing represents the listings table - a fixed price sale created by a Listed event
type Listing struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ListingID is the on-chain listing id as a decimal string
	ListingID string `gorm:"column:listing_id;not null;uniqueIndex;type:text"`
	// TokenRef references the listed token
	TokenRef int64 `gorm:"column:token_ref;not null;index"`
	// ContractAddress is the NFT contract address
	ContractAddress string `gorm:"column:contract_address;not null;type:text"`
	// SellerAddress is the account that created the listing
	SellerAddress string `gorm:"column:seller_address;not null;type:text"`
	// Price is the listing price in the native display unit
	Price decimal.Decimal `gorm:"column:price;not null;type:numeric(78,18)"`
	// PriceWei is the listing price in wei
	PriceWei decimal.Decimal `gorm:"column:price_wei;not null;type:numeric(78,0)"`
	// Amount is the number of editions listed
	Amount int64 `gorm:"column:amount;not null;default:1"`
	// IsERC1155 marks listings of multi-edition tokens
	IsERC1155 bool `gorm:"column:is_erc1155;not null;default:false"`
	// ListingType is always fixed_price
	ListingType ListingType `gorm:"column:listing_type;not null;type:text;default:'fixed_price'"`
	// IsActive turns false on purchase or unlisting, rows are never deleted
	IsActive bool `gorm:"column:is_active;not null;default:true"`
	// TransactionHash is the hash of the Listed transaction
	TransactionHash string `gorm:"column:transaction_hash;not null;type:text"`
	// BlockNumber is the block of the Listed event
	BlockNumber uint64 `gorm:"column:block_number;not null"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the Listing model
func (Listing) TableName() string {
	return "listings"
}
