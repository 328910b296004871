package schema

import (
	"time"
)

// Standard represents the NFT contract type of a collection
type Standard string

const (
	// StandardERC721 represents Ethereum ERC-721 non-fungible tokens
	StandardERC721 Standard = "ERC721"
	// StandardERC1155 represents Ethereum ERC-1155 multi-token standard
	StandardERC1155 Standard = "ERC1155"
)

// Collection represents the collections table - one row per NFT contract seen on the marketplace
type Collection struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ContractAddress is the checksummed address of the NFT contract
	ContractAddress string `gorm:"column:contract_address;not null;uniqueIndex;type:text"`
	// Name is the contract name(), or the default collection name when unavailable
	Name string `gorm:"column:name;not null;type:text"`
	// Symbol is the contract symbol(), empty when unavailable
	Symbol string `gorm:"column:symbol;not null;default:'';type:text"`
	// Standard is the contract type inferred from the marketplace event
	Standard Standard `gorm:"column:standard;not null;type:text"`
	// CreatorAddress defaults to the contract address until the creator is known
	CreatorAddress string `gorm:"column:creator_address;not null;type:text"`
	// LastSyncBlock is the highest block at which a token of this collection was first seen
	LastSyncBlock uint64 `gorm:"column:last_sync_block;not null;default:0"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`

	// Associations
	Tokens []Token `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Collection model
func (Collection) TableName() string {
	return "collections"
}
