package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Token represents the tokens table - a single NFT of a collection and its resolved metadata
type Token struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// CollectionID references the owning collection
	CollectionID int64 `gorm:"column:collection_id;not null;uniqueIndex:idx_tokens_collection_token,priority:1"`
	// TokenID is the on-chain token id as a decimal string
	TokenID string `gorm:"column:token_id;not null;type:text;uniqueIndex:idx_tokens_collection_token,priority:2"`
	// Name is the metadata name, or "<collection> #<token id>" when the metadata has none
	Name string `gorm:"column:name;not null;type:text"`
	// Description is the metadata description
	Description string `gorm:"column:description;not null;default:'';type:text"`
	// ImageURL is the gateway-rewritten metadata image
	ImageURL string `gorm:"column:image_url;not null;default:'';type:text"`
	// MetadataURL is the raw tokenURI/uri value read from the contract
	MetadataURL string `gorm:"column:metadata_url;not null;default:'';type:text"`
	// Attributes holds the opaque metadata attributes
	Attributes datatypes.JSON `gorm:"column:attributes;type:jsonb"`
	// RawMetadata holds the full metadata document
	RawMetadata datatypes.JSON `gorm:"column:raw_metadata;type:jsonb"`
	// MetadataHash is the sha256 of the canonical (JCS) metadata document
	MetadataHash []byte `gorm:"column:metadata_hash;type:bytea"`
	// OwnerAddress is the last observed owner, nil until known
	OwnerAddress *string `gorm:"column:owner_address;type:text"`
	// OwnerBlock is the block of the event that set OwnerAddress
	OwnerBlock uint64 `gorm:"column:owner_block;not null;default:0"`
	// LastSyncBlock is the block of the event that last touched this token
	LastSyncBlock uint64 `gorm:"column:last_sync_block;not null;default:0"`
	// CreatedAt is the timestamp when this record was first indexed
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`

	// Associations
	Collection *Collection `gorm:"foreignKey:CollectionID"`
}

// TableName specifies the table name for the Token model
func (Token) TableName() string {
	return "tokens"
}
