package schema

import "time"

// SyncCheckpoint stores the last fully processed block per (contract, category).
// It is the only row that is repeatedly overwritten and it only ever moves forward.
type SyncCheckpoint struct {
	ContractAddress    string    `gorm:"column:contract_address;primaryKey;type:text"`
	Category           string    `gorm:"column:category;primaryKey;type:text"`
	LastProcessedBlock uint64    `gorm:"column:last_processed_block;not null"`
	UpdatedAt          time.Time `gorm:"column:updated_at;not null;default:now()"`
}

func (SyncCheckpoint) TableName() string {
	return "sync_checkpoints"
}
