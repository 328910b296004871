package domain

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Chain represents the blockchain network identifier using CAIP-2 format
type Chain string

const (
	ChainEthereumMainnet Chain = "eip155:1"
	ChainEthereumSepolia Chain = "eip155:11155111"
	ChainMonadTestnet    Chain = "eip155:10143"
)

// IsValidChain checks if a chain is a well-formed EVM CAIP-2 identifier
func IsValidChain(chain Chain) bool {
	namespace, reference, ok := strings.Cut(string(chain), ":")
	if !ok || namespace != "eip155" || reference == "" {
		return false
	}
	_, ok = new(big.Int).SetString(reference, 10)
	return ok
}

// ContractType represents the NFT contract standard of a collection
type ContractType string

const (
	ContractTypeERC721  ContractType = "ERC721"
	ContractTypeERC1155 ContractType = "ERC1155"
)

// ContractTypeFor returns the contract type for the ERC-1155 flag carried by marketplace events
func ContractTypeFor(isERC1155 bool) ContractType {
	if isERC1155 {
		return ContractTypeERC1155
	}
	return ContractTypeERC721
}

// Category groups the events of a contract that share one checkpoint
type Category string

const (
	CategoryMarketplace Category = "marketplace"
)

// EventName is the closed set of marketplace events the decoder recognizes
type EventName string

const (
	EventListed         EventName = "Listed"
	EventPurchased      EventName = "Purchased"
	EventUnlisted       EventName = "Unlisted"
	EventAuctionCreated EventName = "AuctionCreated"
	EventBidPlaced      EventName = "BidPlaced"
	EventAuctionSettled EventName = "AuctionSettled"
	EventOfferMade      EventName = "OfferMade"
	EventOfferAccepted  EventName = "OfferAccepted"
	EventOfferCancelled EventName = "OfferCancelled"
)

// AllEventNames lists every recognized marketplace event
var AllEventNames = []EventName{
	EventListed,
	EventPurchased,
	EventUnlisted,
	EventAuctionCreated,
	EventBidPlaced,
	EventAuctionSettled,
	EventOfferMade,
	EventOfferAccepted,
	EventOfferCancelled,
}

// DecodedEvent is a raw marketplace log decoded against the contract ABI
type DecodedEvent struct {
	Name            EventName              `json:"name"`
	Args            map[string]interface{} `json:"args"`
	ContractAddress string                 `json:"contract_address"`
	TxHash          string                 `json:"tx_hash"`
	BlockNumber     uint64                 `json:"block_number"`
	BlockHash       string                 `json:"block_hash"`
	LogIndex        uint                   `json:"log_index"`
}

// BigInt returns a uint256 argument
func (e *DecodedEvent) BigInt(name string) (*big.Int, error) {
	v, ok := e.Args[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s missing %s", ErrInvalidEventArgs, e.Name, name)
	}
	b, ok := v.(*big.Int)
	if !ok || b == nil {
		return nil, fmt.Errorf("%w: %s.%s is %T, not uint256", ErrInvalidEventArgs, e.Name, name, v)
	}
	return b, nil
}

// Address returns an address argument in checksum hex form
func (e *DecodedEvent) Address(name string) (string, error) {
	v, ok := e.Args[name]
	if !ok {
		return "", fmt.Errorf("%w: %s missing %s", ErrInvalidEventArgs, e.Name, name)
	}
	a, ok := v.(common.Address)
	if !ok {
		return "", fmt.Errorf("%w: %s.%s is %T, not address", ErrInvalidEventArgs, e.Name, name, v)
	}
	return a.Hex(), nil
}

// Bool returns a bool argument
func (e *DecodedEvent) Bool(name string) (bool, error) {
	v, ok := e.Args[name]
	if !ok {
		return false, fmt.Errorf("%w: %s missing %s", ErrInvalidEventArgs, e.Name, name)
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s.%s is %T, not bool", ErrInvalidEventArgs, e.Name, name, v)
	}
	return b, nil
}

// Uint64 returns a uint64 argument such as a timestamp
func (e *DecodedEvent) Uint64(name string) (uint64, error) {
	v, ok := e.Args[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s missing %s", ErrInvalidEventArgs, e.Name, name)
	}
	u, ok := v.(uint64)
	if !ok {
		return 0, fmt.Errorf("%w: %s.%s is %T, not uint64", ErrInvalidEventArgs, e.Name, name, v)
	}
	return u, nil
}

// Key identifies the log uniquely within the chain, used for de-duplication of notifications
func (e *DecodedEvent) Key() string {
	return fmt.Sprintf("%s:%d", e.TxHash, e.LogIndex)
}

// TokenMetadata is the best-effort result of resolving a token's metadata.
// Fields that could not be resolved are left empty.
type TokenMetadata struct {
	ContractAddress string                 `json:"contract_address"`
	TokenID         string                 `json:"token_id"`
	IsERC1155       bool                   `json:"is_erc1155"`
	MetadataURI     string                 `json:"metadata_uri"`
	Name            string                 `json:"name"`
	Description     string                 `json:"description"`
	Image           string                 `json:"image"`
	Attributes      interface{}            `json:"attributes,omitempty"`
	Raw             map[string]interface{} `json:"raw,omitempty"`
	RawHash         []byte                 `json:"-"`
	Owner           string                 `json:"owner"`
}

// CollectionInfo holds the contract level name and symbol of a collection
type CollectionInfo struct {
	ContractAddress string       `json:"contract_address"`
	Name            string       `json:"name"`
	Symbol          string       `json:"symbol"`
	ContractType    ContractType `json:"contract_type"`
}

// ChangeEntity is the kind of row a change notification refers to
type ChangeEntity string

const (
	ChangeEntityCollection  ChangeEntity = "collection"
	ChangeEntityToken       ChangeEntity = "token"
	ChangeEntityListing     ChangeEntity = "listing"
	ChangeEntityAuction     ChangeEntity = "auction"
	ChangeEntityBid         ChangeEntity = "bid"
	ChangeEntityOffer       ChangeEntity = "offer"
	ChangeEntityTransaction ChangeEntity = "transaction"
)

// ChangeAction describes what happened to the row
type ChangeAction string

const (
	ChangeActionUpserted ChangeAction = "upserted"
	ChangeActionUpdated  ChangeAction = "updated"
	ChangeActionCreated  ChangeAction = "created"
)

// Change is the notification published after the reconciler commits a write
type Change struct {
	ID              string       `json:"id"`
	Chain           Chain        `json:"chain"`
	Entity          ChangeEntity `json:"entity"`
	Action          ChangeAction `json:"action"`
	Key             string       `json:"key"`
	ContractAddress string       `json:"contract_address"`
	Event           EventName    `json:"event,omitempty"`
	TxHash          string       `json:"tx_hash,omitempty"`
	LogIndex        uint         `json:"log_index"`
	BlockNumber     uint64       `json:"block_number,omitempty"`
	Timestamp       time.Time    `json:"timestamp"`
}

// DedupID returns a stable identifier for the change so replays can be de-duplicated downstream
func (c *Change) DedupID() string {
	if c.TxHash == "" {
		return c.ID
	}
	return fmt.Sprintf("%s:%s:%s:%s:%d", c.Entity, c.Action, c.Key, c.TxHash, c.LogIndex)
}

// NormalizeAddress returns the checksum form of an EVM address
func NormalizeAddress(address string) string {
	if !common.IsHexAddress(address) {
		return address
	}
	return common.HexToAddress(address).Hex()
}

// OfferKey scopes an on-chain offer id to its token, since the contract numbers offers per token
func OfferKey(nftContract string, tokenID string, offerID string) string {
	return fmt.Sprintf("%s:%s:%s", NormalizeAddress(nftContract), tokenID, offerID)
}
