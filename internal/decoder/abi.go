package decoder

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-marketplace-indexer/internal/domain"
)

// MarketplaceABIJSON declares the events emitted by the marketplace contract
const MarketplaceABIJSON = `[
  {"type":"event","name":"Listed","anonymous":false,"inputs":[
    {"name":"id","type":"uint256","indexed":true},
    {"name":"seller","type":"address","indexed":true},
    {"name":"nft","type":"address","indexed":true},
    {"name":"tokenId","type":"uint256","indexed":false},
    {"name":"amount","type":"uint256","indexed":false},
    {"name":"price","type":"uint256","indexed":false},
    {"name":"is1155","type":"bool","indexed":false}]},
  {"type":"event","name":"Purchased","anonymous":false,"inputs":[
    {"name":"id","type":"uint256","indexed":true},
    {"name":"buyer","type":"address","indexed":true},
    {"name":"nft","type":"address","indexed":true},
    {"name":"tokenId","type":"uint256","indexed":false},
    {"name":"amount","type":"uint256","indexed":false},
    {"name":"price","type":"uint256","indexed":false}]},
  {"type":"event","name":"Unlisted","anonymous":false,"inputs":[
    {"name":"id","type":"uint256","indexed":true}]},
  {"type":"event","name":"AuctionCreated","anonymous":false,"inputs":[
    {"name":"id","type":"uint256","indexed":true},
    {"name":"seller","type":"address","indexed":true},
    {"name":"nft","type":"address","indexed":true},
    {"name":"tokenId","type":"uint256","indexed":false},
    {"name":"amount","type":"uint256","indexed":false},
    {"name":"reserve","type":"uint256","indexed":false},
    {"name":"start","type":"uint64","indexed":false},
    {"name":"end","type":"uint64","indexed":false},
    {"name":"is1155","type":"bool","indexed":false}]},
  {"type":"event","name":"BidPlaced","anonymous":false,"inputs":[
    {"name":"id","type":"uint256","indexed":true},
    {"name":"bidder","type":"address","indexed":true},
    {"name":"amount","type":"uint256","indexed":false}]},
  {"type":"event","name":"AuctionSettled","anonymous":false,"inputs":[
    {"name":"id","type":"uint256","indexed":true},
    {"name":"winner","type":"address","indexed":false},
    {"name":"amount","type":"uint256","indexed":false}]},
  {"type":"event","name":"OfferMade","anonymous":false,"inputs":[
    {"name":"nft","type":"address","indexed":true},
    {"name":"tokenId","type":"uint256","indexed":true},
    {"name":"offerId","type":"uint256","indexed":true},
    {"name":"buyer","type":"address","indexed":false},
    {"name":"price","type":"uint256","indexed":false},
    {"name":"amount","type":"uint256","indexed":false},
    {"name":"expiry","type":"uint64","indexed":false},
    {"name":"is1155","type":"bool","indexed":false}]},
  {"type":"event","name":"OfferAccepted","anonymous":false,"inputs":[
    {"name":"nft","type":"address","indexed":true},
    {"name":"tokenId","type":"uint256","indexed":true},
    {"name":"offerId","type":"uint256","indexed":true},
    {"name":"seller","type":"address","indexed":false},
    {"name":"buyer","type":"address","indexed":false},
    {"name":"amount","type":"uint256","indexed":false},
    {"name":"totalPaid","type":"uint256","indexed":false}]},
  {"type":"event","name":"OfferCancelled","anonymous":false,"inputs":[
    {"name":"nft","type":"address","indexed":true},
    {"name":"tokenId","type":"uint256","indexed":true},
    {"name":"offerId","type":"uint256","indexed":true},
    {"name":"buyer","type":"address","indexed":false}]}
]`

// MarketplaceABI is the parsed marketplace event ABI
var MarketplaceABI = func() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(MarketplaceABIJSON))
	if err != nil {
		panic(fmt.Sprintf("failed to parse marketplace ABI: %v", err))
	}
	return parsed
}()

// EventIDs returns the topic0 hash of every recognized marketplace event
func EventIDs() []common.Hash {
	ids := make([]common.Hash, 0, len(domain.AllEventNames))
	for _, name := range domain.AllEventNames {
		ids = append(ids, MarketplaceABI.Events[string(name)].ID)
	}
	return ids
}
