package decoder_test

import (
	"math/big"
	"os"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-marketplace-indexer/internal/decoder"
	"github.com/feral-file/ff-marketplace-indexer/internal/domain"
)

// loadContractABI reads the event ABI exported from the deployed marketplace contract
func loadContractABI(t *testing.T) abi.ABI {
	t.Helper()
	f, err := os.Open("testdata/marketplace_contract_events.json")
	require.NoError(t, err)
	defer f.Close()

	parsed, err := abi.JSON(f)
	require.NoError(t, err)
	return parsed
}

// contractLog encodes an event with the contract's own ABI, independent of the decoder's copy
func contractLog(t *testing.T, contractABI abi.ABI, name string, args ...interface{}) types.Log {
	t.Helper()
	event, ok := contractABI.Events[name]
	require.True(t, ok, "contract does not emit %s", name)
	require.Len(t, args, len(event.Inputs))

	topics := []common.Hash{event.ID}
	var data []interface{}
	for i, input := range event.Inputs {
		if !input.Indexed {
			data = append(data, args[i])
			continue
		}
		switch v := args[i].(type) {
		case *big.Int:
			topics = append(topics, common.BigToHash(v))
		case common.Address:
			topics = append(topics, common.BytesToHash(v.Bytes()))
		default:
			t.Fatalf("unsupported indexed arg %T", v)
		}
	}

	packed, err := event.Inputs.NonIndexed().Pack(data...)
	require.NoError(t, err)

	return types.Log{
		Address:     market,
		Topics:      topics,
		Data:        packed,
		BlockNumber: 42,
		Index:       1,
		TxHash:      common.HexToHash("0x0abc"),
	}
}

func TestMarketplaceABI_MatchesContractEvents(t *testing.T) {
	contractABI := loadContractABI(t)

	for _, name := range domain.AllEventNames {
		if name == domain.EventPurchased {
			// emitted by earlier contract versions only
			continue
		}
		t.Run(string(name), func(t *testing.T) {
			want, ok := contractABI.Events[string(name)]
			require.True(t, ok)
			got := decoder.MarketplaceABI.Events[string(name)]
			assert.Equal(t, want.Sig, got.Sig)
			assert.Equal(t, want.ID, got.ID)
			require.Len(t, got.Inputs, len(want.Inputs))
			for i := range want.Inputs {
				assert.Equal(t, want.Inputs[i].Name, got.Inputs[i].Name)
				assert.Equal(t, want.Inputs[i].Indexed, got.Inputs[i].Indexed, want.Inputs[i].Name)
			}
		})
	}
}

func TestDecode_ContractAuctionEvents(t *testing.T) {
	contractABI := loadContractABI(t)
	d := decoder.New(nil)

	created := d.Decode(contractLog(t, contractABI, "AuctionCreated",
		big.NewInt(4), seller, nft, big.NewInt(7), big.NewInt(1), big.NewInt(500),
		uint64(1700000000), uint64(1700086400), true))
	require.NotNil(t, created)
	assert.Equal(t, domain.EventAuctionCreated, created.Name)

	start, err := created.Uint64("start")
	require.NoError(t, err)
	assert.Equal(t, uint64(1700000000), start)
	end, err := created.Uint64("end")
	require.NoError(t, err)
	assert.Equal(t, uint64(1700086400), end)
	is1155, err := created.Bool("is1155")
	require.NoError(t, err)
	assert.True(t, is1155)

	settled := d.Decode(contractLog(t, contractABI, "AuctionSettled",
		big.NewInt(4), buyer, big.NewInt(900)))
	require.NotNil(t, settled)
	assert.Equal(t, domain.EventAuctionSettled, settled.Name)

	winner, err := settled.Address("winner")
	require.NoError(t, err)
	assert.Equal(t, buyer.Hex(), winner)
	amount, err := settled.BigInt("amount")
	require.NoError(t, err)
	assert.Equal(t, int64(900), amount.Int64())
}

func TestDecode_ContractOfferEvents(t *testing.T) {
	contractABI := loadContractABI(t)
	d := decoder.New(nil)

	made := d.Decode(contractLog(t, contractABI, "OfferMade",
		nft, big.NewInt(7), big.NewInt(0), buyer, big.NewInt(300), big.NewInt(2), uint64(1700000000), true))
	require.NotNil(t, made)
	assert.Equal(t, domain.EventOfferMade, made.Name)

	n, err := made.Address("nft")
	require.NoError(t, err)
	assert.Equal(t, nft.Hex(), n)
	tokenID, err := made.BigInt("tokenId")
	require.NoError(t, err)
	assert.Equal(t, int64(7), tokenID.Int64())
	offerID, err := made.BigInt("offerId")
	require.NoError(t, err)
	assert.Equal(t, int64(0), offerID.Int64())
	b, err := made.Address("buyer")
	require.NoError(t, err)
	assert.Equal(t, buyer.Hex(), b)
	expiry, err := made.Uint64("expiry")
	require.NoError(t, err)
	assert.Equal(t, uint64(1700000000), expiry)

	accepted := d.Decode(contractLog(t, contractABI, "OfferAccepted",
		nft, big.NewInt(7), big.NewInt(0), seller, buyer, big.NewInt(2), big.NewInt(600)))
	require.NotNil(t, accepted)
	assert.Equal(t, domain.EventOfferAccepted, accepted.Name)

	totalPaid, err := accepted.BigInt("totalPaid")
	require.NoError(t, err)
	assert.Equal(t, int64(600), totalPaid.Int64())
	s, err := accepted.Address("seller")
	require.NoError(t, err)
	assert.Equal(t, seller.Hex(), s)

	cancelled := d.Decode(contractLog(t, contractABI, "OfferCancelled",
		nft, big.NewInt(7), big.NewInt(0), buyer))
	require.NotNil(t, cancelled)
	assert.Equal(t, domain.EventOfferCancelled, cancelled.Name)

	offerID, err = cancelled.BigInt("offerId")
	require.NoError(t, err)
	assert.Equal(t, int64(0), offerID.Int64())
}

func TestDecode_ContractEventsOutsideClosedSet(t *testing.T) {
	contractABI := loadContractABI(t)
	skips := skipCounter{}
	d := decoder.New(skips)

	updated := contractLog(t, contractABI, "ListingUpdated", big.NewInt(1), big.NewInt(10))
	assert.Nil(t, d.Decode(updated))
	assert.Equal(t, 1, skips[string(decoder.SkipUnknown)])
}
