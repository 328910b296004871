package store

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-marketplace-indexer/internal/domain"
	"github.com/feral-file/ff-marketplace-indexer/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

const (
	testMarketplace = "0x9999999999999999999999999999999999999999"
	testNFT         = "0x1111111111111111111111111111111111111111"
	testSeller      = "0x2222222222222222222222222222222222222222"
	testBuyer       = "0x3333333333333333333333333333333333333333"
	testBidder      = "0x4444444444444444444444444444444444444444"
)

func wei(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("invalid wei amount " + s)
	}
	return v
}

// createTestToken creates a collection and a token and returns the token
func createTestToken(t *testing.T, store Store, contract, tokenID string) *schema.Token {
	ctx := context.Background()

	collection, err := store.UpsertCollection(ctx, UpsertCollectionInput{
		ContractAddress: contract,
		Name:            "Test Collection",
		Symbol:          "TEST",
		ContractType:    domain.ContractTypeERC721,
		LastSyncBlock:   100,
	})
	require.NoError(t, err)
	require.NotNil(t, collection)

	token, err := store.UpsertToken(ctx, UpsertTokenInput{
		CollectionID:  collection.ID,
		TokenID:       tokenID,
		Name:          "Test Collection #" + tokenID,
		MetadataURL:   "ipfs://QmTest/" + tokenID,
		Attributes:    datatypes.JSON(`[{"trait_type":"Color","value":"Blue"}]`),
		LastSyncBlock: 100,
	})
	require.NoError(t, err)
	require.NotNil(t, token)
	return token
}

func createTestAuction(t *testing.T, store Store, tokenRef int64, auctionID string) *schema.Auction {
	auction, err := store.UpsertAuction(context.Background(), UpsertAuctionInput{
		AuctionID:       auctionID,
		TokenRef:        tokenRef,
		ContractAddress: testNFT,
		SellerAddress:   testSeller,
		ReserveWei:      wei("1000000000000000000"),
		StartTime:       time.Unix(1700000000, 0),
		EndTime:         time.Unix(1700086400, 0),
		Amount:          1,
		TransactionHash: "0xauction" + auctionID,
		BlockNumber:     110,
	})
	require.NoError(t, err)
	require.NotNil(t, auction)
	return auction
}

// =============================================================================
// Test: Checkpoints
// =============================================================================

func testCheckpoints(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("missing checkpoint returns nil", func(t *testing.T) {
		block, err := store.GetLastProcessedBlock(ctx, testMarketplace, domain.CategoryMarketplace)
		require.NoError(t, err)
		assert.Nil(t, block)
	})

	t.Run("checkpoint never moves backwards", func(t *testing.T) {
		require.NoError(t, store.SetLastProcessedBlock(ctx, testMarketplace, domain.CategoryMarketplace, 200))
		require.NoError(t, store.SetLastProcessedBlock(ctx, testMarketplace, domain.CategoryMarketplace, 150))

		block, err := store.GetLastProcessedBlock(ctx, testMarketplace, domain.CategoryMarketplace)
		require.NoError(t, err)
		require.NotNil(t, block)
		assert.Equal(t, uint64(200), *block)

		require.NoError(t, store.SetLastProcessedBlock(ctx, testMarketplace, domain.CategoryMarketplace, 250))
		block, err = store.GetLastProcessedBlock(ctx, testMarketplace, domain.CategoryMarketplace)
		require.NoError(t, err)
		assert.Equal(t, uint64(250), *block)
	})

	t.Run("address case does not split checkpoints", func(t *testing.T) {
		lower := "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd"
		require.NoError(t, store.SetLastProcessedBlock(ctx, lower, domain.CategoryMarketplace, 10))

		block, err := store.GetLastProcessedBlock(ctx, domain.NormalizeAddress(lower), domain.CategoryMarketplace)
		require.NoError(t, err)
		require.NotNil(t, block)
		assert.Equal(t, uint64(10), *block)
	})

	t.Run("list checkpoints", func(t *testing.T) {
		checkpoints, err := store.ListCheckpoints(ctx)
		require.NoError(t, err)
		assert.Len(t, checkpoints, 2)
	})
}

// =============================================================================
// Test: Collections and Tokens
// =============================================================================

func testCollectionsAndTokens(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("collection upsert fills the placeholder name once and raises last sync block", func(t *testing.T) {
		created, err := store.UpsertCollection(ctx, UpsertCollectionInput{
			ContractAddress: testNFT,
			ContractType:    domain.ContractTypeERC1155,
			LastSyncBlock:   100,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.DEFAULT_COLLECTION_NAME, created.Name)
		assert.Equal(t, domain.NormalizeAddress(testNFT), created.CreatorAddress)
		assert.Equal(t, schema.StandardERC1155, created.Standard)

		second, err := store.UpsertCollection(ctx, UpsertCollectionInput{
			ContractAddress: testNFT,
			Name:            "Sunsets",
			Symbol:          "SUN",
			ContractType:    domain.ContractTypeERC1155,
			LastSyncBlock:   90,
		})
		require.NoError(t, err)
		assert.Equal(t, created.ID, second.ID)
		assert.Equal(t, "Sunsets", second.Name)
		assert.Equal(t, "SUN", second.Symbol)
		assert.Equal(t, uint64(100), second.LastSyncBlock)

		third, err := store.UpsertCollection(ctx, UpsertCollectionInput{
			ContractAddress: testNFT,
			Name:            "Renamed",
			ContractType:    domain.ContractTypeERC1155,
			LastSyncBlock:   300,
		})
		require.NoError(t, err)
		assert.Equal(t, "Sunsets", third.Name)
		assert.Equal(t, "SUN", third.Symbol)
		assert.Equal(t, uint64(300), third.LastSyncBlock)
	})

	t.Run("token upsert is idempotent", func(t *testing.T) {
		original := createTestToken(t, store, testNFT, "7")
		replayed := createTestToken(t, store, testNFT, "7")
		assert.Equal(t, original.ID, replayed.ID)

		found, err := store.GetToken(ctx, testNFT, "7")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, original.ID, found.ID)
		require.NotNil(t, found.Collection)
		assert.Equal(t, domain.NormalizeAddress(testNFT), found.Collection.ContractAddress)
	})

	t.Run("unknown token returns nil", func(t *testing.T) {
		found, err := store.GetToken(ctx, testNFT, "999")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("token refresh keeps known owner when none is resolved", func(t *testing.T) {
		token := createTestToken(t, store, testNFT, "8")
		owner := domain.NormalizeAddress(testSeller)

		_, err := store.UpsertToken(ctx, UpsertTokenInput{
			CollectionID: token.CollectionID,
			TokenID:      "8",
			Name:         "Eight",
			OwnerAddress: &owner,
		})
		require.NoError(t, err)

		refreshed, err := store.UpsertToken(ctx, UpsertTokenInput{
			CollectionID: token.CollectionID,
			TokenID:      "8",
			Name:         "Eight v2",
		})
		require.NoError(t, err)
		assert.Equal(t, "Eight v2", refreshed.Name)
		require.NotNil(t, refreshed.OwnerAddress)
		assert.Equal(t, owner, *refreshed.OwnerAddress)
	})

	t.Run("owner update ignores older blocks", func(t *testing.T) {
		token := createTestToken(t, store, testNFT, "9")

		changed, err := store.UpdateTokenOwner(ctx, token.ID, testBuyer, 150)
		require.NoError(t, err)
		assert.True(t, changed)

		changed, err = store.UpdateTokenOwner(ctx, token.ID, testSeller, 120)
		require.NoError(t, err)
		assert.False(t, changed)

		found, err := store.GetToken(ctx, testNFT, "9")
		require.NoError(t, err)
		require.NotNil(t, found.OwnerAddress)
		assert.Equal(t, domain.NormalizeAddress(testBuyer), *found.OwnerAddress)
		assert.Equal(t, uint64(150), found.LastSyncBlock)
	})
}

// =============================================================================
// Test: Listings
// =============================================================================

func testListings(t *testing.T, store Store) {
	ctx := context.Background()
	token := createTestToken(t, store, testNFT, "7")

	input := UpsertListingInput{
		ListingID:       "1",
		TokenRef:        token.ID,
		ContractAddress: testNFT,
		SellerAddress:   testSeller,
		PriceWei:        wei("150000000000000000"),
		Amount:          1,
		TransactionHash: "0xlisted",
		BlockNumber:     120,
	}

	t.Run("listing is created active with decimal price", func(t *testing.T) {
		listing, err := store.UpsertListing(ctx, input)
		require.NoError(t, err)
		require.NotNil(t, listing)
		assert.True(t, listing.IsActive)
		assert.Equal(t, "0.15", listing.Price.String())
		assert.Equal(t, "150000000000000000", listing.PriceWei.String())
		assert.Equal(t, schema.ListingTypeFixedPrice, listing.ListingType)
		assert.Equal(t, token.ID, listing.TokenRef)
	})

	t.Run("deactivate then replay keeps listing inactive", func(t *testing.T) {
		listing, err := store.DeactivateListing(ctx, "1")
		require.NoError(t, err)
		require.NotNil(t, listing)
		assert.False(t, listing.IsActive)

		replayed, err := store.UpsertListing(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, listing.ID, replayed.ID)
		assert.False(t, replayed.IsActive)
	})

	t.Run("deactivating unknown listing returns nil", func(t *testing.T) {
		listing, err := store.DeactivateListing(ctx, "404")
		require.NoError(t, err)
		assert.Nil(t, listing)
	})
}

// =============================================================================
// Test: Auctions and Bids
// =============================================================================

func testAuctionsAndBids(t *testing.T, store Store) {
	ctx := context.Background()
	token := createTestToken(t, store, testNFT, "11")
	auction := createTestAuction(t, store, token.ID, "5")

	t.Run("auction starts without bids", func(t *testing.T) {
		assert.True(t, auction.HighestBidWei.IsZero())
		assert.Nil(t, auction.HighestBidderAddress)
		assert.False(t, auction.IsSettled)
		assert.Equal(t, "1", auction.ReservePrice.String())
	})

	t.Run("bid sequence keeps the first strictly highest bid", func(t *testing.T) {
		bids := []struct {
			bidder   string
			amount   *big.Int
			tx       string
			logIndex uint
			raised   bool
		}{
			{testBidder, wei("1200000000000000000"), "0xbid1", 0, true},
			{testBuyer, wei("1100000000000000000"), "0xbid2", 1, false},
			{testBuyer, wei("1200000000000000000"), "0xbid3", 2, false},
		}

		for _, b := range bids {
			created, err := store.CreateBid(ctx, CreateBidInput{
				AuctionRef:      auction.ID,
				BidderAddress:   b.bidder,
				AmountWei:       b.amount,
				TransactionHash: b.tx,
				BlockNumber:     130,
			})
			require.NoError(t, err)
			assert.True(t, created)

			raised, err := store.RaiseHighestBid(ctx, RaiseHighestBidInput{
				AuctionRef:    auction.ID,
				BidderAddress: b.bidder,
				AmountWei:     b.amount,
				BlockNumber:   130,
				LogIndex:      b.logIndex,
			})
			require.NoError(t, err)
			assert.Equal(t, b.raised, raised, b.tx)
		}

		updated, err := store.GetAuctionByAuctionID(ctx, "5")
		require.NoError(t, err)
		assert.Equal(t, "1.2", updated.HighestBid.String())
		require.NotNil(t, updated.HighestBidderAddress)
		assert.Equal(t, domain.NormalizeAddress(testBidder), *updated.HighestBidderAddress)
		require.NotNil(t, updated.HighestBidBlock)
		assert.Equal(t, uint64(130), *updated.HighestBidBlock)
	})

	t.Run("equal bids resolve by chain position regardless of processing order", func(t *testing.T) {
		other := createTestAuction(t, store, token.ID, "8")
		later := RaiseHighestBidInput{
			AuctionRef:    other.ID,
			BidderAddress: testBuyer,
			AmountWei:     wei("2000000000000000000"),
			BlockNumber:   141,
			LogIndex:      0,
		}
		earlier := RaiseHighestBidInput{
			AuctionRef:    other.ID,
			BidderAddress: testBidder,
			AmountWei:     wei("2000000000000000000"),
			BlockNumber:   140,
			LogIndex:      5,
		}

		raised, err := store.RaiseHighestBid(ctx, later)
		require.NoError(t, err)
		assert.True(t, raised)

		raised, err = store.RaiseHighestBid(ctx, earlier)
		require.NoError(t, err)
		assert.True(t, raised)

		// replaying either bid changes nothing
		raised, err = store.RaiseHighestBid(ctx, later)
		require.NoError(t, err)
		assert.False(t, raised)
		raised, err = store.RaiseHighestBid(ctx, earlier)
		require.NoError(t, err)
		assert.False(t, raised)

		updated, err := store.GetAuctionByAuctionID(ctx, "8")
		require.NoError(t, err)
		require.NotNil(t, updated.HighestBidderAddress)
		assert.Equal(t, domain.NormalizeAddress(testBidder), *updated.HighestBidderAddress)
		require.NotNil(t, updated.HighestBidBlock)
		assert.Equal(t, uint64(140), *updated.HighestBidBlock)
		require.NotNil(t, updated.HighestBidLogIndex)
		assert.Equal(t, uint(5), *updated.HighestBidLogIndex)
	})

	t.Run("replayed bid is not appended twice", func(t *testing.T) {
		created, err := store.CreateBid(ctx, CreateBidInput{
			AuctionRef:      auction.ID,
			BidderAddress:   testBidder,
			AmountWei:       wei("1200000000000000000"),
			TransactionHash: "0xbid1",
			BlockNumber:     130,
		})
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("replayed auction keeps bids and settlement", func(t *testing.T) {
		winner := testBidder
		require.NoError(t, store.SettleAuction(ctx, auction.ID, &winner))

		replayed := createTestAuction(t, store, token.ID, "5")
		assert.Equal(t, auction.ID, replayed.ID)
		assert.True(t, replayed.IsSettled)
		assert.Equal(t, "1.2", replayed.HighestBid.String())
		require.NotNil(t, replayed.WinnerAddress)
		assert.Equal(t, domain.NormalizeAddress(testBidder), *replayed.WinnerAddress)
	})

	t.Run("settling without winner", func(t *testing.T) {
		other := createTestAuction(t, store, token.ID, "6")
		require.NoError(t, store.SettleAuction(ctx, other.ID, nil))

		settled, err := store.GetAuctionByAuctionID(ctx, "6")
		require.NoError(t, err)
		assert.True(t, settled.IsSettled)
		assert.Nil(t, settled.WinnerAddress)
	})
}

// =============================================================================
// Test: Offers
// =============================================================================

func testOffers(t *testing.T, store Store) {
	ctx := context.Background()
	token := createTestToken(t, store, testNFT, "12")
	expiry := time.Unix(1800000000, 0).UTC()

	offer, err := store.UpsertOffer(ctx, UpsertOfferInput{
		OfferID:         "3",
		TokenRef:        token.ID,
		ContractAddress: testNFT,
		BuyerAddress:    testBuyer,
		PriceWei:        wei("500000000000000000"),
		Amount:          2,
		Expiry:          expiry,
		IsERC1155:       true,
		TransactionHash: "0xoffer",
		BlockNumber:     140,
	})
	require.NoError(t, err)
	require.NotNil(t, offer)
	assert.True(t, offer.IsActive)
	assert.Equal(t, "0.5", offer.Price.String())
	assert.Equal(t, int64(2), offer.Amount)
	assert.True(t, offer.Expiry.Equal(expiry))

	deactivated, err := store.DeactivateOffer(ctx, "3")
	require.NoError(t, err)
	require.NotNil(t, deactivated)
	assert.False(t, deactivated.IsActive)

	missing, err := store.GetOfferByOfferID(ctx, "404")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// =============================================================================
// Test: Transactions
// =============================================================================

func testTransactions(t *testing.T, store Store) {
	ctx := context.Background()
	token := createTestToken(t, store, testNFT, "13")
	seller := testSeller

	input := CreateTransactionInput{
		TransactionHash: "0xsale",
		TransactionType: schema.TransactionTypePurchase,
		TokenRef:        token.ID,
		FromAddress:     &seller,
		ToAddress:       testBuyer,
		PriceWei:        wei("150000000000000000"),
		Amount:          1,
		BlockNumber:     150,
	}

	created, err := store.CreateTransaction(ctx, input)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = store.CreateTransaction(ctx, input)
	require.NoError(t, err)
	assert.False(t, created)

	// Same tx carrying a different sale type is recorded separately
	input.TransactionType = schema.TransactionTypeOfferAccepted
	created, err = store.CreateTransaction(ctx, input)
	require.NoError(t, err)
	assert.True(t, created)

	txs, err := store.GetTransactionsByTokenRef(ctx, token.ID)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	for _, tx := range txs {
		assert.Equal(t, schema.TransactionStatusConfirmed, tx.Status)
		assert.Equal(t, "0.15", tx.Price.String())
		assert.Equal(t, domain.NormalizeAddress(testBuyer), tx.ToAddress)
	}
}

// =============================================================================
// Test Runner
// =============================================================================

// RunStoreTests runs all store tests against a Store implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"Checkpoints", testCheckpoints},
		{"CollectionsAndTokens", testCollectionsAndTokens},
		{"Listings", testListings},
		{"AuctionsAndBids", testAuctionsAndBids},
		{"Offers", testOffers},
		{"Transactions", testTransactions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
