package reconciler

import (
	"context"
	"math"
	"math/big"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace-indexer/internal/domain"
	"github.com/feral-file/ff-marketplace-indexer/internal/logger"
	"github.com/feral-file/ff-marketplace-indexer/internal/store"
	"github.com/feral-file/ff-marketplace-indexer/internal/store/schema"
)

// argReader collects the typed arguments of an event and remembers the first error
type argReader struct {
	event *domain.DecodedEvent
	err   error
}

func (a *argReader) bigInt(name string) *big.Int {
	if a.err != nil {
		return nil
	}
	v, err := a.event.BigInt(name)
	a.err = err
	return v
}

func (a *argReader) id(name string) string {
	v := a.bigInt(name)
	if v == nil {
		return ""
	}
	return v.String()
}

func (a *argReader) address(name string) string {
	if a.err != nil {
		return ""
	}
	v, err := a.event.Address(name)
	a.err = err
	return v
}

func (a *argReader) uint64(name string) uint64 {
	if a.err != nil {
		return 0
	}
	v, err := a.event.Uint64(name)
	a.err = err
	return v
}

func (a *argReader) boolean(name string) bool {
	if a.err != nil {
		return false
	}
	v, err := a.event.Bool(name)
	a.err = err
	return v
}

// toInt64 clamps a uint256 quantity into an int64 column
func toInt64(v *big.Int) int64 {
	if v == nil {
		return 0
	}
	if !v.IsInt64() {
		return math.MaxInt64
	}
	return v.Int64()
}

// unixTime converts a uint64 unix timestamp in seconds
func unixTime(v uint64) time.Time {
	if v > math.MaxInt64 {
		v = math.MaxInt64
	}
	return time.Unix(int64(v), 0).UTC()
}

func eventFields(event *domain.DecodedEvent, fields ...zap.Field) []zap.Field {
	return append([]zap.Field{
		zap.String("event", string(event.Name)),
		zap.String("tx_hash", event.TxHash),
		zap.Uint64("block", event.BlockNumber),
	}, fields...)
}

// handleListed upserts an active listing
func (r *reconciler) handleListed(ctx context.Context, event *domain.DecodedEvent) error {
	args := argReader{event: event}
	listingID := args.id("id")
	seller := args.address("seller")
	nft := args.address("nft")
	tokenID := args.id("tokenId")
	amount := args.bigInt("amount")
	price := args.bigInt("price")
	isERC1155 := args.boolean("is1155")
	if args.err != nil {
		return args.err
	}

	tokenRef, err := r.resolveToken(ctx, event, nft, tokenID, isERC1155)
	if err != nil {
		return err
	}

	_, err = r.store.UpsertListing(ctx, store.UpsertListingInput{
		ListingID:       listingID,
		TokenRef:        tokenRef,
		ContractAddress: nft,
		SellerAddress:   seller,
		PriceWei:        price,
		Amount:          toInt64(amount),
		IsERC1155:       isERC1155,
		TransactionHash: event.TxHash,
		BlockNumber:     event.BlockNumber,
	})
	if err != nil {
		return err
	}
	r.publish(ctx, event, domain.ChangeEntityListing, domain.ChangeActionUpserted, listingID)

	return nil
}

// handlePurchased deactivates the listing, records the sale and moves the token to the buyer
func (r *reconciler) handlePurchased(ctx context.Context, event *domain.DecodedEvent) error {
	args := argReader{event: event}
	listingID := args.id("id")
	buyer := args.address("buyer")
	nft := args.address("nft")
	tokenID := args.id("tokenId")
	amount := args.bigInt("amount")
	price := args.bigInt("price")
	if args.err != nil {
		return args.err
	}

	listing, err := r.store.GetListingByListingID(ctx, listingID)
	if err != nil {
		return err
	}

	var seller *string
	isERC1155 := false
	if listing != nil {
		seller = &listing.SellerAddress
		isERC1155 = listing.IsERC1155
	} else {
		logger.WarnCtx(ctx, "Purchase of unknown listing, recording sale without seller",
			eventFields(event, zap.String("listing_id", listingID))...)
	}

	tokenRef, err := r.resolveToken(ctx, event, nft, tokenID, isERC1155)
	if err != nil {
		return err
	}

	if listing != nil {
		if _, err := r.store.DeactivateListing(ctx, listingID); err != nil {
			return err
		}
		r.publish(ctx, event, domain.ChangeEntityListing, domain.ChangeActionUpdated, listingID)
	}

	return r.recordSale(ctx, event, store.CreateTransactionInput{
		TransactionHash: event.TxHash,
		TransactionType: schema.TransactionTypePurchase,
		TokenRef:        tokenRef,
		FromAddress:     seller,
		ToAddress:       buyer,
		PriceWei:        price,
		Amount:          toInt64(amount),
		BlockNumber:     event.BlockNumber,
	})
}

// handleUnlisted deactivates the listing
func (r *reconciler) handleUnlisted(ctx context.Context, event *domain.DecodedEvent) error {
	args := argReader{event: event}
	listingID := args.id("id")
	if args.err != nil {
		return args.err
	}

	listing, err := r.store.DeactivateListing(ctx, listingID)
	if err != nil {
		return err
	}
	if listing == nil {
		logger.WarnCtx(ctx, "Unlisted unknown listing", eventFields(event, zap.String("listing_id", listingID))...)
		return nil
	}
	r.publish(ctx, event, domain.ChangeEntityListing, domain.ChangeActionUpdated, listingID)

	return nil
}

// handleAuctionCreated upserts an auction with no bids
func (r *reconciler) handleAuctionCreated(ctx context.Context, event *domain.DecodedEvent) error {
	args := argReader{event: event}
	auctionID := args.id("id")
	seller := args.address("seller")
	nft := args.address("nft")
	tokenID := args.id("tokenId")
	amount := args.bigInt("amount")
	reserve := args.bigInt("reserve")
	start := args.uint64("start")
	end := args.uint64("end")
	isERC1155 := args.boolean("is1155")
	if args.err != nil {
		return args.err
	}

	tokenRef, err := r.resolveToken(ctx, event, nft, tokenID, isERC1155)
	if err != nil {
		return err
	}

	_, err = r.store.UpsertAuction(ctx, store.UpsertAuctionInput{
		AuctionID:       auctionID,
		TokenRef:        tokenRef,
		ContractAddress: nft,
		SellerAddress:   seller,
		ReserveWei:      reserve,
		StartTime:       unixTime(start),
		EndTime:         unixTime(end),
		Amount:          toInt64(amount),
		IsERC1155:       isERC1155,
		TransactionHash: event.TxHash,
		BlockNumber:     event.BlockNumber,
	})
	if err != nil {
		return err
	}
	r.publish(ctx, event, domain.ChangeEntityAuction, domain.ChangeActionUpserted, auctionID)

	return nil
}

// handleBidPlaced appends the bid and raises the highest bid when it outranks the incumbent
func (r *reconciler) handleBidPlaced(ctx context.Context, event *domain.DecodedEvent) error {
	args := argReader{event: event}
	auctionID := args.id("id")
	bidder := args.address("bidder")
	amount := args.bigInt("amount")
	if args.err != nil {
		return args.err
	}

	auction, err := r.store.GetAuctionByAuctionID(ctx, auctionID)
	if err != nil {
		return err
	}
	if auction == nil {
		logger.WarnCtx(ctx, "Bid on unknown auction", eventFields(event, zap.String("auction_id", auctionID))...)
		return nil
	}

	created, err := r.store.CreateBid(ctx, store.CreateBidInput{
		AuctionRef:      auction.ID,
		BidderAddress:   bidder,
		AmountWei:       amount,
		TransactionHash: event.TxHash,
		BlockNumber:     event.BlockNumber,
	})
	if err != nil {
		return err
	}
	if created {
		r.publish(ctx, event, domain.ChangeEntityBid, domain.ChangeActionCreated, auctionID+":"+event.TxHash)
	}

	raised, err := r.store.RaiseHighestBid(ctx, store.RaiseHighestBidInput{
		AuctionRef:    auction.ID,
		BidderAddress: bidder,
		AmountWei:     amount,
		BlockNumber:   event.BlockNumber,
		LogIndex:      event.LogIndex,
	})
	if err != nil {
		return err
	}
	if raised {
		r.publish(ctx, event, domain.ChangeEntityAuction, domain.ChangeActionUpdated, auctionID)
	}

	return nil
}

// handleAuctionSettled marks the auction settled and, when there is a winner, records the sale
func (r *reconciler) handleAuctionSettled(ctx context.Context, event *domain.DecodedEvent) error {
	args := argReader{event: event}
	auctionID := args.id("id")
	winner := args.address("winner")
	amount := args.bigInt("amount")
	if args.err != nil {
		return args.err
	}

	auction, err := r.store.GetAuctionByAuctionID(ctx, auctionID)
	if err != nil {
		return err
	}
	if auction == nil {
		logger.WarnCtx(ctx, "Settlement of unknown auction", eventFields(event, zap.String("auction_id", auctionID))...)
		return nil
	}

	var winnerPtr *string
	if winner != domain.ETHEREUM_ZERO_ADDRESS {
		winnerPtr = &winner
	}

	if err := r.store.SettleAuction(ctx, auction.ID, winnerPtr); err != nil {
		return err
	}
	r.publish(ctx, event, domain.ChangeEntityAuction, domain.ChangeActionUpdated, auctionID)

	if winnerPtr == nil {
		return nil
	}

	return r.recordSale(ctx, event, store.CreateTransactionInput{
		TransactionHash: event.TxHash,
		TransactionType: schema.TransactionTypeAuctionSettled,
		TokenRef:        auction.TokenRef,
		FromAddress:     &auction.SellerAddress,
		ToAddress:       winner,
		PriceWei:        amount,
		Amount:          auction.Amount,
		BlockNumber:     event.BlockNumber,
	})
}

// handleOfferMade upserts an active offer
func (r *reconciler) handleOfferMade(ctx context.Context, event *domain.DecodedEvent) error {
	args := argReader{event: event}
	nft := args.address("nft")
	tokenID := args.id("tokenId")
	offerID := domain.OfferKey(nft, tokenID, args.id("offerId"))
	buyer := args.address("buyer")
	price := args.bigInt("price")
	amount := args.bigInt("amount")
	expiry := args.uint64("expiry")
	isERC1155 := args.boolean("is1155")
	if args.err != nil {
		return args.err
	}

	tokenRef, err := r.resolveToken(ctx, event, nft, tokenID, isERC1155)
	if err != nil {
		return err
	}

	_, err = r.store.UpsertOffer(ctx, store.UpsertOfferInput{
		OfferID:         offerID,
		TokenRef:        tokenRef,
		ContractAddress: nft,
		BuyerAddress:    buyer,
		PriceWei:        price,
		Amount:          toInt64(amount),
		Expiry:          unixTime(expiry),
		IsERC1155:       isERC1155,
		TransactionHash: event.TxHash,
		BlockNumber:     event.BlockNumber,
	})
	if err != nil {
		return err
	}
	r.publish(ctx, event, domain.ChangeEntityOffer, domain.ChangeActionUpserted, offerID)

	return nil
}

// handleOfferAccepted deactivates the offer, records the sale and moves the token to the buyer
func (r *reconciler) handleOfferAccepted(ctx context.Context, event *domain.DecodedEvent) error {
	args := argReader{event: event}
	nft := args.address("nft")
	tokenID := args.id("tokenId")
	offerID := domain.OfferKey(nft, tokenID, args.id("offerId"))
	seller := args.address("seller")
	buyer := args.address("buyer")
	amount := args.bigInt("amount")
	totalPaid := args.bigInt("totalPaid")
	if args.err != nil {
		return args.err
	}

	offer, err := r.store.GetOfferByOfferID(ctx, offerID)
	if err != nil {
		return err
	}
	if offer == nil {
		logger.WarnCtx(ctx, "Acceptance of unknown offer", eventFields(event, zap.String("offer_id", offerID))...)
		return nil
	}

	if _, err := r.store.DeactivateOffer(ctx, offerID); err != nil {
		return err
	}
	r.publish(ctx, event, domain.ChangeEntityOffer, domain.ChangeActionUpdated, offerID)

	return r.recordSale(ctx, event, store.CreateTransactionInput{
		TransactionHash: event.TxHash,
		TransactionType: schema.TransactionTypeOfferAccepted,
		TokenRef:        offer.TokenRef,
		FromAddress:     &seller,
		ToAddress:       buyer,
		PriceWei:        totalPaid,
		Amount:          toInt64(amount),
		BlockNumber:     event.BlockNumber,
	})
}

// handleOfferCancelled deactivates the offer
func (r *reconciler) handleOfferCancelled(ctx context.Context, event *domain.DecodedEvent) error {
	args := argReader{event: event}
	nft := args.address("nft")
	tokenID := args.id("tokenId")
	offerID := domain.OfferKey(nft, tokenID, args.id("offerId"))
	if args.err != nil {
		return args.err
	}

	offer, err := r.store.DeactivateOffer(ctx, offerID)
	if err != nil {
		return err
	}
	if offer == nil {
		logger.WarnCtx(ctx, "Cancellation of unknown offer", eventFields(event, zap.String("offer_id", offerID))...)
		return nil
	}
	r.publish(ctx, event, domain.ChangeEntityOffer, domain.ChangeActionUpdated, offerID)

	return nil
}

// recordSale appends the transaction and hands the token to the buyer
func (r *reconciler) recordSale(ctx context.Context, event *domain.DecodedEvent, input store.CreateTransactionInput) error {
	created, err := r.store.CreateTransaction(ctx, input)
	if err != nil {
		return err
	}
	if created {
		r.publish(ctx, event, domain.ChangeEntityTransaction, domain.ChangeActionCreated, event.TxHash+":"+string(input.TransactionType))
	}

	changed, err := r.store.UpdateTokenOwner(ctx, input.TokenRef, input.ToAddress, event.BlockNumber)
	if err != nil {
		return err
	}
	if changed {
		r.publish(ctx, event, domain.ChangeEntityToken, domain.ChangeActionUpdated, strconv.FormatInt(input.TokenRef, 10))
	}

	return nil
}
