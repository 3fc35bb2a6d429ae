package services

import (
	"github.com/jmoiron/sqlx"
	"github.com/zhingPin/gsoe-contracts/internal/models"
	"github.com/zhingPin/gsoe-contracts/internal/registry"
)

// MarketService handles the listing lifecycle: create, buy and delist
type MarketService struct {
	listings ListingStore
	config   ConfigStore
	registry registry.Registry
	sink     Sink
	events   EventPublisher
	operator string
}

// NewMarketService creates a new MarketService
func NewMarketService(listings ListingStore, config ConfigStore, reg registry.Registry, sink Sink, events EventPublisher, operator string) *MarketService {
	return &MarketService{
		listings: listings,
		config:   config,
		registry: reg,
		sink:     sink,
		events:   events,
		operator: operator,
	}
}

// GetByID retrieves a listing by ID
func (s *MarketService) GetByID(id int64) (*models.Listing, error) {
	return s.listings.GetByID(id)
}

// List retrieves listings based on filter parameters
func (s *MarketService) List(params models.ListingParams) (*models.ListingListResponse, error) {
	listings, total, err := s.listings.List(params)
	if err != nil {
		return nil, err
	}

	return &models.ListingListResponse{
		Listings:   listings,
		TotalCount: total,
		Page:       params.Page,
		PageSize:   params.PageSize,
	}, nil
}

// ListItem creates an active listing for an asset the caller owns or is an
// approved operator for. The caller pays the flat listing fee exactly.
func (s *MarketService) ListItem(req models.CreateListingRequest, caller string) (*models.Listing, error) {
	if req.Price <= 0 {
		return nil, models.ErrInvalidPrice
	}

	owner, err := s.registry.OwnerOf(req.AssetID)
	if err != nil {
		return nil, err
	}

	if caller != owner {
		approved, err := s.registry.IsApprovedForAll(owner, caller)
		if err != nil {
			return nil, err
		}
		if !approved {
			return nil, models.ErrNotOwner
		}
	}

	active, err := s.listings.HasActiveForAsset(req.AssetID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, models.ErrAlreadyListed
	}

	cfg, err := s.config.Get()
	if err != nil {
		return nil, err
	}
	if req.PaidValue != cfg.ListingFee {
		return nil, models.ErrIncorrectFee
	}

	// A listing is an instruction to sell, so it carries operator approval
	// for the custody transfer at sale time
	if err := s.registry.SetApprovalForAll(owner, s.operator, true); err != nil {
		return nil, err
	}

	listing := &models.Listing{
		AssetID: req.AssetID,
		Seller:  owner,
		Price:   req.Price,
	}
	if err := s.listings.Create(listing, cfg.ListingFee); err != nil {
		return nil, err
	}

	forwardFees(s.sink, cfg.FeeRecipient, cfg.ListingFee)

	s.events.Publish(models.NewEvent(models.EventListingCreated, models.ListingCreatedEvent{
		ListingID: listing.ID,
		AssetID:   listing.AssetID,
		Seller:    listing.Seller,
		Price:     listing.Price,
	}))

	return s.listings.GetByID(listing.ID)
}

// DelistItem cancels an active listing. Only the seller may delist, and the
// listing fee is not refunded.
func (s *MarketService) DelistItem(listingID int64, caller string) (*models.Listing, error) {
	listing, err := s.listings.GetByID(listingID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, models.ErrItemNotAvailable
	}

	if caller != listing.Seller {
		return nil, models.ErrUnauthorized
	}

	if err := s.listings.Cancel(listingID); err != nil {
		return nil, err
	}

	s.events.Publish(models.NewEvent(models.EventListingCancelled, models.ListingCancelledEvent{
		ListingID: listingID,
		Seller:    listing.Seller,
	}))

	return s.listings.GetByID(listingID)
}

// BuyItem purchases an active listing for exact payment. Fee split,
// balance credits, the sold transition and the custody transfer commit
// atomically or not at all.
func (s *MarketService) BuyItem(listingID int64, req models.BuyRequest, caller string) (*models.Sale, error) {
	sale, err := s.listings.Fulfill(listingID, caller, req.PaidValue, func(tx *sqlx.Tx, assetID int64, from, to string) error {
		return s.registry.Transfer(tx, from, to, assetID)
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(models.NewEvent(models.EventListingSold, models.ListingSoldEvent{
		ListingID: sale.Listing.ID,
		AssetID:   sale.Listing.AssetID,
		Buyer:     sale.Buyer,
		Price:     sale.Listing.Price,
		Timestamp: sale.Timestamp,
	}))

	return sale, nil
}

// SetApproval grants or revokes operator approval on the asset registry
// for the caller's assets
func (s *MarketService) SetApproval(req models.ApprovalRequest, caller string) error {
	if req.Operator == "" {
		return models.ErrInvalidAccount
	}
	return s.registry.SetApprovalForAll(caller, req.Operator, req.Approved)
}
