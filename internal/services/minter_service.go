package services

import (
	"math"

	"github.com/zhingPin/gsoe-contracts/internal/models"
	"github.com/zhingPin/gsoe-contracts/internal/registry"
)

// MinterService handles batch minting and the combined mint-and-list flow
type MinterService struct {
	roles    RoleStore
	config   ConfigStore
	listings ListingStore
	registry registry.Registry
	sink     Sink
	events   EventPublisher
	operator string
}

// NewMinterService creates a new MinterService
func NewMinterService(roles RoleStore, config ConfigStore, listings ListingStore, reg registry.Registry, sink Sink, events EventPublisher, operator string) *MinterService {
	return &MinterService{
		roles:    roles,
		config:   config,
		listings: listings,
		registry: reg,
		sink:     sink,
		events:   events,
		operator: operator,
	}
}

// MintBatch mints a batch of identical assets for the caller. The caller
// must hold the MINTER capability and pay the per-unit mint fee exactly.
func (s *MinterService) MintBatch(req models.MintBatchRequest, caller string) (*models.MintBatchResponse, error) {
	if err := s.requireMinter(caller); err != nil {
		return nil, err
	}
	if err := validateMintInput(req.URI, req.Quantity, req.RoyaltyRate); err != nil {
		return nil, err
	}

	cfg, err := s.config.Get()
	if err != nil {
		return nil, err
	}

	required, err := feeForQuantity(cfg.MintFeePerUnit, req.Quantity)
	if err != nil {
		return nil, err
	}
	if req.PaidValue != required {
		return nil, models.ErrIncorrectFee
	}

	to := req.To
	if to == "" {
		to = caller
	}
	creator := req.Creator
	if creator == "" {
		creator = caller
	}

	meta := registry.MintMeta{
		Creator:     creator,
		URI:         req.URI,
		RoyaltyRate: req.RoyaltyRate,
		MintFeePaid: required,
	}
	batch, assetIDs, err := s.registry.MintBatch(to, meta, req.Quantity)
	if err != nil {
		return nil, err
	}

	forwardFees(s.sink, cfg.FeeRecipient, required)

	s.events.Publish(models.NewEvent(models.EventBatchMinted, models.BatchMintedEvent{
		BatchID:     batch.ID,
		Creator:     creator,
		AssetIDs:    assetIDs,
		RoyaltyRate: req.RoyaltyRate,
		To:          to,
		CreatedAt:   batch.CreatedAt,
	}))

	return &models.MintBatchResponse{
		BatchID:  batch.ID,
		AssetIDs: assetIDs,
	}, nil
}

// MintAndList mints a batch for the caller and immediately lists every
// asset at the given price. The caller pays the combined mint and listing
// fee for the whole batch exactly.
func (s *MinterService) MintAndList(req models.MintAndListRequest, caller string) (*models.MintAndListResponse, error) {
	if err := s.requireMinter(caller); err != nil {
		return nil, err
	}
	if err := validateMintInput(req.URI, req.Quantity, req.RoyaltyRate); err != nil {
		return nil, err
	}
	if req.Price <= 0 {
		return nil, models.ErrInvalidPrice
	}

	cfg, err := s.config.Get()
	if err != nil {
		return nil, err
	}

	mintFees, err := feeForQuantity(cfg.MintFeePerUnit, req.Quantity)
	if err != nil {
		return nil, err
	}
	listingFees, err := feeForQuantity(cfg.ListingFee, req.Quantity)
	if err != nil {
		return nil, err
	}
	if mintFees > math.MaxInt64-listingFees {
		return nil, models.ErrInvalidQuantity
	}
	if req.PaidValue != mintFees+listingFees {
		return nil, models.ErrIncorrectFee
	}

	meta := registry.MintMeta{
		Creator:     caller,
		URI:         req.URI,
		RoyaltyRate: req.RoyaltyRate,
		MintFeePaid: mintFees,
	}
	batch, assetIDs, err := s.registry.MintBatch(caller, meta, req.Quantity)
	if err != nil {
		return nil, err
	}

	// Listing through the marketplace authorizes it to move the assets
	// when they sell
	if err := s.registry.SetApprovalForAll(caller, s.operator, true); err != nil {
		return nil, err
	}

	listingIDs, err := s.listings.CreateBatch(assetIDs, caller, req.Price, listingFees)
	if err != nil {
		return nil, err
	}

	forwardFees(s.sink, cfg.FeeRecipient, mintFees+listingFees)

	s.events.Publish(models.NewEvent(models.EventBatchMintAndListed, models.BatchMintAndListedEvent{
		BatchID:    batch.ID,
		Minter:     caller,
		AssetIDs:   assetIDs,
		ListingIDs: listingIDs,
		Price:      req.Price,
	}))

	return &models.MintAndListResponse{
		BatchID:    batch.ID,
		AssetIDs:   assetIDs,
		ListingIDs: listingIDs,
	}, nil
}

func (s *MinterService) requireMinter(caller string) error {
	ok, err := s.roles.HasRole(models.RoleMinter, caller)
	if err != nil {
		return err
	}
	if !ok {
		return models.ErrUnauthorized
	}
	return nil
}

// feeForQuantity computes the flat fee owed for a whole batch, rejecting
// quantities whose fee product would not fit in int64
func feeForQuantity(perUnit int64, quantity int) (int64, error) {
	if perUnit > 0 && int64(quantity) > math.MaxInt64/perUnit {
		return 0, models.ErrInvalidQuantity
	}
	return perUnit * int64(quantity), nil
}

func validateMintInput(uri string, quantity, royaltyRate int) error {
	if uri == "" {
		return models.ErrEmptyURI
	}
	if quantity < 1 {
		return models.ErrInvalidQuantity
	}
	if royaltyRate < 0 || royaltyRate > 100 {
		return models.ErrInvalidRoyalty
	}
	return nil
}
