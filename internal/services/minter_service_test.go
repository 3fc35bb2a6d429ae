package services

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/zhingPin/gsoe-contracts/internal/models"
	"github.com/zhingPin/gsoe-contracts/internal/registry"
)

const testOperator = "marketplace"

func testMarketConfig() models.MarketConfig {
	return models.MarketConfig{
		PlatformFeePercent: 2,
		ListingFee:         2_500_000,
		MintFeePerUnit:     1_000_000,
		FeeRecipient:       "treasury",
	}
}

func newMinterFixture() (*MinterService, *MockRoleStore, *MockConfigStore, *MockListingStore, *MockRegistry, *MockSink, *eventRecorder) {
	roles := new(MockRoleStore)
	config := new(MockConfigStore)
	listings := new(MockListingStore)
	reg := new(MockRegistry)
	sink := new(MockSink)
	events := &eventRecorder{}
	svc := NewMinterService(roles, config, listings, reg, sink, events, testOperator)
	return svc, roles, config, listings, reg, sink, events
}

func TestMintBatch(t *testing.T) {
	svc, roles, config, _, reg, sink, events := newMinterFixture()

	roles.On("HasRole", models.RoleMinter, "alice").Return(true, nil)
	config.On("Get").Return(testMarketConfig(), nil)

	batch := &models.Batch{ID: 7, Creator: "alice", Quantity: 3, CreatedAt: time.Now()}
	meta := registry.MintMeta{Creator: "alice", URI: "ipfs://art", RoyaltyRate: 10, MintFeePaid: 3_000_000}
	reg.On("MintBatch", "alice", meta, 3).Return(batch, []int64{41, 42, 43}, nil)

	sink.On("Pay", "treasury", int64(3_000_000)).Return(nil)

	resp, err := svc.MintBatch(models.MintBatchRequest{
		URI:         "ipfs://art",
		Quantity:    3,
		RoyaltyRate: 10,
		PaidValue:   3_000_000,
	}, "alice")

	assert.NoError(t, err)
	assert.Equal(t, int64(7), resp.BatchID)
	assert.Equal(t, []int64{41, 42, 43}, resp.AssetIDs)
	assert.Equal(t, []string{models.EventBatchMinted}, events.types())

	roles.AssertExpectations(t)
	reg.AssertExpectations(t)
	sink.AssertExpectations(t)
}

func TestMintBatchToOtherRecipient(t *testing.T) {
	svc, roles, config, _, reg, sink, _ := newMinterFixture()

	roles.On("HasRole", models.RoleMinter, "alice").Return(true, nil)
	config.On("Get").Return(testMarketConfig(), nil)

	// The creator stays the caller even when minting to someone else
	batch := &models.Batch{ID: 8, Creator: "alice", Quantity: 1}
	reg.On("MintBatch", "bob", mock.MatchedBy(func(meta registry.MintMeta) bool {
		return meta.Creator == "alice"
	}), 1).Return(batch, []int64{50}, nil)

	sink.On("Pay", "treasury", int64(1_000_000)).Return(nil)

	resp, err := svc.MintBatch(models.MintBatchRequest{
		To:          "bob",
		URI:         "ipfs://art",
		Quantity:    1,
		RoyaltyRate: 0,
		PaidValue:   1_000_000,
	}, "alice")

	assert.NoError(t, err)
	assert.Equal(t, []int64{50}, resp.AssetIDs)
	reg.AssertExpectations(t)
}

func TestMintBatchSettlementFailure(t *testing.T) {
	svc, roles, config, _, reg, sink, events := newMinterFixture()

	roles.On("HasRole", models.RoleMinter, "alice").Return(true, nil)
	config.On("Get").Return(testMarketConfig(), nil)

	batch := &models.Batch{ID: 8, Creator: "alice", Quantity: 1}
	reg.On("MintBatch", "alice", mock.Anything, 1).Return(batch, []int64{51}, nil)

	// The batch and its fee counter are committed; a failed onward
	// settlement must not fail the mint
	sink.On("Pay", "treasury", int64(1_000_000)).Return(errors.New("settlement rail down"))

	resp, err := svc.MintBatch(models.MintBatchRequest{
		URI:       "ipfs://art",
		Quantity:  1,
		PaidValue: 1_000_000,
	}, "alice")

	assert.NoError(t, err)
	assert.Equal(t, []int64{51}, resp.AssetIDs)
	assert.Equal(t, []string{models.EventBatchMinted}, events.types())
	sink.AssertExpectations(t)
}

func TestMintBatchUnauthorized(t *testing.T) {
	svc, roles, _, _, reg, _, events := newMinterFixture()

	roles.On("HasRole", models.RoleMinter, "mallory").Return(false, nil)

	_, err := svc.MintBatch(models.MintBatchRequest{
		URI:       "ipfs://art",
		Quantity:  1,
		PaidValue: 1_000_000,
	}, "mallory")

	assert.ErrorIs(t, err, models.ErrUnauthorized)
	reg.AssertNotCalled(t, "MintBatch", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, events.events)
}

func TestMintBatchValidation(t *testing.T) {
	tests := []struct {
		name string
		req  models.MintBatchRequest
		want error
	}{
		{
			name: "empty URI",
			req:  models.MintBatchRequest{Quantity: 1, RoyaltyRate: 10, PaidValue: 1_000_000},
			want: models.ErrEmptyURI,
		},
		{
			name: "zero quantity",
			req:  models.MintBatchRequest{URI: "ipfs://art", Quantity: 0, PaidValue: 0},
			want: models.ErrInvalidQuantity,
		},
		{
			name: "negative quantity",
			req:  models.MintBatchRequest{URI: "ipfs://art", Quantity: -2, PaidValue: 0},
			want: models.ErrInvalidQuantity,
		},
		{
			name: "royalty above 100",
			req:  models.MintBatchRequest{URI: "ipfs://art", Quantity: 1, RoyaltyRate: 101, PaidValue: 1_000_000},
			want: models.ErrInvalidRoyalty,
		},
		{
			name: "negative royalty",
			req:  models.MintBatchRequest{URI: "ipfs://art", Quantity: 1, RoyaltyRate: -1, PaidValue: 1_000_000},
			want: models.ErrInvalidRoyalty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, roles, config, _, reg, _, _ := newMinterFixture()
			roles.On("HasRole", models.RoleMinter, "alice").Return(true, nil)
			config.On("Get").Return(testMarketConfig(), nil)

			_, err := svc.MintBatch(tt.req, "alice")

			assert.ErrorIs(t, err, tt.want)
			reg.AssertNotCalled(t, "MintBatch", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestMintBatchFeeMustMatchExactly(t *testing.T) {
	for _, paid := range []int64{0, 2_999_999, 3_000_001} {
		svc, roles, config, _, reg, _, _ := newMinterFixture()
		roles.On("HasRole", models.RoleMinter, "alice").Return(true, nil)
		config.On("Get").Return(testMarketConfig(), nil)

		_, err := svc.MintBatch(models.MintBatchRequest{
			URI:       "ipfs://art",
			Quantity:  3,
			PaidValue: paid,
		}, "alice")

		assert.ErrorIs(t, err, models.ErrIncorrectFee)
		reg.AssertNotCalled(t, "MintBatch", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestMintBatchQuantityOverflowsFee(t *testing.T) {
	svc, roles, config, _, reg, _, _ := newMinterFixture()

	roles.On("HasRole", models.RoleMinter, "alice").Return(true, nil)
	config.On("Get").Return(testMarketConfig(), nil)

	// A quantity whose total fee would wrap int64 cannot slip through the
	// exact-payment check with a wrapped product
	quantity := int(math.MaxInt64/testMarketConfig().MintFeePerUnit) + 1

	_, err := svc.MintBatch(models.MintBatchRequest{
		URI:       "ipfs://art",
		Quantity:  quantity,
		PaidValue: 0,
	}, "alice")

	assert.ErrorIs(t, err, models.ErrInvalidQuantity)
	reg.AssertNotCalled(t, "MintBatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestMintBatchRegistryRejection(t *testing.T) {
	svc, roles, config, _, reg, sink, events := newMinterFixture()

	roles.On("HasRole", models.RoleMinter, "alice").Return(true, nil)
	config.On("Get").Return(testMarketConfig(), nil)
	reg.On("MintBatch", "alice", mock.Anything, 2).Return(nil, nil, models.ErrMintRejected)

	_, err := svc.MintBatch(models.MintBatchRequest{
		URI:       "ipfs://art",
		Quantity:  2,
		PaidValue: 2_000_000,
	}, "alice")

	assert.ErrorIs(t, err, models.ErrMintRejected)
	sink.AssertNotCalled(t, "Pay", mock.Anything, mock.Anything)
	assert.Empty(t, events.events)
}

func TestMintAndList(t *testing.T) {
	svc, roles, config, listings, reg, sink, events := newMinterFixture()

	roles.On("HasRole", models.RoleMinter, "alice").Return(true, nil)
	config.On("Get").Return(testMarketConfig(), nil)

	batch := &models.Batch{ID: 9, Creator: "alice", Quantity: 2}
	reg.On("MintBatch", "alice", mock.Anything, 2).Return(batch, []int64{61, 62}, nil)
	reg.On("SetApprovalForAll", "alice", testOperator, true).Return(nil)

	// All listings and the 2 x listing fee commit in one call
	listings.On("CreateBatch", []int64{61, 62}, "alice", int64(500_000_000), int64(5_000_000)).
		Return([]int64{101, 102}, nil)

	// 2 x mint fee + 2 x listing fee settled together
	sink.On("Pay", "treasury", int64(7_000_000)).Return(nil)

	resp, err := svc.MintAndList(models.MintAndListRequest{
		URI:         "ipfs://art",
		Price:       500_000_000,
		RoyaltyRate: 5,
		Quantity:    2,
		PaidValue:   7_000_000,
	}, "alice")

	assert.NoError(t, err)
	assert.Equal(t, int64(9), resp.BatchID)
	assert.Equal(t, []int64{61, 62}, resp.AssetIDs)
	assert.Equal(t, []int64{101, 102}, resp.ListingIDs)
	assert.Equal(t, []string{models.EventBatchMintAndListed}, events.types())

	listings.AssertExpectations(t)
	sink.AssertExpectations(t)
}

func TestMintAndListInvalidPrice(t *testing.T) {
	svc, roles, _, _, reg, _, _ := newMinterFixture()

	roles.On("HasRole", models.RoleMinter, "alice").Return(true, nil)

	_, err := svc.MintAndList(models.MintAndListRequest{
		URI:      "ipfs://art",
		Price:    0,
		Quantity: 1,
	}, "alice")

	assert.ErrorIs(t, err, models.ErrInvalidPrice)
	reg.AssertNotCalled(t, "MintBatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestMintAndListFeeMustCoverBothLegs(t *testing.T) {
	svc, roles, config, _, reg, _, _ := newMinterFixture()

	roles.On("HasRole", models.RoleMinter, "alice").Return(true, nil)
	config.On("Get").Return(testMarketConfig(), nil)

	// Paying only the mint leg is not enough
	_, err := svc.MintAndList(models.MintAndListRequest{
		URI:       "ipfs://art",
		Price:     500_000_000,
		Quantity:  2,
		PaidValue: 2_000_000,
	}, "alice")

	assert.ErrorIs(t, err, models.ErrIncorrectFee)
	reg.AssertNotCalled(t, "MintBatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestMintAndListQuantityOverflowsFee(t *testing.T) {
	svc, roles, config, _, reg, _, _ := newMinterFixture()

	roles.On("HasRole", models.RoleMinter, "alice").Return(true, nil)
	config.On("Get").Return(testMarketConfig(), nil)

	quantity := int(math.MaxInt64/testMarketConfig().ListingFee) + 1

	_, err := svc.MintAndList(models.MintAndListRequest{
		URI:       "ipfs://art",
		Price:     500_000_000,
		Quantity:  quantity,
		PaidValue: 0,
	}, "alice")

	assert.ErrorIs(t, err, models.ErrInvalidQuantity)
	reg.AssertNotCalled(t, "MintBatch", mock.Anything, mock.Anything, mock.Anything)
}
