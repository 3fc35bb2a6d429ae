package services

import (
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
	"github.com/zhingPin/gsoe-contracts/internal/models"
	"github.com/zhingPin/gsoe-contracts/internal/registry"
)

// MockRoleStore is a mock implementation of RoleStore
type MockRoleStore struct {
	mock.Mock
}

func (m *MockRoleStore) HasRole(role models.Role, account string) (bool, error) {
	args := m.Called(role, account)
	return args.Bool(0), args.Error(1)
}
func (m *MockRoleStore) Grant(role models.Role, account, grantedBy string) error {
	args := m.Called(role, account, grantedBy)
	return args.Error(0)
}
func (m *MockRoleStore) Revoke(role models.Role, account string) error {
	args := m.Called(role, account)
	return args.Error(0)
}
func (m *MockRoleStore) GrantsByAccount(account string) ([]models.RoleGrant, error) {
	args := m.Called(account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RoleGrant), args.Error(1)
}

// MockConfigStore is a mock implementation of ConfigStore
type MockConfigStore struct {
	mock.Mock
}

func (m *MockConfigStore) Get() (models.MarketConfig, error) {
	args := m.Called()
	return args.Get(0).(models.MarketConfig), args.Error(1)
}
func (m *MockConfigStore) SetPlatformFeePercent(percent int, updatedBy string) error {
	args := m.Called(percent, updatedBy)
	return args.Error(0)
}
func (m *MockConfigStore) SetListingFee(amount int64, updatedBy string) error {
	args := m.Called(amount, updatedBy)
	return args.Error(0)
}
func (m *MockConfigStore) SetMintFeePerUnit(amount int64, updatedBy string) error {
	args := m.Called(amount, updatedBy)
	return args.Error(0)
}
func (m *MockConfigStore) SetFeeRecipient(account string, updatedBy string) error {
	args := m.Called(account, updatedBy)
	return args.Error(0)
}

// MockListingStore is a mock implementation of ListingStore
type MockListingStore struct {
	mock.Mock
}

func (m *MockListingStore) GetByID(id int64) (*models.Listing, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}
func (m *MockListingStore) HasActiveForAsset(assetID int64) (bool, error) {
	args := m.Called(assetID)
	return args.Bool(0), args.Error(1)
}
func (m *MockListingStore) Create(listing *models.Listing, listingFee int64) error {
	args := m.Called(listing, listingFee)
	return args.Error(0)
}
func (m *MockListingStore) CreateBatch(assetIDs []int64, seller string, price, listingFee int64) ([]int64, error) {
	args := m.Called(assetIDs, seller, price, listingFee)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}
func (m *MockListingStore) Cancel(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

// Fulfill validates its expectation and, on success, drives the transfer
// callback the way the repository does: a rejected transfer aborts the sale.
func (m *MockListingStore) Fulfill(listingID int64, buyer string, paidValue int64, transfer func(tx *sqlx.Tx, assetID int64, from, to string) error) (*models.Sale, error) {
	args := m.Called(listingID, buyer, paidValue)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	sale := args.Get(0).(*models.Sale)
	if err := transfer(nil, sale.Listing.AssetID, sale.Listing.Seller, buyer); err != nil {
		return nil, err
	}
	return sale, args.Error(1)
}

func (m *MockListingStore) List(params models.ListingParams) ([]models.Listing, int, error) {
	args := m.Called(params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Listing), args.Int(1), args.Error(2)
}

// MockPayoutStore is a mock implementation of PayoutStore
type MockPayoutStore struct {
	mock.Mock
}

func (m *MockPayoutStore) Pending(account string) (int64, error) {
	args := m.Called(account)
	return args.Get(0).(int64), args.Error(1)
}

// Withdraw debits first and only then drives the payment callback,
// mirroring the repository's ordering.
func (m *MockPayoutStore) Withdraw(account string, pay func(account string, amount int64) error) (int64, error) {
	args := m.Called(account)
	if args.Error(1) != nil {
		return 0, args.Error(1)
	}
	amount := args.Get(0).(int64)
	if err := pay(account, amount); err != nil {
		return 0, err
	}
	return amount, nil
}

func (m *MockPayoutStore) Totals() (models.LedgerTotals, error) {
	args := m.Called()
	return args.Get(0).(models.LedgerTotals), args.Error(1)
}
func (m *MockPayoutStore) Withdrawals(account string) ([]models.Withdrawal, error) {
	args := m.Called(account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Withdrawal), args.Error(1)
}

// MockRegistry is a mock implementation of registry.Registry
type MockRegistry struct {
	mock.Mock
}

func (m *MockRegistry) MintBatch(to string, meta registry.MintMeta, quantity int) (*models.Batch, []int64, error) {
	args := m.Called(to, meta, quantity)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.Batch), args.Get(1).([]int64), args.Error(2)
}
func (m *MockRegistry) OwnerOf(assetID int64) (string, error) {
	args := m.Called(assetID)
	return args.String(0), args.Error(1)
}
// Transfer records the parties and asset; the transaction handle carries
// no information the expectations need.
func (m *MockRegistry) Transfer(tx *sqlx.Tx, from, to string, assetID int64) error {
	args := m.Called(from, to, assetID)
	return args.Error(0)
}
func (m *MockRegistry) IsApprovedForAll(owner, operator string) (bool, error) {
	args := m.Called(owner, operator)
	return args.Bool(0), args.Error(1)
}
func (m *MockRegistry) SetApprovalForAll(owner, operator string, approved bool) error {
	args := m.Called(owner, operator, approved)
	return args.Error(0)
}

// MockSink is a mock implementation of Sink
type MockSink struct {
	mock.Mock
}

func (m *MockSink) Pay(account string, amount int64) error {
	args := m.Called(account, amount)
	return args.Error(0)
}

// eventRecorder captures published events for assertions
type eventRecorder struct {
	events []models.Event
}

func (r *eventRecorder) Publish(event models.Event) {
	r.events = append(r.events, event)
}

func (r *eventRecorder) types() []string {
	types := make([]string, 0, len(r.events))
	for _, e := range r.events {
		types = append(types, e.Type)
	}
	return types
}
