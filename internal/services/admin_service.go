package services

import (
	"github.com/zhingPin/gsoe-contracts/internal/models"
)

// AdminService handles the admin-gated fee configuration and role grants
type AdminService struct {
	roles  RoleStore
	config ConfigStore
}

// NewAdminService creates a new AdminService
func NewAdminService(roles RoleStore, config ConfigStore) *AdminService {
	return &AdminService{
		roles:  roles,
		config: config,
	}
}

// GetFees returns the current fee configuration
func (s *AdminService) GetFees() (*models.FeesResponse, error) {
	cfg, err := s.config.Get()
	if err != nil {
		return nil, err
	}

	return &models.FeesResponse{
		PlatformFeePercent: cfg.PlatformFeePercent,
		ListingFee:         cfg.ListingFee,
		MintFeePerUnit:     cfg.MintFeePerUnit,
		ListingFeeDisplay:  models.FormatAmount(cfg.ListingFee),
		MintFeeDisplay:     models.FormatAmount(cfg.MintFeePerUnit),
	}, nil
}

// SetPlatformFeePercent changes the percentage fee taken from every sale.
// Active listings are unaffected until they sell; sales always settle at
// the percentage current at sale time.
func (s *AdminService) SetPlatformFeePercent(percent int, caller string) error {
	if err := s.requireAdmin(caller); err != nil {
		return err
	}
	if percent < 0 || percent > 100 {
		return models.ErrInvalidFeePercent
	}
	return s.config.SetPlatformFeePercent(percent, caller)
}

// SetListingFee changes the flat fee charged when a listing is created
func (s *AdminService) SetListingFee(amount int64, caller string) error {
	if err := s.requireAdmin(caller); err != nil {
		return err
	}
	if amount < 0 {
		return models.ErrInvalidAmount
	}
	return s.config.SetListingFee(amount, caller)
}

// SetMintFeePerUnit changes the flat fee charged per minted asset
func (s *AdminService) SetMintFeePerUnit(amount int64, caller string) error {
	if err := s.requireAdmin(caller); err != nil {
		return err
	}
	if amount < 0 {
		return models.ErrInvalidAmount
	}
	return s.config.SetMintFeePerUnit(amount, caller)
}

// SetFeeRecipient changes the account that collects platform fees
func (s *AdminService) SetFeeRecipient(account string, caller string) error {
	if err := s.requireAdmin(caller); err != nil {
		return err
	}
	if account == "" {
		return models.ErrInvalidAccount
	}
	return s.config.SetFeeRecipient(account, caller)
}

// GrantRole grants a capability to an account
func (s *AdminService) GrantRole(req models.RoleRequest, caller string) error {
	if err := s.validateRoleRequest(req, caller); err != nil {
		return err
	}
	return s.roles.Grant(req.Role, req.Account, caller)
}

// RevokeRole removes a capability from an account
func (s *AdminService) RevokeRole(req models.RoleRequest, caller string) error {
	if err := s.validateRoleRequest(req, caller); err != nil {
		return err
	}
	return s.roles.Revoke(req.Role, req.Account)
}

// RolesFor returns the capabilities granted to an account
func (s *AdminService) RolesFor(account string) ([]models.RoleGrant, error) {
	return s.roles.GrantsByAccount(account)
}

func (s *AdminService) validateRoleRequest(req models.RoleRequest, caller string) error {
	if err := s.requireAdmin(caller); err != nil {
		return err
	}
	if !req.Role.Valid() {
		return models.ErrInvalidRole
	}
	if req.Account == "" {
		return models.ErrInvalidAccount
	}
	return nil
}

func (s *AdminService) requireAdmin(caller string) error {
	ok, err := s.roles.HasRole(models.RoleAdmin, caller)
	if err != nil {
		return err
	}
	if !ok {
		return models.ErrUnauthorized
	}
	return nil
}
