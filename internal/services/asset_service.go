package services

import (
	"github.com/zhingPin/gsoe-contracts/internal/models"
)

// AssetService serves the read-side asset and batch views
type AssetService struct {
	assets AssetStore
}

// NewAssetService creates a new AssetService
func NewAssetService(assets AssetStore) *AssetService {
	return &AssetService{
		assets: assets,
	}
}

// GetByID retrieves an asset by ID
func (s *AssetService) GetByID(id int64) (*models.Asset, error) {
	return s.assets.GetByID(id)
}

// GetBatch retrieves a batch by ID
func (s *AssetService) GetBatch(id int64) (*models.Batch, error) {
	return s.assets.GetBatch(id)
}

// List retrieves assets based on filter parameters
func (s *AssetService) List(params models.AssetParams) (*models.AssetListResponse, error) {
	assets, total, err := s.assets.List(params)
	if err != nil {
		return nil, err
	}

	return &models.AssetListResponse{
		Assets:     assets,
		TotalCount: total,
		Page:       params.Page,
		PageSize:   params.PageSize,
	}, nil
}
