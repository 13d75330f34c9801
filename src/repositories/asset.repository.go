package repositories

import (
	"errors"

	"gorm.io/gorm"

	"asset-ops/src/models"
)

type AssetRepository struct {
	DB *gorm.DB
}

// AssetExists - Check whether an asset id references a live asset
func (r *AssetRepository) AssetExists(tx *gorm.DB, assetID uint) (bool, error) {
	var count int64
	err := tx.Model(&models.Asset{}).
		Where("id = ?", assetID).
		Count(&count).Error
	return count > 0, err
}

// GetAsset - Load one asset by id
func (r *AssetRepository) GetAsset(assetID uint) (*models.Asset, error) {
	var asset models.Asset
	err := r.DB.First(&asset, assetID).Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// ListAssets - List assets with optional category filter
func (r *AssetRepository) ListAssets(category string, page, limit int) ([]models.Asset, int64, error) {
	var assets []models.Asset
	var total int64

	query := r.DB.Model(&models.Asset{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("asset_tag ASC").Limit(limit).Offset(offset).Find(&assets).Error
	return assets, total, err
}

// SupplierExists - Check whether a supplier id references a live supplier
func (r *AssetRepository) SupplierExists(tx *gorm.DB, supplierID uint) (bool, error) {
	var count int64
	err := tx.Model(&models.Supplier{}).
		Where("id = ?", supplierID).
		Count(&count).Error
	return count > 0, err
}

// GetSupplier - Load one supplier by id
func (r *AssetRepository) GetSupplier(supplierID uint) (*models.Supplier, error) {
	var supplier models.Supplier
	err := r.DB.First(&supplier, supplierID).Error
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

// ListSuppliers - List suppliers ordered by code
func (r *AssetRepository) ListSuppliers(page, limit int) ([]models.Supplier, int64, error) {
	var suppliers []models.Supplier
	var total int64

	query := r.DB.Model(&models.Supplier{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("code ASC").Limit(limit).Offset(offset).Find(&suppliers).Error
	return suppliers, total, err
}

// IsNotFound - Normalize gorm's missing-record error
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
