package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"asset-ops/src/models"
)

type StockRepository struct {
	DB *gorm.DB
}

// ItemExists - Check whether an inventory item id references a live item
func (r *StockRepository) ItemExists(tx *gorm.DB, itemID uint) (bool, error) {
	var count int64
	err := tx.Model(&models.InventoryItem{}).
		Where("id = ?", itemID).
		Count(&count).Error
	return count > 0, err
}

// GetItem - Load one inventory item by id
func (r *StockRepository) GetItem(itemID uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.DB.First(&item, itemID).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListItems - List inventory items with pagination
func (r *StockRepository) ListItems(page, limit int) ([]models.InventoryItem, int64, error) {
	var items []models.InventoryItem
	var total int64

	query := r.DB.Model(&models.InventoryItem{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("code ASC").Limit(limit).Offset(offset).Find(&items).Error
	return items, total, err
}

// AddStock - Increment an item's stock by delta and append the matching
// ledger row. Locks the item row so concurrent receipts serialize.
func (r *StockRepository) AddStock(tx *gorm.DB, itemID uint, delta int,
	source models.MovementSource, refID *uuid.UUID, movedAt time.Time,
	notes *string, createdBy string) (int, error) {

	var item models.InventoryItem
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&item, itemID).Error; err != nil {
		return 0, err
	}

	item.Stock += delta
	if err := tx.Model(&models.InventoryItem{}).
		Where("id = ?", item.ID).
		Update("stock", item.Stock).Error; err != nil {
		return 0, err
	}

	movement := models.StockMovement{
		ItemID:     itemID,
		Delta:      delta,
		StockAfter: item.Stock,
		Source:     source,
		RefID:      refID,
		MovedAt:    movedAt,
		Notes:      notes,
		CreatedBy:  createdBy,
		CreatedAt:  time.Now(),
	}
	if err := tx.Create(&movement).Error; err != nil {
		return 0, err
	}

	return item.Stock, nil
}

// GetMovements - Get ledger rows for an item, newest first
func (r *StockRepository) GetMovements(itemID uint, page, limit int) ([]models.StockMovement, int64, error) {
	var movements []models.StockMovement
	var total int64

	query := r.DB.Model(&models.StockMovement{}).Where("item_id = ?", itemID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.
		Order("moved_at DESC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&movements).Error
	return movements, total, err
}
