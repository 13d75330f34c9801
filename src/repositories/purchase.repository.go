package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"asset-ops/src/models"
)

type PurchaseRepository struct {
	DB *gorm.DB
}

// Get - Load one purchase order with its line items
func (r *PurchaseRepository) Get(tx *gorm.DB, poID uint) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder
	err := tx.Preload("Items").First(&order, poID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// NumbersForYear - Existing PO numbers for one year. Soft-deleted orders
// still count so their suffixes are never reissued.
func (r *PurchaseRepository) NumbersForYear(tx *gorm.DB, year int) ([]string, error) {
	prefix := fmt.Sprintf("PO-%04d-", year)

	var numbers []string
	err := tx.Model(&models.PurchaseOrder{}).
		Unscoped().
		Where("po_number LIKE ?", prefix+"%").
		Pluck("po_number", &numbers).Error
	return numbers, err
}

// List - List purchase orders with optional filters, newest first
func (r *PurchaseRepository) List(supplierID uint, status models.PurchaseOrderStatus,
	page, limit int) ([]models.PurchaseOrder, int64, error) {

	var orders []models.PurchaseOrder
	var total int64

	query := r.DB.Model(&models.PurchaseOrder{})
	if supplierID > 0 {
		query = query.Where("supplier_id = ?", supplierID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.
		Preload("Items").
		Order("order_date DESC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error
	return orders, total, err
}
