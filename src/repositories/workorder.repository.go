package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"asset-ops/src/models"
)

type WorkOrderRepository struct {
	DB *gorm.DB
}

// Get - Load one work order by id within the given handle
func (r *WorkOrderRepository) Get(tx *gorm.DB, workOrderID uint) (*models.WorkOrder, error) {
	var order models.WorkOrder
	err := tx.First(&order, workOrderID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// NumbersForBucket - Existing work order numbers for one (year, month)
// bucket. Read inside the numbering transaction so the max-suffix
// computation and the insert see the same set.
func (r *WorkOrderRepository) NumbersForBucket(tx *gorm.DB, year int, month int) ([]string, error) {
	prefix := fmt.Sprintf("WO-%04d-%02d-", year, month)

	var numbers []string
	err := tx.Model(&models.WorkOrder{}).
		Unscoped().
		Where("work_order_number LIKE ?", prefix+"%").
		Pluck("work_order_number", &numbers).Error
	return numbers, err
}

// List - List work orders with optional filters, newest scheduled first
func (r *WorkOrderRepository) List(assetID uint, status models.WorkOrderStatus,
	priority models.WorkOrderPriority, page, limit int) ([]models.WorkOrder, int64, error) {

	var orders []models.WorkOrder
	var total int64

	query := r.DB.Model(&models.WorkOrder{})
	if assetID > 0 {
		query = query.Where("asset_id = ?", assetID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if priority != "" {
		query = query.Where("priority = ?", priority)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.
		Order("scheduled_date DESC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error
	return orders, total, err
}
