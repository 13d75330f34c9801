package repositories

import (
	"time"

	"gorm.io/gorm"

	"asset-ops/src/models"
)

type MaintenanceRepository struct {
	DB *gorm.DB
}

// GetSchedule - Load one schedule by id within the given handle
func (r *MaintenanceRepository) GetSchedule(tx *gorm.DB, scheduleID uint) (*models.MaintenanceSchedule, error) {
	var schedule models.MaintenanceSchedule
	err := tx.First(&schedule, scheduleID).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

// ScheduleExists - Check whether a schedule id references a live schedule
func (r *MaintenanceRepository) ScheduleExists(tx *gorm.DB, scheduleID uint) (bool, error) {
	var count int64
	err := tx.Model(&models.MaintenanceSchedule{}).
		Where("id = ?", scheduleID).
		Count(&count).Error
	return count > 0, err
}

// ListSchedules - List schedules with optional asset/status filters
func (r *MaintenanceRepository) ListSchedules(assetID uint, status models.ScheduleStatus,
	page, limit int) ([]models.MaintenanceSchedule, int64, error) {

	var schedules []models.MaintenanceSchedule
	var total int64

	query := r.DB.Model(&models.MaintenanceSchedule{})
	if assetID > 0 {
		query = query.Where("asset_id = ?", assetID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.
		Order("next_maintenance ASC").
		Limit(limit).
		Offset(offset).
		Find(&schedules).Error
	return schedules, total, err
}

// ListOverdue - Active schedules past due as of the given date, most
// overdue first.
func (r *MaintenanceRepository) ListOverdue(asOf time.Time) ([]models.MaintenanceSchedule, error) {
	var schedules []models.MaintenanceSchedule
	err := r.DB.
		Where("status = ? AND next_maintenance < ?", models.ScheduleStatusActive, asOf).
		Order("next_maintenance ASC").
		Find(&schedules).Error
	return schedules, err
}

// ListHistory - History entries for one schedule, newest first
func (r *MaintenanceRepository) ListHistory(scheduleID uint, page, limit int) ([]models.MaintenanceHistory, int64, error) {
	var entries []models.MaintenanceHistory
	var total int64

	query := r.DB.Model(&models.MaintenanceHistory{}).Where("schedule_id = ?", scheduleID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.
		Order("completion_date DESC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	return entries, total, err
}
