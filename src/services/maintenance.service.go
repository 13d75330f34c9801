package services

import (
	"time"

	"gorm.io/gorm"

	"asset-ops/src/apperrors"
	"asset-ops/src/models"
	"asset-ops/src/repositories"
)

// ============ REQUEST STRUCTS ============
type CreateScheduleRequest struct {
	AssetID            uint
	ScheduleType       models.ScheduleType
	FrequencyValue     *int
	FrequencyUnit      *models.FrequencyUnit
	NextMaintenance    time.Time
	AssignedTechnician string
	Status             models.ScheduleStatus
	Notes              *string
}

type RecordCompletionRequest struct {
	ScheduleID     uint
	CompletionDate time.Time
	CompletedBy    string
	Status         models.HistoryStatus
	Notes          *string
}

// ============ MAINTENANCE SERVICE ============
type MaintenanceService struct {
	DB     *gorm.DB
	Repo   *repositories.MaintenanceRepository
	Assets *repositories.AssetRepository
}

// CreateSchedule - Create a recurring maintenance definition. The first
// due date is operator-chosen, never derived.
func (s *MaintenanceService) CreateSchedule(req CreateScheduleRequest) (*models.MaintenanceSchedule, error) {
	if req.NextMaintenance.IsZero() {
		return nil, apperrors.Validation("next_maintenance is required")
	}
	if err := ValidateFrequency(req.ScheduleType, req.FrequencyValue, req.FrequencyUnit); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.ScheduleStatusActive
	}
	if status != models.ScheduleStatusActive && status != models.ScheduleStatusPaused {
		return nil, apperrors.Validation("status must be active or paused")
	}

	var schedule *models.MaintenanceSchedule
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		exists, err := s.Assets.AssetExists(tx, req.AssetID)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.Validation("asset %d does not exist", req.AssetID)
		}

		schedule = &models.MaintenanceSchedule{
			AssetID:            req.AssetID,
			ScheduleType:       req.ScheduleType,
			FrequencyValue:     req.FrequencyValue,
			FrequencyUnit:      req.FrequencyUnit,
			NextMaintenance:    req.NextMaintenance,
			AssignedTechnician: req.AssignedTechnician,
			Status:             status,
			Notes:              req.Notes,
		}
		return tx.Create(schedule).Error
	})

	return schedule, err
}

// RecordCompletion - Append a history entry for a schedule. A completed
// entry advances last/next maintenance; a pending entry leaves the
// schedule dates untouched.
func (s *MaintenanceService) RecordCompletion(req RecordCompletionRequest) (*models.MaintenanceHistory, *models.MaintenanceSchedule, error) {
	if req.Status != models.HistoryStatusCompleted && req.Status != models.HistoryStatusPending {
		return nil, nil, apperrors.Validation("status must be completed or pending")
	}
	if req.CompletionDate.IsZero() {
		return nil, nil, apperrors.Validation("completion_date is required")
	}
	if req.CompletedBy == "" {
		return nil, nil, apperrors.Validation("completed_by is required")
	}

	var history *models.MaintenanceHistory
	var schedule *models.MaintenanceSchedule

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		schedule, err = s.Repo.GetSchedule(tx, req.ScheduleID)
		if repositories.IsNotFound(err) {
			return apperrors.NotFound("maintenance schedule %d not found", req.ScheduleID)
		}
		if err != nil {
			return err
		}

		history = &models.MaintenanceHistory{
			ScheduleID:     schedule.ID,
			CompletionDate: req.CompletionDate,
			CompletedBy:    req.CompletedBy,
			Status:         req.Status,
			Notes:          req.Notes,
			CreatedAt:      time.Now(),
		}
		if err := tx.Create(history).Error; err != nil {
			return err
		}

		if req.Status != models.HistoryStatusCompleted {
			return nil
		}

		next, err := NextDueDate(req.CompletionDate, schedule.ScheduleType,
			schedule.FrequencyValue, schedule.FrequencyUnit)
		if err != nil {
			return err
		}

		schedule.LastMaintenance = &req.CompletionDate
		schedule.NextMaintenance = next
		return tx.Model(&models.MaintenanceSchedule{}).
			Where("id = ?", schedule.ID).
			Updates(map[string]interface{}{
				"last_maintenance": req.CompletionDate,
				"next_maintenance": next,
			}).Error
	})

	if err != nil {
		return nil, nil, err
	}
	return history, schedule, nil
}

// UpdateStatus - Pause or resume a schedule. Schedules are never
// hard-deleted in normal flow; pausing is the soft off-switch.
func (s *MaintenanceService) UpdateStatus(scheduleID uint, status models.ScheduleStatus) (*models.MaintenanceSchedule, error) {
	if status != models.ScheduleStatusActive && status != models.ScheduleStatusPaused {
		return nil, apperrors.Validation("status must be active or paused")
	}

	var schedule *models.MaintenanceSchedule
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		schedule, err = s.Repo.GetSchedule(tx, scheduleID)
		if repositories.IsNotFound(err) {
			return apperrors.NotFound("maintenance schedule %d not found", scheduleID)
		}
		if err != nil {
			return err
		}

		schedule.Status = status
		return tx.Model(&models.MaintenanceSchedule{}).
			Where("id = ?", schedule.ID).
			Update("status", status).Error
	})

	if err != nil {
		return nil, err
	}
	return schedule, nil
}

// ListOverdue - The candidate set for work order generation. The caller
// decides whether to act on it; this engine only reports.
func (s *MaintenanceService) ListOverdue(asOf time.Time) ([]models.MaintenanceSchedule, error) {
	return s.Repo.ListOverdue(asOf)
}

// ListSchedules - Paginated schedule listing with filters
func (s *MaintenanceService) ListSchedules(assetID uint, status models.ScheduleStatus,
	page, limit int) ([]models.MaintenanceSchedule, int64, error) {
	return s.Repo.ListSchedules(assetID, status, page, limit)
}

// ListHistory - Paginated history for one schedule
func (s *MaintenanceService) ListHistory(scheduleID uint, page, limit int) ([]models.MaintenanceHistory, int64, error) {
	return s.Repo.ListHistory(scheduleID, page, limit)
}
