package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"asset-ops/src/apperrors"
	"asset-ops/src/models"
	"asset-ops/src/repositories"
)

// numberAttempts bounds the retry loop when two creations race for the
// same bucket and collide on the unique index.
const numberAttempts = 3

// ============ REQUEST STRUCTS ============
type CreateWorkOrderRequest struct {
	AssetID               uint
	MaintenanceScheduleID *uint
	MaintenanceType       models.MaintenanceType
	Priority              models.WorkOrderPriority
	Description           string
	ScheduledDate         time.Time
	Notes                 *string
}

type UpdateWorkOrderStatusRequest struct {
	WorkOrderID   uint
	Status        models.WorkOrderStatus
	CompletedDate *time.Time
	Notes         *string
}

// ============ WORK ORDER SERVICE ============
type WorkOrderService struct {
	DB     *gorm.DB
	Repo   *repositories.WorkOrderRepository
	Maint  *repositories.MaintenanceRepository
	Assets *repositories.AssetRepository
}

// NextWorkOrderNumber derives the next number for a (year, month) bucket
// from the numbers already issued in it: max existing suffix plus one,
// zero-padded to three digits, growing past 999 without truncation.
// Suffixes are never reused even when earlier orders were deleted.
func NextWorkOrderNumber(year int, month int, existing []string) string {
	prefix := fmt.Sprintf("WO-%04d-%02d-", year, month)

	maxSuffix := 0
	for _, number := range existing {
		if !strings.HasPrefix(number, prefix) {
			continue
		}
		suffix, err := strconv.Atoi(strings.TrimPrefix(number, prefix))
		if err != nil {
			continue
		}
		if suffix > maxSuffix {
			maxSuffix = suffix
		}
	}

	return fmt.Sprintf("%s%03d", prefix, maxSuffix+1)
}

// Create - Create a work order with a bucket-scoped number. The number is
// computed and inserted inside one transaction; a unique-index collision
// from a concurrent creation is retried with a recomputed number.
func (s *WorkOrderService) Create(req CreateWorkOrderRequest) (*models.WorkOrder, error) {
	if !req.MaintenanceType.Valid() {
		return nil, apperrors.Validation("maintenance_type must be preventive, corrective or emergency")
	}
	if !req.Priority.Valid() {
		return nil, apperrors.Validation("priority must be low, medium, high or critical")
	}
	if req.Description == "" {
		return nil, apperrors.Validation("description is required")
	}
	if req.ScheduledDate.IsZero() {
		return nil, apperrors.Validation("scheduled_date is required")
	}

	now := time.Now()
	var order *models.WorkOrder

	for attempt := 0; attempt < numberAttempts; attempt++ {
		err := s.DB.Transaction(func(tx *gorm.DB) error {
			exists, err := s.Assets.AssetExists(tx, req.AssetID)
			if err != nil {
				return err
			}
			if !exists {
				return apperrors.NotFound("asset %d not found", req.AssetID)
			}

			if req.MaintenanceScheduleID != nil {
				exists, err := s.Maint.ScheduleExists(tx, *req.MaintenanceScheduleID)
				if err != nil {
					return err
				}
				if !exists {
					return apperrors.NotFound("maintenance schedule %d not found", *req.MaintenanceScheduleID)
				}
			}

			numbers, err := s.Repo.NumbersForBucket(tx, now.Year(), int(now.Month()))
			if err != nil {
				return err
			}

			order = &models.WorkOrder{
				WorkOrderNumber:       NextWorkOrderNumber(now.Year(), int(now.Month()), numbers),
				AssetID:               req.AssetID,
				MaintenanceScheduleID: req.MaintenanceScheduleID,
				MaintenanceType:       req.MaintenanceType,
				Priority:              req.Priority,
				Description:           req.Description,
				ScheduledDate:         req.ScheduledDate,
				Status:                models.WorkOrderStatusPending,
				Notes:                 req.Notes,
			}
			return tx.Create(order).Error
		})

		if err == nil {
			return order, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return nil, err
	}

	return nil, apperrors.ConcurrencyConflict("could not allocate a work order number after %d attempts", numberAttempts)
}

// UpdateStatus - Apply one lifecycle transition. Completion requires a
// completed_date on or after the scheduled date.
func (s *WorkOrderService) UpdateStatus(req UpdateWorkOrderStatusRequest) (*models.WorkOrder, error) {
	var order *models.WorkOrder

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.Repo.Get(tx, req.WorkOrderID)
		if repositories.IsNotFound(err) {
			return apperrors.NotFound("work order %d not found", req.WorkOrderID)
		}
		if err != nil {
			return err
		}

		if !order.Status.CanTransitionTo(req.Status) {
			return apperrors.InvalidTransition("cannot move work order from %s to %s", order.Status, req.Status)
		}

		updates := map[string]interface{}{"status": req.Status}

		if req.Status == models.WorkOrderStatusCompleted {
			if req.CompletedDate == nil {
				return apperrors.Validation("completed_date is required to complete a work order")
			}
			if req.CompletedDate.Before(order.ScheduledDate) {
				return apperrors.Validation("completed_date must be on or after the scheduled date")
			}
			order.CompletedDate = req.CompletedDate
			updates["completed_date"] = *req.CompletedDate
		}
		if req.Notes != nil {
			order.Notes = req.Notes
			updates["notes"] = *req.Notes
		}

		order.Status = req.Status
		return tx.Model(&models.WorkOrder{}).
			Where("id = ?", order.ID).
			Updates(updates).Error
	})

	if err != nil {
		return nil, err
	}
	return order, nil
}

// List - Paginated work order listing with filters
func (s *WorkOrderService) List(assetID uint, status models.WorkOrderStatus,
	priority models.WorkOrderPriority, page, limit int) ([]models.WorkOrder, int64, error) {
	return s.Repo.List(assetID, status, priority, page, limit)
}

// Get - Load one work order
func (s *WorkOrderService) Get(workOrderID uint) (*models.WorkOrder, error) {
	order, err := s.Repo.Get(s.DB, workOrderID)
	if repositories.IsNotFound(err) {
		return nil, apperrors.NotFound("work order %d not found", workOrderID)
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}
