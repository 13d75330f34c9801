package models

import (
	"time"

	"gorm.io/gorm"
)

// ============ ENUMS & TYPES ============
type MaintenanceType string

const (
	MaintenanceTypePreventive MaintenanceType = "preventive"
	MaintenanceTypeCorrective MaintenanceType = "corrective"
	MaintenanceTypeEmergency  MaintenanceType = "emergency"
)

func (t MaintenanceType) Valid() bool {
	switch t {
	case MaintenanceTypePreventive, MaintenanceTypeCorrective, MaintenanceTypeEmergency:
		return true
	default:
		return false
	}
}

type WorkOrderPriority string

const (
	PriorityLow      WorkOrderPriority = "low"
	PriorityMedium   WorkOrderPriority = "medium"
	PriorityHigh     WorkOrderPriority = "high"
	PriorityCritical WorkOrderPriority = "critical"
)

func (p WorkOrderPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	default:
		return false
	}
}

type WorkOrderStatus string

const (
	WorkOrderStatusPending    WorkOrderStatus = "pending"
	WorkOrderStatusInProgress WorkOrderStatus = "in_progress"
	WorkOrderStatusCompleted  WorkOrderStatus = "completed"
	WorkOrderStatusCancelled  WorkOrderStatus = "cancelled"
)

// CanTransitionTo encodes the forward-only work order lifecycle.
// completed and cancelled are terminal.
func (s WorkOrderStatus) CanTransitionTo(next WorkOrderStatus) bool {
	switch s {
	case WorkOrderStatusPending:
		return next == WorkOrderStatusInProgress || next == WorkOrderStatusCancelled
	case WorkOrderStatusInProgress:
		return next == WorkOrderStatusCompleted || next == WorkOrderStatusCancelled
	default:
		return false
	}
}

// ============ WORK ORDER ============
type WorkOrder struct {
	ID              uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	WorkOrderNumber string `gorm:"type:varchar(30);uniqueIndex;not null" json:"work_order_number"`

	AssetID               uint  `gorm:"not null;index" json:"asset_id"`
	MaintenanceScheduleID *uint `gorm:"index" json:"maintenance_schedule_id,omitempty"`

	MaintenanceType MaintenanceType   `gorm:"type:varchar(20);not null" json:"maintenance_type"`
	Priority        WorkOrderPriority `gorm:"type:varchar(10);not null" json:"priority"`
	Description     string            `gorm:"type:text;not null" json:"description"`

	ScheduledDate time.Time  `gorm:"type:date;not null" json:"scheduled_date"`
	CompletedDate *time.Time `gorm:"type:date" json:"completed_date,omitempty"`

	Status WorkOrderStatus `gorm:"type:varchar(15);not null;default:'pending'" json:"status"`
	Notes  *string         `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (WorkOrder) TableName() string {
	return "work_orders"
}
