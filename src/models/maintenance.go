package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ============ ENUMS & TYPES ============
type ScheduleType string

const (
	ScheduleTypeDaily     ScheduleType = "daily"
	ScheduleTypeWeekly    ScheduleType = "weekly"
	ScheduleTypeMonthly   ScheduleType = "monthly"
	ScheduleTypeQuarterly ScheduleType = "quarterly"
	ScheduleTypeYearly    ScheduleType = "yearly"
	ScheduleTypeCustom    ScheduleType = "custom"
)

type FrequencyUnit string

const (
	FrequencyUnitDays   FrequencyUnit = "days"
	FrequencyUnitWeeks  FrequencyUnit = "weeks"
	FrequencyUnitMonths FrequencyUnit = "months"
)

type ScheduleStatus string

const (
	ScheduleStatusActive ScheduleStatus = "active"
	ScheduleStatusPaused ScheduleStatus = "paused"
)

type HistoryStatus string

const (
	HistoryStatusCompleted HistoryStatus = "completed"
	HistoryStatusPending   HistoryStatus = "pending"
)

// ScheduleTypeLabels is the single enum-to-label mapping shared by the
// frequency logic and every presentation surface.
var ScheduleTypeLabels = map[ScheduleType]string{
	ScheduleTypeDaily:     "Daily",
	ScheduleTypeWeekly:    "Weekly",
	ScheduleTypeMonthly:   "Monthly",
	ScheduleTypeQuarterly: "Quarterly",
	ScheduleTypeYearly:    "Yearly",
	ScheduleTypeCustom:    "Custom",
}

func (t ScheduleType) Valid() bool {
	_, ok := ScheduleTypeLabels[t]
	return ok
}

func (t ScheduleType) Label() string {
	if label, ok := ScheduleTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

func (u FrequencyUnit) Valid() bool {
	switch u {
	case FrequencyUnitDays, FrequencyUnitWeeks, FrequencyUnitMonths:
		return true
	default:
		return false
	}
}

// ============ MAINTENANCE SCHEDULE ============
type MaintenanceSchedule struct {
	ID      uint `gorm:"primaryKey;autoIncrement" json:"id"`
	AssetID uint `gorm:"not null;index" json:"asset_id"`

	ScheduleType   ScheduleType   `gorm:"type:varchar(20);not null" json:"schedule_type"`
	FrequencyValue *int           `gorm:"type:integer" json:"frequency_value,omitempty"`
	FrequencyUnit  *FrequencyUnit `gorm:"type:varchar(10)" json:"frequency_unit,omitempty"`

	LastMaintenance *time.Time `gorm:"type:date" json:"last_maintenance,omitempty"`
	NextMaintenance time.Time  `gorm:"type:date;not null;index" json:"next_maintenance"`

	AssignedTechnician string         `gorm:"type:varchar(100)" json:"assigned_technician"`
	Status             ScheduleStatus `gorm:"type:varchar(10);not null;default:'active'" json:"status"`
	Notes              *string        `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (MaintenanceSchedule) TableName() string {
	return "maintenance_schedules"
}

// Overdue reports whether an active schedule has passed its due date.
func (s *MaintenanceSchedule) Overdue(asOf time.Time) bool {
	return s.Status == ScheduleStatusActive && s.NextMaintenance.Before(asOf)
}

// FrequencyLabel renders the schedule's recurrence for display. Custom
// schedules spell out the value and unit; everything else uses the shared
// label table.
func (s *MaintenanceSchedule) FrequencyLabel() string {
	if s.ScheduleType != ScheduleTypeCustom || s.FrequencyValue == nil || s.FrequencyUnit == nil {
		return s.ScheduleType.Label()
	}
	if *s.FrequencyValue == 1 {
		return fmt.Sprintf("Every %s", strings.TrimSuffix(string(*s.FrequencyUnit), "s"))
	}
	return fmt.Sprintf("Every %d %s", *s.FrequencyValue, *s.FrequencyUnit)
}

// ============ MAINTENANCE HISTORY ============
type MaintenanceHistory struct {
	ID         uint `gorm:"primaryKey;autoIncrement" json:"id"`
	ScheduleID uint `gorm:"not null;index" json:"schedule_id"`

	CompletionDate time.Time     `gorm:"type:date;not null" json:"completion_date"`
	CompletedBy    string        `gorm:"type:varchar(100);not null" json:"completed_by"`
	Status         HistoryStatus `gorm:"type:varchar(10);not null" json:"status"`
	Notes          *string       `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (MaintenanceHistory) TableName() string {
	return "maintenance_histories"
}
