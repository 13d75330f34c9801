package requests

// ============ SCHEDULES ============
type CreateScheduleRequest struct {
	AssetID            uint    `json:"asset_id" binding:"required"`
	ScheduleType       string  `json:"schedule_type" binding:"required,oneof=daily weekly monthly quarterly yearly custom"`
	FrequencyValue     *int    `json:"frequency_value,omitempty"`
	FrequencyUnit      *string `json:"frequency_unit,omitempty"`
	NextMaintenance    string  `json:"next_maintenance" binding:"required"`
	AssignedTechnician string  `json:"assigned_technician"`
	Status             string  `json:"status" binding:"omitempty,oneof=active paused"`
	Notes              *string `json:"notes,omitempty"`
}

type UpdateScheduleStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active paused"`
}

// ============ HISTORY ============
type RecordCompletionRequest struct {
	CompletionDate string  `json:"completion_date" binding:"required"`
	CompletedBy    string  `json:"completed_by" binding:"required"`
	Status         string  `json:"status" binding:"required,oneof=completed pending"`
	Notes          *string `json:"notes,omitempty"`
}
