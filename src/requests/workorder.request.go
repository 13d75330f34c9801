package requests

// ============ WORK ORDERS ============
type CreateWorkOrderRequest struct {
	AssetID               uint    `json:"asset_id" binding:"required"`
	MaintenanceScheduleID *uint   `json:"maintenance_schedule_id,omitempty"`
	MaintenanceType       string  `json:"maintenance_type" binding:"required,oneof=preventive corrective emergency"`
	Priority              string  `json:"priority" binding:"required,oneof=low medium high critical"`
	Description           string  `json:"description" binding:"required"`
	ScheduledDate         string  `json:"scheduled_date" binding:"required"`
	Notes                 *string `json:"notes,omitempty"`
}

type UpdateWorkOrderStatusRequest struct {
	Status        string  `json:"status" binding:"required,oneof=pending in_progress completed cancelled"`
	CompletedDate *string `json:"completed_date,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}
