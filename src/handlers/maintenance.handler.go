package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"asset-ops/src/models"
	"asset-ops/src/requests"
	"asset-ops/src/services"
)

type MaintenanceHandler struct {
	Service *services.MaintenanceService
}

// CreateSchedule - Create a maintenance schedule
func (h *MaintenanceHandler) CreateSchedule(c *gin.Context) {
	var req requests.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	nextMaintenance, err := parseDate(req.NextMaintenance)
	if err != nil {
		respondBindError(c, err)
		return
	}

	var unit *models.FrequencyUnit
	if req.FrequencyUnit != nil {
		u := models.FrequencyUnit(*req.FrequencyUnit)
		unit = &u
	}

	schedule, err := h.Service.CreateSchedule(services.CreateScheduleRequest{
		AssetID:            req.AssetID,
		ScheduleType:       models.ScheduleType(req.ScheduleType),
		FrequencyValue:     req.FrequencyValue,
		FrequencyUnit:      unit,
		NextMaintenance:    nextMaintenance,
		AssignedTechnician: req.AssignedTechnician,
		Status:             models.ScheduleStatus(req.Status),
		Notes:              req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, schedule)
}

// ListSchedules - List schedules with filters and display labels
func (h *MaintenanceHandler) ListSchedules(c *gin.Context) {
	page, limit := pagination(c)
	assetID := uintQuery(c, "asset_id")
	status := models.ScheduleStatus(c.Query("status"))

	schedules, total, err := h.Service.ListSchedules(assetID, status, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	now := time.Now()
	rows := make([]gin.H, 0, len(schedules))
	for i := range schedules {
		s := &schedules[i]
		rows = append(rows, gin.H{
			"schedule":        s,
			"frequency_label": s.FrequencyLabel(),
			"overdue":         s.Overdue(now),
		})
	}

	respondList(c, rows, page, limit, total)
}

// UpdateScheduleStatus - Pause or resume a schedule
func (h *MaintenanceHandler) UpdateScheduleStatus(c *gin.Context) {
	scheduleID, err := uintParam(c, "id")
	if err != nil {
		respondBindError(c, err)
		return
	}

	var req requests.UpdateScheduleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	schedule, err := h.Service.UpdateStatus(scheduleID, models.ScheduleStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, schedule)
}

// RecordCompletion - Log a completed or pending maintenance event
func (h *MaintenanceHandler) RecordCompletion(c *gin.Context) {
	scheduleID, err := uintParam(c, "id")
	if err != nil {
		respondBindError(c, err)
		return
	}

	var req requests.RecordCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	completionDate, err := parseDate(req.CompletionDate)
	if err != nil {
		respondBindError(c, err)
		return
	}

	history, schedule, err := h.Service.RecordCompletion(services.RecordCompletionRequest{
		ScheduleID:     scheduleID,
		CompletionDate: completionDate,
		CompletedBy:    req.CompletedBy,
		Status:         models.HistoryStatus(req.Status),
		Notes:          req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, gin.H{
		"history":  history,
		"schedule": schedule,
	})
}

// ListHistory - History entries for one schedule
func (h *MaintenanceHandler) ListHistory(c *gin.Context) {
	scheduleID, err := uintParam(c, "id")
	if err != nil {
		respondBindError(c, err)
		return
	}

	page, limit := pagination(c)
	entries, total, err := h.Service.ListHistory(scheduleID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, entries, page, limit, total)
}

// ListOverdue - Candidate set for work order generation
func (h *MaintenanceHandler) ListOverdue(c *gin.Context) {
	asOf := time.Now()
	if asOfStr := c.Query("as_of"); asOfStr != "" {
		parsed, err := parseDate(asOfStr)
		if err != nil {
			respondBindError(c, err)
			return
		}
		asOf = parsed
	}

	schedules, err := h.Service.ListOverdue(asOf)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"as_of":     asOf.Format(time.RFC3339),
		"schedules": schedules,
	})
}
