package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"asset-ops/src/models"
	"asset-ops/src/requests"
	"asset-ops/src/services"
)

type WorkOrderHandler struct {
	Service *services.WorkOrderService
}

// Create - Create a work order with a generated number
func (h *WorkOrderHandler) Create(c *gin.Context) {
	var req requests.CreateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	scheduledDate, err := parseDate(req.ScheduledDate)
	if err != nil {
		respondBindError(c, err)
		return
	}

	order, err := h.Service.Create(services.CreateWorkOrderRequest{
		AssetID:               req.AssetID,
		MaintenanceScheduleID: req.MaintenanceScheduleID,
		MaintenanceType:       models.MaintenanceType(req.MaintenanceType),
		Priority:              models.WorkOrderPriority(req.Priority),
		Description:           req.Description,
		ScheduledDate:         scheduledDate,
		Notes:                 req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, order)
}

// Get - Load one work order
func (h *WorkOrderHandler) Get(c *gin.Context) {
	workOrderID, err := uintParam(c, "id")
	if err != nil {
		respondBindError(c, err)
		return
	}

	order, err := h.Service.Get(workOrderID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, order)
}

// List - List work orders with filters
func (h *WorkOrderHandler) List(c *gin.Context) {
	page, limit := pagination(c)

	orders, total, err := h.Service.List(
		uintQuery(c, "asset_id"),
		models.WorkOrderStatus(c.Query("status")),
		models.WorkOrderPriority(c.Query("priority")),
		page, limit,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, orders, page, limit, total)
}

// UpdateStatus - Apply a lifecycle transition
func (h *WorkOrderHandler) UpdateStatus(c *gin.Context) {
	workOrderID, err := uintParam(c, "id")
	if err != nil {
		respondBindError(c, err)
		return
	}

	var req requests.UpdateWorkOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var completedDate *time.Time
	if req.CompletedDate != nil {
		parsed, err := parseDate(*req.CompletedDate)
		if err != nil {
			respondBindError(c, err)
			return
		}
		completedDate = &parsed
	}

	order, err := h.Service.UpdateStatus(services.UpdateWorkOrderStatusRequest{
		WorkOrderID:   workOrderID,
		Status:        models.WorkOrderStatus(req.Status),
		CompletedDate: completedDate,
		Notes:         req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, order)
}
