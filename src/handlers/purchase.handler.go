package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"asset-ops/src/models"
	"asset-ops/src/requests"
	"asset-ops/src/services"
)

type PurchaseHandler struct {
	Service *services.PurchaseService
}

func toItemInputs(items []requests.OrderItemRequest) []services.OrderItemInput {
	inputs := make([]services.OrderItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, services.OrderItemInput{
			ItemID:    item.ItemID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return inputs
}

// Create - Create a draft purchase order
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req requests.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	serviceReq := services.CreateOrderRequest{
		SupplierID: req.SupplierID,
		Notes:      req.Notes,
		Items:      toItemInputs(req.Items),
	}

	if req.OrderDate != "" {
		orderDate, err := parseDate(req.OrderDate)
		if err != nil {
			respondBindError(c, err)
			return
		}
		serviceReq.OrderDate = orderDate
	}
	if req.ExpectedDelivery != nil {
		expected, err := parseDate(*req.ExpectedDelivery)
		if err != nil {
			respondBindError(c, err)
			return
		}
		serviceReq.ExpectedDelivery = &expected
	}

	order, err := h.Service.CreateOrder(serviceReq)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, order)
}

// Get - Load one purchase order with items
func (h *PurchaseHandler) Get(c *gin.Context) {
	poID, err := uintParam(c, "id")
	if err != nil {
		respondBindError(c, err)
		return
	}

	order, err := h.Service.Get(poID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, order)
}

// List - List purchase orders with filters
func (h *PurchaseHandler) List(c *gin.Context) {
	page, limit := pagination(c)

	orders, total, err := h.Service.List(
		uintQuery(c, "supplier_id"),
		models.PurchaseOrderStatus(c.Query("status")),
		page, limit,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, orders, page, limit, total)
}

// UpdateItems - Replace the line set on a draft order
func (h *PurchaseHandler) UpdateItems(c *gin.Context) {
	poID, err := uintParam(c, "id")
	if err != nil {
		respondBindError(c, err)
		return
	}

	var req requests.UpdateOrderItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := h.Service.UpdateItems(poID, toItemInputs(req.Items))
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, order)
}

// Submit - draft → pending
func (h *PurchaseHandler) Submit(c *gin.Context) {
	h.transition(c, h.Service.Submit)
}

// Approve - pending → approved
func (h *PurchaseHandler) Approve(c *gin.Context) {
	h.transition(c, h.Service.Approve)
}

// Cancel - terminal from any non-received state
func (h *PurchaseHandler) Cancel(c *gin.Context) {
	h.transition(c, h.Service.Cancel)
}

func (h *PurchaseHandler) transition(c *gin.Context, apply func(uint) (*models.PurchaseOrder, error)) {
	poID, err := uintParam(c, "id")
	if err != nil {
		respondBindError(c, err)
		return
	}

	order, err := apply(poID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, order)
}

// ReceiveItems - Apply a batch of receipts
func (h *PurchaseHandler) ReceiveItems(c *gin.Context) {
	poID, err := uintParam(c, "id")
	if err != nil {
		respondBindError(c, err)
		return
	}

	var req requests.ReceiveItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	serviceReq := services.ReceiveItemsRequest{
		PurchaseOrderID: poID,
		Notes:           req.Notes,
		ReceivedBy:      req.ReceivedBy,
	}
	for _, receipt := range req.Receipts {
		serviceReq.Receipts = append(serviceReq.Receipts, services.ReceiptInput{
			ItemID:           receipt.ItemID,
			ReceivedQuantity: receipt.ReceivedQuantity,
		})
	}
	if req.ReceiveDate != "" {
		receiveDate, err := parseDate(req.ReceiveDate)
		if err != nil {
			respondBindError(c, err)
			return
		}
		serviceReq.ReceiveDate = receiveDate
	}

	order, err := h.Service.ReceiveItems(serviceReq)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, order)
}
