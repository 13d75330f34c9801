package requests

// ============ PURCHASE ORDERS ============
type OrderItemRequest struct {
	ItemID    uint    `json:"item_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	UnitPrice float64 `json:"unit_price" binding:"gte=0"`
}

type CreateOrderRequest struct {
	SupplierID       uint               `json:"supplier_id" binding:"required"`
	OrderDate        string             `json:"order_date"`
	ExpectedDelivery *string            `json:"expected_delivery,omitempty"`
	Notes            *string            `json:"notes,omitempty"`
	Items            []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type UpdateOrderItemsRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ============ RECEIVING ============
type ReceiptRequest struct {
	ItemID           uint `json:"item_id" binding:"required"`
	ReceivedQuantity int  `json:"received_quantity"`
}

type ReceiveItemsRequest struct {
	Receipts    []ReceiptRequest `json:"receipts" binding:"required,min=1,dive"`
	ReceiveDate string           `json:"receive_date"`
	Notes       *string          `json:"notes,omitempty"`
	ReceivedBy  string           `json:"received_by" binding:"required"`
}
