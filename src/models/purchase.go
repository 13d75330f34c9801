package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

// ============ ENUMS & TYPES ============
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft     PurchaseOrderStatus = "draft"
	PurchaseOrderStatusPending   PurchaseOrderStatus = "pending"
	PurchaseOrderStatusApproved  PurchaseOrderStatus = "approved"
	PurchaseOrderStatusReceived  PurchaseOrderStatus = "received"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "cancelled"
)

// CanTransitionTo encodes the purchase order lifecycle. Transitions are
// monotonic except cancellation, which is terminal from any non-received
// state. received and cancelled accept nothing.
func (s PurchaseOrderStatus) CanTransitionTo(next PurchaseOrderStatus) bool {
	switch s {
	case PurchaseOrderStatusDraft:
		return next == PurchaseOrderStatusPending || next == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusPending:
		return next == PurchaseOrderStatusApproved || next == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusApproved:
		return next == PurchaseOrderStatusReceived || next == PurchaseOrderStatusCancelled
	default:
		return false
	}
}

// ============ PURCHASE ORDER ============
type PurchaseOrder struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	PONumber string `gorm:"type:varchar(30);uniqueIndex;not null" json:"po_number"`

	SupplierID       uint       `gorm:"not null;index" json:"supplier_id"`
	OrderDate        time.Time  `gorm:"type:date;not null" json:"order_date"`
	ExpectedDelivery *time.Time `gorm:"type:date" json:"expected_delivery,omitempty"`
	Notes            *string    `gorm:"type:text" json:"notes,omitempty"`

	Status PurchaseOrderStatus `gorm:"type:varchar(10);not null;default:'draft'" json:"status"`

	// Derived from the line items; recomputed on every item change,
	// stored redundantly for display.
	TotalAmount float64 `gorm:"type:decimal(12,2);not null;default:0" json:"total_amount"`

	Items []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID" json:"items,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// RoundMoney rounds an amount to cents, matching the decimal(12,2)
// columns the amounts are stored in.
func RoundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// CalculateTotalAmount recomputes the order total from its line items,
// rounded to cents.
func (po *PurchaseOrder) CalculateTotalAmount() float64 {
	total := 0.0
	for _, item := range po.Items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	return RoundMoney(total)
}

// FullyReceived reports whether every line item has reached its ordered
// quantity. False for an order without items.
func (po *PurchaseOrder) FullyReceived() bool {
	if len(po.Items) == 0 {
		return false
	}
	for _, item := range po.Items {
		if item.QuantityReceived < item.Quantity {
			return false
		}
	}
	return true
}

// ============ PURCHASE ORDER ITEM ============
type PurchaseOrderItem struct {
	ID              uint `gorm:"primaryKey;autoIncrement" json:"id"`
	PurchaseOrderID uint `gorm:"not null;index" json:"purchase_order_id"`
	ItemID          uint `gorm:"not null;index" json:"item_id"`

	Quantity         int     `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice        float64 `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	LineTotal        float64 `gorm:"type:decimal(12,2);not null" json:"line_total"`
	QuantityReceived int     `gorm:"not null;default:0" json:"quantity_received"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}
