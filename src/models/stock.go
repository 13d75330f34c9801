package models

import (
	"time"

	"github.com/google/uuid"
)

type MovementSource string

const (
	MovementSourcePOReceipt  MovementSource = "po_receipt"
	MovementSourceAdjustment MovementSource = "adjustment"
)

// ============ STOCK MOVEMENT ============
// StockMovement is the append-only ledger behind inventory_items.stock.
// All receipts applied by one ReceiveItems call share a RefID.
type StockMovement struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	ItemID     uint           `gorm:"not null;index:idx_item_moved" json:"item_id"`
	Delta      int            `gorm:"not null" json:"delta"`
	StockAfter int            `gorm:"not null" json:"stock_after"`
	Source     MovementSource `gorm:"type:varchar(20);not null" json:"source"`
	RefID      *uuid.UUID     `gorm:"type:uuid;index" json:"ref_id,omitempty"`

	MovedAt   time.Time `gorm:"type:timestamp;not null;index:idx_item_moved" json:"moved_at"`
	Notes     *string   `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy string    `gorm:"type:varchar(100);not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (StockMovement) TableName() string {
	return "stock_movements"
}
