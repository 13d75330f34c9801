package models

import (
	"time"

	"gorm.io/gorm"
)

// ============ ASSET ============
type Asset struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	AssetTag string `gorm:"type:varchar(50);unique;not null" json:"asset_tag"`
	Name     string `gorm:"type:varchar(200);not null" json:"name"`
	Category string `gorm:"type:varchar(100)" json:"category"`
	Location string `gorm:"type:varchar(100)" json:"location"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Asset) TableName() string {
	return "assets"
}

// ============ SUPPLIER ============
type Supplier struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Code        string  `gorm:"type:varchar(50);unique;not null" json:"code"`
	Name        string  `gorm:"type:varchar(200);not null" json:"name"`
	ContactName string  `gorm:"type:varchar(100)" json:"contact_name"`
	Email       string  `gorm:"type:varchar(100)" json:"email"`
	Phone       string  `gorm:"type:varchar(50)" json:"phone"`
	Notes       *string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Supplier) TableName() string {
	return "suppliers"
}

// ============ INVENTORY ITEM ============
// InventoryItem is the stock-level collaborator purchase receiving mutates.
type InventoryItem struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Code  string `gorm:"type:varchar(50);unique;not null" json:"code"`
	Name  string `gorm:"type:varchar(200);not null" json:"name"`
	Unit  string `gorm:"type:varchar(20);not null" json:"unit"`
	Stock int    `gorm:"not null;default:0" json:"stock"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}
