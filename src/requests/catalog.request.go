package requests

// ============ ASSETS ============
type CreateAssetRequest struct {
	AssetTag string `json:"asset_tag" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
	Location string `json:"location"`
}

// ============ SUPPLIERS ============
type CreateSupplierRequest struct {
	Code        string  `json:"code" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	ContactName string  `json:"contact_name"`
	Email       string  `json:"email" binding:"omitempty,email"`
	Phone       string  `json:"phone"`
	Notes       *string `json:"notes,omitempty"`
}

// ============ INVENTORY ITEMS ============
type CreateItemRequest struct {
	Code  string `json:"code" binding:"required"`
	Name  string `json:"name" binding:"required"`
	Unit  string `json:"unit" binding:"required"`
	Stock int    `json:"stock" binding:"gte=0"`
}
