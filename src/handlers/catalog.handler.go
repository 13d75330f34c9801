package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"asset-ops/src/apperrors"
	"asset-ops/src/models"
	"asset-ops/src/repositories"
	"asset-ops/src/requests"
)

// CatalogHandler serves the lookup tables the core engines reference:
// assets, suppliers and inventory items.
type CatalogHandler struct {
	Assets *repositories.AssetRepository
	Stock  *repositories.StockRepository
}

// ListAssets - List assets with optional category filter
func (h *CatalogHandler) ListAssets(c *gin.Context) {
	page, limit := pagination(c)

	assets, total, err := h.Assets.ListAssets(c.Query("category"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, assets, page, limit, total)
}

// CreateAsset - Register an asset
func (h *CatalogHandler) CreateAsset(c *gin.Context) {
	var req requests.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	asset := models.Asset{
		AssetTag: req.AssetTag,
		Name:     req.Name,
		Category: req.Category,
		Location: req.Location,
	}
	if err := h.Assets.DB.Create(&asset).Error; err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, asset)
}

// GetAsset - Load one asset
func (h *CatalogHandler) GetAsset(c *gin.Context) {
	assetID, err := uintParam(c, "id")
	if err != nil {
		respondBindError(c, err)
		return
	}

	asset, err := h.Assets.GetAsset(assetID)
	if repositories.IsNotFound(err) {
		respondError(c, apperrors.NotFound("asset %d not found", assetID))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, asset)
}

// ListSuppliers - List suppliers
func (h *CatalogHandler) ListSuppliers(c *gin.Context) {
	page, limit := pagination(c)

	suppliers, total, err := h.Assets.ListSuppliers(page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, suppliers, page, limit, total)
}

// CreateSupplier - Register a supplier
func (h *CatalogHandler) CreateSupplier(c *gin.Context) {
	var req requests.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	supplier := models.Supplier{
		Code:        req.Code,
		Name:        req.Name,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		Notes:       req.Notes,
	}
	if err := h.Assets.DB.Create(&supplier).Error; err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, supplier)
}

// GetSupplier - Load one supplier
func (h *CatalogHandler) GetSupplier(c *gin.Context) {
	supplierID, err := uintParam(c, "id")
	if err != nil {
		respondBindError(c, err)
		return
	}

	supplier, err := h.Assets.GetSupplier(supplierID)
	if repositories.IsNotFound(err) {
		respondError(c, apperrors.NotFound("supplier %d not found", supplierID))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, supplier)
}

// ListItems - List inventory items with current stock
func (h *CatalogHandler) ListItems(c *gin.Context) {
	page, limit := pagination(c)

	items, total, err := h.Stock.ListItems(page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, items, page, limit, total)
}

// CreateItem - Register an inventory item
func (h *CatalogHandler) CreateItem(c *gin.Context) {
	var req requests.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item := models.InventoryItem{
		Code:  req.Code,
		Name:  req.Name,
		Unit:  req.Unit,
		Stock: req.Stock,
	}
	if err := h.Stock.DB.Create(&item).Error; err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, item)
}

// GetItem - Load one inventory item
func (h *CatalogHandler) GetItem(c *gin.Context) {
	itemID, err := uintParam(c, "id")
	if err != nil {
		respondBindError(c, err)
		return
	}

	item, err := h.Stock.GetItem(itemID)
	if repositories.IsNotFound(err) {
		respondError(c, apperrors.NotFound("inventory item %d not found", itemID))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, item)
}

// GetItemMovements - Ledger rows behind one item's stock level
func (h *CatalogHandler) GetItemMovements(c *gin.Context) {
	itemID, err := uintParam(c, "id")
	if err != nil {
		respondBindError(c, err)
		return
	}

	page, limit := pagination(c)
	movements, total, err := h.Stock.GetMovements(itemID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, movements, page, limit, total)
}
