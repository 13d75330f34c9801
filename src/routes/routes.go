package routes

import (
	"asset-ops/src/handlers"

	"github.com/gin-gonic/gin"
)

func RegisterMaintenanceRoutes(r *gin.RouterGroup, handler *handlers.MaintenanceHandler) {
	// GET endpoints
	r.GET("", handler.ListSchedules)
	r.GET("/overdue", handler.ListOverdue)
	r.GET("/:id/history", handler.ListHistory)

	// POST endpoints
	r.POST("", handler.CreateSchedule)
	r.POST("/:id/history", handler.RecordCompletion)

	// PUT endpoint
	r.PUT("/:id/status", handler.UpdateScheduleStatus)
}

func RegisterWorkOrderRoutes(r *gin.RouterGroup, handler *handlers.WorkOrderHandler, export *handlers.ExportHandler) {
	r.GET("", handler.List)
	r.GET("/export", export.ExportWorkOrders)
	r.GET("/:id", handler.Get)

	r.POST("", handler.Create)

	r.PUT("/:id/status", handler.UpdateStatus)
}

func RegisterPurchaseRoutes(r *gin.RouterGroup, handler *handlers.PurchaseHandler, export *handlers.ExportHandler) {
	r.GET("", handler.List)
	r.GET("/export", export.ExportPurchaseOrders)
	r.GET("/:id", handler.Get)

	r.POST("", handler.Create)
	r.PUT("/:id/items", handler.UpdateItems)

	// Lifecycle transitions
	r.POST("/:id/submit", handler.Submit)
	r.POST("/:id/approve", handler.Approve)
	r.POST("/:id/cancel", handler.Cancel)
	r.POST("/:id/receipts", handler.ReceiveItems)
}

func RegisterCatalogRoutes(r *gin.RouterGroup, handler *handlers.CatalogHandler) {
	r.GET("/assets", handler.ListAssets)
	r.POST("/assets", handler.CreateAsset)
	r.GET("/assets/:id", handler.GetAsset)

	r.GET("/suppliers", handler.ListSuppliers)
	r.POST("/suppliers", handler.CreateSupplier)
	r.GET("/suppliers/:id", handler.GetSupplier)

	r.GET("/items", handler.ListItems)
	r.POST("/items", handler.CreateItem)
	r.GET("/items/:id", handler.GetItem)
	r.GET("/items/:id/movements", handler.GetItemMovements)
}
