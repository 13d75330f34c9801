package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"asset-ops/src/config"
	"asset-ops/src/handlers"
	"asset-ops/src/logger"
	"asset-ops/src/middleware"
	"asset-ops/src/models"
	"asset-ops/src/repositories"
	"asset-ops/src/routes"
	"asset-ops/src/services"
)

func main() {
	cfg, err := config.Load("asset-ops")
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	if err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: cfg.ServiceName,
	}); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	zlog := logger.GetLogger()
	defer zlog.Sync()

	db, err := config.InitDB(&cfg.DB)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}

	db.AutoMigrate(
		&models.Asset{},
		&models.Supplier{},
		&models.InventoryItem{},
		&models.MaintenanceSchedule{},
		&models.MaintenanceHistory{},
		&models.WorkOrder{},
		&models.PurchaseOrder{},
		&models.PurchaseOrderItem{},
		&models.StockMovement{},
	)

	// Insert sample data if empty
	if err := seedSampleData(db); err != nil {
		zlog.Warn("Failed to seed sample data", zap.Error(err))
	}

	// Initialize repositories
	assetRepo := &repositories.AssetRepository{DB: db}
	stockRepo := &repositories.StockRepository{DB: db}
	maintRepo := &repositories.MaintenanceRepository{DB: db}
	workOrderRepo := &repositories.WorkOrderRepository{DB: db}
	purchaseRepo := &repositories.PurchaseRepository{DB: db}

	// Initialize services
	maintService := &services.MaintenanceService{
		DB:     db,
		Repo:   maintRepo,
		Assets: assetRepo,
	}
	workOrderService := &services.WorkOrderService{
		DB:     db,
		Repo:   workOrderRepo,
		Maint:  maintRepo,
		Assets: assetRepo,
	}
	purchaseService := &services.PurchaseService{
		DB:    db,
		Repo:  purchaseRepo,
		Stock: stockRepo,
		Catal: assetRepo,
	}

	// Initialize handlers
	maintHandler := &handlers.MaintenanceHandler{Service: maintService}
	workOrderHandler := &handlers.WorkOrderHandler{Service: workOrderService}
	purchaseHandler := &handlers.PurchaseHandler{Service: purchaseService}
	catalogHandler := &handlers.CatalogHandler{Assets: assetRepo, Stock: stockRepo}
	exportHandler := &handlers.ExportHandler{WorkOrders: workOrderRepo, Purchases: purchaseRepo}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())

	httpMetrics := middleware.NewHTTPMetrics(cfg.ServiceName)
	router.Use(httpMetrics.Middleware())
	router.GET("/metrics", gin.WrapH(middleware.GetPrometheusHandler()))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": cfg.ServiceName})
	})

	api := router.Group("/api/v1")
	routes.RegisterMaintenanceRoutes(api.Group("/maintenance-schedules"), maintHandler)
	routes.RegisterWorkOrderRoutes(api.Group("/work-orders"), workOrderHandler, exportHandler)
	routes.RegisterPurchaseRoutes(api.Group("/purchase-orders"), purchaseHandler, exportHandler)
	routes.RegisterCatalogRoutes(api, catalogHandler)

	zlog.Info("Starting server", zap.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		zlog.Fatal("Failed to start server", zap.Error(err))
	}
}

func seedSampleData(db *gorm.DB) error {
	var supplierCount int64
	db.Model(&models.Supplier{}).Count(&supplierCount)

	if supplierCount == 0 {
		suppliers := []models.Supplier{
			{Code: "SUP-001", Name: "Apex Industrial Supply", ContactName: "Dian Kusuma", Email: "sales@apexindustrial.example"},
			{Code: "SUP-002", Name: "Northline Parts Co", ContactName: "Rudi Hartono", Email: "orders@northline.example"},
		}
		for _, supplier := range suppliers {
			if err := db.FirstOrCreate(&supplier, "code = ?", supplier.Code).Error; err != nil {
				return err
			}
		}
	}

	var assetCount int64
	db.Model(&models.Asset{}).Count(&assetCount)

	if assetCount == 0 {
		assets := []models.Asset{
			{AssetTag: "AST-0001", Name: "Air Compressor Unit A", Category: "hvac", Location: "Plant 1"},
			{AssetTag: "AST-0002", Name: "Forklift 2T", Category: "vehicle", Location: "Warehouse"},
			{AssetTag: "AST-0003", Name: "Backup Generator", Category: "electrical", Location: "Plant 1"},
		}
		for _, asset := range assets {
			if err := db.FirstOrCreate(&asset, "asset_tag = ?", asset.AssetTag).Error; err != nil {
				return err
			}
		}
	}

	var itemCount int64
	db.Model(&models.InventoryItem{}).Count(&itemCount)

	if itemCount == 0 {
		items := []models.InventoryItem{
			{Code: "ITEM-001", Name: "Hydraulic Oil 20L", Unit: "can"},
			{Code: "ITEM-002", Name: "Air Filter Element", Unit: "pcs"},
			{Code: "ITEM-003", Name: "V-Belt B42", Unit: "pcs"},
		}
		for _, item := range items {
			if err := db.FirstOrCreate(&item, "code = ?", item.Code).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
