// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/cafe-backoffice/internal/config"
	"github.com/your-org/cafe-backoffice/internal/interfaces/http/handlers"
	"gorm.io/gorm"
)

// SetupRoutes wires every route group under the given API group
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	SetupCatalogRoutes(rg, db, redisClient, cfg)
	SetupRecipeRoutes(rg, db, redisClient, cfg)
	SetupStockRoutes(rg, db, redisClient, cfg)
	SetupCostingRoutes(rg, db, redisClient, cfg)
	SetupReportRoutes(rg, db, redisClient, cfg)
}

// SetupCatalogRoutes sets up branch, raw-item and menu-item routes
func SetupCatalogRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	catalogHandler := handlers.NewCatalogHandler(db, redisClient, cfg)

	branches := rg.Group("/branches")
	{
		branches.POST("", catalogHandler.CreateBranch)
		branches.GET("", catalogHandler.GetBranches)
		branches.GET("/:id", catalogHandler.GetBranch)
	}

	rawItems := rg.Group("/raw-items")
	{
		rawItems.POST("", catalogHandler.CreateRawItem)
		rawItems.GET("", catalogHandler.GetRawItems)
		rawItems.GET("/code/:code", catalogHandler.GetRawItemByCode)
		rawItems.GET("/:id", catalogHandler.GetRawItem)
		rawItems.PUT("/:id", catalogHandler.UpdateRawItem)
		rawItems.DELETE("/:id", catalogHandler.DeleteRawItem)
	}

	menuItems := rg.Group("/menu-items")
	{
		menuItems.POST("", catalogHandler.CreateMenuItem)
		menuItems.GET("", catalogHandler.GetMenuItems)
		menuItems.GET("/:id", catalogHandler.GetMenuItem)
		menuItems.PUT("/:id", catalogHandler.UpdateMenuItem)
		menuItems.DELETE("/:id", catalogHandler.DeleteMenuItem)
	}
}

// SetupRecipeRoutes sets up recipe line routes
func SetupRecipeRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	recipeHandler := handlers.NewRecipeHandler(db, redisClient, cfg)

	recipes := rg.Group("/recipes")
	{
		recipes.GET("", recipeHandler.ListAllLines)
		recipes.POST("/lines", recipeHandler.AddLine)
		recipes.DELETE("/lines/:id", recipeHandler.RemoveLine)
		recipes.GET("/:menuItemId", recipeHandler.ListLines)
		recipes.POST("/:menuItemId/template", recipeHandler.ApplyTemplate)
	}
}

// SetupStockRoutes sets up branch stock, movement and alert routes
func SetupStockRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	stockHandler := handlers.NewStockHandler(db, cfg)

	stock := rg.Group("/stock")
	{
		stock.GET("/low", stockHandler.GetLowStock)
		stock.POST("/alerts/:id/resolve", stockHandler.ResolveAlert)
		stock.GET("/:branchId/movements", stockHandler.GetMovements)
		stock.GET("/:branchId/alerts", stockHandler.GetAlerts)
		stock.GET("/:branchId/:rawItemId", stockHandler.GetStock)
		stock.PUT("/:branchId/:rawItemId", stockHandler.SetStock)
	}
}

// SetupCostingRoutes sets up cost calculation and order deduction routes
func SetupCostingRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	costingHandler := handlers.NewCostingHandler(db, redisClient, cfg)

	costing := rg.Group("/costing")
	{
		costing.POST("/deduct", costingHandler.DeductOrder)
		costing.POST("/preview", costingHandler.PreviewOrderCOGS)
		costing.GET("/items/:menuItemId", costingHandler.GetItemCost)
	}
}

// SetupReportRoutes sets up COGS and margin reporting routes
func SetupReportRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	reportsHandler := handlers.NewReportsHandler(db, redisClient, cfg)

	reports := rg.Group("/reports")
	{
		reports.GET("/cogs", reportsHandler.GetCOGSSummary)
		reports.GET("/margins", reportsHandler.GetMarginTable)
		reports.GET("/margins/pdf", reportsHandler.DownloadMarginReport)
		reports.GET("/low-stock", reportsHandler.GetLowStockReport)
	}
}
