// internal/testutil/db.go
package testutil

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/your-org/cafe-backoffice/internal/config"
	"github.com/your-org/cafe-backoffice/internal/domain/catalog"
	"github.com/your-org/cafe-backoffice/internal/domain/order"
	"github.com/your-org/cafe-backoffice/internal/domain/recipe"
	"github.com/your-org/cafe-backoffice/internal/domain/stock"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB opens a fresh in-memory database with the full schema migrated
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&catalog.Branch{},
		&catalog.RawItem{},
		&catalog.MenuItem{},
		&recipe.RecipeLine{},
		&stock.BranchStock{},
		&stock.StockMovement{},
		&stock.StockAlert{},
		&order.Order{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// TestConfig returns a config with inventory defaults suitable for tests
func TestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "cafe-backoffice",
			Version:     "test",
			Environment: "test",
			CompanyName: "Test Cafe",
		},
		Inventory: config.InventoryConfig{
			DefaultMinStock: 0,
			CostPreviewTTL:  5 * time.Minute,
			MovementLimit:   50,
		},
	}
}
