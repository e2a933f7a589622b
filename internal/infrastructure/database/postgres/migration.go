// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/cafe-backoffice/internal/domain/catalog"
	"github.com/your-org/cafe-backoffice/internal/domain/order"
	"github.com/your-org/cafe-backoffice/internal/domain/recipe"
	"github.com/your-org/cafe-backoffice/internal/domain/stock"
	"github.com/your-org/cafe-backoffice/internal/domain/unit"
	"gorm.io/gorm"
)

// Migration handles database schema migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{db: db}
}

// RunAutoMigrations runs gorm auto migrations for all entities
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database migrations...")

	err := m.db.AutoMigrate(
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
		return fmt.Errorf("auto migration failed: %w", err)
	}

	log.Println("✅ Database migrations completed")
	return nil
}

// CreateIndexes creates additional indexes not covered by entity tags
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		// Movement log reads are always (branch, item) most-recent-first
		"CREATE INDEX IF NOT EXISTS idx_stock_movements_branch_item_created ON stock_movements (branch_id, raw_item_id, created_at DESC)",
		// Unresolved alerts are the hot path for alert dedup
		"CREATE INDEX IF NOT EXISTS idx_stock_alerts_unresolved ON stock_alerts (branch_id, raw_item_id) WHERE is_resolved = false",
		"CREATE INDEX IF NOT EXISTS idx_orders_branch_created ON orders (branch_id, created_at)",
	}

	for _, idx := range indexes {
		if err := m.db.Exec(idx).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// SeedInitialData seeds development data: one branch and a small menu with
// recipes and opening stock
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedBranch(); err != nil {
		return err
	}
	if err := m.seedCatalog(); err != nil {
		return err
	}
	if err := m.seedRecipes(); err != nil {
		return err
	}

	log.Println("✅ Data seeding completed")
	return nil
}

func (m *Migration) seedBranch() error {
	var count int64
	m.db.Model(&catalog.Branch{}).Count(&count)
	if count > 0 {
		return nil
	}

	branch := catalog.Branch{
		Code:     "MAIN",
		Name:     "Main Branch",
		Address:  "1 Example Street",
		IsActive: true,
	}
	if err := m.db.Create(&branch).Error; err != nil {
		return fmt.Errorf("failed to seed branch: %w", err)
	}
	return nil
}

func (m *Migration) seedCatalog() error {
	var count int64
	m.db.Model(&catalog.RawItem{}).Count(&count)
	if count > 0 {
		return nil
	}

	rawItems := []catalog.RawItem{
		{Code: "BEANS", Name: "Espresso Beans", BaseUnit: unit.UnitGram, UnitCost: 0.02, MinStock: 500, Category: "coffee", IsActive: true},
		{Code: "MILK", Name: "Whole Milk", BaseUnit: unit.UnitMilliliter, UnitCost: 0.01, MinStock: 2000, Category: "dairy", IsActive: true},
		{Code: "CUP-12", Name: "12oz Cup", BaseUnit: unit.UnitPiece, UnitCost: 0.15, MinStock: 100, Category: "packaging", IsActive: true},
	}
	if err := m.db.Create(&rawItems).Error; err != nil {
		return fmt.Errorf("failed to seed raw items: %w", err)
	}

	menuItems := []catalog.MenuItem{
		{Code: "CAP", Name: "Cappuccino", SellPrice: 4.50, Category: "coffee", IsActive: true},
		{Code: "ESP", Name: "Espresso", SellPrice: 3.00, Category: "coffee", IsActive: true},
	}
	if err := m.db.Create(&menuItems).Error; err != nil {
		return fmt.Errorf("failed to seed menu items: %w", err)
	}

	return nil
}

func (m *Migration) seedRecipes() error {
	var count int64
	m.db.Model(&recipe.RecipeLine{}).Count(&count)
	if count > 0 {
		return nil
	}

	byCode := func(code string) (uint, error) {
		var item catalog.RawItem
		if err := m.db.Where("code = ?", code).First(&item).Error; err != nil {
			return 0, fmt.Errorf("seed raw item %s not found: %w", code, err)
		}
		return item.ID, nil
	}
	menuByCode := func(code string) (uint, error) {
		var item catalog.MenuItem
		if err := m.db.Where("code = ?", code).First(&item).Error; err != nil {
			return 0, fmt.Errorf("seed menu item %s not found: %w", code, err)
		}
		return item.ID, nil
	}

	beans, err := byCode("BEANS")
	if err != nil {
		return err
	}
	milk, err := byCode("MILK")
	if err != nil {
		return err
	}
	cup, err := byCode("CUP-12")
	if err != nil {
		return err
	}
	cappuccino, err := menuByCode("CAP")
	if err != nil {
		return err
	}
	espresso, err := menuByCode("ESP")
	if err != nil {
		return err
	}

	lines := []recipe.RecipeLine{
		{MenuItemID: cappuccino, RawItemID: beans, Quantity: 18, Unit: unit.UnitGram},
		{MenuItemID: cappuccino, RawItemID: milk, Quantity: 120, Unit: unit.UnitMilliliter},
		{MenuItemID: cappuccino, RawItemID: cup, Quantity: 1, Unit: unit.UnitPiece},
		{MenuItemID: espresso, RawItemID: beans, Quantity: 18, Unit: unit.UnitGram},
	}
	if err := m.db.Create(&lines).Error; err != nil {
		return fmt.Errorf("failed to seed recipe lines: %w", err)
	}

	return nil
}

// GetTableInfo logs row counts per table, development convenience
func (m *Migration) GetTableInfo() error {
	tables := []string{"branches", "raw_items", "menu_items", "recipe_lines", "branch_stocks", "stock_movements", "stock_alerts", "orders"}

	log.Println("📊 Table info:")
	for _, table := range tables {
		var count int64
		if err := m.db.Table(table).Count(&count).Error; err != nil {
			log.Printf("  %s: error (%v)", table, err)
			continue
		}
		log.Printf("  %s: %d rows", table, count)
	}

	return nil
}

// DropAllTables drops every table, test/development use only
func (m *Migration) DropAllTables() error {
	return m.db.Migrator().DropTable(
		&order.Order{},
		&stock.StockAlert{},
		&stock.StockMovement{},
		&stock.BranchStock{},
		&recipe.RecipeLine{},
		&catalog.MenuItem{},
		&catalog.RawItem{},
		&catalog.Branch{},
	)
}
