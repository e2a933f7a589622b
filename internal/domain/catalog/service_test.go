// internal/domain/catalog/service_test.go
package catalog_test

import (
	"strings"
	"testing"

	"github.com/your-org/cafe-backoffice/internal/domain/catalog"
	"github.com/your-org/cafe-backoffice/internal/domain/recipe"
	"github.com/your-org/cafe-backoffice/internal/domain/stock"
	"github.com/your-org/cafe-backoffice/internal/domain/unit"
	"github.com/your-org/cafe-backoffice/internal/testutil"
)

func TestCreateBranch(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := catalog.NewService(db, nil, testutil.TestConfig())

	branch, err := svc.CreateBranch(&catalog.CreateBranchRequest{Code: "MAIN", Name: "Main Street"})
	if err != nil {
		t.Fatalf("CreateBranch failed: %v", err)
	}
	if branch.ID == 0 {
		t.Fatal("expected branch ID to be assigned")
	}
	if !branch.IsActive {
		t.Fatal("expected new branch to be active")
	}

	if _, err := svc.CreateBranch(&catalog.CreateBranchRequest{Code: "MAIN", Name: "Duplicate"}); err == nil {
		t.Fatal("expected duplicate branch code to be rejected")
	}
}

func TestCreateRawItem(t *testing.T) {
	db := testutil.OpenDB(t)
	cfg := testutil.TestConfig()
	cfg.Inventory.DefaultMinStock = 100
	svc := catalog.NewService(db, nil, cfg)

	item, err := svc.CreateRawItem(&catalog.CreateRawItemRequest{
		Code:     "BEANS",
		Name:     "Coffee Beans",
		BaseUnit: "g",
		UnitCost: 0.02,
		MinStock: 500,
	})
	if err != nil {
		t.Fatalf("CreateRawItem failed: %v", err)
	}
	if item.BaseUnit != unit.UnitGram {
		t.Fatalf("expected base unit g, got %s", item.BaseUnit)
	}
	if item.MinStock != 500 {
		t.Fatalf("expected min stock 500, got %v", item.MinStock)
	}

	// Min stock falls back to the configured default when omitted.
	milk, err := svc.CreateRawItem(&catalog.CreateRawItemRequest{
		Code:     "MILK",
		Name:     "Whole Milk",
		BaseUnit: "ml",
		UnitCost: 0.01,
	})
	if err != nil {
		t.Fatalf("CreateRawItem failed: %v", err)
	}
	if milk.MinStock != 100 {
		t.Fatalf("expected default min stock 100, got %v", milk.MinStock)
	}

	if _, err := svc.CreateRawItem(&catalog.CreateRawItemRequest{
		Code:     "ODD",
		Name:     "Odd Item",
		BaseUnit: "barrel",
	}); err == nil {
		t.Fatal("expected unknown base unit to be rejected")
	}

	if _, err := svc.CreateRawItem(&catalog.CreateRawItemRequest{
		Code:     "NEG",
		Name:     "Negative",
		BaseUnit: "g",
		UnitCost: -1,
	}); err == nil {
		t.Fatal("expected negative unit cost to be rejected")
	}

	if _, err := svc.CreateRawItem(&catalog.CreateRawItemRequest{
		Code:     "BEANS",
		Name:     "Duplicate",
		BaseUnit: "g",
	}); err == nil {
		t.Fatal("expected duplicate raw item code to be rejected")
	}
}

func TestUpdateRawItemBaseUnitGuard(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := catalog.NewService(db, nil, testutil.TestConfig())

	item, err := svc.CreateRawItem(&catalog.CreateRawItemRequest{
		Code:     "BEANS",
		Name:     "Coffee Beans",
		BaseUnit: "g",
		UnitCost: 0.02,
	})
	if err != nil {
		t.Fatalf("CreateRawItem failed: %v", err)
	}

	// Unreferenced item: base unit may change freely.
	newUnit := "kg"
	updated, err := svc.UpdateRawItem(item.ID, &catalog.UpdateRawItemRequest{BaseUnit: &newUnit})
	if err != nil {
		t.Fatalf("UpdateRawItem failed: %v", err)
	}
	if updated.BaseUnit != unit.UnitKilogram {
		t.Fatalf("expected base unit kg, got %s", updated.BaseUnit)
	}

	menuItem, err := svc.CreateMenuItem(&catalog.CreateMenuItemRequest{Code: "CAP", Name: "Cappuccino", SellPrice: 4.5})
	if err != nil {
		t.Fatalf("CreateMenuItem failed: %v", err)
	}
	line := recipe.RecipeLine{MenuItemID: menuItem.ID, RawItemID: item.ID, Quantity: 0.018, Unit: unit.UnitKilogram}
	if err := db.Create(&line).Error; err != nil {
		t.Fatalf("failed to seed recipe line: %v", err)
	}

	// Referenced item: changing the base unit would reinterpret stored
	// quantities and must be rejected.
	back := "g"
	if _, err := svc.UpdateRawItem(item.ID, &catalog.UpdateRawItemRequest{BaseUnit: &back}); err == nil {
		t.Fatal("expected base unit change of referenced item to be rejected")
	} else if !strings.Contains(err.Error(), "cannot change base unit") {
		t.Fatalf("unexpected error: %v", err)
	}

	// Other fields still update while referenced.
	cost := 25.0
	updated, err = svc.UpdateRawItem(item.ID, &catalog.UpdateRawItemRequest{UnitCost: &cost})
	if err != nil {
		t.Fatalf("UpdateRawItem failed: %v", err)
	}
	if updated.UnitCost != 25.0 {
		t.Fatalf("expected unit cost 25, got %v", updated.UnitCost)
	}
}

func TestDeleteRawItemGuard(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := catalog.NewService(db, nil, testutil.TestConfig())

	item, err := svc.CreateRawItem(&catalog.CreateRawItemRequest{
		Code:     "CUP-12",
		Name:     "12oz Cup",
		BaseUnit: "piece",
		UnitCost: 0.15,
	})
	if err != nil {
		t.Fatalf("CreateRawItem failed: %v", err)
	}

	row := stock.BranchStock{BranchID: 1, RawItemID: item.ID, Quantity: 40}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("failed to seed branch stock: %v", err)
	}

	if err := svc.DeleteRawItem(item.ID); err == nil {
		t.Fatal("expected delete of stocked raw item to be rejected")
	}

	// Draining the stock releases the guard.
	if err := db.Model(&stock.BranchStock{}).Where("id = ?", row.ID).Update("quantity", 0).Error; err != nil {
		t.Fatalf("failed to drain stock: %v", err)
	}
	if err := svc.DeleteRawItem(item.ID); err != nil {
		t.Fatalf("DeleteRawItem failed: %v", err)
	}

	if _, err := svc.GetRawItem(item.ID); err == nil {
		t.Fatal("expected deleted raw item to be gone")
	}
}

func TestMenuItemLifecycle(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := catalog.NewService(db, nil, testutil.TestConfig())

	item, err := svc.CreateMenuItem(&catalog.CreateMenuItemRequest{Code: "ESP", Name: "Espresso", SellPrice: 3.0})
	if err != nil {
		t.Fatalf("CreateMenuItem failed: %v", err)
	}

	if _, err := svc.CreateMenuItem(&catalog.CreateMenuItemRequest{Code: "ESP", Name: "Duplicate"}); err == nil {
		t.Fatal("expected duplicate menu item code to be rejected")
	}

	price := 3.5
	updated, err := svc.UpdateMenuItem(item.ID, &catalog.UpdateMenuItemRequest{SellPrice: &price})
	if err != nil {
		t.Fatalf("UpdateMenuItem failed: %v", err)
	}
	if updated.SellPrice != 3.5 {
		t.Fatalf("expected sell price 3.5, got %v", updated.SellPrice)
	}

	negative := -1.0
	if _, err := svc.UpdateMenuItem(item.ID, &catalog.UpdateMenuItemRequest{SellPrice: &negative}); err == nil {
		t.Fatal("expected negative sell price to be rejected")
	}

	if err := svc.DeleteMenuItem(item.ID); err != nil {
		t.Fatalf("DeleteMenuItem failed: %v", err)
	}
	if _, err := svc.GetMenuItem(item.ID); err == nil {
		t.Fatal("expected deleted menu item to be gone")
	}
}
