// internal/domain/recipe/service_test.go
package recipe_test

import (
	"errors"
	"testing"

	"github.com/your-org/cafe-backoffice/internal/domain/catalog"
	"github.com/your-org/cafe-backoffice/internal/domain/recipe"
	"github.com/your-org/cafe-backoffice/internal/domain/unit"
	"github.com/your-org/cafe-backoffice/internal/testutil"
	"gorm.io/gorm"
)

func seedCatalog(t *testing.T, db *gorm.DB) (menuItemID uint, beansID uint, milkID uint) {
	t.Helper()

	catalogSvc := catalog.NewService(db, nil, testutil.TestConfig())

	menuItem, err := catalogSvc.CreateMenuItem(&catalog.CreateMenuItemRequest{Code: "CAP", Name: "Cappuccino", SellPrice: 4.5})
	if err != nil {
		t.Fatalf("failed to seed menu item: %v", err)
	}
	beans, err := catalogSvc.CreateRawItem(&catalog.CreateRawItemRequest{Code: "BEANS", Name: "Coffee Beans", BaseUnit: "g", UnitCost: 0.02})
	if err != nil {
		t.Fatalf("failed to seed beans: %v", err)
	}
	milk, err := catalogSvc.CreateRawItem(&catalog.CreateRawItemRequest{Code: "MILK", Name: "Whole Milk", BaseUnit: "ml", UnitCost: 0.01})
	if err != nil {
		t.Fatalf("failed to seed milk: %v", err)
	}

	return menuItem.ID, beans.ID, milk.ID
}

func TestAddLine(t *testing.T) {
	db := testutil.OpenDB(t)
	menuItemID, beansID, _ := seedCatalog(t, db)
	svc := recipe.NewService(db, nil, testutil.TestConfig())

	line, err := svc.AddLine(&recipe.AddLineRequest{
		MenuItemID: menuItemID,
		RawItemID:  beansID,
		Quantity:   18,
		Unit:       "g",
	})
	if err != nil {
		t.Fatalf("AddLine failed: %v", err)
	}
	if line.Unit != unit.UnitGram {
		t.Fatalf("expected unit g, got %s", line.Unit)
	}

	// Same dimension, different unit is acceptable.
	if _, err := svc.AddLine(&recipe.AddLineRequest{
		MenuItemID: menuItemID,
		RawItemID:  beansID,
		Quantity:   0.018,
		Unit:       "kg",
	}); err != nil {
		t.Fatalf("AddLine with kg against g base failed: %v", err)
	}

	if _, err := svc.AddLine(&recipe.AddLineRequest{
		MenuItemID: menuItemID,
		RawItemID:  beansID,
		Quantity:   1,
		Unit:       "ml",
	}); !errors.Is(err, recipe.ErrUnitMismatch) {
		t.Fatalf("expected ErrUnitMismatch, got %v", err)
	}

	if _, err := svc.AddLine(&recipe.AddLineRequest{
		MenuItemID: menuItemID,
		RawItemID:  beansID,
		Quantity:   0,
		Unit:       "g",
	}); err == nil {
		t.Fatal("expected zero quantity to be rejected")
	}

	if _, err := svc.AddLine(&recipe.AddLineRequest{
		MenuItemID: 9999,
		RawItemID:  beansID,
		Quantity:   1,
		Unit:       "g",
	}); err == nil {
		t.Fatal("expected unknown menu item to be rejected")
	}
}

func TestRemoveLine(t *testing.T) {
	db := testutil.OpenDB(t)
	menuItemID, beansID, _ := seedCatalog(t, db)
	svc := recipe.NewService(db, nil, testutil.TestConfig())

	line, err := svc.AddLine(&recipe.AddLineRequest{
		MenuItemID: menuItemID,
		RawItemID:  beansID,
		Quantity:   18,
		Unit:       "g",
	})
	if err != nil {
		t.Fatalf("AddLine failed: %v", err)
	}

	if err := svc.RemoveLine(line.ID); err != nil {
		t.Fatalf("RemoveLine failed: %v", err)
	}

	lines, err := svc.ListLines(menuItemID)
	if err != nil {
		t.Fatalf("ListLines failed: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected no lines after removal, got %d", len(lines))
	}

	if err := svc.RemoveLine(line.ID); err == nil {
		t.Fatal("expected removing a removed line to fail")
	}
}

func TestApplyTemplate(t *testing.T) {
	db := testutil.OpenDB(t)
	menuItemID, _, _ := seedCatalog(t, db)
	svc := recipe.NewService(db, nil, testutil.TestConfig())

	result, err := svc.ApplyTemplate(menuItemID, []recipe.TemplateLine{
		{RawItemCode: "BEANS", Quantity: 18, Unit: "g"},
		{RawItemCode: "MILK", Quantity: 120, Unit: "ml"},
		{RawItemCode: "NO-SUCH-ITEM", Quantity: 1, Unit: "g"},
		{RawItemCode: "BEANS", Quantity: 5, Unit: "ml"}, // wrong dimension
	})
	if err != nil {
		t.Fatalf("ApplyTemplate failed: %v", err)
	}

	if len(result.Applied) != 2 {
		t.Fatalf("expected 2 applied lines, got %d", len(result.Applied))
	}
	if len(result.Skipped) != 2 {
		t.Fatalf("expected 2 skipped lines, got %d", len(result.Skipped))
	}
	if result.Skipped[0].RawItemCode != "NO-SUCH-ITEM" || result.Skipped[0].Reason != "raw item not found" {
		t.Fatalf("unexpected first skip: %+v", result.Skipped[0])
	}
	if result.Skipped[1].RawItemCode != "BEANS" {
		t.Fatalf("unexpected second skip: %+v", result.Skipped[1])
	}

	// Applied lines committed despite later skips.
	lines, err := svc.ListLines(menuItemID)
	if err != nil {
		t.Fatalf("ListLines failed: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 persisted lines, got %d", len(lines))
	}
}

func TestApplyTemplateUnknownMenuItem(t *testing.T) {
	db := testutil.OpenDB(t)
	seedCatalog(t, db)
	svc := recipe.NewService(db, nil, testutil.TestConfig())

	if _, err := svc.ApplyTemplate(9999, []recipe.TemplateLine{
		{RawItemCode: "BEANS", Quantity: 18, Unit: "g"},
	}); err == nil {
		t.Fatal("expected unknown menu item to fail")
	}
}
