// internal/domain/reporting/service_test.go
package reporting_test

import (
	"math"
	"testing"
	"time"

	"github.com/your-org/cafe-backoffice/internal/domain/catalog"
	"github.com/your-org/cafe-backoffice/internal/domain/order"
	"github.com/your-org/cafe-backoffice/internal/domain/recipe"
	"github.com/your-org/cafe-backoffice/internal/domain/reporting"
	"github.com/your-org/cafe-backoffice/internal/testutil"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCOGSSummary(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := reporting.NewService(db, nil, testutil.TestConfig())

	orders := []order.Order{
		{OrderNumber: "ORD-1", BranchID: 1, CostOfGoods: 1.56},
		{OrderNumber: "ORD-2", BranchID: 1, CostOfGoods: 3.12},
		{OrderNumber: "ORD-3", BranchID: 2, CostOfGoods: 2.00},
	}
	if err := db.Create(&orders).Error; err != nil {
		t.Fatalf("failed to seed orders: %v", err)
	}

	from := time.Now().AddDate(0, 0, -1)
	to := time.Now().AddDate(0, 0, 1)

	summary, err := svc.COGSSummary(nil, from, to)
	if err != nil {
		t.Fatalf("COGSSummary failed: %v", err)
	}
	if summary.OrderCount != 3 {
		t.Fatalf("expected 3 orders, got %d", summary.OrderCount)
	}
	if !almostEqual(summary.TotalCOGS, 6.68) {
		t.Fatalf("expected total 6.68, got %v", summary.TotalCOGS)
	}
	if !almostEqual(summary.AvgCOGSPerOrder, 6.68/3) {
		t.Fatalf("unexpected average %v", summary.AvgCOGSPerOrder)
	}
	if len(summary.DailyCOGS) != 1 {
		t.Fatalf("expected 1 daily bucket, got %d", len(summary.DailyCOGS))
	}

	branch := uint(1)
	summary, err = svc.COGSSummary(&branch, from, to)
	if err != nil {
		t.Fatalf("COGSSummary failed: %v", err)
	}
	if summary.OrderCount != 2 || !almostEqual(summary.TotalCOGS, 4.68) {
		t.Fatalf("unexpected branch summary: %+v", summary)
	}

	// Empty range reports zeroes, not an error.
	summary, err = svc.COGSSummary(nil, from.AddDate(-1, 0, 0), from)
	if err != nil {
		t.Fatalf("COGSSummary failed: %v", err)
	}
	if summary.OrderCount != 0 || summary.TotalCOGS != 0 || summary.AvgCOGSPerOrder != 0 {
		t.Fatalf("expected empty summary, got %+v", summary)
	}
}

func TestMarginTable(t *testing.T) {
	db := testutil.OpenDB(t)
	svc := reporting.NewService(db, nil, testutil.TestConfig())

	beans := catalog.RawItem{Code: "BEANS", Name: "Coffee Beans", BaseUnit: "g", UnitCost: 0.02, IsActive: true}
	if err := db.Create(&beans).Error; err != nil {
		t.Fatalf("failed to seed raw item: %v", err)
	}
	espresso := catalog.MenuItem{Code: "ESP", Name: "Espresso", SellPrice: 3.0, IsActive: true}
	retired := catalog.MenuItem{Code: "OLD", Name: "Retired Drink", SellPrice: 5.0, IsActive: false}
	if err := db.Create(&espresso).Error; err != nil {
		t.Fatalf("failed to seed menu item: %v", err)
	}
	if err := db.Create(&retired).Error; err != nil {
		t.Fatalf("failed to seed menu item: %v", err)
	}
	line := recipe.RecipeLine{MenuItemID: espresso.ID, RawItemID: beans.ID, Quantity: 18, Unit: "g"}
	if err := db.Create(&line).Error; err != nil {
		t.Fatalf("failed to seed recipe line: %v", err)
	}

	rows, err := svc.MarginTable()
	if err != nil {
		t.Fatalf("MarginTable failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row for the active item, got %d", len(rows))
	}
	row := rows[0]
	if row.Code != "ESP" || !almostEqual(row.RecipeCost, 0.36) {
		t.Fatalf("unexpected row: %+v", row)
	}
	if !almostEqual(row.ProfitMargin, (3.0-0.36)/3.0) {
		t.Fatalf("unexpected margin %v", row.ProfitMargin)
	}
}
