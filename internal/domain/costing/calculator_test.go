// internal/domain/costing/calculator_test.go
package costing_test

import (
	"testing"

	"github.com/your-org/cafe-backoffice/internal/domain/costing"
	"github.com/your-org/cafe-backoffice/internal/domain/recipe"
	"github.com/your-org/cafe-backoffice/internal/testutil"
)

func TestCalculateCost(t *testing.T) {
	f := seedCafe(t)

	calc := costing.NewCalculator(f.db, nil, testutil.TestConfig())
	cost, err := calc.CalculateCost(f.cappuccino.ID)
	if err != nil {
		t.Fatalf("CalculateCost failed: %v", err)
	}

	// 18 g x 0.02 + 120 ml x 0.01 = 1.56
	if !almostEqual(cost.RecipeCost, 1.56) {
		t.Fatalf("expected recipe cost 1.56, got %v", cost.RecipeCost)
	}
	if len(cost.Lines) != 2 {
		t.Fatalf("expected 2 cost lines, got %d", len(cost.Lines))
	}
	// (4.50 - 1.56) / 4.50
	if !almostEqual(cost.ProfitMargin, (4.5-1.56)/4.5) {
		t.Fatalf("unexpected margin %v", cost.ProfitMargin)
	}

	if _, err := calc.CalculateCost(9999); err == nil {
		t.Fatal("expected unknown menu item to fail")
	}
}

func TestCalculateCostNormalizesUnits(t *testing.T) {
	f := seedCafe(t)

	// A line in kg against a g-based item must be scaled, not taken at face
	// value.
	line := recipe.RecipeLine{MenuItemID: f.cappuccino.ID, RawItemID: f.beans.ID, Quantity: 0.005, Unit: "kg"}
	if err := f.db.Create(&line).Error; err != nil {
		t.Fatalf("failed to seed recipe line: %v", err)
	}

	calc := costing.NewCalculator(f.db, nil, testutil.TestConfig())
	cost, err := calc.CalculateCost(f.cappuccino.ID)
	if err != nil {
		t.Fatalf("CalculateCost failed: %v", err)
	}

	// 1.56 + 5 g x 0.02 = 1.66
	if !almostEqual(cost.RecipeCost, 1.66) {
		t.Fatalf("expected recipe cost 1.66, got %v", cost.RecipeCost)
	}

	var kgLine *costing.LineCost
	for i := range cost.Lines {
		if cost.Lines[i].Unit == "kg" {
			kgLine = &cost.Lines[i]
		}
	}
	if kgLine == nil {
		t.Fatal("expected the kg line in the breakdown")
	}
	if !almostEqual(kgLine.NormalizedQuantity, 5) {
		t.Fatalf("expected 5 g normalized, got %v", kgLine.NormalizedQuantity)
	}
}

func TestCalculateCostZeroSellPrice(t *testing.T) {
	f := seedCafe(t)
	if err := f.db.Model(&f.cappuccino).Update("sell_price", 0).Error; err != nil {
		t.Fatalf("failed to zero sell price: %v", err)
	}

	calc := costing.NewCalculator(f.db, nil, testutil.TestConfig())
	cost, err := calc.CalculateCost(f.cappuccino.ID)
	if err != nil {
		t.Fatalf("CalculateCost failed: %v", err)
	}
	if cost.ProfitMargin != 0 {
		t.Fatalf("expected zero margin without a sell price, got %v", cost.ProfitMargin)
	}
}

func TestCalculateOrderCOGSPreview(t *testing.T) {
	f := seedCafe(t)
	f.stock(t, f.beans.ID, 20) // covers one cappuccino, not two
	f.stock(t, f.milk.ID, 5000)

	calc := costing.NewCalculator(f.db, nil, testutil.TestConfig())
	branchID := testBranch
	preview, err := calc.CalculateOrderCOGS([]costing.OrderLine{
		{MenuItemID: f.cappuccino.ID, QuantitySold: 2},
	}, &branchID)
	if err != nil {
		t.Fatalf("CalculateOrderCOGS failed: %v", err)
	}

	// The preview always costs the full hypothetical order.
	if !almostEqual(preview.CostOfGoods, 3.12) {
		t.Fatalf("expected COGS 3.12, got %v", preview.CostOfGoods)
	}
	if len(preview.Requirements) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(preview.Requirements))
	}

	if len(preview.ProjectedShortages) != 1 {
		t.Fatalf("expected 1 projected shortage, got %+v", preview.ProjectedShortages)
	}
	sh := preview.ProjectedShortages[0]
	if sh.RawItemCode != "BEANS" || !almostEqual(sh.RequiredQuantity, 36) || !almostEqual(sh.AvailableQuantity, 20) {
		t.Fatalf("unexpected projected shortage: %+v", sh)
	}

	// Previewing never mutates stock or writes movements.
	beansQty, err := f.ledger.GetStock(testBranch, f.beans.ID)
	if err != nil {
		t.Fatalf("GetStock failed: %v", err)
	}
	if !almostEqual(beansQty, 20) {
		t.Fatalf("preview must not change stock, got %v", beansQty)
	}
	var saleCount int64
	if err := f.db.Table("stock_movements").Where("movement_type = ?", "sale").Count(&saleCount).Error; err != nil {
		t.Fatalf("failed to count movements: %v", err)
	}
	if saleCount != 0 {
		t.Fatalf("preview must not write movements, got %d", saleCount)
	}
}

func TestCalculateOrderCOGSWithoutBranch(t *testing.T) {
	f := seedCafe(t)

	calc := costing.NewCalculator(f.db, nil, testutil.TestConfig())
	preview, err := calc.CalculateOrderCOGS([]costing.OrderLine{
		{MenuItemID: f.cappuccino.ID, QuantitySold: 1},
	}, nil)
	if err != nil {
		t.Fatalf("CalculateOrderCOGS failed: %v", err)
	}

	if !almostEqual(preview.CostOfGoods, 1.56) {
		t.Fatalf("expected COGS 1.56, got %v", preview.CostOfGoods)
	}
	// No branch, no stock comparison.
	if len(preview.ProjectedShortages) != 0 {
		t.Fatalf("expected no projected shortages, got %+v", preview.ProjectedShortages)
	}
}

func TestCalculateOrderCOGSIgnoresNonPositiveLines(t *testing.T) {
	f := seedCafe(t)

	calc := costing.NewCalculator(f.db, nil, testutil.TestConfig())
	preview, err := calc.CalculateOrderCOGS([]costing.OrderLine{
		{MenuItemID: f.cappuccino.ID, QuantitySold: 0},
	}, nil)
	if err != nil {
		t.Fatalf("CalculateOrderCOGS failed: %v", err)
	}

	if preview.CostOfGoods != 0 || len(preview.Requirements) != 0 {
		t.Fatalf("expected empty preview, got %+v", preview)
	}
	if len(preview.Warnings) == 0 {
		t.Fatal("expected a warning for the ignored line")
	}
}
