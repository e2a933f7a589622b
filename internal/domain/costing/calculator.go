// internal/domain/costing/calculator.go
package costing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/cafe-backoffice/internal/config"
	"github.com/your-org/cafe-backoffice/internal/domain/catalog"
	"github.com/your-org/cafe-backoffice/internal/domain/recipe"
	"github.com/your-org/cafe-backoffice/internal/domain/stock"
	"github.com/your-org/cafe-backoffice/internal/domain/unit"
	"gorm.io/gorm"
)

// LineCost is the costed form of one recipe line
type LineCost struct {
	RawItemID          uint      `json:"raw_item_id"`
	RawItemCode        string    `json:"raw_item_code"`
	Quantity           float64   `json:"quantity"`
	Unit               unit.Unit `json:"unit"`
	NormalizedQuantity float64   `json:"normalized_quantity"`
	BaseUnit           unit.Unit `json:"base_unit"`
	UnitCost           float64   `json:"unit_cost"`
	Cost               float64   `json:"cost"`
}

// ItemCost is the cost and margin preview of one menu item
type ItemCost struct {
	MenuItemID   uint       `json:"menu_item_id"`
	Code         string     `json:"code"`
	Name         string     `json:"name"`
	SellPrice    float64    `json:"sell_price"`
	RecipeCost   float64    `json:"recipe_cost"`
	ProfitMargin float64    `json:"profit_margin"`
	Lines        []LineCost `json:"lines"`
}

// RequirementPreview is one raw-item requirement of a hypothetical order
type RequirementPreview struct {
	RawItemID        uint      `json:"raw_item_id"`
	RawItemCode      string    `json:"raw_item_code"`
	RequiredQuantity float64   `json:"required_quantity"`
	BaseUnit         unit.Unit `json:"base_unit"`
	UnitCost         float64   `json:"unit_cost"`
	Cost             float64   `json:"cost"`
}

// ProjectedShortage is a requirement current stock would not cover
type ProjectedShortage struct {
	RawItemID         uint      `json:"raw_item_id"`
	RawItemCode       string    `json:"raw_item_code"`
	RequiredQuantity  float64   `json:"required_quantity"`
	AvailableQuantity float64   `json:"available_quantity"`
	BaseUnit          unit.Unit `json:"base_unit"`
}

// OrderCOGSPreview is the non-mutating costing of a hypothetical order, used
// for pre-checkout preview. Stock reads are not serialized against live
// deductions: a preview may see stale quantities.
type OrderCOGSPreview struct {
	CostOfGoods        float64              `json:"cost_of_goods"`
	Requirements       []RequirementPreview `json:"requirements"`
	ProjectedShortages []ProjectedShortage  `json:"projected_shortages"`
	Warnings           []string             `json:"warnings"`
}

// Calculator produces non-mutating cost and margin previews
type Calculator struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
	ledger      *stock.Ledger
}

// NewCalculator creates a new COGS calculator
func NewCalculator(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Calculator {
	return &Calculator{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
		ledger:      stock.NewLedger(db, cfg),
	}
}

// CalculateCost computes the recipe cost and profit margin of a menu item.
// Results are cached; recipe and raw-item writes invalidate the cache.
func (c *Calculator) CalculateCost(menuItemID uint) (*ItemCost, error) {
	cacheKey := fmt.Sprintf("cogs:item:%d", menuItemID)
	if cached := c.cacheGet(cacheKey); cached != nil {
		return cached, nil
	}

	var menuItem catalog.MenuItem
	if err := c.db.First(&menuItem, menuItemID).Error; err != nil {
		return nil, fmt.Errorf("menu item not found")
	}

	var recipeLines []recipe.RecipeLine
	if err := c.db.Preload("RawItem").Where("menu_item_id = ?", menuItemID).Order("id ASC").Find(&recipeLines).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve recipe lines: %w", err)
	}

	cost := &ItemCost{
		MenuItemID: menuItem.ID,
		Code:       menuItem.Code,
		Name:       menuItem.Name,
		SellPrice:  menuItem.SellPrice,
		Lines:      []LineCost{},
	}

	for _, rl := range recipeLines {
		normalized, err := unit.Normalize(rl.Quantity, rl.Unit, rl.RawItem.BaseUnit)
		if err != nil {
			return nil, fmt.Errorf("recipe line %d for raw item %s: %w", rl.ID, rl.RawItem.Code, err)
		}

		lineCost := rl.RawItem.UnitCost * normalized
		cost.RecipeCost += lineCost
		cost.Lines = append(cost.Lines, LineCost{
			RawItemID:          rl.RawItemID,
			RawItemCode:        rl.RawItem.Code,
			Quantity:           rl.Quantity,
			Unit:               rl.Unit,
			NormalizedQuantity: normalized,
			BaseUnit:           rl.RawItem.BaseUnit,
			UnitCost:           rl.RawItem.UnitCost,
			Cost:               lineCost,
		})
	}

	if menuItem.SellPrice > 0 {
		cost.ProfitMargin = (menuItem.SellPrice - cost.RecipeCost) / menuItem.SellPrice
	}

	c.cacheSet(cacheKey, cost)

	return cost, nil
}

// CalculateOrderCOGS costs a hypothetical order without mutating anything.
// With a branch given, requirements are compared against current stock to
// project shortages.
func (c *Calculator) CalculateOrderCOGS(lines []OrderLine, branchID *uint) (*OrderCOGSPreview, error) {
	requirements, skipped, warnings, err := expandRequirements(c.db, lines)
	if err != nil {
		return nil, fmt.Errorf("failed to expand order requirements: %w", err)
	}

	preview := &OrderCOGSPreview{
		Requirements:       []RequirementPreview{},
		ProjectedShortages: []ProjectedShortage{},
		Warnings:           warnings,
	}
	for _, sk := range skipped {
		preview.Warnings = append(preview.Warnings, fmt.Sprintf("raw item %s: %s", sk.RawItemCode, sk.Reason))
	}

	for _, req := range requirements {
		item := req.RawItem
		cost := item.UnitCost * req.Required
		preview.CostOfGoods += cost
		preview.Requirements = append(preview.Requirements, RequirementPreview{
			RawItemID:        item.ID,
			RawItemCode:      item.Code,
			RequiredQuantity: req.Required,
			BaseUnit:         item.BaseUnit,
			UnitCost:         item.UnitCost,
			Cost:             cost,
		})

		if branchID == nil {
			continue
		}
		available, err := c.ledger.GetStock(*branchID, item.ID)
		if err != nil {
			return nil, err
		}
		if available < req.Required {
			preview.ProjectedShortages = append(preview.ProjectedShortages, ProjectedShortage{
				RawItemID:         item.ID,
				RawItemCode:       item.Code,
				RequiredQuantity:  req.Required,
				AvailableQuantity: available,
				BaseUnit:          item.BaseUnit,
			})
		}
	}

	return preview, nil
}

// cacheGet reads a cached cost preview, best effort
func (c *Calculator) cacheGet(key string) *ItemCost {
	if c.redisClient == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	raw, err := c.redisClient.Get(ctx, key).Result()
	if err != nil {
		return nil
	}

	var cost ItemCost
	if err := json.Unmarshal([]byte(raw), &cost); err != nil {
		return nil
	}
	return &cost
}

// cacheSet stores a cost preview, best effort
func (c *Calculator) cacheSet(key string, cost *ItemCost) {
	if c.redisClient == nil {
		return
	}

	encoded, err := json.Marshal(cost)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	c.redisClient.Set(ctx, key, encoded, c.config.Inventory.CostPreviewTTL)
}
