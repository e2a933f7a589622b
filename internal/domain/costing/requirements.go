// internal/domain/costing/requirements.go
package costing

import (
	"fmt"

	"github.com/your-org/cafe-backoffice/internal/domain/catalog"
	"github.com/your-org/cafe-backoffice/internal/domain/recipe"
	"github.com/your-org/cafe-backoffice/internal/domain/unit"
	"gorm.io/gorm"
)

// OrderLine is one sold line of an order handed over by order processing
type OrderLine struct {
	MenuItemID   uint               `json:"menu_item_id" binding:"required"`
	QuantitySold int                `json:"quantity_sold" binding:"required"`
	Addons       []AddonConsumption `json:"addons,omitempty"`
}

// AddonConsumption is an extra raw-material consumption attached to an order
// line. It bypasses the recipe and names the raw item directly.
type AddonConsumption struct {
	RawItemID uint    `json:"raw_item_id" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required"`
	Unit      string  `json:"unit" binding:"required"`
}

// requirement is the aggregated raw-material need of an order, expressed in
// the raw item's base unit
type requirement struct {
	RawItem  catalog.RawItem
	Required float64
}

// skippedRequirement records a recipe or addon line that could not be
// normalized into the raw item's base unit
type skippedRequirement struct {
	RawItemID   uint
	RawItemCode string
	Reason      string
}

// expandRequirements resolves every order line into per-raw-item
// requirements: recipe lines scaled by quantity sold, plus addon
// consumptions, all normalized to base units. Normalization failures are
// collected, not fatal; only persistence errors abort the expansion.
func expandRequirements(db *gorm.DB, lines []OrderLine) ([]*requirement, []skippedRequirement, []string, error) {
	var (
		ordered  []*requirement
		skipped  []skippedRequirement
		warnings []string
		byItem   = make(map[uint]*requirement)
	)

	add := func(item catalog.RawItem, qty float64) {
		if existing, found := byItem[item.ID]; found {
			existing.Required += qty
			return
		}
		req := &requirement{RawItem: item, Required: qty}
		byItem[item.ID] = req
		ordered = append(ordered, req)
	}

	for _, line := range lines {
		if line.QuantitySold <= 0 {
			warnings = append(warnings, fmt.Sprintf("menu item %d: quantity sold must be greater than zero, line ignored", line.MenuItemID))
			continue
		}

		var recipeLines []recipe.RecipeLine
		if err := db.Preload("RawItem").Where("menu_item_id = ?", line.MenuItemID).Order("id ASC").Find(&recipeLines).Error; err != nil {
			return nil, nil, nil, fmt.Errorf("failed to resolve recipe for menu item %d: %w", line.MenuItemID, err)
		}
		if len(recipeLines) == 0 && len(line.Addons) == 0 {
			warnings = append(warnings, fmt.Sprintf("menu item %d has no recipe, nothing to deduct", line.MenuItemID))
		}

		for _, rl := range recipeLines {
			normalized, err := unit.Normalize(rl.Quantity*float64(line.QuantitySold), rl.Unit, rl.RawItem.BaseUnit)
			if err != nil {
				skipped = append(skipped, skippedRequirement{
					RawItemID:   rl.RawItemID,
					RawItemCode: rl.RawItem.Code,
					Reason:      err.Error(),
				})
				continue
			}
			add(rl.RawItem, normalized)
		}

		for _, addon := range line.Addons {
			var rawItem catalog.RawItem
			if err := db.First(&rawItem, addon.RawItemID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					skipped = append(skipped, skippedRequirement{
						RawItemID: addon.RawItemID,
						Reason:    "raw item not found",
					})
					continue
				}
				return nil, nil, nil, fmt.Errorf("failed to resolve addon raw item %d: %w", addon.RawItemID, err)
			}

			addonUnit, err := unit.Parse(addon.Unit)
			if err != nil {
				skipped = append(skipped, skippedRequirement{
					RawItemID:   rawItem.ID,
					RawItemCode: rawItem.Code,
					Reason:      err.Error(),
				})
				continue
			}

			normalized, err := unit.Normalize(addon.Quantity*float64(line.QuantitySold), addonUnit, rawItem.BaseUnit)
			if err != nil {
				skipped = append(skipped, skippedRequirement{
					RawItemID:   rawItem.ID,
					RawItemCode: rawItem.Code,
					Reason:      err.Error(),
				})
				continue
			}
			add(rawItem, normalized)
		}
	}

	return ordered, skipped, warnings, nil
}
