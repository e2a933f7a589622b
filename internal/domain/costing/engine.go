// internal/domain/costing/engine.go
package costing

import (
	"encoding/json"
	"fmt"

	"github.com/your-org/cafe-backoffice/internal/config"
	"github.com/your-org/cafe-backoffice/internal/domain/order"
	"github.com/your-org/cafe-backoffice/internal/domain/stock"
	"github.com/your-org/cafe-backoffice/internal/domain/unit"
	"gorm.io/gorm"
)

// DeductionOutcome classifies what happened to one raw item during a
// deduction pass
type DeductionOutcome string

const (
	OutcomeDeducted            DeductionOutcome = "deducted"
	OutcomeSkippedNoStock      DeductionOutcome = "skipped_no_stock"
	OutcomeSkippedInsufficient DeductionOutcome = "skipped_insufficient"
	OutcomeSkippedNoRecipe     DeductionOutcome = "skipped_no_recipe"
)

// DeductionDetail is the per-raw-item record of a deduction pass
type DeductionDetail struct {
	RawItemID        uint             `json:"raw_item_id"`
	RawItemCode      string           `json:"raw_item_code,omitempty"`
	RequiredQuantity float64          `json:"required_quantity"`
	BaseUnit         unit.Unit        `json:"base_unit,omitempty"`
	PreviousQuantity float64          `json:"previous_quantity"`
	NewQuantity      float64          `json:"new_quantity"`
	Cost             float64          `json:"cost"`
	Outcome          DeductionOutcome `json:"outcome"`
}

// Shortage records a raw-item requirement that current branch stock could
// not satisfy
type Shortage struct {
	RawItemID         uint      `json:"raw_item_id"`
	RawItemCode       string    `json:"raw_item_code"`
	RequiredQuantity  float64   `json:"required_quantity"`
	AvailableQuantity float64   `json:"available_quantity"`
	BaseUnit          unit.Unit `json:"base_unit"`
}

// DeductionResult is what a deduction pass hands back to order processing.
// Success is advisory: shortages never block the order.
type DeductionResult struct {
	Success     bool              `json:"success"`
	CostOfGoods float64           `json:"cost_of_goods"`
	Details     []DeductionDetail `json:"deduction_details"`
	Shortages   []Shortage        `json:"shortages"`
	Warnings    []string          `json:"warnings"`
	Errors      []string          `json:"errors"`
}

// Engine deducts branch stock for orders and computes their cost of goods
type Engine struct {
	db     *gorm.DB
	config *config.Config
	ledger *stock.Ledger
}

// NewEngine creates a new deduction engine
func NewEngine(db *gorm.DB, cfg *config.Config) *Engine {
	return &Engine{
		db:     db,
		config: cfg,
		ledger: stock.NewLedger(db, cfg),
	}
}

// DeductForOrder expands the order's lines and addons into per-raw-item
// requirements and deducts what is available from branch stock. Every raw
// item is processed independently: a shortage is recorded, alerted on and
// skipped, never a reason to abort the pass. Only persistence failures are
// fatal, and then only for the raw item being processed; deductions already
// committed stay committed. The resulting cost of goods is persisted onto
// the order row for downstream accounting.
func (e *Engine) DeductForOrder(orderID string, branchID uint, lines []OrderLine, actor string) (*DeductionResult, error) {
	result := &DeductionResult{
		Details:   []DeductionDetail{},
		Shortages: []Shortage{},
		Warnings:  []string{},
		Errors:    []string{},
	}

	requirements, skipped, warnings, err := expandRequirements(e.db, lines)
	if err != nil {
		return nil, fmt.Errorf("failed to expand order requirements: %w", err)
	}
	result.Warnings = append(result.Warnings, warnings...)

	for _, sk := range skipped {
		result.Details = append(result.Details, DeductionDetail{
			RawItemID:   sk.RawItemID,
			RawItemCode: sk.RawItemCode,
			Outcome:     OutcomeSkippedNoRecipe,
		})
		result.Warnings = append(result.Warnings, fmt.Sprintf("raw item %s: %s", sk.RawItemCode, sk.Reason))
	}

	for _, req := range requirements {
		item := req.RawItem

		current, exists, err := e.ledger.CurrentStock(branchID, item.ID)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("raw item %s: %v", item.Code, err))
			continue
		}

		if !exists {
			result.Details = append(result.Details, DeductionDetail{
				RawItemID:        item.ID,
				RawItemCode:      item.Code,
				RequiredQuantity: req.Required,
				BaseUnit:         item.BaseUnit,
				Outcome:          OutcomeSkippedNoStock,
			})
			result.Shortages = append(result.Shortages, Shortage{
				RawItemID:         item.ID,
				RawItemCode:       item.Code,
				RequiredQuantity:  req.Required,
				AvailableQuantity: 0,
				BaseUnit:          item.BaseUnit,
			})
			if err := e.ledger.CreateShortageAlert(branchID, item.ID, req.Required, 0); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("raw item %s: %v", item.Code, err))
			}
			continue
		}

		previous, newQuantity, ok, err := e.ledger.DeductIfAvailable(branchID, item.ID, req.Required, actor, orderID)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("raw item %s: %v", item.Code, err))
			continue
		}

		if !ok {
			// Conditional decrement matched no row: quantity below the
			// requirement. The earlier read is advisory detail only.
			result.Details = append(result.Details, DeductionDetail{
				RawItemID:        item.ID,
				RawItemCode:      item.Code,
				RequiredQuantity: req.Required,
				BaseUnit:         item.BaseUnit,
				PreviousQuantity: current,
				NewQuantity:      current,
				Outcome:          OutcomeSkippedInsufficient,
			})
			result.Shortages = append(result.Shortages, Shortage{
				RawItemID:         item.ID,
				RawItemCode:       item.Code,
				RequiredQuantity:  req.Required,
				AvailableQuantity: current,
				BaseUnit:          item.BaseUnit,
			})
			if err := e.ledger.CreateShortageAlert(branchID, item.ID, req.Required, current); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("raw item %s: %v", item.Code, err))
			}
			continue
		}

		cost := item.UnitCost * req.Required
		result.CostOfGoods += cost
		result.Details = append(result.Details, DeductionDetail{
			RawItemID:        item.ID,
			RawItemCode:      item.Code,
			RequiredQuantity: req.Required,
			BaseUnit:         item.BaseUnit,
			PreviousQuantity: previous,
			NewQuantity:      newQuantity,
			Cost:             cost,
			Outcome:          OutcomeDeducted,
		})
	}

	result.Success = len(result.Shortages) == 0

	if err := e.persistOrderResult(orderID, branchID, result); err != nil {
		result.Errors = append(result.Errors, err.Error())
	}

	if len(result.Errors) > 0 {
		return result, fmt.Errorf("deduction for order %s hit %d infrastructure errors: %s", orderID, len(result.Errors), result.Errors[0])
	}
	return result, nil
}

// persistOrderResult writes cost of goods and the deduction outcome onto the
// order row, creating it when order processing has not done so yet
func (e *Engine) persistOrderResult(orderID string, branchID uint, result *DeductionResult) error {
	encoded, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode deduction outcome: %w", err)
	}

	return e.db.Transaction(func(tx *gorm.DB) error {
		var row order.Order
		err := tx.Where("order_number = ?", orderID).First(&row).Error
		if err == gorm.ErrRecordNotFound {
			row = order.Order{OrderNumber: orderID, BranchID: branchID}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to create order snapshot: %w", err)
			}
		} else if err != nil {
			return fmt.Errorf("failed to read order snapshot: %w", err)
		}

		row.CostOfGoods = result.CostOfGoods
		row.DeductionOutcome = string(encoded)
		if err := tx.Save(&row).Error; err != nil {
			return fmt.Errorf("failed to persist cost of goods: %w", err)
		}
		return nil
	})
}
