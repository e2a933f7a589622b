// internal/domain/stock/ledger.go
package stock

import (
	"fmt"
	"time"

	"github.com/your-org/cafe-backoffice/internal/config"
	"gorm.io/gorm"
)

// Ledger is the only sanctioned write path for branch stock. Every quantity
// change persists the row and appends exactly one StockMovement.
type Ledger struct {
	db     *gorm.DB
	config *config.Config
}

// NewLedger creates a new stock ledger
func NewLedger(db *gorm.DB, cfg *config.Config) *Ledger {
	return &Ledger{
		db:     db,
		config: cfg,
	}
}

// GetStock returns the current quantity of a raw item at a branch, 0 when no
// row exists
func (l *Ledger) GetStock(branchID, rawItemID uint) (float64, error) {
	qty, _, err := l.CurrentStock(branchID, rawItemID)
	return qty, err
}

// CurrentStock returns the current quantity and whether a row exists. The
// deduction engine uses the existence flag to classify shortages.
func (l *Ledger) CurrentStock(branchID, rawItemID uint) (float64, bool, error) {
	var row BranchStock
	err := l.db.Where("branch_id = ? AND raw_item_id = ?", branchID, rawItemID).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read branch stock: %w", err)
	}
	return row.Quantity, true, nil
}

// SetStock sets the absolute quantity of a raw item at a branch, creating
// the row at 0 if absent, and appends one movement carrying the computed
// delta. Used for purchases, transfers and manual adjustments.
func (l *Ledger) SetStock(branchID, rawItemID uint, newQuantity float64, actor string, movementType MovementType, notes string) (*StockMovement, error) {
	if newQuantity < 0 {
		return nil, fmt.Errorf("stock quantity must not be negative")
	}
	if !movementType.Valid() {
		return nil, fmt.Errorf("invalid movement type: %s", movementType)
	}

	var movement *StockMovement
	err := l.db.Transaction(func(tx *gorm.DB) error {
		var row BranchStock
		err := tx.Where("branch_id = ? AND raw_item_id = ?", branchID, rawItemID).First(&row).Error
		if err == gorm.ErrRecordNotFound {
			row = BranchStock{BranchID: branchID, RawItemID: rawItemID, Quantity: 0}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to create branch stock: %w", err)
			}
		} else if err != nil {
			return fmt.Errorf("failed to read branch stock: %w", err)
		}

		previous := row.Quantity
		row.Quantity = newQuantity
		if err := tx.Save(&row).Error; err != nil {
			return fmt.Errorf("failed to update branch stock: %w", err)
		}

		movement = &StockMovement{
			BranchID:         branchID,
			RawItemID:        rawItemID,
			MovementType:     movementType,
			Delta:            newQuantity - previous,
			PreviousQuantity: previous,
			NewQuantity:      newQuantity,
			Notes:            notes,
			Actor:            actor,
		}
		if err := tx.Create(movement).Error; err != nil {
			return fmt.Errorf("failed to record stock movement: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	go l.checkThresholdAlert(branchID, rawItemID)

	return movement, nil
}

// DeductIfAvailable atomically decrements stock when the current quantity
// covers the requirement, and appends one "sale" movement. The conditional
// UPDATE serializes concurrent deductions of the same (branch, raw item)
// row, so stock never drifts below zero. Returns ok=false, without error,
// when no row exists or the quantity is insufficient.
func (l *Ledger) DeductIfAvailable(branchID, rawItemID uint, required float64, actor, reference string) (previous, newQuantity float64, ok bool, err error) {
	if required <= 0 {
		return 0, 0, false, fmt.Errorf("required quantity must be greater than zero")
	}

	err = l.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&BranchStock{}).
			Where("branch_id = ? AND raw_item_id = ? AND quantity >= ?", branchID, rawItemID, required).
			UpdateColumn("quantity", gorm.Expr("quantity - ?", required))
		if res.Error != nil {
			return fmt.Errorf("failed to deduct branch stock: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// Absent row or insufficient quantity; caller classifies.
			return nil
		}

		var row BranchStock
		if err := tx.Where("branch_id = ? AND raw_item_id = ?", branchID, rawItemID).First(&row).Error; err != nil {
			return fmt.Errorf("failed to read branch stock after deduction: %w", err)
		}

		previous = row.Quantity + required
		newQuantity = row.Quantity

		movement := &StockMovement{
			BranchID:         branchID,
			RawItemID:        rawItemID,
			MovementType:     MovementTypeSale,
			Delta:            -required,
			PreviousQuantity: previous,
			NewQuantity:      newQuantity,
			Reference:        reference,
			Actor:            actor,
		}
		if err := tx.Create(movement).Error; err != nil {
			return fmt.Errorf("failed to record stock movement: %w", err)
		}

		ok = true
		return nil
	})
	if err != nil {
		return 0, 0, false, err
	}

	if ok {
		go l.checkThresholdAlert(branchID, rawItemID)
	}

	return previous, newQuantity, ok, nil
}

// Movements retrieves the movement log most-recent-first, optionally
// filtered by raw item. The log has no update or delete path.
func (l *Ledger) Movements(branchID uint, rawItemID *uint, limit int) ([]StockMovement, error) {
	if limit <= 0 {
		limit = l.config.Inventory.MovementLimit
	}
	if limit <= 0 {
		limit = 50
	}

	query := l.db.Where("branch_id = ?", branchID)
	if rawItemID != nil {
		query = query.Where("raw_item_id = ?", *rawItemID)
	}

	var movements []StockMovement
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&movements).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve stock movements: %w", err)
	}
	return movements, nil
}

// LowStockItems returns stock rows at or below the raw item's configured
// minimum, across all branches or for one branch
func (l *Ledger) LowStockItems(branchID *uint) ([]LowStockItem, error) {
	query := l.db.Model(&BranchStock{}).
		Select("branch_stocks.branch_id, branch_stocks.raw_item_id, raw_items.code AS raw_item_code, raw_items.name AS raw_item_name, raw_items.base_unit, branch_stocks.quantity, raw_items.min_stock").
		Joins("JOIN raw_items ON raw_items.id = branch_stocks.raw_item_id AND raw_items.deleted_at IS NULL").
		Where("branch_stocks.quantity <= raw_items.min_stock")
	if branchID != nil {
		query = query.Where("branch_stocks.branch_id = ?", *branchID)
	}

	var items []LowStockItem
	if err := query.Order("branch_stocks.branch_id ASC, raw_items.code ASC").Scan(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve low stock items: %w", err)
	}
	return items, nil
}

// CreateShortageAlert records that a deduction could not be fully satisfied.
// One unresolved alert per (branch, raw item, type) is kept.
func (l *Ledger) CreateShortageAlert(branchID, rawItemID uint, required, available float64) error {
	alertType := AlertTypeShortage
	if available <= 0 {
		alertType = AlertTypeOutOfStock
	}

	var existing StockAlert
	hasExisting := l.db.Where("branch_id = ? AND raw_item_id = ? AND alert_type = ? AND is_resolved = ?",
		branchID, rawItemID, alertType, false).First(&existing).Error == nil
	if hasExisting {
		return nil
	}

	alert := StockAlert{
		BranchID:          branchID,
		RawItemID:         rawItemID,
		AlertType:         alertType,
		Message:           fmt.Sprintf("deduction short: required %.4f, available %.4f", required, available),
		CurrentQuantity:   available,
		ThresholdQuantity: required,
	}
	if err := l.db.Create(&alert).Error; err != nil {
		return fmt.Errorf("failed to create shortage alert: %w", err)
	}
	return nil
}

// Alerts retrieves stock alerts for a branch
func (l *Ledger) Alerts(branchID uint, includeResolved bool) ([]StockAlert, error) {
	query := l.db.Where("branch_id = ?", branchID)
	if !includeResolved {
		query = query.Where("is_resolved = ?", false)
	}

	var alerts []StockAlert
	if err := query.Order("created_at DESC").Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve stock alerts: %w", err)
	}
	return alerts, nil
}

// ResolveAlert marks an alert handled by staff
func (l *Ledger) ResolveAlert(alertID uint) error {
	var alert StockAlert
	if err := l.db.First(&alert, alertID).Error; err != nil {
		return fmt.Errorf("stock alert not found")
	}

	now := time.Now()
	alert.IsResolved = true
	alert.ResolvedAt = &now
	if err := l.db.Save(&alert).Error; err != nil {
		return fmt.Errorf("failed to resolve stock alert: %w", err)
	}
	return nil
}

// checkThresholdAlert creates a low-stock alert when a write leaves the row
// at or below the raw item's minimum
func (l *Ledger) checkThresholdAlert(branchID, rawItemID uint) {
	var result struct {
		Quantity float64
		MinStock float64
		Code     string
	}
	err := l.db.Model(&BranchStock{}).
		Select("branch_stocks.quantity, raw_items.min_stock, raw_items.code").
		Joins("JOIN raw_items ON raw_items.id = branch_stocks.raw_item_id").
		Where("branch_stocks.branch_id = ? AND branch_stocks.raw_item_id = ?", branchID, rawItemID).
		Scan(&result).Error
	if err != nil {
		return
	}

	if result.Quantity > result.MinStock {
		return
	}

	alertType := AlertTypeLowStock
	if result.Quantity <= 0 {
		alertType = AlertTypeOutOfStock
	}

	var existing StockAlert
	hasExisting := l.db.Where("branch_id = ? AND raw_item_id = ? AND alert_type = ? AND is_resolved = ?",
		branchID, rawItemID, alertType, false).First(&existing).Error == nil
	if hasExisting {
		return
	}

	l.db.Create(&StockAlert{
		BranchID:          branchID,
		RawItemID:         rawItemID,
		AlertType:         alertType,
		Message:           fmt.Sprintf("raw item %s is running low (quantity %.4f, minimum %.4f)", result.Code, result.Quantity, result.MinStock),
		CurrentQuantity:   result.Quantity,
		ThresholdQuantity: result.MinStock,
	})
}
