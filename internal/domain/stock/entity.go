// internal/domain/stock/entity.go
package stock

import (
	"time"
)

// MovementType represents the type of stock movement
type MovementType string

const (
	MovementTypeSale       MovementType = "sale"
	MovementTypePurchase   MovementType = "purchase"
	MovementTypeTransfer   MovementType = "transfer"
	MovementTypeAdjustment MovementType = "adjustment"
)

// Valid reports whether the movement type is part of the closed set
func (m MovementType) Valid() bool {
	switch m {
	case MovementTypeSale, MovementTypePurchase, MovementTypeTransfer, MovementTypeAdjustment:
		return true
	}
	return false
}

// AlertType represents the kind of stock alert
type AlertType string

const (
	AlertTypeLowStock   AlertType = "low_stock"
	AlertTypeOutOfStock AlertType = "out_of_stock"
	AlertTypeShortage   AlertType = "shortage"
)

// BranchStock represents the current quantity of a raw item at a branch,
// stored in the raw item's base unit. Rows are created lazily at the first
// movement and written only through the Ledger.
type BranchStock struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BranchID  uint      `gorm:"not null;uniqueIndex:idx_branch_raw_item" json:"branch_id"`
	RawItemID uint      `gorm:"not null;uniqueIndex:idx_branch_raw_item" json:"raw_item_id"`
	Quantity  float64   `gorm:"not null;default:0" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StockMovement is the append-only audit record of a single stock change.
// Rows are immutable once written; corrections are new adjustment movements.
// Invariant: NewQuantity == PreviousQuantity + Delta.
type StockMovement struct {
	ID               uint         `gorm:"primaryKey" json:"id"`
	BranchID         uint         `gorm:"not null;index:idx_movement_branch_item" json:"branch_id"`
	RawItemID        uint         `gorm:"not null;index:idx_movement_branch_item" json:"raw_item_id"`
	MovementType     MovementType `gorm:"not null;size:20" json:"movement_type"`
	Delta            float64      `gorm:"not null" json:"delta"`
	PreviousQuantity float64      `gorm:"not null" json:"previous_quantity"`
	NewQuantity      float64      `gorm:"not null" json:"new_quantity"`
	Reference        string       `gorm:"size:100;index" json:"reference,omitempty"`
	Notes            string       `gorm:"type:text" json:"notes,omitempty"`
	Actor            string       `gorm:"size:100" json:"actor"`
	CreatedAt        time.Time    `gorm:"index" json:"created_at"`
}

// StockAlert represents a low-stock or shortage signal. Created by the
// ledger or the deduction engine, resolved by explicit staff action.
type StockAlert struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	BranchID          uint       `gorm:"not null;index" json:"branch_id"`
	RawItemID         uint       `gorm:"not null;index" json:"raw_item_id"`
	AlertType         AlertType  `gorm:"not null;size:20" json:"alert_type"`
	Message           string     `gorm:"type:text" json:"message"`
	CurrentQuantity   float64    `json:"current_quantity"`
	ThresholdQuantity float64    `json:"threshold_quantity"`
	IsResolved        bool       `gorm:"default:false;index" json:"is_resolved"`
	ResolvedAt        *time.Time `json:"resolved_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// LowStockItem is one row of the passive low-stock scan
type LowStockItem struct {
	BranchID    uint    `json:"branch_id"`
	RawItemID   uint    `json:"raw_item_id"`
	RawItemCode string  `json:"raw_item_code"`
	RawItemName string  `json:"raw_item_name"`
	BaseUnit    string  `json:"base_unit"`
	Quantity    float64 `json:"quantity"`
	MinStock    float64 `json:"min_stock"`
}
