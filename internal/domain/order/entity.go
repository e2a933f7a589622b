// internal/domain/order/entity.go
package order

import (
	"time"
)

// Order is the snapshot row the deduction engine writes its results onto.
// Order processing itself lives in the surrounding application; this core
// only persists cost of goods and the deduction outcome for downstream
// accounting.
type Order struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	OrderNumber      string    `gorm:"uniqueIndex;not null;size:100" json:"order_number"`
	BranchID         uint      `gorm:"not null;index" json:"branch_id"`
	Status           string    `gorm:"size:20;default:'completed'" json:"status"`
	CostOfGoods      float64   `gorm:"not null;default:0" json:"cost_of_goods"`
	DeductionOutcome string    `gorm:"type:text" json:"deduction_outcome,omitempty"` // JSON-encoded DeductionResult
	CreatedAt        time.Time `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
