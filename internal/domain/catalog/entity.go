// internal/domain/catalog/entity.go
package catalog

import (
	"time"

	"github.com/your-org/cafe-backoffice/internal/domain/unit"
	"gorm.io/gorm"
)

// Branch represents a café location holding its own stock
type Branch struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Code      string         `gorm:"uniqueIndex;not null;size:20" json:"code"`
	Name      string         `gorm:"not null;size:100" json:"name"`
	Address   string         `gorm:"type:text" json:"address"`
	Phone     string         `gorm:"size:20" json:"phone"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// RawItem represents a raw material consumed by recipes. Stock quantity and
// unit cost are always expressed in the base unit.
type RawItem struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Code      string         `gorm:"uniqueIndex;not null;size:50" json:"code"`
	Name      string         `gorm:"not null;size:100" json:"name"`
	BaseUnit  unit.Unit      `gorm:"not null;size:20" json:"base_unit"`
	UnitCost  float64        `gorm:"not null;default:0" json:"unit_cost"` // Cost per base unit
	MinStock  float64        `gorm:"default:0" json:"min_stock"`          // Low-stock threshold, in base unit
	Category  string         `gorm:"size:50;index" json:"category,omitempty"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// MenuItem represents a sellable item on the menu
type MenuItem struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Code      string         `gorm:"uniqueIndex;not null;size:50" json:"code"`
	Name      string         `gorm:"not null;size:100" json:"name"`
	SellPrice float64        `gorm:"not null;default:0" json:"sell_price"`
	Category  string         `gorm:"size:50;index" json:"category,omitempty"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
