// internal/domain/recipe/entity.go
package recipe

import (
	"time"

	"github.com/your-org/cafe-backoffice/internal/domain/catalog"
	"github.com/your-org/cafe-backoffice/internal/domain/unit"
	"gorm.io/gorm"
)

// RecipeLine represents one raw-material requirement of a sellable menu
// item. Quantity is expressed in Unit, which must share a dimension with the
// raw item's base unit.
type RecipeLine struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	MenuItemID uint           `gorm:"not null;index" json:"menu_item_id"`
	RawItemID  uint           `gorm:"not null;index" json:"raw_item_id"`
	Quantity   float64        `gorm:"not null" json:"quantity"`
	Unit       unit.Unit      `gorm:"not null;size:20" json:"unit"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	RawItem catalog.RawItem `gorm:"foreignKey:RawItemID" json:"raw_item,omitempty"`
}
