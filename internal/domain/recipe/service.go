// internal/domain/recipe/service.go
package recipe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/cafe-backoffice/internal/config"
	"github.com/your-org/cafe-backoffice/internal/domain/catalog"
	"github.com/your-org/cafe-backoffice/internal/domain/unit"
	"gorm.io/gorm"
)

// ErrUnitMismatch is returned when a recipe line's unit does not share a
// dimension with the raw item's base unit
var ErrUnitMismatch = errors.New("recipe unit does not match raw item base unit dimension")

// Service handles recipe definitions
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
}

// NewService creates a new recipe service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
	}
}

// AddLineRequest represents recipe-line creation data
type AddLineRequest struct {
	MenuItemID uint    `json:"menu_item_id" binding:"required"`
	RawItemID  uint    `json:"raw_item_id" binding:"required"`
	Quantity   float64 `json:"quantity" binding:"required"`
	Unit       string  `json:"unit" binding:"required"`
}

// TemplateLine represents one line of a recipe template, referencing the raw
// item by its code
type TemplateLine struct {
	RawItemCode string  `json:"raw_item_code" binding:"required"`
	Quantity    float64 `json:"quantity" binding:"required"`
	Unit        string  `json:"unit" binding:"required"`
}

// SkippedTemplateLine reports a template line that could not be applied
type SkippedTemplateLine struct {
	RawItemCode string `json:"raw_item_code"`
	Reason      string `json:"reason"`
}

// TemplateResult reports the outcome of a best-effort template application
type TemplateResult struct {
	Applied []RecipeLine          `json:"applied"`
	Skipped []SkippedTemplateLine `json:"skipped"`
}

// AddLine adds a recipe line to a menu item. The line's unit must be
// dimension-compatible with the raw item's base unit.
func (s *Service) AddLine(req *AddLineRequest) (*RecipeLine, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be greater than zero")
	}

	lineUnit, err := unit.Parse(req.Unit)
	if err != nil {
		return nil, err
	}

	var menuItem catalog.MenuItem
	if err := s.db.First(&menuItem, req.MenuItemID).Error; err != nil {
		return nil, fmt.Errorf("menu item not found")
	}

	var rawItem catalog.RawItem
	if err := s.db.First(&rawItem, req.RawItemID).Error; err != nil {
		return nil, fmt.Errorf("raw item not found")
	}

	if !unit.Compatible(lineUnit, rawItem.BaseUnit) {
		return nil, fmt.Errorf("%w: %s is not compatible with %s", ErrUnitMismatch, lineUnit, rawItem.BaseUnit)
	}

	line := &RecipeLine{
		MenuItemID: req.MenuItemID,
		RawItemID:  req.RawItemID,
		Quantity:   req.Quantity,
		Unit:       lineUnit,
	}

	if err := s.db.Create(line).Error; err != nil {
		return nil, fmt.Errorf("failed to create recipe line: %w", err)
	}
	line.RawItem = rawItem

	s.invalidateCostPreview(req.MenuItemID)

	return line, nil
}

// RemoveLine removes a recipe line
func (s *Service) RemoveLine(lineID uint) error {
	var line RecipeLine
	if err := s.db.First(&line, lineID).Error; err != nil {
		return fmt.Errorf("recipe line not found")
	}

	if err := s.db.Delete(&line).Error; err != nil {
		return fmt.Errorf("failed to remove recipe line: %w", err)
	}

	s.invalidateCostPreview(line.MenuItemID)

	return nil
}

// ListLines retrieves the recipe lines of a menu item
func (s *Service) ListLines(menuItemID uint) ([]RecipeLine, error) {
	var lines []RecipeLine
	if err := s.db.Preload("RawItem").Where("menu_item_id = ?", menuItemID).Order("id ASC").Find(&lines).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve recipe lines: %w", err)
	}
	return lines, nil
}

// ListAllLines retrieves every recipe line
func (s *Service) ListAllLines() ([]RecipeLine, error) {
	var lines []RecipeLine
	if err := s.db.Preload("RawItem").Order("menu_item_id ASC, id ASC").Find(&lines).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve recipe lines: %w", err)
	}
	return lines, nil
}

// ApplyTemplate applies a recipe template to a menu item, best effort. Lines
// whose raw-item code cannot be resolved or whose data is invalid are
// skipped and reported; resolvable lines commit independently with no
// rollback.
func (s *Service) ApplyTemplate(menuItemID uint, lines []TemplateLine) (*TemplateResult, error) {
	var menuItem catalog.MenuItem
	if err := s.db.First(&menuItem, menuItemID).Error; err != nil {
		return nil, fmt.Errorf("menu item not found")
	}

	result := &TemplateResult{}
	for _, tl := range lines {
		var rawItem catalog.RawItem
		if err := s.db.Where("code = ?", tl.RawItemCode).First(&rawItem).Error; err != nil {
			result.Skipped = append(result.Skipped, SkippedTemplateLine{
				RawItemCode: tl.RawItemCode,
				Reason:      "raw item not found",
			})
			continue
		}

		line, err := s.AddLine(&AddLineRequest{
			MenuItemID: menuItemID,
			RawItemID:  rawItem.ID,
			Quantity:   tl.Quantity,
			Unit:       tl.Unit,
		})
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedTemplateLine{
				RawItemCode: tl.RawItemCode,
				Reason:      err.Error(),
			})
			continue
		}

		result.Applied = append(result.Applied, *line)
	}

	return result, nil
}

// invalidateCostPreview drops the cached cost preview of one menu item
func (s *Service) invalidateCostPreview(menuItemID uint) {
	if s.redisClient == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	s.redisClient.Del(ctx, fmt.Sprintf("cogs:item:%d", menuItemID))
}
