// internal/domain/catalog/service.go
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/cafe-backoffice/internal/config"
	"github.com/your-org/cafe-backoffice/internal/domain/unit"
	"gorm.io/gorm"
)

// Service handles branch, raw-item and menu-item configuration
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
	}
}

// CreateBranchRequest represents branch creation data
type CreateBranchRequest struct {
	Code    string `json:"code" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// CreateRawItemRequest represents raw-item creation data
type CreateRawItemRequest struct {
	Code     string  `json:"code" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	BaseUnit string  `json:"base_unit" binding:"required"`
	UnitCost float64 `json:"unit_cost"`
	MinStock float64 `json:"min_stock"`
	Category string  `json:"category"`
}

// UpdateRawItemRequest represents raw-item update data. Nil fields are left
// unchanged.
type UpdateRawItemRequest struct {
	Name     *string  `json:"name,omitempty"`
	BaseUnit *string  `json:"base_unit,omitempty"`
	UnitCost *float64 `json:"unit_cost,omitempty"`
	MinStock *float64 `json:"min_stock,omitempty"`
	Category *string  `json:"category,omitempty"`
	IsActive *bool    `json:"is_active,omitempty"`
}

// CreateMenuItemRequest represents menu-item creation data
type CreateMenuItemRequest struct {
	Code      string  `json:"code" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	SellPrice float64 `json:"sell_price"`
	Category  string  `json:"category"`
}

// UpdateMenuItemRequest represents menu-item update data
type UpdateMenuItemRequest struct {
	Name      *string  `json:"name,omitempty"`
	SellPrice *float64 `json:"sell_price,omitempty"`
	Category  *string  `json:"category,omitempty"`
	IsActive  *bool    `json:"is_active,omitempty"`
}

// BRANCH MANAGEMENT

// CreateBranch creates a new branch
func (s *Service) CreateBranch(req *CreateBranchRequest) (*Branch, error) {
	var existing Branch
	if err := s.db.Where("code = ?", req.Code).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("branch with code '%s' already exists", req.Code)
	}

	branch := &Branch{
		Code:     req.Code,
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		IsActive: true,
	}

	if err := s.db.Create(branch).Error; err != nil {
		return nil, fmt.Errorf("failed to create branch: %w", err)
	}

	return branch, nil
}

// GetBranches retrieves all active branches
func (s *Service) GetBranches() ([]Branch, error) {
	var branches []Branch
	if err := s.db.Where("is_active = ?", true).Order("code ASC").Find(&branches).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve branches: %w", err)
	}
	return branches, nil
}

// GetBranch retrieves a branch by ID
func (s *Service) GetBranch(id uint) (*Branch, error) {
	var branch Branch
	if err := s.db.First(&branch, id).Error; err != nil {
		return nil, fmt.Errorf("branch not found")
	}
	return &branch, nil
}

// RAW ITEM MANAGEMENT

// CreateRawItem creates a new raw item
func (s *Service) CreateRawItem(req *CreateRawItemRequest) (*RawItem, error) {
	baseUnit, err := unit.Parse(req.BaseUnit)
	if err != nil {
		return nil, err
	}
	if req.UnitCost < 0 {
		return nil, fmt.Errorf("unit cost must not be negative")
	}

	var existing RawItem
	if err := s.db.Where("code = ?", req.Code).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("raw item with code '%s' already exists", req.Code)
	}

	item := &RawItem{
		Code:     req.Code,
		Name:     req.Name,
		BaseUnit: baseUnit,
		UnitCost: req.UnitCost,
		MinStock: req.MinStock,
		Category: req.Category,
		IsActive: true,
	}
	if item.MinStock == 0 {
		item.MinStock = s.config.Inventory.DefaultMinStock
	}

	if err := s.db.Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to create raw item: %w", err)
	}

	return item, nil
}

// GetRawItems retrieves all raw items
func (s *Service) GetRawItems() ([]RawItem, error) {
	var items []RawItem
	if err := s.db.Order("code ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve raw items: %w", err)
	}
	return items, nil
}

// GetRawItem retrieves a raw item by ID
func (s *Service) GetRawItem(id uint) (*RawItem, error) {
	var item RawItem
	if err := s.db.First(&item, id).Error; err != nil {
		return nil, fmt.Errorf("raw item not found")
	}
	return &item, nil
}

// GetRawItemByCode retrieves a raw item by its unique code
func (s *Service) GetRawItemByCode(code string) (*RawItem, error) {
	var item RawItem
	if err := s.db.Where("code = ?", code).First(&item).Error; err != nil {
		return nil, fmt.Errorf("raw item not found")
	}
	return &item, nil
}

// UpdateRawItem updates an existing raw item. Changing the base unit is
// rejected while recipe lines or branch stock reference the item: quantities
// already stored in the old base unit would silently change meaning.
func (s *Service) UpdateRawItem(id uint, req *UpdateRawItemRequest) (*RawItem, error) {
	var item RawItem
	if err := s.db.First(&item, id).Error; err != nil {
		return nil, fmt.Errorf("raw item not found")
	}

	if req.BaseUnit != nil {
		newUnit, err := unit.Parse(*req.BaseUnit)
		if err != nil {
			return nil, err
		}
		if newUnit != item.BaseUnit {
			referenced, err := s.rawItemReferenced(id)
			if err != nil {
				return nil, err
			}
			if referenced {
				return nil, fmt.Errorf("cannot change base unit of raw item '%s': recipe lines or branch stock reference it", item.Code)
			}
			item.BaseUnit = newUnit
		}
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.UnitCost != nil {
		if *req.UnitCost < 0 {
			return nil, fmt.Errorf("unit cost must not be negative")
		}
		item.UnitCost = *req.UnitCost
	}
	if req.MinStock != nil {
		item.MinStock = *req.MinStock
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := s.db.Save(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to update raw item: %w", err)
	}

	s.invalidateCostPreviews()

	return &item, nil
}

// DeleteRawItem soft-deletes a raw item. Historical stock movements keep
// referencing it.
func (s *Service) DeleteRawItem(id uint) error {
	referenced, err := s.rawItemReferenced(id)
	if err != nil {
		return err
	}
	if referenced {
		return fmt.Errorf("cannot delete raw item: recipe lines or branch stock reference it")
	}

	if err := s.db.Delete(&RawItem{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete raw item: %w", err)
	}
	return nil
}

// rawItemReferenced reports whether any recipe line or branch stock row
// points at the raw item
func (s *Service) rawItemReferenced(id uint) (bool, error) {
	var recipeCount int64
	if err := s.db.Table("recipe_lines").Where("raw_item_id = ? AND deleted_at IS NULL", id).Count(&recipeCount).Error; err != nil {
		return false, fmt.Errorf("failed to check recipe references: %w", err)
	}
	if recipeCount > 0 {
		return true, nil
	}

	var stockCount int64
	if err := s.db.Table("branch_stocks").Where("raw_item_id = ? AND quantity > 0", id).Count(&stockCount).Error; err != nil {
		return false, fmt.Errorf("failed to check stock references: %w", err)
	}
	return stockCount > 0, nil
}

// MENU ITEM MANAGEMENT

// CreateMenuItem creates a new menu item
func (s *Service) CreateMenuItem(req *CreateMenuItemRequest) (*MenuItem, error) {
	if req.SellPrice < 0 {
		return nil, fmt.Errorf("sell price must not be negative")
	}

	var existing MenuItem
	if err := s.db.Where("code = ?", req.Code).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("menu item with code '%s' already exists", req.Code)
	}

	item := &MenuItem{
		Code:      req.Code,
		Name:      req.Name,
		SellPrice: req.SellPrice,
		Category:  req.Category,
		IsActive:  true,
	}

	if err := s.db.Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}

	return item, nil
}

// GetMenuItems retrieves all menu items
func (s *Service) GetMenuItems() ([]MenuItem, error) {
	var items []MenuItem
	if err := s.db.Order("code ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve menu items: %w", err)
	}
	return items, nil
}

// GetMenuItem retrieves a menu item by ID
func (s *Service) GetMenuItem(id uint) (*MenuItem, error) {
	var item MenuItem
	if err := s.db.First(&item, id).Error; err != nil {
		return nil, fmt.Errorf("menu item not found")
	}
	return &item, nil
}

// UpdateMenuItem updates an existing menu item
func (s *Service) UpdateMenuItem(id uint, req *UpdateMenuItemRequest) (*MenuItem, error) {
	var item MenuItem
	if err := s.db.First(&item, id).Error; err != nil {
		return nil, fmt.Errorf("menu item not found")
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.SellPrice != nil {
		if *req.SellPrice < 0 {
			return nil, fmt.Errorf("sell price must not be negative")
		}
		item.SellPrice = *req.SellPrice
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := s.db.Save(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}

	return &item, nil
}

// DeleteMenuItem soft-deletes a menu item
func (s *Service) DeleteMenuItem(id uint) error {
	if err := s.db.Delete(&MenuItem{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	return nil
}

// invalidateCostPreviews drops every cached cost preview. Raw-item cost
// changes affect all recipes, so individual key invalidation is not worth it.
func (s *Service) invalidateCostPreviews() {
	if s.redisClient == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	keys, err := s.redisClient.Keys(ctx, "cogs:item:*").Result()
	if err != nil || len(keys) == 0 {
		return
	}
	s.redisClient.Del(ctx, keys...)
}
