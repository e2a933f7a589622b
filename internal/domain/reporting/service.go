// internal/domain/reporting/service.go
package reporting

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/cafe-backoffice/internal/config"
	"github.com/your-org/cafe-backoffice/internal/domain/catalog"
	"github.com/your-org/cafe-backoffice/internal/domain/costing"
	"github.com/your-org/cafe-backoffice/internal/domain/order"
	"github.com/your-org/cafe-backoffice/internal/domain/stock"
	"gorm.io/gorm"
)

// Service aggregates COGS and margin data for back-office reporting
type Service struct {
	db         *gorm.DB
	config     *config.Config
	calculator *costing.Calculator
	ledger     *stock.Ledger
}

// NewService creates a new reporting service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:         db,
		config:     cfg,
		calculator: costing.NewCalculator(db, redisClient, cfg),
		ledger:     stock.NewLedger(db, cfg),
	}
}

// TimeSeriesPoint is one bucket of a time-based aggregate
type TimeSeriesPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// COGSSummary aggregates cost of goods over a time range
type COGSSummary struct {
	From            time.Time         `json:"from"`
	To              time.Time         `json:"to"`
	BranchID        *uint             `json:"branch_id,omitempty"`
	TotalCOGS       float64           `json:"total_cogs"`
	OrderCount      int64             `json:"order_count"`
	AvgCOGSPerOrder float64           `json:"avg_cogs_per_order"`
	DailyCOGS       []TimeSeriesPoint `json:"daily_cogs"`
}

// MarginRow is one menu item of the margin table
type MarginRow struct {
	MenuItemID   uint    `json:"menu_item_id"`
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	SellPrice    float64 `json:"sell_price"`
	RecipeCost   float64 `json:"recipe_cost"`
	ProfitMargin float64 `json:"profit_margin"`
}

// COGSSummary aggregates persisted order COGS over a time range, optionally
// for one branch
func (s *Service) COGSSummary(branchID *uint, from, to time.Time) (*COGSSummary, error) {
	summary := &COGSSummary{
		From:      from,
		To:        to,
		BranchID:  branchID,
		DailyCOGS: []TimeSeriesPoint{},
	}

	query := s.db.Model(&order.Order{}).Where("created_at >= ? AND created_at < ?", from, to)
	if branchID != nil {
		query = query.Where("branch_id = ?", *branchID)
	}

	var totals struct {
		TotalCOGS  float64
		OrderCount int64
	}
	if err := query.Select("COALESCE(SUM(cost_of_goods), 0) AS total_cogs, COUNT(*) AS order_count").Scan(&totals).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate COGS: %w", err)
	}
	summary.TotalCOGS = totals.TotalCOGS
	summary.OrderCount = totals.OrderCount
	if totals.OrderCount > 0 {
		summary.AvgCOGSPerOrder = totals.TotalCOGS / float64(totals.OrderCount)
	}

	daily := s.db.Model(&order.Order{}).
		Select("DATE(created_at) AS date, COALESCE(SUM(cost_of_goods), 0) AS value").
		Where("created_at >= ? AND created_at < ?", from, to)
	if branchID != nil {
		daily = daily.Where("branch_id = ?", *branchID)
	}
	if err := daily.Group("DATE(created_at)").Order("date ASC").Scan(&summary.DailyCOGS).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate daily COGS: %w", err)
	}

	return summary, nil
}

// MarginTable computes recipe cost and margin for every active menu item
func (s *Service) MarginTable() ([]MarginRow, error) {
	var menuItems []catalog.MenuItem
	if err := s.db.Where("is_active = ?", true).Order("code ASC").Find(&menuItems).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve menu items: %w", err)
	}

	rows := make([]MarginRow, 0, len(menuItems))
	for _, item := range menuItems {
		cost, err := s.calculator.CalculateCost(item.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to cost menu item %s: %w", item.Code, err)
		}
		rows = append(rows, MarginRow{
			MenuItemID:   item.ID,
			Code:         item.Code,
			Name:         item.Name,
			SellPrice:    cost.SellPrice,
			RecipeCost:   cost.RecipeCost,
			ProfitMargin: cost.ProfitMargin,
		})
	}

	return rows, nil
}

// LowStock surfaces stock rows at or below their configured minimum
func (s *Service) LowStock(branchID *uint) ([]stock.LowStockItem, error) {
	return s.ledger.LowStockItems(branchID)
}
